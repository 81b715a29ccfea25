package db

import "fmt"

// migrate runs all database migrations
func (db *DB) migrate() error {
	migrations := []string{
		migrationCreateDocuments,
		migrationCreateMeta,
	}

	for i, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	return nil
}

// Both dialects accept these statements; timestamps are stored as RFC 3339 text.
const migrationCreateDocuments = `
CREATE TABLE IF NOT EXISTS documents (
    doc_key TEXT PRIMARY KEY,
    body TEXT NOT NULL,
    revision BIGINT NOT NULL DEFAULT 0,
    updated_at TEXT NOT NULL
);
`

const migrationCreateMeta = `
CREATE TABLE IF NOT EXISTS meta (
    key TEXT PRIMARY KEY,
    value TEXT
);
`
