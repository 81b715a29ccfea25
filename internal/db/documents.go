package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrNoDocument is returned by Get when no document is stored under a key.
var ErrNoDocument = errors.New("document not found")

// Document is one stored body with its revision counter.
type Document struct {
	Key       string
	Body      []byte
	Revision  int64
	UpdatedAt time.Time
}

// Get loads the document stored under key.
func (db *DB) Get(ctx context.Context, key string) (Document, error) {
	var (
		doc       Document
		body      string
		updatedAt string
	)
	row := db.QueryRowContext(ctx, db.rebind(
		`SELECT doc_key, body, revision, updated_at FROM documents WHERE doc_key = ?`), key)
	if err := row.Scan(&doc.Key, &body, &doc.Revision, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNoDocument
		}
		return Document{}, fmt.Errorf("failed to read document %s: %w", key, err)
	}
	doc.Body = []byte(body)
	if t, err := time.Parse(time.RFC3339Nano, updatedAt); err == nil {
		doc.UpdatedAt = t
	}
	return doc, nil
}

// Put replaces the whole document under key and returns its new revision.
// The replacement is a single statement, so readers see either the old or
// the new body.
func (db *DB) Put(ctx context.Context, key string, body []byte) (int64, error) {
	var rev int64
	row := db.QueryRowContext(ctx, db.rebind(`
INSERT INTO documents (doc_key, body, revision, updated_at)
VALUES (?, ?, 1, ?)
ON CONFLICT (doc_key) DO UPDATE SET
    body = excluded.body,
    revision = documents.revision + 1,
    updated_at = excluded.updated_at
RETURNING revision`), key, string(body), db.timestamp())
	if err := row.Scan(&rev); err != nil {
		return 0, fmt.Errorf("failed to write document %s: %w", key, err)
	}
	return rev, nil
}

// GetMeta returns a bookkeeping value, or "" when unset.
func (db *DB) GetMeta(ctx context.Context, key string) (string, error) {
	var value sql.NullString
	err := db.QueryRowContext(ctx, db.rebind(`SELECT value FROM meta WHERE key = ?`), key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read meta %s: %w", key, err)
	}
	return value.String, nil
}

// SetMeta stores a bookkeeping value such as the time of the last repair.
func (db *DB) SetMeta(ctx context.Context, key, value string) error {
	_, err := db.ExecContext(ctx, db.rebind(`
INSERT INTO meta (key, value) VALUES (?, ?)
ON CONFLICT (key) DO UPDATE SET value = excluded.value`), key, value)
	if err != nil {
		return fmt.Errorf("failed to write meta %s: %w", key, err)
	}
	return nil
}
