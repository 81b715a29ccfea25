package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Driver names a supported database backend.
type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// ParseDriver validates a driver name from configuration.
func ParseDriver(s string) (Driver, error) {
	switch Driver(strings.ToLower(strings.TrimSpace(s))) {
	case "", DriverSQLite:
		return DriverSQLite, nil
	case DriverPostgres, "postgresql":
		return DriverPostgres, nil
	}
	return "", fmt.Errorf("unknown database driver %q", s)
}

// DB wraps the document database connection
type DB struct {
	*sql.DB
	driver Driver
	now    func() time.Time
}

// Open opens the database and runs migrations. For sqlite dsn is a file
// path or ":memory:"; for postgres it is a connection URL.
func Open(driver Driver, dsn string) (*DB, error) {
	if driver == DriverSQLite && dsn != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dsn), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	sqlDB, err := sql.Open(string(driver), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if driver == DriverSQLite {
		// One connection keeps writes serialized and lets ":memory:" databases
		// survive across calls.
		sqlDB.SetMaxOpenConns(1)
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if driver == DriverSQLite {
		if _, err := sqlDB.Exec("PRAGMA busy_timeout = 5000"); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("failed to set busy timeout: %w", err)
		}
	}

	db := &DB{DB: sqlDB, driver: driver, now: time.Now}

	if err := db.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// Driver reports the backend in use.
func (db *DB) Driver() Driver {
	return db.driver
}

// rebind rewrites ? placeholders into the driver's bind syntax.
func (db *DB) rebind(query string) string {
	if db.driver == DriverPostgres {
		return sqlx.Rebind(sqlx.DOLLAR, query)
	}
	return query
}

func (db *DB) timestamp() string {
	return db.now().UTC().Format(time.RFC3339Nano)
}
