// Package sqlite implements the repository interfaces using SQLite as the
// storage backend.
//
// WHY modernc.org/sqlite INSTEAD OF github.com/mattn/go-sqlite3?
// mattn/go-sqlite3 uses CGo, which means a C compiler on every build machine
// and painful cross-compilation. modernc.org/sqlite is a pure Go translation
// of the SQLite sources — works everywhere Go works.
//
// The database is a single file (or ":memory:" in tests). DB owns the
// connection pool and schema; the per-entity repos (UserRepo, ContactRepo,
// AddressRepo) share it.
package sqlite

import (
	"database/sql"
	"fmt"

	// Blank import registers the driver with database/sql under the name
	// "sqlite" via its init function.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and provides the repository methods.
type DB struct {
	conn *sql.DB
}

// New opens the database, applies pragmas, and runs migrations.
//
// sql.Open only creates the pool manager; Ping forces a real connection so a
// bad path or permissions problem surfaces here instead of on the first
// query.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL lets reads proceed while a write is in flight — without it SQLite
	// locks the whole file per write, which stalls a web server.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	// Foreign keys are off by default in SQLite. The contact→user and
	// address→contact relationships (and the ON DELETE CASCADE on
	// addresses) depend on them.
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool. Defer it wherever New is called —
// closing flushes the WAL and releases the file lock.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the schema. CREATE TABLE IF NOT EXISTS keeps this
// idempotent, so it runs unconditionally on every startup.
//
// token_expired_at is epoch milliseconds (INTEGER) rather than DATETIME:
// clients receive the same number in the login response, and an integer
// comparison is all expiry checking needs.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS users (
			username         TEXT PRIMARY KEY,
			name             TEXT NOT NULL,
			password_hash    TEXT NOT NULL,
			token            TEXT UNIQUE,
			token_expired_at INTEGER,
			created_at       DATETIME NOT NULL,
			updated_at       DATETIME NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("creating users table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS contacts (
			id         TEXT PRIMARY KEY,
			username   TEXT NOT NULL REFERENCES users(username),
			first_name TEXT NOT NULL,
			last_name  TEXT,
			email      TEXT,
			phone      TEXT,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_contacts_username ON contacts(username);
	`)
	if err != nil {
		return fmt.Errorf("creating contacts table: %w", err)
	}

	_, err = db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS addresses (
			id          TEXT PRIMARY KEY,
			contact_id  TEXT NOT NULL REFERENCES contacts(id) ON DELETE CASCADE,
			street      TEXT,
			city        TEXT,
			province    TEXT,
			country     TEXT NOT NULL,
			postal_code TEXT,
			created_at  DATETIME NOT NULL,
			updated_at  DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_addresses_contact_id ON addresses(contact_id);
	`)
	if err != nil {
		return fmt.Errorf("creating addresses table: %w", err)
	}

	return nil
}

// nullable maps an optional model field to its column value: empty string
// becomes NULL so "absent" is represented once, in the store.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// stringValue unwraps a nullable column back to the model's empty-string
// convention.
func stringValue(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}
