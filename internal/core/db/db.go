package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// DB wraps the single managed SQLite connection. All repository
// operations run through it.
type DB struct {
	conn *sql.DB
	path string
}

const busyRetries = 5
const busyBackoff = 50 * time.Millisecond

// New creates a new database connection and initializes schema.
//
// The foreign_keys pragma is the load-bearing part of the DSN: SQLite
// ignores the declared ON DELETE CASCADE on messages unless the pragma is
// set on every connection open, which would silently break cascade
// deletion.
func New(dbPath string) (*DB, error) {
	// Ensure parent directory exists
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: create database directory: %v", ErrStorageUnavailable, err)
	}

	// WAL for concurrent reads
	dsn := dbPath + "?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_time_format=sqlite"
	return open(dsn, dbPath)
}

// NewInMemory opens a private in-memory database. Tests use this for
// isolated stores without touching disk.
func NewInMemory() (*DB, error) {
	return open("file::memory:?_pragma=foreign_keys(1)&_time_format=sqlite", ":memory:")
}

func open(dsn, path string) (*DB, error) {
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	// SQLite only supports one writer; a single pooled connection also
	// guarantees the DSN pragmas apply to every statement.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(time.Hour)

	db := &DB{conn: conn, path: path}

	if err := db.initSchema(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: initialize schema: %v", ErrStorageUnavailable, err)
	}

	return db, nil
}

// Path returns the filesystem location of the database.
func (db *DB) Path() string {
	return db.path
}

// Close closes the database connection. Safe to call more than once.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Query executes a query that returns rows
func (db *DB) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return db.conn.Query(query, args...)
}

// QueryRow executes a query that returns a single row
func (db *DB) QueryRow(query string, args ...interface{}) *sql.Row {
	return db.conn.QueryRow(query, args...)
}

// withRetry runs fn, backing off and retrying while the engine reports
// transient lock contention. ErrBusy escapes only once retries exhaust.
func withRetry(fn func() error) error {
	var err error
	for attempt := 0; attempt <= busyRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(attempt) * busyBackoff)
		}
		err = fn()
		if !isBusy(err) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", ErrBusy, err)
}
