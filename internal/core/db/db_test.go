package db

import (
	"os"
	"testing"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	tmpfile, err := os.CreateTemp("", "test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Remove(tmpfile.Name()) })
	_ = tmpfile.Close()

	database, err := New(tmpfile.Name())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { _ = database.Close() })

	return database
}

func TestNew(t *testing.T) {
	database := newTestDB(t)

	// Verify schema initialized
	var count int
	err := database.conn.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name IN ('sessions', 'messages')").Scan(&count)
	if err != nil {
		t.Fatalf("Failed to query schema: %v", err)
	}

	if count != 2 {
		t.Errorf("Expected sessions and messages tables, got %d", count)
	}
}

func TestNew_WALMode(t *testing.T) {
	database := newTestDB(t)

	var journalMode string
	err := database.conn.QueryRow("PRAGMA journal_mode").Scan(&journalMode)
	if err != nil {
		t.Fatalf("Failed to query journal mode: %v", err)
	}

	if journalMode != "wal" {
		t.Errorf("Expected WAL mode, got %s", journalMode)
	}
}

// Referential integrity is a per-connection configuration contract, not a
// default: without the pragma the engine silently skips cascade deletion.
func TestNew_ForeignKeys(t *testing.T) {
	database := newTestDB(t)

	var fkEnabled int
	err := database.conn.QueryRow("PRAGMA foreign_keys").Scan(&fkEnabled)
	if err != nil {
		t.Fatalf("Failed to query foreign keys: %v", err)
	}

	if fkEnabled != 1 {
		t.Errorf("Expected foreign keys enabled (1), got %d", fkEnabled)
	}
}

func TestNewInMemory(t *testing.T) {
	database, err := NewInMemory()
	if err != nil {
		t.Fatalf("NewInMemory() error = %v", err)
	}
	defer func() { _ = database.Close() }()

	session, err := database.CreateSession("scratch", nil)
	if err != nil {
		t.Fatalf("CreateSession() error = %v", err)
	}

	var fkEnabled int
	if err := database.conn.QueryRow("PRAGMA foreign_keys").Scan(&fkEnabled); err != nil {
		t.Fatalf("Failed to query foreign keys: %v", err)
	}
	if fkEnabled != 1 {
		t.Errorf("Expected foreign keys enabled (1), got %d", fkEnabled)
	}

	got, err := database.GetSession(session.ID)
	if err != nil {
		t.Fatalf("GetSession() error = %v", err)
	}
	if got == nil || got.Title != "scratch" {
		t.Errorf("GetSession() = %+v, want title %q", got, "scratch")
	}
}

func TestClose_Idempotent(t *testing.T) {
	database := newTestDB(t)

	if err := database.Close(); err != nil {
		t.Fatalf("first Close() error = %v", err)
	}
	if err := database.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}

func TestIndexes(t *testing.T) {
	database := newTestDB(t)

	var indexCount int
	err := database.conn.QueryRow(`
		SELECT COUNT(*) FROM sqlite_master
		WHERE type='index' AND tbl_name='sessions' AND name LIKE 'idx_%'
	`).Scan(&indexCount)
	if err != nil {
		t.Fatalf("Failed to count session indexes: %v", err)
	}
	if indexCount < 1 {
		t.Errorf("Expected updated_at index on sessions, got %d indexes", indexCount)
	}

	err = database.conn.QueryRow(`
		SELECT COUNT(*) FROM sqlite_master
		WHERE type='index' AND tbl_name='messages' AND name LIKE 'idx_%'
	`).Scan(&indexCount)
	if err != nil {
		t.Fatalf("Failed to count message indexes: %v", err)
	}
	if indexCount < 2 {
		t.Errorf("Expected session_id and timestamp indexes on messages, got %d", indexCount)
	}
}

func TestForeignKeyConstraint(t *testing.T) {
	database := newTestDB(t)

	// Insert a message with an invalid session_id directly; the engine
	// must reject it.
	_, err := database.conn.Exec(`
		INSERT INTO messages (session_id, role, content, timestamp)
		VALUES (?, ?, ?, datetime('now'))
	`, 99999, "user", "Hello")

	if err == nil {
		t.Error("Expected foreign key constraint error, got nil")
	}
}
