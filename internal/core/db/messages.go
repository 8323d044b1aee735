package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/parley-chat/parley/internal/core/models"
)

// AppendMessage stores a message and bumps the owning session's
// updated_at within the same transaction. The owner must exist:
// ErrSessionNotFound is returned otherwise.
//
// Timestamps are stored at second precision, so consecutive appends can
// share one; retrieval tie-breaks on id to preserve insertion order.
func (db *DB) AppendMessage(sessionID int64, role models.Role, content string, metadata map[string]any) (*models.Message, error) {
	msg := &models.Message{
		SessionID: sessionID,
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC().Truncate(time.Second),
		Metadata:  metadata,
	}
	if msg.Metadata == nil {
		msg.Metadata = map[string]any{}
	}
	if err := msg.Validate(); err != nil {
		return nil, fmt.Errorf("append message: %w", err)
	}

	meta, err := encodeMetadata(metadata)
	if err != nil {
		return nil, fmt.Errorf("append message: %w", err)
	}

	err = withRetry(func() error {
		tx, txErr := db.conn.Begin()
		if txErr != nil {
			return txErr
		}
		defer func() { _ = tx.Rollback() }()

		var exists int
		txErr = tx.QueryRow(`SELECT COUNT(*) FROM sessions WHERE id = ?`, sessionID).Scan(&exists)
		if txErr != nil {
			return txErr
		}
		if exists == 0 {
			return ErrSessionNotFound
		}

		res, txErr := tx.Exec(`
			INSERT INTO messages (session_id, role, content, timestamp, metadata)
			VALUES (?, ?, ?, ?, ?)
		`, sessionID, string(role), content, msg.Timestamp, meta)
		if txErr != nil {
			return txErr
		}
		id, txErr := res.LastInsertId()
		if txErr != nil {
			return txErr
		}
		msg.ID = id

		_, txErr = tx.Exec(`UPDATE sessions SET updated_at = ? WHERE id = ?`, msg.Timestamp, sessionID)
		if txErr != nil {
			return txErr
		}

		return tx.Commit()
	})
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) || errors.Is(err, ErrBusy) {
			return nil, err
		}
		return nil, fmt.Errorf("append message: %w", err)
	}

	return msg, nil
}

// ListMessages returns a session's messages in their total order:
// timestamp ascending, ties broken by id ascending. An absent session
// yields an empty slice, not an error; callers that need the distinction
// check GetSession first. A limit of 0 or less returns everything.
func (db *DB) ListMessages(sessionID int64, limit, offset int) ([]models.Message, error) {
	query := `
		SELECT id, session_id, role, content, timestamp, metadata
		FROM messages
		WHERE session_id = ?
		ORDER BY timestamp ASC, id ASC
	`
	args := []any{sessionID}
	if limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, limit, offset)
	}

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var messages []models.Message
	for rows.Next() {
		var m models.Message
		var role, meta string
		if err := rows.Scan(&m.ID, &m.SessionID, &role, &m.Content, &m.Timestamp, &meta); err != nil {
			return nil, fmt.Errorf("list messages: %w", err)
		}
		m.Role = models.Role(role)
		m.Metadata, err = decodeMetadata(meta)
		if err != nil {
			return nil, fmt.Errorf("list messages: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// FirstUserMessage returns the earliest user-role message of a session,
// or (nil, nil) when the session has none.
func (db *DB) FirstUserMessage(sessionID int64) (*models.Message, error) {
	var m models.Message
	var role, meta string
	err := db.conn.QueryRow(`
		SELECT id, session_id, role, content, timestamp, metadata
		FROM messages
		WHERE session_id = ? AND role = ?
		ORDER BY timestamp ASC, id ASC
		LIMIT 1
	`, sessionID, string(models.RoleUser)).Scan(&m.ID, &m.SessionID, &role, &m.Content, &m.Timestamp, &meta)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("first user message: %w", err)
	}

	m.Role = models.Role(role)
	m.Metadata, err = decodeMetadata(meta)
	if err != nil {
		return nil, fmt.Errorf("first user message: %w", err)
	}
	return &m, nil
}
