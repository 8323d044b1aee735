package db

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/parley-chat/parley/internal/core/models"
)

// PlaceholderTitle synthesizes the default title for an untitled session
// from its creation time.
func PlaceholderTitle(t time.Time) string {
	return "Conversation " + t.Format("2006-01-02 15:04")
}

// CreateSession inserts a new session and returns it fully populated,
// including the assigned id. An empty title gets a placeholder derived
// from the creation timestamp, so a title is never empty.
func (db *DB) CreateSession(title string, metadata map[string]any) (*models.Session, error) {
	now := time.Now().UTC().Truncate(time.Second)
	if strings.TrimSpace(title) == "" {
		title = PlaceholderTitle(now)
	}

	meta, err := encodeMetadata(metadata)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	var id int64
	err = withRetry(func() error {
		res, execErr := db.conn.Exec(`
			INSERT INTO sessions (title, created_at, updated_at, metadata)
			VALUES (?, ?, ?, ?)
		`, title, now, now, meta)
		if execErr != nil {
			return execErr
		}
		id, execErr = res.LastInsertId()
		return execErr
	})
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	session := &models.Session{
		ID:        id,
		Title:     title,
		CreatedAt: now,
		UpdatedAt: now,
		Metadata:  metadata,
	}
	if session.Metadata == nil {
		session.Metadata = map[string]any{}
	}
	return session, nil
}

// GetSession returns the session by id, or (nil, nil) when no row
// matches. Callers branch on the nil result rather than an error.
func (db *DB) GetSession(id int64) (*models.Session, error) {
	var s models.Session
	var meta string
	err := db.conn.QueryRow(`
		SELECT id, title, created_at, updated_at, metadata
		FROM sessions WHERE id = ?
	`, id).Scan(&s.ID, &s.Title, &s.CreatedAt, &s.UpdatedAt, &meta)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	s.Metadata, err = decodeMetadata(meta)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &s, nil
}

// ListSessions returns summaries ordered by most recent activity first.
// Message counts are computed live against the messages table so they can
// never drift from the stored rows.
func (db *DB) ListSessions(limit, offset int) ([]models.SessionSummary, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.conn.Query(`
		SELECT
			s.id,
			s.title,
			(SELECT COUNT(*) FROM messages WHERE session_id = s.id) AS message_count,
			s.updated_at
		FROM sessions s
		ORDER BY s.updated_at DESC, s.id DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var summaries []models.SessionSummary
	for rows.Next() {
		var s models.SessionSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.MessageCount, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("list sessions: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// SessionUpdate names the mutable session fields. Nil fields are left
// untouched.
type SessionUpdate struct {
	Title    *string
	Metadata map[string]any
}

// UpdateSession applies a partial update and bumps updated_at. Returns
// false when no such session exists or nothing was requested.
func (db *DB) UpdateSession(id int64, update SessionUpdate) (bool, error) {
	var sets []string
	var args []any

	if update.Title != nil {
		if strings.TrimSpace(*update.Title) == "" {
			return false, errors.New("update session: title cannot be empty")
		}
		sets = append(sets, "title = ?")
		args = append(args, *update.Title)
	}
	if update.Metadata != nil {
		meta, err := encodeMetadata(update.Metadata)
		if err != nil {
			return false, fmt.Errorf("update session: %w", err)
		}
		sets = append(sets, "metadata = ?")
		args = append(args, meta)
	}
	if len(sets) == 0 {
		return false, nil
	}

	sets = append(sets, "updated_at = ?")
	args = append(args, time.Now().UTC().Truncate(time.Second), id)

	var affected int64
	err := withRetry(func() error {
		res, execErr := db.conn.Exec(
			"UPDATE sessions SET "+strings.Join(sets, ", ")+" WHERE id = ?",
			args...,
		)
		if execErr != nil {
			return execErr
		}
		affected, execErr = res.RowsAffected()
		return execErr
	})
	if err != nil {
		return false, fmt.Errorf("update session: %w", err)
	}
	return affected > 0, nil
}

// DeleteSession removes the session row and, through the engine-enforced
// cascade, every message it owns. The single DELETE keeps the operation
// atomic; the application never issues a separate delete for messages.
// Returns false when no such session exists.
func (db *DB) DeleteSession(id int64) (bool, error) {
	var affected int64
	err := withRetry(func() error {
		res, execErr := db.conn.Exec(`DELETE FROM sessions WHERE id = ?`, id)
		if execErr != nil {
			return execErr
		}
		affected, execErr = res.RowsAffected()
		return execErr
	})
	if err != nil {
		if errors.Is(err, ErrBusy) {
			return false, err
		}
		return false, fmt.Errorf("%w: delete session: %v", ErrIntegrity, err)
	}
	return affected > 0, nil
}

// MessageCount counts the stored messages for a session. Always computed
// by counting rows, never read from a cached counter.
func (db *DB) MessageCount(id int64) (int, error) {
	var n int
	err := db.conn.QueryRow(`SELECT COUNT(*) FROM messages WHERE session_id = ?`, id).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("message count: %w", err)
	}
	return n, nil
}

func encodeMetadata(m map[string]any) (string, error) {
	if len(m) == 0 {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("encode metadata: %w", err)
	}
	return string(b), nil
}

func decodeMetadata(s string) (map[string]any, error) {
	m := map[string]any{}
	if s == "" {
		return m, nil
	}
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}
	return m, nil
}
