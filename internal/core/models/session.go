package models

import (
	"errors"
	"time"
)

// Session is a conversation container: a titled, timestamped set of
// ordered messages. Repositories return copies, never live references.
type Session struct {
	ID        int64
	Title     string
	CreatedAt time.Time
	UpdatedAt time.Time
	Metadata  map[string]any // opaque to the persistence core
}

// SessionSummary is the listing and search projection of a session. The
// message count is computed live from the messages table, never cached.
type SessionSummary struct {
	ID           int64
	Title        string
	MessageCount int
	UpdatedAt    time.Time
}

// Validate checks if the session has required fields
func (s *Session) Validate() error {
	if s.Title == "" {
		return errors.New("title is required")
	}
	return nil
}
