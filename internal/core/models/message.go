package models

import (
	"errors"
	"fmt"
	"time"
)

// Role tags the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// Message is a single role-tagged utterance owned by exactly one session.
// Messages are append-only: once stored they are never updated, and they
// are deleted only as a cascade effect of deleting the owning session.
type Message struct {
	ID        int64
	SessionID int64
	Role      Role
	Content   string
	Timestamp time.Time
	Metadata  map[string]any
}

// Validate checks if the message has required fields
func (m *Message) Validate() error {
	if m.SessionID <= 0 {
		return errors.New("session_id is required")
	}
	switch m.Role {
	case RoleUser, RoleAssistant, RoleSystem:
		return nil
	default:
		return fmt.Errorf("unknown role %q", m.Role)
	}
}
