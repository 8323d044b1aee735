// Package export serializes a session and its ordered messages into a
// structured document or a human-readable Markdown rendering.
//
// Both entry points share the absence contract of the repositories: a
// nonexistent session yields an explicit absent result, never an empty
// document. Callers must branch before serializing.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/cbroglie/mustache"
	"github.com/parley-chat/parley/internal/core/db"
)

// DefaultTemplate renders a session as Markdown: title as heading, then
// each message as a role-labeled section in chronological order. A custom
// template can be supplied through the config override file.
const DefaultTemplate = `# {{title}}

**Created:** {{created_at}}
**Updated:** {{updated_at}}
**Messages:** {{message_count}}

---

{{#messages}}
### {{role}} ({{timestamp}})

{{{content}}}

{{/messages}}`

const timeLayout = "Jan 02, 2006 15:04:05"

// Document is the structured, self-describing export of a session.
type Document struct {
	Session    SessionInfo   `json:"session"`
	Messages   []MessageInfo `json:"messages"`
	ExportedAt time.Time     `json:"exported_at"`
}

// SessionInfo is the session metadata part of a Document.
type SessionInfo struct {
	ID        int64          `json:"id"`
	Title     string         `json:"title"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	Metadata  map[string]any `json:"metadata"`
}

// MessageInfo is a single message within a Document.
type MessageInfo struct {
	ID        int64          `json:"id"`
	Role      string         `json:"role"`
	Content   string         `json:"content"`
	Timestamp time.Time      `json:"timestamp"`
	Metadata  map[string]any `json:"metadata"`
}

// Structured returns the session plus its full ordered message log, or
// (nil, nil) when the session does not exist.
func Structured(database *db.DB, sessionID int64) (*Document, error) {
	session, err := database.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}

	messages, err := database.ListMessages(sessionID, 0, 0)
	if err != nil {
		return nil, err
	}

	doc := &Document{
		Session: SessionInfo{
			ID:        session.ID,
			Title:     session.Title,
			CreatedAt: session.CreatedAt,
			UpdatedAt: session.UpdatedAt,
			Metadata:  session.Metadata,
		},
		Messages:   make([]MessageInfo, 0, len(messages)),
		ExportedAt: time.Now().UTC(),
	}
	for _, m := range messages {
		doc.Messages = append(doc.Messages, MessageInfo{
			ID:        m.ID,
			Role:      string(m.Role),
			Content:   m.Content,
			Timestamp: m.Timestamp,
			Metadata:  m.Metadata,
		})
	}
	return doc, nil
}

// Markdown renders the session with the default template. Returns
// ("", nil) when the session does not exist.
func Markdown(database *db.DB, sessionID int64) (string, error) {
	return MarkdownWithTemplate(database, sessionID, DefaultTemplate)
}

// MarkdownWithTemplate renders the session with a caller-supplied
// mustache template. Same absence contract as Markdown.
func MarkdownWithTemplate(database *db.DB, sessionID int64, template string) (string, error) {
	doc, err := Structured(database, sessionID)
	if err != nil || doc == nil {
		return "", err
	}

	messages := make([]map[string]any, 0, len(doc.Messages))
	for _, m := range doc.Messages {
		messages = append(messages, map[string]any{
			"role":      roleLabel(m.Role),
			"content":   m.Content,
			"timestamp": m.Timestamp.Format(timeLayout),
		})
	}

	out, err := mustache.Render(template, map[string]any{
		"title":         doc.Session.Title,
		"created_at":    doc.Session.CreatedAt.Format(timeLayout),
		"updated_at":    doc.Session.UpdatedAt.Format(timeLayout),
		"message_count": len(doc.Messages),
		"messages":      messages,
	})
	if err != nil {
		return "", fmt.Errorf("render export template: %w", err)
	}
	return out, nil
}

func roleLabel(role string) string {
	if role == "" {
		return ""
	}
	return strings.ToUpper(role[:1]) + role[1:]
}
