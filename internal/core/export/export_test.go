package export

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/parley-chat/parley/internal/core/db"
	"github.com/parley-chat/parley/internal/core/models"
)

func newTestDB(t *testing.T) *db.DB {
	t.Helper()
	database, err := db.New(t.TempDir() + "/export-test.db")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func seedSession(t *testing.T, database *db.DB) *models.Session {
	t.Helper()
	session, err := database.CreateSession("Centering a div", nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := database.AppendMessage(session.ID, models.RoleUser, "How do I center a div in CSS?", nil); err != nil {
		t.Fatal(err)
	}
	if _, err := database.AppendMessage(session.ID, models.RoleAssistant, "Use flexbox...", nil); err != nil {
		t.Fatal(err)
	}
	return session
}

func TestStructured(t *testing.T) {
	database := newTestDB(t)
	session := seedSession(t, database)

	doc, err := Structured(database, session.ID)
	if err != nil {
		t.Fatalf("Structured() error = %v", err)
	}
	if doc == nil {
		t.Fatal("Structured() = nil for existing session")
	}

	if doc.Session.Title != "Centering a div" {
		t.Errorf("Session.Title = %q", doc.Session.Title)
	}
	if len(doc.Messages) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(doc.Messages))
	}
	if doc.Messages[0].Role != "user" || doc.Messages[1].Role != "assistant" {
		t.Errorf("Messages out of order: %s then %s", doc.Messages[0].Role, doc.Messages[1].Role)
	}
	if doc.ExportedAt.IsZero() {
		t.Error("Expected populated ExportedAt")
	}

	// The document must serialize cleanly.
	if _, err := json.Marshal(doc); err != nil {
		t.Errorf("Document not JSON-serializable: %v", err)
	}
}

func TestStructured_Absent(t *testing.T) {
	database := newTestDB(t)

	doc, err := Structured(database, 404)
	if err != nil {
		t.Fatalf("Structured() error = %v, want nil for absent session", err)
	}
	if doc != nil {
		t.Errorf("Structured() = %+v, want nil", doc)
	}
}

func TestMarkdown(t *testing.T) {
	database := newTestDB(t)
	session := seedSession(t, database)

	out, err := Markdown(database, session.ID)
	if err != nil {
		t.Fatalf("Markdown() error = %v", err)
	}

	if !strings.HasPrefix(out, "# Centering a div") {
		t.Errorf("Expected title heading, got %q", firstLine(out))
	}
	if !strings.Contains(out, "### User") {
		t.Error("Expected role-labeled user section")
	}
	if !strings.Contains(out, "### Assistant") {
		t.Error("Expected role-labeled assistant section")
	}
	if strings.Index(out, "How do I center a div") > strings.Index(out, "Use flexbox") {
		t.Error("Messages rendered out of chronological order")
	}
}

func TestMarkdown_Absent(t *testing.T) {
	database := newTestDB(t)

	out, err := Markdown(database, 404)
	if err != nil {
		t.Fatalf("Markdown() error = %v, want nil for absent session", err)
	}
	if out != "" {
		t.Errorf("Markdown() = %q, want empty absent marker", out)
	}
}

func TestMarkdownWithTemplate_Custom(t *testing.T) {
	database := newTestDB(t)
	session := seedSession(t, database)

	out, err := MarkdownWithTemplate(database, session.ID, "{{title}}: {{message_count}} messages")
	if err != nil {
		t.Fatal(err)
	}
	if out != "Centering a div: 2 messages" {
		t.Errorf("Rendered = %q", out)
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
