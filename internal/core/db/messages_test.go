package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/parley-chat/parley/internal/core/models"
)

func TestAppendMessage(t *testing.T) {
	database := newTestDB(t)

	session, err := database.CreateSession("chat", nil)
	if err != nil {
		t.Fatal(err)
	}

	msg, err := database.AppendMessage(session.ID, models.RoleUser, "How do I center a div in CSS?", map[string]any{"tokens": 9})
	if err != nil {
		t.Fatalf("AppendMessage() error = %v", err)
	}
	if msg.ID == 0 {
		t.Error("Expected assigned message id")
	}
	if msg.Timestamp.IsZero() {
		t.Error("Expected populated timestamp")
	}

	// Append must bump the owning session's updated_at.
	got, err := database.GetSession(session.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.UpdatedAt.Before(session.UpdatedAt) {
		t.Error("AppendMessage() did not touch session updated_at")
	}
}

func TestAppendMessage_MissingSession(t *testing.T) {
	database := newTestDB(t)

	_, err := database.AppendMessage(404, models.RoleUser, "hello?", nil)
	if err == nil {
		t.Fatal("Expected error for missing session")
	}
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("error = %v, want ErrSessionNotFound", err)
	}
}

func TestAppendMessage_InvalidRole(t *testing.T) {
	database := newTestDB(t)

	session, err := database.CreateSession("chat", nil)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := database.AppendMessage(session.ID, "oracle", "hmm", nil); err == nil {
		t.Error("Expected error for unknown role")
	}
}

func TestListMessages_Order(t *testing.T) {
	database := newTestDB(t)

	session, err := database.CreateSession("ordered", nil)
	if err != nil {
		t.Fatal(err)
	}

	// Appends within the same second share a timestamp; order must still
	// follow insertion via the id tie-break.
	var want []string
	for i := 0; i < 10; i++ {
		content := fmt.Sprintf("message %d", i)
		want = append(want, content)
		if _, err := database.AppendMessage(session.ID, models.RoleUser, content, nil); err != nil {
			t.Fatal(err)
		}
	}

	messages, err := database.ListMessages(session.ID, 0, 0)
	if err != nil {
		t.Fatalf("ListMessages() error = %v", err)
	}
	if len(messages) != len(want) {
		t.Fatalf("Expected %d messages, got %d", len(want), len(messages))
	}
	for i, m := range messages {
		if m.Content != want[i] {
			t.Errorf("messages[%d].Content = %q, want %q", i, m.Content, want[i])
		}
	}
}

func TestListMessages_LimitOffset(t *testing.T) {
	database := newTestDB(t)

	session, err := database.CreateSession("paged", nil)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		if _, err := database.AppendMessage(session.ID, models.RoleUser, fmt.Sprintf("m%d", i), nil); err != nil {
			t.Fatal(err)
		}
	}

	page, err := database.ListMessages(session.ID, 2, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(page) != 2 {
		t.Fatalf("Expected 2 messages, got %d", len(page))
	}
	if page[0].Content != "m2" || page[1].Content != "m3" {
		t.Errorf("Unexpected page contents: %q, %q", page[0].Content, page[1].Content)
	}
}

func TestListMessages_AbsentSession(t *testing.T) {
	database := newTestDB(t)

	messages, err := database.ListMessages(404, 0, 0)
	if err != nil {
		t.Fatalf("ListMessages() error = %v, want nil for absent session", err)
	}
	if len(messages) != 0 {
		t.Errorf("Expected empty sequence, got %d messages", len(messages))
	}
}

func TestFirstUserMessage(t *testing.T) {
	database := newTestDB(t)

	session, err := database.CreateSession("greeting", nil)
	if err != nil {
		t.Fatal(err)
	}

	// None yet
	msg, err := database.FirstUserMessage(session.ID)
	if err != nil {
		t.Fatal(err)
	}
	if msg != nil {
		t.Errorf("Expected nil before any user message, got %+v", msg)
	}

	if _, err := database.AppendMessage(session.ID, models.RoleSystem, "be helpful", nil); err != nil {
		t.Fatal(err)
	}
	if _, err := database.AppendMessage(session.ID, models.RoleUser, "first question", nil); err != nil {
		t.Fatal(err)
	}
	if _, err := database.AppendMessage(session.ID, models.RoleUser, "second question", nil); err != nil {
		t.Fatal(err)
	}

	msg, err = database.FirstUserMessage(session.ID)
	if err != nil {
		t.Fatal(err)
	}
	if msg == nil {
		t.Fatal("Expected first user message, got nil")
	}
	if msg.Content != "first question" {
		t.Errorf("Content = %q, want %q", msg.Content, "first question")
	}
}
