package tui

import (
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/parley-chat/parley/internal/core/config"
	"github.com/parley-chat/parley/internal/core/db"
	"github.com/parley-chat/parley/internal/core/export"
	"github.com/parley-chat/parley/internal/core/models"
)

type errMsg struct {
	err error
}

type sessionsLoadedMsg struct {
	sessions []models.SessionSummary
}

type sessionDetailLoadedMsg struct {
	detail sessionDetail
}

type sessionDeletedMsg struct {
	status string
}

type exportCopiedMsg struct {
	status string
}

const browseLimit = 500

func loadSessions(database *db.DB) tea.Cmd {
	return func() tea.Msg {
		sessions, err := database.ListSessions(browseLimit, 0)
		if err != nil {
			return errMsg{err}
		}
		return sessionsLoadedMsg{sessions}
	}
}

func loadSessionDetail(database *db.DB, sessionID int64) tea.Cmd {
	return func() tea.Msg {
		session, err := database.GetSession(sessionID)
		if err != nil {
			return errMsg{err}
		}
		if session == nil {
			return errMsg{fmt.Errorf("session %d not found", sessionID)}
		}

		messages, err := database.ListMessages(sessionID, 0, 0)
		if err != nil {
			return errMsg{err}
		}

		return sessionDetailLoadedMsg{
			detail: sessionDetail{
				Session:  *session,
				Messages: messages,
			},
		}
	}
}

func deleteSession(database *db.DB, sessionID int64) tea.Cmd {
	return func() tea.Msg {
		ok, err := database.DeleteSession(sessionID)
		if err != nil {
			return errMsg{err}
		}
		if !ok {
			return errMsg{fmt.Errorf("session %d not found", sessionID)}
		}
		return sessionDeletedMsg{status: fmt.Sprintf("Deleted session %d", sessionID)}
	}
}

func copyExport(database *db.DB, sessionID int64) tea.Cmd {
	return func() tea.Msg {
		cfg, _ := config.Load()
		rendered, err := export.MarkdownWithTemplate(database, sessionID, cfg.ExportTemplate)
		if err != nil {
			return errMsg{err}
		}
		if rendered == "" {
			return errMsg{fmt.Errorf("session %d not found", sessionID)}
		}
		if err := clipboard.WriteAll(rendered); err != nil {
			return exportCopiedMsg{status: "Clipboard unavailable"}
		}
		return exportCopiedMsg{status: "Export copied to clipboard"}
	}
}
