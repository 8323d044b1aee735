package tui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/parley-chat/parley/internal/core/db"
	"github.com/parley-chat/parley/internal/core/models"
)

type viewMode int

const (
	listView viewMode = iota
	detailView
	confirmDeleteView
	helpView
)

type Model struct {
	db       *db.DB
	mode     viewMode
	list     list.Model
	viewport viewport.Model
	width    int
	height   int
	err      error
	status   string

	// Current session data
	sessions       []models.SessionSummary
	currentSession *sessionDetail

	// Delete confirmation target
	pendingDelete *models.SessionSummary
}

type sessionDetail struct {
	Session  models.Session
	Messages []models.Message
}

func New(database *db.DB) Model {
	return Model{
		db:   database,
		mode: listView,
	}
}

func (m Model) Init() tea.Cmd {
	return loadSessions(m.db)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// Transient status messages clear on any keypress
		m.status = ""

		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "?":
			if m.mode == listView {
				m.mode = helpView
				return m, nil
			}
		}

		switch m.mode {
		case listView:
			return m.updateList(msg)
		case detailView:
			return m.updateDetail(msg)
		case confirmDeleteView:
			return m.updateConfirmDelete(msg)
		case helpView:
			return m.updateHelp(msg)
		}

	case sessionsLoadedMsg:
		m.sessions = msg.sessions
		m.list = createSessionList(msg.sessions, m.width, m.height)
		return m, nil

	case sessionDetailLoadedMsg:
		m.currentSession = &msg.detail
		m.viewport = createViewport(msg.detail, m.width, m.height)
		m.mode = detailView
		return m, nil

	case sessionDeletedMsg:
		m.mode = listView
		m.pendingDelete = nil
		m.currentSession = nil
		m.status = msg.status
		return m, loadSessions(m.db)

	case exportCopiedMsg:
		m.status = msg.status
		return m, nil

	case errMsg:
		m.err = msg.err
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit"
	}

	switch m.mode {
	case listView:
		return m.viewList()
	case detailView:
		return m.viewDetail()
	case confirmDeleteView:
		return m.viewConfirmDelete()
	case helpView:
		return m.viewHelp()
	}

	return ""
}
