package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/parley-chat/parley/internal/core/models"
)

type sessionListItem struct {
	session models.SessionSummary
}

func (i sessionListItem) FilterValue() string {
	return i.session.Title
}

func (i sessionListItem) Title() string {
	return i.session.Title
}

func (i sessionListItem) Description() string {
	return fmt.Sprintf("#%d | %d messages | Updated: %s",
		i.session.ID, i.session.MessageCount, humanize.Time(i.session.UpdatedAt))
}

type sessionDelegate struct {
	list.DefaultDelegate
}

func (d sessionDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	s, ok := item.(sessionListItem)
	if !ok {
		d.DefaultDelegate.Render(w, m, index, item)
		return
	}

	title := s.Title()
	desc := s.Description()

	if index == m.Index() {
		title = selectedItemStyle.Render(title)
		desc = selectedItemStyle.Faint(true).Render(desc)
	} else {
		title = itemStyle.Render(title)
		desc = itemStyle.Render(desc)
	}

	fmt.Fprintf(w, "%s\n%s", title, desc)
}

func createSessionList(sessions []models.SessionSummary, width, height int) list.Model {
	items := make([]list.Item, len(sessions))
	for i, s := range sessions {
		items[i] = sessionListItem{session: s}
	}

	delegate := sessionDelegate{DefaultDelegate: list.NewDefaultDelegate()}

	l := list.New(items, delegate, width, height-1) // Reserve 1 line for help text
	l.Title = ""
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetFilteringEnabled(true)

	return l
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Let the list consume keys while its filter input is active
	if m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "enter":
		if selected, ok := m.list.SelectedItem().(sessionListItem); ok {
			return m, loadSessionDetail(m.db, selected.session.ID)
		}
		return m, nil

	case "d":
		if selected, ok := m.list.SelectedItem().(sessionListItem); ok {
			s := selected.session
			m.pendingDelete = &s
			m.mode = confirmDeleteView
		}
		return m, nil

	case "c":
		if selected, ok := m.list.SelectedItem().(sessionListItem); ok {
			return m, copyExport(m.db, selected.session.ID)
		}
		return m, nil

	case "r":
		return m, loadSessions(m.db)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) viewList() string {
	helpText := "↑/k up • ↓/j down • enter open • d delete • c copy export • / filter • q quit • ? more"
	if m.status != "" {
		helpText = statusStyle.Render(m.status)
	}

	if len(m.sessions) == 0 {
		return "No sessions yet. Create one with: parley new\n\n" + helpText
	}

	return m.list.View() + "\n" + helpText
}

func (m Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if m.pendingDelete != nil {
			return m, deleteSession(m.db, m.pendingDelete.ID)
		}
		m.mode = listView
		return m, nil

	case "n", "N", "esc", "q":
		m.pendingDelete = nil
		m.mode = listView
		return m, nil
	}
	return m, nil
}

func (m Model) viewConfirmDelete() string {
	if m.pendingDelete == nil {
		return ""
	}
	return fmt.Sprintf("%s\n\n  %s\n  %d message(s) will be removed with it.\n\n%s",
		warningStyle.Render("Delete this session?"),
		m.pendingDelete.Title,
		m.pendingDelete.MessageCount,
		helpStyle.Render("y: delete • n/esc: cancel"))
}
