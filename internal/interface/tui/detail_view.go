package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/wordwrap"
	"github.com/parley-chat/parley/internal/core/models"
)

func createViewport(detail sessionDetail, width, height int) viewport.Model {
	vp := viewport.New(width, height-4)
	vp.SetContent(renderConversation(detail, width))
	return vp
}

func renderConversation(detail sessionDetail, width int) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(detail.Session.Title) + "\n")
	b.WriteString(fmt.Sprintf("Created: %s | Messages: %d\n",
		humanize.Time(detail.Session.CreatedAt), len(detail.Messages)))
	b.WriteString(strings.Repeat("─", width) + "\n\n")

	for _, msg := range detail.Messages {
		var style lipgloss.Style
		var label string

		switch msg.Role {
		case models.RoleUser:
			style = userStyle
			label = "USER"
		case models.RoleAssistant:
			style = assistantStyle
			label = "ASSISTANT"
		case models.RoleSystem:
			style = systemStyle
			label = "SYSTEM"
		default:
			style = lipgloss.NewStyle()
			label = strings.ToUpper(string(msg.Role))
		}

		b.WriteString(style.Render("▸ " + label))
		b.WriteString(" ")
		b.WriteString(timestampStyle.Render(humanize.Time(msg.Timestamp)))
		b.WriteString("\n")

		wrapWidth := width - 10
		if wrapWidth < 40 {
			wrapWidth = 40
		}
		b.WriteString(wordwrap.String(msg.Content, wrapWidth))
		b.WriteString("\n\n")
		b.WriteString(strings.Repeat("─", width) + "\n\n")
	}

	return b.String()
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.mode = listView
		return m, nil

	case "c":
		if m.currentSession != nil {
			return m, copyExport(m.db, m.currentSession.Session.ID)
		}
		return m, nil

	case "x":
		if m.currentSession != nil {
			s := m.currentSession.Session
			m.pendingDelete = &models.SessionSummary{
				ID:           s.ID,
				Title:        s.Title,
				MessageCount: len(m.currentSession.Messages),
				UpdatedAt:    s.UpdatedAt,
			}
			m.mode = confirmDeleteView
		}
		return m, nil

	case "j", "down":
		m.viewport.LineDown(1)
		return m, nil

	case "k", "up":
		m.viewport.LineUp(1)
		return m, nil

	case "d":
		m.viewport.HalfViewDown()
		return m, nil

	case "u":
		m.viewport.HalfViewUp()
		return m, nil

	case "g":
		m.viewport.GotoTop()
		return m, nil

	case "G":
		m.viewport.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) viewDetail() string {
	if m.currentSession == nil {
		return "No session loaded"
	}

	content := m.viewport.View()

	footer := fmt.Sprintf("\n%3.f%%", m.viewport.ScrollPercent()*100)
	if m.status != "" {
		footer += "\n" + statusStyle.Render(m.status)
	}
	footer += "\nc: copy export | x: delete | j/k: scroll | g/G: top/bottom | esc: back"

	return content + footer
}
