package tui

import tea "github.com/charmbracelet/bubbletea"

func (m Model) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "?":
		m.mode = listView
		return m, nil
	}
	return m, nil
}

func (m Model) viewHelp() string {
	help := `parley - session browser

List view:
  ↑/k, ↓/j    move
  enter       open session
  /           filter by title
  d           delete session (asks first)
  c           copy Markdown export to clipboard
  r           reload
  q           quit

Detail view:
  j/k         scroll
  d/u         half page down/up
  g/G         top/bottom
  c           copy Markdown export to clipboard
  x           delete session (asks first)
  esc/q       back to list

Press esc or q to close this help.`

	return helpStyle.Render(help)
}
