package tui

import "github.com/charmbracelet/lipgloss"

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "loading..."
	}

	v := m.backend.View()

	sidebar := m.renderSidebar(v)
	pane := m.renderPane(v)
	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, pane)
	bar := m.renderStatusBar(v)

	return lipgloss.JoinVertical(lipgloss.Left, body, bar)
}
