// Package tui renders the process dashboard: a sidebar of processes
// with their statuses, the focused process's terminal, and a status
// bar with the active key bindings.
package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/watchdeck/watchdeck/internal/supervise"
	"github.com/watchdeck/watchdeck/internal/tui/keymap"
	"github.com/watchdeck/watchdeck/internal/tui/styles"
)

// sidebarWidth is the fixed width of the process list, including its
// separator column.
const sidebarWidth = 28

// Backend is the supervisor surface the dashboard drives. Tests
// substitute a fake.
type Backend interface {
	View() supervise.View
	FocusNext()
	FocusPrev()
	SetFocus(idx int)
	ToggleAutofocus() bool
	RestartFocused()
	SendInput(p []byte)
	Resize(cols, rows int)
	ToggleInput() bool
	EnterHistory() bool
	LeaveHistory()
	ScrollHistory(delta int)
}

// refreshMsg asks for a re-render because supervisor state changed.
type refreshMsg struct{}

// Model is the bubbletea model for the dashboard.
type Model struct {
	backend Backend
	keys    *keymap.Keymap

	mode    keymap.Mode
	spinner spinner.Model

	width, height      int
	paneCols, paneRows int

	quitting bool
}

// NewModel builds the dashboard model around a supervisor.
func NewModel(backend Backend) Model {
	sp := spinner.New(
		spinner.WithSpinner(spinner.MiniDot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(styles.SpinnerColor())),
	)
	return Model{
		backend: backend,
		keys:    keymap.Default(),
		mode:    keymap.ModeNormal,
		spinner: sp,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// layout recomputes the terminal pane size from the window size and
// pushes it to the backend.
func (m *Model) layout(width, height int) {
	m.width, m.height = width, height

	m.paneCols = max(width-sidebarWidth, 1)
	m.paneRows = max(height-1, 1)

	m.backend.Resize(m.paneCols, m.paneRows)
}
