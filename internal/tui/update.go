package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/watchdeck/watchdeck/internal/tui/keymap"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout(msg.Width, msg.Height)
		return m, nil

	case refreshMsg:
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case keymap.ModeInput:
		return m.handleInputKey(msg)
	case keymap.ModeHistory:
		return m.handleHistoryKey(msg)
	default:
		return m.handleNormalKey(msg)
	}
}

func (m Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cmd, ok := m.keys.Lookup(msg, keymap.ModeNormal)
	if !ok {
		return m, nil
	}

	switch cmd {
	case keymap.CmdFocusNext:
		m.backend.FocusNext()
	case keymap.CmdFocusPrev:
		m.backend.FocusPrev()
	case keymap.CmdJumpToProcess:
		if len(msg.Runes) == 1 {
			m.backend.SetFocus(int(msg.Runes[0] - '1'))
		}
	case keymap.CmdRestart:
		m.backend.RestartFocused()
	case keymap.CmdToggleAutofocus:
		m.backend.ToggleAutofocus()
	case keymap.CmdEnterInput:
		if m.backend.ToggleInput() {
			m.mode = keymap.ModeInput
		}
	case keymap.CmdEnterHistory:
		if m.backend.EnterHistory() {
			m.mode = keymap.ModeHistory
			if msg.Type == tea.KeyPgUp {
				m.backend.ScrollHistory(-m.paneRows)
			}
		}
	case keymap.CmdQuit:
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

// handleInputKey forwards everything except the leave chord to the
// focused process, ctrl+c included.
func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if cmd, ok := m.keys.Lookup(msg, keymap.ModeInput); ok && cmd == keymap.CmdLeaveInput {
		m.backend.ToggleInput()
		m.mode = keymap.ModeNormal
		return m, nil
	}

	if b := keyToBytes(msg); len(b) > 0 {
		m.backend.SendInput(b)
	}
	return m, nil
}

func (m Model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cmd, ok := m.keys.Lookup(msg, keymap.ModeHistory)
	if !ok {
		return m, nil
	}

	const wholeBuffer = 1 << 30

	switch cmd {
	case keymap.CmdScrollUp:
		m.backend.ScrollHistory(-1)
	case keymap.CmdScrollDown:
		m.backend.ScrollHistory(1)
	case keymap.CmdScrollPageUp:
		m.backend.ScrollHistory(-m.paneRows)
	case keymap.CmdScrollPageDown:
		m.backend.ScrollHistory(m.paneRows)
	case keymap.CmdScrollTop:
		m.backend.ScrollHistory(-wholeBuffer)
	case keymap.CmdScrollBottom:
		m.backend.ScrollHistory(wholeBuffer)
	case keymap.CmdLeaveHistory:
		m.backend.LeaveHistory()
		m.mode = keymap.ModeNormal
	case keymap.CmdQuit:
		m.backend.LeaveHistory()
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}
