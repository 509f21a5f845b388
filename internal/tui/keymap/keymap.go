// Package keymap declares the dashboard's key bindings as data: each
// interaction mode maps keys to named commands, and the update loop
// dispatches on the command rather than on raw key codes.
package keymap

import tea "github.com/charmbracelet/bubbletea"

// Mode is the input mode whose bindings are active.
type Mode string

const (
	ModeNormal  Mode = "normal"  // Default dashboard mode
	ModeInput   Mode = "input"   // Keys forwarded to the focused process
	ModeHistory Mode = "history" // Scrolling frozen output history
)

// Command is a named action triggered by a key binding.
type Command string

const (
	// Normal mode
	CmdFocusNext       Command = "focus_next"
	CmdFocusPrev       Command = "focus_prev"
	CmdJumpToProcess   Command = "jump_to_process" // 1-9 keys
	CmdRestart         Command = "restart"
	CmdToggleAutofocus Command = "toggle_autofocus"
	CmdEnterInput      Command = "enter_input"
	CmdEnterHistory    Command = "enter_history"
	CmdQuit            Command = "quit"

	// Input mode
	CmdLeaveInput Command = "leave_input"
	CmdForward    Command = "forward" // catch-all: send the key to the process

	// History mode
	CmdScrollUp       Command = "scroll_up"
	CmdScrollDown     Command = "scroll_down"
	CmdScrollPageUp   Command = "scroll_page_up"
	CmdScrollPageDown Command = "scroll_page_down"
	CmdScrollTop      Command = "scroll_top"
	CmdScrollBottom   Command = "scroll_bottom"
	CmdLeaveHistory   Command = "leave_history"
)

// KeyBinding maps one key to a command. For character keys, KeyType is
// tea.KeyRunes and Rune holds the character; Rune 0 matches any rune.
// Description is the status bar help text; bindings without one stay
// out of the help line.
type KeyBinding struct {
	KeyType     tea.KeyType
	Rune        rune
	Command     Command
	Description string
}

// Matches reports whether the pressed key triggers this binding.
func (kb KeyBinding) Matches(msg tea.KeyMsg) bool {
	if kb.KeyType != tea.KeyRunes {
		return msg.Type == kb.KeyType
	}
	if msg.Type != tea.KeyRunes || len(msg.Runes) == 0 || msg.Alt {
		return false
	}
	return kb.Rune == 0 || msg.Runes[0] == kb.Rune
}

// String returns the key's display form for the status bar.
func (kb KeyBinding) String() string {
	if kb.KeyType != tea.KeyRunes {
		return kb.KeyType.String()
	}
	if kb.Rune == ' ' {
		return "space"
	}
	return string(kb.Rune)
}

// Keymap holds the bindings for every mode.
type Keymap struct {
	Modes map[Mode][]KeyBinding
}

// Lookup finds the command bound to a key in the given mode. Bindings
// are checked in declaration order, so a catch-all belongs last.
func (km *Keymap) Lookup(msg tea.KeyMsg, mode Mode) (Command, bool) {
	for _, kb := range km.Modes[mode] {
		if kb.Matches(msg) {
			return kb.Command, true
		}
	}
	return "", false
}

// Bindings returns the bindings of one mode, for help rendering.
func (km *Keymap) Bindings(mode Mode) []KeyBinding {
	return km.Modes[mode]
}
