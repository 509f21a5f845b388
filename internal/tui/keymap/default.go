package keymap

import tea "github.com/charmbracelet/bubbletea"

// Default returns the built-in key bindings.
func Default() *Keymap {
	return &Keymap{
		Modes: map[Mode][]KeyBinding{
			ModeNormal:  normalBindings(),
			ModeInput:   inputBindings(),
			ModeHistory: historyBindings(),
		},
	}
}

func normalBindings() []KeyBinding {
	return []KeyBinding{
		{KeyType: tea.KeyUp, Command: CmdFocusPrev, Description: "focus prev"},
		{KeyType: tea.KeyRunes, Rune: 'k', Command: CmdFocusPrev, Description: "focus prev"},
		{KeyType: tea.KeyDown, Command: CmdFocusNext, Description: "focus next"},
		{KeyType: tea.KeyRunes, Rune: 'j', Command: CmdFocusNext, Description: "focus next"},
		{KeyType: tea.KeyRunes, Rune: '1', Command: CmdJumpToProcess},
		{KeyType: tea.KeyRunes, Rune: '2', Command: CmdJumpToProcess},
		{KeyType: tea.KeyRunes, Rune: '3', Command: CmdJumpToProcess},
		{KeyType: tea.KeyRunes, Rune: '4', Command: CmdJumpToProcess},
		{KeyType: tea.KeyRunes, Rune: '5', Command: CmdJumpToProcess},
		{KeyType: tea.KeyRunes, Rune: '6', Command: CmdJumpToProcess},
		{KeyType: tea.KeyRunes, Rune: '7', Command: CmdJumpToProcess},
		{KeyType: tea.KeyRunes, Rune: '8', Command: CmdJumpToProcess},
		{KeyType: tea.KeyRunes, Rune: '9', Command: CmdJumpToProcess},
		{KeyType: tea.KeyRunes, Rune: 'r', Command: CmdRestart, Description: "restart"},
		{KeyType: tea.KeyRunes, Rune: 'a', Command: CmdToggleAutofocus, Description: "autofocus"},
		{KeyType: tea.KeyCtrlE, Command: CmdEnterInput, Description: "input"},
		{KeyType: tea.KeyRunes, Rune: 'h', Command: CmdEnterHistory, Description: "history"},
		{KeyType: tea.KeyPgUp, Command: CmdEnterHistory},
		{KeyType: tea.KeyRunes, Rune: 'q', Command: CmdQuit, Description: "quit"},
		{KeyType: tea.KeyCtrlC, Command: CmdQuit},
	}
}

func inputBindings() []KeyBinding {
	return []KeyBinding{
		{KeyType: tea.KeyCtrlE, Command: CmdLeaveInput, Description: "back"},
		// Everything else, including ctrl+c, goes to the child.
		{KeyType: tea.KeyRunes, Command: CmdForward},
	}
}

func historyBindings() []KeyBinding {
	return []KeyBinding{
		{KeyType: tea.KeyUp, Command: CmdScrollUp, Description: "scroll up"},
		{KeyType: tea.KeyRunes, Rune: 'k', Command: CmdScrollUp, Description: "scroll up"},
		{KeyType: tea.KeyDown, Command: CmdScrollDown, Description: "scroll down"},
		{KeyType: tea.KeyRunes, Rune: 'j', Command: CmdScrollDown, Description: "scroll down"},
		{KeyType: tea.KeyPgUp, Command: CmdScrollPageUp, Description: "page up"},
		{KeyType: tea.KeyPgDown, Command: CmdScrollPageDown, Description: "page down"},
		{KeyType: tea.KeyRunes, Rune: 'g', Command: CmdScrollTop},
		{KeyType: tea.KeyRunes, Rune: 'G', Command: CmdScrollBottom},
		{KeyType: tea.KeyEsc, Command: CmdLeaveHistory, Description: "back"},
		{KeyType: tea.KeyRunes, Rune: 'q', Command: CmdLeaveHistory, Description: "back"},
		{KeyType: tea.KeyCtrlC, Command: CmdQuit},
	}
}
