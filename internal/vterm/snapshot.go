package vterm

// Snapshot is an immutable copy of the terminal contents, safe to read
// after the emulator has moved on. Lines holds scrollback followed by
// the visible screen; ScreenTop is the index of the first screen line.
type Snapshot struct {
	Cols, Rows int

	Lines     [][]Cell
	ScreenTop int

	CursorX       int
	CursorY       int // relative to the visible screen
	CursorVisible bool
}

// Snapshot copies the current screen, scrollback, and cursor state.
func (t *Terminal) Snapshot() Snapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()

	lines := make([][]Cell, 0, len(t.scrollback)+t.rows)
	for _, row := range t.scrollback {
		lines = append(lines, append([]Cell(nil), row...))
	}
	for _, row := range t.screen {
		lines = append(lines, append([]Cell(nil), row...))
	}

	return Snapshot{
		Cols:          t.cols,
		Rows:          t.rows,
		Lines:         lines,
		ScreenTop:     len(t.scrollback),
		CursorX:       t.cx,
		CursorY:       t.cy,
		CursorVisible: t.cursorVisible,
	}
}

// Window returns Rows lines starting at line index top, padding with
// blank lines past the end. Used by history scrolling to view any
// position in the scrollback.
func (s Snapshot) Window(top int) [][]Cell {
	if top < 0 {
		top = 0
	}
	window := make([][]Cell, 0, s.Rows)
	for y := top; y < top+s.Rows; y++ {
		if y < len(s.Lines) {
			window = append(window, s.Lines[y])
		} else {
			window = append(window, blankRow(s.Cols, Attr{}))
		}
	}
	return window
}

// MaxTop returns the largest useful Window offset: the position that
// shows the live screen.
func (s Snapshot) MaxTop() int {
	return s.ScreenTop
}
