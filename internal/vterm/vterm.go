package vterm

import (
	"sync"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// DefaultScrollback is the scrollback line budget used by New.
const DefaultScrollback = 10000

// parser states for the escape sequence state machine.
type parseState int

const (
	stateGround parseState = iota
	stateEscape
	stateCSI
	stateOSC
	stateOSCEscape
)

// Terminal is an emulated terminal screen. The owning process reader
// writes to it; the UI loop reads snapshots. Both sides go through the
// internal mutex, so a hidden process can keep updating its screen
// while another one is being rendered.
type Terminal struct {
	mu sync.RWMutex

	cols, rows int

	screen     [][]Cell // rows x cols, the visible grid
	scrollback [][]Cell // lines pushed off the top, oldest first
	maxScroll  int

	cx, cy         int
	savedX, savedY int
	wrapPending    bool
	cursorVisible  bool
	attr           Attr

	// Alternate screen support: full-screen children (test runners,
	// pagers) switch to it and back.
	altScreen    bool
	mainScreen   [][]Cell
	mainX, mainY int

	// Parser state carried across Write calls.
	pstate  parseState
	params  []byte
	partial []byte
}

// New creates an emulated terminal. Dimensions are clamped to at least
// one column and one row.
func New(cols, rows int) *Terminal {
	cols, rows = clampSize(cols, rows)
	t := &Terminal{
		cols:          cols,
		rows:          rows,
		maxScroll:     DefaultScrollback,
		cursorVisible: true,
	}
	t.screen = make([][]Cell, rows)
	for i := range t.screen {
		t.screen[i] = blankRow(cols, Attr{})
	}
	return t
}

func clampSize(cols, rows int) (int, int) {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return cols, rows
}

// Size returns the current grid dimensions.
func (t *Terminal) Size() (cols, rows int) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.cols, t.rows
}

// Write consumes raw process output. It implements io.Writer and never
// fails; a partial escape sequence or UTF-8 rune at the end of p is
// buffered until the next call.
func (t *Terminal) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := len(p)
	for len(p) > 0 {
		b := p[0]

		switch t.pstate {
		case stateGround:
			switch {
			case b == 0x1b:
				t.pstate = stateEscape
				p = p[1:]
			case b < 0x20 || b == 0x7f:
				t.control(b)
				p = p[1:]
			default:
				p = t.print(p)
			}

		case stateEscape:
			t.escape(b)
			p = p[1:]

		case stateCSI:
			if b >= 0x40 && b <= 0x7e {
				t.csi(b)
				t.params = t.params[:0]
				t.pstate = stateGround
			} else {
				t.params = append(t.params, b)
			}
			p = p[1:]

		case stateOSC:
			switch b {
			case 0x07:
				t.pstate = stateGround
			case 0x1b:
				t.pstate = stateOSCEscape
			}
			p = p[1:]

		case stateOSCEscape:
			t.pstate = stateOSC
			if b == '\\' {
				t.pstate = stateGround
			}
			p = p[1:]
		}
	}

	return n, nil
}

// control handles C0 control bytes.
func (t *Terminal) control(b byte) {
	switch b {
	case '\n', 0x0b, 0x0c:
		t.lineFeed()
	case '\r':
		t.cx = 0
		t.wrapPending = false
	case '\b':
		if t.cx > 0 {
			t.cx--
		}
		t.wrapPending = false
	case '\t':
		next := (t.cx/8 + 1) * 8
		if next > t.cols-1 {
			next = t.cols - 1
		}
		t.cx = next
	}
}

// escape handles the byte after a bare ESC.
func (t *Terminal) escape(b byte) {
	switch b {
	case '[':
		t.pstate = stateCSI
		return
	case ']':
		t.pstate = stateOSC
		return
	case 'c':
		t.reset()
	case '7':
		t.savedX, t.savedY = t.cx, t.cy
	case '8':
		t.cx, t.cy = t.savedX, t.savedY
		t.clampCursor()
	case 'D':
		t.lineFeed()
	case 'E':
		t.cx = 0
		t.lineFeed()
	case 'M':
		t.reverseIndex()
	}
	t.pstate = stateGround
}

// print consumes printable bytes starting at p[0], writing complete
// runes into the grid. It returns the unconsumed tail.
func (t *Terminal) print(p []byte) []byte {
	if len(t.partial) > 0 {
		t.partial = append(t.partial, p[0])
		if r, _ := utf8.DecodeRune(t.partial); r != utf8.RuneError {
			t.printRune(r)
			t.partial = t.partial[:0]
		} else if len(t.partial) >= utf8.UTFMax {
			t.partial = t.partial[:0]
		}
		return p[1:]
	}

	if p[0] < utf8.RuneSelf {
		t.printRune(rune(p[0]))
		return p[1:]
	}

	r, size := utf8.DecodeRune(p)
	if r == utf8.RuneError && size <= 1 {
		if !utf8.FullRune(p) {
			t.partial = append(t.partial, p...)
			return nil
		}
		return p[1:]
	}

	t.printRune(r)
	return p[size:]
}

func (t *Terminal) printRune(r rune) {
	w := runewidth.RuneWidth(r)
	if w == 0 {
		// Combining marks and zero-width runes are dropped rather than
		// merged into the previous cell.
		return
	}

	if t.wrapPending {
		t.cx = 0
		t.lineFeed()
	}

	if t.cx+w > t.cols {
		// Not enough room on this row for a wide rune.
		t.cx = 0
		t.lineFeed()
	}

	t.screen[t.cy][t.cx] = Cell{Rune: r, Attr: t.attr}
	if w == 2 && t.cx+1 < t.cols {
		t.screen[t.cy][t.cx+1] = Cell{Rune: 0, Attr: t.attr}
	}

	t.cx += w
	if t.cx >= t.cols {
		t.cx = t.cols - 1
		t.wrapPending = true
	}
}

// lineFeed moves the cursor down one row, scrolling when it is already
// on the bottom row.
func (t *Terminal) lineFeed() {
	t.wrapPending = false
	if t.cy < t.rows-1 {
		t.cy++
		return
	}
	t.scrollUp()
}

// scrollUp pushes the top row into scrollback and opens a blank row at
// the bottom. The alternate screen has no scrollback.
func (t *Terminal) scrollUp() {
	top := t.screen[0]
	copy(t.screen, t.screen[1:])
	t.screen[t.rows-1] = blankRow(t.cols, t.attr)

	if t.altScreen {
		return
	}
	t.scrollback = append(t.scrollback, top)
	if len(t.scrollback) > t.maxScroll {
		drop := len(t.scrollback) - t.maxScroll
		t.scrollback = t.scrollback[drop:]
	}
}

// reverseIndex moves the cursor up one row, scrolling the screen down
// when it is already on the top row.
func (t *Terminal) reverseIndex() {
	if t.cy > 0 {
		t.cy--
		return
	}
	copy(t.screen[1:], t.screen[:t.rows-1])
	t.screen[0] = blankRow(t.cols, t.attr)
}

// reset implements RIS: clear everything back to the initial state.
// Scrollback survives so earlier output stays reachable in history.
func (t *Terminal) reset() {
	for i := range t.screen {
		t.screen[i] = blankRow(t.cols, Attr{})
	}
	t.cx, t.cy = 0, 0
	t.savedX, t.savedY = 0, 0
	t.attr = Attr{}
	t.wrapPending = false
	t.cursorVisible = true
	t.altScreen = false
	t.mainScreen = nil
}

func (t *Terminal) clampCursor() {
	if t.cx < 0 {
		t.cx = 0
	}
	if t.cx > t.cols-1 {
		t.cx = t.cols - 1
	}
	if t.cy < 0 {
		t.cy = 0
	}
	if t.cy > t.rows-1 {
		t.cy = t.rows - 1
	}
}

// Resize changes the grid dimensions, truncating or padding content.
// Shrinking vertically pushes rows from the top of the screen into
// scrollback so recent output stays visible. Dimensions are clamped to
// at least 1x1 so degenerate window sizes cannot panic.
func (t *Terminal) Resize(cols, rows int) {
	cols, rows = clampSize(cols, rows)

	t.mu.Lock()
	defer t.mu.Unlock()

	if cols == t.cols && rows == t.rows {
		return
	}

	if cols != t.cols {
		for i := range t.screen {
			t.screen[i] = resizeRow(t.screen[i], cols)
		}
		for i := range t.scrollback {
			t.scrollback[i] = resizeRow(t.scrollback[i], cols)
		}
		t.cols = cols
	}

	for rows < t.rows {
		// Prefer dropping blank rows below the cursor before pushing
		// content into scrollback.
		if t.cy < t.rows-1 && rowBlank(t.screen[t.rows-1]) {
			t.screen = t.screen[:t.rows-1]
		} else {
			if !t.altScreen {
				t.scrollback = append(t.scrollback, t.screen[0])
			}
			t.screen = t.screen[1:]
			if t.cy > 0 {
				t.cy--
			}
		}
		t.rows--
	}
	for rows > t.rows {
		t.screen = append(t.screen, blankRow(t.cols, Attr{}))
		t.rows++
	}

	if len(t.scrollback) > t.maxScroll {
		t.scrollback = t.scrollback[len(t.scrollback)-t.maxScroll:]
	}
	t.clampCursor()
	t.wrapPending = false
}

func resizeRow(row []Cell, cols int) []Cell {
	if len(row) >= cols {
		return row[:cols]
	}
	padded := make([]Cell, cols)
	copy(padded, row)
	for i := len(row); i < cols; i++ {
		padded[i] = Cell{Rune: ' '}
	}
	return padded
}

func rowBlank(row []Cell) bool {
	for _, c := range row {
		if c.Rune != ' ' && c.Rune != 0 {
			return false
		}
	}
	return true
}
