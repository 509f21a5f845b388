package vterm

import (
	"strconv"
	"strings"
)

// csi dispatches a complete CSI sequence whose parameter bytes are in
// t.params and whose final byte is final.
func (t *Terminal) csi(final byte) {
	raw := string(t.params)
	private := strings.HasPrefix(raw, "?")
	if private {
		raw = raw[1:]
	}
	params := parseParams(raw)

	if private {
		switch final {
		case 'h':
			t.privateMode(params, true)
		case 'l':
			t.privateMode(params, false)
		}
		return
	}

	switch final {
	case 'A':
		t.cy -= param(params, 0, 1)
	case 'B':
		t.cy += param(params, 0, 1)
	case 'C':
		t.cx += param(params, 0, 1)
	case 'D':
		t.cx -= param(params, 0, 1)
	case 'E':
		t.cy += param(params, 0, 1)
		t.cx = 0
	case 'F':
		t.cy -= param(params, 0, 1)
		t.cx = 0
	case 'G':
		t.cx = param(params, 0, 1) - 1
	case 'd':
		t.cy = param(params, 0, 1) - 1
	case 'H', 'f':
		t.cy = param(params, 0, 1) - 1
		t.cx = param(params, 1, 1) - 1
	case 'J':
		t.eraseDisplay(param(params, 0, 0))
	case 'K':
		t.eraseLine(param(params, 0, 0))
	case 'X':
		t.eraseChars(param(params, 0, 1))
	case 'P':
		t.deleteChars(param(params, 0, 1))
	case '@':
		t.insertChars(param(params, 0, 1))
	case 'L':
		t.insertLines(param(params, 0, 1))
	case 'M':
		t.deleteLines(param(params, 0, 1))
	case 'm':
		t.sgr(params)
	case 's':
		t.savedX, t.savedY = t.cx, t.cy
	case 'u':
		t.cx, t.cy = t.savedX, t.savedY
	}

	t.wrapPending = false
	t.clampCursor()
}

// parseParams splits semicolon-separated numeric parameters. Missing
// values come back as -1 so callers can apply per-op defaults.
func parseParams(raw string) []int {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ";")
	params := make([]int, len(parts))
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			n = -1
		}
		params[i] = n
	}
	return params
}

// param returns params[i], or def when absent or empty.
func param(params []int, i, def int) int {
	if i >= len(params) || params[i] < 0 {
		return def
	}
	if params[i] == 0 && def == 1 {
		// Movement counts treat 0 as 1.
		return 1
	}
	return params[i]
}

func (t *Terminal) privateMode(params []int, set bool) {
	switch param(params, 0, 0) {
	case 25:
		t.cursorVisible = set
	case 47, 1047, 1049:
		t.setAltScreen(set)
	}
}

// setAltScreen switches between the primary and alternate screens,
// preserving the primary screen and cursor across the round trip.
func (t *Terminal) setAltScreen(enter bool) {
	if enter == t.altScreen {
		return
	}

	if enter {
		t.mainScreen = t.screen
		t.mainX, t.mainY = t.cx, t.cy
		t.screen = make([][]Cell, t.rows)
		for i := range t.screen {
			t.screen[i] = blankRow(t.cols, Attr{})
		}
		t.cx, t.cy = 0, 0
		t.altScreen = true
		return
	}

	t.altScreen = false
	if t.mainScreen != nil {
		t.screen = t.mainScreen
		t.mainScreen = nil
		t.cx, t.cy = t.mainX, t.mainY
		// The window may have been resized while on the alt screen.
		for i := range t.screen {
			t.screen[i] = resizeRow(t.screen[i], t.cols)
		}
		for len(t.screen) < t.rows {
			t.screen = append(t.screen, blankRow(t.cols, Attr{}))
		}
		t.screen = t.screen[:t.rows]
	}
	t.clampCursor()
}

func (t *Terminal) eraseDisplay(mode int) {
	switch mode {
	case 0:
		t.eraseLine(0)
		for y := t.cy + 1; y < t.rows; y++ {
			t.screen[y] = blankRow(t.cols, t.attr)
		}
	case 1:
		t.eraseLine(1)
		for y := 0; y < t.cy; y++ {
			t.screen[y] = blankRow(t.cols, t.attr)
		}
	case 2:
		for y := range t.screen {
			t.screen[y] = blankRow(t.cols, t.attr)
		}
	case 3:
		t.scrollback = nil
	}
}

func (t *Terminal) eraseLine(mode int) {
	row := t.screen[t.cy]
	switch mode {
	case 0:
		for x := t.cx; x < t.cols; x++ {
			row[x] = blankCell(t.attr)
		}
	case 1:
		for x := 0; x <= t.cx && x < t.cols; x++ {
			row[x] = blankCell(t.attr)
		}
	case 2:
		t.screen[t.cy] = blankRow(t.cols, t.attr)
	}
}

func (t *Terminal) eraseChars(n int) {
	for x := t.cx; x < t.cx+n && x < t.cols; x++ {
		t.screen[t.cy][x] = blankCell(t.attr)
	}
}

func (t *Terminal) deleteChars(n int) {
	row := t.screen[t.cy]
	for x := t.cx; x < t.cols; x++ {
		if x+n < t.cols {
			row[x] = row[x+n]
		} else {
			row[x] = blankCell(t.attr)
		}
	}
}

func (t *Terminal) insertChars(n int) {
	row := t.screen[t.cy]
	for x := t.cols - 1; x >= t.cx+n; x-- {
		row[x] = row[x-n]
	}
	for x := t.cx; x < t.cx+n && x < t.cols; x++ {
		row[x] = blankCell(t.attr)
	}
}

func (t *Terminal) insertLines(n int) {
	for i := 0; i < n; i++ {
		copy(t.screen[t.cy+1:], t.screen[t.cy:t.rows-1])
		t.screen[t.cy] = blankRow(t.cols, t.attr)
	}
}

func (t *Terminal) deleteLines(n int) {
	for i := 0; i < n; i++ {
		copy(t.screen[t.cy:], t.screen[t.cy+1:])
		t.screen[t.rows-1] = blankRow(t.cols, t.attr)
	}
}

// sgr applies select-graphic-rendition parameters to the current pen.
func (t *Terminal) sgr(params []int) {
	if len(params) == 0 {
		t.attr = Attr{}
		return
	}

	for i := 0; i < len(params); i++ {
		p := params[i]
		if p < 0 {
			p = 0
		}
		switch {
		case p == 0:
			t.attr = Attr{}
		case p == 1:
			t.attr.Bold = true
		case p == 2:
			t.attr.Faint = true
		case p == 3:
			t.attr.Italic = true
		case p == 4:
			t.attr.Underline = true
		case p == 7:
			t.attr.Reverse = true
		case p == 22:
			t.attr.Bold = false
			t.attr.Faint = false
		case p == 23:
			t.attr.Italic = false
		case p == 24:
			t.attr.Underline = false
		case p == 27:
			t.attr.Reverse = false
		case p >= 30 && p <= 37:
			t.attr.FG = Palette(uint8(p - 30))
		case p == 38:
			if c, skip, ok := extendedColor(params[i+1:]); ok {
				t.attr.FG = c
				i += skip
			}
		case p == 39:
			t.attr.FG = Color{}
		case p >= 40 && p <= 47:
			t.attr.BG = Palette(uint8(p - 40))
		case p == 48:
			if c, skip, ok := extendedColor(params[i+1:]); ok {
				t.attr.BG = c
				i += skip
			}
		case p == 49:
			t.attr.BG = Color{}
		case p >= 90 && p <= 97:
			t.attr.FG = Palette(uint8(p - 90 + 8))
		case p >= 100 && p <= 107:
			t.attr.BG = Palette(uint8(p - 100 + 8))
		}
	}
}

// extendedColor parses the tail of a 38/48 SGR parameter: 5;n for
// indexed colors, 2;r;g;b for direct colors. It returns the color, the
// number of parameters consumed, and whether parsing succeeded.
func extendedColor(rest []int) (Color, int, bool) {
	if len(rest) >= 2 && rest[0] == 5 {
		n := rest[1]
		if n < 0 || n > 255 {
			return Color{}, 0, false
		}
		return Palette(uint8(n)), 2, true
	}
	if len(rest) >= 4 && rest[0] == 2 {
		clamp := func(v int) uint8 {
			if v < 0 {
				return 0
			}
			if v > 255 {
				return 255
			}
			return uint8(v)
		}
		return RGB(clamp(rest[1]), clamp(rest[2]), clamp(rest[3])), 4, true
	}
	return Color{}, 0, false
}
