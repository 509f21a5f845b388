package vterm

import (
	"fmt"
	"strings"
)

// RenderLines serializes rows of cells back into ANSI-styled strings,
// one per row, for display inside the process pane. Attribute changes
// are emitted only at run boundaries and every line ends with a reset
// so pane styling cannot leak into the surrounding chrome.
func RenderLines(rows [][]Cell) []string {
	out := make([]string, len(rows))
	for i, row := range rows {
		out[i] = renderRow(row)
	}
	return out
}

func renderRow(row []Cell) string {
	var b strings.Builder
	var pen Attr
	styled := false

	for _, cell := range row {
		if cell.Rune == 0 {
			// Continuation of a double-width rune.
			continue
		}
		if cell.Attr != pen {
			b.WriteString(sgrSequence(cell.Attr))
			pen = cell.Attr
			styled = !pen.IsDefault()
		}
		b.WriteRune(cell.Rune)
	}

	if styled {
		b.WriteString("\x1b[0m")
	}
	return strings.TrimRight(b.String(), " ")
}

// sgrSequence builds the escape sequence that switches the pen to attr
// from any prior state. It always starts from a reset so no stale
// attribute survives.
func sgrSequence(attr Attr) string {
	codes := []string{"0"}

	if attr.Bold {
		codes = append(codes, "1")
	}
	if attr.Faint {
		codes = append(codes, "2")
	}
	if attr.Italic {
		codes = append(codes, "3")
	}
	if attr.Underline {
		codes = append(codes, "4")
	}
	if attr.Reverse {
		codes = append(codes, "7")
	}
	codes = append(codes, colorCodes(attr.FG, false)...)
	codes = append(codes, colorCodes(attr.BG, true)...)

	return "\x1b[" + strings.Join(codes, ";") + "m"
}

func colorCodes(c Color, background bool) []string {
	base := 30
	if background {
		base = 40
	}

	switch c.Mode {
	case ColorDefault:
		return nil
	case ColorPalette:
		if c.Index < 8 {
			return []string{fmt.Sprintf("%d", base+int(c.Index))}
		}
		if c.Index < 16 {
			return []string{fmt.Sprintf("%d", base+60+int(c.Index)-8)}
		}
		return []string{fmt.Sprintf("%d;5;%d", base+8, c.Index)}
	case ColorRGB:
		return []string{fmt.Sprintf("%d;2;%d;%d;%d", base+8, c.R, c.G, c.B)}
	}
	return nil
}
