package vterm

// ColorMode says how a Color value is interpreted.
type ColorMode uint8

const (
	// ColorDefault is the terminal's default foreground or background.
	ColorDefault ColorMode = iota
	// ColorPalette is an indexed color (0-15 basic, 16-255 extended).
	ColorPalette
	// ColorRGB is a 24-bit direct color.
	ColorRGB
)

// Color is a cell foreground or background color.
type Color struct {
	Mode    ColorMode
	Index   uint8
	R, G, B uint8
}

// Palette returns an indexed color.
func Palette(index uint8) Color {
	return Color{Mode: ColorPalette, Index: index}
}

// RGB returns a direct color.
func RGB(r, g, b uint8) Color {
	return Color{Mode: ColorRGB, R: r, G: g, B: b}
}

// Attr is the rendition state applied to printed cells.
type Attr struct {
	FG        Color
	BG        Color
	Bold      bool
	Faint     bool
	Italic    bool
	Underline bool
	Reverse   bool
}

// IsDefault reports whether the attribute equals the blank rendition.
func (a Attr) IsDefault() bool {
	return a == Attr{}
}

// Cell is one character cell of the grid. A zero Rune marks the
// continuation cell of a preceding double-width rune.
type Cell struct {
	Rune rune
	Attr Attr
}

// blankCell is what erase operations fill with, carrying the current
// background color.
func blankCell(attr Attr) Cell {
	return Cell{Rune: ' ', Attr: Attr{BG: attr.BG}}
}

func blankRow(cols int, attr Attr) []Cell {
	row := make([]Cell, cols)
	for i := range row {
		row[i] = blankCell(attr)
	}
	return row
}
