package vt

// Width classifies how many columns a Cell's glyph occupies (spec.md §4.2).
type Width uint8

const (
	WidthSingle Width = iota
	WidthWide
)

// Cell is one screen position (spec.md §3). The zero value is not a
// valid cell — use newCell/blankCell.
type Cell struct {
	Glyph rune
	Attrs Attributes
	Width Width

	// continuation marks the right-hand half of a Wide cell. It
	// carries no independent glyph; erasing either half of a wide
	// pair erases both (spec.md's wide-cell invariant).
	continuation bool
}

func blankCell(bg Color) Cell {
	a := defaultAttributes
	a.Bg = bg
	return Cell{Glyph: ' ', Attrs: a, Width: WidthSingle}
}

func newCell(r rune, a Attributes, w Width) Cell {
	return Cell{Glyph: r, Attrs: a, Width: w}
}

func continuationCell(bg Color) Cell {
	a := defaultAttributes
	a.Bg = bg
	return Cell{Glyph: 0, Attrs: a, Width: WidthSingle, continuation: true}
}

// IsContinuation reports whether c is the right-hand half of a wide
// cell owned by its left-hand neighbor.
func (c Cell) IsContinuation() bool {
	return c.continuation
}

// classifyWidth implements spec.md §4.2's literal range table. This is
// intentionally not sourced from a general East-Asian-width library —
// see DESIGN.md for why the spec's bespoke ranges must be hand-coded
// regardless of what's available in the ecosystem.
func classifyWidth(r rune) Width {
	switch {
	case r >= 0x1100 && r <= 0x115F,
		r >= 0x2E80 && r <= 0x9FFF,
		r >= 0xAC00 && r <= 0xD7A3,
		r >= 0xF900 && r <= 0xFAFF,
		r >= 0xFF00 && r <= 0xFF60,
		r >= 0xFFE0 && r <= 0xFFE6,
		r >= 0x20000 && r <= 0x2FFFD,
		r >= 0x30000 && r <= 0x3FFFD:
		return WidthWide
	default:
		return WidthSingle
	}
}
