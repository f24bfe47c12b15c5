package vt

// charsetState tracks the G0/G1 designations and which is currently
// shifted in, for the DEC special-graphics line-drawing supplement
// (SPEC_FULL.md §4.1; grounded on the teacher's vt/charset.go).
type charsetState struct {
	shifted int     // index (0 or 1) of the currently active G set
	g       [2]bool // true when that G set holds the DEC special graphics charset
}

func (c *charsetState) designate(gset int, final rune) {
	if gset != 0 && gset != 1 {
		return
	}
	c.g[gset] = final == '0'
}

func (c *charsetState) shiftIn()  { c.shifted = 0 }
func (c *charsetState) shiftOut() { c.shifted = 1 }

// translate maps r through the active G set, replacing 0x60..0x7E and
// the arrow characters '+', ',', '-', '.' with the corresponding
// line-drawing glyph or arrow when that set is selected.
func (c *charsetState) translate(r rune) rune {
	if !c.g[c.shifted] {
		return r
	}
	if g, ok := decSpecialGraphics[r]; ok {
		return g
	}
	return r
}

var decSpecialGraphics = map[rune]rune{
	'`': '◆', 'a': '▒', 'b': '␉', 'c': '␌', 'd': '␍', 'e': '␊',
	'f': '°', 'g': '±', 'h': '␤', 'i': '␋', 'j': '┘', 'k': '┐',
	'l': '┌', 'm': '└', 'n': '┼', 'o': '⎺', 'p': '⎻', 'q': '─',
	'r': '⎼', 's': '⎽', 't': '├', 'u': '┤', 'v': '┴', 'w': '┬',
	'x': '│', 'y': '≤', 'z': '≥', '{': 'π', '|': '≠', '}': '£',
	'~': '·', '+': '→', ',': '←', '-': '↑', '.': '↓',
}
