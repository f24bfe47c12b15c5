package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"

	"github.com/nwidger/vterm/vt"
)

// vtColor resolves an engine Color to a termenv.Color under profile,
// returning nil for the terminal's default (termenv leaves the
// ambient color alone when no color is set on a Style).
func vtColor(profile termenv.Profile, c vt.Color) termenv.Color {
	switch c.Kind {
	case vt.ColorAnsi:
		return profile.Color(fmt.Sprintf("%d", c.Ansi))
	case vt.ColorPalette256:
		return profile.Color(fmt.Sprintf("%d", c.Palette))
	case vt.ColorRGB:
		return profile.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
	default:
		return nil
	}
}

func styleGlyph(profile termenv.Profile, c vt.Cell) string {
	glyph := " "
	if c.Glyph != 0 {
		glyph = string(c.Glyph)
	}

	s := termenv.String(glyph)
	if fg := vtColor(profile, c.Attrs.Fg); fg != nil {
		s = s.Foreground(fg)
	}
	if bg := vtColor(profile, c.Attrs.Bg); bg != nil {
		s = s.Background(bg)
	}
	if c.Attrs.Bold {
		s = s.Bold()
	}
	if c.Attrs.Dim {
		s = s.Faint()
	}
	if c.Attrs.Italic {
		s = s.Italic()
	}
	if c.Attrs.Underline {
		s = s.Underline()
	}
	if c.Attrs.Blink {
		s = s.Blink()
	}
	if c.Attrs.Reverse {
		s = s.Reverse()
	}
	if c.Attrs.Strikethrough {
		s = s.CrossOut()
	}
	return s.String()
}

// drawRow repaints one dirty row: home the cursor to its start, erase
// it, then walk cells left to right, advancing by the host's own
// rune-width judgement (go-runewidth) rather than the engine's
// internal classification — the two are allowed to diverge, since the
// host owns rendering and the engine owns grid layout.
func drawRow(out io.Writer, profile termenv.Profile, scr *vt.Screen, row int) {
	_, cols := scr.Size()

	var sb strings.Builder
	fmt.Fprintf(&sb, "\x1b[%d;1H\x1b[2K", row+1)

	for col := 0; col < cols; {
		cell, ok := scr.CellAt(row, col)
		if !ok {
			break
		}
		if cell.IsContinuation() {
			col++
			continue
		}
		sb.WriteString(styleGlyph(profile, cell))
		w := runewidth.RuneWidth(cell.Glyph)
		if w < 1 {
			w = 1
		}
		col += w
	}

	io.WriteString(out, sb.String())
}
