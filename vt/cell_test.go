package vt

import "testing"

func TestClassifyWidth(t *testing.T) {
	cases := []struct {
		r    rune
		want Width
	}{
		{'A', WidthSingle},
		{' ', WidthSingle},
		{0x7f, WidthSingle},
		{0x1100, WidthWide},  // Hangul Jamo start
		{0x115F, WidthWide},  // Hangul Jamo end
		{0x1160, WidthSingle},
		{0x4E2D, WidthWide}, // CJK "middle"
		{0xAC00, WidthWide}, // Hangul syllable start
		{0xD7A3, WidthWide}, // Hangul syllable end
		{0xD7A4, WidthSingle},
		{0xFF01, WidthWide}, // fullwidth exclamation
		{0x20000, WidthWide},
		{0x3FFFD, WidthWide},
		{0x40000, WidthSingle},
		{0x0301, WidthSingle}, // combining acute accent, not classified wide
	}

	for i, c := range cases {
		if got := classifyWidth(c.r); got != c.want {
			t.Errorf("%d: classifyWidth(%U) = %v, want %v", i, c.r, got, c.want)
		}
	}
}

func TestBlankCellIsSingleWidthSpace(t *testing.T) {
	c := blankCell(DefaultColor)
	if c.Glyph != ' ' {
		t.Errorf("blankCell glyph = %q, want space", c.Glyph)
	}
	if c.Width != WidthSingle {
		t.Errorf("blankCell width = %v, want Single", c.Width)
	}
	if c.IsContinuation() {
		t.Errorf("blankCell should not be a continuation")
	}
}

func TestContinuationCell(t *testing.T) {
	c := continuationCell(AnsiColor(2))
	if !c.IsContinuation() {
		t.Errorf("continuationCell should report IsContinuation")
	}
	if c.Glyph != 0 {
		t.Errorf("continuationCell glyph = %q, want zero", c.Glyph)
	}
}
