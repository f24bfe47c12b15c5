package vt

import "testing"

func newTestTerminal() *Terminal {
	return NewTerminal(5, 10, 100)
}

func cellGlyph(t *testing.T, scr *Screen, row, col int) rune {
	t.Helper()
	c, ok := scr.CellAt(row, col)
	if !ok {
		t.Fatalf("CellAt(%d,%d) out of bounds", row, col)
	}
	return c.Glyph
}

func TestScenarioPrintTwoChars(t *testing.T) {
	term := newTestTerminal()
	term.Feed([]byte("Hi"))

	cur := term.Screen.Cursor()
	if cur.Row != 0 || cur.Col != 2 {
		t.Fatalf("cursor = (%d,%d), want (0,2)", cur.Row, cur.Col)
	}
	if g := cellGlyph(t, term.Screen, 0, 0); g != 'H' {
		t.Errorf("(0,0) = %q, want H", g)
	}
	if g := cellGlyph(t, term.Screen, 0, 1); g != 'i' {
		t.Errorf("(0,1) = %q, want i", g)
	}
}

func TestScenarioSGRColorReset(t *testing.T) {
	term := newTestTerminal()
	term.Feed([]byte("\x1b[31mR\x1b[0mG"))

	c0, _ := term.Screen.CellAt(0, 0)
	if c0.Glyph != 'R' || !c0.Attrs.Fg.equal(AnsiColor(1)) {
		t.Errorf("(0,0) = %+v, want R with fg Ansi(1)", c0)
	}
	c1, _ := term.Screen.CellAt(0, 1)
	if c1.Glyph != 'G' || !c1.Attrs.Fg.equal(DefaultColor) {
		t.Errorf("(0,1) = %+v, want G with fg Default", c1)
	}
}

func TestScenarioCursorPositionThenWrite(t *testing.T) {
	term := newTestTerminal()
	term.Feed([]byte("\x1b[2;3HX"))

	if g := cellGlyph(t, term.Screen, 1, 2); g != 'X' {
		t.Errorf("(1,2) = %q, want X", g)
	}
	cur := term.Screen.Cursor()
	if cur.Row != 1 || cur.Col != 3 {
		t.Fatalf("cursor = (%d,%d), want (1,3)", cur.Row, cur.Col)
	}
}

func TestScenarioDeferredWrap(t *testing.T) {
	term := newTestTerminal()
	term.Feed([]byte("0123456789"))

	cur := term.Screen.Cursor()
	if cur.Row != 0 || cur.Col != 9 {
		t.Fatalf("cursor after 10 digits = (%d,%d), want (0,9)", cur.Row, cur.Col)
	}
	if !cur.pendingWrap {
		t.Fatalf("pending_wrap not set after filling the last column")
	}

	term.Feed([]byte("A"))
	cur = term.Screen.Cursor()
	if cur.Row != 1 || cur.Col != 1 {
		t.Fatalf("cursor after wrap = (%d,%d), want (1,1)", cur.Row, cur.Col)
	}
	if g := cellGlyph(t, term.Screen, 1, 0); g != 'A' {
		t.Errorf("(1,0) = %q, want A", g)
	}
	if g := cellGlyph(t, term.Screen, 0, 9); g != '9' {
		t.Errorf("(0,9) = %q, want 9 (unaffected by the wrap)", g)
	}
}

func TestScenarioExtendedRGBColor(t *testing.T) {
	term := newTestTerminal()
	term.Feed([]byte("\x1b[38;2;255;128;0mZ"))

	c, _ := term.Screen.CellAt(0, 0)
	if c.Glyph != 'Z' || !c.Attrs.Fg.equal(RGBColor(255, 128, 0)) {
		t.Errorf("(0,0) = %+v, want Z with fg Rgb(255,128,0)", c)
	}
}

func TestScenarioOSCTitleChanged(t *testing.T) {
	term := newTestTerminal()
	var gotTitle string
	term.OnTitleChanged = func(title string) { gotTitle = title }

	term.Feed([]byte("\x1b]0;hello\x07"))

	if gotTitle != "hello" {
		t.Errorf("title = %q, want hello", gotTitle)
	}
	if g := cellGlyph(t, term.Screen, 0, 0); g != ' ' {
		t.Errorf("(0,0) = %q, want unchanged blank", g)
	}
}

func TestOSCIconNameAlsoFiresTitleChanged(t *testing.T) {
	term := newTestTerminal()
	var gotTitle, gotIcon string
	term.OnTitleChanged = func(title string) { gotTitle = title }
	term.OnIconNameChanged = func(name string) { gotIcon = name }

	term.Feed([]byte("\x1b]1;myicon\x07"))

	if gotIcon != "myicon" {
		t.Errorf("icon name = %q, want myicon", gotIcon)
	}
	if gotTitle != "myicon" {
		t.Errorf("title = %q, want myicon (OSC 1 also sets the window title per spec.md §4.3)", gotTitle)
	}
}

func TestInvariantGridDimensionsFollowResize(t *testing.T) {
	term := newTestTerminal()
	term.Screen.Resize(8, 20)
	rows, cols := term.Screen.Size()
	if rows != 8 || cols != 20 {
		t.Fatalf("size = (%d,%d), want (8,20)", rows, cols)
	}
}

func TestInvariantCursorStaysInBounds(t *testing.T) {
	term := newTestTerminal()
	term.Screen.MoveCursorAbsolute(1000, 1000)
	cur := term.Screen.Cursor()
	rows, cols := term.Screen.Size()
	if cur.Row >= rows || cur.Col >= cols || cur.Row < 0 || cur.Col < 0 {
		t.Fatalf("cursor (%d,%d) out of bounds for size (%d,%d)", cur.Row, cur.Col, rows, cols)
	}
}

func TestInvariantScrollbackBounded(t *testing.T) {
	scr := NewScreen(2, 4, 3)
	for i := 0; i < 50; i++ {
		scr.LineFeed()
	}
	if len(scr.scrollback) > 3 {
		t.Fatalf("scrollback length = %d, want <= 3", len(scr.scrollback))
	}
}

func TestInvariantWideCellHasContinuation(t *testing.T) {
	term := NewTerminal(3, 10, 0)
	term.Feed([]byte("中")) // U+4E2D, wide
	c0, _ := term.Screen.CellAt(0, 0)
	c1, _ := term.Screen.CellAt(0, 1)
	if c0.Width != WidthWide {
		t.Fatalf("(0,0) width = %v, want Wide", c0.Width)
	}
	if !c1.IsContinuation() {
		t.Fatalf("(0,1) should be the wide cell's continuation")
	}
}

func TestInvariantDrainDirtyClearsOnSecondCall(t *testing.T) {
	term := newTestTerminal()
	term.Feed([]byte("x"))
	if rows := term.Screen.DrainDirty(); len(rows) == 0 {
		t.Fatalf("expected at least one dirty row after a write")
	}
	if rows := term.Screen.DrainDirty(); len(rows) != 0 {
		t.Fatalf("second drain_dirty = %v, want empty", rows)
	}
}

func TestSaveRestoreCursorRoundTrip(t *testing.T) {
	term := newTestTerminal()
	term.Screen.MoveCursorAbsolute(2, 3)
	term.Screen.ApplySGR(paramsOf(31))
	term.Screen.SaveCursor()

	term.Screen.MoveCursorAbsolute(0, 0)
	term.Screen.ApplySGR(paramsOf(0))

	term.Screen.RestoreCursor()
	cur := term.Screen.Cursor()
	if cur.Row != 2 || cur.Col != 3 {
		t.Fatalf("cursor after restore = (%d,%d), want (2,3)", cur.Row, cur.Col)
	}
	if !term.Screen.Attributes().Fg.equal(AnsiColor(1)) {
		t.Fatalf("attributes after restore = %+v, want fg Ansi(1)", term.Screen.Attributes())
	}
}

func TestBoundaryBackspaceClearsPendingWrapWithoutWrapping(t *testing.T) {
	term := newTestTerminal()
	term.Feed([]byte("0123456789")) // fills the last column, sets pending_wrap
	term.Screen.Backspace()

	cur := term.Screen.Cursor()
	if cur.pendingWrap {
		t.Fatalf("pending_wrap should be cleared by backspace")
	}
	if cur.Row != 0 {
		t.Fatalf("backspace should not wrap to a new line, row = %d", cur.Row)
	}
}

func TestBoundaryScrollRegionTopEqualsBottom(t *testing.T) {
	term := newTestTerminal()
	term.Screen.SetScrollRegion(2, 2) // top == bottom: rejected per DECSTBM

	term.Screen.MoveCursorAbsolute(4, 0)
	term.Screen.LineFeed()

	cur := term.Screen.Cursor()
	if cur.Row != 4 {
		t.Fatalf("cursor row after line feed at the grid's last row = %d, want unchanged 4 (region stayed full-grid, so this scrolled in place)", cur.Row)
	}
}

func TestBoundaryResizeClampsToMinimumOne(t *testing.T) {
	term := newTestTerminal()
	term.Screen.Resize(1, 1)
	rows, cols := term.Screen.Size()
	if rows != 1 || cols != 1 {
		t.Fatalf("size after resize(1,1) = (%d,%d), want (1,1)", rows, cols)
	}

	term.Screen.Resize(0, 0)
	rows, cols = term.Screen.Size()
	if rows != 1 || cols != 1 {
		t.Fatalf("size after resize(0,0) = (%d,%d), want clamped to (1,1)", rows, cols)
	}
}

func TestEraseDisplayModes(t *testing.T) {
	term := newTestTerminal()
	term.Feed([]byte("0123456789"))
	term.Screen.MoveCursorAbsolute(0, 5)
	term.Screen.EraseDisplay(0)

	if g := cellGlyph(t, term.Screen, 0, 4); g != '4' {
		t.Errorf("(0,4) = %q, want unaffected '4'", g)
	}
	if g := cellGlyph(t, term.Screen, 0, 5); g != ' ' {
		t.Errorf("(0,5) = %q, want erased", g)
	}
	if g := cellGlyph(t, term.Screen, 0, 9); g != ' ' {
		t.Errorf("(0,9) = %q, want erased", g)
	}
}

func TestInsertAndDeleteLines(t *testing.T) {
	term := NewTerminal(4, 5, 0)
	term.Feed([]byte("AAAAA"))
	term.Screen.MoveCursorAbsolute(1, 0)
	term.Feed([]byte("BBBBB"))
	term.Screen.MoveCursorAbsolute(2, 0)
	term.Feed([]byte("CCCCC"))

	term.Screen.MoveCursorAbsolute(1, 0)
	term.Screen.InsertLines(1)

	if g := cellGlyph(t, term.Screen, 1, 0); g != ' ' {
		t.Errorf("(1,0) after insert = %q, want blank", g)
	}
	if g := cellGlyph(t, term.Screen, 2, 0); g != 'B' {
		t.Errorf("(2,0) after insert = %q, want B (shifted down)", g)
	}

	term.Screen.DeleteLines(1)
	if g := cellGlyph(t, term.Screen, 1, 0); g != 'B' {
		t.Errorf("(1,0) after delete = %q, want B (shifted back up)", g)
	}
}

func TestHyperlinkInternAndClear(t *testing.T) {
	term := newTestTerminal()
	term.Feed([]byte("\x1b]8;;http://example.com\x07L\x1b]8;;\x07M"))

	c0, _ := term.Screen.CellAt(0, 0)
	if uri := term.Screen.HyperlinkURI(c0.Attrs.Hyperlink); uri != "http://example.com" {
		t.Errorf("hyperlink at (0,0) = %q, want http://example.com", uri)
	}
	c1, _ := term.Screen.CellAt(0, 1)
	if c1.Attrs.Hyperlink != 0 {
		t.Errorf("hyperlink at (0,1) = %d, want cleared (0)", c1.Attrs.Hyperlink)
	}
}
