package vt

import (
	"log/slog"
	"sort"
	"strings"
)

// Screen is the grid, scrollback, cursor, saved-cursor slot,
// attribute register, scroll region(s) and modes described in
// spec.md §3/§4.1. It performs pure state transitions — no I/O, no
// locking (spec.md §5: the host context serializes mutation and
// observation itself).
type Screen struct {
	rows, cols    int
	grid          [][]Cell
	scrollback    [][]Cell
	maxScrollback int

	cursor Cursor
	saved  *SavedCursor
	attrs  Attributes
	modes  Modes
	lnm    bool

	region  scrollRegion // vertical scroll region (top/bottom)
	hregion scrollRegion // horizontal scroll margin (SPEC_FULL.md supplement)

	cs charsetState

	dirty map[int]struct{}

	hyperlinks      []string // index 0 is reserved for "no hyperlink"
	activeHyperlink uint32
}

// NewScreen constructs a Screen of the given size with the given
// scrollback bound (spec.md §3: "bounded by max_scrollback (default
// 10,000)").
func NewScreen(rows, cols, maxScrollback int) *Screen {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	s := &Screen{
		rows:          rows,
		cols:          cols,
		maxScrollback: maxScrollback,
		cursor:        newCursor(),
		attrs:         defaultAttributes,
		modes:         defaultModes(),
		dirty:         make(map[int]struct{}),
		hyperlinks:    []string{""},
	}
	s.grid = make([][]Cell, rows)
	for i := range s.grid {
		s.grid[i] = blankRow(cols, DefaultColor)
	}
	s.region = fullRegion(rows)
	s.hregion = fullRegion(cols)
	return s
}

func (s *Screen) markDirty(row int) {
	if row < 0 || row >= s.rows {
		return
	}
	s.dirty[row] = struct{}{}
}

func (s *Screen) markAllDirty() {
	for i := 0; i < s.rows; i++ {
		s.dirty[i] = struct{}{}
	}
}

// DrainDirty returns the sorted set of rows that changed since the
// last call and clears it (spec.md §3/§8: a second immediate call
// returns empty).
func (s *Screen) DrainDirty() []int {
	if len(s.dirty) == 0 {
		return nil
	}
	rows := make([]int, 0, len(s.dirty))
	for r := range s.dirty {
		rows = append(rows, r)
	}
	sort.Ints(rows)
	s.dirty = make(map[int]struct{})
	return rows
}

// Size returns the current (rows, cols).
func (s *Screen) Size() (int, int) {
	return s.rows, s.cols
}

// Cursor returns the current cursor state.
func (s *Screen) Cursor() Cursor {
	return s.cursor
}

// Attributes returns the live attribute register.
func (s *Screen) Attributes() Attributes {
	return s.attrs
}

// CellAt returns the cell at (row, col). A negative row indexes into
// scrollback, row -1 being the most recently evicted row.
func (s *Screen) CellAt(row, col int) (Cell, bool) {
	if col < 0 || col >= s.cols {
		return Cell{}, false
	}
	if row >= 0 {
		if row >= s.rows {
			return Cell{}, false
		}
		return s.grid[row][col], true
	}

	idx := len(s.scrollback) + row
	if idx < 0 || idx >= len(s.scrollback) {
		return Cell{}, false
	}
	row2 := s.scrollback[idx]
	if col >= len(row2) {
		return Cell{}, false
	}
	return row2[col], true
}

// HyperlinkURI resolves a Cell's interned hyperlink id back to a URI,
// returning "" for id 0 (no hyperlink).
func (s *Screen) HyperlinkURI(id uint32) string {
	if int(id) >= len(s.hyperlinks) {
		return ""
	}
	return s.hyperlinks[id]
}

func (s *Screen) internHyperlink(uri string) uint32 {
	if uri == "" {
		return 0
	}
	for i, h := range s.hyperlinks[1:] {
		if h == uri {
			return uint32(i + 1)
		}
	}
	s.hyperlinks = append(s.hyperlinks, uri)
	return uint32(len(s.hyperlinks) - 1)
}

// SetHyperlink marks subsequently-printed cells with uri until
// cleared with SetHyperlink(""). Supplemental to spec.md (OSC 8).
func (s *Screen) SetHyperlink(uri string) {
	s.activeHyperlink = s.internHyperlink(uri)
}

func (s *Screen) setCell(row, col int, c Cell) {
	if row < 0 || row >= s.rows || col < 0 || col >= s.cols {
		return
	}
	s.grid[row][col] = c
	s.markDirty(row)
}

// clearWideNeighbor enforces the wide-cell invariant: writing into
// either half of a wide pair clears both (spec.md §3).
func (s *Screen) clearWideNeighbor(row, col int) {
	if row < 0 || row >= s.rows || col < 0 || col >= s.cols {
		return
	}
	c := s.grid[row][col]
	switch {
	case c.Width == WidthWide && !c.continuation:
		if col+1 < s.cols {
			s.setCell(row, col+1, blankCell(c.Attrs.Bg))
		}
	case c.continuation:
		if col-1 >= 0 {
			s.setCell(row, col-1, blankCell(c.Attrs.Bg))
		}
	}
}

func widthCols(w Width) int {
	if w == WidthWide {
		return 2
	}
	return 1
}

// WriteGlyph prints one character at the cursor respecting wrap and
// width (spec.md §4.1's "printing algorithm" — the core contract).
func (s *Screen) WriteGlyph(r rune) {
	r = s.cs.translate(r)
	w := classifyWidth(r)

	if s.cursor.pendingWrap && s.modes.Autowrap {
		s.CarriageReturn()
		s.LineFeed()
		s.cursor.pendingWrap = false
	}

	if w == WidthWide && s.cursor.Col == s.cols-1 {
		s.clearWideNeighbor(s.cursor.Row, s.cursor.Col)
		s.setCell(s.cursor.Row, s.cursor.Col, blankCell(s.attrs.Bg))
		s.CarriageReturn()
		s.LineFeed()
		s.cursor.Col = 0
	}

	if s.modes.InsertMode {
		s.shiftRight(s.cursor.Row, s.cursor.Col, widthCols(w))
	}

	row, col := s.cursor.Row, s.cursor.Col
	s.clearWideNeighbor(row, col)

	a := s.attrs
	a.Hyperlink = s.activeHyperlink
	s.setCell(row, col, newCell(r, a, w))
	if w == WidthWide {
		s.clearWideNeighbor(row, col+1)
		s.setCell(row, col+1, continuationCell(a.Bg))
	}

	s.cursor.Col += widthCols(w)
	if s.cursor.Col >= s.cols {
		s.cursor.Col = s.cols - 1
		s.cursor.pendingWrap = true
	}
	s.markDirty(row)
}

// shiftRight shifts cells [col..cols-1] right by n columns, dropping
// the rightmost n cells, for insert_mode (spec.md §4.1 step 4).
func (s *Screen) shiftRight(row, col, n int) {
	if row < 0 || row >= s.rows {
		return
	}
	r := s.grid[row]
	right := s.rightBound()
	if col > right {
		return
	}
	end := right + 1
	if n > end-col {
		n = end - col
	}
	copy(r[col+n:end], r[col:end-n])
	for i := col; i < col+n && i < end; i++ {
		r[i] = blankCell(s.attrs.Bg)
	}
	s.markDirty(row)
}

func (s *Screen) leftBound() int {
	if s.hregion.set {
		return s.hregion.min()
	}
	return 0
}

func (s *Screen) rightBound() int {
	if s.hregion.set {
		return s.hregion.max()
	}
	return s.cols - 1
}

// Backspace moves the cursor left one column, clamped, and clears
// pending wrap without wrapping (spec.md §8's boundary behavior).
func (s *Screen) Backspace() {
	s.cursor.pendingWrap = false
	s.MoveCursorRelative(0, -1)
}

// Tab advances the cursor to the next 8-column tab stop (spec.md's HT
// handling; no custom tab stops are part of the CSI surface spec.md
// exposes).
func (s *Screen) Tab() {
	col := ((s.cursor.Col / 8) + 1) * 8
	if col > s.cols-1 {
		col = s.cols - 1
	}
	s.cursor.Col = col
	s.cursor.pendingWrap = false
}

// CarriageReturn moves the cursor to column 0 (or the left margin
// when a horizontal margin is active and the cursor is right of it).
func (s *Screen) CarriageReturn() {
	col := 0
	if s.hregion.set && s.cursor.Col > s.hregion.min() {
		col = s.hregion.min()
	}
	s.cursor.Col = col
	s.cursor.pendingWrap = false
}

// LineFeed moves the cursor down one row, scrolling the scroll region
// when already at its bottom (spec.md §4.1).
func (s *Screen) LineFeed() {
	s.cursor.pendingWrap = false
	if s.cursor.Row == s.region.max() {
		s.ScrollUp(1)
	} else if s.cursor.Row < s.rows-1 {
		s.cursor.Row++
	}
}

// ReverseLineFeed moves the cursor up one row, scrolling down when
// already at the scroll region's top (ESC M).
func (s *Screen) ReverseLineFeed() {
	s.cursor.pendingWrap = false
	if s.cursor.Row == s.region.min() {
		s.ScrollDown(1)
	} else if s.cursor.Row > 0 {
		s.cursor.Row--
	}
}

// NextLine is carriage-return plus line-feed (ESC E / CSI E family).
func (s *Screen) NextLine() {
	s.CarriageReturn()
	s.LineFeed()
}

func (s *Screen) clampCursor() {
	if s.cursor.Row < 0 {
		s.cursor.Row = 0
	}
	if s.cursor.Row >= s.rows {
		s.cursor.Row = s.rows - 1
	}
	if s.cursor.Col < 0 {
		s.cursor.Col = 0
	}
	if s.cursor.Col >= s.cols {
		s.cursor.Col = s.cols - 1
	}
}

// MoveCursorAbsolute moves the cursor to (row, col), clamped to the
// grid (or, under origin mode, to the scroll region).
func (s *Screen) MoveCursorAbsolute(row, col int) {
	if s.modes.OriginMode {
		row += s.region.min()
		col += s.leftBound()
		if row > s.region.max() {
			row = s.region.max()
		}
		if col > s.rightBound() {
			col = s.rightBound()
		}
	}
	s.cursor.Row, s.cursor.Col = row, col
	s.clampCursor()
	s.cursor.pendingWrap = false
}

// MoveCursorRelative moves the cursor by (dr, dc), clamped.
func (s *Screen) MoveCursorRelative(dr, dc int) {
	s.cursor.Row += dr
	s.cursor.Col += dc
	s.clampCursor()
	if dc != 0 {
		s.cursor.pendingWrap = false
	}
}

// ColumnAbsolute moves the cursor to an absolute column.
func (s *Screen) ColumnAbsolute(col int) {
	s.cursor.Col = col
	s.clampCursor()
	s.cursor.pendingWrap = false
}

// RowAbsolute moves the cursor to an absolute row.
func (s *Screen) RowAbsolute(row int) {
	s.cursor.Row = row
	s.clampCursor()
}

// EraseDisplay implements CSI J (spec.md §4.1).
func (s *Screen) EraseDisplay(mode int) {
	switch mode {
	case 0:
		s.eraseRows(s.cursor.Row+1, s.rows-1)
		s.EraseLine(0)
	case 1:
		s.eraseRows(0, s.cursor.Row-1)
		s.EraseLine(1)
	case 2:
		s.eraseRows(0, s.rows-1)
	case 3:
		s.eraseRows(0, s.rows-1)
		s.scrollback = nil
	}
}

func (s *Screen) eraseRows(from, to int) {
	for r := from; r <= to; r++ {
		if r < 0 || r >= s.rows {
			continue
		}
		s.grid[r] = blankRow(s.cols, DefaultColor)
		s.markDirty(r)
	}
}

// EraseLine implements CSI K (spec.md §4.1).
func (s *Screen) EraseLine(mode int) {
	row := s.cursor.Row
	switch mode {
	case 0:
		s.eraseCellRange(row, s.cursor.Col, s.cols-1)
	case 1:
		s.eraseCellRange(row, 0, s.cursor.Col)
	case 2:
		s.eraseCellRange(row, 0, s.cols-1)
	}
}

func (s *Screen) eraseCellRange(row, from, to int) {
	if row < 0 || row >= s.rows {
		return
	}
	s.clearWideNeighbor(row, from)
	s.clearWideNeighbor(row, to)
	for c := from; c <= to; c++ {
		if c < 0 || c >= s.cols {
			continue
		}
		s.grid[row][c] = blankCell(DefaultColor)
	}
	s.markDirty(row)
}

// EraseChars implements CSI X: erase n cells at the cursor without
// moving it (spec.md §4.1).
func (s *Screen) EraseChars(n int) {
	if n < 1 {
		n = 1
	}
	to := s.cursor.Col + n - 1
	if to > s.cols-1 {
		to = s.cols - 1
	}
	s.eraseCellRange(s.cursor.Row, s.cursor.Col, to)
}

// InsertLines implements CSI L within the scroll region at the cursor
// row (spec.md §4.1).
func (s *Screen) InsertLines(n int) {
	if n < 1 {
		n = 1
	}
	if !s.region.contains(s.cursor.Row) {
		return
	}
	top, bottom := s.cursor.Row, s.region.max()
	s.shiftRowsDown(top, bottom, n)
}

// DeleteLines implements CSI M within the scroll region at the cursor
// row (spec.md §4.1).
func (s *Screen) DeleteLines(n int) {
	if n < 1 {
		n = 1
	}
	if !s.region.contains(s.cursor.Row) {
		return
	}
	top, bottom := s.cursor.Row, s.region.max()
	s.shiftRowsUp(top, bottom, n)
}

func (s *Screen) shiftRowsDown(top, bottom, n int) {
	if n > bottom-top+1 {
		n = bottom - top + 1
	}
	copy(s.grid[top+n:bottom+1], s.grid[top:bottom+1-n])
	for r := top; r < top+n; r++ {
		s.grid[r] = blankRow(s.cols, DefaultColor)
	}
	for r := top; r <= bottom; r++ {
		s.markDirty(r)
	}
}

func (s *Screen) shiftRowsUp(top, bottom, n int) {
	if n > bottom-top+1 {
		n = bottom - top + 1
	}
	copy(s.grid[top:bottom+1-n], s.grid[top+n:bottom+1])
	for r := bottom - n + 1; r <= bottom; r++ {
		s.grid[r] = blankRow(s.cols, DefaultColor)
	}
	for r := top; r <= bottom; r++ {
		s.markDirty(r)
	}
}

// DeleteChars implements CSI P: shift cells left, padding the row end
// with default cells (spec.md §4.1).
func (s *Screen) DeleteChars(n int) {
	if n < 1 {
		n = 1
	}
	row := s.cursor.Row
	left, right := s.cursor.Col, s.rightBound()
	if left > right {
		return
	}
	if n > right-left+1 {
		n = right - left + 1
	}
	r := s.grid[row]
	copy(r[left:right+1-n], r[left+n:right+1])
	for i := right - n + 1; i <= right; i++ {
		r[i] = blankCell(DefaultColor)
	}
	s.markDirty(row)
}

// InsertChars implements CSI @: shift cells right, dropping the
// rightmost n (supplemental to spec.md, grounded in the teacher's ICH
// handling).
func (s *Screen) InsertChars(n int) {
	if n < 1 {
		n = 1
	}
	s.shiftRight(s.cursor.Row, s.cursor.Col, n)
}

// ScrollUp scrolls the scroll region up by n, evicting rows into
// scrollback only when the region's top is row 0 (spec.md §4.1).
func (s *Screen) ScrollUp(n int) {
	if n < 1 {
		n = 1
	}
	top, bottom := s.region.min(), s.region.max()
	for i := 0; i < n; i++ {
		if top == 0 {
			s.scrollback = pushScrollback(s.scrollback, s.grid[top], s.maxScrollback)
		}
		copy(s.grid[top:bottom], s.grid[top+1:bottom+1])
		s.grid[bottom] = blankRow(s.cols, DefaultColor)
	}
	for r := top; r <= bottom; r++ {
		s.markDirty(r)
	}
}

// ScrollDown scrolls the scroll region down by n; it never writes to
// scrollback (spec.md §4.1).
func (s *Screen) ScrollDown(n int) {
	if n < 1 {
		n = 1
	}
	top, bottom := s.region.min(), s.region.max()
	for i := 0; i < n; i++ {
		copy(s.grid[top+1:bottom+1], s.grid[top:bottom])
		s.grid[top] = blankRow(s.cols, DefaultColor)
	}
	for r := top; r <= bottom; r++ {
		s.markDirty(r)
	}
}

// SetScrollRegion implements CSI r (spec.md §4.1).
func (s *Screen) SetScrollRegion(top, bottom int) {
	if top < 0 {
		top = 0
	}
	if bottom > s.rows-1 {
		bottom = s.rows - 1
	}
	if bottom <= top {
		return
	}
	s.region = newRegion(top, bottom)
	if s.modes.OriginMode {
		s.MoveCursorAbsolute(0, 0)
	} else {
		s.cursor.Row, s.cursor.Col = 0, 0
		s.clampCursor()
	}
	s.cursor.pendingWrap = false
}

// SetHorizontalMargin implements the DECLRMM-gated CSI s supplement
// (SPEC_FULL.md §4.1).
func (s *Screen) SetHorizontalMargin(left, right int) {
	if left < 0 {
		left = 0
	}
	if right > s.cols-1 {
		right = s.cols - 1
	}
	if right <= left {
		return
	}
	s.hregion = newRegion(left, right)
	s.cursor.Row, s.cursor.Col = 0, 0
	s.clampCursor()
}

// SaveCursor snapshots cursor position and the live attribute
// register into the single saved-cursor slot (spec.md §3).
func (s *Screen) SaveCursor() {
	s.saved = &SavedCursor{Cursor: s.cursor, Attrs: s.attrs}
}

// RestoreCursor restores the most recently saved cursor/attributes,
// or does nothing if nothing was ever saved.
func (s *Screen) RestoreCursor() {
	if s.saved == nil {
		return
	}
	s.cursor = s.saved.Cursor
	s.attrs = s.saved.Attrs
}

// ApplySGR mutates the attribute register per the SGR parameters in
// params (spec.md §4.3's SGR table).
func (s *Screen) ApplySGR(params *paramList) {
	s.attrs = applySGR(s.attrs, params)
}

// SetAttributes replaces the live attribute register wholesale.
func (s *Screen) SetAttributes(a Attributes) {
	s.attrs = a
}

// ResetAttributes restores the default attribute register (SGR 0).
func (s *Screen) ResetAttributes() {
	s.attrs = defaultAttributes
}

// SetMode and ResetMode implement CSI h/l (spec.md §4.3's mode table).
func (s *Screen) SetMode(code int, private bool) {
	s.setMode(code, private, true)
}

func (s *Screen) ResetMode(code int, private bool) {
	s.setMode(code, private, false)
}

func (s *Screen) setMode(code int, private, val bool) {
	switch {
	case !private && code == modeIRM:
		s.modes.InsertMode = val
	case !private && code == modeLNM:
		s.lnm = val
	case private && code == modeDECCKM:
		s.modes.ApplicationCursorKeys = val
	case private && code == modeDECOM:
		s.modes.OriginMode = val
	case private && code == modeDECAWM:
		s.modes.Autowrap = val
	case private && code == modeDECTCEM:
		s.cursor.Visible = val
	case private && code == modeDECLRMM:
		s.modes.declrmm = val
		if !val {
			s.hregion = fullRegion(s.cols)
		}
	case private && code == modeAltScr:
		s.modes.AlternateScreen = val
	case private && code == modeBracket:
		s.modes.BracketedPaste = val
	case private && code == modeDECCOLM:
		s.modes.Columns132 = val
		for i := range s.grid {
			s.grid[i] = blankRow(s.cols, DefaultColor)
		}
		s.cursor = newCursor()
		s.markAllDirty()
	default:
		slog.Debug("vt: unimplemented mode", "code", code, "private", private, "val", val)
	}
}

// Modes returns a copy of the current mode flags.
func (s *Screen) Modes() Modes {
	return s.modes
}

// Reset performs a full terminal reset (ESC c): attributes, cursor,
// erase 2, default modes (spec.md §4.1/§4.3).
func (s *Screen) Reset() {
	for i := range s.grid {
		s.grid[i] = blankRow(s.cols, DefaultColor)
	}
	s.cursor = newCursor()
	s.saved = nil
	s.attrs = defaultAttributes
	s.modes = defaultModes()
	s.lnm = false
	s.region = fullRegion(s.rows)
	s.hregion = fullRegion(s.cols)
	s.cs = charsetState{}
	s.activeHyperlink = 0
	s.markAllDirty()
}

// Resize reshapes the grid to (newRows, newCols) per spec.md §4.1's
// resize rules: columns truncate/pad, rows evict to scrollback or
// append blank rows, the scroll region resets to the full grid, the
// cursor clamps, and every row is marked dirty. Wrapped lines are not
// reflowed (spec.md §9's documented simplification).
func (s *Screen) Resize(newRows, newCols int) {
	if newRows < 1 {
		newRows = 1
	}
	if newCols < 1 {
		newCols = 1
	}

	for i, row := range s.grid {
		s.grid[i] = resizeRow(row, newCols)
	}

	switch {
	case newRows > s.rows:
		for i := s.rows; i < newRows; i++ {
			s.grid = append(s.grid, blankRow(newCols, DefaultColor))
		}
	case newRows < s.rows:
		drop := s.rows - newRows
		for i := 0; i < drop; i++ {
			s.scrollback = pushScrollback(s.scrollback, s.grid[i], s.maxScrollback)
		}
		s.grid = s.grid[drop:]
	}

	s.rows, s.cols = newRows, newCols
	s.region = fullRegion(newRows)
	s.hregion = fullRegion(newCols)
	s.clampCursor()
	s.cursor.pendingWrap = false
	s.markAllDirty()
}

func resizeRow(row []Cell, newCols int) []Cell {
	if len(row) == newCols {
		return row
	}
	if len(row) > newCols {
		return cloneRow(row[:newCols])
	}
	padded := make([]Cell, newCols)
	copy(padded, row)
	for i := len(row); i < newCols; i++ {
		padded[i] = blankCell(DefaultColor)
	}
	return padded
}

// Selection identifies a rectangle of text for TextIn, row-major from
// (StartRow, StartCol) to (EndRow, EndCol) inclusive. Rows may be
// negative to reach into scrollback (see CellAt).
type Selection struct {
	StartRow, StartCol int
	EndRow, EndCol      int
}

// TextIn extracts the plain text (no attributes) covered by sel,
// trimming trailing spaces from each row.
func (s *Screen) TextIn(sel Selection) string {
	var lines []string
	for row := sel.StartRow; row <= sel.EndRow; row++ {
		from, to := 0, s.cols-1
		if row == sel.StartRow {
			from = sel.StartCol
		}
		if row == sel.EndRow {
			to = sel.EndCol
		}

		var sb strings.Builder
		for col := from; col <= to; col++ {
			c, ok := s.CellAt(row, col)
			if !ok || c.IsContinuation() {
				continue
			}
			if c.Glyph == 0 {
				sb.WriteRune(' ')
			} else {
				sb.WriteRune(c.Glyph)
			}
		}
		lines = append(lines, strings.TrimRight(sb.String(), " "))
	}
	return strings.Join(lines, "\n")
}

// DesignateCharset selects the DEC special-graphics charset for G0 or
// G1 (SPEC_FULL.md §4.1 supplement).
func (s *Screen) DesignateCharset(gset int, final rune) {
	s.cs.designate(gset, final)
}

func (s *Screen) ShiftIn()  { s.cs.shiftIn() }
func (s *Screen) ShiftOut() { s.cs.shiftOut() }

// SetApplicationKeypad implements DECKPAM/DECKPNM (ESC = / ESC >).
func (s *Screen) SetApplicationKeypad(v bool) {
	s.modes.ApplicationKeypad = v
}

// backTab moves the cursor to the previous 8-column tab stop (CSI Z).
func (s *Screen) backTab() {
	if s.cursor.Col == 0 {
		return
	}
	col := ((s.cursor.Col - 1) / 8) * 8
	if col < 0 {
		col = 0
	}
	s.cursor.Col = col
	s.cursor.pendingWrap = false
}
