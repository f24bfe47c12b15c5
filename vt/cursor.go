package vt

// Cursor is the screen's current write position (spec.md §3).
type Cursor struct {
	Row, Col int
	Visible  bool
	Blink    bool

	// pendingWrap is the deferred-wrap flag: after printing into the
	// last column, the cursor sits at that column but the next
	// printable character wraps first (spec.md §4.1 step 6).
	pendingWrap bool
}

func newCursor() Cursor {
	return Cursor{Visible: true}
}

// SavedCursor is the single saved-cursor slot (spec.md §3): a
// snapshot of cursor position and the live attribute register.
type SavedCursor struct {
	Cursor Cursor
	Attrs  Attributes
}
