package vt

// Modes holds the boolean terminal modes from spec.md §3, plus the
// DECLRMM flag that governs whether CSI 's' sets the horizontal
// scroll margin (SPEC_FULL.md §4.1 supplement) or saves the ANSI
// cursor (spec.md's CSI 's'/'u' pair) — xterm resolves the same
// ambiguity the same way, by gating on whether DECLRMM is enabled.
type Modes struct {
	Autowrap              bool
	OriginMode            bool
	InsertMode            bool
	ApplicationCursorKeys bool
	ApplicationKeypad     bool
	BracketedPaste        bool

	// AlternateScreen is reserved and inert (spec.md's Non-goal).
	AlternateScreen bool

	// Columns132 tracks DECCOLM (CSI ?3h/l) for hosts that want to
	// mirror xterm's 80/132-column indicator; the grid itself is not
	// reshaped (spec.md's Non-goal on deck-size negotiation).
	Columns132 bool

	declrmm bool
}

func defaultModes() Modes {
	return Modes{Autowrap: true}
}
