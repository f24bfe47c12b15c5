package vt

import "log/slog"

// Attributes is the live text-attribute register (spec.md §3) applied
// to every newly printed cell. The zero value is the default register:
// default colors, no flags.
type Attributes struct {
	Fg, Bg Color

	Bold          bool
	Dim           bool
	Italic        bool
	Underline     bool
	Blink         bool
	Reverse       bool
	Hidden        bool
	Strikethrough bool

	// Hyperlink is the interned OSC 8 URI id for cells printed with
	// this register (0 means "no hyperlink"). Supplemental to
	// spec.md — see SPEC_FULL.md §4.3.
	Hyperlink uint32
}

// defaultAttributes is the reset target for SGR 0 and full terminal
// reset (spec.md §3).
var defaultAttributes = Attributes{Fg: DefaultColor, Bg: DefaultColor}

func (a Attributes) equal(o Attributes) bool {
	return a == o
}

// applySGR consumes every parameter in params left-to-right and
// returns the resulting register, per spec.md §4.3's SGR table. An
// empty parameter list is treated as a single implicit 0 (reset), also
// per spec.md.
func applySGR(cur Attributes, params *paramList) Attributes {
	if params.len() == 0 {
		return defaultAttributes
	}

	a := cur
	for {
		item, ok := params.consume()
		if !ok {
			break
		}

		switch {
		case item == sgrReset:
			a = defaultAttributes
		case item == sgrBoldOn:
			a.Bold = true
		case item == sgrDimOn:
			a.Dim = true
		case item == sgrItalicOn:
			a.Italic = true
		case item == sgrUnderlineOn:
			a.Underline = true
		case item == sgrBlinkOn || item == sgrRapidBlinkOn:
			a.Blink = true
		case item == sgrReverseOn:
			a.Reverse = true
		case item == sgrHiddenOn:
			a.Hidden = true
		case item == sgrStrikeOn:
			a.Strikethrough = true
		case item == sgrBoldDimOff:
			a.Bold, a.Dim = false, false
		case item == sgrItalicOff:
			a.Italic = false
		case item == sgrUnderlineOff:
			a.Underline = false
		case item == sgrBlinkOff:
			a.Blink = false
		case item == sgrReverseOff:
			a.Reverse = false
		case item == sgrHiddenOff:
			a.Hidden = false
		case item == sgrStrikeOff:
			a.Strikethrough = false
		case item >= sgrFgBase && item <= sgrFgBase+7:
			a.Fg = AnsiColor(uint8(item - sgrFgBase))
		case item == sgrFgExtended:
			a.Fg = colorFromParams(params, a.Fg)
		case item == sgrFgDefault:
			a.Fg = DefaultColor
		case item >= sgrBgBase && item <= sgrBgBase+7:
			a.Bg = AnsiColor(uint8(item - sgrBgBase))
		case item == sgrBgExtended:
			a.Bg = colorFromParams(params, a.Bg)
		case item == sgrBgDefault:
			a.Bg = DefaultColor
		case item >= sgrFgBrightBase && item <= sgrFgBrightBase+7:
			a.Fg = AnsiColor(uint8(item-sgrFgBrightBase) + 8)
		case item >= sgrBgBrightBase && item <= sgrBgBrightBase+7:
			a.Bg = AnsiColor(uint8(item-sgrBgBrightBase) + 8)
		default:
			slog.Debug("vt: unimplemented SGR parameter", "param", item)
		}
	}

	return a
}
