package vt

import (
	"fmt"
	"log/slog"
	"strings"
)

// Terminal wires a Parser to a Screen (spec.md §2: "Parser invokes
// Screen operations") and surfaces the core→host events of spec.md
// §6 as function-typed callback fields — the Go shape of the source's
// dynamic-dispatch event callbacks (spec.md §9).
type Terminal struct {
	Screen *Screen
	parser *Parser

	// OnBell fires on BEL (0x07); grid is unaffected.
	OnBell func()
	// OnTitleChanged fires on OSC 0/1/2.
	OnTitleChanged func(title string)
	// OnIconNameChanged fires on OSC 0/1 (supplemental to spec.md).
	OnIconNameChanged func(name string)
	// OnReply writes a protocol reply (DA/DSR) back to the child.
	// Supplemental to spec.md's core dispatch table; Session wires
	// this to Session.writeRaw, which skips WriteInput's newline
	// translation.
	OnReply func([]byte)
}

// NewTerminal constructs a Terminal with a freshly sized Screen.
func NewTerminal(rows, cols, maxScrollback int) *Terminal {
	t := &Terminal{Screen: NewScreen(rows, cols, maxScrollback)}
	t.parser = NewParser(t)
	return t
}

// Feed parses data, driving Screen mutations in order (spec.md §5:
// "bytes from the child are parsed in arrival order").
func (t *Terminal) Feed(data []byte) {
	for _, b := range data {
		t.parser.Feed(b)
	}
}

func (t *Terminal) reply(format string, args ...any) {
	if t.OnReply == nil {
		return
	}
	t.OnReply([]byte(fmt.Sprintf(format, args...)))
}

// Print implements Sink.
func (t *Terminal) Print(r rune) {
	t.Screen.WriteGlyph(r)
}

// Execute implements Sink for the Ground-state C0 controls (spec.md
// §4.3's ground-state table).
func (t *Terminal) Execute(b byte) {
	switch b {
	case ctrlBEL:
		if t.OnBell != nil {
			t.OnBell()
		}
	case ctrlBS:
		t.Screen.Backspace()
	case ctrlHT:
		t.Screen.Tab()
	case ctrlLF, ctrlVT, ctrlFF:
		t.Screen.LineFeed()
	case ctrlCR:
		t.Screen.CarriageReturn()
	case ctrlSO:
		t.Screen.ShiftOut()
	case ctrlSI:
		t.Screen.ShiftIn()
	}
}

// EscDispatch implements Sink for the selected Escape transitions of
// spec.md §4.3, plus the DEC special-graphics charset designation
// (SPEC_FULL.md §4.1 supplement).
func (t *Terminal) EscDispatch(inter []byte, final byte) {
	if len(inter) == 1 && (inter[0] == '(' || inter[0] == ')') {
		gset := 0
		if inter[0] == ')' {
			gset = 1
		}
		t.Screen.DesignateCharset(gset, rune(final))
		return
	}

	switch final {
	case 'M':
		t.Screen.ReverseLineFeed()
	case 'E':
		t.Screen.NextLine()
	case 'D':
		t.Screen.LineFeed()
	case '7':
		t.Screen.SaveCursor()
	case '8':
		t.Screen.RestoreCursor()
	case 'c':
		t.Screen.Reset()
	case '=':
		t.Screen.SetApplicationKeypad(true)
	case '>':
		t.Screen.SetApplicationKeypad(false)
	default:
		slog.Debug("vt: unimplemented escape sequence", "final", string(final))
	}
}

// CsiDispatch implements Sink for the CSI final-byte table of spec.md
// §4.3, plus the SPEC_FULL.md supplements (horizontal margins, ICH,
// DA/DSR/xtwinops replies, CHT/CBT/TBC).
func (t *Terminal) CsiDispatch(params *paramList, inter []byte, private byte, final byte) {
	switch final {
	case csiCUU:
		t.Screen.MoveCursorRelative(-params.consumeOr(1), 0)
	case csiCUD:
		t.Screen.MoveCursorRelative(params.consumeOr(1), 0)
	case csiCUF:
		t.Screen.MoveCursorRelative(0, params.consumeOr(1))
	case csiCUB:
		t.Screen.MoveCursorRelative(0, -params.consumeOr(1))
	case csiCNL:
		t.Screen.MoveCursorRelative(params.consumeOr(1), 0)
		t.Screen.CarriageReturn()
	case csiCPL:
		t.Screen.MoveCursorRelative(-params.consumeOr(1), 0)
		t.Screen.CarriageReturn()
	case csiCHA, csiHPA:
		t.Screen.ColumnAbsolute(params.consumeOr(1) - 1)
	case csiHPR:
		t.Screen.MoveCursorRelative(0, params.consumeOr(1))
	case csiVPA:
		t.Screen.RowAbsolute(params.consumeOr(1) - 1)
	case csiVPR:
		t.Screen.MoveCursorRelative(params.consumeOr(1), 0)
	case csiCUP, csiHVP:
		row := params.consumeOr(1) - 1
		col := params.consumeOr(1) - 1
		t.Screen.MoveCursorAbsolute(row, col)
	case csiED:
		t.Screen.EraseDisplay(params.consumeDefault0())
	case csiEL:
		t.Screen.EraseLine(params.consumeDefault0())
	case csiIL:
		t.Screen.InsertLines(params.consumeOr(1))
	case csiDL:
		t.Screen.DeleteLines(params.consumeOr(1))
	case csiDCH:
		t.Screen.DeleteChars(params.consumeOr(1))
	case csiICH:
		t.Screen.InsertChars(params.consumeOr(1))
	case csiSU:
		t.Screen.ScrollUp(params.consumeOr(1))
	case csiSD:
		t.Screen.ScrollDown(params.consumeOr(1))
	case csiECH:
		t.Screen.EraseChars(params.consumeOr(1))
	case csiCHT:
		for n := params.consumeOr(1); n > 0; n-- {
			t.Screen.Tab()
		}
	case csiCBT:
		for n := params.consumeOr(1); n > 0; n-- {
			t.Screen.backTab()
		}
	case csiTBC:
		// No custom tab stops are modeled (spec.md's CSI table omits
		// 'g'); both forms are accepted as a no-op for compatibility.
		switch params.consumeDefault0() {
		case tbcCurrent, tbcAll:
		default:
			slog.Debug("vt: unimplemented tab-clear mode")
		}
	case csiSTBM:
		rows, _ := t.Screen.Size()
		top := params.consumeOr(1) - 1
		bottom := params.consumeOr(rows) - 1
		t.Screen.SetScrollRegion(top, bottom)
	case csiSLRM:
		if t.Screen.Modes().declrmm {
			_, cols := t.Screen.Size()
			left := params.consumeOr(1) - 1
			right := params.consumeOr(cols) - 1
			t.Screen.SetHorizontalMargin(left, right)
		} else {
			t.Screen.SaveCursor()
		}
	case csiRAC:
		t.Screen.RestoreCursor()
	case csiSGR:
		t.Screen.ApplySGR(params)
	case csiSM:
		t.setModes(params, private, true)
	case csiRM:
		t.setModes(params, private, false)
	case csiDA:
		t.reply("\x1b[?1;2c")
	case csiDSR:
		t.replyDSR(params, private)
	case csiDECQ, csiWIN:
		slog.Debug("vt: accepted, unimplemented CSI sequence", "final", string(final))
	default:
		slog.Debug("vt: unimplemented CSI sequence", "final", string(final))
	}
}

func (t *Terminal) setModes(params *paramList, private byte, val bool) {
	isPrivate := private == '?'
	for {
		code, ok := params.consume()
		if !ok {
			break
		}
		if val {
			t.Screen.SetMode(code, isPrivate)
		} else {
			t.Screen.ResetMode(code, isPrivate)
		}
	}
}

func (t *Terminal) replyDSR(params *paramList, private byte) {
	if private == '?' {
		return
	}
	switch params.consumeDefault0() {
	case 5:
		t.reply("\x1b[0n")
	case 6:
		c := t.Screen.Cursor()
		t.reply("\x1b[%d;%dR", c.Row+1, c.Col+1)
	}
}

// OscDispatch implements Sink for the OSC leading-code table of
// spec.md §4.3, plus the OSC 8 hyperlink supplement (SPEC_FULL.md
// §4.3). Codes 0, 1 and 2 all set the window title per spec.md §4.3's
// literal text, so each fires OnTitleChanged; OnIconNameChanged is an
// additional, supplemental callback fired alongside it for codes 0
// and 1, letting a host that cares about the icon name distinguish it
// from the title without spec.md's event ever being dropped.
func (t *Terminal) OscDispatch(data []byte) {
	code, rest := splitOSC(string(data))
	switch code {
	case oscIconTitle:
		if t.OnIconNameChanged != nil {
			t.OnIconNameChanged(rest)
		}
		if t.OnTitleChanged != nil {
			t.OnTitleChanged(rest)
		}
	case oscIcon:
		if t.OnIconNameChanged != nil {
			t.OnIconNameChanged(rest)
		}
		if t.OnTitleChanged != nil {
			t.OnTitleChanged(rest)
		}
	case oscTitle:
		if t.OnTitleChanged != nil {
			t.OnTitleChanged(rest)
		}
	case oscPalette, oscClipboard:
		// accepted, no-op (spec.md §4.3)
	case oscHyperlink:
		t.handleHyperlink(rest)
	default:
		slog.Debug("vt: unimplemented OSC sequence", "code", code)
	}
}

func splitOSC(data string) (code, rest string) {
	idx := strings.IndexByte(data, ';')
	if idx < 0 {
		return data, ""
	}
	return data[:idx], data[idx+1:]
}

// handleHyperlink implements OSC 8 "params;URI" (SPEC_FULL.md §4.3):
// an empty URI clears the active hyperlink.
func (t *Terminal) handleHyperlink(rest string) {
	_, uri := splitOSC(rest)
	t.Screen.SetHyperlink(uri)
}

// DcsHook, DcsPut, and DcsUnhook implement Sink for DCS strings, which
// spec.md §4.3 requires to be accumulated but not interpreted.
func (t *Terminal) DcsHook(params *paramList, inter []byte, private byte, final byte) {}
func (t *Terminal) DcsPut(b byte)                                                     {}
func (t *Terminal) DcsUnhook()                                                        {}
