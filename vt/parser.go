package vt

import "unicode/utf8"

// parser states, named after spec.md §4.3's state machine (itself the
// Paul Williams VT500-series model).
const (
	stateGround = iota
	stateEscape
	stateEscapeIntermediate
	stateCsiEntry
	stateCsiParam
	stateCsiIntermediate
	stateCsiIgnore
	stateOscString
	stateDcsEntry
	stateDcsParam
	stateDcsIntermediate
	stateDcsPassthrough
	stateDcsIgnore
)

const maxParamValue = 100000

// paramList holds the accumulated numeric parameters of a CSI or DCS
// sequence (spec.md §4.3: "digits accumulate the current parameter,
// clamped to 100000; ';' ends the current parameter and starts the
// next"). Dispatch handlers consume it front-to-back with consume().
type paramList struct {
	vals []int
	pos  int
}

func (p *paramList) reset() {
	p.vals = p.vals[:0]
	p.pos = 0
}

func (p *paramList) addDigit(d int) {
	if len(p.vals) == 0 {
		p.vals = append(p.vals, 0)
	}
	last := &p.vals[len(p.vals)-1]
	*last = *last*10 + d
	if *last > maxParamValue {
		*last = maxParamValue
	}
}

func (p *paramList) separator() {
	p.vals = append(p.vals, 0)
}

// len reports how many parameters remain unconsumed.
func (p *paramList) len() int {
	return len(p.vals) - p.pos
}

// consume pops the next parameter, reporting false once exhausted.
func (p *paramList) consume() (int, bool) {
	if p.pos >= len(p.vals) {
		return 0, false
	}
	v := p.vals[p.pos]
	p.pos++
	return v, true
}

// consumeOr pops the next parameter, substituting def when absent or
// explicitly zero — the common VT convention for a "count" argument
// (e.g. "CSI A" and "CSI 0 A" both move the cursor up by one).
func (p *paramList) consumeOr(def int) int {
	v, ok := p.consume()
	if !ok || v == 0 {
		return def
	}
	return v
}

// consumeDefault0 pops the next parameter, substituting 0 only when
// absent — used where 0 and an explicit value both carry distinct
// meaning (e.g. erase-display's mode argument).
func (p *paramList) consumeDefault0() int {
	v, ok := p.consume()
	if !ok {
		return 0
	}
	return v
}

// Sink receives the parser's dispatch events. Terminal implements this
// interface, translating it into Screen mutation and host callbacks
// (spec.md §5).
type Sink interface {
	Print(r rune)
	Execute(b byte)
	EscDispatch(inter []byte, final byte)
	CsiDispatch(params *paramList, inter []byte, private byte, final byte)
	OscDispatch(data []byte)
	DcsHook(params *paramList, inter []byte, private byte, final byte)
	DcsPut(b byte)
	DcsUnhook()
}

// Parser is the byte-level VT state machine (spec.md §4.3). It holds
// no terminal semantics of its own — every dispatch is delegated to a
// Sink.
type Parser struct {
	state int
	sink  Sink

	params  paramList
	inter   []byte
	private byte

	oscBuf     []byte
	oscEscSeen bool

	dcsEscSeen bool

	utf8Buf  []byte
	utf8Need int
}

// NewParser constructs a Parser that dispatches to sink.
func NewParser(sink Sink) *Parser {
	return &Parser{state: stateGround, sink: sink}
}

// Feed advances the state machine by one input byte.
func (p *Parser) Feed(b byte) {
	switch p.state {
	case stateOscString:
		p.feedOscString(b)
		return
	case stateDcsPassthrough, stateDcsIgnore:
		p.feedDcsTail(b)
		return
	}

	switch b {
	case 0x18, 0x1a: // CAN, SUB: abort to ground
		p.toGround()
		return
	case ctrlESC:
		p.enterEscape()
		return
	}

	switch p.state {
	case stateGround:
		p.feedGround(b)
	case stateEscape:
		p.feedEscape(b)
	case stateEscapeIntermediate:
		p.feedEscapeIntermediate(b)
	case stateCsiEntry:
		p.feedCsiEntry(b)
	case stateCsiParam:
		p.feedCsiParam(b)
	case stateCsiIntermediate:
		p.feedCsiIntermediate(b)
	case stateCsiIgnore:
		p.feedCsiIgnore(b)
	case stateDcsEntry:
		p.feedDcsEntry(b)
	case stateDcsParam:
		p.feedDcsParam(b)
	case stateDcsIntermediate:
		p.feedDcsIntermediate(b)
	}
}

func (p *Parser) toGround() {
	p.state = stateGround
	p.oscEscSeen = false
	p.dcsEscSeen = false
	p.utf8Buf = p.utf8Buf[:0]
	p.utf8Need = 0
}

func (p *Parser) enterEscape() {
	p.state = stateEscape
	p.inter = p.inter[:0]
	p.private = 0
	p.params.reset()
}

func isIntermediate(b byte) bool { return b >= 0x20 && b <= 0x2f }
func isCsiFinal(b byte) bool     { return b >= 0x40 && b <= 0x7e }
func isEscFinal(b byte) bool     { return b >= 0x30 && b <= 0x7e }
func isParamMarker(b byte) bool  { return b >= '<' && b <= '?' }
func isDigit(b byte) bool        { return b >= '0' && b <= '9' }
func isC0(b byte) bool           { return b <= 0x17 || b == 0x19 || (b >= 0x1c && b <= 0x1f) }

func (p *Parser) feedGround(b byte) {
	switch {
	case b < 0x20 || b == 0x7f:
		p.sink.Execute(b)
	case b < 0x80:
		p.sink.Print(rune(b))
	default:
		p.feedUTF8(b)
	}
}

func (p *Parser) feedUTF8(b byte) {
	if p.utf8Need == 0 {
		var need int
		switch {
		case b&0xe0 == 0xc0:
			need = 2
		case b&0xf0 == 0xe0:
			need = 3
		case b&0xf8 == 0xf0:
			need = 4
		default:
			// invalid lead byte (including a lone continuation): dropped
			return
		}
		p.utf8Buf = append(p.utf8Buf[:0], b)
		p.utf8Need = need
		return
	}

	if b&0xc0 != 0x80 {
		p.utf8Buf = p.utf8Buf[:0]
		p.utf8Need = 0
		p.feedGround(b)
		return
	}

	p.utf8Buf = append(p.utf8Buf, b)
	if len(p.utf8Buf) == p.utf8Need {
		r, _ := utf8.DecodeRune(p.utf8Buf)
		p.sink.Print(r)
		p.utf8Buf = p.utf8Buf[:0]
		p.utf8Need = 0
	}
}

func (p *Parser) feedEscape(b byte) {
	switch {
	case isC0(b):
		p.sink.Execute(b)
	case b == '[':
		p.state = stateCsiEntry
		p.inter = p.inter[:0]
		p.private = 0
		p.params.reset()
	case b == ']':
		p.state = stateOscString
		p.oscBuf = p.oscBuf[:0]
		p.oscEscSeen = false
	case b == 'P':
		p.state = stateDcsEntry
		p.inter = p.inter[:0]
		p.private = 0
		p.params.reset()
	case isIntermediate(b):
		p.inter = append(p.inter, b)
		p.state = stateEscapeIntermediate
	case isEscFinal(b):
		p.sink.EscDispatch(p.inter, b)
		p.toGround()
	default:
		p.toGround()
	}
}

func (p *Parser) feedEscapeIntermediate(b byte) {
	switch {
	case isC0(b):
		p.sink.Execute(b)
	case isIntermediate(b):
		p.inter = append(p.inter, b)
	case isEscFinal(b):
		p.sink.EscDispatch(p.inter, b)
		p.toGround()
	default:
		p.toGround()
	}
}

func (p *Parser) feedCsiEntry(b byte) {
	switch {
	case isC0(b):
		p.sink.Execute(b)
	case isDigit(b):
		p.params.addDigit(int(b - '0'))
		p.state = stateCsiParam
	case b == ';':
		p.params.separator()
		p.state = stateCsiParam
	case isParamMarker(b):
		p.private = b
		p.state = stateCsiParam
	case isIntermediate(b):
		p.inter = append(p.inter, b)
		p.state = stateCsiIntermediate
	case isCsiFinal(b):
		p.sink.CsiDispatch(&p.params, p.inter, p.private, b)
		p.toGround()
	default:
		p.state = stateCsiIgnore
	}
}

func (p *Parser) feedCsiParam(b byte) {
	switch {
	case isC0(b):
		p.sink.Execute(b)
	case isDigit(b):
		p.params.addDigit(int(b - '0'))
	case b == ';':
		p.params.separator()
	case b == ':':
		p.params.separator()
	case isIntermediate(b):
		p.inter = append(p.inter, b)
		p.state = stateCsiIntermediate
	case isCsiFinal(b):
		p.sink.CsiDispatch(&p.params, p.inter, p.private, b)
		p.toGround()
	default:
		p.state = stateCsiIgnore
	}
}

func (p *Parser) feedCsiIntermediate(b byte) {
	switch {
	case isC0(b):
		p.sink.Execute(b)
	case isIntermediate(b):
		p.inter = append(p.inter, b)
	case isCsiFinal(b):
		p.sink.CsiDispatch(&p.params, p.inter, p.private, b)
		p.toGround()
	default:
		p.state = stateCsiIgnore
	}
}

func (p *Parser) feedCsiIgnore(b byte) {
	switch {
	case isC0(b):
		p.sink.Execute(b)
	case isCsiFinal(b):
		p.toGround()
	}
}

func (p *Parser) feedOscString(b byte) {
	if p.oscEscSeen {
		p.oscEscSeen = false
		if b == '\\' {
			p.sink.OscDispatch(p.oscBuf)
			p.toGround()
			return
		}
		p.enterEscape()
		p.feedEscape(b)
		return
	}

	switch b {
	case ctrlBEL:
		p.sink.OscDispatch(p.oscBuf)
		p.toGround()
	case ctrlESC:
		p.oscEscSeen = true
	default:
		p.oscBuf = append(p.oscBuf, b)
	}
}

func (p *Parser) feedDcsEntry(b byte) {
	switch {
	case isC0(b):
		// swallowed: DCS bodies don't execute C0 controls pre-hook
	case isDigit(b):
		p.params.addDigit(int(b - '0'))
		p.state = stateDcsParam
	case b == ';':
		p.params.separator()
		p.state = stateDcsParam
	case isParamMarker(b):
		p.private = b
		p.state = stateDcsParam
	case isIntermediate(b):
		p.inter = append(p.inter, b)
		p.state = stateDcsIntermediate
	case isCsiFinal(b):
		p.sink.DcsHook(&p.params, p.inter, p.private, b)
		p.state = stateDcsPassthrough
	default:
		p.state = stateDcsIgnore
	}
}

func (p *Parser) feedDcsParam(b byte) {
	switch {
	case isDigit(b):
		p.params.addDigit(int(b - '0'))
	case b == ';', b == ':':
		p.params.separator()
	case isIntermediate(b):
		p.inter = append(p.inter, b)
		p.state = stateDcsIntermediate
	case isCsiFinal(b):
		p.sink.DcsHook(&p.params, p.inter, p.private, b)
		p.state = stateDcsPassthrough
	default:
		p.state = stateDcsIgnore
	}
}

func (p *Parser) feedDcsIntermediate(b byte) {
	switch {
	case isIntermediate(b):
		p.inter = append(p.inter, b)
	case isCsiFinal(b):
		p.sink.DcsHook(&p.params, p.inter, p.private, b)
		p.state = stateDcsPassthrough
	default:
		p.state = stateDcsIgnore
	}
}

// feedDcsTail drives both DcsPassthrough and DcsIgnore, which differ
// only in whether bytes are forwarded to the sink — both terminate the
// same way, on ST (spec.md §4.3: "DCS payloads accumulate but are not
// interpreted").
func (p *Parser) feedDcsTail(b byte) {
	if p.dcsEscSeen {
		p.dcsEscSeen = false
		if b == '\\' {
			if p.state == stateDcsPassthrough {
				p.sink.DcsUnhook()
			}
			p.toGround()
			return
		}
		if p.state == stateDcsPassthrough {
			p.sink.DcsUnhook()
		}
		p.enterEscape()
		p.feedEscape(b)
		return
	}

	if b == ctrlESC {
		p.dcsEscSeen = true
		return
	}
	if p.state == stateDcsPassthrough {
		p.sink.DcsPut(b)
	}
}
