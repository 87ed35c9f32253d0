package vte

import (
	"log"

	"github.com/letoram/tsmgo/screen"
	"github.com/letoram/tsmgo/symbol"
	"github.com/letoram/tsmgo/utf8stream"
)

// Encoding selects how incoming bytes become codepoints before they reach
// the state machine.
type Encoding int

const (
	// EncodingUTF8 drives the restartable UTF-8 decoder (default).
	EncodingUTF8 Encoding = iota
	// Encoding7Bit masks the high bit of any byte that carries one, logging
	// the occurrence.
	Encoding7Bit
	// Encoding8Bit treats every byte as Latin-1.
	Encoding8Bit
)

// oscBufferDefault is the default bound on OSC string collection.
const oscBufferDefault = 256

// OSCHandler receives a complete OSC payload: group 0/1/2 are recognised
// internally for the window title, everything else is handed through
// verbatim along with whether the buffer truncated it.
type OSCHandler func(payload []byte, truncated bool)

// DCSHandler receives a complete DCS payload the same way OSCHandler does;
// the protocol inside the payload (Sixel, ReGIS, ...) is never decoded.
type DCSHandler func(payload []byte, truncated bool)

// TitleHandler is invoked when OSC 0/1/2 sets the window title.
type TitleHandler func(title string)

// Option configures a Parser at construction time.
type Option func(*Parser)

// WithLogger sets an optional diagnostic logger for unsupported or
// malformed sequences. Nil (the default) disables logging entirely.
func WithLogger(l *log.Logger) Option {
	return func(p *Parser) { p.log = l }
}

// WithOSCHandler installs the callback invoked on a complete, non-title OSC
// sequence.
func WithOSCHandler(h OSCHandler) Option {
	return func(p *Parser) { p.oscHandler = h }
}

// WithDCSHandler installs the callback invoked on a complete DCS sequence.
func WithDCSHandler(h DCSHandler) Option {
	return func(p *Parser) { p.dcsHandler = h }
}

// WithTitleHandler installs the callback invoked when OSC sets the window
// title.
func WithTitleHandler(h TitleHandler) Option {
	return func(p *Parser) { p.titleHandler = h }
}

// WithOSCBufferSize overrides the default 256-byte OSC collector bound.
func WithOSCBufferSize(n int) Option {
	return func(p *Parser) { p.oscMax = n }
}

// MouseProto is the active mouse-reporting protocol bitset described by
// DECSET 1000/1002/1003/1006/1015.
type MouseProto uint8

const (
	MouseButton MouseProto = 1 << iota
	MouseDrag
	MouseMotion
	MouseSGR
	MouseX10
	MouseRXVT
)

// savedState is the screen-independent half of a DECSC/DECRC snapshot:
// charset pointers. Cursor position, SGR attrs and wrap/origin flags are
// owned by screen.Screen and snapshotted there.
type savedState struct {
	charsets charsetSlots
	valid    bool
}

// Parser drives screen.Screen from a byte stream per the Williams-diagram
// state machine.
type Parser struct {
	scr *screen.Screen
	sym *symbol.Table

	log          *log.Logger
	oscHandler   OSCHandler
	dcsHandler   DCSHandler
	titleHandler TitleHandler

	state State
	utf8  utf8stream.Decoder

	encoding Encoding

	csiArgc   int
	csiArgv   [CSIArgMax]int
	csiFlags  IntermediateFlags
	collected []byte // raw intermediate bytes, for charset ESC dispatch

	oscBuf       []byte
	oscMax       int
	oscTruncated bool

	dcsBuf       []byte
	dcsTruncated bool

	charsets charsetSlots
	saved    savedState

	cattr   screen.Attr
	defAttr screen.Attr

	mouse MouseProto

	sendReceiveMode bool // SRM: true = off means local input isn't echoed by the host
	parseDepth      int
	selfEcho        []byte
}

// New constructs a Parser driving scr, interning printable symbols via sym.
func New(scr *screen.Screen, sym *symbol.Table, opts ...Option) *Parser {
	p := &Parser{
		scr:      scr,
		sym:      sym,
		state:    Ground,
		oscMax:   oscBufferDefault,
		charsets: newCharsetSlots(),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

func (p *Parser) logf(format string, args ...interface{}) {
	if p.log != nil {
		p.log.Printf(format, args...)
	}
}

// SetEncoding switches between UTF-8, 7-bit and 8-bit input decoding.
func (p *Parser) SetEncoding(e Encoding) {
	p.encoding = e
	p.utf8.Reset()
}

// State returns the parser's current Williams-diagram state.
func (p *Parser) State() State {
	return p.state
}

// Feed decodes and processes raw bytes from the child, dispatching onto the
// Screen. It returns bytes that should be written back to the child (DA/DSR
// replies and similar).
func (p *Parser) Feed(data []byte) []byte {
	p.parseDepth++
	var reply []byte

	for _, b := range data {
		switch p.encoding {
		case Encoding7Bit:
			if b&0x80 != 0 {
				p.logf("vte: high bit set in 7-bit mode: 0x%02x", b)
				b &^= 0x80
			}
			reply = append(reply, p.step(rune(b))...)
		case Encoding8Bit:
			reply = append(reply, p.step(rune(b))...)
		default:
			switch p.utf8.Feed(b) {
			case utf8stream.Accept:
				reply = append(reply, p.step(p.utf8.Codepoint())...)
			case utf8stream.Reject:
				reply = append(reply, p.step(0xFFFD)...)
			}
		}
	}

	p.parseDepth--
	if p.parseDepth == 0 && !p.sendReceiveMode && len(reply) > 0 {
		p.Feed(reply)
	}
	return reply
}

// step processes one decoded codepoint through the state table and returns
// any reply bytes produced.
func (p *Parser) step(raw rune) []byte {
	if st, act, ok := globalTransition(raw); ok {
		return p.doTrans(raw, st, act)
	}
	st, act := next(p.state, raw)
	return p.doTrans(raw, st, act)
}

func (p *Parser) doTrans(raw rune, st State, act action) []byte {
	var out []byte
	if st != stateNone {
		out = append(out, p.doAction(raw, exitAction(p.state))...)
		out = append(out, p.doAction(raw, act)...)
		out = append(out, p.doAction(raw, entryAction(st))...)
		p.state = st
	} else {
		out = append(out, p.doAction(raw, act)...)
	}
	return out
}

func (p *Parser) doAction(raw rune, act action) []byte {
	switch act {
	case actionNone, actionIgnore:
		return nil
	case actionPrint:
		p.print(raw)
		return nil
	case actionExecute:
		return p.execute(raw)
	case actionClear:
		p.csiArgc = 0
		for i := range p.csiArgv {
			p.csiArgv[i] = -1
		}
		p.csiFlags = 0
		p.collected = p.collected[:0]
		return nil
	case actionCollect:
		p.collected = append(p.collected, byte(raw))
		if f, ok := intermediateFlagFor(byte(raw)); ok {
			p.csiFlags |= f
		}
		return nil
	case actionParam:
		p.param(byte(raw))
		return nil
	case actionEscDispatch:
		return p.dispatchEsc(byte(raw))
	case actionCSIDispatch:
		return p.dispatchCSI(byte(raw))
	case actionDCSStart:
		p.dcsBuf = p.dcsBuf[:0]
		p.dcsTruncated = false
		return nil
	case actionDCSCollect:
		if len(p.dcsBuf) < p.oscMax {
			p.dcsBuf = append(p.dcsBuf, byte(raw))
		} else {
			p.dcsTruncated = true
		}
		return nil
	case actionDCSEnd:
		if p.dcsHandler != nil {
			p.dcsHandler(p.dcsBuf, p.dcsTruncated)
		}
		return nil
	case actionOSCStart:
		p.oscBuf = p.oscBuf[:0]
		p.oscTruncated = false
		return nil
	case actionOSCCollect:
		if len(p.oscBuf) < p.oscMax {
			p.oscBuf = append(p.oscBuf, byte(raw))
		} else {
			p.oscTruncated = true
		}
		return nil
	case actionOSCEnd:
		p.finishOSC()
		return nil
	default:
		return nil
	}
}

// param accumulates one digit or advances to the next parameter slot on a
// semicolon, with an overflow guard at 0xFFFF. Once the last of the
// CSIArgMax slots is reached, further semicolons are ignored and digits
// keep accumulating into that slot.
func (p *Parser) param(b byte) {
	if p.csiArgc >= CSIArgMax {
		return
	}
	if b == ';' {
		if p.csiArgc < CSIArgMax-1 {
			p.csiArgc++
		}
		return
	}
	if b < '0' || b > '9' {
		return
	}
	if p.csiArgv[p.csiArgc] < 0 {
		p.csiArgv[p.csiArgc] = 0
	}
	v := p.csiArgv[p.csiArgc]*10 + int(b-'0')
	if v > paramOverflow {
		v = paramOverflow
	}
	p.csiArgv[p.csiArgc] = v
}

// print maps raw through the active charset and writes it to the screen.
func (p *Parser) print(raw rune) {
	mapped := translate(p.charsets.resolve(), raw)
	width := runeWidth(mapped)
	sym := p.sym.Make(mapped)
	p.scr.Write(sym, width, p.cattr)
}

func (p *Parser) finishOSC() {
	if len(p.oscBuf) == 0 {
		return
	}
	if p.oscBuf[0] >= '0' && p.oscBuf[0] <= '2' && len(p.oscBuf) > 1 && p.oscBuf[1] == ';' {
		if p.titleHandler != nil {
			p.titleHandler(string(p.oscBuf[2:]))
		}
		return
	}
	if p.oscHandler != nil {
		p.oscHandler(p.oscBuf, p.oscTruncated)
	}
}
