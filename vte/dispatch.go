package vte

import (
	"fmt"

	"github.com/letoram/tsmgo/screen"
)

// execute runs a C0/C1 control code (ACTION_EXECUTE). None of the handled
// codes produce reply bytes; it returns nil so it shares the dispatchers'
// signature.
func (p *Parser) execute(raw rune) []byte {
	switch raw {
	case '\t':
		p.scr.NextTab(1)
	case '\b':
		p.scr.MoveRel(-1, 0)
	case '\r':
		x, y := p.scr.Cursor()
		_ = x
		p.scr.MoveTo(0, y)
	case '\n', '\v', '\f':
		p.newline()
	case '\a':
		// BEL: no sound/visual-bell model at this layer.
	case 0x1b:
		// handled by global transition to Esc; unreachable here.
	case 0x18, 0x1a:
		p.resetSequenceState()
	case 0x0e, 0x0f:
		// SO/SI: locking shift of G1/G0 into GL (ESC n / ESC o do the
		// same for G2/G3).
		if raw == 0x0e {
			p.charsets.gl = 1
		} else {
			p.charsets.gl = 0
		}
	}
	return nil
}

func (p *Parser) newline() {
	x, y := p.scr.Cursor()
	top, bottom := p.scr.Margins()
	if y == bottom {
		p.scr.ScrollUp(1)
		p.scr.MoveTo(x, y)
		return
	}
	_ = top
	p.scr.MoveTo(x, y+1)
}

func (p *Parser) resetSequenceState() {
	p.csiArgc = 0
	for i := range p.csiArgv {
		p.csiArgv[i] = -1
	}
	p.csiFlags = 0
}

// dispatchEsc runs ACTION_ESC_DISPATCH for a single, non-CSI escape
// sequence. final is the terminating byte; any collected intermediate
// bytes (charset designators, S7C1T/S8C1T) are in p.collected.
func (p *Parser) dispatchEsc(final byte) []byte {
	if len(p.collected) > 0 {
		switch p.collected[0] {
		case '(':
			p.charsets.g[0] = aliasCharset(final)
			return nil
		case ')':
			p.charsets.g[1] = aliasCharset(final)
			return nil
		case '*':
			p.charsets.g[2] = aliasCharset(final)
			return nil
		case '+':
			p.charsets.g[3] = aliasCharset(final)
			return nil
		case ' ': // ESC SP F/G: S7C1T / S8C1T
			switch final {
			case 'F':
				p.SetEncoding(Encoding7Bit)
			case 'G':
				p.SetEncoding(Encoding8Bit)
			}
			return nil
		}
	}

	switch final {
	case 'D': // IND
		x, y := p.scr.Cursor()
		top, bottom := p.scr.Margins()
		_ = top
		if y == bottom {
			p.scr.ScrollUp(1)
		} else {
			p.scr.MoveTo(x, y+1)
		}
	case 'E': // NEL
		p.newline()
		x, y := p.scr.Cursor()
		_ = x
		p.scr.MoveTo(0, y)
	case 'H': // HTS
		p.scr.SetTabStop()
	case 'M': // RI
		x, y := p.scr.Cursor()
		top, _ := p.scr.Margins()
		if y == top {
			p.scr.ScrollDown(1)
		} else {
			p.scr.MoveTo(x, y-1)
		}
	case 'N': // SS2
		p.charsets.singleShift(2)
	case 'O': // SS3
		p.charsets.singleShift(3)
	case 'n': // LS2
		p.charsets.gl = 2
	case 'o': // LS3
		p.charsets.gl = 3
	case 'Z': // DECID
		return []byte("\x1b[?6c")
	case 'c': // RIS
		p.reset()
	case '=': // DECPAM
		// application keypad: not tracked by the parser; input.Translator's
		// AppKeypad changes only when its owner sets it.
	case '>': // DECPNM
	case '7': // DECSC
		p.scr.SaveCursor()
		p.saved = savedState{charsets: p.charsets, valid: true}
	case '8': // DECRC
		p.scr.RestoreCursor()
		if p.saved.valid {
			p.charsets = p.saved.charsets
		}
	case '\\': // ST outside a string state: nothing pending.
	default:
		p.logf("vte: unknown ESC sequence '%c'", final)
	}
	return nil
}

// reset handles RIS: it restores the charsets, the SGR and default
// attributes, the tab ruler (a stop every 8 columns), the cursor home
// position, the mouse protocol and SRM. Screen contents, margins and
// screen flags are left as they are.
func (p *Parser) reset() {
	p.charsets = newCharsetSlots()
	p.cattr = screen.DefaultAttr
	p.defAttr = screen.DefaultAttr
	p.scr.SetDefaultAttr(screen.DefaultAttr)
	p.scr.ClearAllTabStops()
	cols, _ := p.scr.Size()
	for i := 0; i < cols; i += 8 {
		p.scr.MoveTo(i, 0)
		p.scr.SetTabStop()
	}
	p.scr.MoveTo(0, 0)
	p.mouse = 0
	p.sendReceiveMode = false
}

func (p *Parser) arg(i int, def int) int {
	if i >= p.csiArgc+1 || i >= CSIArgMax || p.csiArgv[i] < 0 {
		return def
	}
	return p.csiArgv[i]
}

// dispatchCSI runs ACTION_CSI_DISPATCH for a complete CSI sequence.
func (p *Parser) dispatchCSI(final byte) []byte {
	priv := p.csiFlags&IntWhat != 0

	switch final {
	case 'A':
		p.scr.MoveRel(0, -p.arg(0, 1))
	case 'B':
		p.scr.MoveRel(0, p.arg(0, 1))
	case 'C':
		p.scr.MoveRel(p.arg(0, 1), 0)
	case 'D':
		p.scr.MoveRel(-p.arg(0, 1), 0)
	case 'd':
		x, _ := p.scr.Cursor()
		p.scr.MoveTo(x, p.arg(0, 1)-1)
	case 'e':
		x, y := p.scr.Cursor()
		p.scr.MoveTo(x, y+p.arg(0, 1))
	case 'G':
		_, y := p.scr.Cursor()
		p.scr.MoveTo(p.arg(0, 1)-1, y)
	case 'H', 'f':
		p.scr.MoveTo(p.arg(1, 1)-1, p.arg(0, 1)-1)
	case 'J':
		p.eraseDisplay(priv)
	case 'K':
		p.eraseLine(priv)
	case 'X':
		x, y := p.scr.Cursor()
		p.scr.Erase(x, y, x+p.arg(0, 1)-1, y, false)
	case 'm':
		p.applySGR()
	case 'h':
		p.setMode(priv, true)
	case 'l':
		p.setMode(priv, false)
	case 'r':
		top := p.arg(0, 1) - 1
		bottom := p.arg(1, 0)
		if bottom <= 0 {
			_, rows := p.scr.Size()
			bottom = rows
		}
		p.scr.SetMargins(top, bottom-1)
	case 'c':
		if !priv {
			return []byte("\x1b[?60;1;6;9;15c")
		}
	case 'L':
		x, y := p.scr.Cursor()
		_ = x
		top, _ := p.scr.Margins()
		if y >= top {
			save1, save2 := p.scr.Margins()
			p.scr.SetMargins(y, save2)
			p.scr.ScrollDown(p.arg(0, 1))
			p.scr.SetMargins(save1, save2)
		}
	case 'M':
		x, y := p.scr.Cursor()
		_ = x
		top, bottom := p.scr.Margins()
		if y >= top && y <= bottom {
			save1, save2 := p.scr.Margins()
			p.scr.SetMargins(y, save2)
			p.scr.ScrollUp(p.arg(0, 1))
			p.scr.SetMargins(save1, save2)
		}
	case 'g':
		switch p.arg(0, 0) {
		case 0:
			p.scr.ClearTabStop()
		case 3:
			p.scr.ClearAllTabStops()
		}
	case '@':
		p.insertChars(p.arg(0, 1))
	case 'P':
		p.deleteChars(p.arg(0, 1))
	case 'Z':
		// CBT: backwards tab, not separately tracked; approximate with home.
		x, y := p.scr.Cursor()
		_ = x
		p.scr.MoveTo(0, y)
	case 'I':
		p.scr.NextTab(p.arg(0, 1))
	case 'n':
		return p.deviceStatusReport()
	case 'S':
		p.scr.ScrollUp(p.arg(0, 1))
	case 'T':
		p.scr.ScrollDown(p.arg(0, 1))
	case 'p':
		p.softReset()
	default:
		p.logf("vte: unhandled CSI sequence '%c'", final)
	}
	return nil
}

func (p *Parser) eraseDisplay(protect bool) {
	cols, rows := p.scr.Size()
	x, y := p.scr.Cursor()
	switch p.arg(0, 0) {
	case 0:
		p.scr.Erase(x, y, cols-1, rows-1, protect)
	case 1:
		p.scr.Erase(0, 0, x, y, protect)
	case 2:
		p.scr.Erase(0, 0, cols-1, rows-1, protect)
	}
}

func (p *Parser) eraseLine(protect bool) {
	cols, _ := p.scr.Size()
	x, y := p.scr.Cursor()
	switch p.arg(0, 0) {
	case 0:
		p.scr.Erase(x, y, cols-1, y, protect)
	case 1:
		p.scr.Erase(0, y, x, y, protect)
	case 2:
		p.scr.Erase(0, y, cols-1, y, protect)
	}
}

func (p *Parser) insertChars(n int) {
	p.scr.InsertChars(n)
}

func (p *Parser) deleteChars(n int) {
	p.scr.DeleteChars(n)
}

func (p *Parser) setMode(priv bool, set bool) {
	for i := 0; i <= p.csiArgc && i < CSIArgMax; i++ {
		a := p.csiArgv[i]
		if a < 0 {
			continue
		}
		if priv {
			p.setPrivateMode(a, set)
		} else {
			p.setANSIMode(a, set)
		}
	}
}

func (p *Parser) setPrivateMode(a int, set bool) {
	switch a {
	case 1: // DECCKM app-cursor: not tracked by the parser; input.Translator's AppCursorKeys changes only when its owner sets it.
	case 5: // DECSCNM
		if set {
			p.scr.SetFlag(screen.FlagInverse)
		} else {
			p.scr.ClearFlag(screen.FlagInverse)
		}
	case 6: // DECOM
		if set {
			p.scr.SetFlag(screen.FlagOrigin)
		} else {
			p.scr.ClearFlag(screen.FlagOrigin)
		}
		p.scr.MoveTo(0, 0)
	case 7: // DECAWM
		if set {
			p.scr.SetFlag(screen.FlagAutoWrap)
		} else {
			p.scr.ClearFlag(screen.FlagAutoWrap)
		}
	case 25: // DECTCEM
		if set {
			p.scr.ClearFlag(screen.FlagCursorHidden)
		} else {
			p.scr.SetFlag(screen.FlagCursorHidden)
		}
	case 47, 1047:
		if set {
			p.scr.EnterAltScreen(false)
		} else {
			p.scr.LeaveAltScreen(false, true)
		}
	case 1049:
		if set {
			p.scr.EnterAltScreen(true)
		} else {
			p.scr.LeaveAltScreen(true, true)
		}
	case 1000:
		p.mouse = setBit(p.mouse, MouseButton, set)
	case 1002:
		p.mouse = setBit(p.mouse, MouseDrag, set)
	case 1003:
		p.mouse = setBit(p.mouse, MouseMotion, set)
	case 1006:
		p.mouse = (p.mouse &^ (MouseSGR | MouseX10 | MouseRXVT)) | pick(set, MouseSGR, MouseX10)
	case 1015:
		p.mouse = (p.mouse &^ (MouseSGR | MouseX10 | MouseRXVT)) | pick(set, MouseRXVT, MouseX10)
	case 2004:
		// bracketed paste: not tracked by the parser; input.Translator's
		// BracketedPaste changes only when its owner sets it.
	default:
		p.logf("vte: unknown DEC %s-Mode %d", setWord(set), a)
	}
}

func pick(cond bool, t, f MouseProto) MouseProto {
	if cond {
		return t
	}
	return f
}

// setBit returns m with bit set or cleared according to on.
func setBit(m MouseProto, bit MouseProto, on bool) MouseProto {
	if on {
		return m | bit
	}
	return m &^ bit
}

func setWord(set bool) string {
	if set {
		return "Set"
	}
	return "Reset"
}

func (p *Parser) setANSIMode(a int, set bool) {
	switch a {
	case 4: // IRM
		if set {
			p.scr.SetFlag(screen.FlagInsertMode)
		} else {
			p.scr.ClearFlag(screen.FlagInsertMode)
		}
	case 12: // SRM
		p.sendReceiveMode = set
	default:
		p.logf("vte: unknown non-DEC (Re)Set-Mode %d", a)
	}
}

func (p *Parser) softReset() {
	p.cattr = screen.DefaultAttr
	p.scr.ClearFlag(screen.FlagOrigin)
	p.scr.SetFlag(screen.FlagAutoWrap)
}

// deviceStatusReport answers DSR 5 (device OK) and DSR 6 (cursor position,
// 1-based).
func (p *Parser) deviceStatusReport() []byte {
	switch p.arg(0, 0) {
	case 5:
		return []byte("\x1b[0n")
	case 6:
		x, y := p.scr.Cursor()
		return []byte(fmt.Sprintf("\x1b[%d;%dR", y+1, x+1))
	}
	return nil
}

// Mouse returns the currently active mouse-reporting protocol bitset.
func (p *Parser) Mouse() MouseProto {
	return p.mouse
}
