package vte

import "github.com/letoram/tsmgo/screen"

// applySGR runs the full Select Graphic Rendition sequence currently
// collected in p.csiArgv against p.cattr.
func (p *Parser) applySGR() {
	n := p.csiArgc + 1
	if n == 1 && p.csiArgv[0] < 0 {
		p.cattr = screen.DefaultAttr
		return
	}

	for i := 0; i < n; i++ {
		a := p.csiArgv[i]
		switch {
		case a < 0:
			continue
		case a == 0:
			p.cattr = screen.DefaultAttr
		case a == 1:
			p.cattr.Flags |= screen.AttrBold
		case a == 2:
			p.cattr.Flags |= screen.AttrDim
		case a == 3:
			p.cattr.Flags |= screen.AttrItalic
		case a == 4:
			p.cattr.Flags |= screen.AttrUnderline
		case a == 5 || a == 6:
			p.cattr.Flags |= screen.AttrBlink
		case a == 7:
			p.cattr.Flags |= screen.AttrReverse
		case a == 21 || a == 22:
			p.cattr.Flags &^= screen.AttrBold | screen.AttrDim
		case a == 23:
			p.cattr.Flags &^= screen.AttrItalic
		case a == 24:
			p.cattr.Flags &^= screen.AttrUnderline
		case a == 25:
			p.cattr.Flags &^= screen.AttrBlink
		case a == 27:
			p.cattr.Flags &^= screen.AttrReverse
		case a >= 30 && a <= 37:
			p.cattr.Fg = p.indexedMaybeBright(uint8(a - 30))
		case a == 38:
			i = p.extendedColor(i, true)
		case a == 39:
			p.cattr.Fg = screen.Default
		case a >= 40 && a <= 47:
			p.cattr.Bg = screen.Indexed(uint8(a - 40))
		case a == 48:
			i = p.extendedColor(i, false)
		case a == 49:
			p.cattr.Bg = screen.Default
		case a >= 90 && a <= 97:
			p.cattr.Fg = screen.Indexed(uint8(a-90) + 8)
		case a >= 100 && a <= 107:
			p.cattr.Bg = screen.Indexed(uint8(a-100) + 8)
		default:
			p.logf("vte: unhandled SGR attr %d", a)
		}
	}
}

// indexedMaybeBright applies bold-as-bright: an indexed color 0-7 combined
// with the bold flag renders as its bright (8-15) counterpart.
func (p *Parser) indexedMaybeBright(idx uint8) screen.Color {
	c := screen.Indexed(idx)
	if p.cattr.Flags&screen.AttrBold != 0 {
		return c.Bright()
	}
	return c
}

// extendedColor parses the 38/48 ; 5 ; N (256-color) or 38/48 ; 2 ; R ; G ; B
// (truecolor) forms starting at argument index i (pointing at 38 or 48) and
// returns the index of the last argument it consumed.
func (p *Parser) extendedColor(i int, isFg bool) int {
	mode := p.csiArgv[i+1]
	switch mode {
	case 5:
		if i+2 >= p.csiArgc+1 || p.csiArgv[i+2] < 0 {
			p.logf("vte: invalid 256-color SGR")
			return i
		}
		idx := uint8(p.csiArgv[i+2])
		c := screen.Indexed(idx)
		if isFg {
			p.cattr.Fg = c
		} else {
			p.cattr.Bg = c
		}
		return i + 2
	case 2:
		if i+4 >= p.csiArgc+1 || p.csiArgv[i+2] < 0 || p.csiArgv[i+3] < 0 || p.csiArgv[i+4] < 0 {
			p.logf("vte: invalid truecolor SGR")
			return i
		}
		c := screen.RGB(uint8(p.csiArgv[i+2]), uint8(p.csiArgv[i+3]), uint8(p.csiArgv[i+4]))
		if isFg {
			p.cattr.Fg = c
		} else {
			p.cattr.Bg = c
		}
		return i + 4
	default:
		p.logf("vte: invalid extended color mode %d", mode)
		return i
	}
}
