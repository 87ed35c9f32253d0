package vte

// charsetKind names a substitution table. Only ASCII, DEC special graphics
// and DEC supplemental are implemented; other national designators alias
// to the closest implemented table rather than failing, since no glyph
// data exists to tell them apart yet.
type charsetKind int

const (
	charsetASCII charsetKind = iota
	charsetDECSpecialGraphics
	charsetDECSupplemental
)

// aliasCharset maps an ESC ( / ) / * / + designator final byte to one of
// the implemented tables.
func aliasCharset(final byte) charsetKind {
	switch final {
	case '0':
		return charsetDECSpecialGraphics
	case '<': // DEC supplemental
		return charsetDECSupplemental
	case 'B': // US-ASCII
		return charsetASCII
	// National variants (UK, Finnish, German, Swedish, French...) have no
	// glyph table of their own here; alias to ASCII, the closest available.
	case 'A', '4', '5', 'C', 'K', 'R', 'Q', 'Y', 'Z', 'f':
		return charsetASCII
	default:
		return charsetASCII
	}
}

// decSpecialGraphics maps 0x5f..0x7e to the VT100 line-drawing glyphs.
var decSpecialGraphics = map[rune]rune{
	0x5f: ' ',
	0x60: '◆',
	0x61: '▒',
	0x62: '␉',
	0x63: '␌',
	0x64: '␍',
	0x65: '␊',
	0x66: '°',
	0x67: '±',
	0x68: '␤',
	0x69: '␋',
	0x6a: '┘',
	0x6b: '┐',
	0x6c: '┌',
	0x6d: '└',
	0x6e: '┼',
	0x6f: '⎺',
	0x70: '⎻',
	0x71: '─',
	0x72: '⎼',
	0x73: '⎽',
	0x74: '├',
	0x75: '┤',
	0x76: '┴',
	0x77: '┬',
	0x78: '│',
	0x79: '≤',
	0x7a: '≥',
	0x7b: 'π',
	0x7c: '≠',
	0x7d: '£',
	0x7e: '·',
}

// decSupplemental maps 0xa0..0xff to Latin-1 (the DEC supplemental set is,
// for the printable range this parser cares about, a Latin-1 alias).
func decSupplemental(r rune) rune {
	return r
}

// translate applies kind's substitution to r, passing it through unchanged
// outside the table's domain.
func translate(kind charsetKind, r rune) rune {
	switch kind {
	case charsetDECSpecialGraphics:
		if g, ok := decSpecialGraphics[r]; ok {
			return g
		}
		return r
	case charsetDECSupplemental:
		return decSupplemental(r)
	default:
		return r
	}
}

// charsetSlots holds G0-G3 plus which of GL/GR they're bound to, and the
// single-shot SS2/SS3 redirect for the next printable byte.
type charsetSlots struct {
	g       [4]charsetKind
	gl, gr  int // index 0-3 into g
	glt     int // single-shift target slot set by SS2/SS3; used only while shiftOK is true
	shiftOK bool
}

func newCharsetSlots() charsetSlots {
	return charsetSlots{gl: 0, gr: 1, glt: -1}
}

// resolve returns the table currently in effect for a printable byte and
// consumes any pending single shift.
func (c *charsetSlots) resolve() charsetKind {
	if c.shiftOK {
		c.shiftOK = false
		return c.g[c.glt]
	}
	return c.g[c.gl]
}

func (c *charsetSlots) singleShift(slot int) {
	c.glt = slot
	c.shiftOK = true
}
