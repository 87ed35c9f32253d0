package screen

// AttrFlags is a bitmask of cell rendering attributes.
type AttrFlags uint16

const (
	AttrBold AttrFlags = 1 << iota
	AttrDim
	AttrItalic
	AttrUnderline
	AttrBlink
	AttrReverse
	AttrHidden
	AttrStrike
	// AttrProtect marks a cell as immune to a protected erase (ED/EL with
	// the DEC-private '?' intermediate).
	AttrProtect
)

// Attr is the set of rendering attributes applied to a Cell: colors plus
// flags. It is the unit SGR mutates and the unit a default-attribute
// template carries forward to freshly written or erased cells.
//
// Custom is the opaque per-cell byte spec §3 calls "custom_id": the VT
// dispatcher never touches it, but a TUI façade's recolor handler can stamp
// cells with it (e.g. to tag syntax-highlighted regions) and later read it
// back during Draw.
type Attr struct {
	Fg     Color
	Bg     Color
	Flags  AttrFlags
	Custom uint8
}

// DefaultAttr is the zero-value attribute set: default colors, no flags.
var DefaultAttr = Attr{}

// Has reports whether all bits in flag are set.
func (a Attr) Has(flag AttrFlags) bool {
	return a.Flags&flag == flag
}

// With returns a copy of a with flag set.
func (a Attr) With(flag AttrFlags) Attr {
	a.Flags |= flag
	return a
}

// Without returns a copy of a with flag cleared.
func (a Attr) Without(flag AttrFlags) Attr {
	a.Flags &^= flag
	return a
}

// Inverted swaps Fg and Bg, used both for SGR reverse-video and for
// selection/global-inverse rendering.
func (a Attr) Inverted() Attr {
	a.Fg, a.Bg = a.Bg, a.Fg
	return a
}
