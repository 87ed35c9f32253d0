package screen

import "github.com/letoram/tsmgo/symbol"

// Cell is one grid position: an interned symbol, its display width, the
// attribute set it was written with, and the age counter it was last
// touched at. A double-width symbol occupies two adjacent Cells; the second
// is a Width-0 continuation that carries the same symbol and attr so a
// naive per-cell reader never sees a hole.
type Cell struct {
	Sym   symbol.Symbol
	Width int
	Attr  Attr
	Age   uint32
}

// blankCell returns a space cell with the given attribute and age, the
// value every Erase/Resize-grown position is set to.
func blankCell(attr Attr, age uint32) Cell {
	return Cell{Sym: symbol.Symbol(' '), Width: 1, Attr: attr, Age: age}
}

// IsContinuation reports whether c is the zero-width second half of a
// double-width symbol.
func (c Cell) IsContinuation() bool {
	return c.Width == 0
}
