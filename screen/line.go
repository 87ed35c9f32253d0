package screen

// Line is one row of Cells. SBID is assigned when a Line is pushed into
// scrollback and is used (not a pointer) to order/compare selection
// endpoints that survive eviction of other lines.
type Line struct {
	Cells []Cell
	SBID  uint64
	Age   uint32
}

// newLine returns a Line of width cols filled with attr.
func newLine(cols int, attr Attr, age uint32) Line {
	l := Line{Cells: make([]Cell, cols)}
	for i := range l.Cells {
		l.Cells[i] = blankCell(attr, age)
	}
	return l
}

// resize grows or shrinks l to cols, padding new cells with attr and never
// reflowing existing content.
func (l *Line) resize(cols int, attr Attr, age uint32) {
	if cols <= len(l.Cells) {
		l.Cells = l.Cells[:cols]
		return
	}
	grown := make([]Cell, cols)
	copy(grown, l.Cells)
	for i := len(l.Cells); i < cols; i++ {
		grown[i] = blankCell(attr, age)
	}
	l.Cells = grown
}

// clone returns a deep copy of l, used when a line is pushed into
// scrollback so subsequent main-buffer writes don't alias it.
func (l Line) clone() Line {
	cells := make([]Cell, len(l.Cells))
	copy(cells, l.Cells)
	return Line{Cells: cells, SBID: l.SBID, Age: l.Age}
}
