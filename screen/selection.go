package screen

// SelectionTop is the sentinel Y value meaning "above the visible history":
// only valid when the endpoint has no scrollback Ref.
const SelectionTop = -1

// SelectionPos is one endpoint of a selection. When Line is valid the
// endpoint tracks that scrollback line through further scrolling; a stale
// Ref (the line has since been evicted) resolves to false and the endpoint
// is treated as having scrolled off. When Line is the zero Ref and Y ==
// SelectionTop, the endpoint sits above all retained history.
type SelectionPos struct {
	Line Ref
	X    int
	Y    int
}

// Selection tracks an in-progress or completed text selection.
type Selection struct {
	Active bool
	Start  SelectionPos
	End    SelectionPos
}

// order returns (a, b) such that a precedes or equals b in reading order.
// Comparison is by scrollback id first (lines with a Ref and lower sb_id
// sort earlier; SelectionTop sorts before any resolved line; a Ref that
// fails to resolve — evicted — sorts as if at SelectionTop), then by
// (Y, X) for endpoints sharing the same line space.
func (s *Screen) order(a, b SelectionPos) (SelectionPos, SelectionPos) {
	ra, aok := s.sb.resolve(a.Line)
	rb, bok := s.sb.resolve(b.Line)

	key := func(ok bool, l Line, p SelectionPos) (bool, uint64, int, int) {
		if !ok {
			return false, 0, SelectionTop, p.X
		}
		return true, l.SBID, p.Y, p.X
	}

	aHas, aID, aY, aX := key(aok, ra, a)
	bHas, bID, bY, bX := key(bok, rb, b)

	less := func() bool {
		if aHas != bHas {
			// A selection-top endpoint (no scrollback line) always precedes
			// one anchored to a retained line.
			return !aHas
		}
		if !aHas {
			return aY < bY || (aY == bY && aX < bX)
		}
		if aID != bID {
			return aID < bID
		}
		return aY < bY || (aY == bY && aX < bX)
	}

	if less() {
		return a, b
	}
	return b, a
}

// Normalize returns the selection's endpoints in reading order.
func (s *Screen) Normalize(sel Selection) (start, end SelectionPos) {
	return s.order(sel.Start, sel.End)
}
