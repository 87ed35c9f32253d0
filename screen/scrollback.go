package screen

// Ref identifies a line inside a scrollback arena by slot index plus the
// generation the slot held when the Ref was taken. It replaces a raw
// pointer: once the arena recycles a slot (the ring wraps and overwrites
// it), the slot's generation advances and any stale Ref naturally fails to
// resolve instead of aliasing unrelated content. This is the design the
// spec's selection model calls for in place of tracking a live *Line
// through eviction.
type Ref struct {
	index      int
	generation uint64
}

// Valid reports whether r was ever assigned (the zero Ref is not).
func (r Ref) Valid() bool {
	return r.generation != 0
}

// scrollback is a fixed-capacity ring buffer arena of evicted Lines.
// Pushing past capacity overwrites the oldest slot and bumps its
// generation, invalidating any Ref still pointing at it.
type scrollback struct {
	lines      []Line
	generation []uint64
	head       int // next write position
	count      int
	max        int
	nextGen    uint64
	nextSBID   uint64
}

func newScrollback(max int) *scrollback {
	if max < 0 {
		max = 0
	}
	return &scrollback{
		lines:      make([]Line, max),
		generation: make([]uint64, max),
		max:        max,
	}
}

// push stores l at the head slot and returns a Ref to it. The caller has
// already cloned l (scrollback owns its own copy).
func (sb *scrollback) push(l Line) Ref {
	if sb.max == 0 {
		return Ref{}
	}
	sb.nextSBID++
	l.SBID = sb.nextSBID

	idx := sb.head
	sb.head = (sb.head + 1) % sb.max
	if sb.count < sb.max {
		sb.count++
	}

	sb.nextGen++
	gen := sb.nextGen
	sb.lines[idx] = l
	sb.generation[idx] = gen

	return Ref{index: idx, generation: gen}
}

// resolve returns the Line r points at and whether it is still live.
func (sb *scrollback) resolve(r Ref) (Line, bool) {
	if !r.Valid() || r.index < 0 || r.index >= sb.max {
		return Line{}, false
	}
	if sb.generation[r.index] != r.generation {
		return Line{}, false
	}
	return sb.lines[r.index], true
}

// Count returns the number of live scrollback lines.
func (sb *scrollback) Count() int {
	return sb.count
}

// at returns the line `offset` positions back from the most recently pushed
// one (0 = most recent), in display order (oldest-first iteration uses
// Count()-1-offset).
func (sb *scrollback) at(offset int) (Line, Ref, bool) {
	if offset < 0 || offset >= sb.count {
		return Line{}, Ref{}, false
	}
	idx := (sb.head - 1 - offset + sb.max*2) % sb.max
	return sb.lines[idx], Ref{index: idx, generation: sb.generation[idx]}, true
}
