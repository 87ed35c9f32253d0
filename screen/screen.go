// Package screen implements the terminal grid: cells, lines, scrollback,
// selection, and the write/scroll/resize/erase/draw operations a VT
// dispatcher drives it with. It has no notion of escape sequences; it is
// driven purely by already-decoded symbols and attribute values.
package screen

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/letoram/tsmgo/symbol"
)

// Flags is a bitmask of screen-wide modes.
type Flags uint16

const (
	FlagInsertMode Flags = 1 << iota
	FlagAutoWrap
	FlagOrigin // DECOM: cursor motion is margin-relative
	FlagInverse
	FlagCursorHidden
	FlagAltScreenActive
)

// scrollRecursionSplit bounds how many lines ScrollUp/ScrollDown move in a
// single recursive call before tail-splitting, so a single huge n can't
// blow the stack.
const scrollRecursionSplit = 512

// ErrOutOfMemory mirrors a libtsm-style allocation failure; Go never
// actually runs out of memory the way the C original guards against, but
// Load rejects headers that would require an absurd allocation so the
// sentinel has a real caller.
var ErrOutOfMemory = errors.New("screen: out of memory")

// ErrBadMagic is returned by Load when the buffer's header magic does not
// match "atui".
var ErrBadMagic = errors.New("screen: bad save header magic")

// DrawFunc is called once per visible cell by Draw, in row-major order.
type DrawFunc func(x, y int, sym symbol.Symbol, width int, attr Attr, age uint32)

// Screen is the terminal grid: two independently sized buffers (main and
// alternate), a scrollback arena, cursor, tab ruler, and ageing state.
type Screen struct {
	symTable *symbol.Table

	flags   Flags
	defAttr Attr

	ageCnt    uint32
	screenAge uint32
	ageReset  bool

	sizeX, sizeY           int
	marginTop, marginBottom int

	mainLines []Line
	altLines  []Line

	cursorX, cursorY int
	wrapPending      bool

	tabRuler []bool

	sb  *scrollback
	sel Selection

	altSavedCursorX, altSavedCursorY int
	altSavedAttr                    Attr

	savedCursorX, savedCursorY int
	savedAttr                  Attr
	savedWrapPending           bool
	savedOrigin                bool
}

// New creates a Screen of cols x rows with the given scrollback capacity
// (in lines). sym must outlive the Screen.
func New(sym *symbol.Table, cols, rows, sbMax int) *Screen {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	s := &Screen{
		symTable:      sym,
		flags:         FlagAutoWrap,
		sizeX:         cols,
		sizeY:         rows,
		marginBottom:  rows - 1,
		sb:            newScrollback(sbMax),
	}
	s.mainLines = make([]Line, rows)
	s.altLines = make([]Line, rows)
	for i := range s.mainLines {
		s.mainLines[i] = newLine(cols, s.defAttr, 0)
		s.altLines[i] = newLine(cols, s.defAttr, 0)
	}
	s.rebuildTabRuler()
	return s
}

// lines returns the currently active buffer (main or alternate).
func (s *Screen) lines() []Line {
	if s.flags&FlagAltScreenActive != 0 {
		return s.altLines
	}
	return s.mainLines
}

// SetDefaultAttr sets the attribute newly written/erased cells inherit.
func (s *Screen) SetDefaultAttr(a Attr) {
	s.defAttr = a
}

// DefaultAttr returns the current default attribute.
func (s *Screen) DefaultAttr() Attr {
	return s.defAttr
}

// SetFlag / ClearFlag / HasFlag manage the screen-wide mode bitmask.
func (s *Screen) SetFlag(f Flags)   { s.flags |= f }
func (s *Screen) ClearFlag(f Flags) { s.flags &^= f }
func (s *Screen) HasFlag(f Flags) bool { return s.flags&f != 0 }

// Size returns the current buffer dimensions.
func (s *Screen) Size() (cols, rows int) { return s.sizeX, s.sizeY }

// Cursor returns the current cursor position.
func (s *Screen) Cursor() (x, y int) { return s.cursorX, s.cursorY }

// SetMargins sets the scroll region (inclusive, 0-based). Invalid ranges are
// ignored.
func (s *Screen) SetMargins(top, bottom int) {
	if top < 0 || bottom >= s.sizeY || top > bottom {
		return
	}
	s.marginTop = top
	s.marginBottom = bottom
}

// Margins returns the current scroll region.
func (s *Screen) Margins() (top, bottom int) { return s.marginTop, s.marginBottom }

// bumpAge advances the free-running mutation counter and returns it, for
// stamping the specific cell(s)/line a single operation touches. It is not
// itself the "screen" term Draw's max(cell.age, line.age, screen.age) uses
// — see touchScreen.
func (s *Screen) bumpAge() uint32 {
	s.ageCnt++
	return s.ageCnt
}

// touchScreen marks age as a whole-screen invalidation, the stamp Draw uses
// as the "screen" term of its age-filter max. Call only from operations
// that legitimately invalidate everything currently visible (Resize, a
// full-display erase, an alt-screen switch, ResetAgeing) — never from a
// plain per-cell Write, or every untouched cell would report the latest
// age on every draw and the incremental-redraw contract would be defeated.
// Mirrors the original's separate con->age field, bumped only at
// whole-screen-invalidating operations, versus the free-running age_cnt
// bumped by screen_write.
func (s *Screen) touchScreen(age uint32) {
	if age > s.screenAge {
		s.screenAge = age
	}
}

// MoveTo sets the cursor, clamping to [0,size) — or to the margin region
// when DECOM (origin mode) is active. Moving the cursor always clears
// pending-wrap.
func (s *Screen) MoveTo(x, y int) {
	s.wrapPending = false
	minY, maxY := 0, s.sizeY-1
	if s.flags&FlagOrigin != 0 {
		minY, maxY = s.marginTop, s.marginBottom
		y += s.marginTop
	}
	if x < 0 {
		x = 0
	}
	if x >= s.sizeX {
		x = s.sizeX - 1
	}
	if y < minY {
		y = minY
	}
	if y > maxY {
		y = maxY
	}
	s.cursorX, s.cursorY = x, y
}

// MoveRel moves the cursor by (dx, dy) relative to its current position,
// with the same clamping as MoveTo.
func (s *Screen) MoveRel(dx, dy int) {
	x, y := s.cursorX+dx, s.cursorY+dy
	s.wrapPending = false
	if s.flags&FlagOrigin != 0 {
		y -= s.marginTop
	}
	s.MoveTo(x, y)
}

// Write places sym (of the given display width, 1 or 2; a width of 0 or
// less is written as 1) at the cursor with attr. If auto-wrap is enabled and the cursor sits in pending-wrap, a
// CR+LF (scrolling if needed) happens first. A width-2 symbol consumes two
// cells, the second a zero-width continuation carrying the same symbol and
// attr. In insert mode, cells at and right of the cursor shift right first;
// cells that fall off the row's right edge are discarded.
func (s *Screen) Write(sym symbol.Symbol, width int, attr Attr) {
	if width <= 0 {
		width = 1
	}

	if s.wrapPending && s.flags&FlagAutoWrap != 0 {
		s.cursorX = 0
		s.advanceLine()
		s.wrapPending = false
	}

	age := s.bumpAge()
	cells := s.lines()[s.cursorY].Cells

	if s.flags&FlagInsertMode != 0 {
		shift := width
		last := len(cells) - 1
		for i := last; i >= s.cursorX+shift; i-- {
			cells[i] = cells[i-shift]
		}
		for i := s.cursorX; i < s.cursorX+shift && i <= last; i++ {
			cells[i] = blankCell(s.defAttr, age)
		}
		// Insert mode shifts the whole row right of the cursor, so unlike a
		// plain write it's legitimately a row-wide touch.
		s.lines()[s.cursorY].Age = age
	}

	if s.cursorX < len(cells) {
		cells[s.cursorX] = Cell{Sym: sym, Width: width, Attr: attr, Age: age}
	}
	if width == 2 && s.cursorX+1 < len(cells) {
		cells[s.cursorX+1] = Cell{Sym: sym, Width: 0, Attr: attr, Age: age}
	}

	s.cursorX += width
	if s.cursorX >= s.sizeX {
		s.cursorX = s.sizeX - 1
		if s.flags&FlagAutoWrap != 0 {
			s.wrapPending = true
		}
	}
}

// advanceLine moves the cursor down one row, scrolling the region up by one
// if the cursor is already at the bottom margin.
func (s *Screen) advanceLine() {
	if s.cursorY == s.marginBottom {
		s.ScrollUp(1)
		return
	}
	if s.cursorY < s.sizeY-1 {
		s.cursorY++
	}
}

// ScrollUp moves the top n lines of the scroll region into scrollback (only
// when the region spans the whole non-alternate screen and the alternate
// buffer is inactive; otherwise the lines are simply cleared in place) and
// clears n fresh lines at the bottom of the region. n is clamped to the
// region height.
func (s *Screen) ScrollUp(n int) {
	height := s.marginBottom - s.marginTop + 1
	if n > height {
		n = height
	}
	if n <= 0 {
		return
	}
	if n > scrollRecursionSplit {
		s.ScrollUp(scrollRecursionSplit)
		s.ScrollUp(n - scrollRecursionSplit)
		return
	}

	age := s.bumpAge()
	lines := s.lines()
	promote := s.marginTop == 0 && s.marginBottom == s.sizeY-1 && s.flags&FlagAltScreenActive == 0

	for i := 0; i < n; i++ {
		if promote {
			s.sb.push(lines[s.marginTop+i].clone())
		}
	}

	copy(lines[s.marginTop:s.marginBottom+1-n], lines[s.marginTop+n:s.marginBottom+1])
	for i := s.marginBottom - n + 1; i <= s.marginBottom; i++ {
		lines[i] = newLine(s.sizeX, s.defAttr, age)
	}
}

// ScrollDown is ScrollUp's mirror: it moves lines down and never promotes
// anything to scrollback.
func (s *Screen) ScrollDown(n int) {
	height := s.marginBottom - s.marginTop + 1
	if n > height {
		n = height
	}
	if n <= 0 {
		return
	}
	if n > scrollRecursionSplit {
		s.ScrollDown(scrollRecursionSplit)
		s.ScrollDown(n - scrollRecursionSplit)
		return
	}

	age := s.bumpAge()
	lines := s.lines()

	copy(lines[s.marginTop+n:s.marginBottom+1], lines[s.marginTop:s.marginBottom+1-n])
	for i := s.marginTop; i < s.marginTop+n; i++ {
		lines[i] = newLine(s.sizeX, s.defAttr, age)
	}
}

// InsertChars shifts the cells from the cursor's column rightward by n on
// the cursor's row, discarding whatever falls off the right edge, and fills
// the n freed cells at the cursor with the default attribute.
func (s *Screen) InsertChars(n int) {
	age := s.bumpAge()
	cells := s.lines()[s.cursorY].Cells
	last := len(cells) - 1
	for i := last; i >= s.cursorX+n; i-- {
		cells[i] = cells[i-n]
	}
	for i := s.cursorX; i < s.cursorX+n && i <= last; i++ {
		cells[i] = blankCell(s.defAttr, age)
	}
	s.lines()[s.cursorY].Age = age
}

// DeleteChars shifts the cells right of the cursor's column (exclusive of
// the deleted span) left by n on the cursor's row, filling the vacated
// cells at the row's end with the default attribute.
func (s *Screen) DeleteChars(n int) {
	age := s.bumpAge()
	cells := s.lines()[s.cursorY].Cells
	src := s.cursorX + n
	for i := s.cursorX; i < len(cells); i++ {
		if src < len(cells) {
			cells[i] = cells[src]
			src++
		} else {
			cells[i] = blankCell(s.defAttr, age)
		}
	}
	s.lines()[s.cursorY].Age = age
}

// Erase clears cells in [x0,y0, x1,y1] (inclusive, row-major visiting
// order). If protect is set, cells whose attribute carries AttrProtect are
// left untouched. Newly erased cells take the current default attribute.
func (s *Screen) Erase(x0, y0, x1, y1 int, protect bool) {
	age := s.bumpAge()
	lines := s.lines()

	if x0 <= 0 && y0 <= 0 && x1 >= s.sizeX-1 && y1 >= s.sizeY-1 {
		s.touchScreen(age)
	}

	for y := y0; y <= y1 && y < s.sizeY; y++ {
		if y < 0 {
			continue
		}
		cells := lines[y].Cells
		startX, endX := 0, len(cells)-1
		if y == y0 {
			startX = x0
		}
		if y == y1 {
			endX = x1
		}
		for x := startX; x <= endX && x < len(cells); x++ {
			if x < 0 {
				continue
			}
			if protect && cells[x].Attr.Has(AttrProtect) {
				continue
			}
			cells[x] = blankCell(s.defAttr, age)
		}
		lines[y].Age = age
	}
}

// Resize grows or shrinks both buffers so every Line has capacity >= cols.
// Content is never re-wrapped. Margins reset to full height. The tab ruler
// is rebuilt with stops every 8 columns. The cursor clamps into the new
// bounds. Shrinking vertically by n rows always pushes the top n lines of
// the main buffer into scrollback, blank or not; no watermark of written
// rows is kept, so blank top lines are pushed too.
func (s *Screen) Resize(cols, rows int) {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	age := s.bumpAge()
	s.touchScreen(age)

	growRows := func(lines []Line, want int) []Line {
		for i := range lines {
			lines[i].resize(cols, s.defAttr, age)
		}
		if want > len(lines) {
			for len(lines) < want {
				lines = append(lines, newLine(cols, s.defAttr, age))
			}
			return lines
		}
		if want < len(lines) {
			return lines[len(lines)-want:]
		}
		return lines
	}

	if rows < s.sizeY {
		overflow := s.sizeY - rows
		for i := 0; i < overflow; i++ {
			s.sb.push(s.mainLines[i].clone())
		}
	}

	s.mainLines = growRows(s.mainLines, rows)
	s.altLines = growRows(s.altLines, rows)

	s.sizeX, s.sizeY = cols, rows
	s.marginTop, s.marginBottom = 0, rows-1
	s.rebuildTabRuler()

	if s.cursorX >= cols {
		s.cursorX = cols - 1
	}
	if s.cursorY >= rows {
		s.cursorY = rows - 1
	}
	s.wrapPending = false
}

// rebuildTabRuler resets tab stops to every 8th column.
func (s *Screen) rebuildTabRuler() {
	s.tabRuler = make([]bool, s.sizeX)
	for i := 0; i < s.sizeX; i += 8 {
		s.tabRuler[i] = true
	}
}

// SetTabStop / ClearTabStop toggle a single tab stop at the cursor column.
func (s *Screen) SetTabStop() {
	if s.cursorX < len(s.tabRuler) {
		s.tabRuler[s.cursorX] = true
	}
}

func (s *Screen) ClearTabStop() {
	if s.cursorX < len(s.tabRuler) {
		s.tabRuler[s.cursorX] = false
	}
}

func (s *Screen) ClearAllTabStops() {
	for i := range s.tabRuler {
		s.tabRuler[i] = false
	}
}

// NextTab moves the cursor forward to the next tab stop, or the last
// column if none remain.
func (s *Screen) NextTab(count int) {
	for ; count > 0; count-- {
		x := s.cursorX + 1
		for x < s.sizeX && !s.tabRuler[x] {
			x++
		}
		if x >= s.sizeX {
			x = s.sizeX - 1
		}
		s.cursorX = x
	}
}

// SaveCursor snapshots cursor position, the default attribute template,
// pending-wrap, and origin mode — the screen-owned portion of DECSC. A VT
// dispatcher combines this with its own charset snapshot.
func (s *Screen) SaveCursor() {
	s.savedCursorX, s.savedCursorY = s.cursorX, s.cursorY
	s.savedAttr = s.defAttr
	s.savedWrapPending = s.wrapPending
	s.savedOrigin = s.flags&FlagOrigin != 0
}

// RestoreCursor reverses SaveCursor.
func (s *Screen) RestoreCursor() {
	s.cursorX, s.cursorY = s.savedCursorX, s.savedCursorY
	s.defAttr = s.savedAttr
	s.wrapPending = s.savedWrapPending
	if s.savedOrigin {
		s.flags |= FlagOrigin
	} else {
		s.flags &^= FlagOrigin
	}
}

// EnterAltScreen switches to the alternate buffer. saveCursor selects
// xterm-recent 1049 semantics (save cursor and clear the alternate screen
// on entry) versus 1047 (switch only, no cursor save, no clear until exit).
func (s *Screen) EnterAltScreen(saveCursor bool) {
	if s.flags&FlagAltScreenActive != 0 {
		return
	}
	if saveCursor {
		s.altSavedCursorX, s.altSavedCursorY = s.cursorX, s.cursorY
		s.altSavedAttr = s.defAttr
	}
	s.flags |= FlagAltScreenActive
	age := s.bumpAge()
	s.touchScreen(age)
	if saveCursor {
		for i := range s.altLines {
			s.altLines[i] = newLine(s.sizeX, s.defAttr, age)
		}
		s.cursorX, s.cursorY = 0, 0
		s.wrapPending = false
	}
}

// LeaveAltScreen switches back to the primary buffer. restoreCursor mirrors
// the saveCursor argument given to EnterAltScreen (1049 semantics); with
// 1047 semantics the caller passes restoreCursor=false. clearOnExit blanks
// the alternate buffer as it is left.
func (s *Screen) LeaveAltScreen(restoreCursor bool, clearOnExit bool) {
	if s.flags&FlagAltScreenActive == 0 {
		return
	}
	age := s.bumpAge()
	s.touchScreen(age)
	if clearOnExit {
		for i := range s.altLines {
			s.altLines[i] = newLine(s.sizeX, s.defAttr, age)
		}
	}
	s.flags &^= FlagAltScreenActive
	if restoreCursor {
		s.cursorX, s.cursorY = s.altSavedCursorX, s.altSavedCursorY
		s.defAttr = s.altSavedAttr
		s.wrapPending = false
	}
}

// ResetAgeing forces the next Draw to report age 0 for every visible cell,
// i.e. a full repaint.
func (s *Screen) ResetAgeing() {
	s.ageReset = true
	s.touchScreen(s.bumpAge())
}

// Draw walks every visible cell in row-major order, invoking cb with its
// effective age: max(cell.age, line.age, screen.age), or 0 for every cell if
// the age-reset flag is set. Selection inverts attributes on the fly; the
// screen-wide inverse flag XORs with that inversion. After the walk, the
// age-reset flag clears and the current age counter is returned.
func (s *Screen) Draw(cb DrawFunc) uint32 {
	lines := s.lines()
	globalInverse := s.flags&FlagInverse != 0

	for y, line := range lines {
		for x, cell := range line.Cells {
			age := cell.Age
			if line.Age > age {
				age = line.Age
			}
			if s.screenAge > age {
				age = s.screenAge
			}
			if s.ageReset {
				age = 0
			}

			attr := cell.Attr
			inv := globalInverse
			if s.sel.Active && s.inSelection(x, y) {
				inv = !inv
			}
			if inv {
				attr = attr.Inverted()
			}

			cb(x, y, cell.Sym, cell.Width, attr, age)
		}
	}

	s.ageReset = false
	return s.ageCnt
}

func (s *Screen) inSelection(x, y int) bool {
	if !s.sel.Active {
		return false
	}
	start, end := s.Normalize(s.sel)
	// Only the visible (non-scrollback) buffer is considered here; a
	// caller rendering scrollback content does its own range check via
	// Normalize + scrollback iteration.
	if start.Line.Valid() || end.Line.Valid() {
		return false
	}
	if y < start.Y || y > end.Y {
		return false
	}
	if y == start.Y && x < start.X {
		return false
	}
	if y == end.Y && x > end.X {
		return false
	}
	return true
}

// StartSelection / UpdateSelection / ClearSelection manage the active
// selection.
func (s *Screen) StartSelection(x, y int) {
	s.sel = Selection{Active: true, Start: SelectionPos{X: x, Y: y, Line: Ref{}}, End: SelectionPos{X: x, Y: y}}
}

func (s *Screen) UpdateSelection(x, y int) {
	if !s.sel.Active {
		return
	}
	s.sel.End = SelectionPos{X: x, Y: y}
}

func (s *Screen) ClearSelection() {
	s.sel = Selection{}
}

// Selection returns the current selection state.
func (s *Screen) Selection() Selection {
	return s.sel
}

const saveMagic = "atui"

// Save serializes the active buffer to a byte slice: a short header
// {magic, cols, rows, margin_top, margin_bottom, flags} followed by
// rows*cols packed {attr flags, custom_id, codepoint} entries. Scrollback
// is not included.
func (s *Screen) Save() []byte {
	var buf bytes.Buffer
	buf.WriteString(saveMagic)
	binary.Write(&buf, binary.LittleEndian, uint16(s.sizeX))
	binary.Write(&buf, binary.LittleEndian, uint16(s.sizeY))
	binary.Write(&buf, binary.LittleEndian, uint16(s.marginTop))
	binary.Write(&buf, binary.LittleEndian, uint16(s.marginBottom))
	binary.Write(&buf, binary.LittleEndian, uint32(s.flags))

	for _, line := range s.lines() {
		for _, cell := range line.Cells {
			binary.Write(&buf, binary.LittleEndian, uint16(cell.Attr.Flags))
			binary.Write(&buf, binary.LittleEndian, cell.Attr.Custom)
			binary.Write(&buf, binary.LittleEndian, uint32(cell.Sym))
		}
	}
	return buf.Bytes()
}

// LoadPolicy selects how Load reconciles a saved buffer's dimensions with
// the screen's current size.
type LoadPolicy int

const (
	// LoadResizeFirst resizes the screen to the saved dimensions, then
	// writes the saved content verbatim.
	LoadResizeFirst LoadPolicy = iota
	// LoadAppendAtCursor keeps the current dimensions and writes the saved
	// content starting at the current cursor, wrapping at the screen's
	// width.
	LoadAppendAtCursor
)

// Load restores a buffer previously produced by Save. Scrollback content is
// not restored (reserved, per the save format).
func (s *Screen) Load(data []byte, policy LoadPolicy) error {
	if len(data) < 4+4*2+4 {
		return fmt.Errorf("screen: short buffer: %d bytes", len(data))
	}
	if string(data[:4]) != saveMagic {
		return ErrBadMagic
	}
	r := bytes.NewReader(data[4:])

	var cols, rows, marginTop, marginBottom uint16
	var flags uint32
	binary.Read(r, binary.LittleEndian, &cols)
	binary.Read(r, binary.LittleEndian, &rows)
	binary.Read(r, binary.LittleEndian, &marginTop)
	binary.Read(r, binary.LittleEndian, &marginBottom)
	binary.Read(r, binary.LittleEndian, &flags)

	// Each saved cell is 7 bytes (flags u16, custom u8, symbol u32); a
	// header declaring more cells than the buffer carries is rejected
	// before the entry slice is allocated.
	if cols == 0 || rows == 0 || r.Len() < int(cols)*int(rows)*7 {
		return ErrOutOfMemory
	}

	entries := make([]struct {
		flags  uint16
		custom uint8
		sym    uint32
	}, int(cols)*int(rows))
	for i := range entries {
		binary.Read(r, binary.LittleEndian, &entries[i].flags)
		binary.Read(r, binary.LittleEndian, &entries[i].custom)
		binary.Read(r, binary.LittleEndian, &entries[i].sym)
	}

	switch policy {
	case LoadResizeFirst:
		s.Resize(int(cols), int(rows))
		s.marginTop, s.marginBottom = int(marginTop), int(marginBottom)
		lines := s.lines()
		i := 0
		for y := 0; y < int(rows) && y < len(lines); y++ {
			for x := 0; x < int(cols) && x < len(lines[y].Cells); x++ {
				e := entries[i]
				i++
				lines[y].Cells[x] = Cell{
					Sym:   symbol.Symbol(e.sym),
					Width: 1,
					Attr:  Attr{Flags: AttrFlags(e.flags), Custom: e.custom},
				}
			}
		}
	case LoadAppendAtCursor:
		i := 0
		for y := 0; y < int(rows); y++ {
			for x := 0; x < int(cols); x++ {
				e := entries[i]
				i++
				s.Write(symbol.Symbol(e.sym), 1, Attr{Flags: AttrFlags(e.flags), Custom: e.custom})
			}
			s.cursorX = 0
			s.advanceLine()
		}
	default:
		return fmt.Errorf("screen: unknown load policy %d", policy)
	}
	return nil
}

// ScrollbackCount and ScrollbackLine expose read access to retained
// history, oldest line first
// when iterating offset from Count()-1 down to 0, most recent at offset 0.
func (s *Screen) ScrollbackCount() int { return s.sb.Count() }

func (s *Screen) ScrollbackLine(offsetFromNewest int) (Line, Ref, bool) {
	return s.sb.at(offsetFromNewest)
}
