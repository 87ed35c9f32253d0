package screen

import (
	"testing"

	"github.com/letoram/tsmgo/symbol"
)

func newTestScreen(cols, rows, sb int) *Screen {
	tbl := symbol.NewTable()
	return New(tbl, cols, rows, sb)
}

func TestWriteAdvancesCursor(t *testing.T) {
	s := newTestScreen(10, 4, 0)
	s.Write(symbol.Symbol('a'), 1, DefaultAttr)
	x, y := s.Cursor()
	if x != 1 || y != 0 {
		t.Fatalf("want (1,0), got (%d,%d)", x, y)
	}
}

func TestWriteWideCharOccupiesTwoCells(t *testing.T) {
	s := newTestScreen(10, 4, 0)
	s.Write(symbol.Symbol(0x4e2d), 2, DefaultAttr)
	x, _ := s.Cursor()
	if x != 2 {
		t.Fatalf("want cursor at 2 after wide write, got %d", x)
	}
}

func TestAutoWrapDefersToNextWrite(t *testing.T) {
	s := newTestScreen(3, 3, 0)
	s.Write(symbol.Symbol('a'), 1, DefaultAttr)
	s.Write(symbol.Symbol('b'), 1, DefaultAttr)
	s.Write(symbol.Symbol('c'), 1, DefaultAttr)
	x, y := s.Cursor()
	if x != 2 || y != 0 {
		t.Fatalf("want cursor pinned at last column (2,0), got (%d,%d)", x, y)
	}
	if !s.wrapPending {
		t.Fatalf("want wrap pending after filling the row")
	}

	s.Write(symbol.Symbol('d'), 1, DefaultAttr)
	x, y = s.Cursor()
	if x != 1 || y != 1 {
		t.Fatalf("want cursor at (1,1) after wrap, got (%d,%d)", x, y)
	}
}

func TestScrollUpPromotesToScrollbackOnFullRegion(t *testing.T) {
	s := newTestScreen(4, 3, 10)
	s.Write(symbol.Symbol('X'), 1, DefaultAttr)
	s.ScrollUp(1)
	if s.ScrollbackCount() != 1 {
		t.Fatalf("want 1 scrollback line, got %d", s.ScrollbackCount())
	}
	line, _, ok := s.ScrollbackLine(0)
	if !ok {
		t.Fatalf("expected resolvable scrollback line")
	}
	if line.Cells[0].Sym != symbol.Symbol('X') {
		t.Fatalf("unexpected scrollback content")
	}
}

func TestScrollUpClampsToRegionHeight(t *testing.T) {
	s := newTestScreen(4, 3, 10)
	s.ScrollUp(100)
	if s.ScrollbackCount() != 3 {
		t.Fatalf("want scroll clamped to region height 3, got %d", s.ScrollbackCount())
	}
}

func TestScrollDownNeverPromotes(t *testing.T) {
	s := newTestScreen(4, 3, 10)
	s.ScrollDown(2)
	if s.ScrollbackCount() != 0 {
		t.Fatalf("scroll down must never push to scrollback")
	}
}

func TestResizeNeverReflowsAndClampsCursor(t *testing.T) {
	s := newTestScreen(10, 5, 0)
	s.MoveTo(9, 4)
	s.Resize(4, 3)
	x, y := s.Cursor()
	if x >= 4 || y >= 3 {
		t.Fatalf("cursor not clamped after shrink: (%d,%d)", x, y)
	}
	cols, rows := s.Size()
	if cols != 4 || rows != 3 {
		t.Fatalf("want size (4,3), got (%d,%d)", cols, rows)
	}
}

func TestEraseRespectsProtect(t *testing.T) {
	s := newTestScreen(5, 1, 0)
	s.Write(symbol.Symbol('a'), 1, Attr{Flags: AttrProtect})
	s.Write(symbol.Symbol('b'), 1, DefaultAttr)
	s.Erase(0, 0, 4, 0, true)
	cells := s.lines()[0].Cells
	if cells[0].Sym != symbol.Symbol('a') {
		t.Fatalf("protected cell must survive protected erase")
	}
	if cells[1].Sym == symbol.Symbol('b') {
		t.Fatalf("unprotected cell must be erased")
	}
}

func TestEraseIgnoresProtectWhenNotRequested(t *testing.T) {
	s := newTestScreen(5, 1, 0)
	s.Write(symbol.Symbol('a'), 1, Attr{Flags: AttrProtect})
	s.Erase(0, 0, 4, 0, false)
	if s.lines()[0].Cells[0].Sym == symbol.Symbol('a') {
		t.Fatalf("non-protected erase must clear every cell")
	}
}

func TestDrawReportsZeroAgeAfterReset(t *testing.T) {
	s := newTestScreen(3, 1, 0)
	s.Write(symbol.Symbol('a'), 1, DefaultAttr)
	s.ResetAgeing()

	seen := map[int]uint32{}
	s.Draw(func(x, y int, sym symbol.Symbol, width int, attr Attr, age uint32) {
		seen[x] = age
	})
	for x, age := range seen {
		if age != 0 {
			t.Fatalf("want age 0 for cell %d after reset, got %d", x, age)
		}
	}

	// Second walk without a reset must not report 0 for an untouched cell.
	seen = map[int]uint32{}
	s.Draw(func(x, y int, sym symbol.Symbol, width int, attr Attr, age uint32) {
		seen[x] = age
	})
	if seen[0] == 0 {
		t.Fatalf("age-reset flag must clear after one walk")
	}
}

func TestDrawAgeIsolatesUntouchedCellsAcrossRows(t *testing.T) {
	s := newTestScreen(10, 3, 0)
	s.MoveTo(0, 0)
	s.Write(symbol.Symbol('A'), 1, DefaultAttr)

	firstAge := map[[2]int]uint32{}
	s.Draw(func(x, y int, sym symbol.Symbol, width int, attr Attr, age uint32) {
		firstAge[[2]int{x, y}] = age
	})

	s.MoveTo(5, 1)
	s.Write(symbol.Symbol('B'), 1, DefaultAttr)

	secondAge := map[[2]int]uint32{}
	s.Draw(func(x, y int, sym symbol.Symbol, width int, attr Attr, age uint32) {
		secondAge[[2]int{x, y}] = age
	})

	if secondAge[[2]int{0, 0}] != firstAge[[2]int{0, 0}] {
		t.Fatalf("cell (0,0) untouched by the second write must keep its age: was %d, now %d",
			firstAge[[2]int{0, 0}], secondAge[[2]int{0, 0}])
	}
	if secondAge[[2]int{5, 1}] == firstAge[[2]int{5, 1}] {
		t.Fatalf("cell (5,1) touched by the second write must report a newer age")
	}
}

func TestEnterLeaveAltScreen1049SavesAndRestoresCursor(t *testing.T) {
	s := newTestScreen(5, 5, 0)
	s.MoveTo(2, 2)
	s.EnterAltScreen(true)
	if !s.HasFlag(FlagAltScreenActive) {
		t.Fatalf("want alt screen active")
	}
	x, y := s.Cursor()
	if x != 0 || y != 0 {
		t.Fatalf("want cursor reset to origin on 1049 entry, got (%d,%d)", x, y)
	}
	s.Write(symbol.Symbol('z'), 1, DefaultAttr)
	s.LeaveAltScreen(true, false)
	x, y = s.Cursor()
	if x != 2 || y != 2 {
		t.Fatalf("want cursor restored to (2,2), got (%d,%d)", x, y)
	}
	if s.HasFlag(FlagAltScreenActive) {
		t.Fatalf("want alt screen inactive after leave")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestScreen(4, 2, 0)
	s.Write(symbol.Symbol('h'), 1, DefaultAttr)
	s.Write(symbol.Symbol('i'), 1, DefaultAttr)
	data := s.Save()

	s2 := newTestScreen(4, 2, 0)
	if err := s2.Load(data, LoadResizeFirst); err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if s2.lines()[0].Cells[0].Sym != symbol.Symbol('h') {
		t.Fatalf("round trip lost content")
	}
}

func TestLoadRejectsBadMagic(t *testing.T) {
	s := newTestScreen(4, 2, 0)
	err := s.Load([]byte("not-a-valid-header-at-all-012345"), LoadResizeFirst)
	if err != ErrBadMagic {
		t.Fatalf("want ErrBadMagic, got %v", err)
	}
}

func TestTabRulerStopsEveryEightColumns(t *testing.T) {
	s := newTestScreen(20, 1, 0)
	s.NextTab(1)
	x, _ := s.Cursor()
	if x != 8 {
		t.Fatalf("want first tab stop at column 8, got %d", x)
	}
	s.NextTab(1)
	x, _ = s.Cursor()
	if x != 16 {
		t.Fatalf("want second tab stop at column 16, got %d", x)
	}
}

func TestInsertCharsShiftsRightAndBlanksCursorSpan(t *testing.T) {
	s := newTestScreen(5, 1, 0)
	for _, r := range "abcde" {
		s.Write(symbol.Symbol(r), 1, DefaultAttr)
	}
	s.MoveTo(1, 0)
	s.InsertChars(2)

	cells := s.lines()[0].Cells
	want := []rune{'a', ' ', ' ', 'b', 'c'}
	for i, w := range want {
		if cells[i].Sym != symbol.Symbol(w) {
			t.Fatalf("cell %d: want %q, got %v", i, w, cells[i].Sym)
		}
	}
}

func TestInsertCharsClampsAtRightEdge(t *testing.T) {
	s := newTestScreen(3, 1, 0)
	for _, r := range "abc" {
		s.Write(symbol.Symbol(r), 1, DefaultAttr)
	}
	s.MoveTo(0, 0)
	s.InsertChars(10)
	cells := s.lines()[0].Cells
	for i, c := range cells {
		if c.Sym != symbol.Symbol(' ') {
			t.Fatalf("cell %d: want blank after oversized insert, got %v", i, c.Sym)
		}
	}
}

func TestDeleteCharsShiftsLeftAndBlanksTail(t *testing.T) {
	s := newTestScreen(5, 1, 0)
	for _, r := range "abcde" {
		s.Write(symbol.Symbol(r), 1, DefaultAttr)
	}
	s.MoveTo(1, 0)
	s.DeleteChars(2)

	cells := s.lines()[0].Cells
	want := []rune{'a', 'd', 'e', ' ', ' '}
	for i, w := range want {
		if cells[i].Sym != symbol.Symbol(w) {
			t.Fatalf("cell %d: want %q, got %v", i, w, cells[i].Sym)
		}
	}
}

func TestSelectionNormalizeOrdersByPosition(t *testing.T) {
	s := newTestScreen(10, 10, 0)
	sel := Selection{
		Start: SelectionPos{X: 5, Y: 2},
		End:   SelectionPos{X: 1, Y: 1},
	}
	start, end := s.Normalize(sel)
	if start.Y != 1 || end.Y != 2 {
		t.Fatalf("want normalized order (y=1 first), got start.Y=%d end.Y=%d", start.Y, end.Y)
	}
}
