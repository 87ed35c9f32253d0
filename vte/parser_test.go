package vte

import (
	"testing"

	"github.com/letoram/tsmgo/screen"
	"github.com/letoram/tsmgo/symbol"
)

func newTestParser(cols, rows int) (*Parser, *screen.Screen) {
	tbl := symbol.NewTable()
	scr := screen.New(tbl, cols, rows, 100)
	p := New(scr, tbl)
	return p, scr
}

func TestPrintAdvancesCursorAndWritesCell(t *testing.T) {
	p, scr := newTestParser(10, 3)
	p.Feed([]byte("hi"))
	x, y := scr.Cursor()
	if x != 2 || y != 0 {
		t.Fatalf("want cursor (2,0), got (%d,%d)", x, y)
	}
}

func TestCSICursorPosition(t *testing.T) {
	p, scr := newTestParser(10, 10)
	p.Feed([]byte("\x1b[5;3H"))
	x, y := scr.Cursor()
	if x != 2 || y != 4 {
		t.Fatalf("want cursor (2,4) from CUP 5;3, got (%d,%d)", x, y)
	}
	if p.State() != Ground {
		t.Fatalf("want parser back in Ground after CSI dispatch, got %s", p.State())
	}
}

func TestSGRBoldAndColor(t *testing.T) {
	p, _ := newTestParser(10, 10)
	p.Feed([]byte("\x1b[1;31m"))
	if !p.cattr.Has(screen.AttrBold) {
		t.Fatalf("want bold flag set")
	}
	if p.cattr.Fg.Kind != screen.ColorIndexed || p.cattr.Fg.Index != 9 {
		t.Fatalf("want fg indexed 9 (red made bright by bold), got %+v", p.cattr.Fg)
	}

	p.Feed([]byte("\x1b[0m"))
	if p.cattr != screen.DefaultAttr {
		t.Fatalf("want attrs reset to default after SGR 0")
	}
}

func TestSGRBoldMakesIndexedColorBright(t *testing.T) {
	p, _ := newTestParser(10, 10)
	p.Feed([]byte("\x1b[1m\x1b[32m"))
	if p.cattr.Fg.Index != 10 {
		t.Fatalf("want bold green promoted to bright index 10, got %d", p.cattr.Fg.Index)
	}
}

func TestSGRTruecolor(t *testing.T) {
	p, _ := newTestParser(10, 10)
	p.Feed([]byte("\x1b[38;2;10;20;30m"))
	if p.cattr.Fg.Kind != screen.ColorRGB {
		t.Fatalf("want RGB fg color")
	}
	if p.cattr.Fg.R != 10 || p.cattr.Fg.G != 20 || p.cattr.Fg.B != 30 {
		t.Fatalf("want (10,20,30), got (%d,%d,%d)", p.cattr.Fg.R, p.cattr.Fg.G, p.cattr.Fg.B)
	}
}

func TestSGR256Color(t *testing.T) {
	p, _ := newTestParser(10, 10)
	p.Feed([]byte("\x1b[48;5;200m"))
	if p.cattr.Bg.Kind != screen.ColorIndexed || p.cattr.Bg.Index != 200 {
		t.Fatalf("want bg indexed 200, got %+v", p.cattr.Bg)
	}
}

func TestDECSETAltScreen1049(t *testing.T) {
	p, scr := newTestParser(10, 10)
	p.Feed([]byte("\x1b[?1049h"))
	if !scr.HasFlag(screen.FlagAltScreenActive) {
		t.Fatalf("want alt screen active after ?1049h")
	}
	p.Feed([]byte("\x1b[?1049l"))
	if scr.HasFlag(screen.FlagAltScreenActive) {
		t.Fatalf("want alt screen inactive after ?1049l")
	}
}

func TestDECTCEMHidesAndShowsCursor(t *testing.T) {
	p, scr := newTestParser(10, 10)
	p.Feed([]byte("\x1b[?25l"))
	if !scr.HasFlag(screen.FlagCursorHidden) {
		t.Fatalf("want cursor hidden after ?25l")
	}
	p.Feed([]byte("\x1b[?25h"))
	if scr.HasFlag(screen.FlagCursorHidden) {
		t.Fatalf("want cursor visible after ?25h")
	}
}

func TestDECOMSetsOriginModeAndHomesCursor(t *testing.T) {
	p, scr := newTestParser(10, 10)
	scr.MoveTo(5, 5)
	p.Feed([]byte("\x1b[?6h"))
	if !scr.HasFlag(screen.FlagOrigin) {
		t.Fatalf("want origin mode set after ?6h")
	}
	x, y := scr.Cursor()
	if x != 0 || y != 0 {
		t.Fatalf("want cursor homed after DECOM, got (%d,%d)", x, y)
	}
}

func TestOSCTitleHandler(t *testing.T) {
	var got string
	p, _ := newTestParser(10, 10)
	p.titleHandler = func(title string) { got = title }
	p.Feed([]byte("\x1b]0;hello world\x07"))
	if got != "hello world" {
		t.Fatalf("want title %q, got %q", "hello world", got)
	}
}

func TestOSCTruncation(t *testing.T) {
	var truncated bool
	p, _ := newTestParser(10, 10)
	p.oscMax = 4
	p.oscHandler = func(payload []byte, trunc bool) { truncated = trunc }
	p.Feed([]byte("\x1b]52;clipboarddata\x07"))
	if !truncated {
		t.Fatalf("want OSC payload marked truncated past the configured bound")
	}
}

func TestDeviceAttributesReply(t *testing.T) {
	p, _ := newTestParser(10, 10)
	reply := p.Feed([]byte("\x1b[c"))
	want := "\x1b[?60;1;6;9;15c"
	if string(reply) != want {
		t.Fatalf("want DA reply %q, got %q", want, reply)
	}
}

func TestDeviceStatusReportCursorPosition(t *testing.T) {
	p, _ := newTestParser(10, 10)
	p.Feed([]byte("\x1b[3;4H"))
	reply := p.Feed([]byte("\x1b[6n"))
	want := "\x1b[3;4R"
	if string(reply) != want {
		t.Fatalf("want DSR reply %q, got %q", want, reply)
	}
}

func TestCharsetDesignationDECSpecialGraphics(t *testing.T) {
	p, scr := newTestParser(10, 1)
	p.Feed([]byte("\x1b(0"))
	p.Feed([]byte("q"))
	var got symbol.Symbol
	scr.Draw(func(x, y int, sym symbol.Symbol, width int, attr screen.Attr, age uint32) {
		if x == 0 && y == 0 {
			got = sym
		}
	})
	mapped, _ := decSpecialGraphics['q']
	if rune(got) != mapped {
		t.Fatalf("want DEC special graphics substitution for 'q', got %v", got)
	}
}

func TestLocalEchoSelfFeedWhenSendReceiveModeOff(t *testing.T) {
	p, scr := newTestParser(10, 10)
	p.Feed([]byte("\x1b[6n"))
	x, y := scr.Cursor()
	if x != 0 || y != 0 {
		t.Fatalf("DSR query must not move the cursor, got (%d,%d)", x, y)
	}
}

func TestSendReceiveModeSuppressesSelfFeed(t *testing.T) {
	p, _ := newTestParser(10, 10)
	p.Feed([]byte("\x1b[12h"))
	if !p.sendReceiveMode {
		t.Fatalf("want SRM on after CSI 12h")
	}
	reply := p.Feed([]byte("\x1b[6n"))
	if len(reply) == 0 {
		t.Fatalf("want DSR reply bytes returned to the caller even with SRM on")
	}
}

func TestRISResetsAttributesAndTabs(t *testing.T) {
	p, scr := newTestParser(20, 5)
	p.Feed([]byte("\x1b[1m"))
	scr.ClearAllTabStops()
	p.Feed([]byte("\x1bc"))
	if p.cattr != screen.DefaultAttr {
		t.Fatalf("want attrs reset after RIS")
	}
	scr.NextTab(1)
	x, _ := scr.Cursor()
	if x != 8 {
		t.Fatalf("want tab ruler rebuilt at every 8 columns after RIS, got stop at %d", x)
	}
}
