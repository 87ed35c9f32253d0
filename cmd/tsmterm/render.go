package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/letoram/tsmgo/screen"
	"github.com/letoram/tsmgo/symbol"
	"github.com/letoram/tsmgo/tui"
)

// renderer turns a tui.Context's cell grid into real ANSI output on w,
// redrawing only the cells whose reported age changed since the previous
// frame, the host-side half of screen.Screen's age-filtered draw contract.
// Both frame and resize are only ever called from the single event-loop
// goroutine that owns the Context, per spec §5.
type renderer struct {
	w       *bufio.Writer
	sym     *symbol.Table
	cols    int
	rows    int
	lastAge [][]uint32
	lastX   int
	lastY   int
	valid   bool
}

func newRenderer(w io.Writer, sym *symbol.Table, cols, rows int) *renderer {
	return &renderer{
		w:    bufio.NewWriter(w),
		sym:  sym,
		cols: cols,
		rows: rows,
	}
}

func (r *renderer) resize(cols, rows int) {
	r.cols, r.rows = cols, rows
	r.lastAge = nil
	r.valid = false
}

// frame redraws whatever changed in ctx since the last call and repositions
// the real cursor to match the Screen's own cursor.
func (r *renderer) frame(ctx *tui.Context) {
	if r.lastAge == nil {
		r.lastAge = make([][]uint32, r.rows)
		for y := range r.lastAge {
			r.lastAge[y] = make([]uint32, r.cols)
			for x := range r.lastAge[y] {
				r.lastAge[y][x] = ^uint32(0)
			}
		}
	}

	palette := ctx.Palette()
	defFg := [3]uint8{palette.FG.R, palette.FG.G, palette.FG.B}
	defBg := [3]uint8{palette.BG.R, palette.BG.G, palette.BG.B}

	ctx.Refresh(func(x, y int, sym symbol.Symbol, width int, attr screen.Attr, age uint32) {
		if y >= len(r.lastAge) || x >= len(r.lastAge[y]) {
			return
		}
		if r.valid && r.lastAge[y][x] == age {
			return
		}
		r.lastAge[y][x] = age
		r.moveTo(x, y)
		r.writeCell(sym, attr, defFg, defBg)
		r.lastX = x + width
		r.lastY = y
	})
	r.valid = true

	cx, cy := ctx.Screen().Cursor()
	r.moveTo(cx, cy)
	r.w.Flush()
}

func (r *renderer) moveTo(x, y int) {
	if r.lastX == x && r.lastY == y {
		return
	}
	fmt.Fprintf(r.w, "\x1b[%d;%dH", y+1, x+1)
}

func (r *renderer) writeCell(sym symbol.Symbol, attr screen.Attr, defFg, defBg [3]uint8) {
	fmt.Fprint(r.w, sgrFor(attr, defFg, defBg))
	for _, run := range r.sym.Runes(sym) {
		r.w.WriteRune(run)
	}
}

// sgrFor builds the SGR escape sequence for attr, always emitting a full
// reset first since the renderer does not track the previously emitted SGR
// state across non-adjacent redrawn cells.
func sgrFor(attr screen.Attr, defFg, defBg [3]uint8) string {
	out := "\x1b[0"
	if attr.Has(screen.AttrBold) {
		out += ";1"
	}
	if attr.Has(screen.AttrDim) {
		out += ";2"
	}
	if attr.Has(screen.AttrItalic) {
		out += ";3"
	}
	if attr.Has(screen.AttrUnderline) {
		out += ";4"
	}
	if attr.Has(screen.AttrBlink) {
		out += ";5"
	}
	if attr.Has(screen.AttrStrike) {
		out += ";9"
	}

	fg := attr.Fg
	if attr.Has(screen.AttrBold) {
		fg = fg.Bright()
	}
	fgRGB := fg.Resolve(defFg, defBg, true)
	bgRGB := attr.Bg.Resolve(defFg, defBg, false)
	out += fmt.Sprintf(";38;2;%d;%d;%d;48;2;%d;%d;%d", fgRGB[0], fgRGB[1], fgRGB[2], bgRGB[0], bgRGB[1], bgRGB[2])

	return out + "m"
}

// clearScreen wipes the real terminal and homes the cursor, used once at
// startup and after a resize before the first frame.
func clearScreen(w io.Writer) {
	fmt.Fprint(w, "\x1b[2J\x1b[H")
}
