// Package tui is the public, stable consumer-facing contract spec §4.6
// calls the "TUI façade": cell-level screen operations, a draw/refresh
// entry point, sub-window and widget capability requests, a handler table,
// and the glue that drives a vte.Parser from a ptybridge.Bridge and writes
// translated input back through it. A renderer or widget is built against
// this package without needing to know anything about escape-sequence
// parsing.
package tui

import (
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/letoram/tsmgo/input"
	"github.com/letoram/tsmgo/ptybridge"
	"github.com/letoram/tsmgo/screen"
	"github.com/letoram/tsmgo/symbol"
	"github.com/letoram/tsmgo/vte"
)

// Option configures a Context at construction time.
type Option func(*Context)

// WithHandlers installs the callback table.
func WithHandlers(h Handlers) Option {
	return func(c *Context) { c.handlers = h }
}

// WithPalette sets the initial palette (the zero Palette otherwise, which a
// caller should replace via SetPalette before first Refresh).
func WithPalette(p Palette) Option {
	return func(c *Context) { c.palette = p }
}

// WithLogger sets an optional diagnostic logger, forwarded to the
// underlying vte.Parser for protocol-violation / unsupported-sequence
// reporting per spec §7's "with optional log" clause.
func WithLogger(l *log.Logger) Option {
	return func(c *Context) { c.log = l }
}

// Context owns one terminal's worth of state: the Screen, the Parser
// driving it, the Translator turning host input into child-bound bytes,
// and (once Attach is called) the Bridge to the child process. It is not
// safe for concurrent use from multiple goroutines except where noted
// (spec §5): construct and drive it from a single event-loop goroutine.
type Context struct {
	mu sync.Mutex

	sym        *symbol.Table
	scr        *screen.Screen
	parser     *vte.Parser
	translator *input.Translator
	bridge     *ptybridge.Bridge

	handlers Handlers
	palette  Palette
	log      *log.Logger
	debugW   io.Writer

	destroyed bool
}

// New constructs a Context with a fresh Screen of cols x rows and sbMax
// scrollback capacity, and a Parser/Translator wired to it. Per spec §3's
// lifecycle note, a non-positive cols defaults to 80 and a non-positive
// rows to 24, each independently.
func New(cols, rows, sbMax int, opts ...Option) *Context {
	if cols <= 0 {
		cols = 80
	}
	if rows <= 0 {
		rows = 24
	}

	c := &Context{
		sym:        symbol.NewTable(),
		translator: &input.Translator{},
	}
	for _, o := range opts {
		o(c)
	}

	c.scr = screen.New(c.sym, cols, rows, sbMax)
	c.parser = vte.New(c.scr, c.sym, vte.WithLogger(c.log), vte.WithTitleHandler(func(title string) {
		if c.handlers.Label != nil {
			c.handlers.Label("title:"+title, true)
		}
	}))
	return c
}

// Attach wires a spawned ptybridge.Bridge to this Context. Process will
// read from and write to it from this point on.
func (c *Context) Attach(b *ptybridge.Bridge) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bridge = b
}

// Screen exposes the underlying Screen for direct cell-level operations
// (write, erase, cursor motion, margins, tabs, insert/delete, scroll) —
// spec §4.6 names these as part of the façade's surface, and they are
// exactly screen.Screen's own methods; the façade adds draw filtering,
// the handler table, and PTY wiring on top rather than re-wrapping each
// one.
func (c *Context) Screen() *screen.Screen {
	return c.scr
}

// SymbolTable returns the Context's symbol table, needed by callers that
// intern runes themselves before calling Screen().Write.
func (c *Context) SymbolTable() *symbol.Table {
	return c.sym
}

// Resize changes the Screen's dimensions and fires the Resize handler.
// Per spec §4.6's failure semantics, an invalid size (<=0 in either
// dimension) is a no-op that leaves the Context intact rather than a
// fault.
func (c *Context) Resize(cols, rows int) error {
	if cols <= 0 || rows <= 0 {
		return fmt.Errorf("%w: resize %dx%d", ErrInvalidArgument, cols, rows)
	}
	c.mu.Lock()
	c.scr.Resize(cols, rows)
	c.mu.Unlock()

	if c.bridge != nil {
		if err := c.bridge.Resize(cols, rows); err != nil {
			return err
		}
	}
	if c.handlers.Resize != nil {
		c.handlers.Resize(cols, rows)
	}
	return nil
}

// Process drains one round of pending child output through the Parser,
// writing any reply bytes (DA/DSR and similar) straight back to the child,
// and mirrors the Parser's mouse-reporting mode onto the Translator so
// subsequent SendMouse calls encode correctly. It reports whether the
// caller should reschedule immediately (more output was likely still
// pending) the way ptybridge.Bridge.Dispatch does.
//
// Handlers invoked during Process (via OSC title dispatch, etc.) must not
// call Process again on this Context; spec §5 allows them to drive a
// different Context instead.
func (c *Context) Process() (pending bool, err error) {
	if c.bridge == nil {
		return false, fmt.Errorf("%w: no bridge attached", ErrInvalidArgument)
	}

	pending, err = c.bridge.Dispatch(func(chunk []byte) {
		reply := c.parser.Feed(chunk)
		if c.debugW != nil {
			fmt.Fprintf(c.debugW, "state=%s\n", c.parser.State())
		}
		c.translator.SetMouseProto(input.MouseProto(c.parser.Mouse()))
		if len(reply) > 0 {
			c.bridge.Write(reply)
		}
	})
	if err != nil {
		return pending, fmt.Errorf("%w: %v", ErrBrokenConnection, err)
	}
	return pending, nil
}

// SendKey translates ev through the Translator and writes the result to
// the child, if any bridge is attached and the Key handler (if set)
// doesn't consume the event first.
func (c *Context) SendKey(ev input.KeyEvent) error {
	if c.handlers.Key != nil && c.handlers.Key(ev) {
		return nil
	}
	out := c.translator.Key(ev)
	if len(out) == 0 || c.bridge == nil {
		return nil
	}
	return c.bridge.Write(out)
}

// SendMouse translates ev through the Translator and writes the result to
// the child, the same way SendKey does for keyboard events.
func (c *Context) SendMouse(ev input.MouseEvent) error {
	if c.handlers.Mouse != nil && c.handlers.Mouse(ev) {
		return nil
	}
	out := c.translator.Mouse(ev)
	if len(out) == 0 || c.bridge == nil {
		return nil
	}
	return c.bridge.Write(out)
}

// SendPaste writes data to the child, bracketed per the Translator's
// BracketedPaste state.
func (c *Context) SendPaste(data []byte) error {
	if c.bridge == nil {
		return nil
	}
	return c.bridge.Write(c.translator.Paste(data))
}

// InsertLines shifts the lines from the cursor's row down within the
// current scroll region by n, scrolling region content below the cursor
// down and clearing n fresh lines at the cursor — the cell-level
// equivalent of CSI n L, exposed directly for a host driving the Screen
// without going through the VT parser.
func (c *Context) InsertLines(n int) {
	_, y := c.scr.Cursor()
	top, bottom := c.scr.Margins()
	if y < top {
		return
	}
	c.scr.SetMargins(y, bottom)
	c.scr.ScrollDown(n)
	c.scr.SetMargins(top, bottom)
}

// DeleteLines is InsertLines's mirror — CSI n M.
func (c *Context) DeleteLines(n int) {
	_, y := c.scr.Cursor()
	top, bottom := c.scr.Margins()
	if y < top || y > bottom {
		return
	}
	c.scr.SetMargins(y, bottom)
	c.scr.ScrollUp(n)
	c.scr.SetMargins(top, bottom)
}

// Refresh walks the Screen and invokes cb for every visible cell, applying
// the Substitute and Recolor handlers (if set) before the callback sees
// each cell. It returns the age counter screen.Screen.Draw returns.
func (c *Context) Refresh(cb screen.DrawFunc) uint32 {
	return c.scr.Draw(func(x, y int, sym symbol.Symbol, width int, attr screen.Attr, age uint32) {
		if c.handlers.Substitute != nil {
			if s, ok := c.handlers.Substitute(x, y); ok {
				sym = s
			}
		}
		if c.handlers.Recolor != nil {
			if a, ok := c.handlers.Recolor(x, y, attr); ok {
				attr = a
			}
		}
		cb(x, y, sym, width, attr, age)
	})
}

// ScrollbackHint reports the retained scrollback length and the renderer's
// current scroll offset into it, a content-size hint spec §4.6 says the
// host may use to render a scrollbar. Offset tracking itself lives with
// the host/renderer; this always reports 0 since neither Context nor
// Screen keeps a "currently displayed" scroll position into the history.
func (c *Context) ScrollbackHint() (offset, total int) {
	return 0, c.scr.ScrollbackCount()
}

// AttachDebugger installs a read-only observer of parser state
// transitions, mirroring original_source's tsmdebug.c: every Feed call
// made through Process logs the parser's resulting state name. Passing
// nil detaches it.
func (c *Context) AttachDebugger(w io.Writer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.debugW = w
}

// Destroy releases the attached bridge and clears the handler table. Per
// spec §5, any handler invocation already in flight when Destroy is called
// completes before Destroy returns — true here because Context never
// dispatches handlers from any goroutine but the caller's own.
func (c *Context) Destroy() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.destroyed {
		return nil
	}
	c.destroyed = true
	c.handlers = Handlers{}
	if c.bridge != nil {
		return c.bridge.Close()
	}
	return nil
}
