package tui

import (
	"github.com/google/uuid"
	"github.com/letoram/tsmgo/input"
	"github.com/letoram/tsmgo/screen"
	"github.com/letoram/tsmgo/symbol"
)

// GeoHint carries the locale/position hints a host may push at startup or
// on change, mirrored from arcan_tui.h's geohint event into a single
// struct.
type GeoHint struct {
	Country  string
	Language string
	Timezone string
	Lon, Lat float64
}

// BChunk describes an inbound or outbound descriptor transfer (a pasted
// file, a requested save target, ...). The handler owns Fd and must close
// it, per spec §5's descriptor discipline; Dup it first if the callback
// needs to retain access past the call.
type BChunk struct {
	Fd    int
	Input bool // true: host is handing data to us; false: we're to fill it
	Size  uint64
	Kind  string
}

// Handlers is the façade's callback table: spec §4.6's "handler table (key,
// utf8, label, mouse, resize, reset, geohint, bchunk, state, subwindow,
// substitute, recolor, visibility, exec-state, cli)". Every field is
// optional; a nil handler means the corresponding event is silently
// dropped (never a fault, per spec's failure semantics). Context never
// calls a handler re-entrantly into Process on the same Context — see
// Context.Process.
type Handlers struct {
	// Key receives a resolved keyboard event before any default input
	// translation. Returning true consumes the event (the façade does not
	// also forward it to the input.Translator); false lets it fall through.
	Key func(ev input.KeyEvent) bool

	// UTF8 receives a raw codepoint typed directly (IME composition, paste
	// character-by-character) bypassing the symbolic Key path entirely.
	UTF8 func(r rune) bool

	// Label announces (active=true) or withdraws (active=false) a named
	// input binding the client supports, so the host's key-hint UI can
	// show it.
	Label func(name string, active bool)

	// Mouse receives a resolved mouse event.
	Mouse func(ev input.MouseEvent) bool

	// Resize fires after Context.Resize completes.
	Resize func(cols, rows int)

	// Reset is part of the table, but no Context method invokes it; RIS
	// (ESC c) from the child resets the Parser and Screen without calling
	// it.
	Reset func()

	// GeoHint fires when the host pushes updated locale/position data.
	GeoHint func(GeoHint)

	// BChunk fires on an inbound or outbound descriptor transfer request.
	// Returning false refuses it (a no-op, per spec's subwindow/bchunk
	// refusal semantics).
	BChunk func(BChunk) bool

	// State fires on a save-state (in=false) or load-state (in=true)
	// request, handed fd to read/write a Screen.Save()-shaped blob.
	State func(in bool, fd int) bool

	// Subwindow decides whether to accept a RequestSubwindow call.
	Subwindow func(kind SubwindowKind, id uuid.UUID) bool

	// Widget decides whether to accept a RequestWidget call.
	Widget func(kind WidgetKind, id uuid.UUID) bool

	// Substitute lets the host override the glyph drawn at (x,y), e.g. for
	// font-fallback or a debug overlay, without mutating the underlying
	// Cell. Returning ok=false draws the cell's own symbol unchanged.
	Substitute func(x, y int) (sym symbol.Symbol, ok bool)

	// Recolor lets the host override a cell's rendered attribute at draw
	// time (e.g. syntax highlighting keyed off Attr.Custom) without
	// mutating the Screen.
	Recolor func(x, y int, attr screen.Attr) (out screen.Attr, ok bool)

	// Visibility fires when the host reports this context gained or lost
	// visibility (e.g. switched to a background workspace).
	Visibility func(visible, focused bool)

	// ExecState fires when the child process under ptybridge changes state
	// (spawned, exited, killed), with the exit status valid only on exit.
	ExecState func(exited bool, status int)

	// CLI fires once at startup with the parsed packed CLI argument string
	// (spec §6), after Context applies the options it recognizes itself
	// (rows/cols/palette), so the host can react to the rest (cursor,
	// login, fonts, ...).
	CLI func(Config)
}
