package tui

// The methods in this file are the inbound half of spec §6's shared-memory
// event channel: a host delivers TARGET/EXTERNAL-category events (exec
// state changes, geohint, descriptor transfers, visibility, state
// save/load requests) by calling these, and Context forwards them to
// whichever Handlers field is set. The wire format that gets a host to
// call these is out of scope (spec §1's shared-memory IPC collaborator);
// this is the stable boundary that collaborator's adapter code calls
// across.

// DispatchExecState forwards a child-process state change.
func (c *Context) DispatchExecState(exited bool, status int) {
	if c.handlers.ExecState != nil {
		c.handlers.ExecState(exited, status)
	}
}

// DispatchVisibility forwards a visibility/focus change.
func (c *Context) DispatchVisibility(visible, focused bool) {
	if c.handlers.Visibility != nil {
		c.handlers.Visibility(visible, focused)
	}
}

// DispatchGeoHint forwards an updated locale/position hint.
func (c *Context) DispatchGeoHint(hint GeoHint) {
	if c.handlers.GeoHint != nil {
		c.handlers.GeoHint(hint)
	}
}

// DispatchBChunk forwards an inbound or outbound descriptor transfer
// request. The caller owns chunk.Fd until the handler (or the caller
// itself, if no handler is set) closes it — Context never touches it.
func (c *Context) DispatchBChunk(chunk BChunk) bool {
	if c.handlers.BChunk == nil {
		return false
	}
	return c.handlers.BChunk(chunk)
}

// DispatchState forwards a save-state or load-state request.
func (c *Context) DispatchState(in bool, fd int) bool {
	if c.handlers.State == nil {
		return false
	}
	return c.handlers.State(in, fd)
}

// DispatchCLI parses packed per spec §6, applies the rows/cols/palette
// options it recognizes directly, then forwards the full Config to the
// CLI handler for anything else (font hints, cursor style, login shell,
// ...).
func (c *Context) DispatchCLI(packed string) Config {
	cfg := ParseConfig(packed)

	if cfg.Rows > 0 && cfg.Cols > 0 {
		c.Resize(cfg.Cols, cfg.Rows)
	}
	if cfg.Palette != "" {
		if p, err := BuiltinPalette(cfg.Palette); err == nil {
			c.SetPalette(p)
		}
	}

	if c.handlers.CLI != nil {
		c.handlers.CLI(cfg)
	}
	return cfg
}

// DispatchUTF8 forwards a raw codepoint typed directly (bypassing the
// symbolic Key path), per spec §4.6's "utf8" handler table entry.
func (c *Context) DispatchUTF8(r rune) bool {
	if c.handlers.UTF8 == nil {
		return false
	}
	return c.handlers.UTF8(r)
}

// AnnounceLabel tells the host a named input binding is (or is no longer)
// available, for its key-hint UI.
func (c *Context) AnnounceLabel(name string, active bool) {
	if c.handlers.Label != nil {
		c.handlers.Label(name, active)
	}
}
