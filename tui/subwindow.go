package tui

import "github.com/google/uuid"

// SubwindowKind enumerates the sub-window request verbs arcan_tui.h
// defines (supplemented into this spec from original_source per
// SPEC_FULL.md, since spec §4.6 only says "sub-window requests"
// generically).
type SubwindowKind int

const (
	SubwindowTUI SubwindowKind = iota
	SubwindowPopup
	SubwindowHandover
	SubwindowDebug
	SubwindowAccessibility
)

func (k SubwindowKind) String() string {
	switch k {
	case SubwindowTUI:
		return "tui"
	case SubwindowPopup:
		return "popup"
	case SubwindowHandover:
		return "handover"
	case SubwindowDebug:
		return "debug"
	case SubwindowAccessibility:
		return "accessibility"
	default:
		return "unknown"
	}
}

// SubwindowHandle is the capability handle returned for an accepted
// sub-window request. The host may use ID to correlate an eventual
// accept/refuse arriving asynchronously from its side of the shared-memory
// transport (out of scope here per spec §1, but the handle's shape is
// part of this core's contract with that collaborator).
type SubwindowHandle struct {
	ID   uuid.UUID
	Kind SubwindowKind
}

// RequestSubwindow asks the host to open a sub-window of the given kind.
// Per spec §4.6's failure semantics, the host may refuse; a refusal is
// reported as ok=false, never as an error — the client must treat it as a
// no-op.
func (c *Context) RequestSubwindow(kind SubwindowKind) (handle SubwindowHandle, ok bool) {
	if c.handlers.Subwindow == nil {
		return SubwindowHandle{}, false
	}
	id := uuid.New()
	if !c.handlers.Subwindow(kind, id) {
		return SubwindowHandle{}, false
	}
	return SubwindowHandle{ID: id, Kind: kind}, true
}

// WidgetKind enumerates the static feature matrix spec §9's "dynamic
// symbol loader" replacement selects from at build time, grounded on
// original_source's readline.c/listwnd.c/bufferwnd.c/linewnd.c.
type WidgetKind int

const (
	WidgetList WidgetKind = iota
	WidgetBuffer
	WidgetLine
	WidgetReadline
)

func (k WidgetKind) String() string {
	switch k {
	case WidgetList:
		return "list"
	case WidgetBuffer:
		return "buffer"
	case WidgetLine:
		return "line"
	case WidgetReadline:
		return "readline"
	default:
		return "unknown"
	}
}

// WidgetHandle is the capability handle returned when a host accepts a
// RequestWidget call.
type WidgetHandle struct {
	ID   uuid.UUID
	Kind WidgetKind
}

// RequestWidget asks the host to instantiate one of the built-in widgets
// against this Context. As with RequestSubwindow, refusal is a no-op.
func (c *Context) RequestWidget(kind WidgetKind) (handle WidgetHandle, ok bool) {
	if c.handlers.Widget == nil {
		return WidgetHandle{}, false
	}
	id := uuid.New()
	if !c.handlers.Widget(kind, id) {
		return WidgetHandle{}, false
	}
	return WidgetHandle{ID: id, Kind: kind}, true
}
