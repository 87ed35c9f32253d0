package tui

import "errors"

// The error kinds spec §7 names the core as surfacing. Context returns
// ErrInvalidArgument directly (Resize with a non-positive size, Process
// with no bridge attached), and Process wraps any error from the bridge in
// ErrBrokenConnection. ErrOutOfMemory, ErrProtocolViolation and
// ErrUnsupported are declared for errors.Is checks, but no function in this
// package returns them; protocol violations are recovered inside
// vte.Parser and never reach a Context caller.
var (
	ErrInvalidArgument  = errors.New("tui: invalid argument")
	ErrOutOfMemory      = errors.New("tui: out of memory")
	ErrBrokenConnection = errors.New("tui: broken connection")
	ErrProtocolViolation = errors.New("tui: protocol violation")
	ErrUnsupported      = errors.New("tui: unsupported")
)
