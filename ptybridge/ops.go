package ptybridge

import (
	"fmt"

	"github.com/creack/pty"
	"golang.org/x/sys/unix"
)

// Resize applies a new window size to the pty via TIOCSWINSZ, which the
// kernel turns into a SIGWINCH delivered to the child's foreground process
// group.
func (b *Bridge) Resize(cols, rows int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.master == nil {
		return ErrBrokenConnection
	}
	if err := pty.Setsize(b.master, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)}); err != nil {
		return fmt.Errorf("ptybridge: resize: %w", err)
	}
	return nil
}

// Signal delivers sig to the child's foreground process group via TIOCSIG,
// the same path a real controlling terminal uses for ^C/^Z/^\.
func (b *Bridge) Signal(sig unix.Signal) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.master == nil {
		return ErrBrokenConnection
	}
	if err := unix.IoctlSetInt(b.fd, unix.TIOCSIG, int(sig)); err != nil {
		return fmt.Errorf("ptybridge: signal: %w", err)
	}
	return nil
}

// Wait blocks until the child exits and returns its exit status.
func (b *Bridge) Wait() error {
	return b.cmd.Wait()
}
