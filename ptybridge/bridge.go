// Package ptybridge owns a child process's pseudo-terminal: spawning,
// edge-triggered non-blocking I/O, window-size and signal forwarding, and an
// environment scrubbed the way a real terminal emulator scrubs it before
// exec. It knows nothing about escape sequences; callers hand its Read
// output to a vte.Parser and its Write input comes from that parser's
// replies plus the input translator.
package ptybridge

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"

	"github.com/creack/pty"
	"golang.org/x/sys/unix"
)

// BufSize bounds a single non-blocking read, mirroring the fixed BUFSIZE a
// real edge-triggered bridge reads into.
const BufSize = 16 * 1024

// ErrBrokenConnection is returned once the child side of the pty has gone
// away (EOF or EPIPE on write).
var ErrBrokenConnection = errors.New("ptybridge: broken connection")

// Bridge owns a pty master and the child process attached to its slave.
// Dispatch/Write are edge-triggered: they never block past what the kernel
// already has buffered, so a single-threaded event loop can poll Fd()
// alongside other descriptors without one slow peer starving the rest.
// Close is idempotent; all other methods are safe to call concurrently with
// each other but not with Close.
type Bridge struct {
	mu     sync.Mutex
	master *os.File
	fd     int
	cmd    *exec.Cmd
	closed bool

	writeBuf bytes.Buffer
}

// Spawn starts command under a new pty sized cols x rows, with env scrubbed
// per Env. The returned Bridge owns the master end; the child's lifetime is
// tied to cmd.Wait, which the caller drives (typically from a goroutine that
// calls Close on exit).
func Spawn(command string, args []string, cols, rows int, opts ...EnvOption) (*Bridge, error) {
	cmd := exec.Command(command, args...)
	cmd.Env = Env(os.Environ(), opts...)

	master, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: uint16(rows),
		Cols: uint16(cols),
	})
	if err != nil {
		return nil, fmt.Errorf("ptybridge: start %s: %w", command, err)
	}

	fd := int(master.Fd())
	if err := unix.SetNonblock(fd, true); err != nil {
		master.Close()
		return nil, fmt.Errorf("ptybridge: set nonblocking: %w", err)
	}

	return &Bridge{master: master, fd: fd, cmd: cmd}, nil
}

// Fd returns the master file descriptor, for the host's poll loop.
func (b *Bridge) Fd() uintptr {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.master == nil {
		return ^uintptr(0)
	}
	return uintptr(b.fd)
}

// Dispatch drains at most two BufSize reads from the master, invoking onRead
// with each non-empty chunk, and reports whether a third read would likely
// still find data pending — the caller should reschedule rather than spin.
// A read error other than EAGAIN is reported via err and the caller should
// treat the bridge as broken.
func (b *Bridge) Dispatch(onRead func([]byte)) (pending bool, err error) {
	buf := make([]byte, BufSize)
	for i := 0; i < 2; i++ {
		n, rerr := unix.Read(b.fd, buf)
		if n > 0 {
			onRead(buf[:n])
		}
		if rerr != nil {
			if rerr == unix.EAGAIN || rerr == unix.EWOULDBLOCK {
				return false, nil
			}
			return false, fmt.Errorf("ptybridge: read: %w", rerr)
		}
		if n == 0 {
			return false, ErrBrokenConnection
		}
		if n == BufSize && i == 1 {
			return true, nil
		}
	}
	return false, nil
}

// Write queues data for the child, writing as much as the pty accepts right
// now; unwritten bytes stay buffered and are retried on the next Write or
// FlushWrites call. EPIPE is reported as ErrBrokenConnection.
func (b *Bridge) Write(data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.writeBuf.Write(data)
	return b.flushLocked()
}

// FlushWrites retries any buffered, previously unsent output.
func (b *Bridge) FlushWrites() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.flushLocked()
}

func (b *Bridge) flushLocked() error {
	if b.master == nil {
		return ErrBrokenConnection
	}
	for b.writeBuf.Len() > 0 {
		n, err := unix.Write(b.fd, b.writeBuf.Bytes())
		if n > 0 {
			b.writeBuf.Next(n)
		}
		if err != nil {
			if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
				return nil
			}
			if err == unix.EPIPE {
				return ErrBrokenConnection
			}
			return fmt.Errorf("ptybridge: write: %w", err)
		}
	}
	return nil
}

// Close releases the master fd and is safe to call more than once.
func (b *Bridge) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.closed = true
	if b.master != nil {
		return b.master.Close()
	}
	return nil
}
