package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/letoram/tsmgo/input"
	"github.com/letoram/tsmgo/ptybridge"
	"github.com/letoram/tsmgo/tui"
	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

func runRoot(cmd *cobra.Command, args []string) error {
	command, cmdArgs := childCommand(args)

	stdinFd := int(os.Stdin.Fd())
	cols, rows, err := term.GetSize(stdinFd)
	if err != nil {
		return fmt.Errorf("get terminal size (is this a terminal?): %w", err)
	}

	palette, err := resolvePalette()
	if err != nil {
		return err
	}

	var logger *log.Logger
	var logFile *os.File
	if runOpts.debugLog != "" {
		logFile, err = os.OpenFile(runOpts.debugLog, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer logFile.Close()
		logger = log.New(logFile, "tsmterm: ", log.LstdFlags)
	}

	ctx := tui.New(cols, rows, runOpts.sbMax,
		tui.WithPalette(palette),
		tui.WithLogger(logger),
		tui.WithHandlers(tui.Handlers{
			Subwindow: func(kind tui.SubwindowKind, id uuid.UUID) bool { return false },
			Widget:    func(kind tui.WidgetKind, id uuid.UUID) bool { return false },
		}),
	)
	if logFile != nil {
		ctx.AttachDebugger(logFile)
	}

	bridge, err := ptybridge.Spawn(command, cmdArgs, cols, rows)
	if err != nil {
		return err
	}
	ctx.Attach(bridge)

	restore, err := term.MakeRaw(stdinFd)
	if err != nil {
		return fmt.Errorf("set raw mode: %w", err)
	}
	defer func() {
		term.Restore(stdinFd, restore)
		fmt.Print("\x1b[?25h\x1b[0m\r\n")
	}()

	r := newRenderer(os.Stdout, ctx.SymbolTable(), cols, rows)
	clearScreen(os.Stdout)
	r.frame(ctx)

	// SIGWINCH only wakes the single event loop below via a self-pipe; the
	// actual resize (Context.Resize, renderer.resize) always happens on that
	// loop's own goroutine, honoring spec §5's single-cooperative-thread
	// contract for a Context.
	wakeR, wakeW, err := os.Pipe()
	if err != nil {
		return fmt.Errorf("tsmterm: open resize pipe: %w", err)
	}
	defer wakeR.Close()
	defer wakeW.Close()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGWINCH)
	defer signal.Stop(sigCh)
	go func() {
		for range sigCh {
			wakeW.Write([]byte{0})
		}
	}()

	waitDone := make(chan error, 1)
	go func() { waitDone <- bridge.Wait() }()

	if err := eventLoop(ctx, bridge, r, wakeR, stdinFd); err != nil {
		return err
	}
	return <-waitDone
}

// eventLoop is the single cooperatively-scheduled loop spec §5 describes: it
// blocks in poll over the PTY master fd, stdin, and a self-pipe SIGWINCH
// wakes, driving Context.Process on PTY readability, translating stdin bytes
// into child-bound input on host readability, and applying a pending resize
// entirely on this goroutine. It returns when the child's PTY goes away.
func eventLoop(ctx *tui.Context, bridge *ptybridge.Bridge, r *renderer, wakeR *os.File, stdinFd int) error {
	dec := &hostDecoder{}
	readBuf := make([]byte, 4096)
	wakeBuf := make([]byte, 16)

	fds := []unix.PollFd{
		{Fd: int32(stdinFd), Events: unix.POLLIN},
		{Fd: int32(bridge.Fd()), Events: unix.POLLIN},
		{Fd: int32(wakeR.Fd()), Events: unix.POLLIN},
	}

	for {
		_, err := unix.Poll(fds, -1)
		if err != nil {
			if err == unix.EINTR {
				continue
			}
			return fmt.Errorf("tsmterm: poll: %w", err)
		}

		if fds[0].Revents&unix.POLLIN != 0 {
			n, err := unix.Read(stdinFd, readBuf)
			if err != nil && err != unix.EAGAIN {
				return nil
			}
			for _, ev := range dec.Feed(readBuf[:n]) {
				ctx.SendKey(ev)
			}
		}

		if fds[1].Revents&(unix.POLLIN|unix.POLLHUP) != 0 {
			for {
				pending, err := ctx.Process()
				if err != nil {
					return nil
				}
				r.frame(ctx)
				if !pending {
					break
				}
			}
		}

		if fds[2].Revents&unix.POLLIN != 0 {
			unix.Read(int(wakeR.Fd()), wakeBuf)
			applyResize(stdinFd, ctx, r)
		}
	}
}

func applyResize(stdinFd int, ctx *tui.Context, r *renderer) {
	cols, rows, err := term.GetSize(stdinFd)
	if err != nil {
		return
	}
	if err := ctx.Resize(cols, rows); err != nil {
		return
	}
	r.resize(cols, rows)
	clearScreen(os.Stdout)
	r.frame(ctx)
}

func childCommand(args []string) (string, []string) {
	if len(args) > 0 {
		return args[0], args[1:]
	}
	shell := runOpts.shell
	if shell == "" {
		shell = os.Getenv("SHELL")
	}
	if shell == "" {
		shell = "/bin/sh"
	}
	return shell, nil
}

func resolvePalette() (tui.Palette, error) {
	if runOpts.paletteFile != "" {
		return tui.LoadPaletteFile(runOpts.paletteFile)
	}
	return tui.BuiltinPalette(runOpts.paletteName)
}
