// Command tsmterm is a terminal-frameserver-style binary: it spawns a child
// program under ptybridge, feeds its output through vte into a screen.Screen,
// translates the host's own keyboard and mouse input through input back to
// the child, and renders the result through tui's façade. It exists mainly
// as a worked example of wiring the seven packages together end to end;
// a real host (arcan's shmif side, or any other embedder) would replace
// this file's renderer and input reader with its own transport.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "tsmterm:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "tsmterm [flags] [-- command [args...]]",
		Short: "Run a program under a virtual terminal core",
		Long: "tsmterm wires a PTY-spawned child through a VT parser and screen model, " +
			"drawing the result to the controlling terminal and forwarding its input back " +
			"to the child.",
		Args: cobra.ArbitraryArgs,
		RunE: runRoot,
	}

	root.Flags().IntVar(&runOpts.sbMax, "scrollback", 10000, "scrollback capacity in lines")
	root.Flags().StringVar(&runOpts.paletteName, "palette", "default", "built-in palette name (default, solarized, solarized-black, solarized-white)")
	root.Flags().StringVar(&runOpts.paletteFile, "palette-file", "", "path to a YAML palette file, overrides --palette")
	root.Flags().StringVar(&runOpts.shell, "shell", "", "program to run under the PTY (defaults to $SHELL)")
	root.Flags().StringVar(&runOpts.debugLog, "debug-log", "", "path to append VT parser state transitions to, for troubleshooting")

	return root
}

// runOpts holds the parsed flag values; a single global is fine for a
// single-command CLI with no subcommands to share it across.
var runOpts options

type options struct {
	sbMax       int
	paletteName string
	paletteFile string
	shell       string
	debugLog    string
}
