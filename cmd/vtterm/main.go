// Command vtterm runs a shell under the vt100core emulation core and
// renders it with a bubbletea program, demonstrating the library end to
// end: a real pty, a real shell, and a real screen redraw loop (§6).
package main

import (
	"fmt"
	"os"
	"os/exec"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/vtcore/vt100core"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var rows, cols int
	var shell string
	var historyLines int

	cmd := &cobra.Command{
		Use:   "vtterm",
		Short: "Run a shell under the vt100core terminal emulation core",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(shell, rows, cols, historyLines)
		},
	}

	cmd.Flags().IntVar(&rows, "rows", 24, "screen height in rows")
	cmd.Flags().IntVar(&cols, "cols", 80, "screen width in columns")
	cmd.Flags().StringVar(&shell, "shell", defaultShell(), "shell to run")
	cmd.Flags().IntVar(&historyLines, "history", 2000, "scrollback lines to retain")
	return cmd
}

func defaultShell() string {
	if s := os.Getenv("SHELL"); s != "" {
		return s
	}
	return "/bin/sh"
}

func run(shell string, rows, cols, historyLines int) error {
	disp := newBubbleDisplay()

	em := vt100core.NewEmulation(rows, cols,
		vt100core.WithDisplay(disp),
		vt100core.WithKeyTrans(vt100core.NewDefaultKeyTrans()),
		vt100core.WithHistory(vt100core.NewBufferedHistory(historyLines)),
	)

	adapter, err := vt100core.NewPTYAdapter(exec.Command(shell), rows, cols)
	if err != nil {
		return err
	}
	defer adapter.Close()

	go pump(adapter, em)

	p := tea.NewProgram(newModel(em, adapter), tea.WithAltScreen())
	disp.program = p
	_, err = p.Run()
	return err
}

// pump continuously reads pty output and feeds it to the emulation,
// matching the original's "read, decode, dispatch" loop (§5).
func pump(adapter *vt100core.PTYAdapter, em *vt100core.Emulation) {
	buf := make([]byte, 4096)
	for {
		n, err := adapter.Read(buf)
		if n > 0 {
			em.Feed(buf[:n])
		}
		if err != nil {
			return
		}
	}
}
