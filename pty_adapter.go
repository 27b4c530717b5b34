package vt100core

import (
	"os"
	"os/exec"

	"github.com/creack/pty"
)

// PTYAdapter is a [PTY] backed by a real pseudo-terminal spawned with
// creack/pty, grounded on the historical PtySession's StartWithSize/
// Setsize/Close usage (§6).
type PTYAdapter struct {
	cmd *exec.Cmd
	f   *os.File
}

// NewPTYAdapter starts cmd attached to a new pty of the given size and
// returns an adapter over it.
func NewPTYAdapter(cmd *exec.Cmd, rows, cols int) (*PTYAdapter, error) {
	f, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
	if err != nil {
		return nil, err
	}
	return &PTYAdapter{cmd: cmd, f: f}, nil
}

func (a *PTYAdapter) Read(p []byte) (int, error) { return a.f.Read(p) }

func (a *PTYAdapter) Write(p []byte) (int, error) { return a.f.Write(p) }

// Resize informs the kernel pty of a new window size.
func (a *PTYAdapter) Resize(rows, cols int) error {
	return pty.Setsize(a.f, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
}

// Close closes the pty file descriptor and kills the child process if it's
// still running.
func (a *PTYAdapter) Close() error {
	if a.cmd.Process != nil {
		a.cmd.Process.Kill()
	}
	return a.f.Close()
}

var _ PTY = (*PTYAdapter)(nil)
