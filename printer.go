package vt100core

import (
	"io"
	"os"
	"os/exec"
)

// printerSink is the destination for bytes diverted by the tokenizer's
// printScan sub-state (§4.1, §6). Commanded on by CSI 5i, off by CSI 4i.
// The target is $PRINT_COMMAND, run as a shell command with its stdin
// wired to Write, or a discard sink when the variable is unset, matching
// the original's "cat > /dev/null" fallback.
type printerSink struct {
	cmd   *exec.Cmd
	stdin io.WriteCloser
}

func newPrinterSink() *printerSink {
	command := os.Getenv("PRINT_COMMAND")
	if command == "" {
		return &printerSink{}
	}
	cmd := exec.Command("sh", "-c", command)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return &printerSink{}
	}
	if err := cmd.Start(); err != nil {
		return &printerSink{}
	}
	return &printerSink{cmd: cmd, stdin: stdin}
}

// Write sends one pass-through byte to the sink, discarding it silently
// if no printer command is configured.
func (p *printerSink) Write(b byte) {
	if p.stdin != nil {
		p.stdin.Write([]byte{b})
	}
}

// Close ends pass-through, closing the sink's stdin and reaping the
// spawned process if one was started.
func (p *printerSink) Close() {
	if p.stdin != nil {
		p.stdin.Close()
	}
	if p.cmd != nil {
		p.cmd.Wait()
	}
}
