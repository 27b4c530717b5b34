package vt100core

import (
	"io"
)

// PTY is the narrow surface the emulation needs from a pseudo-terminal:
// a byte stream in each direction, resize notification and a way to shut
// it down (§6). The emulation reaches a pty only through this interface;
// [NewPTYAdapter] in pty_adapter.go provides one backed by creack/pty.
type PTY interface {
	io.Reader
	io.Writer

	// Resize informs the other end of the pty of a new window size.
	Resize(rows, cols int) error

	Close() error
}

// NoopPTY discards writes and never produces input; useful in tests that
// drive an Emulation directly via Feed.
type NoopPTY struct{}

func (NoopPTY) Read([]byte) (int, error)   { return 0, io.EOF }
func (NoopPTY) Write(p []byte) (int, error) { return len(p), nil }
func (NoopPTY) Resize(int, int) error      { return nil }
func (NoopPTY) Close() error               { return nil }

var _ PTY = NoopPTY{}

// Display receives the side effects an [Emulation] produces that aren't
// simply "the screen changed": bell, title changes and a request to
// schedule a repaint after the bulk-update quiet window elapses (§5).
type Display interface {
	// Bell is called when BEL (0x07) is received.
	Bell()
	// SetTitle is called on an OSC title-change request.
	SetTitle(title string)
	// Damage is called once per bulk-update cycle to signal that the
	// screen should be repainted; it carries no region information,
	// mirroring the original's "just repaint everything" policy.
	Damage()
}

// NoopDisplay ignores every notification.
type NoopDisplay struct{}

func (NoopDisplay) Bell()           {}
func (NoopDisplay) SetTitle(string) {}
func (NoopDisplay) Damage()         {}

var _ Display = NoopDisplay{}

// KeyModifiers is a bitmask of modifier keys held during a key event,
// passed to [KeyTrans.Translate] alongside the emulator's mode bits so a
// translation table can special-case e.g. application cursor-key mode.
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota
	ModControl
	ModAlt
)

// KeyTrans maps a logical key press to the bytes that should be written
// to the pty, honoring the emulator's current mode bits (§6, grounded on
// the historical KeyTrans lookup table driven off NewLine/Ansi/AppCuKeys
// mode plus modifier state). Implementations are expected to be table
// driven; [NewYAMLKeyTrans] in keytrans.go loads one from a config file.
type KeyTrans interface {
	// Translate returns the bytes to send for key under the given
	// modifiers and emulator modes, or ok=false if the table has no entry
	// and the caller should fall back to its own default encoding.
	Translate(key string, mods KeyModifiers, modes EmulatorMode) (text []byte, ok bool)
}

// NoopKeyTrans never matches, so callers always fall back to their
// default key encoding.
type NoopKeyTrans struct{}

func (NoopKeyTrans) Translate(string, KeyModifiers, EmulatorMode) ([]byte, bool) {
	return nil, false
}

var _ KeyTrans = NoopKeyTrans{}

// ClipboardProvider backs the host clipboard that [Emulation.EndSelection]
// writes the mouse-selected text to (§6 Display's setSelection signal).
type ClipboardProvider interface {
	Read(selection byte) string
	Write(selection byte, data []byte)
}

// NoopClipboard ignores every clipboard access.
type NoopClipboard struct{}

func (NoopClipboard) Read(byte) string      { return "" }
func (NoopClipboard) Write(byte, []byte) {}

var _ ClipboardProvider = NoopClipboard{}

// RecordingProvider captures raw input bytes ahead of tokenizing, for
// replay/debugging sessions independent of the scrollback History.
type RecordingProvider interface {
	Record(data []byte)
	Data() []byte
	Clear()
}

// NoopRecording discards everything fed to it.
type NoopRecording struct{}

func (NoopRecording) Record([]byte) {}
func (NoopRecording) Data() []byte  { return nil }
func (NoopRecording) Clear()        {}

var _ RecordingProvider = NoopRecording{}
