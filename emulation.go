package vt100core

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// bulkTimeout is the quiet-window the emulation waits for more input before
// forcing a Damage notification, mirroring the historical emulation's
// BULK_TIMEOUT single-shot refresh timer (§5).
const bulkTimeout = 20 * time.Millisecond

// A bulk update is flushed immediately instead of waiting out bulkTimeout
// when more newlines arrived in this batch than the active screen has rows,
// or when more than bulkMaxIncnt code points arrived since the last
// newline (§5).
const bulkMaxIncnt = 20

// Emulation orchestrates a [Tokenizer], an [Interpreter] and a pair of
// [Screen]s (primary and alternate) over a [PTY], batching repaint
// notifications to its [Display] the way the historical TEmulation does
// with its bulk_nlcnt/bulk_incnt counters and a 20ms single-shot timer
// (§5, grounded in TEmulation.cpp's onRcvBlock/showBulk/bulkStart/bulkEnd).
type Emulation struct {
	mu sync.RWMutex

	tok *Tokenizer
	ip  *Interpreter

	primary *Screen
	alt     *Screen
	onAlt   bool

	mode EmulatorMode
	modeSaves modeSaveSet[EmulatorMode]

	codec   Codec
	pending []byte // incomplete trailing sequence held over to the next Feed

	pty     PTY
	display Display
	keys    KeyTrans
	clip    ClipboardProvider
	rec     RecordingProvider

	onError func(error)

	printer *printerSink

	bulkNlCnt  int
	bulkInCnt  int
	bulkTimer  *time.Timer
	bulkTimerMu sync.Mutex
}

// EmulationOption configures a new [Emulation]; see [WithPTY], [WithDisplay],
// [WithKeyTrans], [WithClipboard], [WithRecording] and [WithHistory].
type EmulationOption func(*Emulation)

func WithPTY(p PTY) EmulationOption { return func(e *Emulation) { e.pty = p } }

func WithDisplay(d Display) EmulationOption { return func(e *Emulation) { e.display = d } }

func WithKeyTrans(k KeyTrans) EmulationOption { return func(e *Emulation) { e.keys = k } }

func WithClipboard(c ClipboardProvider) EmulationOption {
	return func(e *Emulation) { e.clip = c }
}

func WithRecording(r RecordingProvider) EmulationOption {
	return func(e *Emulation) { e.rec = r }
}

// WithHistory attaches h to the primary screen only, matching the original
// design where the alternate screen never retains scrollback.
func WithHistory(h History) EmulationOption {
	return func(e *Emulation) { e.primary.SetHistory(h) }
}

// NewEmulation creates an Emulation with a primary and alternate screen of
// the given size, both starting in ANSI mode with AppKeyPad off. Defaults
// to [NoopPTY], [NoopDisplay], [NoopKeyTrans], [NoopClipboard] and
// [NoopRecording] when the corresponding option is not given.
func NewEmulation(rows, cols int, opts ...EmulationOption) *Emulation {
	e := &Emulation{
		tok:       NewTokenizer(),
		primary:   NewScreen(rows, cols, NoHistory{}),
		alt:       NewScreen(rows, cols, nil),
		mode:      ModeAnsi,
		modeSaves: newModeSaveSet[EmulatorMode](),
		codec:     UTF8Codec{},
		pty:       NoopPTY{},
		display:   NoopDisplay{},
		keys:      NoopKeyTrans{},
		clip:      NoopClipboard{},
		rec:       NoopRecording{},
	}
	e.ip = newInterpreter(e)
	e.tok.OnError(e.reportError)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Emulation) activeScreen() *Screen {
	if e.onAlt {
		return e.alt
	}
	return e.primary
}

func (e *Emulation) altScreenRef() *Screen { return e.alt }

// Screen returns the screen currently driving the display: the alternate
// screen when DECSET 47/1047/1049 is active, the primary screen otherwise.
func (e *Emulation) Screen() *Screen {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.activeScreen()
}

// PrimaryScreen returns the primary screen regardless of which is active.
func (e *Emulation) PrimaryScreen() *Screen {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.primary
}

// AlternateScreen returns the alternate screen regardless of which is active.
func (e *Emulation) AlternateScreen() *Screen {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.alt
}

// OnError installs a callback invoked whenever tokenizing or interpreting
// drops a malformed sequence (§7).
func (e *Emulation) OnError(fn func(error)) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.onError = fn
}

func (e *Emulation) reportError(err error) {
	if e.onError != nil {
		e.onError(err)
	}
}

// Feed decodes and interprets a block of bytes just read from the pty,
// matching onRcvBlock's per-byte decode-then-dispatch loop and its bulk
// newline/char counters (§5, §7). Safe to call from any goroutine; Feed
// serializes internally.
func (e *Emulation) Feed(p []byte) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.rec != nil {
		e.rec.Record(p)
	}

	e.bulkStart()
	if len(e.pending) > 0 {
		p = append(e.pending, p...)
		e.pending = nil
	}
	for len(p) > 0 {
		runes, n := e.codec.Decode(p)
		if n == 0 {
			e.pending = append([]byte(nil), p...)
			break // incomplete trailing sequence: wait for more input
		}
		for _, r := range runes {
			e.dispatchRune(r)
			if r == '\n' {
				e.bulkNewline()
			} else {
				e.bulkInCnt++
			}
		}
		p = p[n:]
	}
	e.bulkEnd()
}

func (e *Emulation) dispatchRune(r rune) {
	toks := e.tok.Feed(r, e.onTitle)
	for _, t := range toks {
		e.ip.Dispatch(t)
	}
}

func (e *Emulation) onTitle(arg int, text string) {
	if arg == 0 || arg == 1 || arg == 2 {
		e.display.SetTitle(text)
	}
}

// --- Bulk refresh batching (§5) --------------------------------------------

func (e *Emulation) bulkStart() {
	e.bulkTimerMu.Lock()
	if e.bulkTimer != nil {
		e.bulkTimer.Stop()
	}
	e.bulkTimerMu.Unlock()
}

func (e *Emulation) bulkNewline() {
	e.bulkNlCnt++
	e.bulkInCnt = 0
}

func (e *Emulation) bulkEnd() {
	if e.bulkNlCnt > e.activeScreen().Rows() || e.bulkInCnt > bulkMaxIncnt {
		e.showBulk()
		return
	}
	e.bulkTimerMu.Lock()
	e.bulkTimer = time.AfterFunc(bulkTimeout, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		e.showBulk()
	})
	e.bulkTimerMu.Unlock()
}

func (e *Emulation) showBulk() {
	e.bulkNlCnt, e.bulkInCnt = 0, 0
	e.display.Damage()
}

// --- Keyboard input ---------------------------------------------------------

// SendKey translates a logical key press via the configured [KeyTrans] and
// writes the resulting bytes to the pty.
func (e *Emulation) SendKey(key string, mods KeyModifiers) error {
	e.mu.Lock()
	modes := e.mode
	e.mu.Unlock()
	if text, ok := e.keys.Translate(key, mods, modes); ok {
		_, err := e.pty.Write(text)
		return err
	}
	return nil
}

// Write sends raw bytes to the pty, e.g. for pasted text.
func (e *Emulation) Write(p []byte) (int, error) { return e.pty.Write(p) }

// --- Screen-size and reset ---------------------------------------------------

// Resize applies new dimensions to both screens and the pty, then forces an
// immediate repaint (§5 onImageSizeChange).
func (e *Emulation) Resize(rows, cols int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.primary.ResizeImage(rows, cols); err != nil {
		return err
	}
	if err := e.alt.ResizeImage(rows, cols); err != nil {
		return err
	}
	e.showBulk()
	return e.pty.Resize(rows, cols)
}

// Reset restores both screens and emulator-level mode bits to their
// power-on state (ESC c).
func (e *Emulation) Reset() {
	e.primary.Reset()
	e.alt.Reset()
	e.onAlt = false
	e.mode = ModeAnsi
	e.tok.AnsiMode = true
}

// --- Selection relay (§5) ----------------------------------------------------

// BeginSelection starts a text selection at (x, y) on the active screen.
func (e *Emulation) BeginSelection(x, y int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.activeScreen().SetSelBeginXY(x, y)
}

// ExtendSelection moves the active selection's end point to (x, y).
func (e *Emulation) ExtendSelection(x, y int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.activeScreen().SetSelExtentXY(x, y)
}

// EndSelection marks the selection as no longer being dragged and, if clip
// is configured, copies the selected text (preserveLineBreaks controls
// whether wrapped rows become a space or a newline).
func (e *Emulation) EndSelection(preserveLineBreaks bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	scr := e.activeScreen()
	scr.SetBusySelecting(false)
	e.clip.Write('p', []byte(scr.GetSelText(preserveLineBreaks)))
}

// ClearSelection deactivates the active screen's current selection.
func (e *Emulation) ClearSelection() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.activeScreen().ClearSelection()
}

// --- Mode bits (emulator-level, §4.4) ---------------------------------------

// setMode mirrors ModeEmulatorNewLine onto both screens' ScreenMode,
// matching the original dispatcher's "m == MODE_NewLine" propagation rule;
// every other emulator-level bit stays emulator-local.
func (e *Emulation) setMode(m EmulatorMode) {
	e.mode |= m
	if m == ModeEmulatorNewLine {
		e.primary.SetMode(ModeNewLine)
		e.alt.SetMode(ModeNewLine)
	}
	if m == ModeAnsi {
		e.tok.AnsiMode = true
	}
}

func (e *Emulation) resetMode(m EmulatorMode) {
	e.mode &^= m
	if m == ModeEmulatorNewLine {
		e.primary.ResetMode(ModeNewLine)
		e.alt.ResetMode(ModeNewLine)
	}
	if m == ModeAnsi {
		e.tok.AnsiMode = false
	}
}

func (e *Emulation) saveEmulatorMode(m EmulatorMode) {
	e.modeSaves.save(e.mode, m)
}

func (e *Emulation) restoreEmulatorMode(m EmulatorMode) {
	if v, ok := e.modeSaves.restore(m); ok {
		if m == ModeAltScreenActive {
			e.useAltScreen(v)
			return
		}
		if v {
			e.setMode(m)
		} else {
			e.resetMode(m)
		}
	}
}

// ModeSet reports whether every bit in m is currently set at the emulator
// level (distinct from Screen.ModeSet, which tests per-screen bits).
func (e *Emulation) ModeSet(m EmulatorMode) bool { return e.mode&m == m }

func (e *Emulation) setColumns(cols int) {
	rows := e.primary.Rows()
	e.primary.ResizeImage(rows, cols)
	e.alt.ResizeImage(rows, cols)
}

func (e *Emulation) setMargins(top, bottom int) {
	e.activeScreen().SetMargins(top, bottom)
}

// setPrinterMode toggles printer pass-through (CSI 5i / CSI 4i, §4.1,
// §6): on, it hands the tokenizer a fresh sink targeting $PRINT_COMMAND
// (or discarding, if unset); off, it closes that sink and lets the
// tokenizer resume normal scanning.
func (e *Emulation) setPrinterMode(on bool) {
	if on {
		if e.printer == nil {
			e.printer = newPrinterSink()
		}
		e.tok.SetPrinting(true, e.printer.Write)
		return
	}
	e.tok.SetPrinting(false, nil)
	if e.printer != nil {
		e.printer.Close()
		e.printer = nil
	}
}

func (e *Emulation) setCodec(utf8 bool) {
	if utf8 {
		e.codec = UTF8Codec{}
	} else {
		e.codec = LocaleCodec{}
	}
}

func (e *Emulation) setCharset(slot int, final byte) {
	e.activeScreen().SetCharset(slot, final)
}

func (e *Emulation) saveCursor() { e.activeScreen().SaveCursor() }

func (e *Emulation) restoreCursor() { e.activeScreen().RestoreCursor() }

// useAltScreen switches the active screen, clearing the alternate screen
// when entering it, and keeps ModeAltScreenActive in step (§4.4).
func (e *Emulation) useAltScreen(on bool) {
	if on == e.onAlt {
		return
	}
	if on {
		e.alt.ClearEntireScreen()
		e.mode |= ModeAltScreenActive
	} else {
		e.mode &^= ModeAltScreenActive
	}
	e.onAlt = on
}

func (e *Emulation) bell() { e.display.Bell() }

// --- Wire replies (§4.3) -----------------------------------------------------

func (e *Emulation) reply(s string) {
	e.pty.Write([]byte(s))
}

func (e *Emulation) sendAnswerBack() {
	e.reply(os.Getenv("ANSWER_BACK"))
}

func (e *Emulation) sendPrimaryDA() {
	if e.tok.AnsiMode {
		e.reply("\x1b[?1;2c")
	} else {
		e.reply("\x1b/Z")
	}
}

func (e *Emulation) sendSecondaryDA() {
	if e.tok.AnsiMode {
		e.reply("\x1b[>0;115;0c")
	} else {
		e.reply("\x1b/Z")
	}
}

func (e *Emulation) sendDeviceStatus() {
	e.reply("\x1b[0n")
}

func (e *Emulation) sendCursorPositionReport() {
	row, col := e.activeScreen().CursorPosition()
	e.reply(fmt.Sprintf("\x1b[%d;%dR", row+1, col+1))
}

func (e *Emulation) sendTerminalParms(p int) {
	e.reply(fmt.Sprintf("\x1b[%d;1;1;112;112;1;0x", p))
}
