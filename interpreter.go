package vt100core

// Interpreter assigns meaning to the [Token]s a [Tokenizer] produces: each
// token is either an operation on the active [Screen] or an action on the
// emulator itself (switching screens, saving modes, answering enquiries).
// It is grounded directly in the historical VT102 emulation's tau()
// dispatch, reorganized into per-kind Go dispatch tables since Go has no
// equivalent of the original's packed-integer switch (§4.2, §4.3).
type Interpreter struct {
	em *Emulation
}

func newInterpreter(em *Emulation) *Interpreter {
	return &Interpreter{em: em}
}

// Dispatch assigns meaning to a single token, acting on the emulation's
// active screen or on emulator-level state.
func (ip *Interpreter) Dispatch(tok Token) {
	scr := ip.em.activeScreen()
	switch tok.Kind {
	case TokChar:
		scr.ShowCharacter(tok.Char)
	case TokCtl:
		ip.dispatchCtl(tok, scr)
	case TokEsc:
		ip.dispatchEsc(tok, scr)
	case TokEscCS:
		ip.dispatchEscCS(tok)
	case TokEscDE:
		ip.dispatchEscDE(tok, scr)
	case TokCsiPS:
		ip.dispatchCsiPS(tok, scr)
	case TokCsiPN:
		ip.dispatchCsiPN(tok, scr)
	case TokCsiPR:
		ip.dispatchCsiPR(tok, scr)
	case TokCsiPG:
		ip.dispatchCsiPG(tok)
	case TokVT52:
		ip.dispatchVT52(tok, scr)
	default:
		ip.em.reportError(ErrUnknownToken)
	}
}

// --- Control characters (§4.2) -------------------------------------------

func (ip *Interpreter) dispatchCtl(tok Token, scr *Screen) {
	switch tok.Final {
	case 'E': // ENQ
		ip.em.sendAnswerBack()
	case 'G': // BEL
		ip.em.bell()
	case 'H': // BS
		scr.BackSpace()
	case 'I': // HT
		scr.Tabulate()
	case 'J', 'K', 'L': // LF, VT, FF all behave as NewLine
		scr.NewLine()
	case 'M': // CR
		scr.Return()
	case 'N': // SO
		scr.UseCharset(1)
	case 'O': // SI
		scr.UseCharset(0)
	default:
		// NUL, SOH..ACK, DLE..DC4, NAK..US and DEL: no-ops (§4.2 "ignored").
		// CAN/SUB ('X'/'Z') still arrive here as a CTL token, but the
		// sequence they aborted was already reset by the tokenizer
		// (§4.1 step 1); §4.2 lists them as "already handled by the
		// tokenizer", so the interpreter takes no further action.
	}
}

// --- Single-character escapes, ESC<Final> (§4.2) -------------------------

func (ip *Interpreter) dispatchEsc(tok Token, scr *Screen) {
	switch tok.Final {
	case 'D':
		scr.Index()
	case 'E':
		scr.NextLine()
	case 'H':
		scr.ChangeTabStop(true)
	case 'M':
		scr.ReverseIndex()
	case 'Z':
		ip.em.sendPrimaryDA()
	case 'c':
		ip.em.Reset()
	case 'n':
		scr.UseCharset(2)
	case 'o':
		scr.UseCharset(3)
	case '7':
		ip.em.saveCursor()
	case '8':
		ip.em.restoreCursor()
	case '=':
		ip.em.setMode(ModeAppKeyPad)
	case '>':
		ip.em.resetMode(ModeAppKeyPad)
	case '<':
		ip.em.setMode(ModeAnsi)
	}
}

// --- Character-set designation, ESC<Mid><Final> (§4.2) -------------------

var slotOf = map[byte]int{'(': 0, ')': 1, '*': 2, '+': 3}

func (ip *Interpreter) dispatchEscCS(tok Token) {
	if tok.Mid == '%' {
		ip.em.setCodec(tok.Final == 'G')
		return
	}
	slot, ok := slotOf[tok.Mid]
	if !ok {
		return
	}
	ip.em.setCharset(slot, tok.Final)
}

// --- DEC double-height/width/alignment, ESC#<Final> (§4.2) ---------------

func (ip *Interpreter) dispatchEscDE(tok Token, scr *Screen) {
	if tok.Final == '8' {
		scr.HelpAlign()
	}
	// 3,4,5,6: double-height/width line attributes are out of scope (§6).
}

// --- CSI Ps ... Final, SGR and simple mode toggles (§4.3) ----------------

func (ip *Interpreter) dispatchCsiPS(tok Token, scr *Screen) {
	switch tok.Final {
	case 'K':
		switch tok.N {
		case 0:
			scr.ClearToEOL()
		case 1:
			scr.ClearToBOL()
		case 2:
			scr.ClearEntireLine()
		}
	case 'J':
		switch tok.N {
		case 0:
			scr.ClearToEOS()
		case 1:
			scr.ClearToBOS()
		case 2:
			scr.ClearEntireScreen()
		}
	case 'g':
		switch tok.N {
		case 0:
			scr.ChangeTabStop(false)
		case 3:
			scr.ClearTabStops()
		}
	case 'h':
		switch tok.N {
		case 4:
			scr.SetMode(ModeInsert)
		case 20:
			ip.em.setMode(ModeEmulatorNewLine)
		}
	case 'l':
		switch tok.N {
		case 4:
			scr.ResetMode(ModeInsert)
		case 20:
			ip.em.resetMode(ModeEmulatorNewLine)
		}
	case 'i':
		switch tok.N {
		case 5:
			ip.em.setPrinterMode(true)
		case 4:
			ip.em.setPrinterMode(false)
		}
		// 0: print-screen, not modeled (no attached printer outside pass-through).
	case 's':
		if tok.N == 0 {
			ip.em.saveCursor()
		}
	case 'u':
		if tok.N == 0 {
			ip.em.restoreCursor()
		}
	case 'm':
		ip.dispatchSGR(tok.N, scr)
	case 'n':
		switch tok.N {
		case 5:
			ip.em.sendDeviceStatus()
		case 6:
			ip.em.sendCursorPositionReport()
		}
	case 'x':
		switch tok.N {
		case 0:
			ip.em.sendTerminalParms(2)
		case 1:
			ip.em.sendTerminalParms(3)
		}
	}
}

func (ip *Interpreter) dispatchSGR(n int, scr *Screen) {
	switch {
	case n == 0:
		scr.SetDefaultRendition()
	case n == 1:
		scr.SetRendition(RenditionBold)
	case n == 4:
		scr.SetRendition(RenditionUnderline)
	case n == 5:
		scr.SetRendition(RenditionBlink)
	case n == 7:
		scr.SetRendition(RenditionReverse)
	case n == 22:
		scr.ResetRendition(RenditionBold)
	case n == 24:
		scr.ResetRendition(RenditionUnderline)
	case n == 25:
		scr.ResetRendition(RenditionBlink)
	case n == 27:
		scr.ResetRendition(RenditionReverse)
	case n >= 30 && n <= 37:
		scr.SetForeColor(n - 30)
	case n == 39:
		scr.SetForeColorToDefault()
	case n >= 40 && n <= 47:
		scr.SetBackColor(n - 40)
	case n == 49:
		scr.SetBackColorToDefault()
	case n >= 90 && n <= 97:
		scr.SetForeColor(n - 90 + 8)
	case n >= 100 && n <= 107:
		scr.SetBackColor(n - 100 + 8)
		// 10,11,12: mapping-related, ignored per the original LINUX port.
	}
}

// --- CSI Pn Final, cursor/editing ops (§4.3) ------------------------------

func argOr1(n int) int {
	if n <= 0 {
		return 1
	}
	return n
}

func (ip *Interpreter) dispatchCsiPN(tok Token, scr *Screen) {
	switch tok.Final {
	case '@':
		scr.InsertChars(argOr1(tok.P))
	case 'A':
		scr.CursorUp(argOr1(tok.P))
	case 'B':
		scr.CursorDown(argOr1(tok.P))
	case 'C':
		scr.CursorRight(argOr1(tok.P))
	case 'D':
		scr.CursorLeft(argOr1(tok.P))
	case 'G':
		scr.SetCursorX(argOr1(tok.P))
	case 'H', 'f':
		scr.SetCursorYX(argOr1(tok.P), argOr1(tok.Q))
	case 'L':
		scr.InsertLines(argOr1(tok.P))
	case 'M':
		scr.DeleteLines(argOr1(tok.P))
	case 'P':
		scr.DeleteChars(argOr1(tok.P))
	case 'X':
		scr.EraseChars(argOr1(tok.P))
	case 'c':
		ip.em.sendPrimaryDA()
	case 'd':
		scr.SetCursorY(argOr1(tok.P))
	case 'r':
		ip.em.setMargins(tok.P, tok.Q)
	case 'y':
		// confidence test, ignored (§6).
	}
}

// --- CSI ? Ps ... Final, DEC private modes (§4.3, §4.4) ------------------

func (ip *Interpreter) dispatchCsiPR(tok Token, scr *Screen) {
	set := tok.Final == 'h'
	save := tok.Final == 's'
	restore := tok.Final == 'r'

	switch tok.N {
	case 1:
		ip.decPrivateMode(tok.Final, ModeAppCuKeys, save, restore, set)
	case 2:
		if tok.Final == 'l' {
			ip.em.resetMode(ModeAnsi)
		}
	case 3:
		ip.em.setColumns(columnsFor(set))
	case 4:
		// soft scrolling, ignored (§6).
	case 5:
		screenMode(scr, ModeReverseScreen, save, restore, set)
	case 6:
		screenMode(scr, ModeOrigin, save, restore, set)
	case 7:
		screenMode(scr, ModeWrap, save, restore, set)
	case 8, 9, 41:
		// autorepeat, interlace, obsolete more(1) fix: all ignored (§6).
	case 25:
		screenMode(scr, ModeCursorVisible, save, restore, set)
	case 47:
		ip.altScreenMode(save, restore, set, false)
	case 1047:
		ip.altScreenMode(save, restore, set, true)
	case 1000, 1001, 1002, 1003:
		ip.decPrivateMode(tok.Final, ModeMouse1000, save, restore, set)
	case 1048:
		if set || save {
			ip.em.saveCursor()
		} else {
			ip.em.restoreCursor()
		}
	case 1049:
		ip.altScreenAndCursorMode(set)
	}
}

func columnsFor(set bool) int {
	if set {
		return 132
	}
	return 80
}

func screenMode(scr *Screen, m ScreenMode, save, restore, set bool) {
	switch {
	case save:
		scr.SaveMode(m)
	case restore:
		scr.RestoreMode(m)
	case set:
		scr.SetMode(m)
	default:
		scr.ResetMode(m)
	}
}

func (ip *Interpreter) decPrivateMode(final byte, m EmulatorMode, save, restore, set bool) {
	switch {
	case save:
		ip.em.saveEmulatorMode(m)
	case restore:
		ip.em.restoreEmulatorMode(m)
	case set:
		ip.em.setMode(m)
	default:
		ip.em.resetMode(m)
	}
}

func (ip *Interpreter) altScreenMode(save, restore, set, clearOnExit bool) {
	switch {
	case save:
		ip.em.saveEmulatorMode(ModeAltScreenActive)
	case restore:
		ip.em.restoreEmulatorMode(ModeAltScreenActive)
	case set:
		ip.em.useAltScreen(true)
	default:
		if clearOnExit {
			ip.em.altScreenRef().ClearEntireScreen()
		}
		ip.em.useAltScreen(false)
	}
}

func (ip *Interpreter) altScreenAndCursorMode(enter bool) {
	if enter {
		ip.em.saveCursor()
		ip.em.altScreenRef().ClearEntireScreen()
		ip.em.useAltScreen(true)
	} else {
		ip.em.useAltScreen(false)
		ip.em.restoreCursor()
	}
}

// --- CSI > Final, secondary attributes (§4.3) -----------------------------

func (ip *Interpreter) dispatchCsiPG(tok Token) {
	if tok.Final == 'c' {
		ip.em.sendSecondaryDA()
	}
}

// --- VT52 mode (§4.2) ------------------------------------------------------

func (ip *Interpreter) dispatchVT52(tok Token, scr *Screen) {
	switch tok.Final {
	case 'A':
		scr.CursorUp(1)
	case 'B':
		scr.CursorDown(1)
	case 'C':
		scr.CursorRight(1)
	case 'D':
		scr.CursorLeft(1)
	case 'F':
		scr.SetCharset(0, '0')
		scr.UseCharset(0)
	case 'G':
		scr.SetCharset(0, 'B')
		scr.UseCharset(0)
	case 'H':
		scr.SetCursorYX(1, 1)
	case 'I':
		scr.ReverseIndex()
	case 'J':
		scr.ClearToEOS()
	case 'K':
		scr.ClearToEOL()
	case 'Y':
		scr.SetCursorYX(tok.P-31, tok.Q-31)
	case 'Z':
		ip.em.sendPrimaryDA()
	case '<':
		ip.em.setMode(ModeAnsi)
	case '=':
		ip.em.setMode(ModeAppKeyPad)
	case '>':
		ip.em.resetMode(ModeAppKeyPad)
	}
}
