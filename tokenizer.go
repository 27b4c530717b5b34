package vt100core

const (
	maxArgs = 16
	maxPbuf = 256
)

const esc rune = 27

func ctl(c byte) rune { return rune(c) - '@' }

// Tokenizer turns a stream of decoded code points into [Token]s. It does
// not keep an explicit state machine; instead each incoming rune is
// appended to a pending buffer and a ladder of prefix predicates decides,
// from the buffer's shape alone, whether a token is complete (§4.1,
// grounded in the historical VT102 tokenizer's onRcvChar/tau split).
//
// A Tokenizer is not safe for concurrent use.
type Tokenizer struct {
	// AnsiMode selects the ANSI/VT102 ladder when true, the VT52 ladder
	// when false (DECANM, ESC < / ESC >).
	AnsiMode bool

	pbuf []rune
	argv [maxArgs]int
	argc int

	printing  bool  // true while the printScan sub-state is active (§4.1)
	printBuf  []rune
	printSink func(byte)

	onErr func(error)
}

// printTerm is the only sequence printScan recognises as a terminator.
var printTerm = []rune{esc, '[', '4', 'i'}

// NewTokenizer returns a Tokenizer starting in ANSI mode.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{AnsiMode: true, pbuf: make([]rune, 0, 32)}
}

func (t *Tokenizer) resetToken() {
	t.pbuf = t.pbuf[:0]
	t.argc = 0
	t.argv[0] = 0
	t.argv[1] = 0
}

func (t *Tokenizer) addDigit(d int) {
	t.argv[t.argc] = t.argv[t.argc]*10 + d
}

func (t *Tokenizer) addArgument() {
	if t.argc < maxArgs-1 {
		t.argc++
	}
	t.argv[t.argc] = 0
}

func (t *Tokenizer) push(cc rune) bool {
	if len(t.pbuf) >= maxPbuf {
		return false
	}
	t.pbuf = append(t.pbuf, cc)
	return true
}

// predicates over the pending buffer, named after the historical ladder
// they replace: lec/les test the buffer's length-and-position shape, eec/
// ees/eps/epp/egt test the just-appended rune cc against the buffer's
// prefix, Xpe/Xte recognize an in-progress OSC string.

func (t *Tokenizer) lec(p int, l int, c rune) bool {
	return len(t.pbuf) == p && l < len(t.pbuf) && t.pbuf[l] == c
}

func (t *Tokenizer) lun(cc rune) bool {
	return len(t.pbuf) == 1 && cc >= 32
}

func (t *Tokenizer) les(p, l int, class uint8) bool {
	return len(t.pbuf) == p && l < len(t.pbuf) && classify(t.pbuf[l])&class == class
}

func (t *Tokenizer) eec(cc, c rune) bool {
	return len(t.pbuf) >= 3 && cc == c
}

func (t *Tokenizer) ees(cc rune, class uint8) bool {
	return len(t.pbuf) >= 3 && classify(cc)&class == class
}

func (t *Tokenizer) eps(cc rune, class uint8) bool {
	if len(t.pbuf) < 3 {
		return false
	}
	if t.pbuf[2] == '?' || t.pbuf[2] == '>' {
		return false
	}
	return classify(cc)&class == class
}

func (t *Tokenizer) epp() bool {
	return len(t.pbuf) >= 3 && t.pbuf[2] == '?'
}

func (t *Tokenizer) egt() bool {
	return len(t.pbuf) >= 3 && t.pbuf[2] == '>'
}

func (t *Tokenizer) xpe() bool {
	return len(t.pbuf) >= 2 && t.pbuf[1] == ']'
}

func (t *Tokenizer) xte(cc rune) bool {
	return t.xpe() && cc == 7
}

func (t *Tokenizer) ces(cc rune) bool {
	return classify(cc)&clsCTL == clsCTL && !t.xte(cc)
}

// SetPrinting toggles the printScan sub-state (§4.1, §6). Turning it on
// installs sink as the destination for verbatim pass-through bytes;
// turning it off discards any partially matched terminator buffer.
func (t *Tokenizer) SetPrinting(on bool, sink func(byte)) {
	t.printing = on
	t.printBuf = t.printBuf[:0]
	t.printSink = sink
}

// Feed processes one decoded code point and returns the tokens it
// completes, in order (zero, one, or several when a CSI_PS/CSI_PR
// sequence carries more than one parameter, e.g. "CSI 1;4 m"). title, if
// non-nil, receives OSC title-change requests ("XTerm hack", §4.1) as
// they're parsed.
func (t *Tokenizer) Feed(cc rune, title func(arg int, text string)) []Token {
	if t.printing {
		return t.feedPrintScan(cc)
	}

	if cc == 127 {
		return nil // DEL: ignored on input, VT100
	}

	if t.ces(cc) {
		// DEC hack: control characters are permitted within an escape
		// sequence in progress without disturbing it, except CAN/SUB/ESC
		// which abort the sequence outright.
		if cc == ctl('X') || cc == ctl('Z') || cc == esc {
			t.resetToken()
		}
		if cc != esc {
			return []Token{{Kind: TokCtl, Final: byte(cc + '@')}}
		}
	}

	if !t.push(cc) {
		// Saturate: cc is not stored, but the ladder still sees it, so
		// the sequence completes normally at its final byte.
		t.reportError(ErrInputOverflow)
	}

	if t.AnsiMode {
		return t.feedAnsi(cc, title)
	}
	return t.feedVT52(cc)
}

func (t *Tokenizer) feedAnsi(cc rune, title func(arg int, text string)) []Token {
	s := t.pbuf

	if t.lec(1, 0, esc) {
		return nil
	}
	if t.les(2, 1, clsGRP) {
		return nil
	}
	if t.xte(cc) {
		toks := t.xtermHack(title)
		t.resetToken()
		return toks
	}
	if t.xpe() {
		return nil
	}
	if t.lec(3, 2, '?') {
		return nil
	}
	if t.lec(3, 2, '>') {
		return nil
	}
	if t.lun(cc) {
		tok := []Token{{Kind: TokChar, Char: s[0]}}
		t.resetToken()
		return tok
	}
	if t.lec(2, 0, esc) {
		tok := []Token{{Kind: TokEsc, Final: byte(s[1])}}
		t.resetToken()
		return tok
	}
	if t.les(3, 1, clsSCS) {
		tok := []Token{{Kind: TokEscCS, Mid: byte(s[1]), Final: byte(s[2])}}
		t.resetToken()
		return tok
	}
	if t.lec(3, 1, '#') {
		tok := []Token{{Kind: TokEscDE, Final: byte(s[2])}}
		t.resetToken()
		return tok
	}
	if t.eps(cc, clsCPN) {
		tok := []Token{{Kind: TokCsiPN, Final: byte(cc), P: t.argv[0], Q: t.argv[1]}}
		t.resetToken()
		return tok
	}
	if t.ees(cc, clsDIG) {
		t.addDigit(int(cc - '0'))
		return nil
	}
	if t.eec(cc, ';') {
		t.addArgument()
		return nil
	}

	var toks []Token
	for i := 0; i <= t.argc; i++ {
		switch {
		case t.epp():
			toks = append(toks, Token{Kind: TokCsiPR, Final: byte(cc), N: t.argv[i]})
		case t.egt():
			toks = append(toks, Token{Kind: TokCsiPG, Final: byte(cc)})
		default:
			toks = append(toks, Token{Kind: TokCsiPS, Final: byte(cc), N: t.argv[i]})
		}
	}
	t.resetToken()
	return toks
}

func (t *Tokenizer) feedVT52(cc rune) []Token {
	s := t.pbuf
	p := len(s)

	if t.lec(1, 0, esc) {
		return nil
	}
	if t.les(1, 0, clsCHR) {
		tok := []Token{{Kind: TokChar, Char: s[0]}}
		t.resetToken()
		return tok
	}
	if t.lec(2, 1, 'Y') {
		return nil
	}
	if t.lec(3, 1, 'Y') {
		return nil
	}
	if p < 4 {
		tok := []Token{{Kind: TokVT52, Final: byte(s[1])}}
		t.resetToken()
		return tok
	}
	tok := []Token{{Kind: TokVT52, Final: byte(s[1]), P: int(s[2]), Q: int(s[3])}}
	t.resetToken()
	return tok
}

// xtermHack parses the buffered "ESC ] {Ps} ; {text}" OSC form. Only the
// title-setting subset is handled (§6 Non-goals): the decimal argument and
// the text up to (not including) BEL are passed to title unchanged, and a
// body whose digits are not followed by ';' reports ErrMalformedOSC
// through onErr and is dropped.
func (t *Tokenizer) xtermHack(title func(arg int, text string)) []Token {
	s := t.pbuf
	arg := 0
	i := 2
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		arg = arg*10 + int(s[i]-'0')
		i++
	}
	if i >= len(s) || s[i] != ';' {
		t.reportError(ErrMalformedOSC)
		return nil
	}
	end := len(s)
	if s[end-1] == 7 {
		end-- // the terminating BEL is not part of the text
	}
	text := string(s[i+1 : end])
	if title != nil {
		title(arg, text)
	}
	return nil
}

// feedPrintScan implements the printer pass-through sub-state (§4.1):
// CNTL('Q'), CNTL('S') and NUL are dropped silently; any other byte is
// buffered against the one recognised terminator, ESC [ 4 i. A
// non-matching prefix is flushed to the sink verbatim and scanning
// resumes from cc.
func (t *Tokenizer) feedPrintScan(cc rune) []Token {
	if cc == ctl('Q') || cc == ctl('S') || cc == 0 {
		return nil
	}

	t.printBuf = append(t.printBuf, cc)
	if matchesPrefix(t.printBuf, printTerm) {
		if len(t.printBuf) == len(printTerm) {
			t.printing = false
			t.printBuf = t.printBuf[:0]
			return []Token{{Kind: TokCsiPS, Final: 'i', N: 4}}
		}
		return nil
	}

	if n := len(t.printBuf); n > 1 {
		for _, r := range t.printBuf[:n-1] {
			if t.printSink != nil {
				t.printSink(byte(r))
			}
		}
		t.printBuf = t.printBuf[:0]
		return t.feedPrintScan(cc)
	}
	if t.printSink != nil {
		t.printSink(byte(cc))
	}
	t.printBuf = t.printBuf[:0]
	return nil
}

func matchesPrefix(buf, term []rune) bool {
	if len(buf) > len(term) {
		return false
	}
	for i, r := range buf {
		if r != term[i] {
			return false
		}
	}
	return true
}

func (t *Tokenizer) reportError(err error) {
	if t.onErr != nil {
		t.onErr(&ParseError{Err: err, Bytes: []byte(string(t.pbuf))})
	}
}

// OnError installs a callback invoked whenever the tokenizer drops an
// unparsable sequence.
func (t *Tokenizer) OnError(fn func(error)) { t.onErr = fn }
