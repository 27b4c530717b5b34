package vt100core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func feedAll(tk *Tokenizer, s string, title func(int, string)) []Token {
	var out []Token
	for _, r := range s {
		out = append(out, tk.Feed(r, title)...)
	}
	return out
}

func TestTokenizer_Printable(t *testing.T) {
	tk := NewTokenizer()
	toks := feedAll(tk, "Hi", nil)
	require.Len(t, toks, 2)
	assert.Equal(t, TokChar, toks[0].Kind)
	assert.Equal(t, 'H', toks[0].Char)
	assert.Equal(t, TokChar, toks[1].Kind)
	assert.Equal(t, 'i', toks[1].Char)
}

func TestTokenizer_ControlCharacterMidSequence(t *testing.T) {
	// DEC quirk: a control character arriving mid-escape-sequence is
	// emitted immediately as CTL and does not disturb the pending buffer
	// (spec.md §4.1 step 1).
	tk := NewTokenizer()
	var toks []Token
	toks = append(toks, tk.Feed(esc, nil)...)
	toks = append(toks, tk.Feed('[', nil)...)
	toks = append(toks, tk.Feed(rune(0x0a), nil)...) // LF mid-CSI
	toks = append(toks, tk.Feed('2', nil)...)
	toks = append(toks, tk.Feed('J', nil)...)

	require.GreaterOrEqual(t, len(toks), 2)
	var sawCtl, sawCsi bool
	for _, tok := range toks {
		if tok.Kind == TokCtl {
			sawCtl = true
			assert.Equal(t, byte('J'), tok.Final, "CTL final is cc+'@'; LF(0x0a)+'@' = 'J'")
		}
		if tok.Kind == TokCsiPS {
			sawCsi = true
		}
	}
	assert.True(t, sawCtl, "expected a CTL token for the mid-sequence LF")
	assert.True(t, sawCsi, "expected the CSI sequence to still complete afterward")
}

func TestTokenizer_CSI_PS_ClearScreen(t *testing.T) {
	tk := NewTokenizer()
	toks := feedAll(tk, "\x1b[2J", nil)
	require.Len(t, toks, 1)
	assert.Equal(t, TokCsiPS, toks[0].Kind)
	assert.Equal(t, byte('J'), toks[0].Final)
	assert.Equal(t, 2, toks[0].N)
}

func TestTokenizer_CSI_PN_TwoParams(t *testing.T) {
	tk := NewTokenizer()
	toks := feedAll(tk, "\x1b[2;3H", nil)
	require.Len(t, toks, 1)
	assert.Equal(t, TokCsiPN, toks[0].Kind)
	assert.Equal(t, byte('H'), toks[0].Final)
	assert.Equal(t, 2, toks[0].P)
	assert.Equal(t, 3, toks[0].Q)
}

func TestTokenizer_CSI_PR_DECPrivate(t *testing.T) {
	tk := NewTokenizer()
	toks := feedAll(tk, "\x1b[?25l", nil)
	require.Len(t, toks, 1)
	assert.Equal(t, TokCsiPR, toks[0].Kind)
	assert.Equal(t, byte('l'), toks[0].Final)
	assert.Equal(t, 25, toks[0].N)
}

func TestTokenizer_CSI_PG_SecondaryDA(t *testing.T) {
	tk := NewTokenizer()
	toks := feedAll(tk, "\x1b[>c", nil)
	require.Len(t, toks, 1)
	assert.Equal(t, TokCsiPG, toks[0].Kind)
	assert.Equal(t, byte('c'), toks[0].Final)
}

func TestTokenizer_MultipleSGRParams_OneTokenPerArg(t *testing.T) {
	tk := NewTokenizer()
	toks := feedAll(tk, "\x1b[1;31;4m", nil)
	require.Len(t, toks, 3)
	for _, tok := range toks {
		assert.Equal(t, TokCsiPS, tok.Kind)
		assert.Equal(t, byte('m'), tok.Final)
	}
	assert.Equal(t, 1, toks[0].N)
	assert.Equal(t, 31, toks[1].N)
	assert.Equal(t, 4, toks[2].N)
}

func TestTokenizer_EscTwoByte(t *testing.T) {
	tk := NewTokenizer()
	toks := feedAll(tk, "\x1bD", nil)
	require.Len(t, toks, 1)
	assert.Equal(t, TokEsc, toks[0].Kind)
	assert.Equal(t, byte('D'), toks[0].Final)
}

func TestTokenizer_EscCharsetDesignation(t *testing.T) {
	tk := NewTokenizer()
	toks := feedAll(tk, "\x1b(0", nil)
	require.Len(t, toks, 1)
	assert.Equal(t, TokEscCS, toks[0].Kind)
	assert.Equal(t, byte('('), toks[0].Mid)
	assert.Equal(t, byte('0'), toks[0].Final)
}

func TestTokenizer_EscDoubleSizeLine(t *testing.T) {
	tk := NewTokenizer()
	toks := feedAll(tk, "\x1b#8", nil)
	require.Len(t, toks, 1)
	assert.Equal(t, TokEscDE, toks[0].Kind)
	assert.Equal(t, byte('8'), toks[0].Final)
}

func TestTokenizer_OSCTitle(t *testing.T) {
	tk := NewTokenizer()
	var gotArg int
	var gotText string
	title := func(arg int, text string) { gotArg = arg; gotText = text }

	toks := feedAll(tk, "\x1b]0;hello world\a", title)
	assert.Empty(t, toks, "OSC handling produces no Token, only the title callback")
	assert.Equal(t, 0, gotArg)
	assert.Equal(t, "hello world", gotText)
}

func TestTokenizer_OSCMalformed_ReportsError(t *testing.T) {
	tk := NewTokenizer()
	var gotErr error
	tk.OnError(func(err error) { gotErr = err })

	feedAll(tk, "\x1b]no-semicolon-here\a", func(int, string) {})
	assert.ErrorIs(t, gotErr, ErrMalformedOSC)
}

func TestTokenizer_VT52Printable(t *testing.T) {
	tk := NewTokenizer()
	tk.AnsiMode = false
	toks := feedAll(tk, "A", nil)
	require.Len(t, toks, 1)
	assert.Equal(t, TokChar, toks[0].Kind)
	assert.Equal(t, 'A', toks[0].Char)
}

func TestTokenizer_VT52CursorAddress(t *testing.T) {
	tk := NewTokenizer()
	tk.AnsiMode = false
	var toks []Token
	for _, b := range []byte{0x1b, 'Y', 0x21, 0x22} {
		toks = append(toks, tk.Feed(rune(b), nil)...)
	}
	require.Len(t, toks, 1)
	assert.Equal(t, TokVT52, toks[0].Kind)
	assert.Equal(t, byte('Y'), toks[0].Final)
	assert.Equal(t, 0x21, toks[0].P)
	assert.Equal(t, 0x22, toks[0].Q)
}

func TestTokenizer_InputOverflowSaturates(t *testing.T) {
	tk := NewTokenizer()
	var gotErr error
	tk.OnError(func(err error) { gotErr = err })

	seq := "\x1b["
	for i := 0; i < 300; i++ { // well past maxPbuf without a terminator
		seq += "9"
	}
	toks := feedAll(tk, seq, nil)
	assert.Empty(t, toks, "an overflowing, unterminated sequence never completes a token")
	assert.ErrorIs(t, gotErr, ErrInputOverflow)
}

func TestTokenizer_CANSUBAbortSequence(t *testing.T) {
	tk := NewTokenizer()
	var toks []Token
	toks = append(toks, tk.Feed(esc, nil)...)
	toks = append(toks, tk.Feed('[', nil)...)
	toks = append(toks, tk.Feed(rune(0x18), nil)...) // CAN aborts
	toks = append(toks, tk.Feed('A', nil)...)        // fresh printable after abort

	require.Len(t, toks, 2)
	assert.Equal(t, TokCtl, toks[0].Kind) // CAN itself is still reported as CTL
	assert.Equal(t, byte('X'), toks[0].Final)
	assert.Equal(t, TokChar, toks[1].Kind)
	assert.Equal(t, 'A', toks[1].Char)
}
