package vt100core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Scenario 1 (spec.md §8): printable characters.
func TestScenario_Printable(t *testing.T) {
	em := NewEmulation(24, 80)
	em.Feed([]byte("Hello"))

	scr := em.Screen()
	for i, want := range "Hello" {
		cell := scr.cellAt(0, i)
		assert.Equal(t, want, cell.Char)
	}
	row, col := scr.CursorPosition()
	assert.Equal(t, 0, row)
	assert.Equal(t, 5, col)
}

// Scenario 2 (spec.md §8): CSI cursor positioning plus SGR foreground.
func TestScenario_CursorAndSGR(t *testing.T) {
	em := NewEmulation(24, 80)
	em.Feed([]byte("\x1b[2;3H\x1b[31mX"))

	scr := em.Screen()
	cell := scr.cellAt(1, 2)
	assert.Equal(t, 'X', cell.Char)
	assert.Equal(t, ColorIndex(1), cell.Fg)

	row, col := scr.CursorPosition()
	assert.Equal(t, 1, row)
	assert.Equal(t, 3, col)
}

// Scenario 3 (spec.md §8): ED 2 clears the whole screen to default cells.
func TestScenario_ClearScreen(t *testing.T) {
	em := NewEmulation(3, 5)
	scr := em.Screen()
	for r := 0; r < 3; r++ {
		for c := 0; c < 5; c++ {
			*scr.cellAt(r, c) = Cell{Char: 'A', Fg: ColorDefault, Bg: ColorDefault}
		}
	}

	em.Feed([]byte("\x1b[2J"))

	blank := NewCell()
	for r := 0; r < 3; r++ {
		for c := 0; c < 5; c++ {
			assert.Equal(t, blank, *scr.cellAt(r, c))
		}
	}
}

// Scenario 4 (spec.md §8): OSC title set does not mutate the screen.
func TestScenario_OSCTitle(t *testing.T) {
	var titles []string
	em := NewEmulation(3, 10, WithDisplay(&capturingDisplay{titles: &titles}))

	before := append([]Cell(nil), em.Screen().CookedImage()...)
	em.Feed([]byte("\x1b]0;My Title\a"))
	after := em.Screen().CookedImage()

	require.Len(t, titles, 1)
	assert.Equal(t, "My Title", titles[0])
	assert.Equal(t, before, after)
}

type capturingDisplay struct {
	NoopDisplay
	titles *[]string
}

func (d *capturingDisplay) SetTitle(title string) { *d.titles = append(*d.titles, title) }

// Scenario 5 (spec.md §8): VT52 cursor addressing with the -31 bias.
// ANSI is the power-on default; rather than feeding CSI ? 2 l, the test
// flips the tokenizer's AnsiMode directly before feeding the VT52 'Y'
// address.
func TestScenario_VT52CursorAddress(t *testing.T) {
	em := NewEmulation(24, 80)
	em.tok.AnsiMode = false
	em.Feed([]byte{0x1b, 'Y', 0x20 + 1, 0x20 + 2})

	row, col := em.Screen().CursorPosition()
	assert.Equal(t, 1, row)
	assert.Equal(t, 2, col)
}

// Scenario 6 (spec.md §8): wrap pushes the overflowing line into history.
func TestScenario_WrapIntoHistory(t *testing.T) {
	h := NewBufferedHistory(10)
	em := NewEmulation(1, 4, WithHistory(h))
	scr := em.Screen()
	scr.SetMode(ModeWrap)

	em.Feed([]byte("ABCDE"))

	require.Equal(t, 1, h.Lines())
	assert.Equal(t, []Cell{
		{Char: 'A', Fg: ColorDefault, Bg: ColorDefault},
		{Char: 'B', Fg: ColorDefault, Bg: ColorDefault},
		{Char: 'C', Fg: ColorDefault, Bg: ColorDefault},
		{Char: 'D', Fg: ColorDefault, Bg: ColorDefault},
	}, h.GetCells(0))
	assert.True(t, h.IsWrapped(0))

	assert.Equal(t, 'E', scr.cellAt(0, 0).Char)
	row, col := scr.CursorPosition()
	assert.Equal(t, 0, row)
	assert.Equal(t, 1, col)
}

func TestSaveRestoreCursor_IsInverse(t *testing.T) {
	scr := NewScreen(10, 20, NoHistory{})
	scr.SetCursorYX(3, 4)
	scr.SetRendition(RenditionBold)
	scr.SetCharset(1, '0')
	scr.UseCharset(1)

	beforeRow, beforeCol := scr.CursorPosition()
	beforeAttrs := scr.attrs

	scr.SaveCursor()
	scr.SetCursorYX(8, 10)
	scr.ResetRendition(RenditionBold)
	scr.UseCharset(0)
	scr.RestoreCursor()

	afterRow, afterCol := scr.CursorPosition()
	assert.Equal(t, beforeRow, afterRow)
	assert.Equal(t, beforeCol, afterCol)
	assert.Equal(t, beforeAttrs, scr.attrs)
}

func TestSaveRestoreMode_IsInverse(t *testing.T) {
	scr := NewScreen(10, 20, NoHistory{})
	scr.SetMode(ModeWrap)

	scr.SaveMode(ModeWrap)
	scr.ResetMode(ModeWrap)
	assert.False(t, scr.ModeSet(ModeWrap))

	scr.RestoreMode(ModeWrap)
	assert.True(t, scr.ModeSet(ModeWrap))
}

func TestAltScreen_RestoresPrimaryImageExactly(t *testing.T) {
	em := NewEmulation(3, 10)
	em.Feed([]byte("primary text"))
	before := append([]Cell(nil), em.Screen().CookedImage()...)

	em.Feed([]byte("\x1b[?47h"))
	em.Feed([]byte("alternate text that differs"))
	em.Feed([]byte("\x1b[?47l"))

	after := em.Screen().CookedImage()
	assert.Equal(t, before, after)
}

func TestShowCharacter_BackspaceIdempotent(t *testing.T) {
	scr := NewScreen(5, 10, NoHistory{})
	scr.ShowCharacter('X')
	scr.BackSpace()
	scr.ShowCharacter('X')

	assert.Equal(t, 'X', scr.cellAt(0, 0).Char)
	_, col := scr.CursorPosition()
	assert.Equal(t, 1, col)
}

func TestStreamingInvariance(t *testing.T) {
	stream := "\x1b[2;3HHi\x1b[31mRed\x1b[0mNormal\x1b[2J\x1b[1;1HAgain"

	whole := NewEmulation(5, 20)
	whole.Feed([]byte(stream))

	byteAtATime := NewEmulation(5, 20)
	for i := 0; i < len(stream); i++ {
		byteAtATime.Feed([]byte{stream[i]})
	}

	assert.Equal(t, whole.Screen().CookedImage(), byteAtATime.Screen().CookedImage())
}

func TestClearToEOL(t *testing.T) {
	em := NewEmulation(3, 10)
	em.Feed([]byte("AAAAAAAAAA\r\nBBBBBBBBBB\r\nCCCCCCCCCC"))
	em.Feed([]byte("\x1b[2;5H\x1b[K"))

	scr := em.Screen()
	assert.Equal(t, 'B', scr.cellAt(1, 0).Char)
	blank := NewCell()
	assert.Equal(t, blank, *scr.cellAt(1, 4))
	assert.Equal(t, blank, *scr.cellAt(1, 9))
	assert.Equal(t, 'C', scr.cellAt(2, 0).Char)
}

func TestInsertDeleteChars(t *testing.T) {
	scr := NewScreen(1, 10, NoHistory{})
	for _, r := range "ABCDE" {
		scr.ShowCharacter(r)
	}
	scr.SetCursorX(2)
	scr.InsertChars(2)
	assert.Equal(t, 'A', scr.cellAt(0, 0).Char)
	assert.Equal(t, ' ', scr.cellAt(0, 1).Char)
	assert.Equal(t, ' ', scr.cellAt(0, 2).Char)
	assert.Equal(t, 'B', scr.cellAt(0, 3).Char)

	scr.SetCursorX(2)
	scr.DeleteChars(1)
	assert.Equal(t, 'A', scr.cellAt(0, 0).Char)
	assert.Equal(t, ' ', scr.cellAt(0, 1).Char)
}

// A line that wraps off a multi-row screen must be recorded in history
// exactly once, by scrollUp, not also by the wrap itself.
func TestWrap_MultiRowScreen_NoDuplicateHistoryLine(t *testing.T) {
	h := NewBufferedHistory(10)
	em := NewEmulation(2, 4, WithHistory(h))
	em.Screen().SetMode(ModeWrap)

	em.Feed([]byte("ABCDEFGHIJ")) // wraps twice, then a third row scrolls

	assert.LessOrEqual(t, h.Lines(), 1, "only the row that actually scrolled off should reach history")
}

func TestSetMargins_NoParamsResetsToFullScreen(t *testing.T) {
	scr := NewScreen(10, 20, NoHistory{})
	scr.SetMargins(3, 7)
	scr.SetMargins(0, 0) // bare "CSI r": both params omitted

	top, bottom := scr.scrollTop, scr.scrollBottom
	assert.Equal(t, 0, top)
	assert.Equal(t, scr.rows-1, bottom)
}

func TestSetMargins_OnlyTopOmitted(t *testing.T) {
	scr := NewScreen(10, 20, NoHistory{})
	scr.SetMargins(0, 5)

	assert.Equal(t, 0, scr.scrollTop)
	assert.Equal(t, 4, scr.scrollBottom)
}
