package vt100core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferedHistory_RingEviction(t *testing.T) {
	h := NewBufferedHistory(3)
	for i, line := range []string{"one", "two", "three", "four"} {
		cells := make([]Cell, len(line))
		for j, r := range line {
			cells[j] = Cell{Char: r, Fg: ColorDefault, Bg: ColorDefault}
		}
		h.AddLine(cells, i%2 == 0)
	}

	require.Equal(t, 3, h.Lines())
	assert.Equal(t, "two", cellsToString(h.GetCells(0)))
	assert.Equal(t, "three", cellsToString(h.GetCells(1)))
	assert.Equal(t, "four", cellsToString(h.GetCells(2)))
}

func TestBufferedHistory_TrailingDefaultsTrimmed(t *testing.T) {
	h := NewBufferedHistory(5)
	cells := make([]Cell, 10)
	for i := range cells {
		cells[i] = NewCell()
	}
	cells[0] = Cell{Char: 'A', Fg: ColorDefault, Bg: ColorDefault}
	cells[1] = Cell{Char: 'B', Fg: ColorDefault, Bg: ColorDefault}

	h.AddLine(cells, false)
	assert.Equal(t, 2, h.LineLen(0))
	assert.Equal(t, "AB", cellsToString(h.GetCells(0)))
}

func TestNoHistory_DiscardsEverything(t *testing.T) {
	h := NoHistory{}
	h.AddLine([]Cell{{Char: 'X'}}, false)
	assert.Equal(t, 0, h.Lines())
}

func TestBlockArrayHistory_EvictsOnByteBudget(t *testing.T) {
	h := NewBlockArrayHistory(64)
	for i := 0; i < 20; i++ {
		cells := []Cell{{Char: rune('a' + i%26), Fg: ColorDefault, Bg: ColorDefault}}
		h.AddLine(cells, false)
	}
	assert.LessOrEqual(t, h.Lines(), 20)
	// Newest line must survive eviction.
	last := h.GetCells(h.Lines() - 1)
	require.Len(t, last, 1)
	assert.Equal(t, rune('a'+19%26), last[0].Char)
}

func TestTransferHistory_PreservesLastNLines(t *testing.T) {
	src := NewBufferedHistory(10)
	for _, line := range []string{"a", "b", "c"} {
		src.AddLine([]Cell{{Char: rune(line[0]), Fg: ColorDefault, Bg: ColorDefault}}, false)
	}

	dst := NewBufferedHistory(2)
	TransferHistory(src, dst)

	require.Equal(t, 2, dst.Lines())
	assert.Equal(t, "b", cellsToString(dst.GetCells(0)))
	assert.Equal(t, "c", cellsToString(dst.GetCells(1)))
}

// Scrollback property (spec.md §8): after feeding K lines into a primary
// screen with H-line Buffered history and screen height L, lines
// max(0,K-L)..K-1 are present, in order, either on-screen or in history.
func TestScrollback_AllRecentLinesRetrievable(t *testing.T) {
	const rows, hcap, total = 3, 10, 8
	h := NewBufferedHistory(hcap)
	em := NewEmulation(rows, 10, WithHistory(h))

	for i := 0; i < total; i++ {
		em.Feed([]byte{byte('0' + i), '\r', '\n'})
	}

	scr := em.Screen()
	retrievable := h.Lines() + rows
	assert.LessOrEqual(t, retrievable, hcap+rows)

	var seen []byte
	for i := 0; i < h.Lines(); i++ {
		cells := h.GetCells(i)
		if len(cells) > 0 {
			seen = append(seen, byte(cells[0].Char))
		}
	}
	for r := 0; r < rows; r++ {
		c := scr.cellAt(r, 0)
		if c.Char != ' ' {
			seen = append(seen, byte(c.Char))
		}
	}

	for i := total - rows; i < total; i++ {
		want := byte('0' + i)
		assert.Contains(t, seen, want)
	}
}

func cellsToString(cells []Cell) string {
	out := make([]rune, 0, len(cells))
	for _, c := range cells {
		out = append(out, c.Char)
	}
	return string(out)
}
