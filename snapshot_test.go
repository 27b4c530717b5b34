package vt100core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_Text(t *testing.T) {
	em := NewEmulation(3, 10)
	em.Feed([]byte("Hello"))
	em.Feed([]byte("\x1b[2;1H")) // row 2, col 1
	em.Feed([]byte("World"))

	snap := em.Snapshot(SnapshotDetailText)

	assert.Equal(t, 3, snap.Size.Rows)
	assert.Equal(t, 10, snap.Size.Cols)
	require.Len(t, snap.Lines, 3)
	assert.Equal(t, "Hello     ", snap.Lines[0].Text)
	assert.Equal(t, "World     ", snap.Lines[1].Text)

	assert.Nil(t, snap.Lines[0].Segments, "text mode should not include segments")
	assert.Nil(t, snap.Lines[0].Cells, "text mode should not include cells")
}

func TestSnapshot_Cursor(t *testing.T) {
	em := NewEmulation(5, 10)
	em.Feed([]byte("ABC"))

	snap := em.Snapshot(SnapshotDetailText)

	assert.Equal(t, 0, snap.Cursor.Row)
	assert.Equal(t, 3, snap.Cursor.Col)
	assert.True(t, snap.Cursor.Visible)
}

func TestSnapshot_Styled(t *testing.T) {
	em := NewEmulation(3, 20)
	em.Feed([]byte("\x1b[31mRed\x1b[0m Normal \x1b[32mGreen\x1b[0m"))

	snap := em.Snapshot(SnapshotDetailStyled)
	require.NotEmpty(t, snap.Lines)

	line := snap.Lines[0]
	require.GreaterOrEqual(t, len(line.Segments), 3)
	assert.Equal(t, "Red", line.Segments[0].Text)
	assert.Nil(t, line.Cells, "styled mode should not include cells")
}

func TestSnapshot_Full(t *testing.T) {
	em := NewEmulation(3, 10)
	em.Feed([]byte("Hi"))

	snap := em.Snapshot(SnapshotDetailFull)
	require.NotEmpty(t, snap.Lines)

	cells := snap.Lines[0].Cells
	require.Len(t, cells, 10)
	assert.Equal(t, "H", cells[0].Char)
	assert.Equal(t, "i", cells[1].Char)
	assert.Equal(t, " ", cells[2].Char)
}

func TestSnapshot_Attributes(t *testing.T) {
	em := NewEmulation(3, 20)
	em.Feed([]byte("\x1b[1mBold\x1b[0m"))

	snap := em.Snapshot(SnapshotDetailFull)
	cells := snap.Lines[0].Cells
	require.GreaterOrEqual(t, len(cells), 4)

	for i := 0; i < 4; i++ {
		assert.Truef(t, cells[i].Attrs.Bold, "cell[%d] should be bold", i)
	}
}

func TestSnapshot_WideChar(t *testing.T) {
	em := NewEmulation(3, 10)
	em.Feed([]byte("中"))

	snap := em.Snapshot(SnapshotDetailFull)
	cells := snap.Lines[0].Cells
	require.GreaterOrEqual(t, len(cells), 2)

	assert.True(t, cells[0].Wide)
	assert.True(t, cells[1].WideSpacer)
	assert.Equal(t, "中", cells[0].Char)
	assert.Equal(t, "", cells[1].Char)

	row, col := em.Screen().CursorPosition()
	assert.Equal(t, 0, row)
	assert.Equal(t, 2, col)
}

func TestSnapshot_EmptyTerminal(t *testing.T) {
	em := NewEmulation(3, 10)

	snap := em.Snapshot(SnapshotDetailText)
	assert.Equal(t, 3, snap.Size.Rows)
	require.Len(t, snap.Lines, 3)

	for i, line := range snap.Lines {
		assert.Equalf(t, "          ", line.Text, "line %d should be all spaces", i)
	}
}

func TestColorHex(t *testing.T) {
	tests := []struct {
		name     string
		idx      ColorIndex
		fg       bool
		expected string
	}{
		{"default fg", ColorDefault, true, "#e5e5e5"},
		{"default bg", ColorDefault, false, "#000000"},
		{"black", 0, true, "#000000"},
		{"red", 1, true, "#cd3131"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, colorHex(tt.idx, tt.fg))
		})
	}
}
