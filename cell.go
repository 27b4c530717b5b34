package vt100core

// Rendition is a bitmask of the cell rendering attributes the tokenizer's
// SGR dispatch table can toggle: bold, underline, blink and reverse.
type Rendition uint8

const (
	RenditionBold Rendition = 1 << iota
	RenditionUnderline
	RenditionBlink
	RenditionReverse
)

// ColorIndex is a palette index (0-15) or ColorDefault, meaning "use the
// screen's default foreground/background".
type ColorIndex int8

// ColorDefault marks a cell color as unset (renders as the terminal's
// default foreground or background).
const ColorDefault ColorIndex = -1

// Cell is a single screen position: a Unicode code point plus a rendition
// descriptor. It is the unit copied to and from history and returned in
// the cooked image. Wide East-Asian/emoji code points occupy two adjacent
// cells: the left one has Wide set and carries the code point, the right
// one has WideSpacer set and carries no glyph of its own.
type Cell struct {
	Char       rune
	Fg         ColorIndex
	Bg         ColorIndex
	Attrs      Rendition
	Wide       bool
	WideSpacer bool
}

// NewCell returns a cell initialized to a space with default colors and
// no rendition attributes. Invariant 3 (§3) requires every grid cell to
// start from this state; there is no "uninitialised" cell.
func NewCell() Cell {
	return Cell{Char: ' ', Fg: ColorDefault, Bg: ColorDefault}
}

// Reset restores the cell to its default state.
func (c *Cell) Reset() {
	*c = NewCell()
}

// HasAttr reports whether the given rendition bit is set.
func (c *Cell) HasAttr(a Rendition) bool {
	return c.Attrs&a != 0
}

// SetAttr sets the given rendition bit without affecting others.
func (c *Cell) SetAttr(a Rendition) {
	c.Attrs |= a
}

// ClearAttr clears the given rendition bit without affecting others.
func (c *Cell) ClearAttr(a Rendition) {
	c.Attrs &^= a
}

// Reversed returns a copy of the cell with foreground and background
// swapped, used to overlay the cursor and the selection on the cooked
// image without mutating grid storage.
func (c Cell) Reversed() Cell {
	c.Fg, c.Bg = c.Bg, c.Fg
	return c
}
