package vt100core

// Position is a 0-based (row, col) screen coordinate.
type Position struct {
	Y, X int
}

// Selection is a screen's current text selection range. Begin/End are
// inclusive; getSelText and getCookedImage read them in document order
// regardless of which endpoint the user dragged from.
type Selection struct {
	Begin, End Position
	Active     bool
	Busy       bool // "busy selecting" latch: mouse button is still down
}

// Screen is a fixed-size (resizable) grid of cells with a cursor,
// rendition, margins, tab stops and selection (§3). The primary screen
// additionally owns a [History]; the alternate screen does not.
type Screen struct {
	rows, cols int
	cells      [][]Cell
	rowWrapped []bool // per-row: true if terminated by auto-wrap rather than LF

	cursor      Cursor
	wrapPending bool

	fgIdx, bgIdx ColorIndex
	attrs        Rendition

	scrollTop, scrollBottom int

	tabStops []bool

	modes     ScreenMode
	modeSaves modeSaveSet[ScreenMode]

	saved *SavedCursor

	charsets      [4]CharsetID
	activeCharset int

	selection Selection

	history    History
	histCursor int
}

// NewScreen creates a screen of the given size with default tab stops
// every 8 columns, a full-height scrolling region, wrap mode on and the
// cursor visible. hist may be nil (alternate screen) or any [History]
// (primary screen).
func NewScreen(rows, cols int, hist History) *Screen {
	s := &Screen{
		history:   hist,
		modeSaves: newModeSaveSet[ScreenMode](),
		fgIdx:     ColorDefault,
		bgIdx:     ColorDefault,
		cursor:    NewCursor(),
	}
	for i := range s.charsets {
		s.charsets[i] = CharsetASCII
	}
	s.modes = ModeWrap | ModeCursorVisible
	s.resize(rows, cols)
	return s
}

// Rows reports the screen height.
func (s *Screen) Rows() int { return s.rows }

// Cols reports the screen width.
func (s *Screen) Cols() int { return s.cols }

func (s *Screen) resize(rows, cols int) {
	if rows <= 0 || cols <= 0 {
		return // BadGeometry (§7): silently rejected, previous size retained
	}
	cells := make([][]Cell, rows)
	wrapped := make([]bool, rows)
	for r := 0; r < rows; r++ {
		cells[r] = make([]Cell, cols)
		for c := 0; c < cols; c++ {
			if s.cells != nil && r < s.rows && c < s.cols {
				cells[r][c] = s.cells[r][c]
			} else {
				cells[r][c] = NewCell()
			}
		}
		if s.rowWrapped != nil && r < len(s.rowWrapped) {
			wrapped[r] = s.rowWrapped[r]
		}
	}
	s.cells = cells
	s.rowWrapped = wrapped
	s.rows, s.cols = rows, cols

	tabs := make([]bool, cols)
	for c := 0; c < cols; c += 8 {
		tabs[c] = true
	}
	s.tabStops = tabs

	s.scrollTop, s.scrollBottom = 0, rows-1
	if s.cursor.Row >= rows {
		s.cursor.Row = rows - 1
	}
	if s.cursor.Col >= cols {
		s.cursor.Col = cols - 1
	}
	s.wrapPending = false
}

// ResizeImage grows or shrinks the grid. Reflow is not performed; content
// outside the new dimensions is dropped (§4.3). Rows/cols <= 0 are
// rejected as BadGeometry (§7).
func (s *Screen) ResizeImage(rows, cols int) error {
	if rows <= 0 || cols <= 0 {
		return ErrBadGeometry
	}
	s.resize(rows, cols)
	return nil
}

// Reset restores the screen to its power-on state: default rendition,
// cursor home, full scrolling region, default tab stops, wrap mode and
// cursor visibility on, ASCII charsets, cleared selection. History is
// left untouched.
func (s *Screen) Reset() {
	for r := 0; r < s.rows; r++ {
		for c := 0; c < s.cols; c++ {
			s.cells[r][c] = NewCell()
		}
		s.rowWrapped[r] = false
	}
	s.cursor = NewCursor()
	s.wrapPending = false
	s.fgIdx, s.bgIdx = ColorDefault, ColorDefault
	s.attrs = 0
	s.scrollTop, s.scrollBottom = 0, s.rows-1
	for i := range s.tabStops {
		s.tabStops[i] = i%8 == 0
	}
	s.modes = ModeWrap | ModeCursorVisible
	for i := range s.charsets {
		s.charsets[i] = CharsetASCII
	}
	s.activeCharset = 0
	s.saved = nil
	s.selection = Selection{}
}

// --- Cell access -------------------------------------------------------

func (s *Screen) cellAt(row, col int) *Cell {
	return &s.cells[row][col]
}

func (s *Screen) currentCell() Cell {
	c := NewCell()
	c.Fg, c.Bg, c.Attrs = s.fgIdx, s.bgIdx, s.attrs
	return c
}

// --- Character placement & cursor movement ------------------------------

// ShowCharacter places cp at the cursor with the current rendition,
// applying the active charset's substitution filter first (§4.2, §4.3). A
// double-width code point (CJK ideographs, fullwidth forms) occupies the
// cursor cell plus a trailing spacer cell and advances the cursor by two.
func (s *Screen) ShowCharacter(cp rune) {
	cp = applyCharsetFilter(s.charsets[s.activeCharset], cp)
	width := runeWidth(cp)
	if width <= 0 {
		width = 1
	}

	if s.wrapPending {
		if s.modes&ModeWrap != 0 {
			s.rowWrapped[s.cursor.Row] = true
			s.newlineAdvance()
			s.cursor.Col = 0
		} else {
			s.cursor.Col = s.cols - 1
		}
		s.wrapPending = false
	}

	if width == 2 && s.cursor.Col == s.cols-1 && s.modes&ModeWrap != 0 {
		// No room for the glyph's second column: wrap first, as if the
		// glyph itself had triggered the pending-wrap boundary.
		s.rowWrapped[s.cursor.Row] = true
		s.newlineAdvance()
		s.cursor.Col = 0
	}

	cell := s.currentCell()
	cell.Char = cp
	cell.Wide = width == 2
	*s.cellAt(s.cursor.Row, s.cursor.Col) = cell

	if width == 2 && s.cursor.Col+1 < s.cols {
		spacer := s.currentCell()
		spacer.Char = 0
		spacer.WideSpacer = true
		*s.cellAt(s.cursor.Row, s.cursor.Col+1) = spacer
	}

	if s.cursor.Col+width >= s.cols {
		s.cursor.Col = s.cols - 1
		s.wrapPending = true
	} else {
		s.cursor.Col += width
	}
}

// BackSpace moves the cursor left by one column, never wrapping.
func (s *Screen) BackSpace() {
	s.wrapPending = false
	if s.cursor.Col > 0 {
		s.cursor.Col--
	}
}

// Tabulate advances the cursor to the next tab stop, or to the last
// column if none remain.
func (s *Screen) Tabulate() {
	s.wrapPending = false
	for c := s.cursor.Col + 1; c < s.cols; c++ {
		if s.tabStops[c] {
			s.cursor.Col = c
			return
		}
	}
	s.cursor.Col = s.cols - 1
}

// Return moves the cursor to column 0.
func (s *Screen) Return() {
	s.wrapPending = false
	s.cursor.Col = 0
}

func (s *Screen) newlineAdvance() {
	if s.cursor.Row == s.scrollBottom {
		s.scrollUp(1)
	} else if s.cursor.Row < s.rows-1 {
		s.cursor.Row++
	}
}

// Index moves the cursor down one row, scrolling the region up if the
// cursor is already on the bottom margin.
func (s *Screen) Index() {
	s.wrapPending = false
	s.newlineAdvance()
}

// ReverseIndex moves the cursor up one row, scrolling the region down if
// the cursor is already on the top margin.
func (s *Screen) ReverseIndex() {
	s.wrapPending = false
	if s.cursor.Row == s.scrollTop {
		s.scrollDown(1)
	} else if s.cursor.Row > 0 {
		s.cursor.Row--
	}
}

// NewLine performs Return (if newline mode is set) followed by Index.
func (s *Screen) NewLine() {
	if s.modes&ModeNewLine != 0 {
		s.cursor.Col = 0
	}
	s.Index()
}

// NextLine is Return followed by Index (ESC E).
func (s *Screen) NextLine() {
	s.Return()
	s.Index()
}

// scrollUp shifts rows [scrollTop+1..scrollBottom] up by n, clearing the
// vacated rows at the bottom of the region. Lines scrolled off the very
// top of the screen (scrollTop == 0) are pushed to history.
func (s *Screen) scrollUp(n int) {
	for i := 0; i < n; i++ {
		if s.scrollTop == 0 && s.history != nil {
			row := make([]Cell, s.cols)
			copy(row, s.cells[s.scrollTop])
			s.history.AddLine(row, s.rowWrapped[s.scrollTop])
		}
		for r := s.scrollTop; r < s.scrollBottom; r++ {
			s.cells[r] = s.cells[r+1]
			s.rowWrapped[r] = s.rowWrapped[r+1]
		}
		s.cells[s.scrollBottom] = freshRow(s.cols)
		s.rowWrapped[s.scrollBottom] = false
	}
}

// scrollDown shifts rows [scrollTop..scrollBottom-1] down by n, clearing
// the vacated rows at the top of the region. Nothing is added to history.
func (s *Screen) scrollDown(n int) {
	for i := 0; i < n; i++ {
		for r := s.scrollBottom; r > s.scrollTop; r-- {
			s.cells[r] = s.cells[r-1]
			s.rowWrapped[r] = s.rowWrapped[r-1]
		}
		s.cells[s.scrollTop] = freshRow(s.cols)
		s.rowWrapped[s.scrollTop] = false
	}
}

func freshRow(cols int) []Cell {
	row := make([]Cell, cols)
	for i := range row {
		row[i] = NewCell()
	}
	return row
}

// --- Cursor addressing ---------------------------------------------------

func (s *Screen) clampRow(y int) int {
	if y < 0 {
		return 0
	}
	if y >= s.rows {
		return s.rows - 1
	}
	return y
}

func (s *Screen) clampCol(x int) int {
	if x < 0 {
		return 0
	}
	if x >= s.cols {
		return s.cols - 1
	}
	return x
}

// CursorUp moves the cursor up by n rows, clamped to the scrolling
// region's top when origin mode is set, otherwise to row 0.
func (s *Screen) CursorUp(n int) {
	s.wrapPending = false
	if n <= 0 {
		n = 1
	}
	min := 0
	if s.modes&ModeOrigin != 0 {
		min = s.scrollTop
	}
	s.cursor.Row -= n
	if s.cursor.Row < min {
		s.cursor.Row = min
	}
}

// CursorDown moves the cursor down by n rows, clamped to the scrolling
// region's bottom when origin mode is set, otherwise to the last row.
func (s *Screen) CursorDown(n int) {
	s.wrapPending = false
	if n <= 0 {
		n = 1
	}
	max := s.rows - 1
	if s.modes&ModeOrigin != 0 {
		max = s.scrollBottom
	}
	s.cursor.Row += n
	if s.cursor.Row > max {
		s.cursor.Row = max
	}
}

// CursorRight moves the cursor right by n columns, clamped to the last
// column.
func (s *Screen) CursorRight(n int) {
	s.wrapPending = false
	if n <= 0 {
		n = 1
	}
	s.cursor.Col = s.clampCol(s.cursor.Col + n)
}

// CursorLeft moves the cursor left by n columns, clamped to column 0.
func (s *Screen) CursorLeft(n int) {
	s.wrapPending = false
	if n <= 0 {
		n = 1
	}
	s.cursor.Col = s.clampCol(s.cursor.Col - n)
}

// SetCursorX sets the cursor's column, 1-based on input (§4.3).
func (s *Screen) SetCursorX(x int) {
	s.wrapPending = false
	s.cursor.Col = s.clampCol(x - 1)
}

// SetCursorY sets the cursor's row, 1-based on input, relative to the
// scrolling region's top when origin mode is set (§4.3, invariant 2).
func (s *Screen) SetCursorY(y int) {
	s.wrapPending = false
	row := y - 1
	if s.modes&ModeOrigin != 0 {
		row += s.scrollTop
	}
	s.cursor.Row = s.clampRow(row)
}

// SetCursorYX sets both coordinates; see SetCursorY and SetCursorX.
func (s *Screen) SetCursorYX(y, x int) {
	s.SetCursorY(y)
	s.SetCursorX(x)
}

// --- Editing: insert/delete/erase ----------------------------------------

// InsertChars shifts the n cells from the cursor to the end of line right
// by n, filling the vacated cells with the current rendition's blank.
func (s *Screen) InsertChars(n int) {
	if n <= 0 {
		n = 1
	}
	row := s.cells[s.cursor.Row]
	for c := s.cols - 1; c >= s.cursor.Col+n; c-- {
		row[c] = row[c-n]
	}
	for c := s.cursor.Col; c < s.cursor.Col+n && c < s.cols; c++ {
		row[c] = s.currentCell()
	}
}

// DeleteChars removes n cells at the cursor, shifting the remainder of
// the line left and filling the vacated tail with the current rendition.
func (s *Screen) DeleteChars(n int) {
	if n <= 0 {
		n = 1
	}
	row := s.cells[s.cursor.Row]
	for c := s.cursor.Col; c < s.cols-n; c++ {
		row[c] = row[c+n]
	}
	for c := s.cols - n; c < s.cols; c++ {
		if c >= 0 {
			row[c] = s.currentCell()
		}
	}
}

// EraseChars overwrites n cells at the cursor with the current rendition's
// blank, without shifting surrounding cells.
func (s *Screen) EraseChars(n int) {
	if n <= 0 {
		n = 1
	}
	for c := s.cursor.Col; c < s.cursor.Col+n && c < s.cols; c++ {
		s.cells[s.cursor.Row][c] = s.currentCell()
	}
}

// InsertLines inserts n blank lines at the cursor row, within the
// scrolling region, only if the cursor is currently inside the region.
func (s *Screen) InsertLines(n int) {
	if n <= 0 {
		n = 1
	}
	if s.cursor.Row < s.scrollTop || s.cursor.Row > s.scrollBottom {
		return
	}
	for i := 0; i < n; i++ {
		for r := s.scrollBottom; r > s.cursor.Row; r-- {
			s.cells[r] = s.cells[r-1]
			s.rowWrapped[r] = s.rowWrapped[r-1]
		}
		s.cells[s.cursor.Row] = freshRow(s.cols)
		s.rowWrapped[s.cursor.Row] = false
	}
}

// DeleteLines deletes n lines at the cursor row, within the scrolling
// region, only if the cursor is currently inside the region.
func (s *Screen) DeleteLines(n int) {
	if n <= 0 {
		n = 1
	}
	if s.cursor.Row < s.scrollTop || s.cursor.Row > s.scrollBottom {
		return
	}
	for i := 0; i < n; i++ {
		for r := s.cursor.Row; r < s.scrollBottom; r++ {
			s.cells[r] = s.cells[r+1]
			s.rowWrapped[r] = s.rowWrapped[r+1]
		}
		s.cells[s.scrollBottom] = freshRow(s.cols)
		s.rowWrapped[s.scrollBottom] = false
	}
}

// --- Clearing --------------------------------------------------------------

func (s *Screen) clearRange(row, from, to int) {
	for c := from; c <= to && c < s.cols; c++ {
		if c >= 0 {
			s.cells[row][c] = s.currentCell()
		}
	}
}

// ClearToEOL clears from the cursor to the end of the current line.
func (s *Screen) ClearToEOL() {
	s.clearRange(s.cursor.Row, s.cursor.Col, s.cols-1)
}

// ClearToBOL clears from the start of the current line to the cursor.
func (s *Screen) ClearToBOL() {
	s.clearRange(s.cursor.Row, 0, s.cursor.Col)
}

// ClearEntireLine clears the entire current line.
func (s *Screen) ClearEntireLine() {
	s.clearRange(s.cursor.Row, 0, s.cols-1)
}

// ClearToEOS clears from the cursor to the end of the screen.
func (s *Screen) ClearToEOS() {
	s.ClearToEOL()
	for r := s.cursor.Row + 1; r < s.rows; r++ {
		s.clearRange(r, 0, s.cols-1)
	}
}

// ClearToBOS clears from the start of the screen to the cursor.
func (s *Screen) ClearToBOS() {
	for r := 0; r < s.cursor.Row; r++ {
		s.clearRange(r, 0, s.cols-1)
	}
	s.ClearToBOL()
}

// ClearEntireScreen clears every cell on the screen.
func (s *Screen) ClearEntireScreen() {
	for r := 0; r < s.rows; r++ {
		s.clearRange(r, 0, s.cols-1)
	}
}

// HelpAlign fills the entire screen with 'E' at default rendition, the
// DECALN alignment pattern (ESC # 8).
func (s *Screen) HelpAlign() {
	for r := 0; r < s.rows; r++ {
		for c := 0; c < s.cols; c++ {
			s.cells[r][c] = Cell{Char: 'E', Fg: ColorDefault, Bg: ColorDefault}
		}
	}
}

// --- Tab stops -------------------------------------------------------------

// ChangeTabStop sets (set=true) or clears (set=false) a tab stop at the
// cursor's current column.
func (s *Screen) ChangeTabStop(set bool) {
	s.tabStops[s.cursor.Col] = set
}

// ClearTabStops clears every tab stop.
func (s *Screen) ClearTabStops() {
	for i := range s.tabStops {
		s.tabStops[i] = false
	}
}

// --- Margins ---------------------------------------------------------------

// SetMargins sets the scrolling region to [top, bottom], 1-based and
// inclusive. A top below 1 or a bottom past the last row is clamped to
// that screen edge, and the call is ignored if top >= bottom afterwards.
// A zero argument (DECSTBM with that parameter omitted, e.g. bare
// "CSI r") likewise selects the full-screen edge. The cursor homes to
// (top, 0) when origin mode is set, to (0, 0) otherwise.
func (s *Screen) SetMargins(top, bottom int) {
	if top == 0 {
		top = 1
	}
	if bottom == 0 {
		bottom = s.rows
	}
	if top < 1 {
		top = 1
	}
	if bottom > s.rows {
		bottom = s.rows
	}
	if top >= bottom {
		return
	}
	s.scrollTop = top - 1
	s.scrollBottom = bottom - 1
	if s.modes&ModeOrigin != 0 {
		s.cursor.Row = s.scrollTop
		s.cursor.Col = 0
	} else {
		s.cursor.Row = 0
		s.cursor.Col = 0
	}
	s.wrapPending = false
}

// --- Rendition ---------------------------------------------------------

// SetRendition sets the given attribute bits on the current rendition.
func (s *Screen) SetRendition(a Rendition) { s.attrs |= a }

// ResetRendition clears the given attribute bits from the current rendition.
func (s *Screen) ResetRendition(a Rendition) { s.attrs &^= a }

// SetDefaultRendition resets rendition, foreground and background to
// their defaults (SGR 0).
func (s *Screen) SetDefaultRendition() {
	s.attrs = 0
	s.fgIdx = ColorDefault
	s.bgIdx = ColorDefault
}

// SetForeColor sets the foreground palette index (0-15).
func (s *Screen) SetForeColor(idx int) { s.fgIdx = ColorIndex(idx) }

// SetBackColor sets the background palette index (0-15).
func (s *Screen) SetBackColor(idx int) { s.bgIdx = ColorIndex(idx) }

// SetForeColorToDefault resets the foreground color to default.
func (s *Screen) SetForeColorToDefault() { s.fgIdx = ColorDefault }

// SetBackColorToDefault resets the background color to default.
func (s *Screen) SetBackColorToDefault() { s.bgIdx = ColorDefault }

// --- Save/restore cursor -------------------------------------------------

// SaveCursor snapshots position, rendition and charset state.
func (s *Screen) SaveCursor() {
	snap := SavedCursor{
		Row:           s.cursor.Row,
		Col:           s.cursor.Col,
		Attrs:         s.attrs,
		Fg:            s.fgIdx,
		Bg:            s.bgIdx,
		OriginMode:    s.modes&ModeOrigin != 0,
		ActiveCharset: s.activeCharset,
		Charsets:      s.charsets,
	}
	s.saved = &snap
}

// RestoreCursor restores a previously saved snapshot, or homes the cursor
// if nothing was saved yet.
func (s *Screen) RestoreCursor() {
	if s.saved == nil {
		s.cursor.Row, s.cursor.Col = 0, 0
		return
	}
	snap := *s.saved
	s.cursor.Row = s.clampRow(snap.Row)
	s.cursor.Col = s.clampCol(snap.Col)
	s.attrs = snap.Attrs
	s.fgIdx = snap.Fg
	s.bgIdx = snap.Bg
	if snap.OriginMode {
		s.modes |= ModeOrigin
	} else {
		s.modes &^= ModeOrigin
	}
	s.activeCharset = snap.ActiveCharset
	s.charsets = snap.Charsets
	s.wrapPending = false
}

// --- Charsets --------------------------------------------------------------

// SetCharset designates the character set final byte final for G-slot
// slot (0-3).
func (s *Screen) SetCharset(slot int, final byte) {
	if slot < 0 || slot > 3 {
		return
	}
	s.charsets[slot] = CharsetID(final)
}

// UseCharset selects which of the four G-slots is active (SO/SI, ESC n/o).
func (s *Screen) UseCharset(slot int) {
	if slot < 0 || slot > 3 {
		return
	}
	s.activeCharset = slot
}

// --- Modes -------------------------------------------------------------

// SetMode sets the given screen mode bits.
func (s *Screen) SetMode(m ScreenMode) { s.modes |= m }

// ResetMode clears the given screen mode bits.
func (s *Screen) ResetMode(m ScreenMode) { s.modes &^= m }

// ModeSet reports whether every bit in m is set.
func (s *Screen) ModeSet(m ScreenMode) bool { return s.modes&m == m }

// SaveMode records the current value of each bit in m for a later
// RestoreMode, independent of any other bit (§8).
func (s *Screen) SaveMode(m ScreenMode) {
	for bit := ScreenMode(1); bit <= m; bit <<= 1 {
		if m&bit != 0 {
			s.modeSaves.save(s.modes, bit)
		}
	}
}

// RestoreMode restores each bit in m to its last saved value; bits never
// saved are left unchanged.
func (s *Screen) RestoreMode(m ScreenMode) {
	for bit := ScreenMode(1); bit <= m; bit <<= 1 {
		if m&bit == 0 {
			continue
		}
		if v, ok := s.modeSaves.restore(bit); ok {
			if v {
				s.modes |= bit
			} else {
				s.modes &^= bit
			}
		}
	}
}

// --- Selection -----------------------------------------------------------

// SetSelBeginXY starts a new selection at (x, y).
func (s *Screen) SetSelBeginXY(x, y int) {
	s.selection = Selection{Begin: Position{Y: y, X: x}, End: Position{Y: y, X: x}, Active: true}
}

// SetSelExtentXY extends the active selection's end point to (x, y).
func (s *Screen) SetSelExtentXY(x, y int) {
	s.selection.End = Position{Y: y, X: x}
}

// SetBusySelecting sets the "busy selecting" latch.
func (s *Screen) SetBusySelecting(busy bool) { s.selection.Busy = busy }

// ClearSelection deactivates the current selection.
func (s *Screen) ClearSelection() { s.selection = Selection{} }

// TestIsSelected reports whether (x, y) falls within the active selection.
func (s *Screen) TestIsSelected(x, y int) bool {
	if !s.selection.Active {
		return false
	}
	begin, end := s.selection.Begin, s.selection.End
	if begin.Y > end.Y || (begin.Y == end.Y && begin.X > end.X) {
		begin, end = end, begin
	}
	p := Position{Y: y, X: x}
	if p.Y < begin.Y || p.Y > end.Y {
		return false
	}
	if p.Y == begin.Y && p.X < begin.X {
		return false
	}
	if p.Y == end.Y && p.X > end.X {
		return false
	}
	return true
}

// GetSelText returns the text of the active selection. Row boundaries
// caused by auto-wrap are rendered as a space unless keepBreaks is true,
// in which case they are kept as newlines like explicit line breaks
// (§4.3).
func (s *Screen) GetSelText(keepBreaks bool) string {
	if !s.selection.Active {
		return ""
	}
	begin, end := s.selection.Begin, s.selection.End
	if begin.Y > end.Y || (begin.Y == end.Y && begin.X > end.X) {
		begin, end = end, begin
	}
	var out []rune
	for row := begin.Y; row <= end.Y; row++ {
		from, to := 0, s.cols-1
		if row == begin.Y {
			from = begin.X
		}
		if row == end.Y {
			to = end.X
		}
		line := s.rowText(row, from, to)
		out = append(out, []rune(line)...)
		if row < end.Y {
			if row >= 0 && row < len(s.rowWrapped) && s.rowWrapped[row] {
				if keepBreaks {
					out = append(out, '\n')
				} else {
					out = append(out, ' ')
				}
			} else {
				out = append(out, '\n')
			}
		}
	}
	return string(out)
}

func (s *Screen) rowText(row, from, to int) string {
	if row < 0 || row >= s.rows {
		return ""
	}
	if from < 0 {
		from = 0
	}
	if to >= s.cols {
		to = s.cols - 1
	}
	runes := make([]rune, 0, to-from+1)
	for c := from; c <= to; c++ {
		if s.cells[row][c].WideSpacer {
			continue
		}
		runes = append(runes, s.cells[row][c].Char)
	}
	return string(runes)
}

// --- History cursor --------------------------------------------------------

// HistLines reports the number of retained scrollback lines.
func (s *Screen) HistLines() int {
	if s.history == nil {
		return 0
	}
	return s.history.Lines()
}

// HistCursor reports the current scroll offset into history for display.
func (s *Screen) HistCursor() int { return s.histCursor }

// SetHistCursor sets the scroll offset into history, clamped to
// [0, HistLines()].
func (s *Screen) SetHistCursor(n int) {
	max := s.HistLines()
	if n < 0 {
		n = 0
	}
	if n > max {
		n = max
	}
	s.histCursor = n
}

// --- Cooked image --------------------------------------------------------

// CookedImage returns the lines*cols cells to render, overlaying the
// cursor (if visible) and the selection with reversed rendition (§4.3,
// invariant 4).
func (s *Screen) CookedImage() []Cell {
	img := make([]Cell, s.rows*s.cols)
	for r := 0; r < s.rows; r++ {
		copy(img[r*s.cols:(r+1)*s.cols], s.cells[r])
	}
	if s.selection.Active {
		for r := 0; r < s.rows; r++ {
			for c := 0; c < s.cols; c++ {
				if s.TestIsSelected(c, r) {
					idx := r*s.cols + c
					img[idx] = img[idx].Reversed()
				}
			}
		}
	}
	if s.cursor.Visible && s.modes&ModeCursorVisible != 0 {
		idx := s.cursor.Row*s.cols + s.cursor.Col
		if idx >= 0 && idx < len(img) {
			img[idx] = img[idx].Reversed()
		}
	}
	return img
}

// CookedLineWrapped returns, per row, whether the row continues via
// auto-wrap rather than an explicit newline.
func (s *Screen) CookedLineWrapped() []bool {
	out := make([]bool, s.rows)
	copy(out, s.rowWrapped)
	return out
}

// CursorPosition returns the current 0-based cursor position.
func (s *Screen) CursorPosition() (row, col int) {
	return s.cursor.Row, s.cursor.Col
}

// Attached returns the screen's history (nil for the alternate screen).
func (s *Screen) Attached() History { return s.history }

// SetHistory replaces the screen's history, transferring the trailing
// lines of the previous history into the new one (§3 "Lifecycles").
func (s *Screen) SetHistory(h History) {
	if s.history != nil {
		TransferHistory(s.history, h)
	}
	s.history = h
}
