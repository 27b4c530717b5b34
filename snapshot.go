package vt100core

import "fmt"

// SnapshotDetail controls how much information Emulation.Snapshot
// includes, letting callers trade detail for payload size when shipping
// screen state to a remote Display.
type SnapshotDetail string

const (
	// SnapshotDetailText returns plain text only.
	SnapshotDetailText SnapshotDetail = "text"
	// SnapshotDetailStyled returns text split into same-style runs.
	SnapshotDetailStyled SnapshotDetail = "styled"
	// SnapshotDetailFull returns full cell-by-cell data.
	SnapshotDetailFull SnapshotDetail = "full"
)

// Snapshot is a complete, serializable capture of one screen (§3).
type Snapshot struct {
	Size   SnapshotSize   `json:"size"`
	Cursor SnapshotCursor `json:"cursor"`
	Lines  []SnapshotLine `json:"lines"`
}

// SnapshotSize holds the screen dimensions.
type SnapshotSize struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

// SnapshotCursor holds cursor state.
type SnapshotCursor struct {
	Row     int  `json:"row"`
	Col     int  `json:"col"`
	Visible bool `json:"visible"`
}

// SnapshotLine is one row, detail-dependent.
type SnapshotLine struct {
	Text     string            `json:"text"`
	Wrapped  bool              `json:"wrapped,omitempty"`
	Segments []SnapshotSegment `json:"segments,omitempty"`
	Cells    []SnapshotCell    `json:"cells,omitempty"`
}

// SnapshotSegment is a run of cells sharing one rendition.
type SnapshotSegment struct {
	Text  string        `json:"text"`
	Fg    string         `json:"fg,omitempty"`
	Bg    string         `json:"bg,omitempty"`
	Attrs SnapshotAttrs `json:"attrs,omitempty"`
}

// SnapshotCell is a single cell with full attributes.
type SnapshotCell struct {
	Char       string        `json:"char"`
	Fg         string        `json:"fg"`
	Bg         string        `json:"bg"`
	Attrs      SnapshotAttrs `json:"attrs,omitempty"`
	Wide       bool          `json:"wide,omitempty"`
	WideSpacer bool          `json:"wideSpacer,omitempty"`
}

// SnapshotAttrs mirrors [Rendition] as named booleans for JSON.
type SnapshotAttrs struct {
	Bold      bool `json:"bold,omitempty"`
	Underline bool `json:"underline,omitempty"`
	Blink     bool `json:"blink,omitempty"`
	Reverse   bool `json:"reverse,omitempty"`
}

// Snapshot captures the current state of the active screen. detail
// controls how much per-cell information is included.
func (e *Emulation) Snapshot(detail SnapshotDetail) *Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()

	scr := e.activeScreen()
	row, col := scr.CursorPosition()
	snap := &Snapshot{
		Size:   SnapshotSize{Rows: scr.Rows(), Cols: scr.Cols()},
		Cursor: SnapshotCursor{Row: row, Col: col, Visible: scr.cursor.Visible},
		Lines:  make([]SnapshotLine, scr.Rows()),
	}

	img := scr.CookedImage()
	wrapped := scr.CookedLineWrapped()
	for r := 0; r < scr.Rows(); r++ {
		snap.Lines[r] = snapshotLine(img[r*scr.Cols():(r+1)*scr.Cols()], wrapped[r], detail)
	}
	return snap
}

func snapshotLine(cells []Cell, wrapped bool, detail SnapshotDetail) SnapshotLine {
	line := SnapshotLine{Text: cellsText(cells), Wrapped: wrapped}
	switch detail {
	case SnapshotDetailStyled:
		line.Segments = cellsToSegments(cells)
	case SnapshotDetailFull:
		line.Cells = cellsToSnapshot(cells)
	}
	return line
}

func cellsText(cells []Cell) string {
	runes := make([]rune, 0, len(cells))
	for _, c := range cells {
		if c.WideSpacer {
			continue
		}
		runes = append(runes, c.Char)
	}
	return string(runes)
}

func cellsToSegments(cells []Cell) []SnapshotSegment {
	var segments []SnapshotSegment
	var current *SnapshotSegment
	var text []rune

	flush := func() {
		if current != nil && len(text) > 0 {
			current.Text = string(text)
			segments = append(segments, *current)
		}
	}

	for _, c := range cells {
		if c.WideSpacer {
			continue
		}
		attrs := attrsOf(c)
		fg, bg := colorHex(c.Fg, true), colorHex(c.Bg, false)
		if current == nil || current.Fg != fg || current.Bg != bg || current.Attrs != attrs {
			flush()
			current = &SnapshotSegment{Fg: fg, Bg: bg, Attrs: attrs}
			text = nil
		}
		text = append(text, c.Char)
	}
	flush()
	return segments
}

func cellsToSnapshot(cells []Cell) []SnapshotCell {
	out := make([]SnapshotCell, len(cells))
	for i, c := range cells {
		ch := string(c.Char)
		if c.WideSpacer {
			ch = ""
		}
		out[i] = SnapshotCell{
			Char:       ch,
			Fg:         colorHex(c.Fg, true),
			Bg:         colorHex(c.Bg, false),
			Attrs:      attrsOf(c),
			Wide:       c.Wide,
			WideSpacer: c.WideSpacer,
		}
	}
	return out
}

func attrsOf(c Cell) SnapshotAttrs {
	return SnapshotAttrs{
		Bold:      c.HasAttr(RenditionBold),
		Underline: c.HasAttr(RenditionUnderline),
		Blink:     c.HasAttr(RenditionBlink),
		Reverse:   c.HasAttr(RenditionReverse),
	}
}

func colorHex(idx ColorIndex, fg bool) string {
	rgba := resolveColor(idx, fg)
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}
