package vt100core

// Cursor tracks the on-screen position, 0-based internally (1-based on
// the wire). Visible controls whether getCookedImage overlays it.
type Cursor struct {
	Row     int
	Col     int
	Visible bool
}

// NewCursor returns a cursor at (0, 0), visible.
func NewCursor() Cursor {
	return Cursor{Row: 0, Col: 0, Visible: true}
}

// SavedCursor is the snapshot taken by saveCursor/ESC 7 and restored by
// restoreCursor/ESC 8: position, rendition and charset state (§3, §4.3).
type SavedCursor struct {
	Row           int
	Col           int
	Attrs         Rendition
	Fg            ColorIndex
	Bg            ColorIndex
	OriginMode    bool
	ActiveCharset int
	Charsets      [4]CharsetID
}
