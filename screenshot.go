package vt100core

import (
	"image"
	"io"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// ScreenshotConfig controls how a screen is rendered to an image.
type ScreenshotConfig struct {
	// Font face to use for rendering. If nil, uses basicfont.Face7x13.
	Font font.Face

	// CellWidth and CellHeight override the cell dimensions. If zero,
	// derived from font metrics.
	CellWidth  int
	CellHeight int

	// ShowCursor controls whether to render the cursor. Default true.
	ShowCursor *bool
}

// LoadFont loads a TrueType or OpenType font from a file path.
func LoadFont(path string, size float64) (font.Face, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return LoadFontFromReader(f, size)
}

// LoadFontFromReader loads a TrueType or OpenType font from an io.Reader.
func LoadFontFromReader(r io.Reader, size float64) (font.Face, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return LoadFontFromBytes(data, size)
}

// LoadFontFromBytes loads a TrueType or OpenType font from raw bytes.
func LoadFontFromBytes(data []byte, size float64) (font.Face, error) {
	ft, err := opentype.Parse(data)
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(ft, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// Screenshot renders the active screen to an RGBA image using default
// settings (basicfont, [DefaultPalette]).
func (e *Emulation) Screenshot() *image.RGBA {
	return e.ScreenshotWithConfig(&ScreenshotConfig{})
}

// ScreenshotWithConfig renders the active screen to an RGBA image with a
// custom font and cursor setting.
func (e *Emulation) ScreenshotWithConfig(cfg *ScreenshotConfig) *image.RGBA {
	e.mu.RLock()
	defer e.mu.RUnlock()

	scr := e.activeScreen()

	face := cfg.Font
	if face == nil {
		face = basicfont.Face7x13
	}

	cellWidth, cellHeight := cfg.CellWidth, cfg.CellHeight
	metrics := face.Metrics()
	if cellWidth == 0 {
		adv, _ := face.GlyphAdvance('M')
		cellWidth = adv.Ceil()
		if cellWidth == 0 {
			cellWidth = 7
		}
	}
	if cellHeight == 0 {
		cellHeight = metrics.Height.Ceil()
	}

	rows, cols := scr.Rows(), scr.Cols()
	imgWidth, imgHeight := cols*cellWidth, rows*cellHeight
	img := image.NewRGBA(image.Rect(0, 0, imgWidth, imgHeight))

	for y := 0; y < imgHeight; y++ {
		for x := 0; x < imgWidth; x++ {
			img.Set(x, y, DefaultBackground)
		}
	}

	cells := scr.CookedImage()
	if cfg.ShowCursor != nil && !*cfg.ShowCursor && scr.cursor.Visible && scr.ModeSet(ModeCursorVisible) {
		// CookedImage drew the cursor by swapping the cell's colors; swap back.
		cr, cc := scr.CursorPosition()
		cells[cr*cols+cc] = cells[cr*cols+cc].Reversed()
	}
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			cell := cells[row*cols+col]
			x, y := col*cellWidth, row*cellHeight

			fg := resolveColor(cell.Fg, true)
			bg := resolveColor(cell.Bg, false)
			if cell.HasAttr(RenditionReverse) {
				fg, bg = bg, fg
			}

			for py := 0; py < cellHeight; py++ {
				for px := 0; px < cellWidth; px++ {
					img.Set(x+px, y+py, bg)
				}
			}

			if cell.Char == 0 || cell.Char == ' ' {
				continue
			}

			baseline := y + metrics.Ascent.Ceil()
			d := &font.Drawer{
				Dst:  img,
				Src:  image.NewUniform(fg),
				Face: face,
				Dot:  fixed.P(x, baseline),
			}
			d.DrawString(string(cell.Char))

			if cell.HasAttr(RenditionUnderline) {
				underlineY := baseline + 2
				for px := 0; px < cellWidth; px++ {
					if underlineY < imgHeight {
						img.Set(x+px, underlineY, fg)
					}
				}
			}
		}
	}

	return img
}
