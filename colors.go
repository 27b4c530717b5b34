package vt100core

import "image/color"

// DefaultPalette is the standard 16-color ANSI palette (0-7 normal,
// 8-15 bright), used to resolve a cell's [ColorIndex] for rendering.
var DefaultPalette = [16]color.RGBA{
	{0, 0, 0, 255},       // Black
	{205, 49, 49, 255},   // Red
	{13, 188, 121, 255},  // Green
	{229, 229, 16, 255},  // Yellow
	{36, 114, 200, 255},  // Blue
	{188, 63, 188, 255},  // Magenta
	{17, 168, 205, 255},  // Cyan
	{229, 229, 229, 255}, // White

	{102, 102, 102, 255}, // Bright Black
	{241, 76, 76, 255},   // Bright Red
	{35, 209, 139, 255},  // Bright Green
	{245, 245, 67, 255},  // Bright Yellow
	{59, 142, 234, 255},  // Bright Blue
	{214, 112, 214, 255}, // Bright Magenta
	{41, 184, 219, 255},  // Bright Cyan
	{255, 255, 255, 255}, // Bright White
}

// DefaultForeground is the RGBA resolution of ColorDefault on a foreground.
var DefaultForeground = color.RGBA{229, 229, 229, 255}

// DefaultBackground is the RGBA resolution of ColorDefault on a background.
var DefaultBackground = color.RGBA{0, 0, 0, 255}

// DefaultCursorColor is an RGBA for the cursor. Nothing in this package
// reads it: the cooked image and the screenshot renderer show the cursor
// by swapping the cell's foreground and background.
var DefaultCursorColor = color.RGBA{229, 229, 229, 255}

// resolveColor converts a ColorIndex to RGBA using DefaultPalette, falling
// back to the default foreground or background when idx is ColorDefault or
// otherwise out of range.
func resolveColor(idx ColorIndex, fg bool) color.RGBA {
	if idx >= 0 && int(idx) < len(DefaultPalette) {
		return DefaultPalette[idx]
	}
	if fg {
		return DefaultForeground
	}
	return DefaultBackground
}
