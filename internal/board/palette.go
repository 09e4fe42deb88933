package board

import "image/color"

// paletteEntry pairs a drawing color with its display name.
type paletteEntry struct {
	name  string
	color color.RGBA
}

// The fixed drawing palette. change_color cycles through these in order,
// wrapping at the end.
var paletteEntries = []paletteEntry{
	{"red", color.RGBA{R: 255, A: 255}},
	{"green", color.RGBA{G: 255, A: 255}},
	{"blue", color.RGBA{B: 255, A: 255}},
	{"yellow", color.RGBA{R: 255, G: 255, A: 255}},
	{"magenta", color.RGBA{R: 255, B: 255, A: 255}},
	{"cyan", color.RGBA{G: 255, B: 255, A: 255}},
}

// eraserColor matches the blank canvas so erasing strokes paint it away.
var eraserColor = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// Palette is the ordered set of drawing colors with a cursor.
type Palette struct {
	index int
}

// NewPalette creates a Palette with the cursor on the first color.
func NewPalette() *Palette {
	return &Palette{}
}

// Color returns the currently selected drawing color.
func (p *Palette) Color() color.RGBA {
	return paletteEntries[p.index].color
}

// Name returns the display name of the current color.
func (p *Palette) Name() string {
	return paletteEntries[p.index].name
}

// Index returns the cursor position.
func (p *Palette) Index() int {
	return p.index
}

// Len returns the palette size.
func (p *Palette) Len() int {
	return len(paletteEntries)
}

// Cycle advances the cursor to the next color, wrapping around.
func (p *Palette) Cycle() {
	p.index = (p.index + 1) % len(paletteEntries)
}
