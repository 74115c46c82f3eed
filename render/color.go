package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/confetti/constant"
	"github.com/lixenwraith/confetti/particle"
)

// RGB is a 24-bit color
type RGB struct {
	R, G, B uint8
}

// Palette maps particle color indexes to shape colors.
// Length is pinned to constant.PaletteSize; the emitter draws indexes
// against that constant
var Palette = [constant.PaletteSize]RGB{
	{R: 239, G: 71, B: 111},  // Raspberry
	{R: 255, G: 140, B: 66},  // Orange
	{R: 255, G: 209, B: 102}, // Gold
	{R: 6, G: 214, B: 160},   // Mint
	{R: 17, G: 138, B: 178},  // Teal
	{R: 94, G: 96, B: 206},   // Indigo
	{R: 199, G: 125, B: 255}, // Violet
	{R: 255, G: 117, B: 185}, // Pink
}

// ColorOf resolves a particle palette index, clamping out-of-range indexes
// to the first entry
func ColorOf(c particle.Color) RGB {
	if int(c) >= len(Palette) {
		return Palette[0]
	}
	return Palette[c]
}

// Lerp blends a toward b by t, clamped to [0, 1]
func Lerp(a, b RGB, t float64) RGB {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return RGB{
		R: uint8(float64(a.R) + (float64(b.R)-float64(a.R))*t),
		G: uint8(float64(a.G) + (float64(b.G)-float64(a.G))*t),
		B: uint8(float64(a.B) + (float64(b.B)-float64(a.B))*t),
	}
}

// ToTcell converts to a tcell RGB color
func (c RGB) ToTcell() tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
