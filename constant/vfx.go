package constant

// PaletteSize is the number of shape colors; particle.Color indexes the
// render palette, which must have exactly this many entries
const PaletteSize = 8

// EmojiGlyphs is the glyph set for the emoji kind, picked uniformly
var EmojiGlyphs = []rune{'🎉', '🎊', '✨', '⭐', '🎈', '🪅'}

// Terminal cell footprint of one simulation pixel unit. Cells are roughly
// twice as tall as wide, so vertical motion maps through the larger divisor
const (
	CellWidthPx  = 8.0
	CellHeightPx = 16.0
)
