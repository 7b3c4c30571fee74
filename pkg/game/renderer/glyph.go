package renderer

import "putmop/pkg/game/memory"

// Glyphs with a fixed meaning on the map.
const (
	GlyphEmpty  = '.'
	GlyphPlayer = '@'
)

// Glyph maps a cell value to a printable ASCII character. Zero is always
// '.', and no other value maps to '.' or '@'.
func Glyph(v memory.Cell) rune {
	if v == 0 {
		return GlyphEmpty
	}

	m := v % 92
	if m < 0 {
		m = -m
	}
	c := rune(33 + m)

	switch {
	case c < GlyphEmpty:
		return c
	case c < GlyphPlayer-1:
		return c + 1
	default:
		return c + 2
	}
}
