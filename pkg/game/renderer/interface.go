package renderer

import (
	"putmop/pkg/game/player"
)

// TextStyle picks the colour a tile or HUD line is drawn in.
type TextStyle int

const (
	StyleEmpty TextStyle = iota
	StyleCell
	StylePlayer
	StyleBot
	StyleStatus
	StylePrompt
	StyleMessage
)

// Renderer defines the interface for game rendering backends.
// Implementations receive a finished frame and hand back raw keys and
// typed lines; they never touch the world.
type Renderer interface {
	// Init prepares the display (raw mode, colours, window).
	Init() error

	// Close restores the display.
	Close() error

	// Size returns the map area available, in cells.
	Size() (cols, rows int)

	// RenderFrame draws a complete frame: map, status bar and messages.
	RenderFrame(f *Frame) error

	// ReadKey blocks for one keystroke.
	ReadKey() (player.Key, error)

	// Prompt shows glyph and blocks for one typed line.
	Prompt(glyph rune) (string, error)
}
