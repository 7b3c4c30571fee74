package ebiten

import (
	"image/color"

	"putmop/pkg/game/renderer"
)

const (
	baseFontSize = 16.0
	minFontSize  = 8.0
	maxFontSize  = 48.0
	fontSizeStep = 2.0

	// Keystrokes held for the turn loop, enough for a pasted number.
	eventQueueSize = 64

	margin = 12 // pixels around the map

	// Status bar, turn line, message and prompt below the map.
	hudLines = 8
)

// Color palette
var (
	colorBackground    = color.RGBA{26, 26, 46, 255}    // Dark blue-gray
	colorMapBackground = color.RGBA{15, 15, 26, 255}    // Darker for map area
	colorEmpty         = color.RGBA{70, 70, 90, 255}    // Dim for zero cells
	colorCell          = color.RGBA{100, 200, 220, 255} // Cyan
	colorPlayer        = color.RGBA{0, 255, 0, 255}     // Bright green
	colorBot           = color.RGBA{255, 220, 100, 255} // Yellow
	colorStatus        = color.RGBA{100, 150, 255, 255} // Bright blue
	colorText          = color.RGBA{200, 210, 245, 255} // Soft off-white with blue-purple tint
	colorPrompt        = color.RGBA{180, 150, 250, 255} // Blue-purple
	colorSubtle        = color.RGBA{120, 130, 180, 255} // Soft blue-purple-gray
)

func styleColor(s renderer.TextStyle) color.Color {
	switch s {
	case renderer.StyleEmpty:
		return colorEmpty
	case renderer.StyleCell:
		return colorCell
	case renderer.StylePlayer:
		return colorPlayer
	case renderer.StyleBot:
		return colorBot
	case renderer.StyleStatus:
		return colorStatus
	case renderer.StylePrompt:
		return colorPrompt
	case renderer.StyleMessage:
		return colorSubtle
	default:
		return colorText
	}
}
