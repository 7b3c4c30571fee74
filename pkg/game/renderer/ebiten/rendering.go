package ebiten

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"putmop/pkg/game/locale"
	"putmop/pkg/game/renderer"
)

// Draw renders the latest frame (Ebiten interface)
func (e *EbitenRenderer) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	f := e.currentFrame()
	if f == nil || e.fontSource == nil {
		return
	}

	cw, ch := e.cellSize()
	cols, rows := f.Grid.Cols(), f.Grid.Rows()

	vector.DrawFilledRect(screen, float32(margin), float32(margin),
		float32(cols*cw), float32(rows*ch), colorMapBackground, false)

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			tile := f.Tiles[row*cols+col]
			e.drawText(screen, string(tile.Glyph), margin+col*cw, margin+row*ch, styleColor(tile.Style))
		}
	}

	y := margin + (rows+1)*ch
	screenWidth := screen.Bounds().Dx()
	for _, line := range renderer.StatusLines(f.Status, (screenWidth-2*margin)/cw) {
		e.drawText(screen, line, margin, y, colorStatus)
		y += ch
	}

	hud := locale.Get("TURN_COUNTER", f.Turn) + "  " + locale.Get("PLAYER_VALUE", f.PlayerValue)
	e.drawText(screen, hud, margin, y, colorSubtle)
	y += ch

	if f.Message != "" {
		e.drawText(screen, f.Message, margin, y, colorText)
	}
	y += ch

	e.promptMutex.Lock()
	prompting, glyph, typed := e.prompting, e.promptGlyph, string(e.promptBuf)
	e.promptMutex.Unlock()
	if prompting {
		e.drawText(screen, string(glyph)+"> "+typed+"_", margin, y, colorPrompt)
		y += ch
		e.drawText(screen, locale.Get("PROMPT_HINT"), margin, y, colorSubtle)
	}
}

func (e *EbitenRenderer) drawText(screen *ebiten.Image, s string, x, y int, col color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(col)
	text.Draw(screen, s, e.getFace(), op)
}
