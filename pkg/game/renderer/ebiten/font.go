package ebiten

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gomono"
)

// loadFont parses the embedded monospace font once.
func (e *EbitenRenderer) loadFont() error {
	if e.fontSource != nil {
		return nil
	}
	src, err := text.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
	if err != nil {
		return fmt.Errorf("ebiten: loading font: %w", err)
	}
	e.fontSource = src
	e.face = nil
	return nil
}

// getFace returns a cached face at the current font size
func (e *EbitenRenderer) getFace() *text.GoTextFace {
	if e.face == nil || e.face.Size != e.fontSize {
		e.face = &text.GoTextFace{
			Source: e.fontSource,
			Size:   e.fontSize,
		}
	}
	return e.face
}

// cellSize returns the pixel size of one character cell.
func (e *EbitenRenderer) cellSize() (w, h int) {
	return int(e.fontSize*0.6 + 0.5), int(e.fontSize*1.25 + 0.5)
}

// windowSize fits the map plus the HUD lines below it.
func (e *EbitenRenderer) windowSize() (w, h int) {
	cw, ch := e.cellSize()
	return (e.cols+2)*cw + 2*margin, (e.rows+hudLines)*ch + 2*margin
}
