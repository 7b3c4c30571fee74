package ebiten

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	engineworld "putmop/pkg/engine/world"
	"putmop/pkg/game/player"
)

var arrowKeys = []struct {
	key ebiten.Key
	dir engineworld.Direction
}{
	{ebiten.KeyArrowUp, engineworld.North},
	{ebiten.KeyArrowDown, engineworld.South},
	{ebiten.KeyArrowLeft, engineworld.West},
	{ebiten.KeyArrowRight, engineworld.East},
}

// Update handles input (Ebiten interface)
func (e *EbitenRenderer) Update() error {
	if e.closed() {
		return ebiten.Termination
	}

	// Log window opening on first update (confirms window is actually running)
	if !e.windowOpenedLogged {
		e.windowOpenedLogged = true
		w, h := ebiten.WindowSize()
		log.Printf("window opened (%dx%d)", w, h)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		e.Close()
		return ebiten.Termination
	}

	e.handleZoom()

	// Whether a character is a command or part of a prompt line is decided
	// by the reader, in typing order.
	for _, a := range arrowKeys {
		if inpututil.IsKeyJustPressed(a.key) {
			e.pushEvent(inputEvent{key: player.ArrowKey(a.dir)})
		}
	}
	for _, r := range ebiten.AppendInputChars(nil) {
		e.pushEvent(inputEvent{key: player.CodeKey(r)})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		e.pushEvent(inputEvent{backspace: true})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter) {
		e.pushEvent(inputEvent{enter: true})
	}
	return nil
}

// inputEvent is one keystroke: a command key, or an enter or backspace
// press for line entry.
type inputEvent struct {
	key       player.Key
	backspace bool
	enter     bool
}

// pushEvent queues ev for ReadKey or Prompt, dropping it if the turn loop
// is behind.
func (e *EbitenRenderer) pushEvent(ev inputEvent) {
	select {
	case e.events <- ev:
	default:
		// Queue full, drop input
	}
}

// handleZoom handles Ctrl+= / Ctrl+- / Ctrl+0 for font size. Plain keys
// are left alone since any character may be bound to a command.
func (e *EbitenRenderer) handleZoom() {
	if !ebiten.IsKeyPressed(ebiten.KeyControl) {
		return
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual):
		e.setFontSize(e.fontSize + fontSizeStep)
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus):
		e.setFontSize(e.fontSize - fontSizeStep)
	case inpututil.IsKeyJustPressed(ebiten.Key0):
		e.setFontSize(baseFontSize)
	}
}

func (e *EbitenRenderer) setFontSize(size float64) {
	if size < minFontSize {
		size = minFontSize
	}
	if size > maxFontSize {
		size = maxFontSize
	}
	e.fontSize = size
	e.face = nil
}
