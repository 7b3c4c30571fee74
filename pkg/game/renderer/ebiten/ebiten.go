// Package ebiten draws the world in a window. The turn loop runs on its own
// goroutine and talks to the window only through channels and a
// mutex-guarded frame, so the world itself is never shared.
package ebiten

import (
	"errors"
	"log"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"putmop/pkg/engine/input"
	"putmop/pkg/game/player"
	"putmop/pkg/game/renderer"
)

// Default map area in cells.
const (
	DefaultCols = 80
	DefaultRows = 24
)

// EbitenRenderer is the windowed renderer implementation
type EbitenRenderer struct {
	cols, rows int
	fontSize   float64

	fontSource *text.GoTextFaceSource
	face       *text.GoTextFace

	// Keystrokes and line-editing keys in the order they were typed. A
	// command key and the digits typed after it share this queue, so the
	// digits reach Prompt even when they arrive in the same frame.
	events chan inputEvent

	done      chan struct{}
	closeOnce sync.Once

	frameMutex sync.RWMutex
	frame      *renderer.Frame

	promptMutex sync.Mutex
	prompting   bool
	promptGlyph rune
	promptBuf   []rune

	windowOpenedLogged bool
}

// New creates a renderer with a map area of cols x rows cells. Zero or
// negative sizes fall back to the defaults.
func New(cols, rows int) *EbitenRenderer {
	if cols <= 0 {
		cols = DefaultCols
	}
	if rows <= 0 {
		rows = DefaultRows
	}
	return &EbitenRenderer{
		cols:     cols,
		rows:     rows,
		fontSize: baseFontSize,
		events:   make(chan inputEvent, eventQueueSize),
		done:     make(chan struct{}),
	}
}

// Init loads the font and sizes the window.
func (e *EbitenRenderer) Init() error {
	if err := e.loadFont(); err != nil {
		return err
	}
	w, h := e.windowSize()
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("putmop")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return nil
}

// Close stops the window and unblocks any pending ReadKey or Prompt.
func (e *EbitenRenderer) Close() error {
	e.closeOnce.Do(func() { close(e.done) })
	return nil
}

func (e *EbitenRenderer) closed() bool {
	select {
	case <-e.done:
		return true
	default:
		return false
	}
}

// Size returns the map area in cells.
func (e *EbitenRenderer) Size() (cols, rows int) {
	return e.cols, e.rows
}

// RenderFrame hands f to the window for the next Draw.
func (e *EbitenRenderer) RenderFrame(f *renderer.Frame) error {
	if e.closed() {
		return input.ErrQuit
	}
	e.frameMutex.Lock()
	e.frame = f
	e.frameMutex.Unlock()
	return nil
}

func (e *EbitenRenderer) currentFrame() *renderer.Frame {
	e.frameMutex.RLock()
	defer e.frameMutex.RUnlock()
	return e.frame
}

// ReadKey blocks until the window reports a keystroke. Stray enter and
// backspace presses outside a prompt are skipped.
func (e *EbitenRenderer) ReadKey() (player.Key, error) {
	for {
		select {
		case ev := <-e.events:
			if ev.enter || ev.backspace {
				continue
			}
			return ev.key, nil
		case <-e.done:
			return player.Key{}, input.ErrQuit
		}
	}
}

// Prompt switches the window to line entry and consumes typed characters
// until enter. Arrow keys are ignored while the line is open.
func (e *EbitenRenderer) Prompt(glyph rune) (string, error) {
	e.promptMutex.Lock()
	e.prompting = true
	e.promptGlyph = glyph
	e.promptBuf = e.promptBuf[:0]
	e.promptMutex.Unlock()

	defer func() {
		e.promptMutex.Lock()
		e.prompting = false
		e.promptBuf = e.promptBuf[:0]
		e.promptMutex.Unlock()
	}()

	for {
		select {
		case ev := <-e.events:
			if line, ok := e.editPrompt(ev); ok {
				return line, nil
			}
		case <-e.done:
			return "", input.ErrQuit
		}
	}
}

// editPrompt applies ev to the open line and reports the line once enter
// is pressed.
func (e *EbitenRenderer) editPrompt(ev inputEvent) (string, bool) {
	e.promptMutex.Lock()
	defer e.promptMutex.Unlock()

	switch {
	case ev.enter:
		return string(e.promptBuf), true
	case ev.backspace:
		if len(e.promptBuf) > 0 {
			e.promptBuf = e.promptBuf[:len(e.promptBuf)-1]
		}
	case !ev.key.Arrow:
		e.promptBuf = append(e.promptBuf, ev.key.Code)
	}
	return "", false
}

// Run opens the window and runs play on its own goroutine until either
// finishes. It must be called from the main goroutine.
func (e *EbitenRenderer) Run(play func() error) error {
	result := make(chan error, 1)
	go func() {
		err := play()
		e.Close()
		result <- err
	}()

	if err := ebiten.RunGame(e); err != nil && !errors.Is(err, ebiten.Termination) {
		e.Close()
		<-result
		return err
	}
	// The window may have been closed by the player.
	e.Close()
	err := <-result
	log.Printf("window closed")
	return err
}

// Layout returns the game's logical screen size
func (e *EbitenRenderer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}
