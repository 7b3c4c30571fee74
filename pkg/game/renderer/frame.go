// Package renderer turns the world into frames for the display backends.
package renderer

import (
	"fmt"
	"strings"

	"github.com/zyedidia/generic/mapset"

	engineworld "putmop/pkg/engine/world"
	"putmop/pkg/game/memory"
	"putmop/pkg/game/player"
)

// StatusFieldWidth is the width of one memory bank field in the status bar.
const StatusFieldWidth = 22

// Tile is one drawn map cell.
type Tile struct {
	Glyph rune
	Style TextStyle
}

// Frame is everything a backend needs to draw one turn.
type Frame struct {
	Grid  engineworld.Grid
	Tiles []Tile // row-major, Grid.Size() long

	// Effective value of every memory bank slot.
	Status []memory.Cell

	Turn        int
	PlayerValue memory.Cell
	Message     string
}

// Row returns the glyphs of one map row as a string.
func (f *Frame) Row(row int) string {
	var sb strings.Builder
	cols := f.Grid.Cols()
	for _, t := range f.Tiles[row*cols : (row+1)*cols] {
		sb.WriteRune(t.Glyph)
	}
	return sb.String()
}

// BuildFrame renders w. The player and every bot standing on the map are
// drawn with the resolved player symbol; everything else through Glyph.
func BuildFrame(w *memory.World, turn int, message string) (*Frame, error) {
	width, err := w.Width()
	if err != nil {
		return nil, err
	}
	height, err := w.Height()
	if err != nil {
		return nil, err
	}
	// Checked in cells before NewGrid so a huge width cannot overflow the
	// product.
	capacity := memory.Cell(w.Len())
	if width < 0 || height < 0 || width > capacity || height > capacity ||
		(width > 0 && height > capacity/width) {
		return nil, fmt.Errorf("renderer: %dx%d map does not fit a world of %d cells: %w",
			width, height, capacity, memory.ErrOutOfBounds)
	}
	grid := engineworld.NewGrid(int(height), int(width))

	symbol, err := w.Constant(memory.PlayerSymbol)
	if err != nil {
		return nil, err
	}
	playerPos, err := w.ConstantAddress(memory.PlayerPos)
	if err != nil {
		return nil, err
	}

	bots := mapset.New[memory.Address]()
	for i := 0; i < w.Bots(); i++ {
		pos, err := w.BotPosition(i)
		if err != nil {
			return nil, err
		}
		if grid.Contains(int(pos)) {
			bots.Put(pos)
		}
	}

	f := &Frame{
		Grid:  grid,
		Tiles: make([]Tile, grid.Size()),
		Turn:  turn,
	}
	f.Message = message

	for i := range f.Tiles {
		a := memory.Address(i)
		switch {
		case a == playerPos:
			f.Tiles[i] = Tile{Glyph: rune(symbol), Style: StylePlayer}
		case bots.Has(a):
			f.Tiles[i] = Tile{Glyph: rune(symbol), Style: StyleBot}
		default:
			v, _ := w.Read(a)
			style := StyleCell
			if v == 0 {
				style = StyleEmpty
			}
			f.Tiles[i] = Tile{Glyph: Glyph(v), Style: style}
		}
	}

	f.Status = make([]memory.Cell, w.BankSize())
	for i := range f.Status {
		v, err := player.Effective(w, i)
		if err != nil {
			return nil, err
		}
		f.Status[i] = v
	}

	f.PlayerValue, err = w.Constant(memory.PlayerValue)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// StatusLines lays out the bank values as fixed-width fields, wrapping
// to a new line whenever the next field would pass width.
func StatusLines(values []memory.Cell, width int) []string {
	perLine := width / StatusFieldWidth
	if perLine < 1 {
		perLine = 1
	}

	var lines []string
	var sb strings.Builder
	for i, v := range values {
		if i > 0 && i%perLine == 0 {
			lines = append(lines, sb.String())
			sb.Reset()
		}
		fmt.Fprintf(&sb, "%*d", StatusFieldWidth, v)
	}
	if sb.Len() > 0 {
		lines = append(lines, sb.String())
	}
	return lines
}
