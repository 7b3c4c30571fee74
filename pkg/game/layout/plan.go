// Package layout carves the world into disjoint, randomly placed regions,
// one per entity, and fills in their initial values.
package layout

import (
	"putmop/pkg/game/memory"
)

// BotMode selects how bot programs are initialised
type BotMode string

// Bot modes
const (
	BotsRandom   BotMode = "random"
	BotsScripted BotMode = "scripted"
)

// ScriptedStart is the start cell of every scripted bot.
const ScriptedStart = 50

// Options are the tunables of a layout
type Options struct {
	MemoryCells   int // player memory bank slots
	Bots          int
	ProgramLength int // initial program cells per bot
	BotMode       BotMode

	// Initial values for the command keys, indexed by entity.
	Keys map[memory.Entity]memory.Cell

	PlayerSymbol memory.Cell
	MoveLength   memory.Cell
}

// DefaultKeys are the vi-style bindings of a fresh world
func DefaultKeys() map[memory.Entity]memory.Cell {
	return map[memory.Entity]memory.Cell{
		memory.MoveLeftKey:       'h',
		memory.MoveRightKey:      'l',
		memory.MoveUpKey:         'k',
		memory.MoveDownKey:       'j',
		memory.PutValKey:         'p',
		memory.PutCellValKey:     'c',
		memory.PutCellPointerKey: 'C',
		memory.UpdateCellKey:     'e',
		memory.IfTestKey:         '?',
		memory.ElseTestKey:       ':',
	}
}

// DefaultOptions returns the layout of the original game
func DefaultOptions() Options {
	return Options{
		MemoryCells:   10,
		Bots:          5,
		ProgramLength: 5,
		BotMode:       BotsRandom,
		Keys:          DefaultKeys(),
		PlayerSymbol:  '@',
		MoveLength:    1,
	}
}

// Plan holds the per-entity size and initial value tables.
type Plan struct {
	Sizes   []int
	Initial []memory.Cell
}

// Count returns the number of entities in the plan
func (p Plan) Count() int {
	return len(p.Sizes)
}

// Total returns the number of cells every entity needs together
func (p Plan) Total() int {
	total := 0
	for _, s := range p.Sizes {
		total += s
	}
	return total
}

// NewPlan builds the size and initial value tables for a world of the
// given capacity. The seed is recorded in the Seed cell.
func NewPlan(opts Options, capacity int, seed int64, playerStart int) Plan {
	n := memory.InhabitedCount(opts.Bots)
	p := Plan{
		Sizes:   make([]int, n),
		Initial: make([]memory.Cell, n),
	}

	for i := range p.Sizes {
		p.Sizes[i] = 1
	}
	p.Sizes[memory.PlayerCells] = opts.MemoryCells
	p.Sizes[memory.IsPointer] = opts.MemoryCells
	p.Sizes[memory.Positions] = n
	for i := 0; i < opts.Bots; i++ {
		p.Sizes[memory.BotEntity(i)] = memory.BotRecordSize + opts.ProgramLength
	}

	for id, v := range opts.Keys {
		if int(id) >= 0 && int(id) < n {
			p.Initial[id] = v
		}
	}
	p.Initial[memory.BotProgramEnd] = 0
	p.Initial[memory.MoveLength] = opts.MoveLength
	p.Initial[memory.WinFlag] = 1
	p.Initial[memory.PlayerSymbol] = opts.PlayerSymbol
	p.Initial[memory.WorldSize] = memory.Cell(capacity)
	p.Initial[memory.Seed] = memory.Cell(seed)
	p.Initial[memory.PlayerPos] = memory.Cell(playerStart)

	return p
}
