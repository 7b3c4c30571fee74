package layout

import (
	"fmt"
	"math/rand"

	engineworld "putmop/pkg/engine/world"
	"putmop/pkg/game/memory"
)

// Result describes a generated world
type Result struct {
	World     *memory.World
	Positions []memory.Address
	Plan      Plan
	Seed      int64
}

// Generate builds a world filling grid, laid out from seed. The same
// options, grid and seed always produce the same world.
func Generate(opts Options, grid engineworld.Grid, seed int64) (*Result, error) {
	if opts.Bots < 0 || opts.MemoryCells < 0 || opts.ProgramLength < 0 {
		return nil, fmt.Errorf("layout: negative option in %+v", opts)
	}

	rng := rand.New(rand.NewSource(seed))
	capacity := grid.Size()

	plan := NewPlan(opts, capacity, seed, grid.CenterIndex())
	order := ShuffledOrder(rng, plan.Count())

	positions, err := Allocate(capacity, plan.Sizes, order, rng)
	if err != nil {
		return nil, err
	}
	if err := Validate(capacity, Regions(positions, plan.Sizes)); err != nil {
		return nil, err
	}

	w := memory.New(capacity)
	w.SetShape(opts.Bots, opts.MemoryCells)

	for _, id := range order {
		if err := w.Write(positions[id], plan.Initial[id]); err != nil {
			return nil, fmt.Errorf("layout: initial value of %v: %w", id, err)
		}
	}

	table := positions[memory.Positions]
	for id, p := range positions {
		if err := w.Write(table+memory.Address(id), memory.Cell(p)); err != nil {
			return nil, fmt.Errorf("layout: position table: %w", err)
		}
	}

	if err := w.Write(memory.PosPos, memory.Cell(table)); err != nil {
		return nil, err
	}
	if err := w.Write(memory.MaxX, memory.Cell(grid.Cols())); err != nil {
		return nil, err
	}
	if err := w.Write(memory.MaxY, memory.Cell(grid.Rows())); err != nil {
		return nil, err
	}

	// The pointer to the player position cell can only be known once
	// everything is placed.
	if err := w.SetConstant(memory.PlayerPosPtr, memory.Cell(positions[memory.PlayerPos])); err != nil {
		return nil, err
	}

	if err := InitBots(w, opts, rng); err != nil {
		return nil, err
	}

	return &Result{World: w, Positions: positions, Plan: plan, Seed: seed}, nil
}

// randomCommand draws one of the key identifiers a bot program may use.
func randomCommand(rng *rand.Rand) memory.Entity {
	return memory.Entity(RandInt(rng, int(memory.LastCommandKey)+1))
}

// InitBots writes start positions and programs into every bot record.
func InitBots(w *memory.World, opts Options, rng *rand.Rand) error {
	end, err := w.Constant(memory.BotProgramEnd)
	if err != nil {
		return err
	}

	for i := 0; i < opts.Bots; i++ {
		base, err := w.BotBase(i)
		if err != nil {
			return err
		}

		var start int
		var program []memory.Cell

		switch opts.BotMode {
		case BotsScripted:
			start = ScriptedStart % max(w.Len(), 1)
			for _, id := range []memory.Entity{memory.MoveLeftKey, memory.MoveDownKey} {
				v, err := w.Constant(id)
				if err != nil {
					return err
				}
				program = append(program, v)
			}
		default:
			start = RandInt(rng, w.Len())
			for j := 0; j < opts.ProgramLength-2; j++ {
				v, err := w.Constant(randomCommand(rng))
				if err != nil {
					return err
				}
				program = append(program, v)
			}
		}

		if err := w.Write(base+memory.BotPos, memory.Cell(start)); err != nil {
			return err
		}
		if err := w.Write(base+memory.BotProgramCounter, 0); err != nil {
			return err
		}
		for j, v := range program {
			if j >= opts.ProgramLength {
				break
			}
			if err := w.Write(base+memory.BotProgram+memory.Address(j), v); err != nil {
				return err
			}
		}
		if opts.ProgramLength > 0 {
			last := base + memory.BotProgram + memory.Address(opts.ProgramLength-1)
			if err := w.Write(last, end); err != nil {
				return err
			}
		}
	}
	return nil
}
