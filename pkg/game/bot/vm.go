// Package bot runs the tiny programs embedded in each bot record, one
// instruction per bot per turn.
//
// Two quirks belong to the instruction set. The program-end instruction sets the
// counter to -1, so the step's own increment restarts the program from the
// top on the next turn. And the if/else skip stops at the first block
// terminator it meets, so nested conditionals are not balanced.
package bot

import (
	"fmt"

	"putmop/pkg/game/command"
	"putmop/pkg/game/memory"
)

// Record addresses one bot's registers in the world.
type Record struct {
	w    *memory.World
	Base memory.Address
}

// Load returns the record of bot i.
func Load(w *memory.World, i int) (Record, error) {
	base, err := w.BotBase(i)
	if err != nil {
		return Record{}, err
	}
	return Record{w: w, Base: base}, nil
}

func (r Record) reg(off memory.Address) memory.Address {
	return r.Base + off
}

// Position returns the bot's grid position register.
func (r Record) Position() (memory.Address, error) {
	return r.w.Pointer(r.reg(memory.BotPos))
}

// ProgramCounter returns the index of the next instruction.
func (r Record) ProgramCounter() (memory.Cell, error) {
	return r.w.Read(r.reg(memory.BotProgramCounter))
}

// Instruction returns the instruction under the program counter.
func (r Record) Instruction() (memory.Cell, error) {
	pc, err := r.ProgramCounter()
	if err != nil {
		return 0, err
	}
	return r.w.Read(r.reg(memory.BotProgram) + memory.Address(pc))
}

// Step advances bot i by exactly one instruction.
func Step(w *memory.World, i int) error {
	r, err := Load(w, i)
	if err != nil {
		return fmt.Errorf("bot %d: %w", i, err)
	}
	if err := r.step(); err != nil {
		return fmt.Errorf("bot %d: %w", i, err)
	}
	return nil
}

// StepAll advances every bot once, in order.
func StepAll(w *memory.World) error {
	for i := 0; i < w.Bots(); i++ {
		if err := Step(w, i); err != nil {
			return err
		}
	}
	return nil
}

func (r Record) step() error {
	code, err := r.Instruction()
	if err != nil {
		return err
	}
	cmd, err := command.Resolve(r.w, code)
	if err != nil {
		return err
	}

	if err := r.execute(cmd); err != nil {
		return err
	}
	return r.w.Add(r.reg(memory.BotProgramCounter), 1)
}

func (r Record) execute(cmd command.Command) error {
	w := r.w

	switch cmd {
	case command.MoveRight, command.MoveUp, command.MoveDown, command.MoveLeft:
		return command.Move(w, r.reg(memory.BotPos), cmd)

	case command.LoadValue:
		v, err := w.Deref(r.reg(memory.BotPos))
		if err != nil {
			return err
		}
		return r.load(v, 0)

	case command.LoadPointer:
		pos, err := w.Read(r.reg(memory.BotPos))
		if err != nil {
			return err
		}
		return r.load(pos, 1)

	case command.StoreValue:
		pointer, err := r.pointerMode()
		if err != nil {
			return err
		}
		var v memory.Cell
		if pointer {
			v, err = w.Deref(r.reg(memory.BotCellVal))
		} else {
			v, err = w.Read(r.reg(memory.BotCellVal))
		}
		if err != nil {
			return err
		}
		return w.Store(r.reg(memory.BotPos), v)

	case command.StoreCell:
		pointer, err := r.pointerMode()
		if err != nil {
			return err
		}
		var v memory.Cell
		if pointer {
			v, err = w.Deref(r.reg(memory.BotPos))
		} else {
			v, err = w.Read(r.reg(memory.BotPos))
		}
		if err != nil {
			return err
		}
		return w.Store(r.reg(memory.BotCellVal), v)

	case command.IfTest, command.ElseTest:
		b, err := w.Deref(r.reg(memory.BotBool))
		if err != nil {
			return err
		}
		if (cmd == command.IfTest) == (b == 0) {
			return Skip(w, r)
		}
		return nil

	case command.ProgramEnd:
		return w.Write(r.reg(memory.BotProgramCounter), memory.Halted)
	}

	// Unknown codes are a no-op step.
	return nil
}

func (r Record) load(v memory.Cell, flag memory.Cell) error {
	if err := r.w.Write(r.reg(memory.BotCellVal), v); err != nil {
		return err
	}
	return r.w.Write(r.reg(memory.BotFlagVal), flag)
}

func (r Record) pointerMode() (bool, error) {
	f, err := r.w.Read(r.reg(memory.BotFlagVal))
	return f != 0, err
}

// Skip moves the program counter past the current if or else instruction
// to the first program-end, else or if-end code after it. The step's own
// increment then moves past that terminator.
func Skip(w *memory.World, r Record) error {
	for {
		if err := w.Add(r.reg(memory.BotProgramCounter), 1); err != nil {
			return err
		}
		code, err := r.Instruction()
		if err != nil {
			return err
		}
		end, err := command.IsTerminator(w, code)
		if err != nil {
			return err
		}
		if end {
			return nil
		}
	}
}
