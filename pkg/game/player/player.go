// Package player applies the player's keystrokes to the world. Keys are
// decoded with the same resolved constants the bots use, but act on the
// player position and the player's memory bank.
package player

import (
	"fmt"

	engineworld "putmop/pkg/engine/world"
	"putmop/pkg/game/command"
	"putmop/pkg/game/memory"
)

// Prompter collects one typed line after showing a prompt glyph.
type Prompter interface {
	Prompt(glyph rune) (string, error)
}

// Key is one keystroke. Arrow keys carry a direction instead of a code.
type Key struct {
	Code  memory.Cell
	Arrow bool
	Dir   engineworld.Direction
}

// CodeKey returns a key for a plain character.
func CodeKey(r rune) Key {
	return Key{Code: memory.Cell(r)}
}

// ArrowKey returns a key for an arrow.
func ArrowKey(d engineworld.Direction) Key {
	return Key{Arrow: true, Dir: d}
}

// Result describes what a keystroke did.
type Result struct {
	Command command.Command
	Slot    memory.Cell // bank slot touched by load and update commands
	Value   memory.Cell // value written
}

// Interpret decodes key and applies it. Prompted commands read all their
// input before touching the world. Keys matching no command are a no-op.
func Interpret(w *memory.World, key Key, in Prompter) (Result, error) {
	code := key.Code
	if key.Arrow {
		// Arrows follow whatever the move keys are bound to.
		c, err := command.Code(w, command.FromDirection(key.Dir))
		if err != nil {
			return Result{}, err
		}
		code = c
	}

	cmd, err := command.Resolve(w, code)
	if err != nil {
		return Result{}, err
	}
	res := Result{Command: cmd}

	posAddr, err := w.EntityAddress(memory.PlayerPos)
	if err != nil {
		return res, err
	}

	switch cmd {
	case command.MoveRight, command.MoveUp, command.MoveDown, command.MoveLeft:
		return res, command.Move(w, posAddr, cmd)

	case command.LoadValue, command.LoadPointer:
		slot, err := promptInt(in, rune(code))
		if err != nil {
			return res, err
		}
		res.Slot = slot

		var v, flag memory.Cell
		if cmd == command.LoadPointer {
			v, err = w.Read(posAddr)
			flag = 1
		} else {
			v, err = w.Deref(posAddr)
		}
		if err != nil {
			return res, err
		}
		res.Value = v
		return res, writeSlot(w, slot, v, flag)

	case command.StoreValue:
		v, err := promptInt(in, rune(code))
		if err != nil {
			return res, err
		}
		res.Value = v
		return res, w.Store(posAddr, v)

	case command.StoreCell:
		slot, err := promptInt(in, rune(code))
		if err != nil {
			return res, err
		}
		v, err := promptInt(in, rune(code))
		if err != nil {
			return res, err
		}
		res.Slot, res.Value = slot, v
		return res, updateSlot(w, slot, v)
	}

	return Result{Command: command.None}, nil
}

func promptInt(in Prompter, glyph rune) (memory.Cell, error) {
	if in == nil {
		return 0, fmt.Errorf("player: no input for prompt %q", glyph)
	}
	s, err := in.Prompt(glyph)
	if err != nil {
		return 0, err
	}
	return ParseInt(s), nil
}

// bankCell returns the address of slot in the bank id. The slot is an
// offset from the bank base; only the world bounds are enforced.
func bankCell(w *memory.World, id memory.Entity, slot memory.Cell) (memory.Address, error) {
	base, err := w.EntityAddress(id)
	if err != nil {
		return 0, err
	}
	return base + memory.Address(slot), nil
}

func writeSlot(w *memory.World, slot, v, flag memory.Cell) error {
	cell, err := bankCell(w, memory.PlayerCells, slot)
	if err != nil {
		return err
	}
	ptr, err := bankCell(w, memory.IsPointer, slot)
	if err != nil {
		return err
	}
	if err := w.Write(cell, v); err != nil {
		return err
	}
	return w.Write(ptr, flag)
}

func updateSlot(w *memory.World, slot, v memory.Cell) error {
	cell, err := bankCell(w, memory.PlayerCells, slot)
	if err != nil {
		return err
	}
	ptr, err := bankCell(w, memory.IsPointer, slot)
	if err != nil {
		return err
	}
	flag, err := w.Read(ptr)
	if err != nil {
		return err
	}
	if flag != 0 {
		return w.Store(cell, v)
	}
	return w.Write(cell, v)
}

// Effective returns the value of bank slot i as shown to the player: the
// addressed cell when the slot's is-pointer flag is 1, else the literal.
func Effective(w *memory.World, i int) (memory.Cell, error) {
	cell, err := bankCell(w, memory.PlayerCells, memory.Cell(i))
	if err != nil {
		return 0, err
	}
	ptr, err := bankCell(w, memory.IsPointer, memory.Cell(i))
	if err != nil {
		return 0, err
	}
	flag, err := w.Read(ptr)
	if err != nil {
		return 0, err
	}
	if flag == 1 {
		return w.Deref(cell)
	}
	return w.Read(cell)
}
