// Package command turns a raw instruction code or keystroke into one of a
// closed set of commands. Command codes are not fixed: each is the current
// value of a constant cell in the world, so rebinding a key in memory
// changes what every interpreter understands.
package command

import (
	"putmop/pkg/engine/world"
	"putmop/pkg/game/memory"
)

// Command is a decoded instruction.
type Command int

const (
	None Command = iota

	// Movement
	MoveRight
	MoveUp
	MoveDown
	MoveLeft

	// Memory
	LoadValue
	LoadPointer
	StoreValue
	StoreCell

	// Control flow
	IfTest
	ElseTest
	ProgramEnd
)

// binding ties a command to the entity holding its code.
type binding struct {
	cmd Command
	id  memory.Entity
}

// priority is the order codes are compared in; the first match wins when
// two constants hold the same value.
var priority = []binding{
	{MoveRight, memory.MoveRightKey},
	{MoveUp, memory.MoveUpKey},
	{MoveDown, memory.MoveDownKey},
	{MoveLeft, memory.MoveLeftKey},
	{LoadValue, memory.PutCellValKey},
	{LoadPointer, memory.PutCellPointerKey},
	{StoreValue, memory.PutValKey},
	{StoreCell, memory.UpdateCellKey},
	{IfTest, memory.IfTestKey},
	{ElseTest, memory.ElseTestKey},
	{ProgramEnd, memory.BotProgramEnd},
}

// Resolve decodes code against the world's current command constants.
// A code matching nothing is None, not an error; errors only come from
// memory faults while resolving.
func Resolve(w *memory.World, code memory.Cell) (Command, error) {
	for _, b := range priority {
		v, err := w.Constant(b.id)
		if err != nil {
			return None, err
		}
		if v == code {
			return b.cmd, nil
		}
	}
	return None, nil
}

// Entity returns the constant holding the code for c.
func (c Command) Entity() (memory.Entity, bool) {
	for _, b := range priority {
		if b.cmd == c {
			return b.id, true
		}
	}
	return 0, false
}

// Code returns the current code of c in w.
func Code(w *memory.World, c Command) (memory.Cell, error) {
	id, ok := c.Entity()
	if !ok {
		return 0, nil
	}
	return w.Constant(id)
}

// IsTerminator reports whether code ends an if or else block: the
// program-end, else and if-end codes.
func IsTerminator(w *memory.World, code memory.Cell) (bool, error) {
	for _, id := range []memory.Entity{memory.BotProgramEnd, memory.ElseTestKey, memory.IfEndKey} {
		v, err := w.Constant(id)
		if err != nil {
			return false, err
		}
		if v == code {
			return true, nil
		}
	}
	return false, nil
}

// Direction returns the map direction of a movement command.
func (c Command) Direction() (world.Direction, bool) {
	switch c {
	case MoveRight:
		return world.East, true
	case MoveUp:
		return world.North, true
	case MoveDown:
		return world.South, true
	case MoveLeft:
		return world.West, true
	default:
		return 0, false
	}
}

// FromDirection returns the movement command for a direction
func FromDirection(d world.Direction) Command {
	switch d {
	case world.North:
		return MoveUp
	case world.East:
		return MoveRight
	case world.South:
		return MoveDown
	case world.West:
		return MoveLeft
	default:
		return None
	}
}

// IsMove reports whether c is a movement command
func (c Command) IsMove() bool {
	_, ok := c.Direction()
	return ok
}

// Move shifts the position stored at posAddr by the resolved move length,
// scaled by the map width for vertical moves. Non-movement commands leave
// the world untouched.
func Move(w *memory.World, posAddr memory.Address, c Command) error {
	dir, ok := c.Direction()
	if !ok {
		return nil
	}
	step, err := w.Constant(memory.MoveLength)
	if err != nil {
		return err
	}
	width, err := w.Width()
	if err != nil {
		return err
	}
	return w.Add(posAddr, memory.Cell(dir.Offset(int(width), int(step))))
}

// String returns a human-friendly name for a command.
func (c Command) String() string {
	switch c {
	case MoveRight:
		return "Move Right"
	case MoveUp:
		return "Move Up"
	case MoveDown:
		return "Move Down"
	case MoveLeft:
		return "Move Left"
	case LoadValue:
		return "Load Value"
	case LoadPointer:
		return "Load Pointer"
	case StoreValue:
		return "Store Value"
	case StoreCell:
		return "Store Cell"
	case IfTest:
		return "If"
	case ElseTest:
		return "Else"
	case ProgramEnd:
		return "Program End"
	default:
		return "None"
	}
}
