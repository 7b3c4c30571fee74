// Package memory provides the flat world array. Every piece of session
// state lives in it: metadata, the position table, player memory and bot
// programs. A cell's value may be the address of another cell, so all
// indirection goes through the accessors in this package.
package memory

import (
	"errors"
	"fmt"
)

// Cell is one addressable slot of the world.
type Cell int64

// Address is an index into the world.
type Address int

// Metadata cells at the very start of the world.
const (
	PosPos Address = iota // address of the position table
	MaxX                  // map width
	MaxY                  // map height

	MetadataSize = 3
)

// ErrOutOfBounds is returned for any access outside [0, capacity).
var ErrOutOfBounds = errors.New("address out of bounds")

// AddressError reports the offending address of an out of bounds access.
type AddressError struct {
	Addr     Address
	Capacity int
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("address out of bounds: %d (capacity %d)", e.Addr, e.Capacity)
}

// Unwrap lets errors.Is match ErrOutOfBounds.
func (e *AddressError) Unwrap() error {
	return ErrOutOfBounds
}

// World is the single owned buffer of cells.
type World struct {
	cells []Cell
	bots  int
	bank  int
}

// New creates a zeroed world with the given capacity.
func New(capacity int) *World {
	if capacity < 0 {
		capacity = 0
	}
	return &World{cells: make([]Cell, capacity)}
}

// Len returns the world capacity
func (w *World) Len() int {
	return len(w.cells)
}

// Bots returns the number of bots the world was laid out with.
func (w *World) Bots() int {
	return w.bots
}

// BankSize returns the number of player memory bank slots.
func (w *World) BankSize() int {
	return w.bank
}

// SetShape records the bot count and bank size the layout used. The
// position table has one slot per bot.
func (w *World) SetShape(bots, bank int) {
	w.bots = bots
	w.bank = bank
}

// Contains reports whether a is a valid address.
func (w *World) Contains(a Address) bool {
	return a >= 0 && int(a) < len(w.cells)
}

func (w *World) check(a Address) error {
	if !w.Contains(a) {
		return &AddressError{Addr: a, Capacity: len(w.cells)}
	}
	return nil
}

// Read returns the value at a.
func (w *World) Read(a Address) (Cell, error) {
	if err := w.check(a); err != nil {
		return 0, err
	}
	return w.cells[a], nil
}

// Write sets the value at a.
func (w *World) Write(a Address, v Cell) error {
	if err := w.check(a); err != nil {
		return err
	}
	w.cells[a] = v
	return nil
}

// Add adds delta to the value at a.
func (w *World) Add(a Address, delta Cell) error {
	if err := w.check(a); err != nil {
		return err
	}
	w.cells[a] += delta
	return nil
}

// Pointer reads the cell at a and returns it as an address.
func (w *World) Pointer(a Address) (Address, error) {
	v, err := w.Read(a)
	if err != nil {
		return 0, err
	}
	return Address(v), nil
}

// Deref returns World[World[a]].
func (w *World) Deref(a Address) (Cell, error) {
	p, err := w.Pointer(a)
	if err != nil {
		return 0, err
	}
	return w.Read(p)
}

// Store writes v into the cell addressed by the value at a.
func (w *World) Store(a Address, v Cell) error {
	p, err := w.Pointer(a)
	if err != nil {
		return err
	}
	return w.Write(p, v)
}

// Snapshot returns a copy of every cell for read-only consumers.
func (w *World) Snapshot() []Cell {
	out := make([]Cell, len(w.cells))
	copy(out, w.cells)
	return out
}

// Width returns the map width stored in the metadata.
func (w *World) Width() (Cell, error) {
	return w.Read(MaxX)
}

// Height returns the map height stored in the metadata.
func (w *World) Height() (Cell, error) {
	return w.Read(MaxY)
}

// PositionTable returns the base address of the position table.
func (w *World) PositionTable() (Address, error) {
	return w.Pointer(PosPos)
}

// slot returns the position table slot holding id's base address.
func (w *World) slot(id Entity) (Address, error) {
	base, err := w.PositionTable()
	if err != nil {
		return 0, err
	}
	return base + Address(id), nil
}

// EntityAddress returns the base address the allocator chose for id.
func (w *World) EntityAddress(id Entity) (Address, error) {
	s, err := w.slot(id)
	if err != nil {
		return 0, err
	}
	return w.Pointer(s)
}

// Constant resolves id to its current literal value: the position table
// gives id's storage address, and that cell holds the value.
func (w *World) Constant(id Entity) (Cell, error) {
	a, err := w.EntityAddress(id)
	if err != nil {
		return 0, err
	}
	return w.Read(a)
}

// SetConstant writes v into id's storage cell.
func (w *World) SetConstant(id Entity, v Cell) error {
	a, err := w.EntityAddress(id)
	if err != nil {
		return err
	}
	return w.Write(a, v)
}

// ConstantAddress resolves id and interprets its value as an address, as
// for PlayerPos whose value is the player's location.
func (w *World) ConstantAddress(id Entity) (Address, error) {
	v, err := w.Constant(id)
	return Address(v), err
}
