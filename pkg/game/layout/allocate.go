package layout

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/zyedidia/generic/mapset"

	"putmop/pkg/game/memory"
)

// ErrCapacity is returned when the entities do not fit in the world.
var ErrCapacity = errors.New("world too small for layout")

// RandInt returns a uniform random integer in [0, n). A non-positive n
// yields 0, meaning no gap is left before the next placement.
func RandInt(rng *rand.Rand, n int) int {
	if n <= 0 {
		return 0
	}
	return rng.Intn(n)
}

// ShuffledOrder returns the identifiers [0, n) in Fisher-Yates order.
func ShuffledOrder(rng *rand.Rand, n int) []memory.Entity {
	order := make([]memory.Entity, n)
	for i := range order {
		order[i] = memory.Entity(i)
	}
	for i := n - 1; i > 0; i-- {
		j := RandInt(rng, i+1)
		order[i], order[j] = order[j], order[i]
	}
	return order
}

// Allocate places every entity in order. A random gap is drawn before
// each placement, sized so that the entity and all entities after it
// still fit; the cursor starts after the metadata region. The result is
// indexed by entity.
func Allocate(capacity int, sizes []int, order []memory.Entity, rng *rand.Rand) ([]memory.Address, error) {
	if len(order) != len(sizes) {
		return nil, fmt.Errorf("layout: order has %d entities, sizes has %d", len(order), len(sizes))
	}

	remaining := 0
	for _, s := range sizes {
		remaining += s
	}

	positions := make([]memory.Address, len(sizes))
	placed := mapset.New[memory.Entity]()
	cursor := memory.MetadataSize

	for _, id := range order {
		if int(id) < 0 || int(id) >= len(sizes) {
			return nil, fmt.Errorf("layout: entity %d outside size table", id)
		}
		if placed.Has(id) {
			return nil, fmt.Errorf("layout: entity %v placed twice", id)
		}
		placed.Put(id)

		cursor += RandInt(rng, capacity-(1+cursor+remaining))
		positions[id] = memory.Address(cursor)
		cursor += sizes[id]
		remaining -= sizes[id]
	}

	if cursor > capacity {
		return positions, fmt.Errorf("%w: need %d cells, have %d", ErrCapacity, cursor, capacity)
	}
	return positions, nil
}

// Region is the address range [Start, Start+Size) of one entity.
type Region struct {
	Entity memory.Entity
	Start  memory.Address
	Size   int
}

// Regions pairs the allocated positions with their sizes.
func Regions(positions []memory.Address, sizes []int) []Region {
	out := make([]Region, len(positions))
	for i, p := range positions {
		out[i] = Region{Entity: memory.Entity(i), Start: p, Size: sizes[i]}
	}
	return out
}

// Validate checks that every region lies inside the world and that no two
// regions share a cell.
func Validate(capacity int, regions []Region) error {
	owner := make(map[memory.Address]memory.Entity)
	occupied := mapset.New[memory.Address]()

	for _, r := range regions {
		if r.Start < memory.MetadataSize || int(r.Start)+r.Size > capacity {
			return fmt.Errorf("layout: %v at [%d, %d) outside world of %d cells",
				r.Entity, r.Start, int(r.Start)+r.Size, capacity)
		}
		for a := r.Start; a < r.Start+memory.Address(r.Size); a++ {
			if occupied.Has(a) {
				return fmt.Errorf("layout: %v overlaps %v at %d", r.Entity, owner[a], a)
			}
			occupied.Put(a)
			owner[a] = r.Entity
		}
	}
	return nil
}
