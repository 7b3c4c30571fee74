package layout

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	engineworld "putmop/pkg/engine/world"
	"putmop/pkg/game/memory"
)

func testGrid() engineworld.Grid {
	return engineworld.NewGrid(20, 40)
}

func TestRandInt_NonPositiveRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, n := range []int{0, -1, -500} {
		assert.Equal(t, 0, RandInt(rng, n), "RandInt(%d)", n)
	}
}

func TestRandInt_InRange(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 1000; i++ {
		v := RandInt(rng, 7)
		require.True(t, v >= 0 && v < 7, "RandInt(7) = %d", v)
	}
}

func TestShuffledOrder_IsPermutation(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	order := ShuffledOrder(rng, 35)
	seen := make(map[memory.Entity]bool)
	for _, id := range order {
		assert.False(t, seen[id], "duplicate %v", id)
		seen[id] = true
	}
	assert.Len(t, seen, 35)
}

func TestAllocate_Disjoint(t *testing.T) {
	opts := DefaultOptions()
	for seed := int64(0); seed < 50; seed++ {
		rng := rand.New(rand.NewSource(seed))
		plan := NewPlan(opts, 800, seed, 0)
		order := ShuffledOrder(rng, plan.Count())

		positions, err := Allocate(800, plan.Sizes, order, rng)
		require.NoError(t, err, "seed %d", seed)
		require.NoError(t, Validate(800, Regions(positions, plan.Sizes)), "seed %d", seed)
	}
}

func TestAllocate_ExactFit(t *testing.T) {
	sizes := []int{2, 3, 1}
	capacity := memory.MetadataSize + 6
	rng := rand.New(rand.NewSource(4))

	positions, err := Allocate(capacity, sizes, []memory.Entity{1, 0, 2}, rng)
	require.NoError(t, err)
	assert.Equal(t, []memory.Address{6, 3, 8}, positions)
}

func TestAllocate_CapacityShortfall(t *testing.T) {
	sizes := []int{5, 5, 5}
	rng := rand.New(rand.NewSource(5))

	_, err := Allocate(10, sizes, []memory.Entity{0, 1, 2}, rng)
	assert.ErrorIs(t, err, ErrCapacity)
}

func TestAllocate_RejectsMismatchedOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	_, err := Allocate(100, []int{1, 1}, []memory.Entity{0}, rng)
	assert.Error(t, err)

	_, err = Allocate(100, []int{1, 1}, []memory.Entity{0, 0}, rng)
	assert.Error(t, err)
}

func TestValidate_DetectsOverlap(t *testing.T) {
	regions := []Region{
		{Entity: 0, Start: 3, Size: 4},
		{Entity: 1, Start: 6, Size: 2},
	}
	assert.Error(t, Validate(100, regions))
}

func TestValidate_DetectsOutOfWorld(t *testing.T) {
	assert.Error(t, Validate(10, []Region{{Entity: 0, Start: 8, Size: 3}}))
	assert.Error(t, Validate(10, []Region{{Entity: 0, Start: 1, Size: 1}}))
}

func TestGenerate_PositionTableRoundTrip(t *testing.T) {
	opts := DefaultOptions()
	res, err := Generate(opts, testGrid(), 42)
	require.NoError(t, err)
	w := res.World

	for id := memory.Entity(0); int(id) < res.Plan.Count(); id++ {
		addr, err := w.EntityAddress(id)
		require.NoError(t, err)
		assert.Equal(t, res.Positions[id], addr, "address of %v", id)
	}

	// Single-cell entities read back exactly their initial value; bot
	// records and the table itself are rewritten after placement.
	skip := map[memory.Entity]bool{memory.Positions: true, memory.PlayerPosPtr: true}
	for id := memory.Entity(0); id < memory.Bots; id++ {
		if skip[id] {
			continue
		}
		v, err := w.Constant(id)
		require.NoError(t, err)
		assert.Equal(t, res.Plan.Initial[id], v, "constant %v", id)
	}

	v, err := w.Constant(memory.PlayerPosPtr)
	require.NoError(t, err)
	assert.Equal(t, memory.Cell(res.Positions[memory.PlayerPos]), v)
}

func TestGenerate_Metadata(t *testing.T) {
	grid := testGrid()
	res, err := Generate(DefaultOptions(), grid, 7)
	require.NoError(t, err)
	w := res.World

	table, err := w.PositionTable()
	require.NoError(t, err)
	assert.Equal(t, res.Positions[memory.Positions], table)

	width, _ := w.Width()
	height, _ := w.Height()
	assert.EqualValues(t, 40, width)
	assert.EqualValues(t, 20, height)
	assert.Equal(t, 5, w.Bots())

	pos, err := w.ConstantAddress(memory.PlayerPos)
	require.NoError(t, err)
	assert.EqualValues(t, grid.CenterIndex(), pos)

	seed, _ := w.Constant(memory.Seed)
	assert.EqualValues(t, 7, seed)
}

func TestGenerate_DeterministicUnderSeed(t *testing.T) {
	a, err := Generate(DefaultOptions(), testGrid(), 99)
	require.NoError(t, err)
	b, err := Generate(DefaultOptions(), testGrid(), 99)
	require.NoError(t, err)

	assert.Equal(t, a.Positions, b.Positions)
	assert.Equal(t, a.World.Snapshot(), b.World.Snapshot())
}

func TestGenerate_SeedsDiffer(t *testing.T) {
	a, err := Generate(DefaultOptions(), testGrid(), 1)
	require.NoError(t, err)
	b, err := Generate(DefaultOptions(), testGrid(), 2)
	require.NoError(t, err)
	assert.NotEqual(t, a.Positions, b.Positions)
}

func TestGenerate_TooSmall(t *testing.T) {
	_, err := Generate(DefaultOptions(), engineworld.NewGrid(3, 10), 1)
	assert.ErrorIs(t, err, ErrCapacity)
}

func TestInitBots_Random(t *testing.T) {
	opts := DefaultOptions()
	res, err := Generate(opts, testGrid(), 11)
	require.NoError(t, err)
	w := res.World

	end, _ := w.Constant(memory.BotProgramEnd)
	for i := 0; i < opts.Bots; i++ {
		base, err := w.BotBase(i)
		require.NoError(t, err)

		pos, _ := w.Read(base + memory.BotPos)
		assert.True(t, w.Contains(memory.Address(pos)), "bot %d at %d", i, pos)

		pc, _ := w.Read(base + memory.BotProgramCounter)
		assert.EqualValues(t, 0, pc)

		last, _ := w.Read(base + memory.BotProgram + memory.Address(opts.ProgramLength-1))
		assert.Equal(t, end, last, "bot %d program end", i)
	}
}

func TestInitBots_Scripted(t *testing.T) {
	opts := DefaultOptions()
	opts.BotMode = BotsScripted
	res, err := Generate(opts, testGrid(), 12)
	require.NoError(t, err)
	w := res.World

	left, _ := w.Constant(memory.MoveLeftKey)
	down, _ := w.Constant(memory.MoveDownKey)
	for i := 0; i < opts.Bots; i++ {
		base, _ := w.BotBase(i)
		pos, _ := w.Read(base + memory.BotPos)
		assert.EqualValues(t, ScriptedStart, pos)

		first, _ := w.Read(base + memory.BotProgram)
		second, _ := w.Read(base + memory.BotProgram + 1)
		assert.Equal(t, left, first)
		assert.Equal(t, down, second)
	}
}

func TestNewPlan_Sizes(t *testing.T) {
	opts := DefaultOptions()
	plan := NewPlan(opts, 1000, 0, 0)

	assert.Equal(t, memory.InhabitedCount(5), plan.Count())
	assert.Equal(t, 10, plan.Sizes[memory.PlayerCells])
	assert.Equal(t, 10, plan.Sizes[memory.IsPointer])
	assert.Equal(t, plan.Count(), plan.Sizes[memory.Positions])
	assert.Equal(t, memory.BotRecordSize+5, plan.Sizes[memory.BotEntity(0)])
	assert.Equal(t, 1, plan.Sizes[memory.WinFlag])
	assert.EqualValues(t, 'l', plan.Initial[memory.MoveRightKey])
	assert.EqualValues(t, 1, plan.Initial[memory.WinFlag])
}
