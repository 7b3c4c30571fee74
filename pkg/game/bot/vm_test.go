package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	engineworld "putmop/pkg/engine/world"
	"putmop/pkg/game/layout"
	"putmop/pkg/game/memory"
)

type fixture struct {
	w   *memory.World
	res *layout.Result
	rec Record
}

// newFixture lays out a 20-wide world with move length 1 and returns
// bot 0's record.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	opts := layout.DefaultOptions()
	opts.BotMode = layout.BotsScripted
	res, err := layout.Generate(opts, engineworld.NewGrid(12, 20), 3)
	require.NoError(t, err)

	rec, err := Load(res.World, 0)
	require.NoError(t, err)
	return &fixture{w: res.World, res: res, rec: rec}
}

func (f *fixture) set(t *testing.T, off memory.Address, v memory.Cell) {
	t.Helper()
	require.NoError(t, f.w.Write(f.rec.Base+off, v))
}

func (f *fixture) get(t *testing.T, off memory.Address) memory.Cell {
	t.Helper()
	v, err := f.w.Read(f.rec.Base + off)
	require.NoError(t, err)
	return v
}

func (f *fixture) code(t *testing.T, id memory.Entity) memory.Cell {
	t.Helper()
	v, err := f.w.Constant(id)
	require.NoError(t, err)
	return v
}

// program writes codes into the program area and rewinds the counter.
func (f *fixture) program(t *testing.T, codes ...memory.Cell) {
	t.Helper()
	for i, c := range codes {
		f.set(t, memory.BotProgram+memory.Address(i), c)
	}
	f.set(t, memory.BotProgramCounter, 0)
}

// freeCells returns n consecutive addresses that belong to no entity.
func (f *fixture) freeCells(t *testing.T, n int) memory.Address {
	t.Helper()
	used := make(map[memory.Address]bool)
	for _, r := range layout.Regions(f.res.Positions, f.res.Plan.Sizes) {
		for a := r.Start; a < r.Start+memory.Address(r.Size); a++ {
			used[a] = true
		}
	}
	for a := memory.Address(memory.MetadataSize); int(a)+n <= f.w.Len(); a++ {
		ok := true
		for k := memory.Address(0); k < memory.Address(n); k++ {
			if used[a+k] {
				ok = false
				break
			}
		}
		if ok {
			return a
		}
	}
	t.Fatalf("no %d free cells", n)
	return 0
}

func TestStep_MoveUp(t *testing.T) {
	f := newFixture(t)
	f.program(t, f.code(t, memory.MoveUpKey))
	f.set(t, memory.BotPos, 25)

	require.NoError(t, Step(f.w, 0))

	assert.EqualValues(t, 5, f.get(t, memory.BotPos))
	assert.EqualValues(t, 1, f.get(t, memory.BotProgramCounter))
}

func TestStep_Movement(t *testing.T) {
	tests := []struct {
		key  memory.Entity
		want memory.Cell
	}{
		{memory.MoveRightKey, 26},
		{memory.MoveLeftKey, 24},
		{memory.MoveDownKey, 45},
		{memory.MoveUpKey, 5},
	}
	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			f := newFixture(t)
			f.program(t, f.code(t, tt.key))
			f.set(t, memory.BotPos, 25)
			require.NoError(t, Step(f.w, 0))
			assert.Equal(t, tt.want, f.get(t, memory.BotPos))
		})
	}
}

func TestStep_UnknownCodeOnlyAdvancesCounter(t *testing.T) {
	f := newFixture(t)
	f.program(t, 'z')
	f.set(t, memory.BotPos, 25)

	before := f.w.Snapshot()
	require.NoError(t, Step(f.w, 0))
	after := f.w.Snapshot()

	pc := int(f.rec.Base + memory.BotProgramCounter)
	for i := range before {
		if i == pc {
			assert.Equal(t, before[i]+1, after[i], "program counter")
			continue
		}
		assert.Equal(t, before[i], after[i], "cell %d changed", i)
	}
}

func TestStep_ProgramEndRestarts(t *testing.T) {
	f := newFixture(t)
	end := f.code(t, memory.BotProgramEnd)
	f.program(t, f.code(t, memory.MoveRightKey), end)
	f.set(t, memory.BotPos, 25)

	require.NoError(t, Step(f.w, 0))
	assert.EqualValues(t, 1, f.get(t, memory.BotProgramCounter))

	require.NoError(t, Step(f.w, 0))
	assert.EqualValues(t, 0, f.get(t, memory.BotProgramCounter), "halted bot wraps to the top")

	require.NoError(t, Step(f.w, 0))
	assert.EqualValues(t, 27, f.get(t, memory.BotPos), "program ran again")
}

func TestStep_LoadValue(t *testing.T) {
	f := newFixture(t)
	p := f.freeCells(t, 1)
	require.NoError(t, f.w.Write(p, 99))
	f.program(t, f.code(t, memory.PutCellValKey))
	f.set(t, memory.BotPos, memory.Cell(p))

	require.NoError(t, Step(f.w, 0))
	assert.EqualValues(t, 99, f.get(t, memory.BotCellVal))
	assert.EqualValues(t, 0, f.get(t, memory.BotFlagVal))
}

func TestStep_LoadPointerThenUpdate(t *testing.T) {
	f := newFixture(t)
	p := f.freeCells(t, 2)
	require.NoError(t, f.w.Write(p, 11))
	require.NoError(t, f.w.Write(p+1, 77))

	f.program(t,
		f.code(t, memory.PutCellPointerKey),
		f.code(t, memory.MoveRightKey),
		f.code(t, memory.UpdateCellKey),
	)
	f.set(t, memory.BotPos, memory.Cell(p))

	require.NoError(t, Step(f.w, 0))
	assert.EqualValues(t, p, f.get(t, memory.BotCellVal), "captures the address")
	assert.EqualValues(t, 1, f.get(t, memory.BotFlagVal))

	require.NoError(t, Step(f.w, 0))
	require.NoError(t, Step(f.w, 0))

	v, err := f.w.Read(p)
	require.NoError(t, err)
	assert.EqualValues(t, 77, v, "cell at P takes the value under the bot's current position")
	assert.NotEqualValues(t, p, v)
}

func TestStep_UpdateLiteral(t *testing.T) {
	f := newFixture(t)
	p := f.freeCells(t, 1)
	f.program(t, f.code(t, memory.UpdateCellKey))
	f.set(t, memory.BotPos, 25)
	f.set(t, memory.BotCellVal, memory.Cell(p))
	f.set(t, memory.BotFlagVal, 0)

	require.NoError(t, Step(f.w, 0))
	v, _ := f.w.Read(p)
	assert.EqualValues(t, 25, v, "literal mode writes the position itself")
}

func TestStep_StoreValue(t *testing.T) {
	t.Run("literal", func(t *testing.T) {
		f := newFixture(t)
		p := f.freeCells(t, 1)
		f.program(t, f.code(t, memory.PutValKey))
		f.set(t, memory.BotPos, memory.Cell(p))
		f.set(t, memory.BotCellVal, 123)
		f.set(t, memory.BotFlagVal, 0)

		require.NoError(t, Step(f.w, 0))
		v, _ := f.w.Read(p)
		assert.EqualValues(t, 123, v)
	})

	t.Run("pointer", func(t *testing.T) {
		f := newFixture(t)
		p := f.freeCells(t, 2)
		require.NoError(t, f.w.Write(p+1, 55))
		f.program(t, f.code(t, memory.PutValKey))
		f.set(t, memory.BotPos, memory.Cell(p))
		f.set(t, memory.BotCellVal, memory.Cell(p+1))
		f.set(t, memory.BotFlagVal, 1)

		require.NoError(t, Step(f.w, 0))
		v, _ := f.w.Read(p)
		assert.EqualValues(t, 55, v)
	})
}

// boolAt points the bot's boolean register at a free cell holding v.
func (f *fixture) boolAt(t *testing.T, v memory.Cell) {
	t.Helper()
	b := f.freeCells(t, 1)
	require.NoError(t, f.w.Write(b, v))
	f.set(t, memory.BotBool, memory.Cell(b))
}

func TestSkip_FalseIfSkipsToTerminator(t *testing.T) {
	for n := 0; n <= 3; n++ {
		f := newFixture(t)
		codes := []memory.Cell{f.code(t, memory.IfTestKey)}
		for i := 0; i < n; i++ {
			codes = append(codes, f.code(t, memory.MoveRightKey))
		}
		codes = append(codes, f.code(t, memory.BotProgramEnd))
		f.program(t, codes...)
		f.boolAt(t, 0)

		require.NoError(t, Skip(f.w, f.rec))
		assert.EqualValues(t, n+1, f.get(t, memory.BotProgramCounter), "skip over %d instructions", n)
	}
}

func TestStep_FalseIfJumpsPastBlock(t *testing.T) {
	f := newFixture(t)
	f.program(t,
		f.code(t, memory.IfTestKey),
		f.code(t, memory.MoveRightKey),
		f.code(t, memory.ElseTestKey),
		f.code(t, memory.MoveLeftKey),
	)
	f.set(t, memory.BotPos, 25)
	f.boolAt(t, 0)

	require.NoError(t, Step(f.w, 0))
	assert.EqualValues(t, 3, f.get(t, memory.BotProgramCounter), "lands after the else")

	require.NoError(t, Step(f.w, 0))
	assert.EqualValues(t, 24, f.get(t, memory.BotPos), "else branch ran")
}

func TestStep_TrueIfRunsBlock(t *testing.T) {
	f := newFixture(t)
	f.program(t,
		f.code(t, memory.IfTestKey),
		f.code(t, memory.MoveRightKey),
		f.code(t, memory.ElseTestKey),
		f.code(t, memory.MoveLeftKey),
	)
	f.set(t, memory.BotPos, 25)
	f.boolAt(t, 1)

	require.NoError(t, Step(f.w, 0))
	require.NoError(t, Step(f.w, 0))
	assert.EqualValues(t, 26, f.get(t, memory.BotPos))

	// The else with a true boolean skips to the next terminator.
	require.NoError(t, Step(f.w, 0))
	assert.EqualValues(t, 5, f.get(t, memory.BotProgramCounter))
}

func TestSkip_IgnoresNesting(t *testing.T) {
	f := newFixture(t)
	f.program(t,
		f.code(t, memory.IfTestKey),
		f.code(t, memory.IfTestKey),
		f.code(t, memory.ElseTestKey),
		f.code(t, memory.ElseTestKey),
	)
	f.boolAt(t, 0)

	require.NoError(t, Skip(f.w, f.rec))
	assert.EqualValues(t, 2, f.get(t, memory.BotProgramCounter), "stops at the inner else")
}

func TestStep_LoadOffMapFaults(t *testing.T) {
	f := newFixture(t)
	f.program(t, f.code(t, memory.PutCellValKey))
	f.set(t, memory.BotPos, -3)

	err := Step(f.w, 0)
	assert.ErrorIs(t, err, memory.ErrOutOfBounds)
}

func TestStep_MoveOffMapIsAllowed(t *testing.T) {
	f := newFixture(t)
	f.program(t, f.code(t, memory.MoveUpKey))
	f.set(t, memory.BotPos, 3)

	require.NoError(t, Step(f.w, 0))
	assert.EqualValues(t, -17, f.get(t, memory.BotPos))
}

func TestStepAll_AdvancesEveryBot(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, StepAll(f.w))

	for i := 0; i < f.w.Bots(); i++ {
		r, err := Load(f.w, i)
		require.NoError(t, err)
		pc, err := r.ProgramCounter()
		require.NoError(t, err)
		assert.EqualValues(t, 1, pc, "bot %d", i)

		pos, err := r.Position()
		require.NoError(t, err)
		assert.EqualValues(t, layout.ScriptedStart-1, pos, "bot %d moved left", i)
	}
}
