package memory

// Bot record offsets, relative to a bot's base address.
const (
	BotPos            Address = 0
	BotCellVal        Address = 1
	BotFlagVal        Address = 2
	BotBool           Address = 3
	BotProgramCounter Address = 4
	BotProgram        Address = 5

	// BotRecordSize is the fixed part of a bot record; the program length
	// is added on top.
	BotRecordSize = 6
)

// Halted is the program counter value set by the program-end instruction.
const Halted Cell = -1

// BotBase returns the base address of bot i.
func (w *World) BotBase(i int) (Address, error) {
	return w.EntityAddress(BotEntity(i))
}

// BotPosition returns the position register of bot i as an address.
func (w *World) BotPosition(i int) (Address, error) {
	base, err := w.BotBase(i)
	if err != nil {
		return 0, err
	}
	return w.Pointer(base + BotPos)
}
