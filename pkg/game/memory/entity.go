package memory

import "strconv"

// Entity identifies a placed region of the world. The identifier doubles
// as the entity's slot in the position table.
type Entity int

// Entity identifiers
const (
	MoveLeftKey Entity = iota
	MoveRightKey
	MoveUpKey
	MoveDownKey
	PutValKey
	PutCellPointerKey
	UpdateCellKey
	IncrementKey
	DecrementKey
	TestEqKey
	TestLessKey
	TestGreaterKey
	PutCellValKey
	PutFromCellKey
	IfTestKey
	ElseTestKey
	IfEndKey
	BotProgramEnd
	PlayerPos
	PlayerPosPtr
	PlayerCells
	PlayerValue
	WorldSize
	MoveLength
	WinFlag
	RestartGame
	Seed
	IsPointer
	Positions
	PlayerSymbol
	Bots // first bot; bot i is Bots+i
)

// LastCommandKey is the highest identifier a random bot program draws from.
const LastCommandKey = IfEndKey

// InhabitedCount is the number of entity identifiers for a world with the
// given number of bots.
func InhabitedCount(bots int) int {
	return int(Bots) + bots
}

// BotEntity returns the identifier of bot i.
func BotEntity(i int) Entity {
	return Bots + Entity(i)
}

var entityNames = map[Entity]string{
	MoveLeftKey:       "move-left",
	MoveRightKey:      "move-right",
	MoveUpKey:         "move-up",
	MoveDownKey:       "move-down",
	PutValKey:         "put-value",
	PutCellPointerKey: "put-cell-pointer",
	UpdateCellKey:     "update-cell",
	IncrementKey:      "increment",
	DecrementKey:      "decrement",
	TestEqKey:         "test-eq",
	TestLessKey:       "test-less",
	TestGreaterKey:    "test-greater",
	PutCellValKey:     "put-cell-value",
	PutFromCellKey:    "put-from-cell",
	IfTestKey:         "if",
	ElseTestKey:       "else",
	IfEndKey:          "if-end",
	BotProgramEnd:     "program-end",
	PlayerPos:         "player-pos",
	PlayerPosPtr:      "player-pos-ptr",
	PlayerCells:       "player-cells",
	PlayerValue:       "player-value",
	WorldSize:         "world-size",
	MoveLength:        "move-length",
	WinFlag:           "win-flag",
	RestartGame:       "restart",
	Seed:              "seed",
	IsPointer:         "is-pointer",
	Positions:         "positions",
	PlayerSymbol:      "player-symbol",
}

func (e Entity) String() string {
	if name, ok := entityNames[e]; ok {
		return name
	}
	if e >= Bots {
		return "bot-" + strconv.Itoa(int(e-Bots))
	}
	return "unknown"
}
