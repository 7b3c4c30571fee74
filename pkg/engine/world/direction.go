package world

// Direction is one of the four ways an arrow key or move command can
// shift a position on the map.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// steps holds the row and column change of one move in each direction.
var steps = [...]struct {
	name     string
	row, col int
}{
	North: {"north", -1, 0},
	East:  {"east", 0, 1},
	South: {"south", 1, 0},
	West:  {"west", 0, -1},
}

func (d Direction) String() string {
	if d < North || d > West {
		return "none"
	}
	return steps[d].name
}

// Delta returns the row and column change of a single move. Unknown
// directions do not move.
func (d Direction) Delta() (rowDelta, colDelta int) {
	if d < North || d > West {
		return 0, 0
	}
	return steps[d].row, steps[d].col
}

// Offset returns how far a linear index moves for step cells in d on a
// row-major map cols wide. Horizontal moves are not clipped at the edge
// of a row: they carry on into the next one.
func (d Direction) Offset(cols, step int) int {
	rowDelta, colDelta := d.Delta()
	return (rowDelta*cols + colDelta) * step
}
