// Package world provides flat 2D grid geometry: the map dimensions, the
// linear index of a row and column, bounds checks and move offsets.
package world

// Grid describes a rows x cols map stored row-major in a linear array.
type Grid struct {
	rows int
	cols int
}

// NewGrid creates a new grid with the given dimensions
func NewGrid(rows, cols int) Grid {
	if rows < 0 {
		rows = 0
	}
	if cols < 0 {
		cols = 0
	}
	return Grid{rows: rows, cols: cols}
}

// Rows returns the number of rows in the grid
func (g Grid) Rows() int {
	return g.rows
}

// Cols returns the number of columns in the grid
func (g Grid) Cols() int {
	return g.cols
}

// Size returns the number of cells in the grid
func (g Grid) Size() int {
	return g.rows * g.cols
}

// IsValidPosition checks if a row/col position is within grid bounds
func (g Grid) IsValidPosition(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// Contains checks if a linear index is within grid bounds
func (g Grid) Contains(index int) bool {
	return index >= 0 && index < g.Size()
}

// Index returns the linear index of row/col, or -1 if out of bounds
func (g Grid) Index(row, col int) int {
	if !g.IsValidPosition(row, col) {
		return -1
	}
	return row*g.cols + col
}

// CenterPosition returns the row and column of the grid center
func (g Grid) CenterPosition() (int, int) {
	return g.rows / 2, g.cols / 2
}

// CenterIndex returns the linear index of the grid center
func (g Grid) CenterIndex() int {
	row, col := g.CenterPosition()
	return g.Index(row, col)
}
