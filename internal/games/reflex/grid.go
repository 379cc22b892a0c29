package reflex

// Grid dimensions. The grid size is fixed.
const (
	GridRows  = 4
	GridCols  = 4
	CellCount = GridRows * GridCols
)

// NoCell marks the absence of a cell index.
const NoCell = -1

// Cell is one toggle position on the grid. Its ID is stable and equals its
// row-major index.
type Cell struct {
	ID  int
	Lit bool
}

// Grid is the ordered, fixed-length sequence of cells.
type Grid struct {
	cells [CellCount]Cell
}

// NewGrid creates a grid with every cell unlit.
func NewGrid() *Grid {
	g := &Grid{}
	for i := range g.cells {
		g.cells[i] = Cell{ID: i}
	}
	return g
}

// Clear unlights every cell.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i].Lit = false
	}
}

// Valid reports whether id names a cell.
func (g *Grid) Valid(id int) bool {
	return id >= 0 && id < CellCount
}

// IsLit reports whether the cell is lit. Unknown IDs are never lit.
func (g *Grid) IsLit(id int) bool {
	return g.Valid(id) && g.cells[id].Lit
}

// Set changes the lit state of a cell. Unknown IDs are ignored.
func (g *Grid) Set(id int, lit bool) {
	if g.Valid(id) {
		g.cells[id].Lit = lit
	}
}

// Unlit returns the IDs of all unlit cells in grid order.
func (g *Grid) Unlit() []int {
	ids := make([]int, 0, CellCount)
	for _, c := range g.cells {
		if !c.Lit {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// LitCount returns how many cells are lit.
func (g *Grid) LitCount() int {
	n := 0
	for _, c := range g.cells {
		if c.Lit {
			n++
		}
	}
	return n
}

// Full reports whether every cell is lit.
func (g *Grid) Full() bool {
	return g.LitCount() == CellCount
}

// Cells returns a copy of the cells in grid order.
func (g *Grid) Cells() []Cell {
	out := make([]Cell, CellCount)
	copy(out, g.cells[:])
	return out
}

// Position converts a cell ID to its row and column.
func Position(id int) (row, col int) {
	return id / GridCols, id % GridCols
}

// CellAt converts a row and column to a cell ID, or NoCell when out of range.
func CellAt(row, col int) int {
	if row < 0 || row >= GridRows || col < 0 || col >= GridCols {
		return NoCell
	}
	return row*GridCols + col
}
