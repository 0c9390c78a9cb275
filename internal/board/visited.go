package board

// VisitedGrid tracks which cells the knight has landed on during one
// tour search. It is mutable scratch state with single-owner semantics:
// exactly one search call owns the grid for its entire duration, and a
// failed search must leave the grid all-false again (the search engine
// enforces that unwind; the grid itself is just the bookkeeping).
type VisitedGrid struct {
	size    int
	cells   []bool
	visited int
}

// NewVisitedGrid creates an all-false grid matching the board's size.
func NewVisitedGrid(b *Board) *VisitedGrid {
	return &VisitedGrid{
		size:  b.Size(),
		cells: make([]bool, b.Cells()),
	}
}

// IsValidMove reports whether (x, y) is on the grid and not yet
// visited. Pure query, no side effects.
func (g *VisitedGrid) IsValidMove(x, y int) bool {
	return x >= 0 && x < g.size && y >= 0 && y < g.size && !g.cells[x*g.size+y]
}

// Degree counts, over the eight knight offsets in canonical order, the
// neighbors of (x, y) that IsValidMove accepts. This is the Warnsdorff
// ordering criterion: the search prefers destinations with fewer onward
// options.
func (g *VisitedGrid) Degree(x, y int) int {
	count := 0
	for _, o := range Offsets {
		if g.IsValidMove(x+o.Dx, y+o.Dy) {
			count++
		}
	}
	return count
}

// Visit marks (x, y) visited. The cell must be on the grid.
func (g *VisitedGrid) Visit(x, y int) {
	idx := x*g.size + y
	if !g.cells[idx] {
		g.cells[idx] = true
		g.visited++
	}
}

// Unvisit clears the visited mark on (x, y). Used by the search to
// backtrack out of a dead end.
func (g *VisitedGrid) Unvisit(x, y int) {
	idx := x*g.size + y
	if g.cells[idx] {
		g.cells[idx] = false
		g.visited--
	}
}

// Visited reports whether (x, y) carries a visited mark.
func (g *VisitedGrid) Visited(x, y int) bool {
	return g.cells[x*g.size+y]
}

// Count returns the number of visited cells. During a search this
// always equals the length of the accumulated key.
func (g *VisitedGrid) Count() int {
	return g.visited
}

// Clear resets every cell to unvisited.
func (g *VisitedGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = false
	}
	g.visited = 0
}
