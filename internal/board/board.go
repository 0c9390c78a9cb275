package board

import "fmt"

// MinSize is the smallest board the tour search accepts. Boards of size
// 1 and 2 are degenerate (no legal knight move exists, or the only
// "tour" is the trivial single cell) and are rejected up front rather
// than searched.
const MinSize = 3

// Offset is a single knight move, expressed as a (Dx, Dy) delta.
type Offset struct {
	Dx, Dy int
}

// Offsets lists the eight knight moves in their canonical enumeration
// order. Do not reorder: equal-degree candidates are tried in this
// order, and key derivation must be byte-for-byte reproducible.
var Offsets = [8]Offset{
	{2, 1}, {1, 2}, {-1, 2}, {-2, 1},
	{-2, -1}, {-1, -2}, {1, -2}, {2, -1},
}

// Coordinate identifies a cell. X is the row index, Y the column index,
// both zero-based.
type Coordinate struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// String renders the coordinate as "(x, y)".
func (c Coordinate) String() string {
	return fmt.Sprintf("(%d, %d)", c.X, c.Y)
}

// Board is an immutable N×N grid of cell values. Values are assigned
// row-major at construction: ValueAt(x, y) == x*N + y. Every value is
// unique and lies in [0, N²).
type Board struct {
	size int
}

// New creates a board of the given size. Size must be at least 1; the
// caller is expected to gate undersized boards before searching (see
// tour.Search), but a 1×1 or 2×2 board is still a representable value.
func New(size int) (*Board, error) {
	if size < 1 {
		return nil, fmt.Errorf("board: size must be >= 1, got %d", size)
	}
	return &Board{size: size}, nil
}

// Size returns N.
func (b *Board) Size() int {
	return b.size
}

// Cells returns the number of cells, N².
func (b *Board) Cells() int {
	return b.size * b.size
}

// Contains reports whether the coordinate lies on the board.
func (b *Board) Contains(c Coordinate) bool {
	return c.X >= 0 && c.X < b.size && c.Y >= 0 && c.Y < b.size
}

// ValueAt returns the row-major cell value at (x, y). The coordinate
// must lie on the board; out-of-range access is a programmer error.
func (b *Board) ValueAt(x, y int) int {
	return x*b.size + y
}
