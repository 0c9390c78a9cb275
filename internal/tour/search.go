package tour

import (
	"sort"
	"time"

	"github.com/tourcrypt/tourcrypt/internal/board"
)

// Key is the ordered sequence of board cell values a completed tour
// visits. A key produced by a successful search is a permutation of
// {0, …, N²-1} in which consecutive elements are always one knight
// move apart.
type Key []int

// Stats reports how much work a search did. Populated on success and
// failure alike.
type Stats struct {
	// NodesExpanded counts search frames entered (cells stepped onto,
	// including re-entries after backtracking).
	NodesExpanded int

	// Backtracks counts frames that failed and were unwound.
	Backtracks int

	// Duration is wall-clock search time.
	Duration time.Duration
}

// Option configures a search.
type Option func(*searcher)

// WithMaxNodes bounds the number of search frames the engine may enter.
// Zero (the default) means unbounded, matching the original behavior.
// Exhausting the budget is reported as an ordinary search failure with
// code BUDGET_EXCEEDED.
func WithMaxNodes(n int) Option {
	return func(s *searcher) {
		s.maxNodes = n
	}
}

// searcher owns the scratch state of one search invocation. Nothing
// here is shared: each call to Search builds its own.
type searcher struct {
	board    *board.Board
	grid     *board.VisitedGrid
	key      Key
	stats    Stats
	maxNodes int
	overrun  bool
}

// Search runs the backtracking tour search from start and returns the
// derived key.
//
// On success the key has length N² and is a permutation of all board
// values. On failure the returned key is nil, the error is a
// *SearchError, and all scratch state was fully unwound before return
// (the failure leaves nothing half-visited).
//
// Boards smaller than board.MinSize are rejected with BOARD_TOO_SMALL:
// a knight has no legal move on a 1×1 or 2×2 board, so no usable key
// can exist there.
func Search(b *board.Board, start board.Coordinate, opts ...Option) (Key, Stats, error) {
	s := &searcher{board: b}
	for _, opt := range opts {
		opt(s)
	}

	if b.Size() < board.MinSize {
		return nil, s.stats, &SearchError{
			Code:      ErrCodeBoardTooSmall,
			Message:   "no knight's tour exists on boards smaller than 3x3",
			BoardSize: b.Size(),
			Start:     start,
		}
	}
	if !b.Contains(start) {
		return nil, s.stats, &SearchError{
			Code:      ErrCodeNoTour,
			Message:   "start cell is off the board",
			BoardSize: b.Size(),
			Start:     start,
		}
	}

	s.grid = board.NewVisitedGrid(b)
	s.key = make(Key, 0, b.Cells())

	began := time.Now()
	found := s.walk(start.X, start.Y, 1)
	s.stats.Duration = time.Since(began)

	if !found {
		code := ErrCodeNoTour
		msg := "exhausted all moves without completing a tour"
		if s.overrun {
			code = ErrCodeBudgetExceeded
			msg = "node budget exhausted before the search completed"
		}
		return nil, s.stats, &SearchError{
			Code:          code,
			Message:       msg,
			BoardSize:     b.Size(),
			Start:         start,
			NodesExpanded: s.stats.NodesExpanded,
		}
	}

	return s.key, s.stats, nil
}

// candidate pairs a destination's onward degree with the index of the
// offset that reaches it. Sorting candidates stably by degree keeps
// equal-degree moves in canonical offset order, which is what makes the
// derived key reproducible.
type candidate struct {
	degree int
	offset int
}

// walk is one recursion frame: step onto (x, y) as move number movei,
// then try onward moves in Warnsdorff order. Returns true as soon as
// any branch completes the tour; on false the frame has already
// unwound its own mark and key entry.
func (s *searcher) walk(x, y, movei int) bool {
	if s.maxNodes > 0 && s.stats.NodesExpanded >= s.maxNodes {
		s.overrun = true
		return false
	}
	s.stats.NodesExpanded++

	s.grid.Visit(x, y)
	s.key = append(s.key, s.board.ValueAt(x, y))

	if movei == s.board.Cells() {
		return true
	}

	candidates := make([]candidate, 0, len(board.Offsets))
	for i, o := range board.Offsets {
		nx, ny := x+o.Dx, y+o.Dy
		if s.grid.IsValidMove(nx, ny) {
			candidates = append(candidates, candidate{
				degree: s.grid.Degree(nx, ny),
				offset: i,
			})
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].degree < candidates[j].degree
	})

	for _, c := range candidates {
		if s.overrun {
			break
		}
		o := board.Offsets[c.offset]
		if s.walk(x+o.Dx, y+o.Dy, movei+1) {
			// First success wins; never look for alternate tours.
			return true
		}
	}

	s.grid.Unvisit(x, y)
	s.key = s.key[:len(s.key)-1]
	s.stats.Backtracks++
	return false
}
