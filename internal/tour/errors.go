package tour

import (
	"errors"
	"fmt"

	"github.com/tourcrypt/tourcrypt/internal/board"
)

// SearchErrorCode categorizes search failures.
type SearchErrorCode string

const (
	// ErrCodeNoTour indicates the search space was exhausted without
	// finding a complete tour from the given start cell.
	ErrCodeNoTour SearchErrorCode = "NO_TOUR"

	// ErrCodeBudgetExceeded indicates the node-expansion budget ran out
	// before the search completed or proved absence.
	ErrCodeBudgetExceeded SearchErrorCode = "BUDGET_EXCEEDED"

	// ErrCodeBoardTooSmall indicates the board is below the minimum
	// searchable size (no legal knight move exists on it).
	ErrCodeBoardTooSmall SearchErrorCode = "BOARD_TOO_SMALL"
)

// SearchError is the failure result of a tour search. The key derived
// from a failed search is unusable; callers must not proceed to encrypt
// or decrypt with it.
type SearchError struct {
	// Code identifies the failure category.
	Code SearchErrorCode

	// Message is a human-readable description.
	Message string

	// BoardSize is N for the attempted N×N board.
	BoardSize int

	// Start is the cell the search began from.
	Start board.Coordinate

	// NodesExpanded is how many search frames were entered before the
	// failure was established.
	NodesExpanded int
}

// Error implements the error interface.
func (e *SearchError) Error() string {
	return fmt.Sprintf("%s: %s (board=%dx%d, start=%s)",
		e.Code, e.Message, e.BoardSize, e.BoardSize, e.Start)
}

// IsSearchFailure returns true if the error is any tour search failure.
// Uses errors.As to handle wrapped errors.
func IsSearchFailure(err error) bool {
	var se *SearchError
	return errors.As(err, &se)
}

// IsNoTour returns true if the error reports an exhaustively proven
// absence of a tour.
func IsNoTour(err error) bool {
	var se *SearchError
	if errors.As(err, &se) {
		return se.Code == ErrCodeNoTour
	}
	return false
}

// IsBudgetExceeded returns true if the error reports node-budget
// exhaustion rather than a proven absence.
func IsBudgetExceeded(err error) bool {
	var se *SearchError
	if errors.As(err, &se) {
		return se.Code == ErrCodeBudgetExceeded
	}
	return false
}
