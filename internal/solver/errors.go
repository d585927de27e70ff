package solver

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig reports a game that cannot be built from its inputs:
	// no candidates, ragged tuples, or bad player names.
	ErrConfig = errors.New("bad game configuration")
	// ErrInvalidStatement reports a malformed statement or one naming
	// players the game does not have.
	ErrInvalidStatement = errors.New("invalid statement")
	// ErrNoSolution reports that a statement eliminated every candidate.
	ErrNoSolution = errors.New("no solution")
	// ErrMultipleSolutions reports more than one surviving candidate.
	ErrMultipleSolutions = errors.New("multiple solutions")
)

// MultipleSolutionsError carries the number of surviving candidates.
type MultipleSolutionsError struct {
	Count int
}

func (e *MultipleSolutionsError) Error() string {
	return fmt.Sprintf("%v: found %d solutions", ErrMultipleSolutions, e.Count)
}

func (e *MultipleSolutionsError) Unwrap() error { return ErrMultipleSolutions }
