package solver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"svw.info/cheryl/internal/domain"
	"svw.info/cheryl/internal/ports"
)

// PuzzleSolver runs persisted puzzles through the engine.
type PuzzleSolver struct{}

func NewPuzzleSolver() *PuzzleSolver { return &PuzzleSolver{} }

// Prepare builds the game and the statements a puzzle describes and checks
// that every statement only mentions the game's players.
func Prepare(p *domain.Puzzle) (*Game, []*Statement, error) {
	if p == nil {
		return nil, nil, fmt.Errorf("%w: nil puzzle", ErrConfig)
	}
	g, err := NewGame(p.Candidates, p.Players...)
	if err != nil {
		return nil, nil, err
	}
	stmts, err := StatementsFromSpecs(p.Statements)
	if err != nil {
		return nil, nil, err
	}
	for i, s := range stmts {
		if err := g.CheckStatement(s); err != nil {
			return nil, nil, fmt.Errorf("statement %d: %w", i+1, err)
		}
	}
	return g, stmts, nil
}

func run(ctx context.Context, g *Game, stmts []*Statement) (*Game, int, error) {
	evals := 0
	cur := g
	for i, s := range stmts {
		if err := ctx.Err(); err != nil {
			return nil, evals, err
		}
		evals += cur.Len()
		next, err := cur.Filter(s)
		if err != nil {
			return nil, evals, fmt.Errorf("statement %d: %w", i+1, err)
		}
		cur = next
	}
	return cur, evals, nil
}

// Solve returns the unique solution of p.
func (s *PuzzleSolver) Solve(ctx context.Context, p *domain.Puzzle) (domain.Candidate, ports.Stats, error) {
	start := time.Now()
	g, stmts, err := Prepare(p)
	if err != nil {
		return nil, ports.Stats{}, err
	}
	final, evals, err := run(ctx, g, stmts)
	st := ports.Stats{Evaluations: evals, Duration: time.Since(start)}
	if err != nil {
		return nil, st, err
	}
	if n := final.Len(); n > 1 {
		return nil, st, &MultipleSolutionsError{Count: n}
	}
	return final.candidates[0].Clone(), st, nil
}

// Count returns how many candidates survive p's statements; a contradictory
// puzzle counts 0. Malformed puzzles are still errors.
func (s *PuzzleSolver) Count(ctx context.Context, p *domain.Puzzle) (int, ports.Stats, error) {
	start := time.Now()
	g, stmts, err := Prepare(p)
	if err != nil {
		return 0, ports.Stats{}, err
	}
	final, evals, err := run(ctx, g, stmts)
	st := ports.Stats{Evaluations: evals, Duration: time.Since(start)}
	switch {
	case errors.Is(err, ErrNoSolution):
		return 0, st, nil
	case err != nil:
		return 0, st, err
	}
	return final.Len(), st, nil
}
