package ports

import (
	"context"
	"time"

	"svw.info/cheryl/internal/domain"
)

// Stats captures performance characteristics of an operation.
type Stats struct {
	// Evaluations counts statement evaluations against single candidates.
	Evaluations int
	Duration    time.Duration
}

// Solver filters a puzzle's candidates through its statements.
type Solver interface {
	Solve(ctx context.Context, p *domain.Puzzle) (domain.Candidate, Stats, error)
	Count(ctx context.Context, p *domain.Puzzle) (int, Stats, error)
}

// Generator searches for candidate sets that make a statement list uniquely solvable.
type Generator interface {
	Generate(ctx context.Context, req domain.GenerateRequest) (*domain.Puzzle, Stats, error)
}

// Validator checks a puzzle definition before it is solved or stored.
type Validator interface {
	Validate(ctx context.Context, p *domain.Puzzle) (ok bool, problems []domain.Problem, err error)
}

// Tracer explains a puzzle statement by statement.
type Tracer interface {
	Trace(ctx context.Context, p *domain.Puzzle) ([]domain.Step, error)
}

// Storage persists and retrieves puzzles.
type Storage interface {
	Save(ctx context.Context, p *domain.Puzzle) error
	Load(ctx context.Context, id string) (*domain.Puzzle, error)
	List(ctx context.Context) ([]domain.PuzzleMeta, error)
}
