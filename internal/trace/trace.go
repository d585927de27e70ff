// Package trace explains how a puzzle's statements narrow its candidates.
package trace

import (
	"context"

	"go.uber.org/zap"

	"svw.info/cheryl/internal/domain"
	"svw.info/cheryl/internal/solver"
)

// Steps implements ports.Tracer on top of the solver's traced filter chain.
type Steps struct {
	log *zap.Logger
}

func NewSteps(logger *zap.Logger) *Steps {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Steps{log: logger}
}

// Trace returns one step per statement. When a statement leaves no
// candidate, the steps before it are returned together with the error.
func (t *Steps) Trace(ctx context.Context, p *domain.Puzzle) ([]domain.Step, error) {
	g, stmts, err := solver.Prepare(p)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	steps, _, err := g.TraceChain(stmts...)
	for _, s := range steps {
		t.log.Debug("trace step",
			zap.Int("step", s.Index),
			zap.String("statement", s.Statement),
			zap.Int("remaining", len(s.Remaining)),
			zap.Int("removed", len(s.Removed)),
		)
	}
	return steps, err
}
