package validator

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"svw.info/cheryl/internal/domain"
	"svw.info/cheryl/internal/solver"
)

// PuzzleValidator reports every problem in a puzzle definition rather than
// stopping at the first one.
type PuzzleValidator struct{}

func New() *PuzzleValidator { return &PuzzleValidator{} }

func (v *PuzzleValidator) Validate(ctx context.Context, p *domain.Puzzle) (bool, []domain.Problem, error) {
	if p == nil {
		return false, nil, errors.New("nil puzzle")
	}
	probs := make([]domain.Problem, 0, 4)
	add := func(field, format string, args ...any) {
		probs = append(probs, domain.Problem{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	// candidates
	arity := 0
	if len(p.Candidates) == 0 {
		add("candidates", "no candidates")
	} else {
		arity = len(p.Candidates[0])
		if arity == 0 {
			add("candidates[0]", "candidate has no values")
		}
		for i, c := range p.Candidates[1:] {
			if len(c) != arity {
				add(fmt.Sprintf("candidates[%d]", i+1), "has %d values, expected %d", len(c), arity)
			}
		}
	}

	// players
	names := p.Players
	if len(names) == 0 {
		names = make([]string, arity)
		for i := range names {
			names[i] = strconv.Itoa(i)
		}
	}
	known := make(map[string]bool, len(names))
	for i, n := range names {
		field := fmt.Sprintf("players[%d]", i)
		switch {
		case n == "":
			add(field, "empty player name")
		case known[n]:
			add(field, "duplicate player name %q", n)
		}
		known[n] = true
	}
	if arity > 0 && len(names) != arity {
		add("players", "expected %d player names but got %d", arity, len(names))
	}

	// statements
	for i, spec := range p.Statements {
		field := fmt.Sprintf("statements[%d]", i)
		s, err := solver.StatementFromSpec(spec)
		if err != nil {
			add(field, "%v", err)
			continue
		}
		for _, n := range s.Players() {
			if !known[n] {
				add(field, "unknown player %q", n)
			}
		}
	}
	if err := ctx.Err(); err != nil {
		return false, nil, err
	}
	return len(probs) == 0, probs, nil
}
