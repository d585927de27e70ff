package solver

import (
	"fmt"
	"slices"
	"strconv"

	"svw.info/cheryl/internal/domain"
)

// Game holds the live candidates and the roster of players, one per
// dimension. A Game is never modified after construction: Filter and the
// functions built on it return new Games, so independent Games may be
// explored concurrently.
type Game struct {
	candidates []domain.Candidate
	players    []Player
	byName     map[string]int
}

// NewGame builds a game from equal-arity candidates. Duplicate candidates
// collapse. Without names, players are named after their dimension index.
func NewGame(candidates []domain.Candidate, names ...string) (*Game, error) {
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: no candidates", ErrConfig)
	}
	arity := len(candidates[0])
	if arity == 0 {
		return nil, fmt.Errorf("%w: candidates have no dimensions", ErrConfig)
	}
	seen := make(map[string]bool, len(candidates))
	unique := make([]domain.Candidate, 0, len(candidates))
	for i, c := range candidates {
		if len(c) != arity {
			return nil, fmt.Errorf("%w: candidate %d has %d values, expected %d", ErrConfig, i, len(c), arity)
		}
		if k := c.Key(); !seen[k] {
			seen[k] = true
			unique = append(unique, c.Clone())
		}
	}
	domain.SortCandidates(unique)

	if len(names) == 0 {
		names = make([]string, arity)
		for i := range names {
			names[i] = strconv.Itoa(i)
		}
	}
	byName := make(map[string]int, len(names))
	for i, n := range names {
		if n == "" {
			return nil, fmt.Errorf("%w: player %d has an empty name", ErrConfig, i)
		}
		if _, dup := byName[n]; dup {
			return nil, fmt.Errorf("%w: duplicate player name %q", ErrConfig, n)
		}
		byName[n] = i
	}
	if len(names) != arity {
		return nil, fmt.Errorf("%w: expected %d player names but got %d", ErrConfig, arity, len(names))
	}
	players := make([]Player, len(names))
	for i, n := range names {
		players[i] = Player{Name: n, Index: i}
	}
	return &Game{candidates: unique, players: players, byName: byName}, nil
}

// derive shares the immutable roster with g.
func (g *Game) derive(candidates []domain.Candidate) *Game {
	return &Game{candidates: candidates, players: g.players, byName: g.byName}
}

// Candidates returns a copy of the live candidates in canonical order.
func (g *Game) Candidates() []domain.Candidate {
	out := make([]domain.Candidate, len(g.candidates))
	for i, c := range g.candidates {
		out[i] = c.Clone()
	}
	return out
}

func (g *Game) Len() int   { return len(g.candidates) }
func (g *Game) Arity() int { return len(g.players) }

// Contains reports whether c is still live.
func (g *Game) Contains(c domain.Candidate) bool {
	return slices.ContainsFunc(g.candidates, c.Equal)
}

func (g *Game) Players() []Player { return slices.Clone(g.players) }

func (g *Game) PlayerNames() []string {
	names := make([]string, len(g.players))
	for i, p := range g.players {
		names[i] = p.Name
	}
	return names
}

// Player looks a player up by name.
func (g *Game) Player(name string) (Player, bool) {
	i, ok := g.byName[name]
	if !ok {
		return Player{}, false
	}
	return g.players[i], true
}

// CheckStatement reports a statement that mentions players not in the game.
func (g *Game) CheckStatement(s *Statement) error {
	for _, n := range s.Players() {
		if _, ok := g.byName[n]; !ok {
			return fmt.Errorf("%w: %w %q", ErrInvalidStatement, errUnknownPlayer, n)
		}
	}
	return nil
}

// Filter keeps the candidates for which s is true. Every candidate is
// judged against the candidates live before this call. Filtering out
// everything fails with ErrNoSolution; g itself is left unchanged.
func (g *Game) Filter(s *Statement) (*Game, error) {
	if err := g.CheckStatement(s); err != nil {
		return nil, err
	}
	kept := make([]domain.Candidate, 0, len(g.candidates))
	for _, c := range g.candidates {
		if s.Evaluate(c, g) {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 {
		return nil, fmt.Errorf("%w: no candidate satisfies %q", ErrNoSolution, s)
	}
	return g.derive(kept), nil
}

// FilterChain applies statements in order and stops at the first failure.
func (g *Game) FilterChain(stmts ...*Statement) (*Game, error) {
	cur := g
	for i, s := range stmts {
		next, err := cur.Filter(s)
		if err != nil {
			return nil, fmt.Errorf("statement %d: %w", i+1, err)
		}
		cur = next
	}
	return cur, nil
}

// CountSolutions is the number of candidates surviving stmts, or 0 if any
// step fails.
func (g *Game) CountSolutions(stmts ...*Statement) int {
	final, err := g.FilterChain(stmts...)
	if err != nil {
		return 0
	}
	return final.Len()
}

// Solve returns the unique candidate surviving stmts. It fails with
// ErrNoSolution when the chain is contradictory and with a
// *MultipleSolutionsError when it is under-constrained.
func (g *Game) Solve(stmts ...*Statement) (domain.Candidate, error) {
	final, err := g.FilterChain(stmts...)
	if err != nil {
		return nil, err
	}
	if n := final.Len(); n > 1 {
		return nil, &MultipleSolutionsError{Count: n}
	}
	return final.candidates[0].Clone(), nil
}

// TraceChain is FilterChain that also records what each statement kept and
// removed. On failure it returns the steps completed so far.
func (g *Game) TraceChain(stmts ...*Statement) ([]domain.Step, *Game, error) {
	steps := make([]domain.Step, 0, len(stmts))
	cur := g
	for i, s := range stmts {
		next, err := cur.Filter(s)
		if err != nil {
			return steps, nil, fmt.Errorf("statement %d: %w", i+1, err)
		}
		steps = append(steps, domain.Step{
			Index:     i + 1,
			Statement: s.String(),
			Remaining: next.Candidates(),
			Removed:   cur.removedBy(next),
		})
		cur = next
	}
	return steps, cur, nil
}

// removedBy lists the candidates of g that next no longer has.
func (g *Game) removedBy(next *Game) []domain.Candidate {
	live := make(map[string]bool, next.Len())
	for _, c := range next.candidates {
		live[c.Key()] = true
	}
	var out []domain.Candidate
	for _, c := range g.candidates {
		if !live[c.Key()] {
			out = append(out, c.Clone())
		}
	}
	return out
}
