package solver

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"svw.info/cheryl/internal/domain"
)

// TargetKind tells whether a condition is about one player or a group.
type TargetKind int

const (
	TargetSingle TargetKind = iota // the named player must match exactly
	TargetAnyOf                    // at least one named player must match
)

// Condition is one claim inside a statement. Build it with Single or AnyOf.
type Condition struct {
	Kind    TargetKind
	Players []string
	Expect  domain.Knowledge
}

// Single claims that player name has knowledge k.
func Single(name string, k domain.Knowledge) Condition {
	return Condition{Kind: TargetSingle, Players: []string{name}, Expect: k}
}

// AnyOf claims that at least one of names has knowledge k.
func AnyOf(k domain.Knowledge, names ...string) Condition {
	return Condition{Kind: TargetAnyOf, Players: slices.Clone(names), Expect: k}
}

// key identifies the condition's target; two conditions with the same key
// cannot appear in one statement.
func (c Condition) key() string {
	if c.Kind == TargetSingle {
		return c.Players[0]
	}
	names := slices.Clone(c.Players)
	slices.Sort(names)
	return "{" + strings.Join(slices.Compact(names), ",") + "}"
}

func (c Condition) String() string {
	return c.key() + "=" + c.Expect.String()
}

// Statement is a public claim by Author about what players know.
// Players without a condition are unconstrained.
type Statement struct {
	author     string
	conditions []Condition
}

// NewStatement validates and builds a statement. The author may appear in
// a Single condition but never inside an AnyOf group.
func NewStatement(author string, conds ...Condition) (*Statement, error) {
	if author == "" {
		return nil, fmt.Errorf("%w: empty author", ErrInvalidStatement)
	}
	seen := make(map[string]bool, len(conds))
	for i, c := range conds {
		if !c.Expect.Valid() {
			return nil, fmt.Errorf("%w: condition %d: invalid knowledge %d", ErrInvalidStatement, i, int(c.Expect))
		}
		switch c.Kind {
		case TargetSingle:
			if len(c.Players) != 1 || c.Players[0] == "" {
				return nil, fmt.Errorf("%w: condition %d: single target needs exactly one player", ErrInvalidStatement, i)
			}
		case TargetAnyOf:
			if len(c.Players) == 0 {
				return nil, fmt.Errorf("%w: condition %d: empty group", ErrInvalidStatement, i)
			}
			if slices.Contains(c.Players, author) {
				return nil, fmt.Errorf("%w: author %q cannot be part of a group", ErrInvalidStatement, author)
			}
		default:
			return nil, fmt.Errorf("%w: condition %d: unknown target kind %d", ErrInvalidStatement, i, int(c.Kind))
		}
		k := c.key()
		if seen[k] {
			return nil, fmt.Errorf("%w: duplicate condition on %s", ErrInvalidStatement, k)
		}
		seen[k] = true
	}
	s := &Statement{author: author, conditions: make([]Condition, len(conds))}
	for i, c := range conds {
		s.conditions[i] = Condition{Kind: c.Kind, Players: slices.Clone(c.Players), Expect: c.Expect}
	}
	return s, nil
}

// MustStatement is like NewStatement but panics on error.
func MustStatement(author string, conds ...Condition) *Statement {
	s, err := NewStatement(author, conds...)
	if err != nil {
		panic(err)
	}
	return s
}

// StatementFromSpec converts the serialised form.
func StatementFromSpec(spec domain.StatementSpec) (*Statement, error) {
	conds := make([]Condition, 0, len(spec.Conditions))
	for i, cs := range spec.Conditions {
		switch {
		case cs.Player != "" && len(cs.AnyOf) > 0:
			return nil, fmt.Errorf("%w: condition %d sets both player and any_of", ErrInvalidStatement, i)
		case cs.Player != "":
			conds = append(conds, Single(cs.Player, cs.Knows))
		case len(cs.AnyOf) > 0:
			conds = append(conds, AnyOf(cs.Knows, cs.AnyOf...))
		default:
			return nil, fmt.Errorf("%w: condition %d names no player", ErrInvalidStatement, i)
		}
	}
	return NewStatement(spec.Author, conds...)
}

// StatementsFromSpecs converts a statement list, reporting the index of the
// first bad entry.
func StatementsFromSpecs(specs []domain.StatementSpec) ([]*Statement, error) {
	out := make([]*Statement, len(specs))
	for i, spec := range specs {
		s, err := StatementFromSpec(spec)
		if err != nil {
			return nil, fmt.Errorf("statement %d: %w", i+1, err)
		}
		out[i] = s
	}
	return out, nil
}

// Spec returns the serialisable form.
func (s *Statement) Spec() domain.StatementSpec {
	spec := domain.StatementSpec{Author: s.author}
	for _, c := range s.conditions {
		cs := domain.ConditionSpec{Knows: c.Expect}
		if c.Kind == TargetSingle {
			cs.Player = c.Players[0]
		} else {
			cs.AnyOf = slices.Clone(c.Players)
		}
		spec.Conditions = append(spec.Conditions, cs)
	}
	return spec
}

func (s *Statement) Author() string { return s.author }

func (s *Statement) Conditions() []Condition {
	out := make([]Condition, len(s.conditions))
	for i, c := range s.conditions {
		out[i] = Condition{Kind: c.Kind, Players: slices.Clone(c.Players), Expect: c.Expect}
	}
	return out
}

// Players lists every player the statement mentions, author first.
func (s *Statement) Players() []string {
	names := []string{s.author}
	for _, c := range s.conditions {
		for _, n := range c.Players {
			if !slices.Contains(names, n) {
				names = append(names, n)
			}
		}
	}
	return names
}

func (s *Statement) String() string {
	parts := make([]string, len(s.conditions))
	for i, c := range s.conditions {
		parts[i] = c.String()
	}
	return s.author + ": " + strings.Join(parts, " ")
}

// Evaluate reports whether the statement could have been made truthfully
// if candidate were the solution, given the game's live candidates.
//
// The author would only be able to distinguish candidates through its own
// dimension, so every claim about another player is checked over the
// author's compatible set. A statement naming a player the game does not
// have is never true.
func (s *Statement) Evaluate(candidate domain.Candidate, g *Game) bool {
	author, ok := g.Player(s.author)
	if !ok {
		return false
	}
	view := author.Compatible(candidate, g.candidates)
	for _, c := range s.conditions {
		if c.Kind == TargetSingle && c.Players[0] == s.author {
			if Knows(view) != c.Expect {
				return false
			}
		}
	}
	for _, c := range s.conditions {
		switch c.Kind {
		case TargetSingle:
			if c.Players[0] == s.author {
				continue
			}
			p, ok := g.Player(c.Players[0])
			if !ok || p.WouldKnow(view, g.candidates) != c.Expect {
				return false
			}
		case TargetAnyOf:
			match := slices.ContainsFunc(c.Players, func(name string) bool {
				p, ok := g.Player(name)
				return ok && p.WouldKnow(view, g.candidates) == c.Expect
			})
			if !match {
				return false
			}
		}
	}
	return true
}

// errUnknownPlayer is wrapped into ErrInvalidStatement by Game.CheckStatement.
var errUnknownPlayer = errors.New("unknown player")
