package domain

import (
	"cmp"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Candidate is one possible joint value of all hidden dimensions.
type Candidate []Value

// NewCandidate converts numbers and strings with ValueOf; anything else
// becomes the string %v prints for it.
func NewCandidate(vals ...any) Candidate {
	c := make(Candidate, len(vals))
	for i, x := range vals {
		v, err := ValueOf(x)
		if err != nil {
			v = Str(fmt.Sprint(x))
		}
		c[i] = v
	}
	return c
}

// Key identifies the candidate inside a set.
func (c Candidate) Key() string {
	var sb strings.Builder
	for i, v := range c {
		if i > 0 {
			sb.WriteByte(',')
		}
		if v.num {
			sb.WriteByte('n')
		} else {
			sb.WriteByte('s')
		}
		sb.WriteString(strconv.Quote(v.text))
	}
	return sb.String()
}

func (c Candidate) Equal(o Candidate) bool {
	return slices.Equal(c, o)
}

// Compare orders candidates element by element, shorter first on a tie.
func (c Candidate) Compare(o Candidate) int {
	for i := 0; i < len(c) && i < len(o); i++ {
		if d := c[i].Compare(o[i]); d != 0 {
			return d
		}
	}
	return cmp.Compare(len(c), len(o))
}

func (c Candidate) Clone() Candidate {
	return slices.Clone(c)
}

func (c Candidate) String() string {
	parts := make([]string, len(c))
	for i, v := range c {
		parts[i] = v.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// SortCandidates sorts in place by Candidate.Compare.
func SortCandidates(cs []Candidate) {
	slices.SortFunc(cs, Candidate.Compare)
}

// ConditionSpec is the serialisable form of one statement condition.
// Exactly one of Player and AnyOf is set.
type ConditionSpec struct {
	Player string    `json:"player,omitempty" yaml:"player,omitempty"`
	AnyOf  []string  `json:"anyOf,omitempty" yaml:"any_of,omitempty"`
	Knows  Knowledge `json:"knows" yaml:"knows"`
}

// StatementSpec is the serialisable form of a statement.
type StatementSpec struct {
	Author     string          `json:"author" yaml:"author"`
	Conditions []ConditionSpec `json:"conditions" yaml:"conditions"`
}

// Puzzle is a persisted induction puzzle with metadata.
type Puzzle struct {
	ID         string          `json:"id,omitempty" yaml:"id,omitempty"`
	Name       string          `json:"name,omitempty" yaml:"name,omitempty"`
	Seed       int64           `json:"seed,omitempty" yaml:"seed,omitempty"`
	Players    []string        `json:"players,omitempty" yaml:"players,omitempty"`
	Candidates []Candidate     `json:"candidates" yaml:"candidates"`
	Statements []StatementSpec `json:"statements,omitempty" yaml:"statements,omitempty"`
	CreatedAt  int64           `json:"createdAt,omitempty" yaml:"created_at,omitempty"`
	// Optional user metadata
	Notes string `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// PuzzleMeta is a lightweight listing entry.
type PuzzleMeta struct {
	ID         string   `json:"id"`
	Name       string   `json:"name,omitempty"`
	Players    []string `json:"players,omitempty"`
	Candidates int      `json:"candidates"`
	CreatedAt  int64    `json:"createdAt"`
}

// Meta summarises p for listings.
func (p *Puzzle) Meta() PuzzleMeta {
	return PuzzleMeta{
		ID:         p.ID,
		Name:       p.Name,
		Players:    p.Players,
		Candidates: len(p.Candidates),
		CreatedAt:  p.CreatedAt,
	}
}

// GenerateRequest asks for a puzzle with a unique solution under Statements.
type GenerateRequest struct {
	Name       string          `json:"name,omitempty" yaml:"name,omitempty"`
	Players    []string        `json:"players,omitempty" yaml:"players,omitempty"`
	Domains    [][]Value       `json:"domains" yaml:"domains"`
	Candidates int             `json:"candidates" yaml:"candidates"`
	Statements []StatementSpec `json:"statements" yaml:"statements"`
	// Seed drives sampling; nil means seed from the clock. Zero is a
	// valid, reproducible seed.
	Seed  *int64 `json:"seed,omitempty" yaml:"seed,omitempty"`
	Tries int    `json:"tries,omitempty" yaml:"tries,omitempty"`
}

// Seed returns a pointer to n for GenerateRequest.Seed.
func Seed(n int64) *int64 { return &n }

// Problem is one finding of the puzzle validator.
type Problem struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (p Problem) String() string {
	return p.Field + ": " + p.Message
}

// Step records the effect of one statement in a filter chain.
type Step struct {
	Index     int         `json:"index"`
	Statement string      `json:"statement"`
	Remaining []Candidate `json:"remaining"`
	Removed   []Candidate `json:"removed,omitempty"`
}
