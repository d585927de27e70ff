package solver

import (
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"svw.info/cheryl/internal/domain"
)

// Player is privately told one dimension of the solution.
type Player struct {
	Name  string
	Index int
}

// Compatible returns the candidates the player could not tell apart from
// truth: those sharing truth's value in the player's dimension.
func (p Player) Compatible(truth domain.Candidate, candidates []domain.Candidate) []domain.Candidate {
	want := truth[p.Index]
	var out []domain.Candidate
	for _, c := range candidates {
		if c[p.Index] == want {
			out = append(out, c)
		}
	}
	return out
}

// WouldKnow answers whether the player would determine the solution if
// any of truths were the real answer.
func (p Player) WouldKnow(truths, candidates []domain.Candidate) domain.Knowledge {
	cases := make([]domain.Knowledge, 0, len(truths))
	for _, t := range truths {
		cases = append(cases, Knows(p.Compatible(t, candidates)))
	}
	return Aggregate(cases...)
}

// View renders candidates as padded rows sorted by the player's dimension.
func (p Player) View(candidates []domain.Candidate) []string {
	if len(candidates) == 0 {
		return nil
	}
	widths := maxWidths(candidates)
	sorted := slices.Clone(candidates)
	slices.SortFunc(sorted, func(a, b domain.Candidate) int {
		if d := a[p.Index].Compare(b[p.Index]); d != 0 {
			return d
		}
		return a.Compare(b)
	})
	rows := make([]string, len(sorted))
	for i, c := range sorted {
		rows[i] = formatCandidate(c, widths)
	}
	return rows
}

func (p Player) String() string {
	return fmt.Sprintf("Player(%q, %d)", p.Name, p.Index)
}

func formatCandidate(c domain.Candidate, widths []int) string {
	parts := make([]string, len(c))
	for i, v := range c {
		parts[i] = fmt.Sprintf("%-*s", widths[i], v.String())
	}
	return strings.Join(parts, " ")
}

// maxWidths gives, per dimension, the widest value among candidates.
func maxWidths(candidates []domain.Candidate) []int {
	widths := make([]int, len(candidates[0]))
	for _, c := range candidates {
		for i, v := range c {
			widths[i] = max(widths[i], utf8.RuneCountInString(v.String()))
		}
	}
	return widths
}
