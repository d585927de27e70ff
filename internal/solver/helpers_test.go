package solver

import "svw.info/cheryl/internal/domain"

func cands(rows ...[]int) []domain.Candidate {
	out := make([]domain.Candidate, len(rows))
	for i, r := range rows {
		vals := make([]any, len(r))
		for j, v := range r {
			vals[j] = v
		}
		out[i] = domain.NewCandidate(vals...)
	}
	return out
}

// cherylCandidates is the Singapore olympiad puzzle: (month, day).
func cherylCandidates() []domain.Candidate {
	return cands(
		[]int{5, 15}, []int{5, 16}, []int{5, 19},
		[]int{6, 17}, []int{6, 18},
		[]int{7, 14}, []int{7, 16},
		[]int{8, 14}, []int{8, 15}, []int{8, 17},
	)
}

func biggerCandidates() []domain.Candidate {
	return cands(
		[]int{0, 1, 3}, []int{0, 5, 0},
		[]int{1, 2, 3}, []int{1, 4, 2}, []int{1, 8, 4},
		[]int{2, 1, 6}, []int{2, 7, 9},
		[]int{4, 0, 2}, []int{4, 1, 0}, []int{4, 2, 9},
		[]int{5, 1, 8}, []int{5, 4, 1},
	)
}

const (
	no    = domain.KnowsNo
	maybe = domain.KnowsMaybe
	yes   = domain.KnowsYes
)
