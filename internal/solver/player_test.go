package solver

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/cheryl/internal/domain"
)

func TestPlayerCompatible(t *testing.T) {
	p := Player{Name: "0", Index: 1}
	in := cands([]int{3, 1, 1}, []int{4, 4, 2}, []int{5, 1, 3}, []int{1, 2, 0})

	got := p.Compatible(in[0], in)
	want := cands([]int{3, 1, 1}, []int{5, 1, 3})
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("Compatible mismatch (-want +got):\n%s", diff)
	}
}

func TestPlayerCompatibleContainsTruth(t *testing.T) {
	all := biggerCandidates()
	for idx := 0; idx < 3; idx++ {
		p := Player{Name: "p", Index: idx}
		for _, truth := range all {
			got := p.Compatible(truth, all)
			require.Contains(t, got, truth)
			for _, c := range got {
				assert.Equal(t, truth[idx], c[idx])
			}
		}
	}
}

func TestPlayerWouldKnow(t *testing.T) {
	all := biggerCandidates()
	p := Player{Name: "1", Index: 1}

	// 7 appears once in dimension 1.
	assert.Equal(t, yes, p.WouldKnow(cands([]int{2, 7, 9}), all))
	// 1 appears four times.
	assert.Equal(t, no, p.WouldKnow(cands([]int{0, 1, 3}), all))
	assert.Equal(t, maybe, p.WouldKnow(cands([]int{2, 7, 9}, []int{0, 1, 3}), all))
	assert.Equal(t, yes, p.WouldKnow(nil, all))
}

func TestPlayerView(t *testing.T) {
	in := cands([]int{5, 15}, []int{10, 2}, []int{5, 1})

	byMonth := Player{Name: "0", Index: 0}.View(in)
	assert.Equal(t, []string{"5  1 ", "5  15", "10 2 "}, byMonth)

	byDay := Player{Name: "1", Index: 1}.View(in)
	assert.Equal(t, []string{"5  1 ", "10 2 ", "5  15"}, byDay)

	assert.Nil(t, Player{}.View(nil))
}

func TestPlayerViewStrings(t *testing.T) {
	in := []domain.Candidate{
		domain.NewCandidate("May", 15),
		domain.NewCandidate("June", 17),
	}
	got := Player{Name: "day", Index: 1}.View(in)
	assert.Equal(t, []string{"May  15", "June 17"}, got)
}
