package solver

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/cheryl/internal/domain"
)

func cherylStatements() []*Statement {
	return []*Statement{
		MustStatement("0", Single("0", no), Single("1", no)),
		MustStatement("1", Single("1", yes)),
		MustStatement("0", Single("0", yes)),
	}
}

func TestNewGame(t *testing.T) {
	g, err := NewGame(append(cherylCandidates(), domain.NewCandidate(5, 15)))
	require.NoError(t, err)
	assert.Equal(t, 10, g.Len(), "duplicates collapse")
	assert.Equal(t, 2, g.Arity())
	assert.Equal(t, []string{"0", "1"}, g.PlayerNames())

	p, ok := g.Player("1")
	require.True(t, ok)
	assert.Equal(t, Player{Name: "1", Index: 1}, p)
	_, ok = g.Player("2")
	assert.False(t, ok)

	named, err := NewGame(cherylCandidates(), "albert", "bernard")
	require.NoError(t, err)
	assert.Equal(t, []Player{{"albert", 0}, {"bernard", 1}}, named.Players())
}

func TestNewGameErrors(t *testing.T) {
	cases := []struct {
		name  string
		cands []domain.Candidate
		names []string
	}{
		{"no candidates", nil, nil},
		{"zero arity", []domain.Candidate{{}}, nil},
		{"ragged", cands([]int{1, 2}, []int{1, 2, 3}), nil},
		{"duplicate names", cands([]int{0, 3, 1}, []int{1, 4, 3}), []string{"0", "0", "2"}},
		{"empty name", cands([]int{0, 3}), []string{"a", ""}},
		{"too few names", cands([]int{0, 3, 1}), []string{"a", "b"}},
		{"too many names", cands([]int{0, 3}), []string{"a", "b", "c"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewGame(tc.cands, tc.names...)
			if !errors.Is(err, ErrConfig) {
				t.Fatalf("err = %v, want ErrConfig", err)
			}
		})
	}
}

func TestCherylStepByStep(t *testing.T) {
	g := newTestGame(t, cherylCandidates())
	stmts := cherylStatements()

	g1, err := g.Filter(stmts[0])
	require.NoError(t, err)
	want := cands([]int{7, 14}, []int{7, 16}, []int{8, 14}, []int{8, 15}, []int{8, 17})
	if diff := cmp.Diff(want, g1.Candidates()); diff != "" {
		t.Fatalf("after statement 1 (-want +got):\n%s", diff)
	}

	g2, err := g1.Filter(stmts[1])
	require.NoError(t, err)
	want = cands([]int{7, 16}, []int{8, 15}, []int{8, 17})
	if diff := cmp.Diff(want, g2.Candidates()); diff != "" {
		t.Fatalf("after statement 2 (-want +got):\n%s", diff)
	}

	g3, err := g2.Filter(stmts[2])
	require.NoError(t, err)
	want = cands([]int{7, 16})
	if diff := cmp.Diff(want, g3.Candidates()); diff != "" {
		t.Fatalf("after statement 3 (-want +got):\n%s", diff)
	}

	// the parent games are untouched
	assert.Equal(t, 10, g.Len())
	assert.Equal(t, 5, g1.Len())
}

func TestCherylSolve(t *testing.T) {
	g := newTestGame(t, cherylCandidates())

	got, err := g.Solve(cherylStatements()...)
	require.NoError(t, err)
	assert.Equal(t, domain.NewCandidate(7, 16), got)

	final, err := g.FilterChain(cherylStatements()...)
	require.NoError(t, err)
	assert.True(t, final.Contains(domain.NewCandidate(7, 16)))
	assert.Equal(t, 1, final.Len())
}

func TestSolvedGameStaysSolved(t *testing.T) {
	g := newTestGame(t, cherylCandidates())
	final, err := g.FilterChain(cherylStatements()...)
	require.NoError(t, err)

	again, err := final.Filter(MustStatement("0", Single("0", yes)))
	require.NoError(t, err)
	assert.Equal(t, final.Candidates(), again.Candidates())

	_, err = final.Filter(MustStatement("0", Single("0", no)))
	assert.ErrorIs(t, err, ErrNoSolution)
}

func TestFilterSubset(t *testing.T) {
	g := newTestGame(t, biggerCandidates())
	got, err := g.Filter(MustStatement("1", Single("1", yes)))
	require.NoError(t, err)

	want := cands([]int{0, 5, 0}, []int{1, 8, 4}, []int{2, 7, 9}, []int{4, 0, 2})
	if diff := cmp.Diff(want, got.Candidates()); diff != "" {
		t.Fatalf("Filter mismatch (-want +got):\n%s", diff)
	}
}

func TestFilterKeepsAll(t *testing.T) {
	g := newTestGame(t, biggerCandidates())
	got, err := g.Filter(MustStatement("0", Single("0", no)))
	require.NoError(t, err)
	assert.Equal(t, g.Candidates(), got.Candidates())
}

func TestFilterNoSolution(t *testing.T) {
	g := newTestGame(t, biggerCandidates())
	_, err := g.Filter(MustStatement("0", Single("0", yes)))
	require.ErrorIs(t, err, ErrNoSolution)
	assert.Equal(t, 12, g.Len())
}

func TestFilterUnknownPlayer(t *testing.T) {
	g := newTestGame(t, cherylCandidates())
	_, err := g.Filter(MustStatement("0", AnyOf(yes, "1", "2")))
	assert.ErrorIs(t, err, ErrInvalidStatement)
	_, err = g.Filter(MustStatement("carol", Single("carol", yes)))
	assert.ErrorIs(t, err, ErrInvalidStatement)
}

func TestFilterIdempotentAndMonotone(t *testing.T) {
	g := newTestGame(t, biggerCandidates())
	stmts := []*Statement{
		MustStatement("0", Single("0", no), Single("1", maybe)),
		MustStatement("1", Single("1", yes)),
		MustStatement("2", Single("2", no)),
		MustStatement("1", Single("1", no), AnyOf(maybe, "0", "2")),
	}
	for _, s := range stmts {
		once, err := g.Filter(s)
		if err != nil {
			continue
		}
		for _, c := range once.Candidates() {
			assert.True(t, g.Contains(c), "%s added %v", s, c)
		}
		assert.LessOrEqual(t, once.Len(), g.Len())

		twice, err := once.Filter(s)
		require.NoError(t, err, "%s", s)
		if diff := cmp.Diff(once.Candidates(), twice.Candidates()); diff != "" {
			t.Errorf("%s not idempotent (-once +twice):\n%s", s, diff)
		}
	}
}

func TestCountSolutions(t *testing.T) {
	g := newTestGame(t, biggerCandidates())
	cases := []struct {
		name  string
		stmts []*Statement
		want  int
	}{
		{"none", []*Statement{MustStatement("0", Single("0", yes))}, 0},
		{"one", []*Statement{MustStatement("1", Single("1", yes), Single("2", yes))}, 1},
		{"many", []*Statement{MustStatement("0", Single("0", no), Single("1", maybe))}, 10},
		{"chained", []*Statement{
			MustStatement("0", Single("0", no)),
			MustStatement("1", Single("1", no)),
			MustStatement("2", Single("2", no)),
		}, 2},
		{"everything", []*Statement{MustStatement("0", Single("0", no))}, 12},
		{"no statements", nil, 12},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			before := g.Candidates()
			if got := g.CountSolutions(tc.stmts...); got != tc.want {
				t.Fatalf("CountSolutions = %d, want %d", got, tc.want)
			}
			if diff := cmp.Diff(before, g.Candidates()); diff != "" {
				t.Fatalf("CountSolutions mutated the game (-before +after):\n%s", diff)
			}
		})
	}
}

func TestSolveErrors(t *testing.T) {
	g := newTestGame(t, biggerCandidates())

	_, err := g.Solve(MustStatement("0", Single("0", yes)))
	require.ErrorIs(t, err, ErrNoSolution)
	assert.NotErrorIs(t, err, ErrMultipleSolutions)

	_, err = g.Solve(MustStatement("1", Single("1", yes)))
	require.ErrorIs(t, err, ErrMultipleSolutions)
	assert.NotErrorIs(t, err, ErrNoSolution)
	var multi *MultipleSolutionsError
	require.ErrorAs(t, err, &multi)
	assert.Equal(t, 4, multi.Count)
}

func TestSolveThreePlayers(t *testing.T) {
	g := newTestGame(t, cands(
		[]int{1931, 1, 18}, []int{1931, 10, 14}, []int{1930, 5, 10}, []int{1939, 5, 12},
		[]int{1936, 1, 12}, []int{1933, 4, 17}, []int{1931, 2, 17}, []int{1932, 1, 13},
		[]int{1936, 1, 14}, []int{1932, 10, 17},
	))
	got, err := g.Solve(
		MustStatement("0", Single("1", yes)),
		MustStatement("1", Single("1", yes)),
		MustStatement("2", Single("2", yes)),
	)
	require.NoError(t, err)
	assert.Equal(t, domain.NewCandidate(1933, 4, 17), got)
}

func TestTraceChain(t *testing.T) {
	g := newTestGame(t, cherylCandidates())
	steps, final, err := g.TraceChain(cherylStatements()...)
	require.NoError(t, err)
	require.Len(t, steps, 3)
	assert.Equal(t, 1, final.Len())

	assert.Equal(t, 1, steps[0].Index)
	assert.Equal(t, "0: 0=no 1=no", steps[0].Statement)
	assert.Len(t, steps[0].Remaining, 5)
	assert.Len(t, steps[0].Removed, 5)
	assert.Equal(t, cands([]int{7, 14}, []int{8, 14}), steps[1].Removed)
	assert.Equal(t, cands([]int{7, 16}), steps[2].Remaining)
}

func TestTraceChainStopsAtFailure(t *testing.T) {
	g := newTestGame(t, biggerCandidates())
	steps, final, err := g.TraceChain(
		MustStatement("1", Single("1", yes)),
		MustStatement("0", Single("0", no)),
	)
	require.ErrorIs(t, err, ErrNoSolution)
	assert.Nil(t, final)
	assert.Len(t, steps, 1)
	assert.Contains(t, err.Error(), "statement 2")
}
