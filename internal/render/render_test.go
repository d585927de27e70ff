package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/cheryl/internal/domain"
	"svw.info/cheryl/internal/solver"
)

func cheryl(t *testing.T) *solver.Game {
	t.Helper()
	var cs []domain.Candidate
	for _, md := range [][2]int{{5, 15}, {5, 16}, {5, 19}, {6, 17}, {6, 18}, {7, 14}, {7, 16}, {8, 14}, {8, 15}, {8, 17}} {
		cs = append(cs, domain.NewCandidate(md[0], md[1]))
	}
	g, err := solver.NewGame(cs, "m", "d")
	require.NoError(t, err)
	return g
}

func TestTable(t *testing.T) {
	lines := strings.Split(Game(cheryl(t)), "\n")
	require.Len(t, lines, 11)
	assert.Equal(t, " m  \t d  ", lines[0])
	assert.Equal(t, "5 15\t7 14", lines[1])
	assert.Equal(t, "5 19\t5 15", lines[3])
	assert.Equal(t, "8 17\t5 19", lines[10])
}

func TestTablePadsUnevenValues(t *testing.T) {
	g, err := solver.NewGame([]domain.Candidate{
		domain.NewCandidate(1, "x"),
		domain.NewCandidate(10, "abc"),
	}, "first", "second")
	require.NoError(t, err)
	assert.Equal(t, "first \tsecond\n1  x  \t10 abc\n10 abc\t1  x  ", Game(g))
}

func TestTableEmpty(t *testing.T) {
	players := []solver.Player{{Name: "a", Index: 0}, {Name: "b", Index: 1}}
	assert.Equal(t, "a\tb", Table(players, nil))
}

func TestStyledContainsEveryRow(t *testing.T) {
	g := cheryl(t)
	out := Styled(g.Players(), g.Candidates())
	for _, p := range g.Players() {
		assert.Contains(t, out, p.Name)
	}
	for _, c := range []string{"5 15", "8 17", "6 18"} {
		assert.Contains(t, out, c)
	}
	assert.Contains(t, out, "10 candidates")
}

func TestSteps(t *testing.T) {
	out := Steps([]domain.Step{
		{
			Index:     1,
			Statement: "0: 0=no",
			Remaining: []domain.Candidate{domain.NewCandidate(1, 2)},
			Removed:   []domain.Candidate{domain.NewCandidate(3, 4)},
		},
		{Index: 2, Statement: "1: 1=yes", Remaining: []domain.Candidate{domain.NewCandidate(1, 2)}},
	})
	want := "step 1: 0: 0=no\n" +
		"  remaining (1): (1, 2)\n" +
		"  removed   (1): (3, 4)\n" +
		"\n" +
		"step 2: 1: 1=yes\n" +
		"  remaining (1): (1, 2)\n" +
		"  removed   (0): -\n"
	assert.Equal(t, want, out)
}
