// Package render turns games and traces into text for terminals and logs.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"svw.info/cheryl/internal/domain"
	"svw.info/cheryl/internal/solver"
)

// Table lays the candidates out once per player, each column sorted by
// that player's dimension, with the player's name centred on top.
// Columns are separated by tabs.
func Table(players []solver.Player, candidates []domain.Candidate) string {
	views := make([][]string, len(players))
	width := 0
	for i, p := range players {
		views[i] = p.View(candidates)
	}
	if len(candidates) > 0 && len(views) > 0 {
		width = lipgloss.Width(views[0][0])
	}

	names := make([]string, len(players))
	for i, p := range players {
		names[i] = center(p.Name, width)
	}
	lines := []string{strings.Join(names, "\t")}
	for row := range candidates {
		cells := make([]string, len(views))
		for i := range views {
			cells[i] = views[i][row]
		}
		lines = append(lines, strings.Join(cells, "\t"))
	}
	return strings.Join(lines, "\n")
}

// Game renders the game's current candidate set with Table.
func Game(g *solver.Game) string {
	return Table(g.Players(), g.Candidates())
}

// center pads s on both sides to width; an odd remainder goes right.
func center(s string, width int) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	left := gap / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BC34A"))
	cellStyle   = lipgloss.NewStyle().PaddingRight(2)
	boxStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#2a3850")).
			Padding(0, 1)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280"))
)

// Styled is Table for terminals: one boxed block with a bold header per
// player column.
func Styled(players []solver.Player, candidates []domain.Candidate) string {
	cols := make([]string, len(players))
	for i, p := range players {
		view := p.View(candidates)
		var sb strings.Builder
		sb.WriteString(headerStyle.Render(p.Name))
		for _, row := range view {
			sb.WriteString("\n")
			sb.WriteString(row)
		}
		style := cellStyle
		if i == len(players)-1 {
			style = lipgloss.NewStyle()
		}
		cols[i] = style.Render(sb.String())
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, cols...)
	footer := mutedStyle.Render(fmt.Sprintf("%d candidates", len(candidates)))
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, body, footer))
}

// Steps prints a trace, one block per statement.
func Steps(steps []domain.Step) string {
	var sb strings.Builder
	for i, st := range steps {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "step %d: %s\n", st.Index, st.Statement)
		fmt.Fprintf(&sb, "  remaining (%d): %s\n", len(st.Remaining), joinCandidates(st.Remaining))
		fmt.Fprintf(&sb, "  removed   (%d): %s\n", len(st.Removed), joinCandidates(st.Removed))
	}
	return sb.String()
}

func joinCandidates(cs []domain.Candidate) string {
	if len(cs) == 0 {
		return "-"
	}
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
