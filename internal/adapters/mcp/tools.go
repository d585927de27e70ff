package mcpadapter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"svw.info/cheryl/internal/domain"
	"svw.info/cheryl/internal/puzzlefile"
	"svw.info/cheryl/internal/render"
	"svw.info/cheryl/internal/solver"
	"svw.info/cheryl/internal/usecase"
)

const puzzleArgHelp = "The puzzle as JSON or YAML: candidates (list of tuples), " +
	"optional players (one name per tuple position) and statements " +
	"({author, conditions: [{player | anyOf, knows: no|maybe|yes}]})."

// puzzleArg reads and parses the required "puzzle" argument. A non-nil
// result is the error to hand back to the client.
func puzzleArg(req mcp.CallToolRequest) (*domain.Puzzle, *mcp.CallToolResult) {
	text := req.GetString("puzzle", "")
	if strings.TrimSpace(text) == "" {
		return nil, mcp.NewToolResultError("'puzzle' is required")
	}
	ext := ".yaml"
	if strings.HasPrefix(strings.TrimSpace(text), "{") {
		ext = ".json"
	}
	p, err := puzzlefile.Parse([]byte(text), ext)
	if err != nil {
		return nil, mcp.NewToolResultError(fmt.Sprintf("Invalid puzzle: %v", err))
	}
	return p, nil
}

// SolveTool handles the cheryl_solve MCP tool.
type SolveTool struct {
	uc  *usecase.Service
	log *zap.Logger
}

func NewSolveTool(uc *usecase.Service, logger *zap.Logger) *SolveTool {
	return &SolveTool{uc: uc, log: logger}
}

func (t *SolveTool) Definition() mcp.Tool {
	return mcp.NewTool("cheryl_solve",
		mcp.WithDescription(
			"Filter a puzzle's candidates through its statements and return the unique solution. "+
				"Reports when the statements leave no candidate or more than one.",
		),
		mcp.WithString("puzzle", mcp.Required(), mcp.Description(puzzleArgHelp)),
	)
}

func (t *SolveTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, bad := puzzleArg(req)
	if bad != nil {
		return bad, nil
	}
	sol, st, err := t.uc.Solve(ctx, p)
	t.log.Debug("mcp solve", zap.Int("evaluations", st.Evaluations), zap.Error(err))
	var multi *solver.MultipleSolutionsError
	switch {
	case errors.As(err, &multi):
		return mcp.NewToolResultError(fmt.Sprintf("No unique solution: %d candidates remain.", multi.Count)), nil
	case errors.Is(err, solver.ErrNoSolution):
		return mcp.NewToolResultError(fmt.Sprintf("No solution: %v", err)), nil
	case err != nil:
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Solution: %s\nEvaluations: %d", sol, st.Evaluations)), nil
}

// CountTool handles the cheryl_count MCP tool.
type CountTool struct {
	uc  *usecase.Service
	log *zap.Logger
}

func NewCountTool(uc *usecase.Service, logger *zap.Logger) *CountTool {
	return &CountTool{uc: uc, log: logger}
}

func (t *CountTool) Definition() mcp.Tool {
	return mcp.NewTool("cheryl_count",
		mcp.WithDescription("Count the candidates that survive a puzzle's statements. A contradictory puzzle counts 0."),
		mcp.WithString("puzzle", mcp.Required(), mcp.Description(puzzleArgHelp)),
	)
}

func (t *CountTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, bad := puzzleArg(req)
	if bad != nil {
		return bad, nil
	}
	n, _, err := t.uc.Count(ctx, p)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Solutions: %d", n)), nil
}

// TraceTool handles the cheryl_trace MCP tool.
type TraceTool struct {
	uc  *usecase.Service
	log *zap.Logger
}

func NewTraceTool(uc *usecase.Service, logger *zap.Logger) *TraceTool {
	return &TraceTool{uc: uc, log: logger}
}

func (t *TraceTool) Definition() mcp.Tool {
	return mcp.NewTool("cheryl_trace",
		mcp.WithDescription(
			"Explain a puzzle statement by statement: which candidates each statement keeps and removes.",
		),
		mcp.WithString("puzzle", mcp.Required(), mcp.Description(puzzleArgHelp)),
	)
}

func (t *TraceTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, bad := puzzleArg(req)
	if bad != nil {
		return bad, nil
	}
	steps, err := t.uc.Trace(ctx, p)
	out := render.Steps(steps)
	if err != nil {
		if len(steps) == 0 {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultError(out + "\nstopped: " + err.Error()), nil
	}
	return mcp.NewToolResultText(out), nil
}
