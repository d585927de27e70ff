package mcpadapter

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"svw.info/cheryl/internal/solver"
	"svw.info/cheryl/internal/trace"
	"svw.info/cheryl/internal/usecase"
)

const cherylJSON = `{
  "players": ["albert", "bernard"],
  "candidates": [[5,15],[5,16],[5,19],[6,17],[6,18],[7,14],[7,16],[8,14],[8,15],[8,17]],
  "statements": [
    {"author": "albert", "conditions": [{"player": "albert", "knows": "no"}, {"player": "bernard", "knows": "no"}]},
    {"author": "bernard", "conditions": [{"player": "bernard", "knows": "yes"}]},
    {"author": "albert", "conditions": [{"player": "albert", "knows": "yes"}]}
  ]
}`

const ambiguousYAML = `candidates: [[1, 2], [1, 3], [2, 3]]
statements:
  - author: "0"
    conditions:
      - any_of: ["1"]
        knows: maybe
`

func service() *usecase.Service {
	return usecase.NewService(solver.NewPuzzleSolver(), nil, nil, trace.NewSteps(nil), nil)
}

func call(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func isErrorResult(result *mcp.CallToolResult) bool {
	return result != nil && result.IsError
}

func getResultText(result *mcp.CallToolResult) string {
	if result == nil || len(result.Content) == 0 {
		return ""
	}
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestDefinitions(t *testing.T) {
	uc := service()
	names := map[string]mcp.Tool{
		"cheryl_solve": NewSolveTool(uc, nil).Definition(),
		"cheryl_count": NewCountTool(uc, nil).Definition(),
		"cheryl_trace": NewTraceTool(uc, nil).Definition(),
	}
	for want, def := range names {
		if def.Name != want {
			t.Errorf("name = %q, want %q", def.Name, want)
		}
		if len(def.InputSchema.Required) != 1 || def.InputSchema.Required[0] != "puzzle" {
			t.Errorf("%s required = %v, want [puzzle]", want, def.InputSchema.Required)
		}
	}
	if New(uc, nil) == nil {
		t.Fatal("New returned nil server")
	}
}

func TestSolveTool(t *testing.T) {
	tool := NewSolveTool(service(), nil)
	res, err := tool.Handle(context.Background(), call(map[string]interface{}{"puzzle": cherylJSON}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if isErrorResult(res) {
		t.Fatalf("expected success, got error: %s", getResultText(res))
	}
	if text := getResultText(res); !strings.Contains(text, "Solution: (7, 16)") {
		t.Errorf("unexpected result %q", text)
	}
}

func TestSolveToolAmbiguous(t *testing.T) {
	tool := NewSolveTool(service(), nil)
	res, err := tool.Handle(context.Background(), call(map[string]interface{}{"puzzle": ambiguousYAML}))
	if err != nil {
		t.Fatalf("Handle failed: %v", err)
	}
	if !isErrorResult(res) || !strings.Contains(getResultText(res), "2 candidates remain") {
		t.Fatalf("expected ambiguity error, got %q", getResultText(res))
	}
}

func TestSolveToolBadInput(t *testing.T) {
	tool := NewSolveTool(service(), nil)
	for _, args := range []map[string]interface{}{
		{},
		{"puzzle": "   "},
		{"puzzle": "{not json"},
		{"puzzle": `{"candidates": [[1]], "statements": [{"author": "x", "conditions": [{"player": "x", "knows": "no"}]}]}`},
	} {
		res, err := tool.Handle(context.Background(), call(args))
		if err != nil {
			t.Fatalf("Handle(%v) returned protocol error: %v", args, err)
		}
		if !isErrorResult(res) {
			t.Errorf("Handle(%v) = %q, want tool error", args, getResultText(res))
		}
	}
}

func TestCountTool(t *testing.T) {
	tool := NewCountTool(service(), nil)
	res, err := tool.Handle(context.Background(), call(map[string]interface{}{"puzzle": ambiguousYAML}))
	if err != nil || isErrorResult(res) {
		t.Fatalf("Handle = %q, %v", getResultText(res), err)
	}
	if got := getResultText(res); got != "Solutions: 2" {
		t.Errorf("got %q, want Solutions: 2", got)
	}
}

func TestTraceTool(t *testing.T) {
	tool := NewTraceTool(service(), nil)
	res, err := tool.Handle(context.Background(), call(map[string]interface{}{"puzzle": cherylJSON}))
	if err != nil || isErrorResult(res) {
		t.Fatalf("Handle = %q, %v", getResultText(res), err)
	}
	text := getResultText(res)
	for _, want := range []string{"step 1: albert:", "step 3: albert:", "remaining (1): (7, 16)"} {
		if !strings.Contains(text, want) {
			t.Errorf("trace missing %q:\n%s", want, text)
		}
	}
}
