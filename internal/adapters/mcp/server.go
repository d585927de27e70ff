// Package mcpadapter exposes the solver to MCP clients over stdio.
package mcpadapter

import (
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"svw.info/cheryl/internal/usecase"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates the MCP server with every cheryl tool registered.
func New(uc *usecase.Service, logger *zap.Logger) *server.MCPServer {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := server.NewMCPServer(
		"cheryl",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	solve := NewSolveTool(uc, logger)
	s.AddTool(solve.Definition(), solve.Handle)

	count := NewCountTool(uc, logger)
	s.AddTool(count.Definition(), count.Handle)

	trace := NewTraceTool(uc, logger)
	s.AddTool(trace.Definition(), trace.Handle)

	return s
}

// Serve runs s on stdin/stdout until the client disconnects.
func Serve(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

const instructions = `cheryl solves knowledge-induction puzzles such as "Cheryl's birthday".
A puzzle lists candidate tuples, one player per tuple position, and
statements of the form "author says: player X knows / does not know / may know".
Pass the puzzle as JSON or YAML text in the "puzzle" argument.`
