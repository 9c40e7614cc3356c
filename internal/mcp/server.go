package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/aj-tap/supersqlhunt/internal/fetch"
	"github.com/aj-tap/supersqlhunt/internal/submit"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes the rules catalog as tools.
type Server struct {
	source fetch.Source
	repo   submit.Repo
	mcp    *server.MCPServer
}

// NewServer creates a new MCP server over the given rules source.
func NewServer(source fetch.Source, repo submit.Repo) *Server {
	if _, ok := source.(*fetch.Once); !ok {
		source = fetch.NewOnce(source)
	}
	s := &Server{
		source: source,
		repo:   repo,
	}

	s.mcp = server.NewMCPServer(
		"sqlhunt",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(searchRulesTool, s.handleSearchRules)
	s.mcp.AddTool(getRuleTool, s.handleGetRule)
	s.mcp.AddTool(draftRuleTool, s.handleDraftRule)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
