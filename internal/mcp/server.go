// Package mcp exposes paper search and summarization as MCP tools over
// stdio, so AI agents can drive the research pipeline directly.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/paperscout/paperscout/internal/agent"
	"github.com/paperscout/paperscout/internal/registry"
	"github.com/paperscout/paperscout/internal/vectordb"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes the paper research tools.
type Server struct {
	store    vectordb.PaperStore
	agent    *agent.Agent
	registry *registry.Store
	mcp      *server.MCPServer
}

// NewServer creates a new MCP server with the given dependencies.
func NewServer(store vectordb.PaperStore, ag *agent.Agent, reg *registry.Store) *Server {
	s := &Server{
		store:    store,
		agent:    ag,
		registry: reg,
	}

	s.mcp = server.NewMCPServer(
		"paperscout",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers.
func (s *Server) registerTools() {
	s.mcp.AddTool(searchPapersTool, s.handleSearchPapers)
	s.mcp.AddTool(summarizeTopicTool, s.handleSummarizeTopic)
	s.mcp.AddTool(listPapersTool, s.handleListPapers)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
