package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/paperscout/paperscout/internal/prompt"
)

// handleSearchPapers performs semantic search over the paper index.
func (s *Server) handleSearchPapers(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	limit := request.GetInt("limit", 5)

	results, err := s.store.Search(ctx, query, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	if len(results) == 0 {
		return mcp.NewToolResultText("No results found. The index may be empty; run `paperscout ingest` first."), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d result(s):\n\n", len(results))
	for i, r := range results {
		fmt.Fprintf(&sb, "%d. [%.4f] %s\n   %s\n   %s\n\n",
			i+1, r.Score, prompt.CleanTitle(r.Title), r.URL, prompt.TruncateDisplay(r.Abstract, 600))
	}

	return mcp.NewToolResultText(sb.String()), nil
}

// handleSummarizeTopic runs the RAG summarizer over the index.
func (s *Server) handleSummarizeTopic(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	topK := request.GetInt("top_k", 5)

	summary, err := s.agent.Summarize(ctx, query, topK)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("summarize failed: %v", err)), nil
	}

	return mcp.NewToolResultText(summary), nil
}

// handleListPapers lists recently ingested papers from the registry.
func (s *Server) handleListPapers(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.registry == nil {
		return mcp.NewToolResultError("paper registry is not available"), nil
	}

	limit := request.GetInt("limit", 50)

	entries, err := s.registry.List(ctx, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("listing papers failed: %v", err)), nil
	}

	if len(entries) == 0 {
		return mcp.NewToolResultText("No papers ingested yet. Run `paperscout ingest` first."), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d paper(s) in the registry:\n\n", len(entries))
	for _, e := range entries {
		fmt.Fprintf(&sb, "- %s (%s)\n  %s\n", prompt.CleanTitle(e.Title), e.SourceID, e.URL)
	}

	return mcp.NewToolResultText(sb.String()), nil
}
