package mcp

import "github.com/mark3labs/mcp-go/mcp"

// searchPapersTool defines the search_papers MCP tool.
var searchPapersTool = mcp.NewTool("search_papers",
	mcp.WithDescription("Semantically search the ingested paper index. Returns ranked papers with titles, links, and abstracts."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Natural language search query"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of results to return (default 5)"),
	),
)

// summarizeTopicTool defines the summarize_topic MCP tool.
var summarizeTopicTool = mcp.NewTool("summarize_topic",
	mcp.WithDescription("Generate a structured summary of the ingested papers most relevant to a topic."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Research topic or question"),
	),
	mcp.WithNumber("top_k",
		mcp.Description("Number of papers to ground the summary on (default 5)"),
	),
)

// listPapersTool defines the list_papers MCP tool.
var listPapersTool = mcp.NewTool("list_papers",
	mcp.WithDescription("List the most recently ingested papers from the local registry."),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of papers to list (default 50)"),
	),
)
