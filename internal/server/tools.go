package server

import (
	"context"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// SearchArgs defines the search tool parameters.
type SearchArgs struct {
	Query string `json:"query" jsonschema_description:"Free-text question to find relevant knowledge base passages for"`
}

// NoArgs is used by tools that take no parameters.
type NoArgs struct{}

func (s *Server) handleSearch(ctx context.Context, _ *mcp.CallToolRequest, args SearchArgs) (*mcp.CallToolResult, any, error) {
	if strings.TrimSpace(args.Query) == "" {
		return textResult("No search was performed: the query was empty."), nil, nil
	}

	s.log.Info("tool call", "tool", "search_knowledge_base", "query", args.Query)

	text, err := s.engine.SearchFormatted(ctx, args.Query)
	if err != nil {
		return errorResult(fmt.Sprintf("Search failed: %s", err)), nil, nil
	}
	return textResult(text), nil, nil
}

func (s *Server) handleStats(ctx context.Context, _ *mcp.CallToolRequest, _ NoArgs) (*mcp.CallToolResult, any, error) {
	stats, err := s.engine.Stats(ctx)
	if err != nil {
		return errorResult(fmt.Sprintf("Stats unavailable: %s", err)), nil, nil
	}

	text := fmt.Sprintf(
		"Knowledge base: %d documents, %d chunks, %d unique terms, average chunk length %.0f characters.",
		stats.DocumentCount, stats.TotalChunks, stats.UniqueTerms, stats.AvgChunkLen,
	)
	return textResult(text), nil, nil
}

func (s *Server) handleReload(ctx context.Context, _ *mcp.CallToolRequest, _ NoArgs) (*mcp.CallToolResult, any, error) {
	s.log.Info("tool call", "tool", "reload_knowledge_base")

	if err := s.engine.Reset(ctx); err != nil {
		return errorResult(fmt.Sprintf("Reload failed, previous index kept: %s", err)), nil, nil
	}

	stats, err := s.engine.Stats(ctx)
	if err != nil {
		return errorResult(fmt.Sprintf("Reload succeeded but stats unavailable: %s", err)), nil, nil
	}
	text := fmt.Sprintf("Knowledge base reloaded: %d documents, %d chunks indexed.",
		stats.DocumentCount, stats.TotalChunks)
	return textResult(text), nil, nil
}

func registerTools(srv *mcp.Server, s *Server) {
	mcp.AddTool(srv, &mcp.Tool{
		Name:        "search_knowledge_base",
		Description: "Search the document knowledge base for passages relevant to a question",
	}, s.handleSearch)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "knowledge_base_stats",
		Description: "Report the size and composition of the knowledge base index",
	}, s.handleStats)

	mcp.AddTool(srv, &mcp.Tool{
		Name:        "reload_knowledge_base",
		Description: "Rebuild the knowledge base index from the current document set",
	}, s.handleReload)
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: true,
	}
}
