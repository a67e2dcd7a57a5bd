package tools

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/lexandro/contextai-mcp/search"
)

// SearchArgs defines the input parameters for the search_codebase tool.
type SearchArgs struct {
	Query          string   `json:"query" jsonschema:"Search query (can be regex, function names, or natural language)"`
	FileTypes      []string `json:"fileTypes,omitempty" jsonschema:"File extensions to search in (e.g. .ts, .js, .py)"`
	IncludeContext *bool    `json:"includeContext,omitempty" jsonschema:"Include surrounding context for matches (default true)"`
}

// SearchHandler holds the dependencies for the search_codebase tool.
type SearchHandler struct {
	Engine *search.Engine
	Logger *slog.Logger
}

// Handle processes a search_codebase request.
func (h *SearchHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args SearchArgs) (*mcp.CallToolResult, any, error) {
	start := time.Now()

	if args.Query == "" {
		h.Logger.Warn("search_codebase called with empty query")
		return errorResult("search_codebase", errors.New("query parameter is required")), nil, nil
	}

	includeContext := true
	if args.IncludeContext != nil {
		includeContext = *args.IncludeContext
	}

	matches := h.Engine.Search(search.Options{
		Query:          args.Query,
		FileTypes:      args.FileTypes,
		IncludeContext: includeContext,
	})

	h.Logger.Info("search_codebase",
		"query", args.Query,
		"fileTypes", args.FileTypes,
		"pattern", search.IsPattern(args.Query),
		"matches", len(matches),
		"elapsed", time.Since(start),
	)

	return textResult(FormatMatches(args.Query, matches)), nil, nil
}
