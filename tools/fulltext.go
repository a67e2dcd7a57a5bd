package tools

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/lexandro/contextai-mcp/fulltext"
)

// FulltextArgs defines the input parameters for the search_fulltext tool.
type FulltextArgs struct {
	Query        string `json:"query" jsonschema:"Search query. Plain words match any word, quoted text is an exact phrase, /regex/ is a regular expression"`
	FileGlob     string `json:"fileGlob,omitempty" jsonschema:"Optional glob pattern to filter files (e.g. **/*.ts)"`
	MaxResults   int    `json:"maxResults,omitempty" jsonschema:"Maximum number of file results to return (default 50)"`
	ContextLines int    `json:"contextLines,omitempty" jsonschema:"Number of context lines before and after each match (default 2)"`
}

// FulltextHandler holds the dependencies for the search_fulltext tool.
type FulltextHandler struct {
	Service *fulltext.Service
	Logger  *slog.Logger
}

// Handle processes a search_fulltext request. The index is built on the
// first call.
func (h *FulltextHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args FulltextArgs) (*mcp.CallToolResult, any, error) {
	start := time.Now()

	if args.Query == "" {
		h.Logger.Warn("search_fulltext called with empty query")
		return errorResult("search_fulltext", errors.New("query parameter is required")), nil, nil
	}

	idx, err := h.Service.Index(ctx)
	if err != nil {
		h.Logger.Error("search_fulltext index build failed", "error", err)
		return errorResult("search_fulltext", err), nil, nil
	}

	contextLines := args.ContextLines
	if contextLines == 0 {
		contextLines = 2
	}

	results, totalMatches, err := idx.Search(fulltext.Options{
		Query:        args.Query,
		FileGlob:     args.FileGlob,
		MaxResults:   args.MaxResults,
		ContextLines: contextLines,
	})
	if err != nil {
		h.Logger.Error("search_fulltext failed", "query", args.Query, "error", err)
		return errorResult("search_fulltext", err), nil, nil
	}

	h.Logger.Info("search_fulltext",
		"query", args.Query,
		"fileGlob", args.FileGlob,
		"files", len(results),
		"matches", totalMatches,
		"elapsed", time.Since(start),
	)

	return textResult(FormatFulltextResults(results, totalMatches)), nil, nil
}
