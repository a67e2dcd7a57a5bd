package tools

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/lexandro/contextai-mcp/index"
)

// FindFilesArgs defines the input parameters for the find_files tool.
type FindFilesArgs struct {
	Pattern    string `json:"pattern" jsonschema:"Glob pattern matched against workspace-relative paths (e.g. **/*.ts or src/**/*.py)"`
	MaxResults int    `json:"maxResults,omitempty" jsonschema:"Maximum number of paths to return (default 50)"`
}

// FindFilesHandler holds the dependencies for the find_files tool.
type FindFilesHandler struct {
	Indexer *index.Indexer
	Logger  *slog.Logger
}

// Handle processes a find_files request.
func (h *FindFilesHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args FindFilesArgs) (*mcp.CallToolResult, any, error) {
	start := time.Now()

	if args.Pattern == "" {
		h.Logger.Warn("find_files called with empty pattern")
		return errorResult("find_files", errors.New("pattern parameter is required")), nil, nil
	}

	paths, total, err := h.Indexer.FindByGlob(args.Pattern, args.MaxResults)
	if err != nil {
		h.Logger.Error("find_files failed", "pattern", args.Pattern, "error", err)
		return errorResult("find_files", err), nil, nil
	}

	h.Logger.Info("find_files",
		"pattern", args.Pattern,
		"results", len(paths),
		"total", total,
		"elapsed", time.Since(start),
	)

	return textResult(FormatFileList(paths, total)), nil, nil
}
