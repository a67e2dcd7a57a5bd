package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/lexandro/contextai-mcp/index"
	"github.com/lexandro/contextai-mcp/language"
)

// ReadArgs defines the input parameters for the read_file tool.
type ReadArgs struct {
	FilePath string `json:"filePath" jsonschema:"File path relative to the workspace root (e.g. src/index.ts)"`
	Offset   int    `json:"offset,omitempty" jsonschema:"1-based line number to start reading from (default 1)"`
	Limit    int    `json:"limit,omitempty" jsonschema:"Maximum number of lines to return (default all)"`
}

// ReadHandler holds the dependencies for the read_file tool.
type ReadHandler struct {
	Indexer *index.Indexer
	Logger  *slog.Logger
}

// Handle processes a read_file request. Only non-ignored text files under
// the workspace root can be read.
func (h *ReadHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args ReadArgs) (*mcp.CallToolResult, any, error) {
	start := time.Now()

	if args.FilePath == "" {
		h.Logger.Warn("read_file called with empty filePath")
		return errorResult("read_file", errors.New("filePath parameter is required")), nil, nil
	}

	abs := h.Indexer.Resolve(args.FilePath)
	data, err := h.Indexer.ReadBytes(abs)
	if err != nil {
		h.Logger.Info("read_file file not found", "filePath", args.FilePath, "error", err)
		return errorResult("read_file", fmt.Errorf("file not found in workspace: %s", args.FilePath)), nil, nil
	}
	if language.IsBinaryContent(data) {
		return errorResult("read_file", fmt.Errorf("binary file: %s", args.FilePath)), nil, nil
	}

	rel := h.Indexer.Relative(abs)
	h.Logger.Info("read_file",
		"filePath", rel,
		"bytes", len(data),
		"offset", args.Offset,
		"limit", args.Limit,
		"elapsed", time.Since(start),
	)

	return textResult(FormatFileContent(rel, string(data), args.Offset, args.Limit)), nil, nil
}
