package tools

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/lexandro/contextai-mcp/deps"
)

// DependenciesArgs defines the input parameters for the get_file_dependencies tool.
type DependenciesArgs struct {
	FilePath          string `json:"filePath" jsonschema:"Path to the file to analyze (absolute or relative to the workspace root)"`
	IncludeTransitive bool   `json:"includeTransitive,omitempty" jsonschema:"Include transitive dependencies (default false)"`
}

// DependenciesHandler holds the dependencies for the get_file_dependencies tool.
type DependenciesHandler struct {
	Extractor *deps.Extractor
	Logger    *slog.Logger
}

// Handle processes a get_file_dependencies request.
func (h *DependenciesHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args DependenciesArgs) (*mcp.CallToolResult, any, error) {
	start := time.Now()

	if args.FilePath == "" {
		h.Logger.Warn("get_file_dependencies called with empty filePath")
		return errorResult("get_file_dependencies", errors.New("filePath parameter is required")), nil, nil
	}

	analysis := h.Extractor.Analyze(args.FilePath, args.IncludeTransitive)

	h.Logger.Info("get_file_dependencies",
		"filePath", args.FilePath,
		"includeTransitive", args.IncludeTransitive,
		"direct", len(analysis.Direct),
		"dependents", len(analysis.Dependents),
		"elapsed", time.Since(start),
	)

	return textResult(FormatDependencies(args.FilePath, analysis, args.IncludeTransitive)), nil, nil
}
