package tools

import (
	"context"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/lexandro/contextai-mcp/insight"
)

// PatternsArgs defines the input parameters for the get_project_patterns tool.
type PatternsArgs struct {
	AnalysisType string `json:"analysisType,omitempty" jsonschema:"Type of pattern analysis to perform: architecture, patterns, conventions or all (default all)"`
}

// PatternsHandler holds the dependencies for the get_project_patterns tool.
type PatternsHandler struct {
	Catalog *insight.Catalog
	Logger  *slog.Logger
}

// Handle processes a get_project_patterns request.
func (h *PatternsHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args PatternsArgs) (*mcp.CallToolResult, any, error) {
	start := time.Now()

	patterns, err := h.Catalog.ProjectPatterns(args.AnalysisType)
	if err != nil {
		h.Logger.Warn("get_project_patterns rejected", "analysisType", args.AnalysisType, "error", err)
		return errorResult("get_project_patterns", err), nil, nil
	}

	h.Logger.Info("get_project_patterns",
		"analysisType", args.AnalysisType,
		"architecture", len(patterns.Architecture),
		"elapsed", time.Since(start),
	)

	return textResult(FormatPatterns(patterns)), nil, nil
}
