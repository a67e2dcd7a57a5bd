package tools

import (
	"context"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/lexandro/contextai-mcp/analyzer"
)

// AnalyzeArgs defines the input parameters for the analyze_workspace tool.
type AnalyzeArgs struct {
	IncludeContent bool `json:"includeContent,omitempty" jsonschema:"Include file contents in analysis (default false)"`
	MaxDepth       int  `json:"maxDepth,omitempty" jsonschema:"Maximum directory depth to analyze (default 5)"`
}

// AnalyzeHandler holds the dependencies for the analyze_workspace tool.
type AnalyzeHandler struct {
	Analyzer *analyzer.Analyzer
	Logger   *slog.Logger
}

// Handle processes an analyze_workspace request.
func (h *AnalyzeHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args AnalyzeArgs) (*mcp.CallToolResult, any, error) {
	start := time.Now()

	analysis := h.Analyzer.Analyze(analyzer.Options{
		IncludeContent: args.IncludeContent,
		MaxDepth:       args.MaxDepth,
	})

	h.Logger.Info("analyze_workspace",
		"includeContent", args.IncludeContent,
		"maxDepth", args.MaxDepth,
		"files", analysis.TotalFiles,
		"directories", analysis.TotalDirectories,
		"elapsed", time.Since(start),
	)

	return textResult(FormatAnalysis(analysis, args.IncludeContent)), nil, nil
}
