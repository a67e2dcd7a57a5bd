package tools

import (
	"context"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/lexandro/contextai-mcp/insight"
)

// SummaryArgs defines the input parameters for the get_context_summary tool.
type SummaryArgs struct {
	FocusArea       string `json:"focusArea,omitempty" jsonschema:"Specific area to focus on (e.g. frontend, backend, testing)"`
	IncludeExamples *bool  `json:"includeExamples,omitempty" jsonschema:"Include code examples in the summary (default true)"`
}

// SummaryHandler holds the dependencies for the get_context_summary tool.
type SummaryHandler struct {
	Catalog *insight.Catalog
	Logger  *slog.Logger
}

// Handle processes a get_context_summary request.
func (h *SummaryHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args SummaryArgs) (*mcp.CallToolResult, any, error) {
	start := time.Now()

	includeExamples := true
	if args.IncludeExamples != nil {
		includeExamples = *args.IncludeExamples
	}

	summary := h.Catalog.ContextSummary(insight.SummaryOptions{
		FocusArea:       args.FocusArea,
		IncludeExamples: includeExamples,
	})

	h.Logger.Info("get_context_summary",
		"focusArea", args.FocusArea,
		"includeExamples", includeExamples,
		"length", len(summary),
		"elapsed", time.Since(start),
	)

	return textResult(summary), nil, nil
}
