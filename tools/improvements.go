package tools

import (
	"context"
	"log/slog"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/lexandro/contextai-mcp/insight"
)

// ImprovementsArgs defines the input parameters for the suggest_improvements tool.
type ImprovementsArgs struct {
	Scope string `json:"scope,omitempty" jsonschema:"Scope of improvements to suggest: security, performance, maintainability or all (default all)"`
}

// ImprovementsHandler holds the dependencies for the suggest_improvements tool.
type ImprovementsHandler struct {
	Catalog *insight.Catalog
	Logger  *slog.Logger
}

// Handle processes a suggest_improvements request.
func (h *ImprovementsHandler) Handle(ctx context.Context, req *mcp.CallToolRequest, args ImprovementsArgs) (*mcp.CallToolResult, any, error) {
	start := time.Now()

	suggestions, err := h.Catalog.SuggestImprovements(args.Scope)
	if err != nil {
		h.Logger.Warn("suggest_improvements rejected", "scope", args.Scope, "error", err)
		return errorResult("suggest_improvements", err), nil, nil
	}

	h.Logger.Info("suggest_improvements",
		"scope", args.Scope,
		"suggestions", len(suggestions),
		"elapsed", time.Since(start),
	)

	return textResult(FormatImprovements(suggestions)), nil, nil
}
