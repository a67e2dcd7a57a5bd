// Package insight builds higher-level views of the workspace on top of the
// analyzer: project patterns, the context summary and improvement
// suggestions.
package insight

import (
	"errors"
	"log/slog"

	"github.com/lexandro/contextai-mcp/analyzer"
	"github.com/lexandro/contextai-mcp/index"
)

var (
	// ErrUnknownAnalysisType is returned for an analysis type outside AnalysisTypes.
	ErrUnknownAnalysisType = errors.New("unknown analysis type")
	// ErrUnknownScope is returned for a scope outside Scopes.
	ErrUnknownScope = errors.New("unknown scope")
)

// analyzerDefaults are the options used where no caller preference applies.
var analyzerDefaults = analyzer.Options{}

// Catalog answers insight requests for one workspace.
type Catalog struct {
	analyzer *analyzer.Analyzer
	indexer  *index.Indexer
	logger   *slog.Logger
}

// New creates a catalog.
func New(a *analyzer.Analyzer, indexer *index.Indexer, logger *slog.Logger) *Catalog {
	return &Catalog{analyzer: a, indexer: indexer, logger: logger}
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}
