// Package analyzer derives a structural summary of the workspace: file and
// directory counts, languages, the extension histogram, conventional
// directories, detected technologies and sample code patterns.
package analyzer

import (
	"log/slog"
	"sort"
	"strconv"

	"github.com/lexandro/contextai-mcp/cache"
	"github.com/lexandro/contextai-mcp/index"
	"github.com/lexandro/contextai-mcp/language"
)

// DefaultMaxDepth is the depth recorded when a caller does not supply one.
// The value is carried in the options but the walk is not limited by it.
const DefaultMaxDepth = 5

// Options controls one analysis.
type Options struct {
	IncludeContent bool
	MaxDepth       int
}

// ExtensionCount is one bucket of the file distribution.
type ExtensionCount struct {
	Extension string `json:"extension"`
	Count     int    `json:"count"`
}

// KeyDirectory is a directory whose name follows a well-known convention.
type KeyDirectory struct {
	Path        string `json:"path"`
	Description string `json:"description"`
}

// Technology is a framework, tool or platform detected in the workspace.
type Technology struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Analysis is the composite workspace summary.
type Analysis struct {
	TotalFiles       int              `json:"totalFiles"`
	TotalDirectories int              `json:"totalDirectories"`
	Languages        []string         `json:"languages"`
	FileDistribution []ExtensionCount `json:"fileDistribution"`
	KeyDirectories   []KeyDirectory   `json:"keyDirectories"`
	Technologies     []Technology     `json:"technologies"`
	CodePatterns     []string         `json:"codePatterns,omitempty"`
}

// Analyzer computes workspace analyses on top of the indexer.
type Analyzer struct {
	indexer *index.Indexer
	logger  *slog.Logger
}

// New creates an analyzer.
func New(indexer *index.Indexer, logger *slog.Logger) *Analyzer {
	return &Analyzer{indexer: indexer, logger: logger}
}

// Analyze returns the workspace analysis for opts. The result is cached per
// canonical options; a second call with equal options returns the same value.
func (a *Analyzer) Analyze(opts Options) Analysis {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	key := cache.Key("analysis",
		"includeContent="+strconv.FormatBool(opts.IncludeContent),
		"maxDepth="+strconv.Itoa(opts.MaxDepth),
	)

	return cache.Load(a.indexer.Store(), key, func() (Analysis, bool) {
		return a.analyze(opts), true
	})
}

func (a *Analyzer) analyze(opts Options) Analysis {
	files := a.indexer.ListFiles()
	directories := a.indexer.ListDirectories()

	counts := make(map[string]int)
	var order []string
	languages := []string{}
	seenLanguage := make(map[string]bool)

	for _, file := range files {
		ext := language.Extension(file)
		if _, ok := counts[ext]; !ok {
			order = append(order, ext)
		}
		counts[ext]++

		if name, ok := language.AnalysisName(ext); ok && !seenLanguage[name] {
			seenLanguage[name] = true
			languages = append(languages, name)
		}
	}

	distribution := make([]ExtensionCount, 0, len(order))
	for _, ext := range order {
		label := ext
		if label == "" {
			label = language.NoExtension
		}
		distribution = append(distribution, ExtensionCount{Extension: label, Count: counts[ext]})
	}
	sort.SliceStable(distribution, func(i, j int) bool {
		return distribution[i].Count > distribution[j].Count
	})

	analysis := Analysis{
		TotalFiles:       len(files),
		TotalDirectories: len(directories),
		Languages:        languages,
		FileDistribution: distribution,
		KeyDirectories:   a.KeyDirectories(),
		Technologies:     a.Technologies(),
	}
	if opts.IncludeContent {
		analysis.CodePatterns = a.CodePatterns()
	}

	a.logger.Debug("workspace analyzed",
		"files", analysis.TotalFiles,
		"directories", analysis.TotalDirectories,
		"languages", len(analysis.Languages),
		"technologies", len(analysis.Technologies),
	)
	return analysis
}
