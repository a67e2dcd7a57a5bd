package insight

import (
	"fmt"
	"strings"

	"github.com/lexandro/contextai-mcp/analyzer"
)

const (
	focusFileLimit    = 10
	distributionLimit = 10
)

// SummaryOptions controls ContextSummary.
type SummaryOptions struct {
	FocusArea       string
	IncludeExamples bool
}

// ContextSummary renders a Markdown overview of the workspace for use as
// assistant context.
func (c *Catalog) ContextSummary(opts SummaryOptions) string {
	analysis := c.analyzer.Analyze(analyzer.Options{IncludeContent: opts.IncludeExamples})

	var b strings.Builder
	b.WriteString("# Workspace Context Summary\n\n")
	b.WriteString("## Project Overview\n")
	fmt.Fprintf(&b, "This workspace contains **%d files** across **%d directories**, primarily using **%s**.\n\n",
		analysis.TotalFiles, analysis.TotalDirectories, strings.Join(analysis.Languages, ", "))

	b.WriteString("## Technologies & Frameworks\n")
	lines := make([]string, len(analysis.Technologies))
	for i, tech := range analysis.Technologies {
		lines[i] = fmt.Sprintf("- **%s**: %s", tech.Name, tech.Description)
	}
	b.WriteString(strings.Join(lines, "\n") + "\n\n")

	b.WriteString("## Architecture & Structure\n")
	lines = make([]string, len(analysis.KeyDirectories))
	for i, dir := range analysis.KeyDirectories {
		lines[i] = fmt.Sprintf("- **%s**: %s", dir.Path, dir.Description)
	}
	b.WriteString(strings.Join(lines, "\n") + "\n\n")

	b.WriteString("## File Distribution\n")
	dist := analysis.FileDistribution
	if len(dist) > distributionLimit {
		dist = dist[:distributionLimit]
	}
	lines = make([]string, len(dist))
	for i, bucket := range dist {
		lines[i] = fmt.Sprintf("- **%s**: %d files", bucket.Extension, bucket.Count)
	}
	b.WriteString(strings.Join(lines, "\n") + "\n")

	if opts.FocusArea != "" {
		b.WriteString(c.focusArea(opts.FocusArea))
	}
	if opts.IncludeExamples {
		b.WriteString("\n## Code Patterns\n")
		b.WriteString(strings.Join(analysis.CodePatterns, "\n\n"))
	}
	b.WriteString(recommendations(analysis))
	return b.String()
}

// focusArea lists up to ten files whose absolute path contains the focus
// area, case-insensitively.
func (c *Catalog) focusArea(area string) string {
	needle := strings.ToLower(area)
	var relevant []string
	for _, file := range c.indexer.ListFiles() {
		if strings.Contains(strings.ToLower(file), needle) {
			relevant = append(relevant, "- "+c.indexer.Relative(file))
			if len(relevant) == focusFileLimit {
				break
			}
		}
	}

	header := fmt.Sprintf("\n## %s Focus Area\n", area)
	if len(relevant) == 0 {
		return header + "No specific files found for this focus area."
	}
	return header + strings.Join(relevant, "\n")
}

func recommendations(analysis analyzer.Analysis) string {
	hasTech := func(name string) bool {
		for _, tech := range analysis.Technologies {
			if tech.Name == name {
				return true
			}
		}
		return false
	}

	var recs []string
	if hasTech("TypeScript") {
		recs = append(recs, "✅ TypeScript detected - Strong type safety in place")
	}

	hasTests := false
	for _, dir := range analysis.KeyDirectories {
		if strings.Contains(dir.Path, "test") {
			hasTests = true
			break
		}
	}
	if hasTests {
		recs = append(recs, "✅ Test directory found - Good testing structure")
	} else {
		recs = append(recs, "⚠️ Consider adding a dedicated test directory")
	}

	if hasTech("Docker") {
		recs = append(recs, "✅ Docker configuration found - Containerization ready")
	}
	return "\n## Recommendations\n" + strings.Join(recs, "\n")
}
