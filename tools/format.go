package tools

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/lexandro/contextai-mcp/analyzer"
	"github.com/lexandro/contextai-mcp/deps"
	"github.com/lexandro/contextai-mcp/fulltext"
	"github.com/lexandro/contextai-mcp/insight"
	"github.com/lexandro/contextai-mcp/search"
)

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

// errorResult reports a failed call as a tool result so that it stays
// distinguishable from an empty success.
func errorResult(tool string, err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf("Error executing %s: %v", tool, err)}},
		IsError: true,
	}
}

func mapJoin[T any](items []T, sep string, format func(T) string) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = format(item)
	}
	return strings.Join(parts, sep)
}

func codeItem(s string) string { return "- `" + s + "`" }

// FormatAnalysis renders a workspace analysis as Markdown.
func FormatAnalysis(a analyzer.Analysis, includeContent bool) string {
	var b strings.Builder
	b.WriteString("# Workspace Analysis\n\n")
	b.WriteString("## Structure Overview\n")
	fmt.Fprintf(&b, "- **Total Files**: %d\n", a.TotalFiles)
	fmt.Fprintf(&b, "- **Languages**: %s\n", strings.Join(a.Languages, ", "))
	fmt.Fprintf(&b, "- **Directories**: %d\n\n", a.TotalDirectories)

	b.WriteString("## File Distribution\n")
	b.WriteString(mapJoin(a.FileDistribution, "\n", func(e analyzer.ExtensionCount) string {
		return fmt.Sprintf("- **%s**: %d files", e.Extension, e.Count)
	}))
	b.WriteString("\n\n## Key Directories\n")
	b.WriteString(mapJoin(a.KeyDirectories, "\n", func(d analyzer.KeyDirectory) string {
		return fmt.Sprintf("- `%s`: %s", d.Path, d.Description)
	}))
	b.WriteString("\n\n## Technologies Detected\n")
	b.WriteString(mapJoin(a.Technologies, "\n", func(t analyzer.Technology) string {
		return fmt.Sprintf("- **%s**: %s", t.Name, t.Description)
	}))
	b.WriteString("\n\n")

	if includeContent {
		b.WriteString("\n## Sample Code Patterns\n")
		b.WriteString(strings.Join(a.CodePatterns, "\n\n"))
	}
	return b.String()
}

// FormatMatches renders search_codebase results. A match with a context
// window shows the window in place of the matched text.
func FormatMatches(query string, matches []search.Match) string {
	var b strings.Builder
	b.WriteString("# Code Search Results\n\n")
	fmt.Fprintf(&b, "Found %d matches for: \"%s\"\n\n", len(matches), query)
	b.WriteString(mapJoin(matches, "\n", func(m search.Match) string {
		shown := m.Context
		if shown == "" {
			shown = m.Match
		}
		return fmt.Sprintf("\n## %s\n**Line %d**: %s\n```%s\n%s\n```\n", m.File, m.Line, shown, m.Language, m.Code)
	}))
	return b.String()
}

// FormatDependencies renders a dependency analysis for filePath.
func FormatDependencies(filePath string, d deps.Analysis, includeTransitive bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# File Dependencies: %s\n\n", filePath)
	b.WriteString("## Direct Dependencies\n")
	b.WriteString(mapJoin(d.Direct, "\n", codeItem))
	b.WriteString("\n\n")
	if includeTransitive {
		b.WriteString("\n## Transitive Dependencies\n")
		b.WriteString(mapJoin(d.Transitive, "\n", codeItem))
		b.WriteString("\n")
	}
	b.WriteString("\n\n## Dependents (files that depend on this file)\n")
	b.WriteString(mapJoin(d.Dependents, "\n", codeItem))
	return b.String()
}

// FormatPatterns renders a project pattern analysis.
func FormatPatterns(p insight.PatternAnalysis) string {
	var b strings.Builder
	b.WriteString("# Project Patterns Analysis\n\n")
	b.WriteString("## Architecture Patterns\n")
	b.WriteString(mapJoin(p.Architecture, "\n", func(a insight.ArchitecturePattern) string {
		return fmt.Sprintf("\n### %s\n- **Description**: %s\n- **Usage**: %s\n- **Examples**: %s\n",
			a.Name, a.Description, a.Usage, strings.Join(a.Examples, ", "))
	}))
	b.WriteString("\n\n## Code Conventions\n")
	b.WriteString(mapJoin(p.Conventions, "\n", func(c insight.Convention) string {
		return fmt.Sprintf("- **%s**: %s", c.Type, c.Description)
	}))
	b.WriteString("\n\n## Design Patterns\n")
	b.WriteString(mapJoin(p.DesignPatterns, "\n", func(d insight.DesignPattern) string {
		return fmt.Sprintf("- **%s**: %s", d.Name, d.Description)
	}))
	return b.String()
}

// FormatImprovements renders improvement suggestions in the order given.
func FormatImprovements(improvements []insight.Improvement) string {
	var b strings.Builder
	b.WriteString("# Improvement Suggestions\n\n")
	b.WriteString(mapJoin(improvements, "\n", func(s insight.Improvement) string {
		var ib strings.Builder
		fmt.Fprintf(&ib, "\n## %s: %s\n", s.Category, s.Title)
		fmt.Fprintf(&ib, "**Priority**: %s\n", s.Priority)
		fmt.Fprintf(&ib, "**Impact**: %s\n\n", s.Impact)
		ib.WriteString(s.Description)
		ib.WriteString("\n\n### Recommended Actions:\n")
		ib.WriteString(mapJoin(s.Actions, "\n", func(a string) string { return "- " + a }))
		ib.WriteString("\n\n")
		if s.CodeExample != "" {
			fmt.Fprintf(&ib, "### Example:\n```%s\n%s\n```\n", s.Language, s.CodeExample)
		}
		ib.WriteString("\n")
		return ib.String()
	}))
	return b.String()
}

// FormatFulltextResults formats ranked full-text results grouped by file,
// with line numbers and optional context.
func FormatFulltextResults(results []fulltext.FileResult, totalMatches int) string {
	if len(results) == 0 {
		return "No matches found."
	}

	var builder strings.Builder
	fmt.Fprintf(&builder, "Found %d matches in %d files:\n\n", totalMatches, len(results))

	for i, result := range results {
		if i > 0 {
			builder.WriteString("\n")
		}
		fmt.Fprintf(&builder, "── %s ──\n", result.RelativePath)

		for _, match := range result.Matches {
			for _, ctxLine := range match.ContextBefore {
				fmt.Fprintf(&builder, "  %s\n", ctxLine)
			}
			fmt.Fprintf(&builder, "  %d: %s\n", match.LineNumber, match.LineText)
			for _, ctxLine := range match.ContextAfter {
				fmt.Fprintf(&builder, "  %s\n", ctxLine)
			}
		}
	}

	return builder.String()
}

// FormatFileList formats find_files results, noting truncation.
func FormatFileList(paths []string, total int) string {
	if len(paths) == 0 {
		return "No files matched."
	}

	var builder strings.Builder
	if total > len(paths) {
		fmt.Fprintf(&builder, "Found %d files (showing first %d):\n\n", total, len(paths))
	} else {
		fmt.Fprintf(&builder, "Found %d files:\n\n", total)
	}
	for _, p := range paths {
		builder.WriteString(p)
		builder.WriteString("\n")
	}
	return builder.String()
}

// FormatFileContent formats a file's content with a header and numbered
// lines ("N: text"). offset is the 1-based first line to show and limit the
// number of lines; zero means from the start and to the end.
func FormatFileContent(filePath string, content string, offset, limit int) string {
	lines := strings.Split(content, "\n")
	lineCount := len(lines)

	start := 0
	if offset > 1 {
		start = offset - 1
	}
	if start >= lineCount {
		return fmt.Sprintf("Offset exceeds file length (%s has %d lines)", filePath, lineCount)
	}
	end := lineCount
	if limit > 0 && start+limit < end {
		end = start + limit
	}

	var builder strings.Builder
	fmt.Fprintf(&builder, "── %s (%d lines) ──\n", filePath, lineCount)

	width := len(strconv.Itoa(end))
	for i := start; i < end; i++ {
		fmt.Fprintf(&builder, "%*d: %s\n", width, i+1, lines[i])
	}

	return builder.String()
}

// formatFileSize converts bytes to a human-readable string.
func formatFileSize(bytes int64) string {
	switch {
	case bytes >= 1024*1024:
		return fmt.Sprintf("%.1f MB", float64(bytes)/(1024*1024))
	case bytes >= 1024:
		return fmt.Sprintf("%.1f KB", float64(bytes)/1024)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
