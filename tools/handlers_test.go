package tools

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/lexandro/contextai-mcp/watcher"
)

func Test_AnalyzeHandler_ReportsWorkspace(t *testing.T) {
	env := newTestEnv(t)
	h := &AnalyzeHandler{Analyzer: env.analyzer, Logger: env.logger}

	result, _, err := h.Handle(context.Background(), nil, AnalyzeArgs{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := resultText(t, result)

	for _, want := range []string{
		"# Workspace Analysis",
		"- **Total Files**: 7",
		"- `src/components`: ",
		"- **React**: ",
		"- **Docker**: ",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("expected %q in output:\n%s", want, text)
		}
	}
	if strings.Contains(text, "## Sample Code Patterns") {
		t.Error("expected no code patterns without includeContent")
	}
}

func Test_AnalyzeHandler_IncludeContentAddsPatterns(t *testing.T) {
	env := newTestEnv(t)
	h := &AnalyzeHandler{Analyzer: env.analyzer, Logger: env.logger}

	result, _, _ := h.Handle(context.Background(), nil, AnalyzeArgs{IncludeContent: true})
	text := resultText(t, result)

	if !strings.Contains(text, "\n## Sample Code Patterns\n# Import Pattern (") {
		t.Errorf("expected code patterns section, got:\n%s", text)
	}
}

func Test_SearchHandler_EmptyQuery(t *testing.T) {
	env := newTestEnv(t)
	h := &SearchHandler{Engine: env.engine, Logger: env.logger}

	result, _, err := h.Handle(context.Background(), nil, SearchArgs{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected IsError=true for empty query")
	}
	if !strings.Contains(resultText(t, result), "query parameter is required") {
		t.Errorf("unexpected message: %s", resultText(t, result))
	}
}

func Test_SearchHandler_DefaultsToContext(t *testing.T) {
	env := newTestEnv(t)
	h := &SearchHandler{Engine: env.engine, Logger: env.logger}

	result, _, _ := h.Handle(context.Background(), nil, SearchArgs{Query: "todo"})
	text := resultText(t, result)

	// build/ and node_modules/ are ignored, so two files match
	if !strings.Contains(text, `Found 2 matches for: "todo"`) {
		t.Fatalf("expected 2 matches, got:\n%s", text)
	}
	if !strings.Contains(text, "**Line 3**: import { Button } from './components/Button';\nconst fs = require('fs');\n// TODO: wire the router\nexport default Button;") {
		t.Errorf("expected the context window in place of the match, got:\n%s", text)
	}
	if !strings.Contains(text, "```typescript\n// TODO: wire the router\n```") {
		t.Errorf("expected a typescript code block, got:\n%s", text)
	}
}

func Test_SearchHandler_WithoutContextShowsMatch(t *testing.T) {
	env := newTestEnv(t)
	h := &SearchHandler{Engine: env.engine, Logger: env.logger}

	result, _, _ := h.Handle(context.Background(), nil, SearchArgs{
		Query:          "todo",
		FileTypes:      []string{".ts"},
		IncludeContext: boolPtr(false),
	})
	text := resultText(t, result)

	if !strings.Contains(text, "## src/index.ts\n**Line 3**: todo\n") {
		t.Errorf("expected literal match text, got:\n%s", text)
	}
	if strings.Contains(text, "docs/guide.md") {
		t.Errorf("expected fileTypes to exclude markdown, got:\n%s", text)
	}
}

func Test_DependenciesHandler_EmptyFilePath(t *testing.T) {
	env := newTestEnv(t)
	h := &DependenciesHandler{Extractor: env.deps, Logger: env.logger}

	result, _, _ := h.Handle(context.Background(), nil, DependenciesArgs{})
	if !result.IsError {
		t.Fatal("expected IsError=true for empty filePath")
	}
}

func Test_DependenciesHandler_ListsDirectAndDependents(t *testing.T) {
	env := newTestEnv(t)
	h := &DependenciesHandler{Extractor: env.deps, Logger: env.logger}

	result, _, _ := h.Handle(context.Background(), nil, DependenciesArgs{FilePath: "src/components/Button.tsx"})
	text := resultText(t, result)

	want := "# File Dependencies: src/components/Button.tsx\n\n" +
		"## Direct Dependencies\n- `react`\n\n" +
		"\n\n## Dependents (files that depend on this file)\n- `src/index.ts`"
	if text != want {
		t.Errorf("unexpected output:\n%q\nwant:\n%q", text, want)
	}
}

func Test_DependenciesHandler_TransitiveSection(t *testing.T) {
	env := newTestEnv(t)
	h := &DependenciesHandler{Extractor: env.deps, Logger: env.logger}

	result, _, _ := h.Handle(context.Background(), nil, DependenciesArgs{FilePath: "src/index.ts", IncludeTransitive: true})
	text := resultText(t, result)

	if !strings.Contains(text, "- `./components/Button`\n- `fs`") {
		t.Errorf("expected import before require, got:\n%s", text)
	}
	if !strings.Contains(text, "\n## Transitive Dependencies\n\n") {
		t.Errorf("expected an empty transitive section, got:\n%s", text)
	}
}

func Test_PatternsHandler_UnknownTypeIsError(t *testing.T) {
	env := newTestEnv(t)
	h := &PatternsHandler{Catalog: env.catalog, Logger: env.logger}

	result, _, err := h.Handle(context.Background(), nil, PatternsArgs{AnalysisType: "everything"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.IsError {
		t.Fatal("expected IsError=true for unknown analysisType")
	}
	if !strings.Contains(resultText(t, result), "Error executing get_project_patterns") {
		t.Errorf("unexpected message: %s", resultText(t, result))
	}
}

func Test_PatternsHandler_DefaultIsAll(t *testing.T) {
	env := newTestEnv(t)
	h := &PatternsHandler{Catalog: env.catalog, Logger: env.logger}

	result, _, _ := h.Handle(context.Background(), nil, PatternsArgs{})
	text := resultText(t, result)

	for _, want := range []string{
		"### Component-Based Architecture",
		"- **Examples**: src/components",
		"- **File Naming**: Uses camelCase for most files",
		"- **Factory Pattern**: Used for creating objects dynamically",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("expected %q in output:\n%s", want, text)
		}
	}
}

func Test_PatternsHandler_ConventionsOnly(t *testing.T) {
	env := newTestEnv(t)
	h := &PatternsHandler{Catalog: env.catalog, Logger: env.logger}

	result, _, _ := h.Handle(context.Background(), nil, PatternsArgs{AnalysisType: "conventions"})
	text := resultText(t, result)

	if strings.Contains(text, "###") || strings.Contains(text, "Module Pattern") {
		t.Errorf("expected only conventions, got:\n%s", text)
	}
}

func Test_SummaryHandler_DefaultsIncludeExamples(t *testing.T) {
	env := newTestEnv(t)
	h := &SummaryHandler{Catalog: env.catalog, Logger: env.logger}

	result, _, _ := h.Handle(context.Background(), nil, SummaryArgs{FocusArea: "COMPONENTS"})
	text := resultText(t, result)

	if !strings.HasPrefix(text, "# Workspace Context Summary\n") {
		t.Errorf("unexpected summary header:\n%s", text)
	}
	if !strings.Contains(text, "## Code Patterns") {
		t.Errorf("expected code patterns by default, got:\n%s", text)
	}
	if !strings.Contains(text, "Button.tsx") {
		t.Errorf("expected the focus area to list Button.tsx, got:\n%s", text)
	}

	result, _, _ = h.Handle(context.Background(), nil, SummaryArgs{IncludeExamples: boolPtr(false)})
	if strings.Contains(resultText(t, result), "## Code Patterns") {
		t.Error("expected no code patterns when includeExamples=false")
	}
}

func Test_ImprovementsHandler_SortedByPriority(t *testing.T) {
	env := newTestEnv(t)
	h := &ImprovementsHandler{Catalog: env.catalog, Logger: env.logger}

	result, _, _ := h.Handle(context.Background(), nil, ImprovementsArgs{})
	text := resultText(t, result)

	security := strings.Index(text, "## Security: ")
	performance := strings.Index(text, "## Performance: ")
	maintainability := strings.Index(text, "## Maintainability: ")
	if security < 0 || !(security < performance && performance < maintainability) {
		t.Errorf("expected security, performance, maintainability order, got:\n%s", text)
	}
	if !strings.Contains(text, "### Example:\n```javascript\n// Example validation\n") {
		t.Errorf("expected the security example block, got:\n%s", text)
	}
}

func Test_ImprovementsHandler_UnknownScopeIsError(t *testing.T) {
	env := newTestEnv(t)
	h := &ImprovementsHandler{Catalog: env.catalog, Logger: env.logger}

	result, _, _ := h.Handle(context.Background(), nil, ImprovementsArgs{Scope: "style"})
	if !result.IsError {
		t.Fatal("expected IsError=true for unknown scope")
	}
}

func Test_FindFilesHandler(t *testing.T) {
	env := newTestEnv(t)
	h := &FindFilesHandler{Indexer: env.indexer, Logger: env.logger}

	result, _, _ := h.Handle(context.Background(), nil, FindFilesArgs{})
	if !result.IsError {
		t.Error("expected IsError=true for empty pattern")
	}

	result, _, _ = h.Handle(context.Background(), nil, FindFilesArgs{Pattern: "src/**/*.ts*"})
	text := resultText(t, result)
	if !strings.Contains(text, "src/index.ts\n") || !strings.Contains(text, "src/components/Button.tsx\n") {
		t.Errorf("expected both script files, got:\n%s", text)
	}

	result, _, _ = h.Handle(context.Background(), nil, FindFilesArgs{Pattern: "**/*.js"})
	if text := resultText(t, result); text != "No files matched." {
		t.Errorf("expected ignored js files to be hidden, got:\n%s", text)
	}

	result, _, _ = h.Handle(context.Background(), nil, FindFilesArgs{Pattern: "src/[", MaxResults: 1})
	if !result.IsError {
		t.Error("expected IsError=true for an invalid glob")
	}
}

func Test_ReadHandler(t *testing.T) {
	env := newTestEnv(t)
	h := &ReadHandler{Indexer: env.indexer, Logger: env.logger}

	result, _, _ := h.Handle(context.Background(), nil, ReadArgs{FilePath: "src/index.ts", Offset: 2, Limit: 2})
	text := resultText(t, result)
	if result.IsError {
		t.Fatalf("expected success, got: %s", text)
	}
	if !strings.Contains(text, "2: const fs = require('fs');") || !strings.Contains(text, "3: // TODO") {
		t.Errorf("expected lines 2-3, got:\n%s", text)
	}
	if strings.Contains(text, "1: import") || strings.Contains(text, "4: export") {
		t.Errorf("expected offset and limit to apply, got:\n%s", text)
	}
}

func Test_ReadHandler_RejectsIgnoredAndOutsidePaths(t *testing.T) {
	env := newTestEnv(t)
	h := &ReadHandler{Indexer: env.indexer, Logger: env.logger}

	for _, p := range []string{"node_modules/react/index.js", "../outside.txt", "missing.ts", ""} {
		result, _, _ := h.Handle(context.Background(), nil, ReadArgs{FilePath: p})
		if !result.IsError {
			t.Errorf("expected IsError=true for %q", p)
		}
	}
}

func Test_FulltextHandler(t *testing.T) {
	env := newTestEnv(t)
	h := &FulltextHandler{Service: env.fulltext, Logger: env.logger}

	result, _, _ := h.Handle(context.Background(), nil, FulltextArgs{Query: "router"})
	text := resultText(t, result)
	if !strings.Contains(text, "── src/index.ts ──") || !strings.Contains(text, "3: // TODO: wire the router") {
		t.Errorf("unexpected fulltext output:\n%s", text)
	}

	result, _, _ = h.Handle(context.Background(), nil, FulltextArgs{Query: "/[unclosed/"})
	if !result.IsError {
		t.Error("expected IsError=true for an invalid regex")
	}
}

type fakeChanges []watcher.Change

func (f fakeChanges) Pending() []watcher.Change { return f }

func Test_StatusHandler(t *testing.T) {
	env := newTestEnv(t)
	env.indexer.ListFiles()

	h := &StatusHandler{
		Store:     env.store,
		Fulltext:  env.fulltext,
		StartTime: time.Now(),
		RootDir:   env.root,
		Logger:    env.logger,
	}

	text := resultText(t, mustHandleStatus(t, h))
	for _, want := range []string{
		"=== contextai-mcp Status ===",
		env.root,
		"Cache entries: 1",
		"Full-text index: not built yet",
		"Change tracking: disabled",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("expected %q in status:\n%s", want, text)
		}
	}

	h.Changes = fakeChanges{{Path: "src/index.ts", Op: watcher.OpWrite}}
	text = resultText(t, mustHandleStatus(t, h))
	if !strings.Contains(text, "Changed on disk since start: 1") || !strings.Contains(text, "write    src/index.ts") {
		t.Errorf("expected pending change listing, got:\n%s", text)
	}
}

func mustHandleStatus(t *testing.T, h *StatusHandler) *mcp.CallToolResult {
	t.Helper()
	result, _, err := h.Handle(context.Background(), nil, StatusArgs{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return result
}
