package search

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lexandro/contextai-mcp/cache"
	"github.com/lexandro/contextai-mcp/ignore"
	"github.com/lexandro/contextai-mcp/index"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}

func newTestEngine(t *testing.T, root string) *Engine {
	t.Helper()
	logger := testLogger()
	ix := index.New(root, ignore.LoadFromWorkspace(root, logger), cache.NewStore(), logger)
	return New(ix, logger)
}

func Test_IsPattern(t *testing.T) {
	tests := []struct {
		query   string
		pattern bool
	}{
		{"TODO", false},
		{"useState", false},
		{"func\\s+\\w+\\(", true},
		{"colou?r", true},
		{"a+b", true},
		{"[abc]", true},
		{"foo.bar", false},
		{"(unclosed", false},
		{"[", false},
	}
	for _, tt := range tests {
		if got := IsPattern(tt.query); got != tt.pattern {
			t.Errorf("IsPattern(%q) = %v, want %v", tt.query, got, tt.pattern)
		}
	}
}

func Test_Engine_Search_LiteralIsCaseInsensitive(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/app.ts", "const a = 1;\n  // todo: fix this  \nconst b = 2;\n")

	results := newTestEngine(t, root).Search(Options{Query: "TODO"})

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	r := results[0]
	if r.File != "src/app.ts" || r.Line != 2 {
		t.Errorf("unexpected location %s:%d", r.File, r.Line)
	}
	if r.Match != "TODO" {
		t.Errorf("expected literal match to echo the query, got %q", r.Match)
	}
	if r.Code != "// todo: fix this" {
		t.Errorf("expected trimmed code line, got %q", r.Code)
	}
	if r.Language != "typescript" {
		t.Errorf("expected typescript, got %s", r.Language)
	}
}

func Test_Engine_Search_PatternRecordsFirstMatchPerLine(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.go", "func Alpha() {}\nvar x = 1\nFUNC beta(); func gamma()\n")

	results := newTestEngine(t, root).Search(Options{Query: `func\s+\w+\(`})

	if len(results) != 2 {
		t.Fatalf("expected 2 matching lines, got %d", len(results))
	}
	if results[0].Match != "func Alpha(" {
		t.Errorf("unexpected first match %q", results[0].Match)
	}
	if results[1].Match != "FUNC beta(" {
		t.Errorf("expected case-insensitive first match on the line, got %q", results[1].Match)
	}
	if results[1].Language != "go" {
		t.Errorf("expected go, got %s", results[1].Language)
	}
}

func Test_Engine_Search_InvalidPatternFallsBackToLiteral(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.js", "call(x\nother\n")

	results := newTestEngine(t, root).Search(Options{Query: "call(x"})

	if len(results) != 1 || results[0].Line != 1 || results[0].Match != "call(x" {
		t.Errorf("expected literal match on line 1, got %+v", results)
	}
}

func Test_Engine_Search_CapsAtFiftyInFileOrder(t *testing.T) {
	root := t.TempDir()
	for i := 0; i < 100; i++ {
		writeFile(t, root, fmt.Sprintf("f%03d.js", i), "// TODO: one\n")
	}

	results := newTestEngine(t, root).Search(Options{Query: "TODO"})

	if len(results) != MaxResults {
		t.Fatalf("expected %d results, got %d", MaxResults, len(results))
	}
	if results[0].File != "f000.js" || results[49].File != "f049.js" {
		t.Errorf("expected the first 50 files in traversal order, got %s..%s", results[0].File, results[49].File)
	}
}

func Test_Engine_Search_ContextWindow(t *testing.T) {
	root := t.TempDir()
	var lines []string
	for i := 1; i <= 20; i++ {
		text := fmt.Sprintf("line%d", i)
		if i == 10 {
			text = "needle"
		}
		lines = append(lines, text)
	}
	writeFile(t, root, "a.ts", strings.Join(lines, "\n"))

	results := newTestEngine(t, root).Search(Options{Query: "needle", IncludeContext: true})

	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	want := "line8\nline9\nneedle\nline11\nline12"
	if results[0].Context != want {
		t.Errorf("expected context %q, got %q", want, results[0].Context)
	}
}

func Test_Window_ClampsToBounds(t *testing.T) {
	lines := []string{"a", "b", "c", "d"}

	if got := Window(lines, 1); got != "a\nb\nc" {
		t.Errorf("expected start clamp, got %q", got)
	}
	if got := Window(lines, 4); got != "b\nc\nd" {
		t.Errorf("expected end clamp, got %q", got)
	}
}

func Test_Engine_Search_WithoutContext(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.ts", "x\nneedle\ny\n")

	results := newTestEngine(t, root).Search(Options{Query: "needle"})

	if len(results) != 1 || results[0].Context != "" {
		t.Errorf("expected no context, got %+v", results)
	}
}

func Test_Engine_Search_FileTypesFilter(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.ts", "needle\n")
	writeFile(t, root, "b.py", "needle\n")

	results := newTestEngine(t, root).Search(Options{Query: "needle", FileTypes: []string{".py"}})

	if len(results) != 1 || results[0].File != "b.py" || results[0].Language != "python" {
		t.Errorf("expected only b.py, got %+v", results)
	}
}

func Test_Engine_Search_SkipsFilesRemovedAfterListing(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "keep.ts", "needle\n")
	writeFile(t, root, "tmp_scratch.js", "needle\n")

	engine := newTestEngine(t, root)
	if got := len(engine.Search(Options{Query: "needle"})); got != 2 {
		t.Fatalf("expected 2 results before removal, got %d", got)
	}

	// the cached listing still names tmp_scratch.js
	if err := os.Remove(filepath.Join(root, "tmp_scratch.js")); err != nil {
		t.Fatalf("remove: %v", err)
	}

	for i := 0; i < 3; i++ {
		results := engine.Search(Options{Query: "needle"})
		if len(results) != 1 || results[0].File != "keep.ts" {
			t.Fatalf("search %d: expected only keep.ts, got %+v", i+1, results)
		}
	}
}
