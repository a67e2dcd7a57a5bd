package analyzer

import (
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

func newTestAnalyzer(t *testing.T, root string) (*Analyzer, *index.Indexer) {
	t.Helper()
	logger := testLogger()
	ix := index.New(root, ignore.LoadFromWorkspace(root, logger), cache.NewStore(), logger)
	return New(ix, logger), ix
}

func techNames(techs []Technology) []string {
	names := make([]string, len(techs))
	for i, tech := range techs {
		names[i] = tech.Name
	}
	return names
}

func hasTech(techs []Technology, name string) bool {
	for _, tech := range techs {
		if tech.Name == name {
			return true
		}
	}
	return false
}

func Test_Analyzer_Analyze_CountsAndDistribution(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/a.ts", "")
	writeFile(t, root, "src/b.ts", "")
	writeFile(t, root, "src/c.ts", "")
	writeFile(t, root, "src/view.tsx", "")
	writeFile(t, root, "README.md", "")
	writeFile(t, root, "docs/GUIDE.MD", "")
	writeFile(t, root, "Makefile", "")
	writeFile(t, root, "yarn.lock", "")
	writeFile(t, root, "node_modules/x/index.js", "")

	a, _ := newTestAnalyzer(t, root)
	result := a.Analyze(Options{})

	if result.TotalFiles != 8 {
		t.Errorf("expected 8 files, got %d", result.TotalFiles)
	}
	if result.TotalDirectories != 2 {
		t.Errorf("expected 2 directories, got %d", result.TotalDirectories)
	}

	first := result.FileDistribution[0]
	if first.Extension != ".ts" || first.Count != 3 {
		t.Errorf("expected .ts with 3 files first, got %+v", first)
	}
	second := result.FileDistribution[1]
	if second.Extension != ".md" || second.Count != 2 {
		t.Errorf("expected .md with 2 files second (case folded), got %+v", second)
	}

	var noExt int
	for _, bucket := range result.FileDistribution {
		if bucket.Extension == "no extension" {
			noExt = bucket.Count
		}
	}
	if noExt != 1 {
		t.Errorf("expected 1 file without extension, got %d", noExt)
	}

	for _, lang := range []string{"TypeScript", "TypeScript (React)", "Markdown"} {
		found := false
		for _, l := range result.Languages {
			if l == lang {
				found = true
			}
		}
		if !found {
			t.Errorf("expected language %s in %v", lang, result.Languages)
		}
	}
	if len(result.Languages) != 3 {
		t.Errorf("expected 3 distinct languages, got %v", result.Languages)
	}
	if result.CodePatterns != nil {
		t.Error("expected no code patterns without includeContent")
	}
}

func Test_Analyzer_Analyze_IsCachedPerOptions(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/index.ts", "import x from 'y';\n")

	a, ix := newTestAnalyzer(t, root)

	first := a.Analyze(Options{})
	writeFile(t, root, "src/later.ts", "")
	second := a.Analyze(Options{MaxDepth: DefaultMaxDepth})

	if second.TotalFiles != first.TotalFiles {
		t.Errorf("expected cached analysis, got %d then %d files", first.TotalFiles, second.TotalFiles)
	}
	if &first.Languages[0] != &second.Languages[0] {
		t.Error("expected the identical cached analysis")
	}
	if _, ok := ix.Store().Get("analysis_includeContent=false,maxDepth=5"); !ok {
		t.Error("expected canonical analysis key in the store")
	}

	withContent := a.Analyze(Options{IncludeContent: true})
	if len(withContent.CodePatterns) == 0 {
		t.Error("expected code patterns for a separate includeContent entry")
	}
}

func Test_Analyzer_KeyDirectories(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/components/Button.tsx", "")
	writeFile(t, root, "src/pages/home.tsx", "")
	writeFile(t, root, "__tests__/a.test.ts", "")
	writeFile(t, root, "random/file.txt", "")

	a, _ := newTestAnalyzer(t, root)
	dirs := a.KeyDirectories()

	want := map[string]string{
		"src":            "Source code directory",
		"src/components": "Reusable components directory",
		"src/pages":      "Page/view components directory",
		"__tests__":      "Test files directory",
	}
	if len(dirs) != len(want) {
		t.Fatalf("expected %d key directories, got %v", len(want), dirs)
	}
	for _, d := range dirs {
		if want[d.Path] != d.Description {
			t.Errorf("unexpected key directory %+v", d)
		}
	}
}

func Test_Analyzer_Technologies_ReactFromDevDependencies(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{"dependencies":{"express":"^4"},"devDependencies":{"react":"^18.0.0","typescript":"^5"}}`)

	a, _ := newTestAnalyzer(t, root)
	names := techNames(a.Technologies())

	want := []string{"React", "Express.js", "TypeScript"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Errorf("expected %v in table order, got %v", want, names)
	}
}

func Test_Analyzer_Technologies_NonStringDependencyValues(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{"dependencies":{"react":"^18","local":{"version":"1.0.0"}},"devDependencies":{"typescript":null,"jest":5}}`)

	a, _ := newTestAnalyzer(t, root)
	names := techNames(a.Technologies())

	want := []string{"React", "Jest", "TypeScript"}
	if strings.Join(names, ",") != strings.Join(want, ",") {
		t.Errorf("expected %v, got %v", want, names)
	}
}

func Test_Analyzer_Technologies_MalformedManifestContinues(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{"dependencies": {`)
	writeFile(t, root, "Dockerfile", "FROM alpine")

	a, _ := newTestAnalyzer(t, root)
	techs := a.Technologies()

	if hasTech(techs, "React") {
		t.Error("expected no node technologies from a malformed manifest")
	}
	if !hasTech(techs, "Docker") {
		t.Error("expected Docker to be detected after the manifest failure")
	}
}

func Test_Analyzer_Technologies_NoManifests(t *testing.T) {
	a, _ := newTestAnalyzer(t, t.TempDir())

	techs := a.Technologies()
	if techs == nil || len(techs) != 0 {
		t.Errorf("expected empty non-nil technologies, got %v", techs)
	}
}

func Test_Analyzer_Technologies_PythonFrameworks(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "requirements.txt", "# web\nDjango>=4.2\n-r base.txt\nrequests==2.31\n")
	writeFile(t, root, "pyproject.toml", `
[project]
name = "svc"
dependencies = ["fastapi[all]>=0.100", "uvicorn"]

[tool.poetry.dependencies]
python = "^3.11"
Flask = "^3.0"
`)

	a, _ := newTestAnalyzer(t, root)
	names := techNames(a.Technologies())

	want := "Python,Django,Flask,FastAPI"
	if strings.Join(names, ",") != want {
		t.Errorf("expected %s, got %v", want, names)
	}
}

func Test_Analyzer_Technologies_MalformedPyprojectStillPython(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "pyproject.toml", "[project\nname=")

	a, _ := newTestAnalyzer(t, root)
	names := techNames(a.Technologies())

	if len(names) != 1 || names[0] != "Python" {
		t.Errorf("expected only Python, got %v", names)
	}
}

func Test_Analyzer_Technologies_ComposeServices(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "docker-compose.yml", "services:\n  web:\n    image: nginx\n  db:\n    image: postgres\n")

	a, _ := newTestAnalyzer(t, root)
	techs := a.Technologies()

	var compose *Technology
	for i := range techs {
		if techs[i].Name == "Docker Compose" {
			compose = &techs[i]
		}
	}
	if compose == nil {
		t.Fatal("expected Docker Compose to be detected")
	}
	if compose.Description != "Multi-container orchestration (services: db, web)" {
		t.Errorf("unexpected description %q", compose.Description)
	}
	if hasTech(techs, "Kubernetes") {
		t.Error("expected a compose file not to count as a Kubernetes manifest")
	}
}

func Test_Analyzer_Technologies_Kubernetes(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"single document", "apiVersion: apps/v1\nkind: Deployment\n", true},
		{"second document", "name: x\n---\napiVersion: v1\nkind: Service\n", true},
		{"plain config", "server:\n  port: 8080\n", false},
		{"nested keys only", "spec:\n  apiVersion: v1\n  kind: Pod\n", false},
		{"undecodable falls back to text", "apiVersion: v1\nkind: Pod\n\tbad: [\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeFile(t, root, "deploy/app.yaml", tt.content)

			a, _ := newTestAnalyzer(t, root)
			if got := hasTech(a.Technologies(), "Kubernetes"); got != tt.want {
				t.Errorf("expected kubernetes=%v, got %v", tt.want, got)
			}
		})
	}
}

func Test_Analyzer_CodePatterns(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.ts", "import React from 'react';\nimport { x } from './x';\nimport y from './y';\nimport z from './z';\nexport const A = 1;\nexport default A;\nexport const B = 2;\n")

	a, _ := newTestAnalyzer(t, root)
	patterns := a.CodePatterns()

	if len(patterns) != 2 {
		t.Fatalf("expected import and export patterns, got %d", len(patterns))
	}
	wantImport := "# Import Pattern (a.ts):\n```typescript\nimport React from 'react';\nimport { x } from './x';\nimport y from './y';\n```"
	if patterns[0] != wantImport {
		t.Errorf("unexpected import pattern:\n%s", patterns[0])
	}
	wantExport := "# Export Pattern (a.ts):\n```typescript\nexport const A = 1;\nexport default A;\n```"
	if patterns[1] != wantExport {
		t.Errorf("unexpected export pattern:\n%s", patterns[1])
	}
}

func Test_Analyzer_CodePatterns_CappedAtFive(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		writeFile(t, root, name+".js", "import x from 'x';\nexport const y = 1;\n")
	}

	a, _ := newTestAnalyzer(t, root)
	if got := len(a.CodePatterns()); got != 5 {
		t.Errorf("expected 5 patterns, got %d", got)
	}
}
