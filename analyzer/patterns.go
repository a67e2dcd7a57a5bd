package analyzer

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

const (
	patternFileLimit = 10
	patternLimit     = 5
	importsPerFile   = 3
	exportsPerFile   = 2
)

var (
	importLine = regexp.MustCompile(`(?m)^import.*from.*$`)
	exportLine = regexp.MustCompile(`(?m)^export.*$`)
)

// ScriptExtensions are the file types sampled for code patterns.
var ScriptExtensions = []string{".js", ".ts", ".jsx", ".tsx"}

// CodePatterns samples import and export statements from the first script
// files in traversal order and renders each as a fenced snippet.
func (a *Analyzer) CodePatterns() []string {
	files := a.indexer.ListFiles(ScriptExtensions...)
	if len(files) > patternFileLimit {
		files = files[:patternFileLimit]
	}

	patterns := []string{}
	for _, file := range files {
		content := a.indexer.ReadFile(file)
		base := filepath.Base(file)

		if imports := firstLines(importLine, content, importsPerFile); len(imports) > 0 {
			patterns = append(patterns, fence("Import", base, imports))
		}
		if exports := firstLines(exportLine, content, exportsPerFile); len(exports) > 0 {
			patterns = append(patterns, fence("Export", base, exports))
		}
		if len(patterns) >= patternLimit {
			break
		}
	}

	if len(patterns) > patternLimit {
		patterns = patterns[:patternLimit]
	}
	return patterns
}

func firstLines(re *regexp.Regexp, content string, n int) []string {
	found := re.FindAllString(content, n)
	for i, line := range found {
		found[i] = strings.TrimRight(line, "\r")
	}
	return found
}

func fence(kind, base string, lines []string) string {
	return fmt.Sprintf("# %s Pattern (%s):\n```typescript\n%s\n```", kind, base, strings.Join(lines, "\n"))
}
