// Package deps extracts import relationships with regular expressions. It
// does not parse source code: direct dependencies are whatever the import
// and require forms capture, and dependents are found by plain text search.
package deps

import (
	"log/slog"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/lexandro/contextai-mcp/index"
)

var (
	scriptImport  = regexp.MustCompile("import.*from\\s+['\"`]([^'\"`]+)['\"`]")
	scriptRequire = regexp.MustCompile("require\\s*\\(\\s*['\"`]([^'\"`]+)['\"`]\\s*\\)")
	pythonImport  = regexp.MustCompile(`(?:from\s+(\S+)\s+import|import\s+(\S+))`)
)

// ScriptExtensions are scanned with the import/require expressions.
var ScriptExtensions = []string{".js", ".ts", ".jsx", ".tsx"}

// DependentExtensions are the file types searched for dependents.
var DependentExtensions = []string{".js", ".ts", ".jsx", ".tsx", ".py"}

// Analysis is the dependency report for one file.
type Analysis struct {
	Direct     []string `json:"direct"`
	Transitive []string `json:"transitive"`
	Dependents []string `json:"dependents"`
}

// Extractor computes dependency reports for workspace files.
type Extractor struct {
	indexer *index.Indexer
	logger  *slog.Logger
}

// New creates an extractor.
func New(indexer *index.Indexer, logger *slog.Logger) *Extractor {
	return &Extractor{indexer: indexer, logger: logger}
}

// Analyze returns direct dependencies and dependents of path (absolute or
// workspace-relative). Transitive dependencies are only computed when
// includeTransitive is set and are always empty. Paths outside the
// workspace yield an empty analysis.
func (x *Extractor) Analyze(path string, includeTransitive bool) Analysis {
	if _, ok := x.resolve(path); !ok {
		return Analysis{Direct: []string{}, Transitive: []string{}, Dependents: []string{}}
	}
	direct := x.Direct(path)
	transitive := []string{}
	if includeTransitive {
		transitive = Transitive(direct)
	}
	return Analysis{
		Direct:     direct,
		Transitive: transitive,
		Dependents: x.Dependents(path),
	}
}

// Direct returns the module identifiers imported by the file at path.
// A missing, unreadable or out-of-workspace file yields an empty list.
func (x *Extractor) Direct(path string) []string {
	abs, ok := x.resolve(path)
	if !ok {
		return []string{}
	}
	return ExtractDirect(abs, x.indexer.ReadFile(abs))
}

func (x *Extractor) resolve(path string) (string, bool) {
	abs := x.indexer.Resolve(path)
	if !x.indexer.Contains(abs) {
		x.logger.Warn("dependency target outside workspace", "path", path)
		return "", false
	}
	return abs, true
}

// ExtractDirect applies the expressions for path's file type to content.
// Identifiers are deduplicated in order of first occurrence; import forms
// are collected before require forms.
func ExtractDirect(path, content string) []string {
	var found []string

	switch ext := filepath.Ext(path); {
	case isScript(ext):
		for _, m := range scriptImport.FindAllStringSubmatch(content, -1) {
			found = append(found, m[1])
		}
		for _, m := range scriptRequire.FindAllStringSubmatch(content, -1) {
			found = append(found, m[1])
		}
	case ext == ".py":
		for _, m := range pythonImport.FindAllStringSubmatch(content, -1) {
			if m[1] != "" {
				found = append(found, m[1])
			} else {
				found = append(found, m[2])
			}
		}
	}

	return dedupe(found)
}

// Transitive is not implemented: resolving package manifests is out of
// scope, so the result is always empty.
func Transitive(direct []string) []string {
	return []string{}
}

// Dependents returns the workspace-relative paths of script and Python files
// whose text mentions the target by its workspace-relative path, by its path
// relative to the mentioning file, or by its base name without extension.
// The text match over- and under-reports by nature.
func (x *Extractor) Dependents(path string) []string {
	target, ok := x.resolve(path)
	if !ok {
		return []string{}
	}
	targetRel := x.indexer.Relative(target)
	stem := fileStem(target)

	dependents := []string{}
	for _, file := range x.indexer.ListFiles(DependentExtensions...) {
		if file == target {
			continue
		}

		content := x.indexer.ReadFile(file)
		relImport, err := filepath.Rel(filepath.Dir(file), target)
		if err != nil {
			relImport = targetRel
		}
		relImport = filepath.ToSlash(relImport)

		if strings.Contains(content, targetRel) ||
			strings.Contains(content, relImport) ||
			strings.Contains(content, stem) {
			dependents = append(dependents, x.indexer.Relative(file))
		}
	}
	return dependents
}

func isScript(ext string) bool {
	for _, e := range ScriptExtensions {
		if e == ext {
			return true
		}
	}
	return false
}

// fileStem strips the extension from the base name. A dotfile such as
// ".env" keeps its full name.
func fileStem(path string) string {
	base := filepath.Base(path)
	if stem := strings.TrimSuffix(base, filepath.Ext(base)); stem != "" {
		return stem
	}
	return base
}

func dedupe(items []string) []string {
	out := []string{}
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		if seen[item] {
			continue
		}
		seen[item] = true
		out = append(out, item)
	}
	return out
}
