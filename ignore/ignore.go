package ignore

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/denormal/go-gitignore"
)

// RuleSet is the compiled list of exclusion patterns for one workspace.
// Patterns from the workspace .gitignore come first, then DefaultPatterns,
// then any extra patterns supplied by the caller. The last matching pattern
// wins, so a later "!pattern" re-includes what an earlier one excluded.
// A RuleSet is immutable once loaded and safe for concurrent use.
type RuleSet struct {
	rootDir  string
	patterns []string
	matcher  gitignore.GitIgnore
}

// LoadFromWorkspace builds the rule set for rootDir. A missing or unreadable
// ignore file is logged and treated as empty; the defaults always apply.
func LoadFromWorkspace(rootDir string, logger *slog.Logger, extra ...string) *RuleSet {
	var patterns []string

	ignorePath := filepath.Join(rootDir, IgnoreFileName)
	data, err := os.ReadFile(ignorePath)
	switch {
	case err == nil:
		patterns = append(patterns, splitLines(string(data))...)
	case os.IsNotExist(err):
		logger.Debug("no ignore file in workspace", "path", ignorePath)
	default:
		logger.Warn("failed to read ignore file, using defaults only", "path", ignorePath, "error", err)
	}

	patterns = append(patterns, DefaultPatterns...)
	patterns = append(patterns, extra...)

	return compile(rootDir, patterns, logger)
}

// NewRuleSet compiles an explicit pattern list without touching the filesystem.
func NewRuleSet(rootDir string, patterns []string, logger *slog.Logger) *RuleSet {
	return compile(rootDir, append([]string(nil), patterns...), logger)
}

func compile(rootDir string, patterns []string, logger *slog.Logger) *RuleSet {
	var buf bytes.Buffer
	for _, p := range patterns {
		buf.WriteString(p)
		buf.WriteByte('\n')
	}

	matcher := gitignore.New(&buf, rootDir, func(e gitignore.Error) bool {
		logger.Warn("skipping malformed ignore pattern",
			"position", e.Position().String(),
			"error", e.Underlying(),
		)
		return true
	})

	return &RuleSet{
		rootDir:  rootDir,
		patterns: patterns,
		matcher:  matcher,
	}
}

// Patterns returns the ordered pattern list the rule set was compiled from.
func (r *RuleSet) Patterns() []string {
	return append([]string(nil), r.patterns...)
}

// IsIgnored reports whether relativePath (relative to the workspace root,
// either separator) is excluded. A path is excluded when it or any of its
// ancestor directories is excluded.
func (r *RuleSet) IsIgnored(relativePath string, isDir bool) bool {
	rel := strings.Trim(filepath.ToSlash(relativePath), "/")
	if rel == "" || rel == "." {
		return false
	}

	parts := strings.Split(rel, "/")
	for i := 1; i < len(parts); i++ {
		if r.ignored(strings.Join(parts[:i], "/"), true) {
			return true
		}
	}
	return r.ignored(rel, isDir)
}

// IsIgnoredAbs is IsIgnored for an absolute path. Paths outside the root are
// reported as ignored.
func (r *RuleSet) IsIgnoredAbs(absolutePath string, isDir bool) bool {
	rel, err := filepath.Rel(r.rootDir, absolutePath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return true
	}
	return r.IsIgnored(rel, isDir)
}

func (r *RuleSet) ignored(rel string, isDir bool) bool {
	match := r.matcher.Relative(rel, isDir)
	return match != nil && match.Ignore()
}

func splitLines(content string) []string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	return strings.Split(content, "\n")
}
