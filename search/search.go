// Package search implements line-oriented code search over the indexed
// workspace files.
package search

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/lexandro/contextai-mcp/index"
	"github.com/lexandro/contextai-mcp/language"
)

// MaxResults caps the number of matches returned by one search.
const MaxResults = 50

// Window bounds relative to the 1-based line number of a match. Applied as
// a zero-based slice they keep two lines on either side of the match.
const (
	contextBefore = 3
	contextAfter  = 2
)

// Options describes one search request.
type Options struct {
	Query          string
	FileTypes      []string
	IncludeContext bool
}

// Match is one matching line.
type Match struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Match    string `json:"match"`
	Code     string `json:"code"`
	Context  string `json:"context,omitempty"`
	Language string `json:"language"`
}

// Engine searches file contents line by line.
type Engine struct {
	indexer *index.Indexer
	logger  *slog.Logger
}

// New creates a search engine.
func New(indexer *index.Indexer, logger *slog.Logger) *Engine {
	return &Engine{indexer: indexer, logger: logger}
}

// IsPattern reports whether query is treated as a regular expression: it
// must compile and contain at least one of ( [ * + ?.
func IsPattern(query string) bool {
	if _, err := regexp.Compile(query); err != nil {
		return false
	}
	return strings.ContainsAny(query, "([*+?")
}

// matcher returns the matched text for a line, or false.
type matcher func(line string) (string, bool)

func newMatcher(query string) matcher {
	if IsPattern(query) {
		if re, err := regexp.Compile("(?i)" + query); err == nil {
			return func(line string) (string, bool) {
				loc := re.FindStringIndex(line)
				if loc == nil {
					return "", false
				}
				return line[loc[0]:loc[1]], true
			}
		}
	}

	needle := strings.ToLower(query)
	return func(line string) (string, bool) {
		if strings.Contains(strings.ToLower(line), needle) {
			return query, true
		}
		return "", false
	}
}

// Search scans every indexed file (restricted to opts.FileTypes when given)
// and returns the first MaxResults matches in file-then-line order. Files
// that can no longer be read are skipped.
func (e *Engine) Search(opts Options) []Match {
	match := newMatcher(opts.Query)
	results := []Match{}

	for _, file := range e.indexer.ListFiles(opts.FileTypes...) {
		if len(results) >= MaxResults {
			break
		}
		rel := e.indexer.Relative(file)
		data, err := e.indexer.ReadBytes(file)
		if err != nil {
			e.logger.Warn("skipping unreadable file", "file", rel, "error", err)
			continue
		}

		lang := language.FenceTag(file)
		lines := strings.Split(string(data), "\n")

		for i, line := range lines {
			text, ok := match(line)
			if !ok {
				continue
			}
			m := Match{
				File:     rel,
				Line:     i + 1,
				Match:    text,
				Code:     strings.TrimSpace(line),
				Language: lang,
			}
			if opts.IncludeContext {
				m.Context = Window(lines, m.Line)
			}
			results = append(results, m)
			if len(results) >= MaxResults {
				break
			}
		}
	}
	return results
}

// Window returns the context for the 1-based lineNumber: the matched line
// with up to two lines on either side, clamped to the file bounds.
func Window(lines []string, lineNumber int) string {
	start := max(0, lineNumber-contextBefore)
	end := min(len(lines), lineNumber+contextAfter)
	if start >= end {
		return ""
	}
	return strings.Join(lines[start:end], "\n")
}
