// Package fulltext provides ranked word search over workspace file contents
// using an in-memory bleve index. The index is a snapshot: it is built once
// per session and never updated.
package fulltext

import (
	"fmt"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/bmatcuk/doublestar/v4"
)

// Index is an in-memory bleve index plus the raw text of every document,
// kept for line-level result extraction.
type Index struct {
	mu       sync.RWMutex
	index    bleve.Index
	contents map[string]string // key: workspace-relative path
}

// NewIndex creates an empty in-memory index.
func NewIndex() (*Index, error) {
	bleveIndex, err := bleve.NewMemOnly(buildMapping())
	if err != nil {
		return nil, fmt.Errorf("creating bleve index: %w", err)
	}
	return &Index{
		index:    bleveIndex,
		contents: make(map[string]string),
	}, nil
}

type document struct {
	Content  string `json:"content"`
	Path     string `json:"path"`
	Language string `json:"language"`
}

func buildMapping() *mapping.IndexMappingImpl {
	indexMapping := bleve.NewIndexMapping()
	docMapping := bleve.NewDocumentMapping()

	content := bleve.NewTextFieldMapping()
	content.Store = false
	content.IncludeInAll = true
	docMapping.AddFieldMappingsAt("content", content)

	path := bleve.NewTextFieldMapping()
	path.Store = true
	path.IncludeInAll = false
	docMapping.AddFieldMappingsAt("path", path)

	lang := bleve.NewKeywordFieldMapping()
	lang.Store = true
	lang.IncludeInAll = false
	docMapping.AddFieldMappingsAt("language", lang)

	indexMapping.DefaultMapping = docMapping
	return indexMapping
}

// Add indexes one file under its workspace-relative path.
func (ix *Index) Add(relativePath, content, language string) error {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	ix.contents[relativePath] = content
	doc := document{Content: content, Path: relativePath, Language: language}
	if err := ix.index.Index(relativePath, doc); err != nil {
		return fmt.Errorf("indexing %s: %w", relativePath, err)
	}
	return nil
}

// FileResult groups the matching lines of one file.
type FileResult struct {
	RelativePath string
	Matches      []LineMatch
}

// LineMatch is one matching line with optional surrounding lines.
type LineMatch struct {
	LineNumber    int
	LineText      string
	ContextBefore []string
	ContextAfter  []string
}

// Options configures a search.
type Options struct {
	Query        string
	FileGlob     string
	MaxResults   int
	ContextLines int
}

// Search runs a ranked query and returns up to MaxResults files (50 when not
// positive) in score order, with their matching lines, and the total number
// of matching lines across those files.
//
// Query syntax:
//   - plain words: any word matches
//   - "quoted text": exact phrase
//   - /regex/: regular expression over indexed terms
func (ix *Index) Search(opts Options) ([]FileResult, int, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	if opts.MaxResults <= 0 {
		opts.MaxResults = 50
	}
	if opts.ContextLines < 0 {
		opts.ContextLines = 0
	}

	q := parseQuery(opts.Query)
	matchLine, err := q.lineMatcher()
	if err != nil {
		return nil, 0, err
	}

	request := bleve.NewSearchRequest(q.bleveQuery())
	request.Size = opts.MaxResults * 5
	request.Fields = []string{"path", "language"}

	found, err := ix.index.Search(request)
	if err != nil {
		return nil, 0, fmt.Errorf("searching index: %w", err)
	}

	glob := strings.ReplaceAll(opts.FileGlob, "\\", "/")
	var results []FileResult
	total := 0
	for _, hit := range found.Hits {
		content, ok := ix.contents[hit.ID]
		if !ok {
			continue
		}
		if glob != "" {
			if matched, err := doublestar.Match(glob, hit.ID); err != nil || !matched {
				continue
			}
		}

		lines := matchingLines(content, matchLine, opts.ContextLines)
		if len(lines) == 0 {
			continue
		}
		total += len(lines)
		results = append(results, FileResult{RelativePath: hit.ID, Matches: lines})
		if len(results) >= opts.MaxResults {
			break
		}
	}
	return results, total, nil
}

func matchingLines(content string, match func(string) bool, contextLines int) []LineMatch {
	lines := strings.Split(content, "\n")
	var matches []LineMatch

	for i, line := range lines {
		if !match(line) {
			continue
		}
		m := LineMatch{LineNumber: i + 1, LineText: line}
		if contextLines > 0 {
			start := max(0, i-contextLines)
			end := min(len(lines), i+contextLines+1)
			m.ContextBefore = append([]string(nil), lines[start:i]...)
			m.ContextAfter = append([]string(nil), lines[i+1:end]...)
		}
		matches = append(matches, m)
	}
	return matches
}

// DocumentCount returns the number of indexed documents.
func (ix *Index) DocumentCount() uint64 {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	count, _ := ix.index.DocCount()
	return count
}

// Close releases the bleve index.
func (ix *Index) Close() error {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	return ix.index.Close()
}
