package index

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/lexandro/contextai-mcp/cache"
	"github.com/lexandro/contextai-mcp/ignore"
)

// Indexer enumerates the workspace through the ignore rules. File and
// directory lists are cached in the session store on first use and never
// refreshed.
type Indexer struct {
	root   string
	fsys   fs.FS
	rules  *ignore.RuleSet
	store  *cache.Store
	logger *slog.Logger
}

// New creates an indexer for rootDir. rootDir is made absolute.
func New(rootDir string, rules *ignore.RuleSet, store *cache.Store, logger *slog.Logger) *Indexer {
	if abs, err := filepath.Abs(rootDir); err == nil {
		rootDir = abs
	}
	return &Indexer{
		root:   rootDir,
		fsys:   os.DirFS(rootDir),
		rules:  rules,
		store:  store,
		logger: logger,
	}
}

// Root returns the absolute workspace root.
func (ix *Indexer) Root() string {
	return ix.root
}

// Store returns the session cache shared with the other engine components.
func (ix *Indexer) Store() *cache.Store {
	return ix.store
}

// Rules returns the ignore rule set the indexer filters through.
func (ix *Indexer) Rules() *ignore.RuleSet {
	return ix.rules
}

// ListFiles returns the absolute paths of every non-ignored, non-hidden
// regular file whose name ends in one of extensions (".ts" or "ts"), or of
// every file when no extension is given. Extensions match case-sensitively.
// The result is cached per extension list in request order.
func (ix *Indexer) ListFiles(extensions ...string) []string {
	key := cache.Key("files", "all")
	if len(extensions) > 0 {
		key = cache.Key("files", extensions...)
	}

	return cache.Load(ix.store, key, func() ([]string, bool) {
		pattern := filePattern(extensions)
		files, err := ix.walk(func(rel string, d fs.DirEntry) (bool, error) {
			if d.IsDir() || !d.Type().IsRegular() {
				return false, nil
			}
			return doublestar.Match(pattern, rel)
		})
		if err != nil {
			ix.logger.Error("failed to list workspace files", "pattern", pattern, "error", err)
			return []string{}, false
		}
		return files, true
	})
}

// ListDirectories returns the absolute paths of every non-ignored,
// non-hidden directory below the root. The root itself is not included.
func (ix *Indexer) ListDirectories() []string {
	return cache.Load(ix.store, cache.Key("directories"), func() ([]string, bool) {
		dirs, err := ix.walk(func(rel string, d fs.DirEntry) (bool, error) {
			return d.IsDir(), nil
		})
		if err != nil {
			ix.logger.Error("failed to list workspace directories", "error", err)
			return []string{}, false
		}
		return dirs, true
	})
}

// walk traverses the workspace in directory order, pruning ignored
// directories, and collects the absolute paths that keep accepts.
func (ix *Indexer) walk(keep func(rel string, d fs.DirEntry) (bool, error)) ([]string, error) {
	var out []string
	err := doublestar.GlobWalk(ix.fsys, "**", func(rel string, d fs.DirEntry) error {
		if rel == "." {
			return nil
		}
		if d.IsDir() && ix.rules.IsIgnored(rel, true) {
			return doublestar.SkipDir
		}
		if !d.IsDir() && ix.rules.IsIgnored(rel, false) {
			return nil
		}
		ok, err := keep(rel, d)
		if err != nil {
			return err
		}
		if ok {
			out = append(out, filepath.Join(ix.root, filepath.FromSlash(rel)))
		}
		return nil
	}, doublestar.WithNoHidden(), doublestar.WithNoFollow(), doublestar.WithFailOnIOErrors())
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", ix.root, err)
	}
	if out == nil {
		out = []string{}
	}
	return out, nil
}

// filePattern builds the doublestar glob for an extension filter.
func filePattern(extensions []string) string {
	if len(extensions) == 0 {
		return "**/*"
	}
	names := make([]string, len(extensions))
	for i, ext := range extensions {
		names[i] = strings.TrimPrefix(ext, ".")
	}
	if len(names) == 1 {
		return "**/*." + names[0]
	}
	return "**/*.{" + strings.Join(names, ",") + "}"
}

// ReadFile returns the content of the file at path (absolute, or relative to
// the root). Read failures are logged and yield "".
func (ix *Indexer) ReadFile(path string) string {
	data, err := os.ReadFile(ix.Resolve(path))
	if err != nil {
		ix.logger.Warn("failed to read file", "path", path, "error", err)
		return ""
	}
	return string(data)
}

// ReadBytes reads the raw content of a workspace file. Paths outside the root
// and ignored paths are reported as fs.ErrNotExist.
func (ix *Indexer) ReadBytes(path string) ([]byte, error) {
	abs := ix.Resolve(path)
	if !ix.Contains(abs) || ix.rules.IsIgnoredAbs(abs, false) {
		return nil, fmt.Errorf("%s: %w", path, fs.ErrNotExist)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory: %w", path, fs.ErrNotExist)
	}
	return os.ReadFile(abs)
}

// Resolve returns path as an absolute, cleaned path. Relative paths are
// resolved against the workspace root.
func (ix *Indexer) Resolve(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(ix.root, filepath.FromSlash(path))
}

// Relative returns the workspace-relative form of an absolute path, with
// forward slashes. Paths that cannot be made relative are returned as given.
func (ix *Indexer) Relative(absolutePath string) string {
	rel, err := filepath.Rel(ix.root, absolutePath)
	if err != nil {
		return filepath.ToSlash(absolutePath)
	}
	return filepath.ToSlash(rel)
}

// Contains reports whether absolutePath lies inside the workspace root.
func (ix *Indexer) Contains(absolutePath string) bool {
	rel, err := filepath.Rel(ix.root, absolutePath)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// ErrInvalidGlob is returned by FindByGlob for malformed patterns.
var ErrInvalidGlob = errors.New("invalid glob pattern")

// FindByGlob returns the workspace-relative paths of indexed files matching
// a doublestar pattern, up to maxResults (50 when not positive), along with
// the total number of matches.
func (ix *Indexer) FindByGlob(pattern string, maxResults int) ([]string, int, error) {
	if maxResults <= 0 {
		maxResults = 50
	}

	pattern = strings.ReplaceAll(pattern, "\\", "/")
	if !doublestar.ValidatePattern(pattern) {
		return nil, 0, fmt.Errorf("%w: %s", ErrInvalidGlob, pattern)
	}

	var results []string
	total := 0
	for _, abs := range ix.ListFiles() {
		rel := ix.Relative(abs)
		matched, err := doublestar.Match(pattern, rel)
		if err != nil || !matched {
			continue
		}
		total++
		if len(results) < maxResults {
			results = append(results, rel)
		}
	}
	return results, total, nil
}
