package fulltext

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lexandro/contextai-mcp/index"
	"github.com/lexandro/contextai-mcp/language"
)

// DefaultWorkers is the number of files read in parallel during a build.
const DefaultWorkers = 8

// maxFileSize skips files larger than this many bytes.
const maxFileSize = 1 << 20

// errSkipped marks a file left out of the index on purpose.
var errSkipped = errors.New("skipped")

// BuildStats describes one index build.
type BuildStats struct {
	Files    int
	Bytes    int64
	Skipped  int
	Duration time.Duration
}

// Build reads every indexed workspace file with a bounded worker pool and
// adds the text files to a new Index. Unreadable, binary and oversized
// files are skipped. Only cancellation of ctx fails the build.
func Build(ctx context.Context, ix *index.Indexer, workers int, logger *slog.Logger) (*Index, BuildStats, error) {
	start := time.Now()
	if workers <= 0 {
		workers = DefaultWorkers
	}

	idx, err := NewIndex()
	if err != nil {
		return nil, BuildStats{}, err
	}

	var files, skipped atomic.Int64
	var totalBytes atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, path := range ix.ListFiles() {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			size, err := addFile(idx, ix, path)
			if err != nil {
				skipped.Add(1)
				logger.Debug("skipped file", "path", ix.Relative(path), "error", err)
				return nil
			}
			files.Add(1)
			totalBytes.Add(size)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		idx.Close()
		return nil, BuildStats{}, fmt.Errorf("building full-text index: %w", err)
	}
	if err := ctx.Err(); err != nil {
		idx.Close()
		return nil, BuildStats{}, fmt.Errorf("building full-text index: %w", err)
	}

	stats := BuildStats{
		Files:    int(files.Load()),
		Bytes:    totalBytes.Load(),
		Skipped:  int(skipped.Load()),
		Duration: time.Since(start),
	}
	logger.Info("full-text index built",
		"files", stats.Files,
		"skipped", stats.Skipped,
		"bytes", stats.Bytes,
		"elapsed", stats.Duration,
	)
	return idx, stats, nil
}

func addFile(idx *Index, ix *index.Indexer, path string) (int64, error) {
	data, err := ix.ReadBytes(path)
	if err != nil {
		return 0, fmt.Errorf("reading file: %w", err)
	}
	if len(data) > maxFileSize {
		return 0, fmt.Errorf("%w: larger than %d bytes", errSkipped, maxFileSize)
	}
	if language.IsBinaryContent(data) {
		return 0, fmt.Errorf("%w: binary content", errSkipped)
	}

	lang, ok := language.AnalysisName(language.Extension(path))
	if !ok {
		lang = "Unknown"
	}
	if err := idx.Add(ix.Relative(path), string(data), lang); err != nil {
		return 0, err
	}
	return int64(len(data)), nil
}

// Service builds the index on first use and hands the same snapshot to
// every later caller. A failed build is not remembered.
type Service struct {
	indexer *index.Indexer
	workers int
	logger  *slog.Logger

	mu    sync.Mutex
	idx   *Index
	stats BuildStats
}

// NewService creates a lazily built full-text service.
func NewService(indexer *index.Indexer, workers int, logger *slog.Logger) *Service {
	return &Service{indexer: indexer, workers: workers, logger: logger}
}

// Index returns the index, building it if needed.
func (s *Service) Index(ctx context.Context) (*Index, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.idx != nil {
		return s.idx, nil
	}
	idx, stats, err := Build(ctx, s.indexer, s.workers, s.logger)
	if err != nil {
		return nil, err
	}
	s.idx, s.stats = idx, stats
	return idx, nil
}

// Stats reports the completed build, if any.
func (s *Service) Stats() (BuildStats, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats, s.idx != nil
}

// Close releases the index if it was built.
func (s *Service) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.idx == nil {
		return nil
	}
	err := s.idx.Close()
	s.idx = nil
	return err
}
