package search

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"filescope/internal/domain"
)

// Options configures an Index
type Options struct {
	Debounce    time.Duration
	Limits      domain.Limits
	SortByScore bool
	Clock       func() time.Time
	Logger      *slog.Logger
}

// DefaultOptions returns the defaults: 500ms debounce and 120 files x 20 lines
func DefaultOptions() Options {
	return Options{
		Debounce: 500 * time.Millisecond,
		Limits:   DefaultLimits(),
	}
}

// Index owns the discovered paths and the results of the last search.
// It is not safe for concurrent use; the event loop is its only caller.
type Index struct {
	backend Backend
	opts    Options
	logger  *slog.Logger

	paths   *PathSet
	last    time.Time
	query   string
	results []domain.SearchResult
	err     error
}

// NewIndex creates an index over root. A nil backend scans files directly.
func NewIndex(root string, backend Backend, opts Options) *Index {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Debounce < 0 {
		opts.Debounce = 0
	}
	opts.Limits = NormalizeLimits(opts.Limits)
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if backend == nil {
		backend = NewScanner(root, opts.Logger)
	}
	return &Index{
		backend: backend,
		opts:    opts,
		logger:  opts.Logger,
		paths:   NewPathSet(),
	}
}

// Add merges newly discovered paths and returns how many were new. It never
// triggers a search.
func (idx *Index) Add(paths ...string) int {
	return idx.paths.Add(paths...)
}

// Len returns the number of known files
func (idx *Index) Len() int { return idx.paths.Len() }

// Results returns the results of the last search that ran
func (idx *Index) Results() []domain.SearchResult { return idx.results }

// Query returns the query of the last search that ran
func (idx *Index) Query() string { return idx.query }

// Err returns the backend error of the last search, if any
func (idx *Index) Err() error { return idx.err }

// Wait returns how long until the next search is allowed
func (idx *Index) Wait() time.Duration {
	return Remaining(idx.opts.Clock(), idx.last, idx.opts.Debounce)
}

// Search runs query unless the previous search completed less than the
// debounce interval ago, in which case the previous results are returned and
// ran is false.
func (idx *Index) Search(query string) (results []domain.SearchResult, ran bool) {
	return idx.SearchContext(context.Background(), query)
}

// SearchContext is Search with a context passed to the backend
func (idx *Index) SearchContext(ctx context.Context, query string) ([]domain.SearchResult, bool) {
	if !ShouldRun(idx.opts.Clock(), idx.last, idx.opts.Debounce) {
		return idx.results, false
	}

	start := time.Now()
	results, err := idx.backend.Search(ctx, query, idx.paths.view(), idx.opts.Limits)
	idx.last = idx.opts.Clock()
	idx.err = err
	if err != nil {
		idx.logger.Warn("search failed, keeping previous results", "query", query, "err", err)
		return idx.results, true
	}

	if idx.opts.SortByScore {
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Score > results[j].Score
		})
	}

	idx.query = query
	idx.results = results
	idx.logger.Debug("search", "query", query, "files", idx.paths.Len(),
		"results", len(results), "elapsed", time.Since(start))
	return results, true
}
