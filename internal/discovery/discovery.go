package discovery

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"filescope/internal/domain"
	"filescope/internal/eventbus"
)

// ErrScanInProgress is returned by Start while a previous traversal is still running
var ErrScanInProgress = errors.New("scan already in progress")

// Options controls a traversal
type Options struct {
	Threads         int      // concurrent directory readers
	Capacity        int      // capacity of the output channel
	Hidden          bool     // include dot files and dot directories
	FollowSymlinks  bool     // descend into symlinked directories
	RespectIgnore   bool     // honor ignore files found in the tree
	IgnoreFileNames []string // ignore files looked up in every directory
	ExtraIgnore     []string // gitignore-syntax patterns anchored at the root
	MaxDepth        int      // 0 means unlimited
}

// DefaultOptions returns the options used when none are configured
func DefaultOptions() Options {
	return Options{
		Threads:         2,
		Capacity:        100,
		RespectIgnore:   true,
		IgnoreFileNames: []string{".gitignore", ".ignore"},
	}
}

// Collector walks a directory tree in parallel and streams regular file
// paths over a bounded channel to a single consumer.
type Collector struct {
	bus    eventbus.EventBus
	opts   Options
	logger *slog.Logger

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}
	last    domain.ScanStats
}

// NewCollector creates a new collector
func NewCollector(bus eventbus.EventBus, opts Options, logger *slog.Logger) *Collector {
	def := DefaultOptions()
	if opts.Threads <= 0 {
		opts.Threads = def.Threads
	}
	if opts.Capacity <= 0 {
		opts.Capacity = def.Capacity
	}
	if opts.IgnoreFileNames == nil {
		opts.IgnoreFileNames = def.IgnoreFileNames
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Collector{bus: bus, opts: opts, logger: logger}
}

// Start begins traversing root and returns the stream of discovered files.
// The channel is closed when the traversal finishes or is stopped.
func (c *Collector) Start(ctx context.Context, root string) (<-chan string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("cannot scan %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("cannot scan %s: not a directory", root)
	}

	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return nil, ErrScanInProgress
	}
	scanCtx, cancel := context.WithCancel(ctx)
	c.running = true
	c.cancel = cancel
	c.done = make(chan struct{})
	done := c.done
	c.mu.Unlock()

	out := make(chan string, c.opts.Capacity)
	c.publish(eventbus.ScanStartedEvent{Root: root, Threads: c.opts.Threads})

	go c.run(scanCtx, root, out, done)

	return out, nil
}

// Stop cancels a running traversal and waits until its channel is closed
func (c *Collector) Stop() {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Running reports whether a traversal is in progress
func (c *Collector) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.running
}

// Stats returns the counters of the last finished traversal
func (c *Collector) Stats() domain.ScanStats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

func (c *Collector) publish(e eventbus.DomainEvent) {
	if c.bus != nil {
		c.bus.Publish(e)
	}
}

func (c *Collector) run(ctx context.Context, root string, out chan<- string, done chan struct{}) {
	start := time.Now()
	w := newWalker(c.opts, c.logger, out)

	g, gctx := errgroup.WithContext(ctx)
	stop := context.AfterFunc(gctx, w.queue.close)

	w.queue.push(w.rootJob(root))
	for i := 0; i < c.opts.Threads; i++ {
		g.Go(func() error { return w.work(gctx) })
	}
	err := g.Wait()
	stop()
	close(out)

	stats := w.stats()
	stats.Canceled = err != nil || ctx.Err() != nil
	elapsed := time.Since(start)

	c.mu.Lock()
	c.running = false
	c.last = stats
	c.cancel()
	c.cancel = nil
	c.mu.Unlock()
	close(done)

	c.logger.Info("scan finished", "root", root, "files", stats.Files, "dirs", stats.Dirs,
		"ignored", stats.Ignored, "skipped", stats.Skipped, "canceled", stats.Canceled, "elapsed", elapsed)
	c.publish(eventbus.ScanCompletedEvent{Root: root, Stats: stats, Duration: elapsed})
}

// dirJob is one directory waiting to be read
type dirJob struct {
	path  string
	depth int
	rules ruleSet
}

// dirQueue is the unbounded work list shared by the workers. It closes
// itself once every pushed directory has been processed.
type dirQueue struct {
	mu      sync.Mutex
	cond    *sync.Cond
	items   []dirJob
	pending int
	closed  bool
}

func newDirQueue() *dirQueue {
	q := &dirQueue{}
	q.cond = sync.NewCond(&q.mu)
	return q
}

func (q *dirQueue) push(j dirJob) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.items = append(q.items, j)
	q.pending++
	q.cond.Signal()
}

func (q *dirQueue) pop() (dirJob, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.items) == 0 && !q.closed {
		q.cond.Wait()
	}
	if q.closed {
		return dirJob{}, false
	}
	j := q.items[len(q.items)-1]
	q.items = q.items[:len(q.items)-1]
	return j, true
}

// finish marks one popped job as processed
func (q *dirQueue) finish() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending--
	if q.pending == 0 {
		q.closed = true
		q.cond.Broadcast()
	}
}

func (q *dirQueue) close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.closed = true
	q.items = nil
	q.cond.Broadcast()
}

type walker struct {
	opts   Options
	logger *slog.Logger
	out    chan<- string
	queue  *dirQueue

	visitedMu sync.Mutex
	visited   map[string]struct{}

	files   atomic.Int64
	dirs    atomic.Int64
	ignored atomic.Int64
	skipped atomic.Int64
}

func newWalker(opts Options, logger *slog.Logger, out chan<- string) *walker {
	return &walker{
		opts:    opts,
		logger:  logger,
		out:     out,
		queue:   newDirQueue(),
		visited: make(map[string]struct{}),
	}
}

func (w *walker) stats() domain.ScanStats {
	return domain.ScanStats{
		Files:   int(w.files.Load()),
		Dirs:    int(w.dirs.Load()),
		Ignored: int(w.ignored.Load()),
		Skipped: int(w.skipped.Load()),
	}
}

func (w *walker) rootJob(root string) dirJob {
	var rules ruleSet
	if r, ok := compileLines(root, w.opts.ExtraIgnore); ok {
		rules = rules.with(r)
	}
	if w.opts.RespectIgnore {
		r, ok, err := loadRuleFile(root, filepath.Join(root, ".git", "info", "exclude"))
		if err != nil {
			w.logger.Debug("skipping unreadable exclude file", "root", root, "err", err)
		} else if ok {
			rules = rules.with(r)
		}
	}
	w.markVisited(root)
	return dirJob{path: root, rules: rules}
}

// markVisited records the real path of a directory and reports whether it
// was new. Only needed when symlinked directories are followed.
func (w *walker) markVisited(path string) bool {
	if !w.opts.FollowSymlinks {
		return true
	}
	real, err := filepath.EvalSymlinks(path)
	if err != nil {
		return false
	}
	w.visitedMu.Lock()
	defer w.visitedMu.Unlock()
	if _, seen := w.visited[real]; seen {
		return false
	}
	w.visited[real] = struct{}{}
	return true
}

func (w *walker) work(ctx context.Context) error {
	for {
		job, ok := w.queue.pop()
		if !ok {
			return ctx.Err()
		}
		err := w.readDir(ctx, job)
		w.queue.finish()
		if err != nil {
			return err
		}
	}
}

func (w *walker) readDir(ctx context.Context, job dirJob) error {
	entries, err := os.ReadDir(job.path)
	if err != nil {
		w.skipped.Add(1)
		w.logger.Debug("skipping unreadable directory", "path", job.path, "err", err)
	}
	w.dirs.Add(1)

	rules := job.rules
	if w.opts.RespectIgnore {
		for _, name := range w.opts.IgnoreFileNames {
			r, ok, err := loadRuleFile(job.path, filepath.Join(job.path, name))
			if err != nil {
				w.logger.Debug("skipping unreadable ignore file", "dir", job.path, "file", name, "err", err)
				continue
			}
			if ok {
				rules = rules.with(r)
			}
		}
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		name := entry.Name()
		if name == ".git" && entry.IsDir() {
			continue
		}
		if !w.opts.Hidden && strings.HasPrefix(name, ".") {
			w.ignored.Add(1)
			continue
		}

		path := filepath.Join(job.path, name)
		isDir, isFile := w.classify(path, entry)
		if !isDir && !isFile {
			continue
		}

		if rules.ignored(path, isDir) {
			w.ignored.Add(1)
			continue
		}

		if isDir {
			if w.opts.MaxDepth > 0 && job.depth+1 >= w.opts.MaxDepth {
				continue
			}
			if !w.markVisited(path) {
				continue
			}
			w.queue.push(dirJob{path: path, depth: job.depth + 1, rules: rules})
			continue
		}

		select {
		case w.out <- path:
			w.files.Add(1)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// classify resolves symlinks and reports whether path should be treated as a
// directory to descend into or a regular file to emit.
func (w *walker) classify(path string, entry fs.DirEntry) (isDir, isFile bool) {
	mode := entry.Type()
	if mode&fs.ModeSymlink == 0 {
		return entry.IsDir(), mode.IsRegular()
	}

	info, err := os.Stat(path)
	if err != nil {
		w.skipped.Add(1)
		w.logger.Debug("skipping broken symlink", "path", path, "err", err)
		return false, false
	}
	if info.IsDir() {
		return w.opts.FollowSymlinks, false
	}
	return false, info.Mode().IsRegular()
}
