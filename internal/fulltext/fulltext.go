// Package fulltext is a search backend that keeps every line of the
// discovered files in a temporary SQLite FTS5 index.
package fulltext

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"filescope/internal/domain"
	"filescope/internal/eventbus"
	"filescope/internal/search"
)

const schema = `
CREATE VIRTUAL TABLE IF NOT EXISTS lines USING fts5(
    file_name,
    body,
    path UNINDEXED,
    line UNINDEXED
);
`

// Index is a search.Backend over an on-disk FTS5 table. The table is
// rebuilt from scratch whenever the path set it was built from changes.
type Index struct {
	db      *sql.DB
	dir     string
	tempDir bool
	root    string
	bus     eventbus.EventBus
	logger  *slog.Logger

	builtPaths int
	builtFiles int
}

// Open creates the index database in dir, or in a fresh temporary
// directory when dir is empty. Result names are relative to root.
func Open(root, dir string, bus eventbus.EventBus, logger *slog.Logger) (*Index, error) {
	if logger == nil {
		logger = slog.Default()
	}

	tempDir := false
	if dir == "" {
		d, err := os.MkdirTemp("", "filescope-index-")
		if err != nil {
			return nil, fmt.Errorf("create index directory: %w", err)
		}
		dir, tempDir = d, true
	}

	db, err := sql.Open("sqlite", filepath.Join(dir, "index.db"))
	if err != nil {
		if tempDir {
			os.RemoveAll(dir)
		}
		return nil, fmt.Errorf("open index: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		if tempDir {
			os.RemoveAll(dir)
		}
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Index{
		db:      db,
		dir:     dir,
		tempDir: tempDir,
		root:    root,
		bus:     bus,
		logger:  logger,
	}, nil
}

// Dir returns the directory holding the database
func (x *Index) Dir() string { return x.dir }

// Close closes the database and removes the directory if Open created it
func (x *Index) Close() error {
	err := x.db.Close()
	if x.tempDir {
		if rmErr := os.RemoveAll(x.dir); rmErr != nil && err == nil {
			err = rmErr
		}
	}
	return err
}

// Search implements search.Backend
func (x *Index) Search(ctx context.Context, query string, paths []string, limits domain.Limits) ([]domain.SearchResult, error) {
	limits = search.NormalizeLimits(limits)
	if len(paths) != x.builtPaths || limits.MaxFiles != x.builtFiles {
		if err := x.rebuild(ctx, paths, limits.MaxFiles); err != nil {
			x.publish(eventbus.ErrorEvent{Message: "index rebuild failed: " + err.Error(), Err: err})
			return nil, err
		}
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return x.collect(ctx, limits, "", `SELECT path, file_name, line, body, 0 FROM lines ORDER BY rowid`)
	}

	const q = `SELECT path, file_name, line, body, bm25(lines) FROM lines WHERE lines MATCH ? ORDER BY rank`
	results, err := x.collect(ctx, limits, query, q, query)
	if err == nil && len(results) > 0 {
		return results, nil
	}

	prefix := prefixQuery(query)
	if prefix == query {
		return results, err
	}
	if err != nil {
		x.logger.Debug("fts query rejected, retrying as prefix terms", "query", query, "err", err)
	}
	return x.collect(ctx, limits, query, q, prefix)
}

func (x *Index) collect(ctx context.Context, limits domain.Limits, query, stmt string, args ...any) ([]domain.SearchResult, error) {
	rows, err := x.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query index: %w", err)
	}
	defer rows.Close()

	m := search.NewMatcher(query)
	total := limits.Total()
	perFile := make(map[string]int)

	var results []domain.SearchResult
	for rows.Next() {
		var r domain.SearchResult
		var rank float64
		if err := rows.Scan(&r.Path, &r.Name, &r.Line, &r.Text, &rank); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		if perFile[r.Path] >= limits.MaxLinesPerFile {
			continue
		}
		perFile[r.Path]++

		r.Score = int(math.Round(-rank * 1000))
		if _, matched, ok := m.Match(r.Text); ok {
			r.Matched = matched
		}
		results = append(results, r)
		if len(results) >= total {
			break
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	return results, nil
}

func (x *Index) rebuild(ctx context.Context, paths []string, maxFiles int) error {
	start := time.Now()

	tx, err := x.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin rebuild: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM lines`); err != nil {
		return fmt.Errorf("clear index: %w", err)
	}
	insert, err := tx.PrepareContext(ctx, `INSERT INTO lines (file_name, body, path, line) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer insert.Close()

	files, lines := 0, 0
	for _, path := range paths {
		if maxFiles > 0 && files >= maxFiles {
			break
		}
		n, opened, err := x.indexFile(ctx, insert, path)
		if opened {
			files++
		}
		lines += n
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			x.logger.Debug("skipping file during index build", "path", path, "err", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit rebuild: %w", err)
	}

	x.builtPaths = len(paths)
	x.builtFiles = maxFiles
	elapsed := time.Since(start)
	x.logger.Info("index rebuilt", "files", files, "lines", lines, "elapsed", elapsed)
	x.publish(eventbus.IndexBuiltEvent{Files: files, Lines: lines, Duration: elapsed})
	return nil
}

func (x *Index) publish(e eventbus.DomainEvent) {
	if x.bus != nil {
		x.bus.Publish(e)
	}
}

func (x *Index) indexFile(ctx context.Context, insert *sql.Stmt, path string) (int, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, false, err
	}
	defer f.Close()

	br := bufio.NewReader(f)
	if search.IsBinary(br) {
		return 0, true, nil
	}

	name := search.DisplayName(x.root, path)
	n := 0
	var insertErr error
	err = search.EachLine(br, func(line int, text string) bool {
		if _, insertErr = insert.ExecContext(ctx, name, text, path, line); insertErr != nil {
			return false
		}
		n++
		return true
	})
	if insertErr != nil {
		return n, true, insertErr
	}
	return n, true, err
}

// prefixQuery turns free text into an FTS5 query of quoted prefix terms
func prefixQuery(query string) string {
	fields := strings.Fields(query)
	for i, f := range fields {
		fields[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"*`
	}
	return strings.Join(fields, " ")
}
