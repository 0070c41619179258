package search

import (
	"bufio"
	"context"
	"log/slog"
	"os"

	"filescope/internal/domain"
)

// Backend turns a query over a set of paths into results
type Backend interface {
	Search(ctx context.Context, query string, paths []string, limits domain.Limits) ([]domain.SearchResult, error)
}

// Scanner is the default backend. It rereads files on every search.
type Scanner struct {
	root   string
	logger *slog.Logger
}

// NewScanner creates a scanner whose result names are relative to root
func NewScanner(root string, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{root: root, logger: logger}
}

// Search visits paths in order. Every opened file counts against
// MaxFiles; files that cannot be opened or look binary are skipped.
func (s *Scanner) Search(ctx context.Context, query string, paths []string, limits domain.Limits) ([]domain.SearchResult, error) {
	limits = NormalizeLimits(limits)
	total := limits.Total()
	m := NewMatcher(query)

	var results []domain.SearchResult
	opened := 0
	for _, path := range paths {
		if opened >= limits.MaxFiles || len(results) >= total {
			break
		}
		if err := ctx.Err(); err != nil {
			return results, err
		}

		f, err := os.Open(path)
		if err != nil {
			s.logger.Debug("skipping unreadable file", "path", path, "err", err)
			continue
		}
		opened++

		results, err = s.scanFile(f, path, m, limits.MaxLinesPerFile, total, results)
		f.Close()
		if err != nil {
			s.logger.Debug("read failed", "path", path, "err", err)
		}
	}
	return results, nil
}

func (s *Scanner) scanFile(f *os.File, path string, m Matcher, perFile, total int, results []domain.SearchResult) ([]domain.SearchResult, error) {
	br := bufio.NewReader(f)
	if IsBinary(br) {
		return results, nil
	}

	name := DisplayName(s.root, path)
	hits := 0
	err := EachLine(br, func(n int, line string) bool {
		score, matched, ok := m.Match(line)
		if !ok {
			return true
		}
		results = append(results, domain.SearchResult{
			Path:    path,
			Name:    name,
			Line:    n,
			Text:    line,
			Score:   score,
			Matched: matched,
		})
		hits++
		return hits < perFile && len(results) < total
	})
	return results, err
}

// DefaultLimits are the caps used when none are configured
func DefaultLimits() domain.Limits {
	return domain.Limits{MaxFiles: 120, MaxLinesPerFile: 20}
}

// NormalizeLimits replaces non-positive caps with the defaults
func NormalizeLimits(l domain.Limits) domain.Limits {
	def := DefaultLimits()
	if l.MaxFiles <= 0 {
		l.MaxFiles = def.MaxFiles
	}
	if l.MaxLinesPerFile <= 0 {
		l.MaxLinesPerFile = def.MaxLinesPerFile
	}
	if l.MaxResults < 0 {
		l.MaxResults = 0
	}
	return l
}
