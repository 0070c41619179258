// Package preview loads a file for display in the preview pane.
package preview

import (
	"bufio"
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"filescope/internal/search"
)

// MaxHighlightBytes is the largest file that gets syntax highlighting
const MaxHighlightBytes = 512 * 1024

// Options controls how files are loaded
type Options struct {
	TabWidth  int
	Highlight bool
	Theme     string
	Logger    *slog.Logger
}

// DefaultOptions returns the default preview options
func DefaultOptions() Options {
	return Options{TabWidth: 4, Highlight: true, Theme: "monokai"}
}

// Preview is one loaded file. Highlighted is nil unless highlighting was
// possible; when set it has one entry per line of Lines.
type Preview struct {
	Path        string
	Lines       []string
	Highlighted []string
	Err         error
}

// Previewer loads files
type Previewer struct {
	opts   Options
	logger *slog.Logger
}

// New creates a previewer
func New(opts Options) *Previewer {
	if opts.TabWidth <= 0 {
		opts.TabWidth = DefaultOptions().TabWidth
	}
	if opts.Theme == "" {
		opts.Theme = DefaultOptions().Theme
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Previewer{opts: opts, logger: logger}
}

// Normalize applies the preview line normalization to one raw line
func (p *Previewer) Normalize(line string) string {
	return p.clean(search.NormalizeLine(line))
}

// clean expands tabs and replaces the remaining control bytes with '?'
// so file content can never drive the terminal.
func (p *Previewer) clean(line string) string {
	line = strings.ReplaceAll(line, "\t", strings.Repeat(" ", p.opts.TabWidth))
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return '?'
		}
		return r
	}, line)
}

// Load reads path. A failure yields an empty preview with Err set.
func (p *Previewer) Load(path string) Preview {
	pv := Preview{Path: path}

	f, err := os.Open(path)
	if err != nil {
		pv.Err = fmt.Errorf("cannot preview %s: %w", path, err)
		return pv
	}
	defer f.Close()

	size := 0
	var lines []string
	err = search.EachLine(bufio.NewReader(f), func(_ int, line string) bool {
		size += len(line) + 1
		lines = append(lines, p.clean(line))
		return true
	})
	if err != nil {
		pv.Err = fmt.Errorf("cannot preview %s: %w", path, err)
		return pv
	}
	pv.Lines = lines

	if p.opts.Highlight && size <= MaxHighlightBytes && len(lines) > 0 {
		pv.Highlighted = p.highlight(path, lines)
	}
	return pv
}

// highlight returns one formatted string per line, or nil if no lexer fits
func (p *Previewer) highlight(path string, lines []string) []string {
	text := strings.Join(lines, "\n")

	lexer := lexers.Match(filepath.Base(path))
	if lexer == nil {
		lexer = lexers.Analyse(text)
	}
	if lexer == nil {
		return nil
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, text)
	if err != nil {
		p.logger.Debug("tokenise failed", "path", path, "err", err)
		return nil
	}

	style := styles.Get(p.opts.Theme)
	formatter := formatters.Get("terminal256")

	out := make([]string, len(lines))
	copy(out, lines)
	var buf bytes.Buffer
	for i, tokens := range chroma.SplitTokensIntoLines(it.Tokens()) {
		if i >= len(out) {
			break
		}
		for j := range tokens {
			tokens[j].Value = strings.TrimSuffix(tokens[j].Value, "\n")
		}
		buf.Reset()
		if err := formatter.Format(&buf, style, chroma.Literator(tokens...)); err != nil {
			p.logger.Debug("format failed", "path", path, "err", err)
			return nil
		}
		out[i] = strings.TrimSuffix(buf.String(), "\n")
	}
	return out
}
