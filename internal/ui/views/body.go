package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func (r *renderer) renderResults(state ViewState, width int) []string {
	if len(state.Rows) == 0 {
		msg := "no matches"
		if state.Dirty {
			msg = "searching…"
		} else if state.Query == "" && state.FilesKnown == 0 {
			msg = "waiting for files…"
		}
		return []string{r.styles.Dim.Render("  " + msg)}
	}

	lines := make([]string, 0, len(state.Rows))
	for _, row := range state.Rows {
		marker := "  "
		if row.Selected {
			marker = "> "
		}
		prefix := r.styles.Name.Render(sanitize(row.Name)) + ":" +
			r.styles.LineNumber.Render(fmt.Sprintf("%d", row.Line)) + ": "
		line := marker + prefix + r.highlightMatches(row.Text, row.Matched)
		line = ansi.Truncate(line, width, "…")
		if row.Selected {
			line = r.fill(r.styles.SelectionBg, line, width)
		}
		lines = append(lines, line)
	}
	return lines
}

func (r *renderer) renderPreview(state ViewState, width int) []string {
	if len(state.PreviewRows) == 0 {
		return []string{r.styles.Dim.Render("  (empty)")}
	}

	gutter := state.GutterWidth
	if gutter <= 0 {
		gutter = len(fmt.Sprintf("%d", state.PreviewRows[len(state.PreviewRows)-1].Number))
	}
	col := state.PreviewCol
	if col < 1 {
		col = 1
	}
	textWidth := width - gutter - 3
	if textWidth < 1 {
		textWidth = 1
	}

	lines := make([]string, 0, len(state.PreviewRows))
	for _, row := range state.PreviewRows {
		text := row.Styled
		if text == "" || !r.color {
			text = sanitize(row.Text)
		}
		text = ansi.Cut(text, col-1, col-1+textWidth)

		num := fmt.Sprintf("%*d", gutter, row.Number)
		sep := " │ "
		if row.IsMatch {
			sep = " ▶ "
		}
		line := r.styles.Gutter.Render(num) + sep + text
		if row.IsMatch {
			line = r.fill(r.styles.MatchLineBg, line, width)
		}
		lines = append(lines, line)
	}
	return lines
}

// highlightMatches styles the bytes of text listed in matched
func (r *renderer) highlightMatches(text string, matched []int) string {
	if len(matched) == 0 {
		return sanitize(text)
	}
	hit := make(map[int]bool, len(matched))
	for _, i := range matched {
		hit[i] = true
	}

	var b strings.Builder
	var run strings.Builder
	inMatch := false
	flush := func() {
		if run.Len() == 0 {
			return
		}
		if inMatch {
			b.WriteString(r.styles.Match.Render(run.String()))
		} else {
			b.WriteString(run.String())
		}
		run.Reset()
	}
	for i, ch := range text {
		if hit[i] != inMatch {
			flush()
			inMatch = hit[i]
		}
		run.WriteString(sanitize(string(ch)))
	}
	flush()
	return b.String()
}

// fill pads line to width and applies a background
func (r *renderer) fill(style lipgloss.Style, line string, width int) string {
	if !r.color {
		return line
	}
	pad := width - ansi.StringWidth(line)
	if pad > 0 {
		line += strings.Repeat(" ", pad)
	}
	return style.Render(line)
}
