package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/x/ansi"

	"filescope/internal/ui/input/types"
)

// ChromeLines is the number of rows around the body: prompt, summary,
// status and help
const ChromeLines = 4

// ReadyMarker is appended to the help line when ViewState.Ready is set, so
// terminal drivers can tell the first frame was drawn
const ReadyMarker = "__READY__"

// BodyHeight returns the rows left for the result list or preview body in a
// terminal of the given height
func BodyHeight(height int) int {
	if height-ChromeLines < 1 {
		return 1
	}
	return height - ChromeLines
}

// ResultRow is one visible result line
type ResultRow struct {
	Name     string
	Line     int
	Text     string
	Matched  []int
	Selected bool
}

// PreviewRow is one visible preview line
type PreviewRow struct {
	Number  int
	Text    string
	Styled  string // syntax highlighted text, empty when unavailable
	IsMatch bool
}

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int
	Mode   types.Mode

	Query        string
	Rows         []ResultRow
	TotalResults int
	FilesKnown   int
	ScanDone     bool
	Dirty        bool

	PreviewName string
	PreviewLine int
	PreviewRows []PreviewRow
	PreviewCol  int // 1-based first visible column
	GutterWidth int

	StatusMessage string
	HelpModel     help.Model
	HelpKeys      help.KeyMap
	Ready         bool
}

// Renderer draws a frame from a view state
type Renderer interface {
	Render(state ViewState) string
}

// renderer is shared by the terminal and plain backends
type renderer struct {
	styles *Styles
	color  bool
}

// NewTerminalRenderer returns a renderer producing styled output
func NewTerminalRenderer() Renderer {
	return &renderer{styles: NewStyles(), color: true}
}

// NewPlainRenderer returns a renderer producing unstyled text, for headless
// use and tests
func NewPlainRenderer() Renderer {
	return &renderer{styles: NewPlainStyles()}
}

// Render produces the complete view
func (r *renderer) Render(state ViewState) string {
	width := state.Width
	if width <= 0 {
		width = 80 // Default terminal width
	}
	height := state.Height
	if height <= 0 {
		height = 24
	}
	body := BodyHeight(height)

	lines := make([]string, 0, height)
	lines = append(lines, r.renderPrompt(state))

	var bodyLines []string
	if state.Mode == types.ModePreviewing {
		bodyLines = r.renderPreview(state, width)
	} else {
		bodyLines = r.renderResults(state, width)
	}
	if len(bodyLines) > body {
		bodyLines = bodyLines[:body]
	}
	lines = append(lines, bodyLines...)
	for i := len(bodyLines); i < body; i++ {
		lines = append(lines, "")
	}

	lines = append(lines, r.renderSummary(state))
	lines = append(lines, r.renderStatus(state))
	lines = append(lines, r.renderHelp(state, width))

	for i, l := range lines {
		lines[i] = ansi.Truncate(l, width, "")
	}
	return strings.Join(lines, "\n")
}

func (r *renderer) renderPrompt(state ViewState) string {
	switch state.Mode {
	case types.ModeSearching:
		return r.styles.Prompt.Render("> ") + r.styles.Query.Render(sanitize(state.Query)) + r.styles.Cursor.Render(" ")
	case types.ModePreviewing:
		title := state.PreviewName
		if state.PreviewLine > 0 {
			title = fmt.Sprintf("%s:%d", title, state.PreviewLine)
		}
		return r.styles.Title.Render(sanitize(title))
	default:
		return r.styles.Dim.Render("  " + sanitize(state.Query))
	}
}

func (r *renderer) renderSummary(state ViewState) string {
	summary := fmt.Sprintf("%d results · %d files", state.TotalResults, state.FilesKnown)
	out := r.styles.Summary.Render(summary)
	if !state.ScanDone {
		out += r.styles.Scan.Render(" · scanning…")
	}
	if state.Dirty {
		out += r.styles.Dim.Render(" · pending")
	}
	return out
}

func (r *renderer) renderStatus(state ViewState) string {
	if state.StatusMessage == "" {
		return ""
	}
	return r.styles.StatusError.Render(sanitize(state.StatusMessage))
}

func (r *renderer) renderHelp(state ViewState, width int) string {
	out := ""
	if state.HelpKeys != nil {
		h := state.HelpModel
		h.Width = width
		if state.Ready {
			h.Width -= len(ReadyMarker) + 1
		}
		out = h.View(state.HelpKeys)
		if !r.color {
			out = ansi.Strip(out)
		}
	}
	if state.Ready {
		if out != "" {
			out += " "
		}
		out += ReadyMarker
	}
	return out
}

// sanitize makes text safe to print on one terminal line
func sanitize(s string) string {
	var b strings.Builder
	for _, ch := range s {
		switch {
		case ch == '\t':
			b.WriteString("    ")
		case ch < 0x20 || ch == 0x7f:
			b.WriteRune('?')
		default:
			b.WriteRune(ch)
		}
	}
	return b.String()
}
