package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"filescope/internal/ui/input/types"
)

type fakeContext struct {
	mode    types.Mode
	query   string
	results int
}

func (c fakeContext) Mode() types.Mode { return c.mode }
func (c fakeContext) Query() string    { return c.query }
func (c fakeContext) ResultCount() int { return c.results }

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBrowseKeys(t *testing.T) {
	h := New()
	ctx := fakeContext{mode: types.ModeBrowsing, results: 3}

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want []types.Action
	}{
		{"i edits", runes("i"), []types.Action{types.EnterEditAction{}}},
		{"slash edits", runes("/"), []types.Action{types.EnterEditAction{}}},
		{"q quits", runes("q"), []types.Action{types.QuitAction{}}},
		{"esc quits", tea.KeyMsg{Type: tea.KeyEsc}, []types.Action{types.QuitAction{}}},
		{"ctrl+c forces", tea.KeyMsg{Type: tea.KeyCtrlC}, []types.Action{types.QuitAction{Force: true}}},
		{"j down", runes("j"), []types.Action{types.NavigateAction{Direction: "down"}}},
		{"k up", runes("k"), []types.Action{types.NavigateAction{Direction: "up"}}},
		{"arrow down", tea.KeyMsg{Type: tea.KeyDown}, []types.Action{types.NavigateAction{Direction: "down"}}},
		{"g home", runes("g"), []types.Action{types.NavigateAction{Direction: "home"}}},
		{"G end", runes("G"), []types.Action{types.NavigateAction{Direction: "end"}}},
		{"pgdown", tea.KeyMsg{Type: tea.KeyPgDown}, []types.Action{types.NavigateAction{Direction: "pagedown"}}},
		{"enter selects", tea.KeyMsg{Type: tea.KeyEnter}, []types.Action{types.SelectAction{}}},
		{"help", runes("?"), []types.Action{types.ShowHelpAction{}}},
		{"unbound", runes("x"), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, h.HandleKey(tt.msg, ctx))
		})
	}
}

func TestEnterWithoutResultsDoesNothing(t *testing.T) {
	h := New()
	enter := tea.KeyMsg{Type: tea.KeyEnter}
	assert.Empty(t, h.HandleKey(enter, fakeContext{mode: types.ModeBrowsing}))
	assert.Empty(t, h.HandleKey(enter, fakeContext{mode: types.ModeSearching}))
}

func TestSearchKeys(t *testing.T) {
	h := New()
	ctx := fakeContext{mode: types.ModeSearching, query: "ab", results: 1}

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want []types.Action
	}{
		{"letters are text", runes("q"), []types.Action{types.InsertTextAction{Text: "q"}}},
		{"j is text", runes("j"), []types.Action{types.InsertTextAction{Text: "j"}}},
		{"space is text", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, []types.Action{types.InsertTextAction{Text: " "}}},
		{"paste", runes("héllo"), []types.Action{types.InsertTextAction{Text: "héllo"}}},
		{"backspace", tea.KeyMsg{Type: tea.KeyBackspace}, []types.Action{types.DeleteTextAction{}}},
		{"ctrl+u", tea.KeyMsg{Type: tea.KeyCtrlU}, []types.Action{types.ClearQueryAction{}}},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, []types.Action{types.CancelAction{}}},
		{"up", tea.KeyMsg{Type: tea.KeyUp}, []types.Action{types.NavigateAction{Direction: "up"}}},
		{"down", tea.KeyMsg{Type: tea.KeyDown}, []types.Action{types.NavigateAction{Direction: "down"}}},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, []types.Action{types.SelectAction{}}},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, []types.Action{types.QuitAction{Force: true}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, h.HandleKey(tt.msg, ctx))
		})
	}
}

func TestBackspaceOnEmptyQueryIsSwallowed(t *testing.T) {
	h := New()
	got := h.HandleKey(tea.KeyMsg{Type: tea.KeyBackspace}, fakeContext{mode: types.ModeSearching})
	assert.Empty(t, got)
}

func TestPreviewKeys(t *testing.T) {
	h := New()
	ctx := fakeContext{mode: types.ModePreviewing, results: 1}

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want []types.Action
	}{
		{"esc goes back", tea.KeyMsg{Type: tea.KeyEsc}, []types.Action{types.CancelAction{}}},
		{"q goes back", runes("q"), []types.Action{types.QuitAction{}}},
		{"h left", runes("h"), []types.Action{types.ScrollAction{Direction: "left"}}},
		{"l right", runes("l"), []types.Action{types.ScrollAction{Direction: "right"}}},
		{"j down", runes("j"), []types.Action{types.ScrollAction{Direction: "down"}}},
		{"arrow up", tea.KeyMsg{Type: tea.KeyUp}, []types.Action{types.ScrollAction{Direction: "up"}}},
		{"o pager", runes("o"), []types.Action{types.OpenPagerAction{}}},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, []types.Action{types.QuitAction{Force: true}}},
		{"i ignored", runes("i"), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, h.HandleKey(tt.msg, ctx))
		})
	}
}

func TestModeName(t *testing.T) {
	h := New()
	assert.Equal(t, "browse", h.ModeName(types.ModeBrowsing))
	assert.Equal(t, "search", h.ModeName(types.ModeSearching))
	assert.Equal(t, "preview", h.ModeName(types.ModePreviewing))
}
