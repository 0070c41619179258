package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"filescope/internal/ui/input/keys"
	"filescope/internal/ui/input/types"
)

// SearchMode edits the query. Printable keys are appended to it.
type SearchMode struct {
	keys keys.SearchKeys
}

func NewSearchMode(k keys.SearchKeys) *SearchMode {
	return &SearchMode{keys: k}
}

func (m *SearchMode) Name() string {
	return "search"
}

func (m *SearchMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch {
	case key.Matches(msg, keys.ForceQuit):
		return []types.Action{types.QuitAction{Force: true}}, true

	case key.Matches(msg, m.keys.Cancel):
		return []types.Action{types.CancelAction{}}, true

	case key.Matches(msg, m.keys.Open):
		if ctx.ResultCount() == 0 {
			return nil, true
		}
		return []types.Action{types.SelectAction{}}, true

	case key.Matches(msg, m.keys.Up):
		return []types.Action{types.NavigateAction{Direction: "up"}}, true

	case key.Matches(msg, m.keys.Down):
		return []types.Action{types.NavigateAction{Direction: "down"}}, true

	case key.Matches(msg, m.keys.PageUp):
		return []types.Action{types.NavigateAction{Direction: "pageup"}}, true

	case key.Matches(msg, m.keys.PageDown):
		return []types.Action{types.NavigateAction{Direction: "pagedown"}}, true

	case key.Matches(msg, m.keys.Delete):
		if ctx.Query() == "" {
			return nil, true
		}
		return []types.Action{types.DeleteTextAction{}}, true

	case key.Matches(msg, m.keys.Clear):
		if ctx.Query() == "" {
			return nil, true
		}
		return []types.Action{types.ClearQueryAction{}}, true
	}

	switch msg.Type {
	case tea.KeyRunes, tea.KeySpace:
		if len(msg.Runes) == 0 {
			return nil, true
		}
		return []types.Action{types.InsertTextAction{Text: string(msg.Runes)}}, true
	}

	return nil, false
}
