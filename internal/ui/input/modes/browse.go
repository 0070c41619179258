package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"filescope/internal/ui/input/keys"
	"filescope/internal/ui/input/types"
)

// BrowseMode moves through results without editing the query
type BrowseMode struct {
	keys keys.BrowseKeys
}

func NewBrowseMode(k keys.BrowseKeys) *BrowseMode {
	return &BrowseMode{keys: k}
}

func (m *BrowseMode) Name() string {
	return "browse"
}

func (m *BrowseMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch {
	case key.Matches(msg, keys.ForceQuit):
		return []types.Action{types.QuitAction{Force: true}}, true

	case key.Matches(msg, m.keys.Quit):
		return []types.Action{types.QuitAction{}}, true

	case key.Matches(msg, m.keys.Edit):
		return []types.Action{types.EnterEditAction{}}, true

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

	case key.Matches(msg, m.keys.Top):
		return []types.Action{types.NavigateAction{Direction: "home"}}, true

	case key.Matches(msg, m.keys.Bottom):
		return []types.Action{types.NavigateAction{Direction: "end"}}, true

	case key.Matches(msg, m.keys.Help):
		return []types.Action{types.ShowHelpAction{}}, true
	}

	return nil, false
}
