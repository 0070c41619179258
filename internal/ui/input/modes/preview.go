package modes

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"filescope/internal/ui/input/keys"
	"filescope/internal/ui/input/types"
)

// PreviewMode scrolls the previewed file
type PreviewMode struct {
	keys keys.PreviewKeys
}

func NewPreviewMode(k keys.PreviewKeys) *PreviewMode {
	return &PreviewMode{keys: k}
}

func (m *PreviewMode) Name() string {
	return "preview"
}

func (m *PreviewMode) HandleKey(msg tea.KeyMsg, ctx types.Context) ([]types.Action, bool) {
	switch {
	case key.Matches(msg, keys.ForceQuit):
		return []types.Action{types.QuitAction{Force: true}}, true

	case key.Matches(msg, m.keys.Back):
		if msg.String() == "q" {
			return []types.Action{types.QuitAction{}}, true
		}
		return []types.Action{types.CancelAction{}}, true

	case key.Matches(msg, m.keys.Pager):
		return []types.Action{types.OpenPagerAction{}}, true

	case key.Matches(msg, m.keys.Up):
		return []types.Action{types.ScrollAction{Direction: "up"}}, true

	case key.Matches(msg, m.keys.Down):
		return []types.Action{types.ScrollAction{Direction: "down"}}, true

	case key.Matches(msg, m.keys.Left):
		return []types.Action{types.ScrollAction{Direction: "left"}}, true

	case key.Matches(msg, m.keys.Right):
		return []types.Action{types.ScrollAction{Direction: "right"}}, true

	case key.Matches(msg, m.keys.PageUp):
		return []types.Action{types.ScrollAction{Direction: "pageup"}}, true

	case key.Matches(msg, m.keys.PageDown):
		return []types.Action{types.ScrollAction{Direction: "pagedown"}}, true
	}

	return nil, false
}
