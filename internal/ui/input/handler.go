package input

import (
	tea "github.com/charmbracelet/bubbletea"

	"filescope/internal/ui/input/keys"
	"filescope/internal/ui/input/modes"
	"filescope/internal/ui/input/types"
)

// Handler routes key presses to the handler of the current mode. The mode
// itself is owned by the application state and read through the context.
type Handler struct {
	keys  keys.KeyMap
	modes map[types.Mode]types.ModeHandler
}

func New() *Handler {
	return NewWithKeys(keys.Default())
}

// NewWithKeys creates a handler using custom bindings
func NewWithKeys(k keys.KeyMap) *Handler {
	h := &Handler{
		keys:  k,
		modes: make(map[types.Mode]types.ModeHandler),
	}

	// Register all mode handlers
	h.modes[types.ModeBrowsing] = modes.NewBrowseMode(k.Browse)
	h.modes[types.ModeSearching] = modes.NewSearchMode(k.Search)
	h.modes[types.ModePreviewing] = modes.NewPreviewMode(k.Preview)

	return h
}

// HandleKey translates msg into actions for the current mode
func (h *Handler) HandleKey(msg tea.KeyMsg, ctx types.Context) []types.Action {
	handler := h.modes[ctx.Mode()]
	if handler == nil {
		return nil
	}

	actions, consumed := handler.HandleKey(msg, ctx)
	if !consumed {
		return nil
	}
	return actions
}

// Keys returns the bindings in use
func (h *Handler) Keys() keys.KeyMap {
	return h.keys
}

// ModeName returns the display name of mode's handler
func (h *Handler) ModeName(mode types.Mode) string {
	if handler := h.modes[mode]; handler != nil {
		return handler.Name()
	}
	return mode.String()
}
