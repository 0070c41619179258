package types

import tea "github.com/charmbracelet/bubbletea"

// Mode represents an input mode
type Mode int

const (
	ModeBrowsing Mode = iota
	ModeSearching
	ModePreviewing
)

// String returns the mode name for display
func (m Mode) String() string {
	switch m {
	case ModeBrowsing:
		return "browse"
	case ModeSearching:
		return "search"
	case ModePreviewing:
		return "preview"
	default:
		return "unknown"
	}
}

// Action represents a transition request for the application state
type Action interface {
	Type() string
}

// Context provides read-only access to state needed for input handling
type Context interface {
	Mode() Mode
	Query() string
	ResultCount() int
}

// ModeHandler handles input for a specific mode
type ModeHandler interface {
	// HandleKey processes a key message and returns actions and whether to consume the event
	HandleKey(msg tea.KeyMsg, ctx Context) ([]Action, bool)

	// Name returns the mode name for display
	Name() string
}
