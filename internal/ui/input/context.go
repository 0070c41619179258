package input

import (
	"filescope/internal/ui/input/types"
	"filescope/internal/ui/state"
)

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	State *state.AppState
}

// Mode returns the current mode
func (c *ModelContext) Mode() types.Mode {
	return c.State.Mode
}

// Query returns the current query
func (c *ModelContext) Query() string {
	return c.State.Query
}

// ResultCount returns the number of results
func (c *ModelContext) ResultCount() int {
	return len(c.State.Results)
}
