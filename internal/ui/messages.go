package ui

import (
	"filescope/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// pathsMsg carries a batch of discovered files
type pathsMsg struct {
	paths []string
}

// scanDoneMsg signals that the discovery channel was closed
type scanDoneMsg struct{}

// runSearchMsg fires when a deferred search is due
type runSearchMsg struct{}

// pagerDoneMsg contains the result of a pager session
type pagerDoneMsg struct {
	err error
}
