package domain

import "time"

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventScanStarted   EventType = "ScanStarted"
	EventScanCompleted EventType = "ScanCompleted"
	EventIndexBuilt    EventType = "IndexBuilt"
	EventError         EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// ScanStartedEvent is emitted when a directory traversal begins
type ScanStartedEvent struct {
	Root    string
	Threads int
}

func (e ScanStartedEvent) Type() EventType { return EventScanStarted }

// ScanCompletedEvent is emitted once the traversal has closed its output channel
type ScanCompletedEvent struct {
	Root     string
	Stats    ScanStats
	Duration time.Duration
}

func (e ScanCompletedEvent) Type() EventType { return EventScanCompleted }

// IndexBuiltEvent is emitted when the full-text backend finished a rebuild
type IndexBuiltEvent struct {
	Files    int
	Lines    int
	Duration time.Duration
}

func (e IndexBuiltEvent) Type() EventType { return EventIndexBuilt }

// ErrorEvent is emitted when a background service hits a non-fatal error worth surfacing
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
