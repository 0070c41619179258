package types

import "filescope/internal/domain"

// Navigation actions
type NavigateAction struct {
	Direction string // "up", "down", "pageup", "pagedown", "home", "end"
}

func (a NavigateAction) Type() string { return "navigate" }

// ScrollAction moves the preview viewport
type ScrollAction struct {
	Direction string // "up", "down", "left", "right", "pageup", "pagedown"
}

func (a ScrollAction) Type() string { return "scroll" }

// Mode transition actions
type EnterEditAction struct{}

func (a EnterEditAction) Type() string { return "enter_edit" }

type CancelAction struct{}

func (a CancelAction) Type() string { return "cancel" }

// SelectAction opens the selected result in the preview
type SelectAction struct{}

func (a SelectAction) Type() string { return "select" }

type QuitAction struct {
	Force bool // true for Ctrl+C, false for 'q'
}

func (a QuitAction) Type() string { return "quit" }

// Query editing actions
type InsertTextAction struct {
	Text string
}

func (a InsertTextAction) Type() string { return "insert_text" }

type DeleteTextAction struct{}

func (a DeleteTextAction) Type() string { return "delete_text" }

type ClearQueryAction struct{}

func (a ClearQueryAction) Type() string { return "clear_query" }

// RunSearchAction retries a query whose search was debounced
type RunSearchAction struct{}

func (a RunSearchAction) Type() string { return "run_search" }

// Command actions
type OpenPagerAction struct{}

func (a OpenPagerAction) Type() string { return "open_pager" }

type ShowHelpAction struct{}

func (a ShowHelpAction) Type() string { return "show_help" }

// Background actions, produced by the event loop rather than by keys
type MergePathsAction struct {
	Paths []string
}

func (a MergePathsAction) Type() string { return "merge_paths" }

type ScanDoneAction struct {
	Stats domain.ScanStats
}

func (a ScanDoneAction) Type() string { return "scan_done" }

type ResizeAction struct {
	Width  int
	Height int // rows available to the result list or preview body
}

func (a ResizeAction) Type() string { return "resize" }

type StatusAction struct {
	Message string
}

func (a StatusAction) Type() string { return "status" }
