// Package ui wires the application state to the terminal through bubbletea.
package ui

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"filescope/internal/domain"
	"filescope/internal/eventbus"
	"filescope/internal/ui/input"
	"filescope/internal/ui/input/keys"
	inputtypes "filescope/internal/ui/input/types"
	"filescope/internal/ui/state"
	"filescope/internal/ui/viewmodels"
	"filescope/internal/ui/views"
)

// maxPathBatch is the most paths merged per message
const maxPathBatch = 512

// Options holds the collaborators of the model
type Options struct {
	Root     string
	Paths    <-chan string // discovered files; nil when nothing is scanning
	Searcher state.Searcher
	Loader   state.Loader
	State    state.Options
	Keys     keys.KeyMap
	Renderer views.Renderer // terminal renderer when nil
	Ready    bool           // print the ready marker in every frame
	Logger   *slog.Logger

	// Width and Height size the first frame until a resize arrives
	Width  int
	Height int
}

// Model represents the UI state
type Model struct {
	state *state.AppState // centralized state
	paths <-chan string

	width  int
	height int
	help   help.Model

	renderer     views.Renderer
	viewModel    *viewmodels.ViewModel
	inputHandler *input.Handler
	keys         keys.KeyMap
	pager        *PagerOps
	logger       *slog.Logger

	scanStats *domain.ScanStats // stats that arrived before the channel drained
}

// NewModel creates a new UI model
func NewModel(opts Options) *Model {
	km := opts.Keys
	if km.Browse.Quit.Keys() == nil {
		km = keys.Default()
	}
	renderer := opts.Renderer
	if renderer == nil {
		renderer = views.NewTerminalRenderer()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	appState := state.NewAppState(opts.Searcher, opts.Loader, opts.State)
	m := &Model{
		state:        appState,
		paths:        opts.Paths,
		help:         help.New(),
		renderer:     renderer,
		inputHandler: input.NewWithKeys(km),
		keys:         km,
		pager:        NewPagerOps(),
		logger:       logger,
	}
	m.viewModel = viewmodels.NewViewModel(appState, km, opts.Root)
	m.viewModel.SetHelp(m.help)
	m.viewModel.SetReady(opts.Ready)
	if opts.Width > 0 && opts.Height > 0 {
		m.Update(tea.WindowSizeMsg{Width: opts.Width, Height: opts.Height})
	}
	if opts.Paths == nil {
		appState.Dispatch(inputtypes.ScanDoneAction{})
	}
	return m
}

// SetProgram sets the program reference used by the pager
func (m *Model) SetProgram(p *tea.Program) {
	m.pager.SetProgram(p)
}

// State exposes the application state
func (m *Model) State() *state.AppState {
	return m.state
}

// Init starts draining the discovery channel
func (m *Model) Init() tea.Cmd {
	return m.waitForPaths()
}

// waitForPaths blocks for one path and then takes whatever else is buffered
func (m *Model) waitForPaths() tea.Cmd {
	ch := m.paths
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		first, ok := <-ch
		if !ok {
			return scanDoneMsg{}
		}
		batch := []string{first}
		for len(batch) < maxPathBatch {
			select {
			case p, ok := <-ch:
				if !ok {
					// The next wait sees the closed channel
					return pathsMsg{paths: batch}
				}
				batch = append(batch, p)
			default:
				return pathsMsg{paths: batch}
			}
		}
		return pathsMsg{paths: batch}
	}
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.viewModel.SetHelp(m.help)
		return m, m.dispatch(inputtypes.ResizeAction{Width: msg.Width, Height: views.BodyHeight(msg.Height)})

	case tea.KeyMsg:
		ctx := &input.ModelContext{State: m.state}
		actions := m.inputHandler.HandleKey(msg, ctx)
		m.logger.Debug("key", "key", msg.String(), "mode", m.inputHandler.ModeName(m.state.Mode), "actions", len(actions))

		cmds := []tea.Cmd{}
		for _, action := range actions {
			if cmd := m.dispatch(action); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)

	case pathsMsg:
		cmd := m.dispatch(inputtypes.MergePathsAction{Paths: msg.paths})
		return m, tea.Batch(cmd, m.waitForPaths())

	case scanDoneMsg:
		m.paths = nil
		var stats domain.ScanStats
		if m.scanStats != nil {
			stats = *m.scanStats
		}
		return m, m.dispatch(inputtypes.ScanDoneAction{Stats: stats})

	case runSearchMsg:
		return m, m.dispatch(inputtypes.RunSearchAction{})

	case pagerDoneMsg:
		if msg.err != nil {
			m.logger.Warn("pager failed", "err", msg.err)
			return m, m.dispatch(inputtypes.StatusAction{Message: "pager: " + msg.err.Error()})
		}
		return m, nil

	case EventMsg:
		return m, m.handleEvent(msg.Event)
	}

	return m, nil
}

func (m *Model) handleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.ScanCompletedEvent:
		var cmds []tea.Cmd
		if m.paths == nil {
			cmds = append(cmds, m.dispatch(inputtypes.ScanDoneAction{Stats: e.Stats}))
		} else {
			stats := e.Stats
			m.scanStats = &stats
		}
		if e.Stats.Skipped > 0 {
			cmds = append(cmds, m.dispatch(inputtypes.StatusAction{Message: pluralize(e.Stats.Skipped, "path") + " could not be read"}))
		}
		return tea.Batch(cmds...)
	case eventbus.ErrorEvent:
		return m.dispatch(inputtypes.StatusAction{Message: e.Message})
	case eventbus.ScanStartedEvent:
		m.logger.Debug("scan started", "root", e.Root, "threads", e.Threads)
	case eventbus.IndexBuiltEvent:
		m.logger.Debug("index built", "files", e.Files, "lines", e.Lines, "duration", e.Duration)
	}
	return nil
}

// dispatch applies an action and turns its effects into commands
func (m *Model) dispatch(action inputtypes.Action) tea.Cmd {
	effect := m.state.Dispatch(action)

	var cmds []tea.Cmd
	if effect.Quit {
		cmds = append(cmds, tea.Quit)
	}
	if effect.DeferSearch > 0 {
		cmds = append(cmds, tea.Tick(effect.DeferSearch, func(time.Time) tea.Msg {
			return runSearchMsg{}
		}))
	}
	if effect.OpenPager != "" {
		path := effect.OpenPager
		cmds = append(cmds, func() tea.Msg {
			return pagerDoneMsg{err: m.pager.ShowFile(path)}
		})
	}
	if effect.ShowHelp {
		content := renderHelpContent(m.keys)
		cmds = append(cmds, func() tea.Msg {
			return pagerDoneMsg{err: m.pager.ShowHelp(content)}
		})
	}

	switch len(cmds) {
	case 0:
		return nil
	case 1:
		return cmds[0]
	}
	return tea.Batch(cmds...)
}

// View renders the UI
func (m *Model) View() string {
	m.viewModel.SetDimensions(m.width, m.height)
	return m.renderer.Render(m.viewModel.BuildViewState())
}

func pluralize(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	return strconv.Itoa(n) + " " + word + "s"
}
