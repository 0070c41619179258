package viewmodels

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"

	"filescope/internal/search"
	"filescope/internal/ui/input/keys"
	"filescope/internal/ui/input/types"
	"filescope/internal/ui/logic"
	"filescope/internal/ui/state"
	"filescope/internal/ui/views"
)

// ViewModel transforms application state into view-ready data
type ViewModel struct {
	state  *state.AppState
	keys   keys.KeyMap
	root   string
	width  int
	height int
	help   help.Model
	ready  bool
}

// NewViewModel creates a new view model
func NewViewModel(appState *state.AppState, keyMap keys.KeyMap, root string) *ViewModel {
	return &ViewModel{
		state: appState,
		keys:  keyMap,
		root:  root,
		help:  help.New(),
	}
}

// SetDimensions sets the current terminal dimensions
func (vm *ViewModel) SetDimensions(width, height int) {
	vm.width = width
	vm.height = height
}

// SetHelp sets the help model
func (vm *ViewModel) SetHelp(helpModel help.Model) {
	vm.help = helpModel
}

// SetReady makes every frame carry the ready marker
func (vm *ViewModel) SetReady(ready bool) {
	vm.ready = ready
}

// BuildViewState creates a ViewState from the current application state
func (vm *ViewModel) BuildViewState() views.ViewState {
	s := vm.state
	vs := views.ViewState{
		Width:         vm.width,
		Height:        vm.height,
		Mode:          s.Mode,
		Query:         s.Query,
		TotalResults:  len(s.Results),
		FilesKnown:    s.FilesKnown,
		ScanDone:      s.ScanDone,
		Dirty:         s.Dirty,
		StatusMessage: s.Status,
		HelpModel:     vm.help,
		HelpKeys:      vm.helpKeys(s.Mode),
		Ready:         vm.ready,
	}

	if s.Mode == types.ModePreviewing {
		vm.buildPreview(&vs)
	} else {
		vm.buildRows(&vs)
	}
	return vs
}

func (vm *ViewModel) helpKeys(mode types.Mode) help.KeyMap {
	switch mode {
	case types.ModeSearching:
		return vm.keys.Search
	case types.ModePreviewing:
		return vm.keys.Preview
	default:
		return vm.keys.Browse
	}
}

func (vm *ViewModel) bodyHeight() int {
	if vm.height <= 0 {
		return vm.state.BodyHeight
	}
	return views.BodyHeight(vm.height)
}

func (vm *ViewModel) buildRows(vs *views.ViewState) {
	s := vm.state
	vp := logic.Viewport{Offset: s.ListOffset, Height: vm.bodyHeight(), Total: len(s.Results)}.Clamp()
	start, end := vp.Visible()

	vs.Rows = make([]views.ResultRow, 0, end-start)
	for i := start; i < end; i++ {
		r := s.Results[i]
		vs.Rows = append(vs.Rows, views.ResultRow{
			Name:     r.Name,
			Line:     r.Line,
			Text:     r.Text,
			Matched:  r.Matched,
			Selected: i == s.SelectedIndex,
		})
	}
}

func (vm *ViewModel) buildPreview(vs *views.ViewState) {
	s := vm.state
	vs.PreviewName = search.DisplayName(vm.root, s.Preview.Path)
	vs.PreviewLine = s.PreviewLine
	vs.PreviewCol = s.Scroll.Col
	vs.GutterWidth = len(fmt.Sprint(len(s.Preview.Lines)))

	lines := s.Preview.Lines
	styled := s.Preview.Highlighted
	first := s.Scroll.Row - 1
	if first < 0 {
		first = 0
	}
	last := first + vm.bodyHeight()
	if last > len(lines) {
		last = len(lines)
	}
	for i := first; i < last; i++ {
		row := views.PreviewRow{
			Number:  i + 1,
			Text:    lines[i],
			IsMatch: i+1 == s.PreviewLine,
		}
		if i < len(styled) {
			row.Styled = styled[i]
		}
		vs.PreviewRows = append(vs.PreviewRows, row)
	}
}
