package state

import (
	"time"

	"github.com/mattn/go-runewidth"

	"filescope/internal/domain"
	"filescope/internal/preview"
	"filescope/internal/ui/input/types"
	"filescope/internal/ui/logic"
)

// Searcher is the part of the search index the state drives
type Searcher interface {
	Add(paths ...string) int
	Len() int
	Search(query string) ([]domain.SearchResult, bool)
	Wait() time.Duration
	Err() error
}

// Loader loads files for the preview pane
type Loader interface {
	Load(path string) preview.Preview
}

// Options configures the state machine
type Options struct {
	InitialMode  types.Mode
	ContextLines int  // lines shown above the match when a preview opens
	Trailing     bool // re-run debounced queries once the interval passed
}

// DefaultOptions returns the defaults
func DefaultOptions() Options {
	return Options{InitialMode: types.ModeSearching, ContextLines: 6, Trailing: true}
}

// Scroll is the 1-based top-left corner of the preview viewport
type Scroll struct {
	Row int
	Col int
}

// Effect lists the side effects the event loop must perform after a transition
type Effect struct {
	Quit        bool
	DeferSearch time.Duration // schedule a RunSearchAction after this delay
	OpenPager   string        // open this file in the pager
	ShowHelp    bool
}

// AppState contains all the application state
type AppState struct {
	Mode          types.Mode
	Query         string
	Results       []domain.SearchResult
	SelectedIndex int
	ListOffset    int // first visible result row

	// Preview state, set while Mode is ModePreviewing
	Preview     preview.Preview
	PreviewLine int // line of the result being previewed
	Scroll      Scroll

	FilesKnown int
	ScanDone   bool
	ScanStats  domain.ScanStats
	Dirty      bool // the query changed since the last search that ran
	Status     string

	Width      int
	BodyHeight int // rows available to the result list or preview body

	searcher Searcher
	loader   Loader
	opts     Options
}

// NewAppState creates a new application state
func NewAppState(searcher Searcher, loader Loader, opts Options) *AppState {
	if opts.ContextLines < 0 {
		opts.ContextLines = 0
	}
	mode := opts.InitialMode
	if mode == types.ModePreviewing {
		mode = types.ModeSearching
	}
	return &AppState{
		Mode:       mode,
		BodyHeight: 20, // Default
		searcher:   searcher,
		loader:     loader,
		opts:       opts,
	}
}

// Selected returns the selected result
func (s *AppState) Selected() (domain.SearchResult, bool) {
	if len(s.Results) == 0 {
		return domain.SearchResult{}, false
	}
	return s.Results[s.SelectedIndex], true
}

// Dispatch applies one action and returns the side effects it requires.
// It is the only place where the state changes.
func (s *AppState) Dispatch(action types.Action) Effect {
	switch a := action.(type) {
	case types.QuitAction:
		return s.quit(a)

	case types.CancelAction:
		switch s.Mode {
		case types.ModeSearching:
			s.Mode = types.ModeBrowsing
		case types.ModePreviewing:
			s.closePreview()
		}

	case types.EnterEditAction:
		if s.Mode == types.ModeBrowsing {
			s.Mode = types.ModeSearching
		}

	case types.InsertTextAction:
		if s.Mode != types.ModeSearching || a.Text == "" {
			return Effect{}
		}
		s.Query += a.Text
		return s.queryChanged()

	case types.DeleteTextAction:
		if s.Mode != types.ModeSearching || s.Query == "" {
			return Effect{}
		}
		r := []rune(s.Query)
		s.Query = string(r[:len(r)-1])
		return s.queryChanged()

	case types.ClearQueryAction:
		if s.Mode != types.ModeSearching {
			return Effect{}
		}
		s.Query = ""
		return s.queryChanged()

	case types.RunSearchAction:
		if !s.Dirty {
			return Effect{}
		}
		return s.runSearch()

	case types.NavigateAction:
		if s.Mode == types.ModePreviewing {
			return Effect{}
		}
		s.navigate(a.Direction)

	case types.SelectAction:
		if s.Mode == types.ModePreviewing {
			return Effect{}
		}
		s.openPreview()

	case types.ScrollAction:
		if s.Mode == types.ModePreviewing {
			s.scroll(a.Direction)
		}

	case types.OpenPagerAction:
		if s.Mode == types.ModePreviewing && s.Preview.Path != "" && s.Preview.Err == nil {
			return Effect{OpenPager: s.Preview.Path}
		}

	case types.ShowHelpAction:
		if s.Mode == types.ModeBrowsing {
			return Effect{ShowHelp: true}
		}

	case types.MergePathsAction:
		s.searcher.Add(a.Paths...)
		s.FilesKnown = s.searcher.Len()

	case types.ScanDoneAction:
		s.ScanDone = true
		s.ScanStats = a.Stats
		s.FilesKnown = s.searcher.Len()

	case types.ResizeAction:
		s.Width = a.Width
		if a.Height > 0 {
			s.BodyHeight = a.Height
		}
		s.ensureSelectedVisible()

	case types.StatusAction:
		s.Status = a.Message
	}

	return Effect{}
}

func (s *AppState) quit(a types.QuitAction) Effect {
	if a.Force {
		return Effect{Quit: true}
	}
	switch s.Mode {
	case types.ModeBrowsing:
		return Effect{Quit: true}
	case types.ModePreviewing:
		s.closePreview()
	}
	return Effect{}
}

func (s *AppState) queryChanged() Effect {
	s.SelectedIndex = 0
	s.ListOffset = 0
	s.Dirty = true
	return s.runSearch()
}

// runSearch asks the index for results. A debounced call keeps the previous
// results and, with trailing searches enabled, schedules a retry.
func (s *AppState) runSearch() Effect {
	results, ran := s.searcher.Search(s.Query)
	if !ran {
		if !s.opts.Trailing {
			return Effect{}
		}
		wait := s.searcher.Wait()
		if wait <= 0 {
			wait = time.Millisecond
		}
		return Effect{DeferSearch: wait}
	}

	s.Dirty = false
	if err := s.searcher.Err(); err != nil {
		s.Status = "search failed: " + err.Error()
		return Effect{}
	}
	s.Results = results
	s.SelectedIndex = logic.ClampIndex(s.SelectedIndex, len(s.Results))
	s.ensureSelectedVisible()
	return Effect{}
}

func (s *AppState) navigate(direction string) {
	if len(s.Results) == 0 {
		s.SelectedIndex = 0
		return
	}

	idx := s.SelectedIndex
	switch direction {
	case "up":
		idx--
	case "down":
		idx++
	case "pageup":
		idx -= s.pageSize()
	case "pagedown":
		idx += s.pageSize()
	case "home":
		idx = 0
	case "end":
		idx = len(s.Results) - 1
	}
	s.SelectedIndex = logic.ClampIndex(idx, len(s.Results))
	s.ensureSelectedVisible()
}

func (s *AppState) pageSize() int {
	if s.BodyHeight < 1 {
		return 1
	}
	return s.BodyHeight
}

func (s *AppState) ensureSelectedVisible() {
	vp := logic.Viewport{Offset: s.ListOffset, Height: s.BodyHeight, Total: len(s.Results)}
	s.ListOffset = vp.EnsureVisible(s.SelectedIndex).Offset
}

func (s *AppState) openPreview() {
	r, ok := s.Selected()
	if !ok {
		return
	}

	s.Preview = s.loader.Load(r.Path)
	s.PreviewLine = r.Line
	s.Mode = types.ModePreviewing

	row := r.Line - s.opts.ContextLines
	if row < 1 {
		row = 1
	}
	if maxRow := s.maxRow(); row > maxRow {
		row = maxRow
	}
	s.Scroll = Scroll{Row: row, Col: 1}

	if s.Preview.Err != nil {
		s.Status = s.Preview.Err.Error()
	}
}

func (s *AppState) closePreview() {
	s.Preview = preview.Preview{}
	s.PreviewLine = 0
	s.Scroll = Scroll{}
	s.Mode = types.ModeSearching
}

// maxRow is the largest valid Scroll.Row
func (s *AppState) maxRow() int {
	n := len(s.Preview.Lines) - 1
	if n < 1 {
		return 1
	}
	return n
}

// maxCol is the largest valid Scroll.Col for the line at the current row
func (s *AppState) maxCol() int {
	if s.Scroll.Row < 1 || s.Scroll.Row > len(s.Preview.Lines) {
		return 1
	}
	w := runewidth.StringWidth(s.Preview.Lines[s.Scroll.Row-1]) - 1
	if w < 1 {
		return 1
	}
	return w
}

func (s *AppState) scroll(direction string) {
	switch direction {
	case "up":
		if s.Scroll.Row > 1 {
			s.Scroll.Row--
		}
	case "down":
		if s.Scroll.Row < s.maxRow() {
			s.Scroll.Row++
		}
	case "left":
		if s.Scroll.Col > 1 {
			s.Scroll.Col--
		}
	case "right":
		if s.Scroll.Col < s.maxCol() {
			s.Scroll.Col++
		}
	case "pageup":
		s.Scroll.Row -= s.pageSize()
		if s.Scroll.Row < 1 {
			s.Scroll.Row = 1
		}
	case "pagedown":
		s.Scroll.Row += s.pageSize()
		if maxRow := s.maxRow(); s.Scroll.Row > maxRow {
			s.Scroll.Row = maxRow
		}
	}
}
