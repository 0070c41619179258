package viewmodels

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"filescope/internal/domain"
	"filescope/internal/preview"
	"filescope/internal/ui/input/keys"
	"filescope/internal/ui/input/types"
	"filescope/internal/ui/state"
)

type stubSearcher struct {
	results []domain.SearchResult
}

func (s *stubSearcher) Add(paths ...string) int { return len(paths) }
func (s *stubSearcher) Len() int                { return len(s.results) }
func (s *stubSearcher) Search(string) ([]domain.SearchResult, bool) {
	return s.results, true
}
func (s *stubSearcher) Wait() time.Duration { return 0 }
func (s *stubSearcher) Err() error          { return nil }

type stubLoader struct {
	lines []string
}

func (l stubLoader) Load(path string) preview.Preview {
	return preview.Preview{Path: path, Lines: l.lines}
}

func results(n int) []domain.SearchResult {
	out := make([]domain.SearchResult, n)
	for i := range out {
		out[i] = domain.SearchResult{
			Path: filepath.Join("/root", "f.txt"),
			Name: "f.txt",
			Line: i + 1,
			Text: fmt.Sprintf("row %d", i),
		}
	}
	return out
}

func TestBuildViewStateWindowsResults(t *testing.T) {
	s := state.NewAppState(&stubSearcher{results: results(30)}, stubLoader{}, state.DefaultOptions())
	s.Dispatch(types.InsertTextAction{Text: "r"})

	vm := NewViewModel(s, keys.Default(), "/root")
	vm.SetDimensions(80, 14) // body of 10 rows
	s.Dispatch(types.ResizeAction{Width: 80, Height: 10})
	for i := 0; i < 12; i++ {
		s.Dispatch(types.NavigateAction{Direction: "down"})
	}

	vs := vm.BuildViewState()
	require.Len(t, vs.Rows, 10)
	assert.Equal(t, "row 3", vs.Rows[0].Text)
	assert.True(t, vs.Rows[9].Selected)
	assert.Equal(t, 30, vs.TotalResults)
	assert.Equal(t, "r", vs.Query)
	assert.Equal(t, keys.Default().Search.ShortHelp()[0].Help(), vs.HelpKeys.ShortHelp()[0].Help())
}

func TestBuildViewStatePreview(t *testing.T) {
	lines := make([]string, 100)
	for i := range lines {
		lines[i] = fmt.Sprintf("content %d", i+1)
	}
	sr := &stubSearcher{results: []domain.SearchResult{{Path: "/root/dir/f.txt", Name: "dir/f.txt", Line: 50}}}
	s := state.NewAppState(sr, stubLoader{lines: lines}, state.DefaultOptions())
	s.Dispatch(types.InsertTextAction{Text: "x"})
	s.Dispatch(types.SelectAction{})
	require.Equal(t, types.ModePreviewing, s.Mode)

	vm := NewViewModel(s, keys.Default(), "/root")
	vm.SetDimensions(80, 24)
	vm.SetReady(true)
	vs := vm.BuildViewState()

	assert.Equal(t, "dir/f.txt", vs.PreviewName)
	assert.Equal(t, 3, vs.GutterWidth)
	require.Len(t, vs.PreviewRows, 20)
	assert.Equal(t, 44, vs.PreviewRows[0].Number)
	assert.Equal(t, "content 44", vs.PreviewRows[0].Text)
	assert.True(t, vs.PreviewRows[6].IsMatch)
	assert.True(t, vs.Ready)
}

func TestBuildViewStatePreviewNearEnd(t *testing.T) {
	sr := &stubSearcher{results: []domain.SearchResult{{Path: "/root/f.txt", Name: "f.txt", Line: 3}}}
	s := state.NewAppState(sr, stubLoader{lines: []string{"a", "b", "c"}}, state.DefaultOptions())
	s.Dispatch(types.InsertTextAction{Text: "x"})
	s.Dispatch(types.SelectAction{})

	vm := NewViewModel(s, keys.Default(), "/root")
	vm.SetDimensions(80, 24)
	vs := vm.BuildViewState()

	require.Len(t, vs.PreviewRows, 3)
	assert.True(t, vs.PreviewRows[2].IsMatch)
}
