package preview

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0644))
	return p
}

func TestLoadExpandsTabs(t *testing.T) {
	p := writeFile(t, "a.txt", "\tindented\nplain\n")
	pv := New(DefaultOptions()).Load(p)

	require.NoError(t, pv.Err)
	assert.Equal(t, []string{"    indented", "plain"}, pv.Lines)
	assert.Equal(t, p, pv.Path)
}

func TestLoadCustomTabWidth(t *testing.T) {
	p := writeFile(t, "a.txt", "a\tb\n")
	opts := DefaultOptions()
	opts.TabWidth = 2
	pv := New(opts).Load(p)
	assert.Equal(t, []string{"a  b"}, pv.Lines)
}

func TestLoadRoundTrip(t *testing.T) {
	body := "package main\r\n\nfunc main() {\n\tprintln(\"hi\\x00\")\n}\nno newline \xfe"
	p := writeFile(t, "main.go", body)
	prev := New(DefaultOptions())

	raw, err := os.ReadFile(p)
	require.NoError(t, err)
	var want []string
	for _, line := range strings.SplitAfter(string(raw), "\n") {
		if line == "" {
			continue
		}
		want = append(want, prev.Normalize(line))
	}

	pv := prev.Load(p)
	require.NoError(t, pv.Err)
	assert.Equal(t, want, pv.Lines)
	assert.Equal(t, "package main", pv.Lines[0])
	assert.Equal(t, "no newline �", pv.Lines[5])
}

func TestLoadFailureYieldsEmptyPreview(t *testing.T) {
	pv := New(DefaultOptions()).Load(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, pv.Err)
	assert.Empty(t, pv.Lines)
	assert.Nil(t, pv.Highlighted)
}

func TestLoadEmptyFile(t *testing.T) {
	pv := New(DefaultOptions()).Load(writeFile(t, "empty.txt", ""))
	require.NoError(t, pv.Err)
	assert.Empty(t, pv.Lines)
	assert.Nil(t, pv.Highlighted)
}

func TestHighlightAlignsWithLines(t *testing.T) {
	body := "package main\n\n/* multi\nline */\nfunc main() {}\n"
	pv := New(DefaultOptions()).Load(writeFile(t, "main.go", body))

	require.NoError(t, pv.Err)
	require.Len(t, pv.Highlighted, len(pv.Lines))
	assert.Contains(t, pv.Highlighted[0], "\x1b[", "go source is colored")
	assert.Contains(t, pv.Highlighted[0], "package")
	for i, h := range pv.Highlighted {
		assert.NotContains(t, h, "\n", "line %d", i)
	}
}

func TestHighlightDisabled(t *testing.T) {
	opts := DefaultOptions()
	opts.Highlight = false
	pv := New(opts).Load(writeFile(t, "main.go", "package main\n"))
	assert.Nil(t, pv.Highlighted)
}

func TestHighlightSkipsLargeFiles(t *testing.T) {
	body := strings.Repeat("x := 1\n", MaxHighlightBytes/7+10)
	pv := New(DefaultOptions()).Load(writeFile(t, "big.go", body))
	require.NoError(t, pv.Err)
	assert.Nil(t, pv.Highlighted)
	assert.NotEmpty(t, pv.Lines)
}

func TestLoadReplacesControlBytes(t *testing.T) {
	body := "package main\n// \x1b]0;pwned\x07 title\nvar x = 1 \x1b[2J\x7f\n"
	pv := New(DefaultOptions()).Load(writeFile(t, "evil.go", body))

	require.NoError(t, pv.Err)
	assert.Equal(t, "// ?]0;pwned? title", pv.Lines[1])
	assert.Equal(t, "var x = 1 ?[2J?", pv.Lines[2])
	require.Len(t, pv.Highlighted, 3)
	for i, line := range pv.Highlighted {
		assert.NotContains(t, line, "pwned\x07", "line %d", i)
		assert.NotContains(t, line, "\x1b[2J", "line %d", i)
		assert.NotContains(t, line, "\x1b]", "line %d", i)
	}
}
