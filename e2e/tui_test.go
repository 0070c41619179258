//go:build e2e && unix

package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func startWithTree(t *testing.T, files map[string]string, args ...string) *TUITestFramework {
	t.Helper()
	tf := NewTUITest(t)
	t.Cleanup(tf.Cleanup)

	_, err := tf.CreateTestWorkspace()
	require.NoError(t, err, "Failed to create test workspace")
	require.NoError(t, tf.WriteFiles(files), "Failed to write fixtures")

	require.NoError(t, tf.StartApp(append(args, "-d", tf.TreeDir())...), "Failed to start app")
	require.True(t, tf.Ready(), "Should receive ready signal")
	return tf
}

func TestStartupShowsPromptAndSummary(t *testing.T) {
	t.Parallel()
	tf := startWithTree(t, map[string]string{
		"a.txt":     "alpha\n",
		"sub/b.txt": "beta\n",
	})

	require.True(t, tf.SeePlain("> "), "Should start in search mode")
	require.True(t, tf.SeePlain("2 files"), "Should count discovered files")
}

func TestTypingFindsMatchingLines(t *testing.T) {
	t.Parallel()
	tf := startWithTree(t, map[string]string{
		"main.go":  "package main\n\nfunc handleRequest() {}\n",
		"notes.md": "nothing relevant\n",
	})
	require.True(t, tf.SeePlain("2 files"))

	require.NoError(t, tf.Type("hndlreq"))
	if err := tf.WaitForE(func(string) bool {
		return containsPlain(tf, "main.go:3:")
	}, defaultTimeout, "result row for main.go:3 not shown"); err != nil {
		t.Fatal(err)
	}
	require.True(t, tf.SeePlain("1 results"))
}

func TestPreviewOpensAtMatchAndCloses(t *testing.T) {
	t.Parallel()
	tf := startWithTree(t, map[string]string{
		"doc.txt": "first line\n\tindented target\nlast line\n",
	})
	require.True(t, tf.SeePlain("1 files"))

	require.NoError(t, tf.Type("target"))
	require.True(t, tf.SeePlain("doc.txt:2:"))
	require.True(t, tf.SeePlain("1 results"), "Trailing search should settle on the full query")

	mark := tf.Mark()
	require.NoError(t, tf.Enter())
	require.True(t, tf.SeePlainSince(mark, "2 ▶"), "Should mark the matched line")
	require.True(t, tf.SeePlainSince(mark, "open in pager"), "Should show preview help")

	mark = tf.Mark()
	require.NoError(t, tf.Escape())
	require.True(t, tf.SeePlainSince(mark, "esc browse"), "Esc should return to the query")
}

func TestBrowseModeQuits(t *testing.T) {
	t.Parallel()
	tf := startWithTree(t, map[string]string{"a.txt": "a\n"})

	done := make(chan error, 1)
	go func() { done <- tf.cmd.Wait() }()

	mark := tf.Mark()
	require.NoError(t, tf.Escape())
	require.True(t, tf.SeePlainSince(mark, "edit query"), "Browse help should be shown")
	require.NoError(t, tf.Quit())

	require.NoError(t, waitExit(done), "Application should exit cleanly")
}

func TestBrowseEditRoundTrip(t *testing.T) {
	t.Parallel()
	tf := startWithTree(t, map[string]string{"a.txt": "alpha\n"})

	mark := tf.Mark()
	require.NoError(t, tf.Type("alz"))
	require.True(t, tf.SeePlainSince(mark, "0 results"))

	mark = tf.Mark()
	require.NoError(t, tf.SendKeys(KeyBackspace))
	require.True(t, tf.SeePlainSince(mark, "1 results"), "Backspace should widen the query")

	mark = tf.Mark()
	require.NoError(t, tf.Escape())
	require.True(t, tf.SeePlainSince(mark, "edit query"))

	mark = tf.Mark()
	require.NoError(t, tf.SendKeys(KeyEdit))
	require.True(t, tf.SeePlainSince(mark, "esc browse"), "i should return to the query")
}
