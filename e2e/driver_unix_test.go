//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/creack/pty"
)

var binPath = "filescope_e2e"

const (
	KeyEnter     = "\r"
	KeyCtrlC     = "\x03"
	KeyEsc       = "\x1b"
	KeyBackspace = "\x7f"
	KeyQuit      = "q"
	KeyEdit      = "i"
)

// ansiRe matches CSI, OSC, charset and keypad sequences plus carriage returns
var ansiRe = regexp.MustCompile(
	`(?:\x1b\[[0-9;?]*[ -/]*[@-~])|` +
		`(?:\x1b\][^\x07]*\x07)|` +
		`(?:\x1b[\(\)][A-Za-z])|` +
		`(?:\x1b=|\x1b>)|` +
		`\r`,
)

// TUITestFramework runs filescope in a pty and records everything it prints
type TUITestFramework struct {
	t         *testing.T
	pty       *os.File
	cmd       *exec.Cmd
	workspace string

	mu  sync.Mutex
	out []byte
}

func NewTUITest(t *testing.T) *TUITestFramework {
	return &TUITestFramework{t: t}
}

// StartApp launches filescope with args in a 120x40 pty
func (tf *TUITestFramework) StartApp(args ...string) error {
	tf.cmd = exec.Command(binPath, args...)
	tf.cmd.Env = append(os.Environ(),
		"TERM=xterm-256color",
		"LC_ALL=C",
		"LANG=C",
		"HOME="+tf.workspace,
		"XDG_CONFIG_HOME="+tf.workspace,
		"XDG_STATE_HOME="+tf.workspace+"/st",
		"FILESCOPE_E2E_TEST=1",
	)

	ptmx, err := pty.StartWithSize(tf.cmd, &pty.Winsize{Rows: 40, Cols: 120})
	if err != nil {
		return fmt.Errorf("failed to start in pty: %w", err)
	}
	tf.pty = ptmx

	go func() {
		buf := make([]byte, 8192)
		for {
			n, err := ptmx.Read(buf)
			if n > 0 {
				tf.mu.Lock()
				tf.out = append(tf.out, buf[:n]...)
				tf.mu.Unlock()
			}
			if err != nil {
				return
			}
		}
	}()
	return nil
}

// SendKeys writes raw bytes to the application
func (tf *TUITestFramework) SendKeys(keys string) error {
	tf.t.Helper()
	_, err := tf.pty.Write([]byte(keys))
	return err
}

func (tf *TUITestFramework) SendCtrlC() error { return tf.SendKeys(KeyCtrlC) }
func (tf *TUITestFramework) Escape() error    { return tf.SendKeys(KeyEsc) }
func (tf *TUITestFramework) Enter() error     { return tf.SendKeys(KeyEnter) }
func (tf *TUITestFramework) Quit() error      { return tf.SendKeys(KeyQuit) }

// Type sends text one key at a time
func (tf *TUITestFramework) Type(text string) error {
	tf.t.Helper()
	for _, r := range text {
		if err := tf.SendKeys(string(r)); err != nil {
			return err
		}
		time.Sleep(10 * time.Millisecond)
	}
	return nil
}

// Ready waits for the marker the app prints once it renders
func (tf *TUITestFramework) Ready() bool {
	tf.t.Helper()
	return tf.WaitFor(func(s string) bool { return strings.Contains(s, "__READY__") }, 5*time.Second)
}

// SeePlain waits for text to appear in the output with escapes removed
func (tf *TUITestFramework) SeePlain(text string) bool {
	tf.t.Helper()
	return tf.SeePlainSince(0, text)
}

// Mark returns the current length of the plain output
func (tf *TUITestFramework) Mark() int {
	return len(tf.SnapshotPlain())
}

// SeePlainSince waits for text to appear in the plain output after mark
func (tf *TUITestFramework) SeePlainSince(mark int, text string) bool {
	tf.t.Helper()
	return tf.WaitFor(func(s string) bool {
		plain := ansiRe.ReplaceAllString(s, "")
		return strings.Contains(plain[min(mark, len(plain)):], text)
	}, 3*time.Second)
}

// WaitFor polls the raw output until pred holds or timeout passes
func (tf *TUITestFramework) WaitFor(pred func(string) bool, timeout time.Duration) bool {
	tf.t.Helper()
	return tf.WaitForE(pred, timeout, "") == nil
}

// WaitForE is WaitFor returning an error that carries the output tail
func (tf *TUITestFramework) WaitForE(pred func(string) bool, timeout time.Duration, failMsg string) error {
	tf.t.Helper()
	deadline := time.Now().Add(timeout)
	for !pred(tf.snapshot()) {
		if time.Now().After(deadline) {
			tail := tf.SnapshotPlain()
			if len(tail) > 4096 {
				tail = tail[len(tail)-4096:]
			}
			return fmt.Errorf("%s\n--- tail ---\n%s", failMsg, tail)
		}
		time.Sleep(25 * time.Millisecond)
	}
	return nil
}

func (tf *TUITestFramework) snapshot() string {
	tf.mu.Lock()
	defer tf.mu.Unlock()
	return string(tf.out)
}

// SnapshotPlain returns everything printed so far with escapes removed
func (tf *TUITestFramework) SnapshotPlain() string {
	return ansiRe.ReplaceAllString(tf.snapshot(), "")
}

// Cleanup closes the pty, kills the process and removes the workspace
func (tf *TUITestFramework) Cleanup() {
	if tf.pty != nil {
		_ = tf.pty.Close()
		tf.pty = nil
	}
	if tf.cmd != nil && tf.cmd.Process != nil {
		_ = tf.cmd.Process.Kill()
		_, _ = tf.cmd.Process.Wait()
		tf.cmd = nil
	}
	if tf.workspace != "" {
		_ = os.RemoveAll(tf.workspace)
		tf.workspace = ""
	}
}
