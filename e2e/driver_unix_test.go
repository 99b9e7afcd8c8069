//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/creack/pty"
	"github.com/stretchr/testify/require"
)

const ringSize = 1 << 20 // 1 MiB of scrollback

var binPath = "blockslash_e2e"

// Terminal input for the keys the editor binds
const (
	KeyEnter     = "\r"
	KeyEscape    = "\x1b"
	KeyBackspace = "\x7f"
	KeyUp        = "\x1b[A"
	KeyDown      = "\x1b[B"
	KeyCtrlC     = "\x03"
)

// ansiRe strips CSI, OSC, charset and keypad sequences plus carriage returns
var ansiRe = regexp.MustCompile(
	`(?:\x1b\[[0-9;?]*[ -/]*[@-~])|` +
		`(?:\x1b\][^\x07]*\x07)|` +
		`(?:\x1b[\(\)][A-Za-z])|` +
		`(?:\x1b=|\x1b>)|` +
		`\r`,
)

// Editor drives a blockslash process inside a pseudo terminal
type Editor struct {
	t         *testing.T
	pty       *os.File
	cmd       *exec.Cmd
	workspace string

	mu   sync.Mutex
	buf  []byte
	head int
	full bool
}

// StartEditor writes config into a fresh workspace and launches the editor
func StartEditor(t *testing.T, config string, args ...string) *Editor {
	t.Helper()
	ws := t.TempDir()
	cfgPath := filepath.Join(ws, "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(config), 0644))

	e := &Editor{t: t, workspace: ws, buf: make([]byte, ringSize)}
	e.cmd = exec.Command(binPath, append([]string{"--config", cfgPath}, args...)...)
	e.cmd.Dir = ws
	e.cmd.Env = append(os.Environ(),
		"TERM=xterm-256color",
		"LC_ALL=C.UTF-8",
		"HOME="+ws,
		"XDG_CONFIG_HOME="+ws,
	)

	f, err := pty.StartWithSize(e.cmd, &pty.Winsize{Rows: 30, Cols: 100})
	require.NoError(t, err)
	e.pty = f
	go e.read()

	t.Cleanup(e.Close)
	return e
}

func (e *Editor) read() {
	chunk := make([]byte, 8192)
	for {
		n, err := e.pty.Read(chunk)
		if n > 0 {
			e.mu.Lock()
			for _, b := range chunk[:n] {
				e.buf[e.head] = b
				e.head = (e.head + 1) % ringSize
				if e.head == 0 {
					e.full = true
				}
			}
			e.mu.Unlock()
		}
		if err != nil {
			return
		}
	}
}

// Send writes raw keys, pausing briefly so each is read as its own event
func (e *Editor) Send(keys ...string) {
	e.t.Helper()
	for _, k := range keys {
		_, err := e.pty.Write([]byte(k))
		require.NoError(e.t, err)
		time.Sleep(30 * time.Millisecond)
	}
}

// Type sends each rune of text as a key
func (e *Editor) Type(text string) {
	e.t.Helper()
	for _, r := range text {
		e.Send(string(r))
	}
}

// Plain returns everything written so far without escape sequences
func (e *Editor) Plain() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	var raw []byte
	if e.full {
		raw = append(append(raw, e.buf[e.head:]...), e.buf[:e.head]...)
	} else {
		raw = append(raw, e.buf[:e.head]...)
	}
	return ansiRe.ReplaceAllString(string(raw), "")
}

// MarkOutput returns the current output length; SeeAfter only looks past it
func (e *Editor) MarkOutput() int {
	return len(e.Plain())
}

// See waits until text appears anywhere in the output
func (e *Editor) See(text string) error {
	return e.SeeAfter(0, text)
}

// SeeAfter waits until text appears after mark
func (e *Editor) SeeAfter(mark int, text string) error {
	deadline := time.Now().Add(3 * time.Second)
	for {
		out := e.Plain()
		if mark <= len(out) && strings.Contains(out[mark:], text) {
			return nil
		}
		if time.Now().After(deadline) {
			tail := out
			if len(tail) > 4096 {
				tail = tail[len(tail)-4096:]
			}
			return fmt.Errorf("did not see %q\n--- tail ---\n%s", text, tail)
		}
		time.Sleep(25 * time.Millisecond)
	}
}

// Log returns the editor's log file
func (e *Editor) Log() string {
	data, _ := os.ReadFile(filepath.Join(e.workspace, "blockslash.log"))
	return string(data)
}

// WaitExit waits for the process to end
func (e *Editor) WaitExit(timeout time.Duration) error {
	done := make(chan error, 1)
	go func() { done <- e.cmd.Wait() }()
	select {
	case err := <-done:
		e.cmd = nil
		return err
	case <-time.After(timeout):
		return fmt.Errorf("editor did not exit within %s", timeout)
	}
}

// Close kills the process and releases the terminal
func (e *Editor) Close() {
	if e.pty != nil {
		_ = e.pty.Close()
		e.pty = nil
	}
	if e.cmd != nil && e.cmd.Process != nil {
		_ = e.cmd.Process.Kill()
		_, _ = e.cmd.Process.Wait()
		e.cmd = nil
	}
}
