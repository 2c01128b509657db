//go:build !windows

package e2e_test

import (
	"bytes"
	"io"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/creack/pty"
)

const (
	tuiRows           = 30
	tuiCols           = 100
	tuiStartupTimeout = 3 * time.Second
	tuiExitTimeout    = 3 * time.Second
	tuiKeyDelay       = 12 * time.Millisecond
	tuiListTimeout    = 2 * time.Second
)

var (
	ansiCSIRe = regexp.MustCompile(`\x1b\[[0-9;?]*[ -/]*[@-~]`)
	ansiOSCRe = regexp.MustCompile(`\x1b\][^\x07]*\x07`)
)

type tuiOutputBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *tuiOutputBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *tuiOutputBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// Reset drops everything captured so far so later waits only see new frames.
func (b *tuiOutputBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.Reset()
}

type tuiSession struct {
	t       *testing.T
	cmd     *exec.Cmd
	ptmx    *os.File
	out     tuiOutputBuffer
	done    chan struct{}
	doneErr chan error
	cleanup sync.Once
}

func startTUIProcess(t *testing.T, dir string, env ...string) *tuiSession {
	t.Helper()

	cmd := exec.Command(binPath, "--config", dir) //nolint:gosec,noctx // command uses test-built binary path
	cmd.Env = testEnv(append([]string{"NO_COLOR=1", "TERM=dumb"}, env...)...)

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Cols: tuiCols, Rows: tuiRows})
	if err != nil {
		t.Fatalf("starting TUI process: %v", err)
	}

	session := &tuiSession{
		t:       t,
		cmd:     cmd,
		ptmx:    ptmx,
		done:    make(chan struct{}),
		doneErr: make(chan error, 1),
	}

	go func() {
		_, _ = io.Copy(&session.out, ptmx)
		session.doneErr <- cmd.Wait()
		close(session.done)
	}()

	t.Cleanup(session.close)
	return session
}

func (s *tuiSession) close() {
	s.cleanup.Do(func() {
		_ = s.pressKey("ctrl+c")
		select {
		case <-s.done:
		case <-time.After(tuiExitTimeout):
			if s.cmd.Process != nil {
				_ = s.cmd.Process.Kill()
			}
			<-s.done
		}
		_ = s.ptmx.Close()
	})
}

func (s *tuiSession) output() string {
	return sanitizeTTYOutput(s.out.String())
}

func (s *tuiSession) pressKey(name string) error {
	_, err := s.ptmx.Write([]byte(encodeKey(name)))
	if err != nil {
		return err
	}
	time.Sleep(tuiKeyDelay)
	return nil
}

func (s *tuiSession) pressKeys(names ...string) {
	s.t.Helper()
	for _, name := range names {
		if err := s.pressKey(name); err != nil {
			s.t.Fatalf("pressing key %q: %v", name, err)
		}
	}
}

func (s *tuiSession) typeText(text string) {
	s.t.Helper()
	for _, r := range text {
		if err := s.pressKey(string(r)); err != nil {
			s.t.Fatalf("typing text %q: %v", text, err)
		}
	}
}

func (s *tuiSession) waitForOutput(needle string) {
	s.t.Helper()
	deadline := time.Now().Add(tuiStartupTimeout)
	for time.Now().Before(deadline) {
		if strings.Contains(s.output(), needle) {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	s.t.Fatalf("timed out waiting for output containing %q; got %q", needle, s.output())
}

func (s *tuiSession) waitForExit() {
	s.t.Helper()
	select {
	case <-s.done:
	case <-time.After(tuiExitTimeout):
		s.t.Fatalf("timed out waiting for TUI process to exit")
	}
}

func encodeKey(name string) string {
	switch name {
	case "enter", "return":
		return "\r"
	case "tab":
		return "\t"
	case "esc":
		return "\x1b"
	case "up":
		return "\x1b[A"
	case "down":
		return "\x1b[B"
	case "backspace":
		return "\x7f"
	case "ctrl+c":
		return "\x03"
	case "ctrl+u":
		return "\x15"
	case "space":
		return " "
	default:
		return name
	}
}

func sanitizeTTYOutput(raw string) string {
	raw = strings.ReplaceAll(raw, "\r", "")
	raw = ansiCSIRe.ReplaceAllString(raw, "")
	raw = ansiOSCRe.ReplaceAllString(raw, "")
	return raw
}

// waitForList polls the CLI until the list satisfies check.
func waitForList(t *testing.T, dir string, check func([]taskJSON) bool) {
	t.Helper()

	deadline := time.Now().Add(tuiListTimeout)
	for {
		var tasks []taskJSON
		r := runTasklistJSON(t, dir, &tasks, "list")
		if r.exitCode == 0 && check(tasks) {
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for list update, last seen: %#v", tasks)
		}
		time.Sleep(20 * time.Millisecond)
	}
}
