package vt

import (
	"errors"
	"os"
	"os/exec"
	"testing"
)

func TestResolveShellPrecedence(t *testing.T) {
	oldShell := os.Getenv("SHELL")
	defer os.Setenv("SHELL", oldShell)

	os.Setenv("SHELL", "/bin/bash")
	if got := resolveShell(Config{ShellPath: "/usr/bin/fish"}); got != "/usr/bin/fish" {
		t.Errorf("resolveShell with explicit path = %q, want /usr/bin/fish", got)
	}
	if got := resolveShell(Config{}); got != "/bin/bash" {
		t.Errorf("resolveShell from $SHELL = %q, want /bin/bash", got)
	}

	os.Unsetenv("SHELL")
	if got := resolveShell(Config{}); got != "/bin/zsh" {
		t.Errorf("resolveShell fallback = %q, want /bin/zsh", got)
	}
}

func TestBuildEnvInjectsDefaultsUnlessOverridden(t *testing.T) {
	env := buildEnv(nil)
	if !hasKV(env, "TERM", "xterm-256color") {
		t.Errorf("env missing default TERM=xterm-256color: %v", env)
	}
	if !hasKV(env, "LANG", "en_US.UTF-8") {
		t.Errorf("env missing default LANG=en_US.UTF-8: %v", env)
	}

	env = buildEnv(map[string]string{"TERM": "vt100", "EXTRA": "1"})
	if !hasKV(env, "TERM", "vt100") {
		t.Errorf("env should honor TERM override: %v", env)
	}
	if !hasKV(env, "EXTRA", "1") {
		t.Errorf("env should carry through custom keys: %v", env)
	}
}

func hasKV(env []string, key, val string) bool {
	for _, kv := range env {
		if kv == key+"="+val {
			return true
		}
	}
	return false
}

func TestExitCodeFromErr(t *testing.T) {
	if code := exitCodeFromErr(nil); code != 0 {
		t.Errorf("exitCodeFromErr(nil) = %d, want 0", code)
	}
	if code := exitCodeFromErr(errors.New("boom")); code != -1 {
		t.Errorf("exitCodeFromErr(non-exit error) = %d, want -1", code)
	}
}

func TestSessionLifecycleErrorsWhenNotRunning(t *testing.T) {
	s := NewSession(Config{Rows: 5, Cols: 10})
	if err := s.WriteInput([]byte("x")); !errors.Is(err, ErrNotRunning) {
		t.Errorf("WriteInput before Start = %v, want ErrNotRunning", err)
	}
	if err := s.Resize(5, 5); !errors.Is(err, ErrNotRunning) {
		t.Errorf("Resize before Start = %v, want ErrNotRunning", err)
	}
	if err := s.Signal(os.Interrupt); !errors.Is(err, ErrNotRunning) {
		t.Errorf("Signal before Start = %v, want ErrNotRunning", err)
	}
	s.Stop() // idempotent no-op when never started
}

func TestSessionScreenAccessorsBeforeStart(t *testing.T) {
	s := NewSession(Config{Rows: 5, Cols: 10})
	rows, cols := s.Screen().Size()
	if rows != 5 || cols != 10 {
		t.Errorf("initial size = (%d,%d), want (5,10)", rows, cols)
	}
}

var _ = exec.Command // keeps the os/exec import referenced; no test above calls it
