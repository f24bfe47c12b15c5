package vt

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/creack/pty"
)

// Config configures a Session (spec.md §6).
type Config struct {
	ShellPath     string
	ShellArgs     []string
	Env           map[string]string
	WorkingDir    string
	Rows, Cols    uint16
	MaxScrollback uint32
}

// Session owns a PTY pair and the child shell running behind it,
// pumping its output into a Terminal and its input back out (spec.md
// §4.4). All Session state is guarded by mu; only Session mutates it
// (spec.md §5's "shared-resource policy").
type Session struct {
	cfg Config

	term *Terminal

	mu      sync.Mutex
	running bool
	cmd     *exec.Cmd
	ptmx    *os.File
	exited  chan struct{}

	// writeMu serializes writes to ptmx across WriteInput (the host
	// input goroutine) and writeRaw (Terminal's OnReply, fired from
	// readLoop), so a DA/DSR reply can never interleave into the
	// middle of a partially-written keystroke (spec.md §5: one
	// logical write_input call is atomic with respect to others).
	writeMu sync.Mutex

	closeOnce sync.Once

	// OnSessionExited fires once, after the child is reaped, with its
	// exit status or -1 if it was killed by a signal (spec.md §6/§7).
	OnSessionExited func(code int)
}

// NewSession constructs a Session with a freshly sized Terminal. It
// does not spawn anything until Start is called.
func NewSession(cfg Config) *Session {
	rows, cols := cfg.Rows, cfg.Cols
	if rows == 0 {
		rows = defaultRows
	}
	if cols == 0 {
		cols = defaultCols
	}
	return &Session{
		cfg:  cfg,
		term: NewTerminal(int(rows), int(cols), int(cfg.MaxScrollback)),
	}
}

// Terminal returns the parser+screen coordinator this session feeds.
func (s *Session) Terminal() *Terminal {
	return s.term
}

// Screen returns the live screen (spec.md §6's "Screen accessors").
func (s *Session) Screen() *Screen {
	return s.term.Screen
}

func resolveShell(cfg Config) string {
	if cfg.ShellPath != "" {
		return cfg.ShellPath
	}
	if sh := os.Getenv("SHELL"); sh != "" {
		return sh
	}
	return "/bin/zsh"
}

func buildEnv(overrides map[string]string) []string {
	merged := make(map[string]string)
	for _, kv := range os.Environ() {
		if i := strings.IndexByte(kv, '='); i >= 0 {
			merged[kv[:i]] = kv[i+1:]
		}
	}
	if _, ok := overrides["TERM"]; !ok {
		merged["TERM"] = "xterm-256color"
	}
	if _, ok := overrides["LANG"]; !ok {
		merged["LANG"] = "en_US.UTF-8"
	}
	for k, v := range overrides {
		merged[k] = v
	}

	env := make([]string, 0, len(merged))
	for k, v := range merged {
		env = append(env, k+"="+v)
	}
	return env
}

// Start opens the PTY pair and spawns the child shell (spec.md §4.4's
// spawn contract).
func (s *Session) Start() error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrAlreadyRunning
	}

	shell := resolveShell(s.cfg)
	lshell := "-" + filepath.Base(shell)

	cmd := exec.Command(shell, s.cfg.ShellArgs...)
	cmd.Args = append([]string{lshell}, s.cfg.ShellArgs...)
	cmd.Dir = s.cfg.WorkingDir
	cmd.Env = buildEnv(s.cfg.Env)

	rows, cols := s.term.Screen.Size()
	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(rows), Cols: uint16(cols)})
	if err != nil {
		s.mu.Unlock()
		// pty.StartWithSize conflates opening the pty and forking the
		// child into one call, so only ErrOpenFailed is reachable here.
		return errors.Join(ErrOpenFailed, err)
	}

	// Fd(), called internally by StartWithSize's Setsize, leaves the
	// descriptor blocking again; restore non-blocking mode so the
	// reader can be interrupted by closing ptmx.
	if err := syscall.SetNonblock(int(ptmx.Fd()), true); err != nil {
		ptmx.Close()
		cmd.Wait()
		s.mu.Unlock()
		return errors.Join(ErrOpenFailed, err)
	}

	s.cmd = cmd
	s.ptmx = ptmx
	s.running = true
	s.exited = make(chan struct{})
	s.closeOnce = sync.Once{}
	s.term.OnReply = func(b []byte) { s.writeRaw(b) }
	s.mu.Unlock()

	addUtmp(ptmx)

	go s.readLoop(ptmx)
	go s.waitLoop()

	return nil
}

func (s *Session) readLoop(f *os.File) {
	buf := make([]byte, 8192)
	for {
		n, err := f.Read(buf)
		if n > 0 {
			s.term.Feed(buf[:n])
		}
		if err != nil {
			return
		}
	}
}

func (s *Session) waitLoop() {
	err := s.cmd.Wait()
	code := exitCodeFromErr(err)

	s.mu.Lock()
	s.running = false
	s.mu.Unlock()

	s.closeMaster()
	close(s.exited)

	if s.OnSessionExited != nil {
		s.OnSessionExited(code)
	}
}

func (s *Session) closeMaster() {
	s.closeOnce.Do(func() {
		rmUtmp(s.ptmx)
		s.ptmx.Close()
	})
}

func exitCodeFromErr(err error) int {
	if err == nil {
		return 0
	}
	var ee *exec.ExitError
	if errors.As(err, &ee) {
		if ws, ok := ee.Sys().(syscall.WaitStatus); ok {
			if ws.Signaled() {
				return -1
			}
			return ws.ExitStatus()
		}
	}
	return -1
}

// WriteInput writes bytes to the PTY master, translating "\n" to "\r"
// (spec.md §6's wire-level boundary behavior) and retrying on
// transient interruption. Serialized against writeRaw via writeMu so a
// reply can never land in the middle of a partially-written keystroke.
func (s *Session) WriteInput(data []byte) error {
	s.mu.Lock()
	running, ptmx := s.running, s.ptmx
	s.mu.Unlock()
	if !running {
		return ErrNotRunning
	}

	translated := make([]byte, 0, len(data))
	for _, b := range data {
		if b == '\n' {
			b = '\r'
		}
		translated = append(translated, b)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return writeAll(ptmx, translated)
}

// writeRaw writes a protocol reply (DA/DSR) straight to the PTY master,
// bypassing WriteInput's newline translation since replies are
// generated by Terminal, not typed by a human. Serialized against
// WriteInput via writeMu for the same reason.
func (s *Session) writeRaw(data []byte) {
	s.mu.Lock()
	running, ptmx := s.running, s.ptmx
	s.mu.Unlock()
	if !running {
		return
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	writeAll(ptmx, data)
}

func writeAll(w *os.File, data []byte) error {
	for len(data) > 0 {
		n, err := w.Write(data)
		if err != nil {
			if errors.Is(err, syscall.EINTR) {
				continue
			}
			return errors.Join(ErrIOError, err)
		}
		data = data[n:]
	}
	return nil
}

// Resize reshapes the Screen and then issues the window-size ioctl,
// in that order (spec.md §4.4: "reshaping first guarantees that any
// bytes the child emits in response land in a grid sized to receive
// them").
func (s *Session) Resize(rows, cols uint16) error {
	s.mu.Lock()
	running, ptmx := s.running, s.ptmx
	s.mu.Unlock()
	if !running {
		return ErrNotRunning
	}

	s.term.Screen.Resize(int(rows), int(cols))
	return pty.Setsize(ptmx, &pty.Winsize{Rows: rows, Cols: cols})
}

// Signal delivers sig to the child process.
func (s *Session) Signal(sig os.Signal) error {
	s.mu.Lock()
	running, cmd := s.running, s.cmd
	s.mu.Unlock()
	if !running {
		return ErrNotRunning
	}
	return cmd.Process.Signal(sig)
}

// Stop terminates the child and reaps it, idempotently and
// synchronously (spec.md §4.4/§5): SIGTERM, a short grace period,
// then SIGKILL if still alive.
func (s *Session) Stop() {
	s.mu.Lock()
	running, cmd, exited := s.running, s.cmd, s.exited
	s.mu.Unlock()
	if !running {
		return
	}

	cmd.Process.Signal(syscall.SIGTERM)
	select {
	case <-exited:
	case <-time.After(100 * time.Millisecond):
		cmd.Process.Kill()
		<-exited
	}
}
