// Command vterm hosts an interactive shell behind the vt terminal
// emulation engine, rendering the resulting grid to the controlling
// terminal. It exists as a reference host for the vt package — the
// engine itself has no CLI of its own (spec.md §6).
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/nwidger/vterm/vlog"
	"github.com/nwidger/vterm/vt"
)

type cliConfig struct {
	shell      string
	workDir    string
	scrollback uint
	logFile    string
}

func parseFlags() cliConfig {
	var cfg cliConfig
	flag.StringVar(&cfg.shell, "shell", "", "shell to run (default: $SHELL, then /bin/zsh)")
	flag.StringVar(&cfg.workDir, "workdir", "", "initial working directory")
	flag.UintVar(&cfg.scrollback, "scrollback", 10000, "maximum scrollback lines")
	flag.StringVar(&cfg.logFile, "logfile", "", "write debug logs here instead of discarding them")
	flag.Parse()
	return cfg
}

func main() {
	cfg := parseFlags()

	if err := vlog.Setup(cfg.logFile, slog.LevelDebug); err != nil {
		fmt.Fprintln(os.Stderr, "vterm:", err)
		os.Exit(1)
	}

	cols, rows := defaultSize()
	if isatty.IsTerminal(os.Stdout.Fd()) {
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			cols, rows = w, h
		}
	}

	sess := vt.NewSession(vt.Config{
		ShellPath:     cfg.shell,
		WorkingDir:    cfg.workDir,
		Rows:          uint16(rows),
		Cols:          uint16(cols),
		MaxScrollback: uint32(cfg.scrollback),
	})

	profile := termenv.ColorProfile()
	wireEvents(sess)

	exited := make(chan int, 1)
	sess.OnSessionExited = func(code int) { exited <- code }

	if err := sess.Start(); err != nil {
		fmt.Fprintln(os.Stderr, "vterm:", err)
		os.Exit(1)
	}

	restore := enterRawMode()
	defer restore()

	go pumpInput(sess)
	go watchResize(sess)
	go renderLoop(sess, profile)

	code := <-exited
	sess.Stop()
	os.Exit(normalizeExit(code))
}

func defaultSize() (cols, rows int) {
	return defaultCols, defaultRows
}

const (
	defaultCols = 80
	defaultRows = 24
)

func wireEvents(sess *vt.Session) {
	t := sess.Terminal()
	t.OnBell = func() {
		fmt.Fprint(os.Stdout, "\a")
	}
	t.OnTitleChanged = func(title string) {
		fmt.Fprintf(os.Stdout, "\x1b]0;%s\x07", title)
	}
	t.OnIconNameChanged = func(name string) {
		fmt.Fprintf(os.Stdout, "\x1b]1;%s\x07", name)
	}
}

func enterRawMode() func() {
	fd := int(os.Stdin.Fd())
	if !isatty.IsTerminal(os.Stdin.Fd()) {
		return func() {}
	}
	old, err := term.MakeRaw(fd)
	if err != nil {
		slog.Warn("vterm: couldn't set raw mode", "err", err)
		return func() {}
	}
	return func() { term.Restore(fd, old) }
}

func normalizeExit(code int) int {
	if code < 0 {
		return 1
	}
	return code
}

func pumpInput(sess *vt.Session) {
	buf := make([]byte, 1024)
	for {
		n, err := os.Stdin.Read(buf)
		if n > 0 {
			sess.WriteInput(buf[:n])
		}
		if err != nil {
			return
		}
	}
}

func watchResize(sess *vt.Session) {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGWINCH)
	for range sig {
		w, h, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil {
			continue
		}
		sess.Resize(uint16(h), uint16(w))
	}
}

func renderLoop(sess *vt.Session, profile termenv.Profile) {
	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	scr := sess.Screen()
	for range ticker.C {
		for _, row := range scr.DrainDirty() {
			drawRow(os.Stdout, profile, scr, row)
		}
		cur := scr.Cursor()
		fmt.Fprintf(os.Stdout, "\x1b[%d;%dH", cur.Row+1, cur.Col+1)
	}
}
