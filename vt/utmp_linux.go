//go:build linux

package vt

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
)

const utempterPath = "/usr/lib/x86_64-linux-gnu/utempter/utempter"

// addUtmp records the session in utmp via utempter, best-effort. A
// missing utempter binary is not fatal — the terminal core has no
// hard dependency on utmp bookkeeping (SPEC_FULL.md §4.4 supplement,
// grounded on the teacher's vt/terminal_linux.go).
func addUtmp(f *os.File) {
	host := fmt.Sprintf("vterm[%d]", os.Getpid())
	cmd := exec.Command(utempterPath, "add", host)
	cmd.Stdin = f
	if err := cmd.Run(); err != nil {
		slog.Debug("vt: addUtmp failed", "err", err)
	}
}

func rmUtmp(f *os.File) {
	cmd := exec.Command(utempterPath, "del")
	cmd.Stdin = f
	if err := cmd.Run(); err != nil {
		slog.Debug("vt: rmUtmp failed", "err", err)
	}
}
