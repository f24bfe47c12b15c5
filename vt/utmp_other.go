//go:build !linux

package vt

import (
	"log/slog"
	"os"
)

func addUtmp(f *os.File) {
	slog.Debug("vt: utmp bookkeeping not implemented on this platform")
}

func rmUtmp(f *os.File) {}
