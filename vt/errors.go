package vt

import "errors"

// Lifecycle and I/O error kinds surfaced by Session (spec.md §7).
var (
	ErrOpenFailed     = errors.New("vt: pty open failed")
	ErrForkFailed     = errors.New("vt: spawn failed")
	ErrAlreadyRunning = errors.New("vt: session already running")
	ErrNotRunning     = errors.New("vt: session not running")
	ErrIOError        = errors.New("vt: pty io error")
)
