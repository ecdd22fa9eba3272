package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrTooManyAttempts is returned when the configured attempt budget is
	// exhausted without an accepted submission.
	ErrTooManyAttempts = errors.New("tui: too many rejected submissions")
)
