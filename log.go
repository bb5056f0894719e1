package slist

import (
	"io"
	"log/slog"
)

// Verbosity levels accepted by NewLogger. Output from print and println is
// written regardless of verbosity.
const (
	VerbosityAlways  = 0
	VerbosityError   = 1
	VerbosityWarning = 2
	VerbosityTrace   = 3
)

// levelSilent is above every level the evaluator logs at.
const levelSilent = slog.LevelError + 4

// Level maps a verbosity to the minimum slog level that is emitted.
func Level(verbosity int) slog.Level {
	switch {
	case verbosity <= VerbosityAlways:
		return levelSilent
	case verbosity == VerbosityError:
		return slog.LevelError
	case verbosity == VerbosityWarning:
		return slog.LevelWarn
	default:
		return slog.LevelDebug
	}
}

// NewLogger returns a text logger writing to w that emits diagnostics at the
// given verbosity.
func NewLogger(w io.Writer, verbosity int) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: Level(verbosity)}))
}
