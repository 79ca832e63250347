package logger

import "log/slog"

// NewNope returns a logger that discards everything.
// Constructors use it when no logger is supplied.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
