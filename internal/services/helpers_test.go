package services

import (
	"io"
	"log/slog"
	"testing"
)

// newTestLogger returns a logger that discards output so tests stay quiet
func newTestLogger(t *testing.T) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
