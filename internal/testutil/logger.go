package testutil

import (
	"io"
	"log/slog"
	"time"
)

// Epoch is the fixed instant mock clocks start from in tests
var Epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// NopLogger returns a logger that discards all output.
// Use this in tests to avoid log noise.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
