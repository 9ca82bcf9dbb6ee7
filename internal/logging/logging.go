package logging

import (
	"io"
	"log/slog"
)

// Level is fixed: the client takes no flags, so only warnings and errors are written.
const Level = slog.LevelWarn

// Init configures the default slog logger. Output goes to w (stderr in the binary) so it never
// interleaves with menu text on stdout.
func Init(w io.Writer) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: Level})
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
