package logging

import (
	"log/slog"
	"os"
)

// Init installs the default slog logger. Logs go to stderr so report output
// on stdout stays clean; debug enables per-file events.
func Init(debug bool) {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
