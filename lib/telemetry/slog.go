package telemetry

import (
	"log/slog"
	"os"
)

// InitSlog configures the process-wide default logger. Host applications call
// it once; the library itself only ever logs through slog.Default.
func InitSlog(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(
		os.Stderr,
		&slog.HandlerOptions{Level: level},
	)))
}
