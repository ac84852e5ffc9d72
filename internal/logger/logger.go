package logger

import (
	"log/slog"
	"os"
)

const envLocal = "local"

// New builds the process logger: human-readable debug output locally,
// JSON elsewhere.
func New(env string) *slog.Logger {
	if env == envLocal {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
}
