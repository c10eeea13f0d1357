package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes characteristic events to an slog.Logger.
// Useful for development when you want to see accesses in the console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger. Failed operations are logged at
// Warn level, everything else at Debug.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("operation", event.Operation.String()),
		slog.String("characteristic", event.Characteristic),
	}

	if event.Type != "" {
		attrs = append(attrs, slog.String("type", event.Type))
	}
	if event.Value != nil {
		attrs = append(attrs, slog.Any("value", event.Value))
	}
	if event.Duration > 0 {
		attrs = append(attrs, slog.Duration("duration", event.Duration))
	}
	if event.Replaced {
		attrs = append(attrs, slog.Bool("replaced", true))
	}

	level := slog.LevelDebug
	if event.Failed() {
		level = slog.LevelWarn
		attrs = append(attrs, slog.String("error", event.Error))
	}

	a.logger.LogAttrs(context.Background(), level, "characteristic", attrs...)
}

var _ Logger = (*SlogAdapter)(nil)
