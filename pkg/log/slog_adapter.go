package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes model events to an slog.Logger.
// Useful for development when you want to see events in console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger.
// Delivery failures are logged at Warn level, everything else at Debug.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("category", event.Category.String()),
	}

	if event.Server != "" {
		attrs = append(attrs, slog.String("server", event.Server))
	}
	if event.AssociationID != "" {
		attrs = append(attrs, slog.String("association_id", event.AssociationID))
	}
	if event.Path != "" {
		attrs = append(attrs, slog.String("path", event.Path))
	}
	if event.Value != nil {
		attrs = append(attrs, slog.Any("value", event.Value))
	}
	if event.ReportID != "" {
		attrs = append(attrs, slog.String("report_id", event.ReportID))
	}
	if event.Members != 0 {
		attrs = append(attrs, slog.Int("members", event.Members))
	}
	if event.Error != "" {
		attrs = append(attrs, slog.String("error", event.Error))
	}
	if event.Detail != "" {
		attrs = append(attrs, slog.String("detail", event.Detail))
	}

	level := slog.LevelDebug
	if event.Category == CategoryReportError {
		level = slog.LevelWarn
	}

	a.logger.LogAttrs(context.Background(), level, "model event", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
