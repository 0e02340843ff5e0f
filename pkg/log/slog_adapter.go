package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes session events to an slog.Logger.
// Useful for development when you want to see session events in console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("session", event.SessionID),
		slog.String("channel", event.Channel.String()),
		slog.String("category", event.Category.String()),
	}

	if event.Source != "" {
		attrs = append(attrs, slog.String("source", event.Source))
	}

	switch {
	case event.Tracking != nil:
		attrs = append(attrs,
			slog.Int("marker", event.Tracking.MarkerID),
			slog.String("transition", event.Tracking.Transition),
		)
		if event.Tracking.State != "" {
			attrs = append(attrs, slog.String("state", event.Tracking.State))
		}
		if event.Tracking.Method != "" {
			attrs = append(attrs, slog.String("method", event.Tracking.Method))
		}
	case event.Ident != nil:
		attrs = append(attrs, slog.String("raw", event.Ident.Raw))
		if event.Ident.Record != nil {
			attrs = append(attrs, slog.String("device", event.Ident.Record.String()))
		}
		if event.Ident.RSSI != nil {
			attrs = append(attrs, slog.Int("rssi", *event.Ident.RSSI))
		}
		if event.Ident.URL != "" {
			attrs = append(attrs, slog.String("url", event.Ident.URL))
		}
	case event.Scan != nil:
		attrs = append(attrs,
			slog.String("entity", event.Scan.Entity.String()),
			slog.String("old_state", event.Scan.OldState),
			slog.String("new_state", event.Scan.NewState),
		)
		if event.Scan.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.Scan.Reason))
		}
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("error_kind", event.Error.Kind),
			slog.String("error_msg", event.Error.Message),
		)
		if event.Error.Raw != "" {
			attrs = append(attrs, slog.String("raw", event.Error.Raw))
		}
		if event.Error.Context != "" {
			attrs = append(attrs, slog.String("error_context", event.Error.Context))
		}
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "session", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
