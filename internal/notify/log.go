package notify

import (
	"context"
	"log/slog"
)

// LogSender writes events to a structured logger. The daemon always
// registers it so every notification also lands in notifier.log.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a LogSender.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Name() string {
	return "log"
}

func (s *LogSender) Send(ctx context.Context, event *Event) error {
	s.logger.LogAttrs(ctx, slog.LevelInfo, "notification",
		slog.String("type", event.Type),
		slog.String("account", event.Account),
		slog.String("title", event.Title),
		slog.String("status_id", event.StatusID),
		slog.String("body", event.Body),
	)

	return nil
}
