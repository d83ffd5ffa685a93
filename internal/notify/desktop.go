package notify

import (
	"context"
	"fmt"

	"github.com/gen2brain/beeep"
	"github.com/inovacc/nofan/internal/application"
)

const maxBodyLen = 280

// Notifier shows one native desktop notification.
type Notifier func(title, body string) error

func beeepNotify(title, body string) error {
	return beeep.Notify(title, body, "")
}

// DesktopSender shows events as native desktop notifications.
type DesktopSender struct {
	notify Notifier
}

// NewDesktopSender creates a sender for the current platform.
func NewDesktopSender() *DesktopSender {
	return &DesktopSender{notify: beeepNotify}
}

func (s *DesktopSender) Name() string {
	return "desktop"
}

func (s *DesktopSender) Send(ctx context.Context, event *Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	title := event.Title
	if title == "" {
		title = application.AppName
	}

	if err := s.notify(title, truncate(event.Body, maxBodyLen)); err != nil {
		return fmt.Errorf("desktop notification: %w", err)
	}

	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}

	return string(r[:n-1]) + "…"
}
