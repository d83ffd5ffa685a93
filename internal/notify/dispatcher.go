package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

const sendTimeout = 30 * time.Second

// Dispatcher routes events to registered senders.
type Dispatcher struct {
	senders []Sender
	mu      sync.RWMutex
	logger  *slog.Logger
}

// NewDispatcher creates a new notification dispatcher.
func NewDispatcher(logger *slog.Logger, senders ...Sender) *Dispatcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Dispatcher{
		senders: senders,
		logger:  logger,
	}
}

// Register adds a sender to the dispatcher.
func (d *Dispatcher) Register(sender Sender) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.senders = append(d.senders, sender)
}

// Dispatch sends an event to all registered senders in order. It returns
// the joined errors of the senders that failed.
func (d *Dispatcher) Dispatch(ctx context.Context, event *Event) error {
	d.mu.RLock()
	senders := make([]Sender, len(d.senders))
	copy(senders, d.senders)
	d.mu.RUnlock()

	var errs []error

	for _, sender := range senders {
		if err := d.sendWithRecover(ctx, sender, event); err != nil {
			d.logger.Warn("notification failed", "sender", sender.Name(), "type", event.Type, "error", err)
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Send implements Sender so a Dispatcher can be nested.
func (d *Dispatcher) Send(ctx context.Context, event *Event) error {
	return d.Dispatch(ctx, event)
}

func (d *Dispatcher) Name() string {
	return "dispatcher"
}

// sendWithRecover sends an event and recovers from panics.
func (d *Dispatcher) sendWithRecover(ctx context.Context, sender Sender, event *Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in sender %s: %v", sender.Name(), r)
		}
	}()

	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	return sender.Send(sendCtx, event)
}

// HasSenders returns true if any senders are registered.
func (d *Dispatcher) HasSenders() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return len(d.senders) > 0
}
