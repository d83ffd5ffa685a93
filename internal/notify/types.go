// Package notify delivers notifier events to the user.
package notify

import (
	"context"
	"time"
)

// Event types raised by the notifier daemon.
const (
	EventMention = "mention"
	EventHome    = "home"
	EventSummary = "summary"
	EventError   = "error"
)

// Event is one notification with the context needed for formatting.
type Event struct {
	// Type is one of the Event* constants
	Type string

	// Title is the headline, usually the author's name
	Title string

	// Body is the status text
	Body string

	// StatusID is the fanfou status id (if applicable)
	StatusID string

	// Account is the logged-in account the event was fetched for
	Account string

	// URL is a link to the status
	URL string

	// Timestamp is when the status was created
	Timestamp time.Time

	// Extra contains additional event-specific data
	Extra map[string]string
}

// Sender is the interface for notification senders.
type Sender interface {
	// Send delivers a notification for the given event.
	Send(ctx context.Context, event *Event) error

	// Name returns the sender's name for logging purposes.
	Name() string
}

// NewEvent creates a new event with the given type and sets the timestamp.
func NewEvent(eventType string) *Event {
	return &Event{
		Type:      eventType,
		Timestamp: time.Now(),
		Extra:     make(map[string]string),
	}
}

// WithTitle sets the headline.
func (e *Event) WithTitle(title string) *Event {
	e.Title = title
	return e
}

// WithBody sets the body text.
func (e *Event) WithBody(body string) *Event {
	e.Body = body
	return e
}

// WithStatus sets the status id and its link.
func (e *Event) WithStatus(id string) *Event {
	e.StatusID = id
	e.URL = "https://fanfou.com/statuses/" + id

	return e
}

// WithAccount sets the account on the event.
func (e *Event) WithAccount(account string) *Event {
	e.Account = account
	return e
}

// WithTimestamp overrides the event time.
func (e *Event) WithTimestamp(ts time.Time) *Event {
	if !ts.IsZero() {
		e.Timestamp = ts
	}

	return e
}

// WithExtra adds extra data to the event.
func (e *Event) WithExtra(key, value string) *Event {
	if e.Extra == nil {
		e.Extra = make(map[string]string)
	}

	e.Extra[key] = value

	return e
}
