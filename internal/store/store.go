package store

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a key has no stored value.
var ErrNotFound = errors.New("not found")

// Meta describes the daemon instance that owns the state file.
type Meta struct {
	InstanceID string    `json:"instance_id"`
	CreatedAt  time.Time `json:"created_at"`
	LastPollAt time.Time `json:"last_poll_at,omitzero"`
	Polls      int64     `json:"polls"`
	Notified   int64     `json:"notified"`
}

// Store defines the state operations used by the notifier daemon.
type Store interface {
	// LastSeen returns the last status id seen for the feed, or ErrNotFound
	// before the first poll. An empty id means the feed was empty then.
	LastSeen(account, feed string) (string, error)
	SetLastSeen(account, feed, id string) error

	// Meta returns the instance record.
	Meta() (Meta, error)

	// RecordPoll bumps the poll counters.
	RecordPoll(at time.Time, notified int) error

	Close() error
}
