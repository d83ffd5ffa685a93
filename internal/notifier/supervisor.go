package notifier

import (
	"context"
	"errors"
)

var (
	// ErrUnavailable is wrapped by supervisors that cannot operate on this
	// system, e.g. no service manager is installed.
	ErrUnavailable = errors.New("process supervisor unavailable")

	// ErrNotRegistered is returned by Start when the daemon has no registration.
	ErrNotRegistered = errors.New("notifier is not registered")
)

// Supervisor manages the daemon process on behalf of the Manager.
type Supervisor interface {
	// Name identifies the supervisor in messages.
	Name() string

	// Register installs the daemon so it can be started.
	Register(ctx context.Context) error

	// Deregister removes the daemon's registration.
	Deregister(ctx context.Context) error

	// Start starts a registered daemon.
	Start(ctx context.Context) error

	// Stop stops a running daemon.
	Stop(ctx context.Context) error

	// State queries the current daemon state.
	State(ctx context.Context) (State, error)
}
