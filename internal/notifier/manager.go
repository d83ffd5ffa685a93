package notifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/inovacc/nofan/internal/intent"
)

// Result describes the outcome of a lifecycle operation.
type Result struct {
	Op     intent.NotifierOp
	Before State
	After  State

	// Changed is false when the operation was a no-op
	Changed bool
}

// Message returns a one-line summary for the user.
func (r Result) Message() string {
	switch {
	case r.Op == intent.NotifierStart && !r.Changed:
		return "Notifier is already running"
	case r.Op == intent.NotifierStop && !r.Changed:
		return "Notifier is not running"
	case r.Op == intent.NotifierDelete && !r.Changed:
		return "Notifier is not registered"
	}

	switch r.Op {
	case intent.NotifierStart:
		return "Notifier started"
	case intent.NotifierStop:
		return "Notifier stopped"
	case intent.NotifierRestart:
		return "Notifier restarted"
	case intent.NotifierDelete:
		return "Notifier deleted"
	default:
		return fmt.Sprintf("Notifier %s: %s", r.Op, r.After)
	}
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithStateReset sets the function that wipes the daemon's persisted state
// on delete.
func WithStateReset(reset func() error) Option {
	return func(m *Manager) {
		m.resetState = reset
	}
}

// WithHint sets the guidance shown when the supervisor is unavailable.
func WithHint(hint string) Option {
	return func(m *Manager) {
		m.hint = hint
	}
}

// Manager applies lifecycle operations idempotently against a Supervisor.
type Manager struct {
	sup        Supervisor
	resetState func() error
	hint       string
	logger     *slog.Logger
}

// NewManager creates a Manager for the given supervisor.
func NewManager(sup Supervisor, opts ...Option) *Manager {
	m := &Manager{
		sup:        sup,
		resetState: func() error { return nil },
		logger:     slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Do runs the given operation.
func (m *Manager) Do(ctx context.Context, op intent.NotifierOp) (Result, error) {
	switch op {
	case intent.NotifierStart:
		return m.Start(ctx)
	case intent.NotifierStop:
		return m.Stop(ctx)
	case intent.NotifierRestart:
		return m.Restart(ctx)
	case intent.NotifierDelete:
		return m.Delete(ctx)
	default:
		return Result{}, fmt.Errorf("unsupported notifier operation %q", op)
	}
}

// Start registers the daemon when needed and starts it. A running daemon is
// left alone.
func (m *Manager) Start(ctx context.Context) (Result, error) {
	before, err := m.query(ctx, string(intent.NotifierStart))
	if err != nil {
		return Result{}, err
	}

	res := Result{Op: intent.NotifierStart, Before: before}

	if before == StateRunning {
		res.After = StateRunning
		m.logger.Debug("notifier already running", "supervisor", m.sup.Name())

		return res, nil
	}

	after, err := m.start(ctx, intent.NotifierStart, before)
	if err != nil {
		return res, err
	}

	res.After = after
	res.Changed = true

	return res, nil
}

// Stop stops a running daemon. Stopping a daemon that is not running is a
// no-op.
func (m *Manager) Stop(ctx context.Context) (Result, error) {
	before, err := m.query(ctx, string(intent.NotifierStop))
	if err != nil {
		return Result{}, err
	}

	res := Result{Op: intent.NotifierStop, Before: before, After: before}

	switch before {
	case StateNotRegistered, StateStopped:
		return res, nil
	case StateRunning:
		after, err := m.stop(ctx, intent.NotifierStop)
		if err != nil {
			return res, err
		}

		res.After = after
		res.Changed = true

		return res, nil
	default:
		return res, &Error{Op: string(intent.NotifierStop), State: before}
	}
}

// Restart stops a running daemon and starts it again. When the daemon is
// not running it behaves like Start.
func (m *Manager) Restart(ctx context.Context) (Result, error) {
	before, err := m.query(ctx, string(intent.NotifierRestart))
	if err != nil {
		return Result{}, err
	}

	res := Result{Op: intent.NotifierRestart, Before: before}
	current := before

	if before == StateRunning {
		current, err = m.stop(ctx, intent.NotifierRestart)
		if err != nil {
			return res, err
		}
	}

	after, err := m.start(ctx, intent.NotifierRestart, current)
	if err != nil {
		return res, err
	}

	res.After = after
	res.Changed = true

	return res, nil
}

// Delete stops the daemon, removes its registration and wipes its state so
// the next start begins fresh.
func (m *Manager) Delete(ctx context.Context) (Result, error) {
	op := string(intent.NotifierDelete)

	before, err := m.query(ctx, op)
	if err != nil {
		return Result{}, err
	}

	res := Result{Op: intent.NotifierDelete, Before: before, After: before}

	switch before {
	case StateRunning:
		if err := m.sup.Stop(ctx); err != nil {
			return res, &Error{Op: op, State: before, Err: err}
		}
	case StateUnknown:
		// best effort, the supervisor could not tell us whether it runs
		_ = m.sup.Stop(ctx)
	}

	// an unknown state may still hold a registration
	if before.Registered() || before == StateUnknown {
		if err := m.sup.Deregister(ctx); err != nil {
			return res, &Error{Op: op, State: before, Err: err}
		}

		res.Changed = true
	}

	if err := m.resetState(); err != nil {
		return res, &Error{Op: op, State: before, Err: fmt.Errorf("reset state: %w", err)}
	}

	after, err := m.query(ctx, op)
	if err != nil {
		return res, err
	}

	res.After = after

	if after != StateNotRegistered {
		return res, &Error{Op: op, State: after}
	}

	m.logger.Info("notifier deleted", "supervisor", m.sup.Name(), "before", before.String())

	return res, nil
}

// start brings a NotRegistered or Stopped daemon to Running.
func (m *Manager) start(ctx context.Context, op intent.NotifierOp, current State) (State, error) {
	switch current {
	case StateNotRegistered:
		if err := m.sup.Register(ctx); err != nil {
			return current, &Error{Op: string(op), State: current, Err: fmt.Errorf("register: %w", err)}
		}

		m.logger.Info("notifier registered", "supervisor", m.sup.Name())
	case StateStopped:
	default:
		return current, &Error{Op: string(op), State: current}
	}

	if err := m.sup.Start(ctx); err != nil {
		return current, &Error{Op: string(op), State: current, Err: err}
	}

	after, err := m.query(ctx, string(op))
	if err != nil {
		return current, err
	}

	if after != StateRunning {
		return after, &Error{Op: string(op), State: after}
	}

	m.logger.Info("notifier running", "supervisor", m.sup.Name(), "op", string(op))

	return after, nil
}

// stop brings a Running daemon to Stopped.
func (m *Manager) stop(ctx context.Context, op intent.NotifierOp) (State, error) {
	if err := m.sup.Stop(ctx); err != nil {
		return StateRunning, &Error{Op: string(op), State: StateRunning, Err: err}
	}

	after, err := m.query(ctx, string(op))
	if err != nil {
		return StateRunning, err
	}

	if after != StateStopped {
		return after, &Error{Op: string(op), State: after}
	}

	m.logger.Info("notifier stopped", "supervisor", m.sup.Name(), "op", string(op))

	return after, nil
}

func (m *Manager) query(ctx context.Context, op string) (State, error) {
	state, err := m.sup.State(ctx)
	if err == nil {
		return state, nil
	}

	if errors.Is(err, ErrUnavailable) {
		return StateUnknown, &UnavailableError{Supervisor: m.sup.Name(), Hint: m.hint, Err: err}
	}

	return StateUnknown, &Error{Op: op, State: StateUnknown, Err: err}
}
