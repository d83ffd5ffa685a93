package notifier

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/gofrs/flock"
	"github.com/inovacc/nofan/internal/application"
	"github.com/inovacc/nofan/internal/encoding"
	"github.com/inovacc/nofan/internal/process"
)

const (
	defaultStopTimeout = 5 * time.Second
	stopPollInterval   = 100 * time.Millisecond
)

// Registration is the detached supervisor's record of the daemon.
type Registration struct {
	Executable   string    `json:"executable"`
	Arguments    []string  `json:"arguments"`
	RegisteredAt time.Time `json:"registered_at"`

	// PID is set while a launched daemon may be running
	PID       int       `json:"pid,omitempty"`
	StartedAt time.Time `json:"started_at,omitzero"`
}

// Launcher starts the daemon process in the background.
type Launcher interface {
	Launch(cfg ServiceConfig, logPath string) (pid int, err error)
}

// DetachedOption configures a DetachedSupervisor.
type DetachedOption func(*DetachedSupervisor)

// WithLauncher replaces the process launcher.
func WithLauncher(l Launcher) DetachedOption {
	return func(d *DetachedSupervisor) {
		d.launcher = l
	}
}

// WithProcessControl replaces the liveness check and the terminate function.
func WithProcessControl(alive func(pid int) bool, terminate func(pid int, force bool) error) DetachedOption {
	return func(d *DetachedSupervisor) {
		d.alive = alive
		d.terminate = terminate
	}
}

// WithStopTimeout sets how long Stop waits before killing the daemon.
func WithStopTimeout(timeout time.Duration) DetachedOption {
	return func(d *DetachedSupervisor) {
		d.stopTimeout = timeout
	}
}

// DetachedSupervisor runs the daemon as a background child process and
// tracks it through a registration file. It works wherever no service
// manager is available.
type DetachedSupervisor struct {
	path    string
	logPath string
	cfg     ServiceConfig
	lock    *flock.Flock

	launcher    Launcher
	alive       func(pid int) bool
	terminate   func(pid int, force bool) error
	stopTimeout time.Duration
}

// NewDetachedSupervisor creates a supervisor that records the daemon in
// the registration file at path and sends its output to logPath.
func NewDetachedSupervisor(path, logPath string, cfg ServiceConfig, opts ...DetachedOption) *DetachedSupervisor {
	d := &DetachedSupervisor{
		path:     path,
		logPath:  logPath,
		cfg:      cfg,
		lock:     flock.New(path + ".lock"),
		launcher: execLauncher{},
		alive: func(pid int) bool {
			return process.Alive(pid, application.ExecutableName())
		},
		terminate:   terminateProcess,
		stopTimeout: defaultStopTimeout,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (d *DetachedSupervisor) Name() string {
	return "detached"
}

func (d *DetachedSupervisor) Register(_ context.Context) error {
	return d.withLock(func() error {
		reg, err := d.load()
		if err != nil {
			return err
		}

		if reg != nil {
			return nil
		}

		return d.save(&Registration{
			Executable:   d.cfg.Executable,
			Arguments:    d.cfg.Arguments,
			RegisteredAt: time.Now().UTC(),
		})
	})
}

func (d *DetachedSupervisor) Deregister(_ context.Context) error {
	return d.withLock(func() error {
		if err := os.Remove(d.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove %s: %w", d.path, err)
		}

		return nil
	})
}

func (d *DetachedSupervisor) Start(_ context.Context) error {
	return d.withLock(func() error {
		reg, err := d.load()
		if err != nil {
			return err
		}

		if reg == nil {
			return ErrNotRegistered
		}

		if d.alive(reg.PID) {
			return nil
		}

		cfg := d.cfg
		cfg.Executable = reg.Executable
		cfg.Arguments = reg.Arguments

		pid, err := d.launcher.Launch(cfg, d.logPath)
		if err != nil {
			return fmt.Errorf("failed to launch notifier: %w", err)
		}

		reg.PID = pid
		reg.StartedAt = time.Now().UTC()

		return d.save(reg)
	})
}

func (d *DetachedSupervisor) Stop(ctx context.Context) error {
	return d.withLock(func() error {
		reg, err := d.load()
		if err != nil {
			return err
		}

		if reg == nil || reg.PID == 0 {
			return nil
		}

		if d.alive(reg.PID) {
			if err := d.stopProcess(ctx, reg.PID); err != nil {
				return err
			}
		}

		reg.PID = 0
		reg.StartedAt = time.Time{}

		return d.save(reg)
	})
}

func (d *DetachedSupervisor) State(_ context.Context) (State, error) {
	var state State

	err := d.withLock(func() error {
		reg, err := d.load()
		if err != nil {
			return err
		}

		switch {
		case reg == nil:
			state = StateNotRegistered
		case reg.PID > 0 && d.alive(reg.PID):
			state = StateRunning
		default:
			state = StateStopped
		}

		return nil
	})
	if err != nil {
		return StateUnknown, err
	}

	return state, nil
}

func (d *DetachedSupervisor) stopProcess(ctx context.Context, pid int) error {
	if err := d.terminate(pid, false); err != nil {
		return fmt.Errorf("failed to signal notifier (pid %d): %w", pid, err)
	}

	deadline := time.NewTimer(d.stopTimeout)
	defer deadline.Stop()

	tick := time.NewTicker(stopPollInterval)
	defer tick.Stop()

	for d.alive(pid) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline.C:
			if err := d.terminate(pid, true); err != nil {
				return fmt.Errorf("failed to kill notifier (pid %d): %w", pid, err)
			}

			return nil
		case <-tick.C:
		}
	}

	return nil
}

func (d *DetachedSupervisor) withLock(fn func() error) error {
	if err := encoding.EnsureParentDir(d.path); err != nil {
		return err
	}

	if err := d.lock.Lock(); err != nil {
		return fmt.Errorf("failed to lock %s: %w", d.path, err)
	}

	defer func() {
		_ = d.lock.Unlock()
	}()

	return fn()
}

func (d *DetachedSupervisor) load() (*Registration, error) {
	return encoding.LoadJSON[Registration](d.path)
}

func (d *DetachedSupervisor) save(reg *Registration) error {
	return encoding.SaveJSON(d.path, reg)
}

// execLauncher starts the daemon with os/exec in its own session.
type execLauncher struct{}

func (execLauncher) Launch(cfg ServiceConfig, logPath string) (int, error) {
	if err := encoding.EnsureParentDir(logPath); err != nil {
		return 0, err
	}

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", logPath, err)
	}
	defer logFile.Close()

	cmd := exec.Command(cfg.Executable, cfg.Arguments...)
	cmd.Stdout = logFile
	cmd.Stderr = logFile
	cmd.Env = os.Environ()

	for k, v := range cfg.EnvVars {
		cmd.Env = append(cmd.Env, k+"="+v)
	}

	setDetached(cmd)

	if err := cmd.Start(); err != nil {
		return 0, err
	}

	pid := cmd.Process.Pid

	if err := cmd.Process.Release(); err != nil {
		return pid, fmt.Errorf("failed to release notifier process: %w", err)
	}

	return pid, nil
}
