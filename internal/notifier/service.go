package notifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/inovacc/nofan/internal/application"
	"github.com/kardianos/service"
)

// Runner is the long-running daemon body hosted by RunService.
type Runner interface {
	Run(ctx context.Context) error
}

// RunnerFunc adapts a function to the Runner interface.
type RunnerFunc func(ctx context.Context) error

func (f RunnerFunc) Run(ctx context.Context) error {
	return f(ctx)
}

// ServiceConfig describes how the OS service manager launches the daemon.
type ServiceConfig struct {
	// Executable is the absolute path of the nofan binary
	Executable string

	// Arguments are passed to Executable, normally "notifier run"
	Arguments []string

	// EnvVars are set in the service environment
	EnvVars map[string]string
}

func (c ServiceConfig) service() *service.Config {
	return &service.Config{
		Name:        application.ServiceName,
		DisplayName: "nofan notifier",
		Description: "Polls fanfou and shows desktop notifications for new statuses",
		Executable:  c.Executable,
		Arguments:   c.Arguments,
		EnvVars:     c.EnvVars,
		Option: service.KeyValue{
			"UserService": true,
		},
	}
}

// ServiceSupervisor manages the daemon as a per-user OS service: a systemd
// user unit, a launchd agent or a Windows service.
type ServiceSupervisor struct {
	cfg ServiceConfig
}

// NewServiceSupervisor creates a supervisor backed by kardianos/service.
func NewServiceSupervisor(cfg ServiceConfig) *ServiceSupervisor {
	return &ServiceSupervisor{cfg: cfg}
}

func (s *ServiceSupervisor) Name() string {
	return "service"
}

func (s *ServiceSupervisor) open() (service.Service, error) {
	svc, err := service.New(noopProgram{}, s.cfg.service())
	if err != nil {
		if errors.Is(err, service.ErrNoServiceSystemDetected) {
			return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
		}

		return nil, fmt.Errorf("failed to create service: %w", err)
	}

	return svc, nil
}

func (s *ServiceSupervisor) Register(_ context.Context) error {
	svc, err := s.open()
	if err != nil {
		return err
	}

	if err := svc.Install(); err != nil {
		return fmt.Errorf("failed to install service: %w", err)
	}

	return nil
}

func (s *ServiceSupervisor) Deregister(_ context.Context) error {
	svc, err := s.open()
	if err != nil {
		return err
	}

	if err := svc.Uninstall(); err != nil {
		return fmt.Errorf("failed to uninstall service: %w", err)
	}

	return nil
}

func (s *ServiceSupervisor) Start(_ context.Context) error {
	svc, err := s.open()
	if err != nil {
		return err
	}

	if err := svc.Start(); err != nil {
		return fmt.Errorf("failed to start service: %w", err)
	}

	return nil
}

func (s *ServiceSupervisor) Stop(_ context.Context) error {
	svc, err := s.open()
	if err != nil {
		return err
	}

	if err := svc.Stop(); err != nil {
		return fmt.Errorf("failed to stop service: %w", err)
	}

	return nil
}

func (s *ServiceSupervisor) State(_ context.Context) (State, error) {
	svc, err := s.open()
	if err != nil {
		return StateUnknown, err
	}

	status, err := svc.Status()
	if err != nil {
		if errors.Is(err, service.ErrNotInstalled) {
			return StateNotRegistered, nil
		}

		return StateUnknown, fmt.Errorf("failed to get service status: %w", err)
	}

	return stateFromStatus(status), nil
}

func stateFromStatus(status service.Status) State {
	switch status {
	case service.StatusRunning:
		return StateRunning
	case service.StatusStopped:
		return StateStopped
	default:
		return StateUnknown
	}
}

// noopProgram satisfies service.Interface for control operations, which
// never call Start or Stop on it.
type noopProgram struct{}

func (noopProgram) Start(service.Service) error { return nil }
func (noopProgram) Stop(service.Service) error  { return nil }

// program hosts a Runner under the service manager.
type program struct {
	parent context.Context
	runner Runner
	logger *slog.Logger

	cancel context.CancelFunc
	done   chan struct{}
	mu     sync.Mutex
	err    error
}

func (p *program) Start(_ service.Service) error {
	// Start should not block. Do the actual work async.
	ctx, cancel := context.WithCancel(p.parent)
	p.cancel = cancel
	p.done = make(chan struct{})

	go func() {
		defer close(p.done)

		if err := p.runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			p.logger.Error("notifier exited", "error", err)

			p.mu.Lock()
			p.err = err
			p.mu.Unlock()
		}
	}()

	return nil
}

func (p *program) Stop(_ service.Service) error {
	if p.cancel == nil {
		return nil
	}

	p.cancel()
	<-p.done

	p.mu.Lock()
	defer p.mu.Unlock()

	return p.err
}

// RunService runs the daemon in the foreground until ctx is done. Under a
// service manager the runner is hosted by kardianos/service and also stops
// when the manager stops the service.
func RunService(ctx context.Context, cfg ServiceConfig, runner Runner, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if service.Interactive() {
		logger.Info("notifier running in foreground", "pid", os.Getpid())

		if err := runner.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}

		return nil
	}

	prg := &program{parent: ctx, runner: runner, logger: logger}

	svc, err := service.New(prg, cfg.service())
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}

	logger.Info("notifier running under service manager", "platform", service.Platform())

	return svc.Run()
}
