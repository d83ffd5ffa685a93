package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/inovacc/nofan/internal/cli"
	"github.com/inovacc/nofan/internal/config"
	"github.com/inovacc/nofan/internal/core"
	"github.com/inovacc/nofan/internal/fanfou"
	"github.com/inovacc/nofan/internal/logging"
	"github.com/inovacc/nofan/internal/model"
	"github.com/inovacc/nofan/internal/notifier"
	"github.com/inovacc/nofan/internal/notifier/daemon"
	"github.com/inovacc/nofan/internal/notify"
	"github.com/inovacc/nofan/internal/params"
	"github.com/inovacc/nofan/internal/store"
)

const serviceHint = "Run with NOFAN_SUPERVISOR=detached to manage the notifier without a service manager."

// newApp wires the production collaborators.
func newApp(stdout, stderr io.Writer) (*core.App, error) {
	env, err := params.Load()
	if err != nil {
		return nil, err
	}

	cfgPath, err := env.ConfigPath()
	if err != nil {
		return nil, err
	}

	logger := logging.New(stderr, logging.ParseLevel(env.LogLevel, slog.LevelWarn), env.LogFormat)

	return &core.App{
		Store:    config.NewStore(cfgPath),
		API:      apiFactory{opts: apiOptions(env, logger)},
		Manager:  notifierFactory(env, logger),
		Daemon:   daemonRunner(env),
		Prompt:   cli.NewTerminalPrompter(),
		Indicate: cli.SpinnerFactory(stderr),
		Out:      stdout,
		Logger:   logger,
	}, nil
}

func apiOptions(env params.Env, logger *slog.Logger) []fanfou.Option {
	return []fanfou.Option{
		fanfou.WithBaseURL(env.APIURL),
		fanfou.WithOAuthURL(env.OAuthURL),
		fanfou.WithLogger(logger),
	}
}

// apiFactory adapts the fanfou package to core.APIFactory.
type apiFactory struct {
	opts []fanfou.Option
}

func (f apiFactory) NewClient(consumer model.Consumer, token model.OAuthToken) core.APIClient {
	return fanfou.NewClient(fanfou.Consumer(consumer), token, f.opts...)
}

func (f apiFactory) NewAuthenticator(consumer model.Consumer) core.Authenticator {
	return fanfou.NewAuthenticator(fanfou.Consumer(consumer), f.opts...)
}

// serviceConfig describes how supervisors launch "nofan notifier run".
func serviceConfig(env params.Env) (notifier.ServiceConfig, error) {
	exe, err := os.Executable()
	if err != nil {
		return notifier.ServiceConfig{}, fmt.Errorf("failed to locate nofan executable: %w", err)
	}

	vars := map[string]string{}
	if env.Home != "" {
		vars["NOFAN_HOME"] = env.Home
	}

	if env.LogLevel != "" {
		vars["NOFAN_LOG_LEVEL"] = env.LogLevel
	}

	return notifier.ServiceConfig{
		Executable: exe,
		Arguments:  []string{"notifier", "run"},
		EnvVars:    vars,
	}, nil
}

// supervisorName picks the supervisor, NOFAN_SUPERVISOR taking precedence
// over the config.
func supervisorName(env params.Env, cfg *model.Config) string {
	if env.Supervisor != "" {
		return env.Supervisor
	}

	return cfg.Notifier.Supervisor
}

func newSupervisor(env params.Env, cfg *model.Config) (notifier.Supervisor, string, error) {
	svc, err := serviceConfig(env)
	if err != nil {
		return nil, "", err
	}

	switch name := supervisorName(env, cfg); name {
	case model.SupervisorService:
		return notifier.NewServiceSupervisor(svc), serviceHint, nil

	case model.SupervisorDetached:
		regPath, err := env.RegistrationPath()
		if err != nil {
			return nil, "", err
		}

		logPath, err := env.LogPath()
		if err != nil {
			return nil, "", err
		}

		return notifier.NewDetachedSupervisor(regPath, logPath, svc), "", nil

	default:
		return nil, "", core.Usagef("unknown notifier supervisor %q, use %q or %q",
			name, model.SupervisorService, model.SupervisorDetached)
	}
}

func notifierFactory(env params.Env, logger *slog.Logger) core.NotifierFactory {
	return func(cfg *model.Config) (core.NotifierManager, error) {
		sup, hint, err := newSupervisor(env, cfg)
		if err != nil {
			return nil, err
		}

		statePath, err := env.StatePath()
		if err != nil {
			return nil, err
		}

		return notifier.NewManager(sup,
			notifier.WithLogger(logger),
			notifier.WithHint(hint),
			notifier.WithStateReset(func() error {
				return store.Reset(statePath)
			}),
		), nil
	}
}

// daemonRunner runs the notifier in this process, logging to the notifier
// log file.
func daemonRunner(env params.Env) core.DaemonRunner {
	return func(ctx context.Context) error {
		logPath, err := env.LogPath()
		if err != nil {
			return err
		}

		logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("failed to open notifier log: %w", err)
		}

		defer func() {
			_ = logFile.Close()
		}()

		logger := logging.New(logFile, logging.ParseLevel(env.LogLevel, slog.LevelInfo), env.LogFormat)

		svc, err := serviceConfig(env)
		if err != nil {
			return err
		}

		err = notifier.RunService(ctx, svc, notifier.RunnerFunc(func(ctx context.Context) error {
			return runDaemon(ctx, env, logger)
		}), logger)
		if err != nil {
			logger.Error("notifier exited", "error", err)
		}

		return err
	}
}

func runDaemon(ctx context.Context, env params.Env, logger *slog.Logger) error {
	cfgPath, err := env.ConfigPath()
	if err != nil {
		return err
	}

	cfg, err := config.NewStore(cfgPath).Load()
	if err != nil {
		return err
	}

	if !cfg.HasConsumer() {
		return core.ErrNoConsumer
	}

	dcfg, err := daemon.FromOptions(cfg)
	if err != nil {
		return err
	}

	acc, err := cfg.ActiveAccount()
	if err != nil {
		return core.ErrNotLoggedIn
	}

	statePath, err := env.StatePath()
	if err != nil {
		return err
	}

	state, err := store.NewBolt(statePath)
	if err != nil {
		return err
	}

	defer func() {
		_ = state.Close()
	}()

	sink := notify.NewDispatcher(logger, notify.NewLogSender(logger), notify.NewDesktopSender())

	client := fanfou.NewClient(fanfou.Consumer(cfg.Consumer()), acc.Token, apiOptions(env, logger)...)

	return daemon.New(client, state, sink, dcfg, logger).Run(ctx)
}
