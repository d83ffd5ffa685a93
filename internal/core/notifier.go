package core

import (
	"context"
	"errors"

	"github.com/inovacc/nofan/internal/intent"
)

// Notifier runs one lifecycle operation against the notifier daemon.
func (a *App) Notifier(ctx context.Context, in intent.Notifier) error {
	ind := a.Indicate("Setting Notifier")
	defer ind.Stop()

	cfg, err := a.Store.LoadOrDefault()
	if err != nil {
		return fail(ind, err)
	}

	if in.Op == intent.NotifierStart || in.Op == intent.NotifierRestart {
		if _, err := cfg.ActiveAccount(); err != nil {
			return fail(ind, ErrNotLoggedIn)
		}
	}

	mgr, err := a.Manager(cfg)
	if err != nil {
		return fail(ind, err)
	}

	res, err := mgr.Do(ctx, in.Op)
	if err != nil {
		return fail(ind, err)
	}

	a.logger().Info("notifier operation done",
		"op", string(res.Op),
		"before", res.Before.String(),
		"after", res.After.String(),
		"changed", res.Changed,
	)

	ind.Succeed(res.Message())

	return nil
}

// RunNotifier runs the daemon in the current process until ctx is done.
func (a *App) RunNotifier(ctx context.Context) error {
	if a.Daemon == nil {
		return errors.New("notifier daemon is not available in this build")
	}

	return a.Daemon(ctx)
}
