package cmd

import (
	"context"
	"fmt"

	"github.com/inovacc/nofan/internal/application"
	"github.com/inovacc/nofan/internal/core"
	"github.com/inovacc/nofan/internal/intent"
)

// Dispatch runs the handler for in.
func Dispatch(ctx context.Context, app *core.App, in intent.Intent) error {
	if app.Logger != nil {
		app.Logger.Debug("dispatching command", "command", in.Name())
	}

	switch in := in.(type) {
	case intent.Config:
		return app.Config(ctx, in)
	case intent.Colors:
		return app.Colors(ctx)
	case intent.Login:
		return app.Login(ctx, in)
	case intent.Logout:
		return app.Logout(ctx)
	case intent.Switch:
		return app.Switch(ctx, in)
	case intent.Timeline:
		return app.Timeline(ctx, in)
	case intent.Undo:
		return app.Undo(ctx)
	case intent.Notifier:
		return app.Notifier(ctx, in)
	case intent.NotifierRun:
		return app.RunNotifier(ctx)
	case intent.Post:
		return app.Post(ctx, in)
	case intent.Version:
		_, err := fmt.Fprintf(app.Out, "%s version %s\n", application.AppName, application.Version)
		return err
	case intent.Help:
		_, err := fmt.Fprint(app.Out, in.Text)
		return err
	default:
		return fmt.Errorf("unhandled command %q", in.Name())
	}
}
