package core

import (
	"context"
	"fmt"
	"os"

	"github.com/inovacc/nofan/internal/intent"
	"github.com/inovacc/nofan/internal/model"
	"github.com/inovacc/nofan/internal/render"
)

// session is the active account with a client for it.
type session struct {
	cfg     *model.Config
	account *model.Account
	client  APIClient
}

func (a *App) session() (*session, error) {
	cfg, err := a.loadAccounts()
	if err != nil {
		return nil, err
	}

	if !cfg.HasConsumer() {
		return nil, ErrNoConsumer
	}

	acc, err := cfg.ActiveAccount()
	if err != nil {
		return nil, ErrNotLoggedIn
	}

	return &session{
		cfg:     cfg,
		account: acc,
		client:  a.API.NewClient(cfg.Consumer(), acc.Token),
	}, nil
}

// DisplayOptions merges the command-line display flags with the configured
// defaults. --time turns the time tag on; --no-photo-tag turns the photo
// tag off.
func DisplayOptions(flags intent.Display, cfg model.DisplayOptions) render.Options {
	return render.Options{
		TimeAgo:  flags.TimeAgo || cfg.ShowTimeAgo,
		PhotoTag: !flags.NoPhotoTag && cfg.ShowPhotoTag,
	}
}

// Timeline fetches and prints one timeline.
func (a *App) Timeline(ctx context.Context, in intent.Timeline) error {
	ind := a.Indicate("Fetching")
	defer ind.Stop()

	s, err := a.session()
	if err != nil {
		return fail(ind, err)
	}

	q := model.TimelineQuery{Count: in.Count}

	var statuses []model.Status

	switch in.Kind {
	case intent.Home:
		statuses, err = s.client.HomeTimeline(ctx, q)
	case intent.Mentions:
		statuses, err = s.client.Mentions(ctx, q)
	case intent.Me:
		statuses, err = s.client.UserTimeline(ctx, q)
	case intent.Public:
		statuses, err = s.client.PublicTimeline(ctx, q)
	default:
		err = fmt.Errorf("unknown timeline %s", in.Kind)
	}

	if err != nil {
		return fail(ind, err)
	}

	ind.Stop()

	a.logger().Debug("timeline fetched", "kind", in.Kind.String(), "count", len(statuses))

	opts := DisplayOptions(in.Display, s.cfg.Display)
	opts.Me = s.account.Username

	return render.NewPrinter(a.Out, s.cfg.ColorScheme, opts).Statuses(statuses)
}

// Post publishes a status, uploading the photo when one is attached.
func (a *App) Post(ctx context.Context, in intent.Post) error {
	ind := a.Indicate("Sending")
	defer ind.Stop()

	if in.HasPhoto() {
		if _, err := os.Stat(in.PhotoPath); err != nil {
			return fail(ind, fmt.Errorf("photo %s: %w", in.PhotoPath, err))
		}
	}

	s, err := a.session()
	if err != nil {
		return fail(ind, err)
	}

	var status model.Status

	if in.HasPhoto() {
		status, err = s.client.UploadPhoto(ctx, in.PhotoPath, in.Text)
	} else {
		status, err = s.client.PostStatus(ctx, in.Text)
	}

	if err != nil {
		return fail(ind, err)
	}

	ind.Succeed("Sent!")

	return a.printStatus(s, &status)
}

// Undo deletes the latest status of the active account.
func (a *App) Undo(ctx context.Context) error {
	ind := a.Indicate("Deleting")
	defer ind.Stop()

	s, err := a.session()
	if err != nil {
		return fail(ind, err)
	}

	status, err := s.client.DeleteLastStatus(ctx)
	if err != nil {
		return fail(ind, err)
	}

	ind.Succeed("Deleted!")

	return a.printStatus(s, &status)
}

func (a *App) printStatus(s *session, status *model.Status) error {
	opts := DisplayOptions(intent.Display{}, s.cfg.Display)
	opts.Me = s.account.Username

	return render.NewPrinter(a.Out, s.cfg.ColorScheme, opts).Status(status)
}
