// Package daemon is the notifier process: it polls the Fanfou timelines of
// the active account and raises a notification for every new status.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"github.com/inovacc/nofan/internal/fanfou"
	"github.com/inovacc/nofan/internal/model"
	"github.com/inovacc/nofan/internal/notify"
	"github.com/inovacc/nofan/internal/store"
)

// Feeds polled by the daemon.
const (
	FeedMentions = "mentions"
	FeedHome     = "home"
)

const (
	defaultMaxPerPoll = 5
	retryAttempts     = 4
	retryDelay        = 2 * time.Second
	retryMaxDelay     = 30 * time.Second
	retryMaxJitter    = time.Second
)

// Source fetches timelines for the polled account.
type Source interface {
	Mentions(ctx context.Context, q model.TimelineQuery) ([]model.Status, error)
	HomeTimeline(ctx context.Context, q model.TimelineQuery) ([]model.Status, error)
}

// Config controls one daemon instance.
type Config struct {
	// Account is the id of the polled account, used to key stored state
	Account string

	Interval time.Duration
	Feeds    []string

	// MaxPerPoll caps individual notifications per feed and poll; the
	// remainder is announced in one summary
	MaxPerPoll int
}

// FromOptions derives the daemon config for the active account.
func FromOptions(cfg *model.Config) (Config, error) {
	acc, err := cfg.ActiveAccount()
	if err != nil {
		return Config{}, fmt.Errorf("notifier needs a logged-in account: %w", err)
	}

	var feeds []string
	if cfg.Notifier.Mentions {
		feeds = append(feeds, FeedMentions)
	}

	if cfg.Notifier.Home {
		feeds = append(feeds, FeedHome)
	}

	if len(feeds) == 0 {
		return Config{}, errors.New("notifier has no feeds enabled")
	}

	interval := max(cfg.Notifier.Interval, model.MinNotifierInterval)

	return Config{
		Account:    acc.ID,
		Interval:   time.Duration(interval) * time.Second,
		Feeds:      feeds,
		MaxPerPoll: defaultMaxPerPoll,
	}, nil
}

// Daemon polls and notifies until its context is cancelled.
type Daemon struct {
	src    Source
	state  store.Store
	sink   notify.Sender
	cfg    Config
	logger *slog.Logger

	retryDelay  time.Duration
	retryJitter time.Duration
	now         func() time.Time
}

// New creates a daemon.
func New(src Source, state store.Store, sink notify.Sender, cfg Config, logger *slog.Logger) *Daemon {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if cfg.MaxPerPoll <= 0 {
		cfg.MaxPerPoll = defaultMaxPerPoll
	}

	return &Daemon{
		src:         src,
		state:       state,
		sink:        sink,
		cfg:         cfg,
		logger:      logger,
		retryDelay:  retryDelay,
		retryJitter: retryMaxJitter,
		now:         time.Now,
	}
}

// Run polls immediately and then on every interval. It returns nil when
// ctx is cancelled and an error when the account's token is rejected.
func (d *Daemon) Run(ctx context.Context) error {
	meta, err := d.state.Meta()
	if err != nil {
		return fmt.Errorf("read notifier state: %w", err)
	}

	d.logger.Info("notifier started",
		"instance", meta.InstanceID,
		"account", d.cfg.Account,
		"feeds", d.cfg.Feeds,
		"interval", d.cfg.Interval.String(),
	)

	ticker := time.NewTicker(d.cfg.Interval)
	defer ticker.Stop()

	for {
		if _, err := d.Poll(ctx); err != nil {
			if ctx.Err() != nil {
				return nil
			}

			if fanfou.IsAuth(err) {
				d.logger.Error("token rejected, notifier exiting", "error", err)

				_ = d.sink.Send(context.WithoutCancel(ctx), notify.NewEvent(notify.EventError).
					WithTitle("nofan notifier stopped").
					WithBody("Login expired, run nofan login again").
					WithAccount(d.cfg.Account))

				return err
			}

			d.logger.Warn("poll failed", "error", err)
		}

		select {
		case <-ctx.Done():
			d.logger.Info("notifier stopping")
			return nil
		case <-ticker.C:
		}
	}
}

// Poll checks every feed once and returns the number of notifications
// raised.
func (d *Daemon) Poll(ctx context.Context) (int, error) {
	total := 0

	var errs []error

	for _, feed := range d.cfg.Feeds {
		n, err := d.pollFeed(ctx, feed)
		total += n

		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", feed, err))

			if fanfou.IsAuth(err) {
				break
			}
		}
	}

	if err := d.state.RecordPoll(d.now(), total); err != nil {
		errs = append(errs, fmt.Errorf("record poll: %w", err))
	}

	return total, errors.Join(errs...)
}

func (d *Daemon) pollFeed(ctx context.Context, feed string) (int, error) {
	last, err := d.state.LastSeen(d.cfg.Account, feed)

	baseline := errors.Is(err, store.ErrNotFound)
	if err != nil && !baseline {
		return 0, err
	}

	q := model.TimelineQuery{Count: model.MaxTimelineCount, SinceID: last}
	if baseline {
		q = model.TimelineQuery{Count: 1}
	}

	statuses, err := d.fetch(ctx, feed, q)
	if err != nil {
		return 0, err
	}

	if baseline {
		// an empty id marks a feed that had nothing yet, so every later
		// status counts as new
		newest := ""
		if len(statuses) > 0 {
			newest = statuses[0].ID
		}

		if err := d.state.SetLastSeen(d.cfg.Account, feed, newest); err != nil {
			return 0, fmt.Errorf("save last seen: %w", err)
		}

		d.logger.Info("baseline recorded", "feed", feed, "id", newest)

		return 0, nil
	}

	if len(statuses) == 0 {
		return 0, nil
	}

	// the API returns newest first
	if err := d.state.SetLastSeen(d.cfg.Account, feed, statuses[0].ID); err != nil {
		return 0, fmt.Errorf("save last seen: %w", err)
	}

	fresh := make([]model.Status, 0, len(statuses))
	for _, s := range statuses {
		if s.ID == last || (feed == FeedHome && s.User.ID == d.cfg.Account) {
			continue
		}

		fresh = append(fresh, s)
	}

	slices.Reverse(fresh)

	return d.notify(ctx, feed, fresh), nil
}

func (d *Daemon) fetch(ctx context.Context, feed string, q model.TimelineQuery) ([]model.Status, error) {
	var (
		statuses []model.Status
		lastErr  error
	)

	err := retry.Do(
		func() error {
			var err error

			switch feed {
			case FeedMentions:
				statuses, err = d.src.Mentions(ctx, q)
			case FeedHome:
				statuses, err = d.src.HomeTimeline(ctx, q)
			default:
				return retry.Unrecoverable(fmt.Errorf("unknown feed %q", feed))
			}

			lastErr = err

			if fanfou.IsAuth(err) {
				return retry.Unrecoverable(err)
			}

			return err
		},
		retry.Attempts(retryAttempts),
		retry.Delay(d.retryDelay),
		retry.MaxDelay(retryMaxDelay),
		retry.MaxJitter(d.retryJitter),
		retry.Context(ctx),
		retry.OnRetry(func(n uint, err error) {
			d.logger.Info("retrying fetch after error", "feed", feed, "attempt", n, "error", err)
		}),
	)
	if err != nil {
		if lastErr != nil {
			return nil, lastErr
		}

		return nil, err
	}

	return statuses, nil
}

// notify sends fresh statuses oldest first and returns how many
// notifications were raised.
func (d *Daemon) notify(ctx context.Context, feed string, fresh []model.Status) int {
	if len(fresh) == 0 {
		return 0
	}

	eventType := notify.EventHome
	if feed == FeedMentions {
		eventType = notify.EventMention
	}

	sent := 0
	shown := fresh

	if len(fresh) > d.cfg.MaxPerPoll {
		shown = fresh[:d.cfg.MaxPerPoll]
	}

	for _, s := range shown {
		ev := notify.NewEvent(eventType).
			WithTitle(s.User.Name).
			WithBody(s.Text).
			WithStatus(s.ID).
			WithAccount(d.cfg.Account).
			WithTimestamp(s.CreatedAt.Time)

		if err := d.sink.Send(ctx, ev); err != nil {
			d.logger.Warn("notification failed", "feed", feed, "id", s.ID, "error", err)
			continue
		}

		sent++
	}

	if rest := len(fresh) - len(shown); rest > 0 {
		ev := notify.NewEvent(notify.EventSummary).
			WithTitle("nofan").
			WithBody(fmt.Sprintf("%d more new %s", rest, feedNoun(feed, rest))).
			WithAccount(d.cfg.Account).
			WithExtra("feed", feed)

		if err := d.sink.Send(ctx, ev); err != nil {
			d.logger.Warn("notification failed", "feed", feed, "error", err)
		} else {
			sent++
		}
	}

	d.logger.Info("poll notified", "feed", feed, "new", len(fresh), "sent", sent)

	return sent
}

func feedNoun(feed string, n int) string {
	noun := "status"
	if feed == FeedMentions {
		noun = "mention"
	}

	if n == 1 {
		return noun
	}

	if noun == "status" {
		return "statuses"
	}

	return noun + "s"
}
