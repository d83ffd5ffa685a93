package core

import (
	"context"
	"io"
	"log/slog"

	"github.com/inovacc/nofan/internal/intent"
	"github.com/inovacc/nofan/internal/model"
	"github.com/inovacc/nofan/internal/notifier"
)

// ConfigStore persists the client config. Every mutating method saves
// before returning.
type ConfigStore interface {
	Path() string
	Load() (*model.Config, error)
	LoadOrDefault() (*model.Config, error)
	Update(fn func(cfg *model.Config) error) (*model.Config, error)
	SetConsumerCredentials(key, secret string) (*model.Config, error)
	AddAccount(acc model.Account) (*model.Config, error)
	RemoveAccount(id string) (*model.Config, error)
	SetActive(id string) (*model.Config, error)
}

// APIClient is the Fanfou API as seen by the handlers.
type APIClient interface {
	VerifyCredentials(ctx context.Context) (model.User, error)
	PostStatus(ctx context.Context, text string) (model.Status, error)
	UploadPhoto(ctx context.Context, path, text string) (model.Status, error)
	HomeTimeline(ctx context.Context, q model.TimelineQuery) ([]model.Status, error)
	Mentions(ctx context.Context, q model.TimelineQuery) ([]model.Status, error)
	UserTimeline(ctx context.Context, q model.TimelineQuery) ([]model.Status, error)
	PublicTimeline(ctx context.Context, q model.TimelineQuery) ([]model.Status, error)
	DeleteLastStatus(ctx context.Context) (model.Status, error)
}

// Authenticator exchanges a username and password for an access token.
type Authenticator interface {
	AccessToken(ctx context.Context, username, password string) (model.OAuthToken, error)
}

// APIFactory builds API collaborators from stored credentials.
type APIFactory interface {
	NewClient(consumer model.Consumer, token model.OAuthToken) APIClient
	NewAuthenticator(consumer model.Consumer) Authenticator
}

// NotifierManager runs notifier lifecycle operations.
type NotifierManager interface {
	Do(ctx context.Context, op intent.NotifierOp) (notifier.Result, error)
}

// NotifierFactory builds the manager for the configured supervisor.
type NotifierFactory func(cfg *model.Config) (NotifierManager, error)

// DaemonRunner runs the notifier daemon in the foreground.
type DaemonRunner func(ctx context.Context) error

// Indicator is the progress guard owned by a handler. Exactly one of
// Succeed, Fail or Stop takes effect; later calls are no-ops.
type Indicator interface {
	Succeed(msg string)
	Fail(msg string)
	Stop()
}

// IndicatorFactory starts an indicator showing text.
type IndicatorFactory func(text string) Indicator

// Field is one input of a multi-field form.
type Field struct {
	Label       string
	Value       string
	Placeholder string
	Secret      bool
}

// Prompter asks the user for input. Cancelled prompts return ErrCancelled.
type Prompter interface {
	// ChooseAccount returns the id of the chosen account.
	ChooseAccount(accounts []model.Account, active int) (string, error)
	Input(label, def string) (string, error)
	Password(label string) (string, error)

	// Form edits all fields at once and returns their values in order.
	Form(title string, fields []Field) ([]string, error)
}

// App bundles the collaborators every handler needs.
type App struct {
	Store    ConfigStore
	API      APIFactory
	Manager  NotifierFactory
	Daemon   DaemonRunner
	Prompt   Prompter
	Indicate IndicatorFactory
	Out      io.Writer
	Logger   *slog.Logger
}

func (a *App) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}

	return a.Logger
}

// fail ends ind with err's message and marks err as reported.
func fail(ind Indicator, err error) error {
	ind.Fail(err.Error())
	return Reported(err)
}
