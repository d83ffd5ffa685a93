package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/inovacc/nofan/internal/intent"
	"github.com/inovacc/nofan/internal/model"
	"github.com/inovacc/nofan/internal/render"
)

// Config sets the consumer credentials, or prints the whole config with
// secrets masked when ShowAll is set.
func (a *App) Config(_ context.Context, in intent.Config) error {
	if in.ShowAll {
		cfg, err := a.Store.LoadOrDefault()
		if err != nil {
			return err
		}

		return render.ConfigTable(a.Out, cfg)
	}

	if _, err := a.setupConsumer(in.Key, in.Secret); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(a.Out, "Config saved to %s\n", a.Store.Path())

	return nil
}

// setupConsumer stores the consumer key and secret, prompting for the
// missing ones with the current values as defaults.
func (a *App) setupConsumer(key, secret string) (*model.Config, error) {
	key, secret = strings.TrimSpace(key), strings.TrimSpace(secret)

	if key == "" || secret == "" {
		cfg, err := a.Store.LoadOrDefault()
		if err != nil {
			return nil, err
		}

		if key == "" {
			key = cfg.ConsumerKey
		}

		if secret == "" {
			secret = cfg.ConsumerSecret
		}

		values, err := a.Prompt.Form("Consumer credentials", []Field{
			{Label: "Consumer key", Value: key, Placeholder: "from fanfou.com/apps"},
			{Label: "Consumer secret", Value: secret, Secret: true},
		})
		if err != nil {
			return nil, err
		}

		key, secret = strings.TrimSpace(values[0]), strings.TrimSpace(values[1])
	}

	if key == "" || secret == "" {
		return nil, &UsageError{Message: "consumer key and secret are required", Err: ErrNoConsumer}
	}

	return a.Store.SetConsumerCredentials(key, secret)
}

// Colors edits the color scheme. Every token is validated before anything
// is saved.
func (a *App) Colors(_ context.Context) error {
	cfg, err := a.Store.LoadOrDefault()
	if err != nil {
		return err
	}

	names := model.StyleNames()
	fields := make([]Field, len(names))

	for i, name := range names {
		fields[i] = Field{Label: name, Value: cfg.ColorScheme[name], Placeholder: "e.g. cyan.bold"}
	}

	values, err := a.Prompt.Form("Color scheme", fields)
	if err != nil {
		return err
	}

	scheme := cfg.ColorScheme.Clone()

	for i, name := range names {
		token := strings.TrimSpace(values[i])
		if err := render.ValidateStyle(token); err != nil {
			return &UsageError{Message: fmt.Sprintf("invalid style for %s: %v", name, err), Err: err}
		}

		scheme[name] = token
	}

	if _, err := a.Store.Update(func(c *model.Config) error {
		c.ColorScheme = scheme
		return nil
	}); err != nil {
		return err
	}

	_, _ = fmt.Fprintln(a.Out, "Color scheme saved")

	return nil
}
