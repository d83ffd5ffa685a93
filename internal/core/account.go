package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/inovacc/nofan/internal/intent"
	"github.com/inovacc/nofan/internal/model"
)

// Login exchanges the username and password for an access token, verifies
// it and stores the account as active. Missing credentials are prompted
// for; a missing config file starts the consumer setup first.
func (a *App) Login(ctx context.Context, in intent.Login) error {
	cfg, err := a.Store.Load()
	if err != nil && !IsConfigMissing(err) {
		return err
	}

	if err != nil || !cfg.HasConsumer() {
		a.logger().Debug("consumer credentials missing, running setup", "path", a.Store.Path())

		if cfg, err = a.setupConsumer("", ""); err != nil {
			return err
		}
	}

	username := strings.TrimSpace(in.Username)
	if username == "" {
		if username, err = a.Prompt.Input("Username", ""); err != nil {
			return err
		}
	}

	password := in.Password
	if password == "" {
		if password, err = a.Prompt.Password("Password"); err != nil {
			return err
		}
	}

	if username == "" || password == "" {
		return Usagef("username and password are required")
	}

	ind := a.Indicate("Logging in")
	defer ind.Stop()

	token, err := a.API.NewAuthenticator(cfg.Consumer()).AccessToken(ctx, username, password)
	if err != nil {
		return fail(ind, err)
	}

	user, err := a.API.NewClient(cfg.Consumer(), token).VerifyCredentials(ctx)
	if err != nil {
		return fail(ind, err)
	}

	acc := model.Account{ID: user.ID, Username: user.Name, Token: token}

	if _, err := a.Store.Update(func(c *model.Config) error {
		c.Active = c.AddAccount(acc)
		return nil
	}); err != nil {
		return fail(ind, err)
	}

	a.logger().Info("account logged in", "id", acc.ID)
	ind.Succeed(fmt.Sprintf("Logged in as %s", displayName(acc)))

	return nil
}

// Logout removes the active account. The next account, if any, becomes
// active.
func (a *App) Logout(_ context.Context) error {
	cfg, err := a.loadAccounts()
	if err != nil {
		return err
	}

	acc, err := cfg.ActiveAccount()
	if err != nil {
		return ErrNotLoggedIn
	}

	removed := *acc

	cfg, err = a.Store.RemoveAccount(removed.ID)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(a.Out, "Logged out %s\n", displayName(removed))

	if next, err := cfg.ActiveAccount(); err == nil {
		_, _ = fmt.Fprintf(a.Out, "Active account is now %s\n", displayName(*next))
	}

	return nil
}

// Switch changes the active account, asking interactively when no id is
// given.
func (a *App) Switch(_ context.Context, in intent.Switch) error {
	sw := NewAccountSwitcher(a.Store, a.Prompt)

	var (
		acc *model.Account
		err error
	)

	if in.Interactive() {
		acc, err = sw.SwitchInteractive()
	} else {
		acc, err = sw.SwitchTo(strings.TrimSpace(in.ID))
	}

	if err != nil {
		return err
	}

	if acc == nil {
		return nil
	}

	_, _ = fmt.Fprintf(a.Out, "Switched to %s\n", displayName(*acc))

	return nil
}

// loadAccounts loads the config, treating a first run as not logged in.
func (a *App) loadAccounts() (*model.Config, error) {
	cfg, err := a.Store.Load()
	if IsConfigMissing(err) {
		return nil, ErrNotLoggedIn
	}

	return cfg, err
}

func displayName(acc model.Account) string {
	if acc.Username == "" || acc.Username == acc.ID {
		return acc.ID
	}

	return fmt.Sprintf("%s (@%s)", acc.Username, acc.ID)
}
