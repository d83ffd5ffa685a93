package core

import (
	"errors"

	"github.com/inovacc/nofan/internal/model"
)

// AccountSwitcher changes the active account.
type AccountSwitcher struct {
	store  ConfigStore
	prompt Prompter
}

// NewAccountSwitcher creates a switcher over store. prompt is only used by
// SwitchInteractive.
func NewAccountSwitcher(store ConfigStore, prompt Prompter) *AccountSwitcher {
	return &AccountSwitcher{store: store, prompt: prompt}
}

// SwitchTo makes the account with the given id active and persists it.
func (s *AccountSwitcher) SwitchTo(id string) (*model.Account, error) {
	cfg, err := s.store.LoadOrDefault()
	if err != nil {
		return nil, err
	}

	if len(cfg.Accounts) == 0 {
		return nil, ErrNotLoggedIn
	}

	if cfg.FindAccount(id) < 0 {
		return nil, &UnknownAccountError{ID: id}
	}

	cfg, err = s.store.SetActive(id)
	if err != nil {
		return nil, err
	}

	return cfg.ActiveAccount()
}

// SwitchInteractive lets the user choose the account. A cancelled prompt
// changes nothing and returns a nil account without error.
func (s *AccountSwitcher) SwitchInteractive() (*model.Account, error) {
	cfg, err := s.store.LoadOrDefault()
	if err != nil {
		return nil, err
	}

	if len(cfg.Accounts) == 0 {
		return nil, ErrNotLoggedIn
	}

	id, err := s.prompt.ChooseAccount(cfg.Accounts, cfg.Active)
	if err != nil {
		if errors.Is(err, ErrCancelled) {
			return nil, nil
		}

		return nil, err
	}

	return s.SwitchTo(id)
}
