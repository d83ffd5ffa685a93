// Package config persists the nofan client configuration.
//
// The config is a single JSON file. Every mutation goes through [Store.Update],
// which serializes concurrent invocations with a lock file and writes the
// new content atomically, so a crash mid-write leaves the previous valid
// config in place.
package config

import (
	"errors"
	"fmt"

	"github.com/gofrs/flock"
	"github.com/inovacc/nofan/internal/core"
	"github.com/inovacc/nofan/internal/encoding"
	"github.com/inovacc/nofan/internal/model"
)

// Store reads and writes the config file at a fixed path.
type Store struct {
	path string
	lock *flock.Flock
}

// NewStore returns a store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

// Path returns the config file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the config. It returns a *core.ConfigMissingError when the file
// does not exist yet.
func (s *Store) Load() (*model.Config, error) {
	cfg, err := encoding.LoadJSON[model.Config](s.path)
	if err != nil {
		return nil, err
	}

	if cfg == nil {
		return nil, &core.ConfigMissingError{Path: s.path}
	}

	cfg.Normalize()

	return cfg, nil
}

// LoadOrDefault reads the config, returning defaults on first run.
func (s *Store) LoadOrDefault() (*model.Config, error) {
	cfg, err := s.Load()
	if core.IsConfigMissing(err) {
		def := model.DefaultConfig()
		return &def, nil
	}

	return cfg, err
}

// Save atomically replaces the config file.
func (s *Store) Save(cfg *model.Config) error {
	if cfg == nil {
		return errors.New("nil config")
	}

	if err := encoding.SaveJSON(s.path, cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	return nil
}

// Update loads the config (defaults on first run), applies fn and saves the
// result before returning. When fn fails nothing is written.
func (s *Store) Update(fn func(cfg *model.Config) error) (*model.Config, error) {
	if err := encoding.EnsureParentDir(s.path); err != nil {
		return nil, err
	}

	if err := s.lock.Lock(); err != nil {
		return nil, fmt.Errorf("failed to lock config: %w", err)
	}

	defer func() {
		_ = s.lock.Unlock()
	}()

	cfg, err := s.LoadOrDefault()
	if err != nil {
		return nil, err
	}

	if err := fn(cfg); err != nil {
		return nil, err
	}

	if err := s.Save(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SetConsumerCredentials stores the consumer key and secret.
func (s *Store) SetConsumerCredentials(key, secret string) (*model.Config, error) {
	return s.Update(func(cfg *model.Config) error {
		cfg.ConsumerKey = key
		cfg.ConsumerSecret = secret

		return nil
	})
}

// AddAccount appends the account; the first account becomes active.
func (s *Store) AddAccount(acc model.Account) (*model.Config, error) {
	return s.Update(func(cfg *model.Config) error {
		cfg.AddAccount(acc)
		return nil
	})
}

// RemoveAccount removes the account with the given id.
func (s *Store) RemoveAccount(id string) (*model.Config, error) {
	return s.Update(func(cfg *model.Config) error {
		if err := cfg.RemoveAccount(id); err != nil {
			if errors.Is(err, model.ErrAccountNotFound) {
				return &core.UnknownAccountError{ID: id}
			}

			return err
		}

		return nil
	})
}

// SetActive makes the account with the given id active.
func (s *Store) SetActive(id string) (*model.Config, error) {
	return s.Update(func(cfg *model.Config) error {
		if err := cfg.SetActive(id); err != nil {
			if errors.Is(err, model.ErrAccountNotFound) {
				return &core.UnknownAccountError{ID: id}
			}

			return err
		}

		return nil
	})
}
