package model

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrAccountNotFound is returned when an account id is not in the config
	ErrAccountNotFound = errors.New("account not found")

	// ErrNoAccounts is returned when an operation needs at least one account
	ErrNoAccounts = errors.New("no accounts")
)

// Supervisor names accepted in NotifierOptions.Supervisor.
const (
	SupervisorService  = "service"
	SupervisorDetached = "detached"
)

const (
	// DefaultNotifierInterval is the poll interval in seconds
	DefaultNotifierInterval = 60

	// MinNotifierInterval keeps the daemon under the API rate limit
	MinNotifierInterval = 15
)

// DisplayOptions controls optional decorations when printing statuses.
type DisplayOptions struct {
	// ShowTimeAgo appends a relative "3 minutes ago" tag
	ShowTimeAgo bool `json:"show_time_ago"`

	// ShowPhotoTag appends a marker to statuses carrying a photo
	ShowPhotoTag bool `json:"show_photo_tag"`
}

// NotifierOptions configures the background notifier.
type NotifierOptions struct {
	// Interval is the poll interval in seconds
	Interval int `json:"interval"`

	// Mentions enables notifications for new mentions
	Mentions bool `json:"mentions"`

	// Home enables notifications for new home timeline statuses
	Home bool `json:"home"`

	// Supervisor selects how the daemon is managed: "service" or "detached"
	Supervisor string `json:"supervisor"`
}

// Config holds the persisted client state.
type Config struct {
	ConsumerKey    string `json:"consumer_key"`
	ConsumerSecret string `json:"consumer_secret"`

	// Accounts lists logged-in accounts in login order
	Accounts []Account `json:"accounts"`

	// Active is the index of the active account. It is only meaningful when
	// Accounts is non-empty and is kept at 0 otherwise.
	Active int `json:"active"`

	ColorScheme ColorScheme     `json:"color_scheme"`
	Display     DisplayOptions  `json:"display"`
	Notifier    NotifierOptions `json:"notifier"`
}

// DefaultConfig returns a Config with no credentials and default options.
func DefaultConfig() Config {
	return Config{
		Accounts:    []Account{},
		ColorScheme: DefaultColorScheme(),
		Display: DisplayOptions{
			ShowTimeAgo:  false,
			ShowPhotoTag: true,
		},
		Notifier: NotifierOptions{
			Interval:   DefaultNotifierInterval,
			Mentions:   true,
			Home:       false,
			Supervisor: SupervisorService,
		},
	}
}

// Normalize fills options missing from older config files and clamps the
// active index back into range.
func (c *Config) Normalize() {
	def := DefaultConfig()

	if c.Accounts == nil {
		c.Accounts = []Account{}
	}

	if c.ColorScheme == nil {
		c.ColorScheme = def.ColorScheme
	} else {
		for name, token := range def.ColorScheme {
			if _, ok := c.ColorScheme[name]; !ok {
				c.ColorScheme[name] = token
			}
		}
	}

	if c.Notifier.Interval == 0 {
		c.Notifier.Interval = def.Notifier.Interval
	}

	if c.Notifier.Interval < MinNotifierInterval {
		c.Notifier.Interval = MinNotifierInterval
	}

	if c.Notifier.Supervisor == "" {
		c.Notifier.Supervisor = def.Notifier.Supervisor
	}

	if c.Active < 0 || c.Active >= len(c.Accounts) {
		c.Active = 0
	}
}

// HasConsumer reports whether consumer credentials are configured.
func (c *Config) HasConsumer() bool {
	return c.ConsumerKey != "" && c.ConsumerSecret != ""
}

// Consumer returns the configured consumer credentials.
func (c *Config) Consumer() Consumer {
	return Consumer{Key: c.ConsumerKey, Secret: c.ConsumerSecret}
}

// ActiveAccount returns the active account.
func (c *Config) ActiveAccount() (*Account, error) {
	if len(c.Accounts) == 0 {
		return nil, ErrNoAccounts
	}

	if c.Active < 0 || c.Active >= len(c.Accounts) {
		return nil, fmt.Errorf("active account index %d out of range", c.Active)
	}

	return &c.Accounts[c.Active], nil
}

// FindAccount returns the index of the account with the given id, or -1.
func (c *Config) FindAccount(id string) int {
	return slices.IndexFunc(c.Accounts, func(a Account) bool {
		return a.ID == id
	})
}

// AddAccount appends the account, or replaces the stored credentials when
// an account with the same id already exists. The first account becomes
// active. It returns the index the account now occupies.
func (c *Config) AddAccount(acc Account) int {
	if i := c.FindAccount(acc.ID); i >= 0 {
		c.Accounts[i] = acc

		return i
	}

	c.Accounts = append(c.Accounts, acc)
	if len(c.Accounts) == 1 {
		c.Active = 0
	}

	return len(c.Accounts) - 1
}

// RemoveAccount deletes the account with the given id. When the active
// account is removed the next remaining account in insertion order becomes
// active, falling back to the previous one when the removed account was
// last. Removing the final account leaves none active.
func (c *Config) RemoveAccount(id string) error {
	i := c.FindAccount(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrAccountNotFound, id)
	}

	c.Accounts = slices.Delete(c.Accounts, i, i+1)

	switch {
	case len(c.Accounts) == 0:
		c.Active = 0
	case i < c.Active:
		c.Active--
	case c.Active >= len(c.Accounts):
		c.Active = len(c.Accounts) - 1
	}

	return nil
}

// SetActive makes the account with the given id active.
func (c *Config) SetActive(id string) error {
	i := c.FindAccount(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrAccountNotFound, id)
	}

	c.Active = i

	return nil
}
