// Package params resolves runtime parameters from the environment.
package params

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/inovacc/nofan/internal/application"
)

// Env holds the NOFAN_* environment overrides.
type Env struct {
	// Home overrides the application directory
	Home string `env:"HOME"`

	// APIURL overrides the Fanfou REST base URL, empty keeps the client default
	APIURL string `env:"API_URL"`

	// OAuthURL overrides the Fanfou OAuth base URL, empty keeps the client default
	OAuthURL string `env:"OAUTH_URL"`

	// Supervisor overrides NotifierOptions.Supervisor
	Supervisor string `env:"SUPERVISOR"`

	// LogLevel is one of debug, info, warn, error
	LogLevel string `env:"LOG_LEVEL"`

	// LogFormat is text or json
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

// Load parses the environment.
func Load() (Env, error) {
	var e Env
	if err := env.ParseWithOptions(&e, env.Options{Prefix: "NOFAN_"}); err != nil {
		return Env{}, fmt.Errorf("error getting env configs: %w", err)
	}

	return e, nil
}

// AppDir returns the directory holding the config and notifier state,
// creating it when missing.
func (e Env) AppDir() (string, error) {
	dir := e.Home
	if dir == "" {
		var err error

		dir, err = application.GetApplicationDirectory()
		if err != nil {
			return "", err
		}
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}

	return dir, nil
}

// ConfigPath returns the config file path.
func (e Env) ConfigPath() (string, error) {
	dir, err := e.AppDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, application.ConfigFileName), nil
}

// StatePath returns the notifier state file path.
func (e Env) StatePath() (string, error) {
	dir, err := e.AppDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, application.NotifierStateFileName), nil
}

// LogPath returns the notifier log file path.
func (e Env) LogPath() (string, error) {
	dir, err := e.AppDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, application.NotifierLogFileName), nil
}

// RegistrationPath returns the detached notifier registration file path.
func (e Env) RegistrationPath() (string, error) {
	dir, err := e.AppDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, application.NotifierRegistrationFileName), nil
}
