package core

import (
	"errors"
	"fmt"
)

var (
	// ErrNotLoggedIn is returned when a command needs an active account
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrNoConsumer is returned when consumer credentials are not configured
	ErrNoConsumer = errors.New("consumer key and secret are not configured")

	// ErrCancelled is returned when the user aborts an interactive prompt
	ErrCancelled = errors.New("cancelled")
)

// UsageError reports bad or ambiguous command-line input.
type UsageError struct {
	Message string
	Err     error
}

func (e *UsageError) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}

	return e.Message
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// Usagef builds a UsageError from a format string.
func Usagef(format string, args ...any) error {
	return &UsageError{Message: fmt.Sprintf(format, args...)}
}

// ConfigMissingError indicates the config file has not been created yet
type ConfigMissingError struct {
	Path string
}

func (e *ConfigMissingError) Error() string {
	return fmt.Sprintf("no config found at %s", e.Path)
}

// UnknownAccountError indicates a switch target that is not logged in
type UnknownAccountError struct {
	ID string
}

func (e *UnknownAccountError) Error() string {
	return fmt.Sprintf("unknown account: %s", e.ID)
}

// ReportedError marks an error that was already shown to the user, so the
// caller only needs to pick an exit code.
type ReportedError struct {
	Err error
}

func (e *ReportedError) Error() string {
	return e.Err.Error()
}

func (e *ReportedError) Unwrap() error {
	return e.Err
}

// Reported wraps err as a ReportedError. A nil err stays nil.
func Reported(err error) error {
	if err == nil {
		return nil
	}

	return &ReportedError{Err: err}
}

// IsUsage reports whether err is a UsageError.
func IsUsage(err error) bool {
	var usageErr *UsageError
	return errors.As(err, &usageErr)
}

// IsConfigMissing reports whether err is a ConfigMissingError.
func IsConfigMissing(err error) bool {
	var missing *ConfigMissingError
	return errors.As(err, &missing)
}

// IsReported reports whether err was already shown to the user.
func IsReported(err error) bool {
	var reported *ReportedError
	return errors.As(err, &reported)
}
