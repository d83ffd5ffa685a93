package notifier

import "fmt"

// UnavailableError means no supervisor can manage the notifier here. It is
// reported to the user as guidance and never retried.
type UnavailableError struct {
	Supervisor string
	Hint       string
	Err        error
}

func (e *UnavailableError) Error() string {
	msg := fmt.Sprintf("notifier supervisor %q is unavailable", e.Supervisor)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	if e.Hint != "" {
		msg += "\n" + e.Hint
	}

	return msg
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

// Error reports a failed operation or an unexpected supervisor state.
type Error struct {
	Op    string
	State State
	Err   error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("notifier %s failed (state %s): %v", e.Op, e.State, e.Err)
	}

	return fmt.Sprintf("notifier %s: unexpected state %s", e.Op, e.State)
}

func (e *Error) Unwrap() error {
	return e.Err
}
