// Package intent defines the parsed form of a nofan invocation.
//
// An [Intent] is produced once per invocation by the command router and is
// never mutated afterwards. The set of variants is closed: every concrete
// type lives in this package and implements the unexported marker method,
// so dispatch is a plain type switch.
package intent

import (
	"fmt"
	"strings"
)

// Intent is one parsed user command.
type Intent interface {
	// Name is the command name used in logs and messages.
	Name() string

	intent()
}

// Display carries the display flags given on the command line.
type Display struct {
	// TimeAgo is set by -t/--time
	TimeAgo bool

	// NoPhotoTag is set by --no-photo-tag
	NoPhotoTag bool
}

// TimelineKind selects which timeline to fetch.
type TimelineKind int

const (
	Home TimelineKind = iota
	Mentions
	Me
	Public
)

func (k TimelineKind) String() string {
	switch k {
	case Home:
		return "home"
	case Mentions:
		return "mentions"
	case Me:
		return "me"
	case Public:
		return "public"
	default:
		return fmt.Sprintf("timeline(%d)", int(k))
	}
}

// NotifierOp is a notifier lifecycle operation.
type NotifierOp string

const (
	NotifierStart   NotifierOp = "start"
	NotifierStop    NotifierOp = "stop"
	NotifierRestart NotifierOp = "restart"
	NotifierDelete  NotifierOp = "delete"
)

// ParseNotifierOp maps a command-line token to an operation. The empty
// token means start.
func ParseNotifierOp(token string) (NotifierOp, bool) {
	switch NotifierOp(strings.TrimSpace(token)) {
	case "", NotifierStart:
		return NotifierStart, true
	case NotifierStop:
		return NotifierStop, true
	case NotifierRestart:
		return NotifierRestart, true
	case NotifierDelete:
		return NotifierDelete, true
	default:
		return "", false
	}
}

// Config sets consumer credentials or prints the config.
type Config struct {
	Key     string
	Secret  string
	ShowAll bool
}

// Colors customizes the color scheme interactively.
type Colors struct{}

// Login logs in an account; empty fields are prompted for.
type Login struct {
	Username string
	Password string
}

// Logout removes the active account.
type Logout struct{}

// Switch changes the active account. An empty ID asks interactively.
type Switch struct {
	ID string
}

// Interactive reports whether the account should be chosen by prompt.
func (s Switch) Interactive() bool {
	return s.ID == ""
}

// Timeline fetches and prints a timeline.
type Timeline struct {
	Kind TimelineKind

	// Count is the page size; zero leaves it to the API default
	Count int

	Display Display
}

// Undo deletes the latest own status.
type Undo struct{}

// Notifier runs a notifier lifecycle operation.
type Notifier struct {
	Op NotifierOp
}

// NotifierRun runs the notifier daemon in the current process.
type NotifierRun struct{}

// Post publishes a status, optionally with a photo.
type Post struct {
	Text      string
	PhotoPath string
}

// HasPhoto reports whether a photo is attached.
func (p Post) HasPhoto() bool {
	return p.PhotoPath != ""
}

// Version prints the version.
type Version struct{}

// Help prints usage text rendered by the router.
type Help struct {
	Text string
}

func (Config) Name() string      { return "config" }
func (Colors) Name() string      { return "colors" }
func (Login) Name() string       { return "login" }
func (Logout) Name() string      { return "logout" }
func (Switch) Name() string      { return "switch" }
func (t Timeline) Name() string  { return t.Kind.String() }
func (Undo) Name() string        { return "undo" }
func (Notifier) Name() string    { return "notifier" }
func (NotifierRun) Name() string { return "notifier run" }
func (Post) Name() string        { return "post" }
func (Version) Name() string     { return "version" }
func (Help) Name() string        { return "help" }

func (Config) intent()      {}
func (Colors) intent()      {}
func (Login) intent()       {}
func (Logout) intent()      {}
func (Switch) intent()      {}
func (Timeline) intent()    {}
func (Undo) intent()        {}
func (Notifier) intent()    {}
func (NotifierRun) intent() {}
func (Post) intent()        {}
func (Version) intent()     {}
func (Help) intent()        {}
