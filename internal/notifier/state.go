package notifier

// State is the observed lifecycle state of the daemon.
type State int

const (
	StateUnknown State = iota
	StateNotRegistered
	StateStopped
	StateRunning
)

func (s State) String() string {
	switch s {
	case StateNotRegistered:
		return "not registered"
	case StateStopped:
		return "stopped"
	case StateRunning:
		return "running"
	default:
		return "unknown"
	}
}

// Registered reports whether the supervisor knows about the daemon.
func (s State) Registered() bool {
	return s == StateStopped || s == StateRunning
}
