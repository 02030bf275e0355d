package sensor

// State is the protocol state of a Session.
type State int

// States in the order a session walks through them.
const (
	// StateSetup waits for the ready marker.
	StateSetup State = iota
	// StateWrite waits for a command to send.
	StateWrite
	// StateRead waits for the reply to the last command.
	StateRead
)

// String returns the string representation of the state
func (s State) String() string {
	switch s {
	case StateSetup:
		return "SETUP"
	case StateWrite:
		return "WRITE"
	case StateRead:
		return "READ"
	default:
		return "UNKNOWN"
	}
}
