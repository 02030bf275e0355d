package sensor

import (
	"errors"
	"fmt"
)

var (
	// ErrNoMoreCommands indicates the command source is exhausted,
	// e.g. the operator closed stdin.
	ErrNoMoreCommands = errors.New("no more commands")
	// ErrNotReady indicates a command was submitted outside WRITE state.
	ErrNotReady = errors.New("sensor not ready for a command")
	// ErrInvalidUTF8 indicates the sensor sent bytes that are not UTF-8.
	ErrInvalidUTF8 = errors.New("invalid UTF-8 in sensor reply")
)

// PortError wraps an I/O fault on the serial port.
type PortError struct {
	Port string
	Op   string
	Err  error
}

// Error implements error.
func (e *PortError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Port, e.Err)
}

// Unwrap returns the underlying error.
func (e *PortError) Unwrap() error {
	return e.Err
}
