// Package serial provides the serial port collaborator used by the sensor session.
package serial

import (
	"io"
	"strings"
)

// Port is an opened serial connection with the control operations
// needed to reset and talk to the sensor board.
type Port interface {
	io.ReadWriteCloser
	// SetDTR sets the Data Terminal Ready control line.
	SetDTR(bool) error
	// ResetInputBuffer discards received but unread data.
	ResetInputBuffer() error
	// ResetOutputBuffer discards written but untransmitted data.
	ResetOutputBuffer() error
}

// Opener opens a Port.
type Opener func(name string, baudRate int) (Port, error)

// TCPPrefix selects a serial-over-TCP bridge instead of a local device.
const TCPPrefix = "tcp://"

// Open opens a port. Names prefixed with "tcp://" connect to a
// serial-over-TCP bridge; anything else is a local device path
// (e.g. COM12, /dev/ttyUSB0).
func Open(name string, baudRate int) (Port, error) {
	if strings.HasPrefix(name, TCPPrefix) {
		return OpenTCP(strings.TrimPrefix(name, TCPPrefix))
	}
	return OpenNative(name, baudRate)
}
