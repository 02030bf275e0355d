package serial

import (
	"fmt"

	"github.com/golang/glog"
	bugst "go.bug.st/serial"
)

// OpenNative opens a local serial device. Only the baud rate is
// configured; data bits, parity and stop bits keep the library
// defaults and no read timeout is set.
func OpenNative(name string, baudRate int) (Port, error) {
	port, err := bugst.Open(name, &bugst.Mode{BaudRate: baudRate})
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", name, err)
	}
	glog.V(3).Infof("serial port %s opened at %d bps", name, baudRate)
	return port, nil
}

// ListPorts enumerates serial ports available on the system.
func ListPorts() ([]string, error) {
	return bugst.GetPortsList()
}
