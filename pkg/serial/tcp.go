package serial

import (
	"fmt"
	"net"
	"time"
)

// TCPPort bridges a serial line exposed over TCP (ser2net, socat).
// There is no control line on the other end so SetDTR is a no-op.
type TCPPort struct {
	net.Conn
}

var _ Port = (*TCPPort)(nil)

// DialTimeout bounds connecting to the bridge.
const DialTimeout = 2 * time.Second

const drainTimeout = 10 * time.Millisecond

// OpenTCP connects to a serial-over-TCP bridge at address.
func OpenTCP(address string) (*TCPPort, error) {
	conn, err := net.DialTimeout("tcp", address, DialTimeout)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", address, err)
	}
	return &TCPPort{Conn: conn}, nil
}

// SetDTR implements Port.
func (p *TCPPort) SetDTR(bool) error {
	return nil
}

// ResetInputBuffer implements Port by draining bytes already pending
// on the connection.
func (p *TCPPort) ResetInputBuffer() error {
	buf := make([]byte, 1024)
	defer p.Conn.SetReadDeadline(time.Time{})
	for {
		if err := p.Conn.SetReadDeadline(time.Now().Add(drainTimeout)); err != nil {
			return err
		}
		n, err := p.Conn.Read(buf)
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				return nil
			}
			return err
		}
		if n == 0 {
			return nil
		}
	}
}

// ResetOutputBuffer implements Port. Writes go straight to the socket.
func (p *TCPPort) ResetOutputBuffer() error {
	return nil
}
