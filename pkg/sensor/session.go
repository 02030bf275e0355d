package sensor

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/golang/glog"

	"github.com/robotalks/fpctl/pkg/events"
	fx "github.com/robotalks/fpctl/pkg/framework"
	"github.com/robotalks/fpctl/pkg/serial"
)

// Reset handshake timing.
const (
	// ResetHoldTime is how long DTR stays deasserted.
	ResetHoldTime = time.Second
	// ResetSettleTime is how long the board gets to boot after DTR
	// is asserted again.
	ResetSettleTime = 2 * time.Second
)

// Session is the long-lived controller of one sensor board.
// It is not safe for concurrent use except for cancellation of Run.
type Session struct {
	Port     string
	BaudRate int

	Opener   serial.Opener
	Commands CommandSource
	Out      io.Writer
	Reporter events.Reporter
	Sleep    func(time.Duration)

	state State

	lock     sync.Mutex
	inflight serial.Port
	aborted  bool
}

// NewSession creates a Session in SETUP state using the system serial ports.
func NewSession(port string, baudRate int) *Session {
	return &Session{
		Port:     port,
		BaudRate: baudRate,
		Opener:   serial.Open,
		Out:      os.Stdout,
		Sleep:    time.Sleep,
		state:    StateSetup,
	}
}

// State returns the current protocol state.
func (s *Session) State() State {
	return s.state
}

// Run implements Runnable. It steps the state machine until an I/O or
// decode fault occurs, the command source is exhausted, or ctx is
// canceled. Canceling closes the port handle in use and the command
// source if it is an io.Closer, so blocked reads return.
func (s *Session) Run(ctx context.Context) error {
	s.lock.Lock()
	s.aborted = false
	s.lock.Unlock()

	fmt.Fprintln(s.Out, "Running...")
	return fx.RunWithContextCancel(ctx, s.abort, func() error {
		for {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := s.Step(ctx); err != nil {
				return err
			}
		}
	})
}

// Step performs one iteration of the protocol in the current state.
// A failed step leaves the state unchanged.
func (s *Session) Step(ctx context.Context) error {
	switch s.state {
	case StateSetup:
		line, err := s.ReadFromSerial()
		if err != nil {
			return err
		}
		s.received(line)
		if strings.Contains(line, ReadyMarker) {
			s.transition(StateWrite)
		}
	case StateWrite:
		if s.Commands == nil {
			return ErrNoMoreCommands
		}
		cmd, err := s.Commands.NextCommand(ctx)
		if err != nil {
			return err
		}
		return s.Submit(cmd)
	case StateRead:
		line, err := s.ReadFromSerial()
		if err != nil {
			return err
		}
		s.received(line)
		s.transition(StateWrite)
	default:
		return fmt.Errorf("invalid state %d", s.state)
	}
	return nil
}

// Submit sends cmd if it is a recognized command and moves to READ.
// Unrecognized commands are ignored and the session stays in WRITE.
func (s *Session) Submit(cmd string) error {
	if s.state != StateWrite {
		return ErrNotReady
	}
	fmt.Fprintf(s.Out, "Write: %s\n", cmd)
	if !IsValidCommand(cmd) {
		glog.V(2).Infof("ignore unknown command %q", cmd)
		return nil
	}
	if err := s.WriteToSerial(cmd + "\n"); err != nil {
		return err
	}
	ev := events.NewEvent(events.KindWrite)
	ev.State, ev.Command = s.state.String(), cmd
	s.report(ev)
	s.transition(StateRead)
	return nil
}

// WriteToSerial resets the board through DTR and writes data.
func (s *Session) WriteToSerial(data string) (err error) {
	port, err := s.open()
	if err != nil {
		return err
	}
	defer func() {
		if cerr := s.release(port); err == nil && cerr != nil {
			err = s.portErr("close", cerr)
		}
	}()

	if err = port.SetDTR(false); err != nil {
		return s.portErr("clear DTR", err)
	}
	s.sleep(ResetHoldTime)
	if err = port.ResetInputBuffer(); err != nil {
		return s.portErr("reset input", err)
	}
	if err = port.SetDTR(true); err != nil {
		return s.portErr("set DTR", err)
	}
	s.sleep(ResetSettleTime)
	if _, err = port.Write([]byte(data)); err != nil {
		return s.portErr("write", err)
	}
	glog.V(3).Infof("wrote %q to %s", data, s.Port)
	return nil
}

// ReadFromSerial blocks until a full line arrives and returns it
// including the trailing newline. There is no read timeout.
func (s *Session) ReadFromSerial() (line string, err error) {
	port, err := s.open()
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := s.release(port); err == nil && cerr != nil {
			err = s.portErr("close", cerr)
		}
	}()

	if err = port.ResetOutputBuffer(); err != nil {
		return "", s.portErr("reset output", err)
	}
	raw, err := readLine(port)
	if err != nil {
		return "", s.portErr("read", err)
	}
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("%w: %q", ErrInvalidUTF8, raw)
	}
	glog.V(3).Infof("read %q from %s", raw, s.Port)
	return string(raw), nil
}

// readLine reads a byte at a time so nothing past the newline is
// consumed from a handle that is about to be closed.
func readLine(r io.Reader) ([]byte, error) {
	var line []byte
	b := make([]byte, 1)
	for {
		n, err := r.Read(b)
		if n > 0 {
			line = append(line, b[0])
			if b[0] == '\n' {
				return line, nil
			}
		}
		if err != nil {
			return line, err
		}
	}
}

func (s *Session) received(line string) {
	fmt.Fprintf(s.Out, "Read: %s\n", strings.TrimRight(line, "\r\n"))
	ev := events.NewEvent(events.KindRead)
	ev.State, ev.Line = s.state.String(), line
	ev.Reply = ClassifyReply(line).String()
	s.report(ev)
}

func (s *Session) transition(next State) {
	glog.V(1).Infof("state %s -> %s", s.state, next)
	s.state = next
	ev := events.NewEvent(events.KindState)
	ev.State = next.String()
	s.report(ev)
}

func (s *Session) report(ev *events.Event) {
	if s.Reporter == nil {
		return
	}
	if err := s.Reporter.Report(ev); err != nil {
		glog.Warningf("report %s event: %v", ev.Kind, err)
	}
}

func (s *Session) sleep(d time.Duration) {
	if s.Sleep != nil {
		s.Sleep(d)
	}
}

func (s *Session) open() (serial.Port, error) {
	port, err := s.Opener(s.Port, s.BaudRate)
	if err != nil {
		return nil, s.portErr("open", err)
	}
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.aborted {
		port.Close()
		return nil, s.portErr("open", context.Canceled)
	}
	s.inflight = port
	return port, nil
}

func (s *Session) release(port serial.Port) error {
	s.lock.Lock()
	s.inflight = nil
	s.lock.Unlock()
	return port.Close()
}

func (s *Session) abort() {
	s.lock.Lock()
	s.aborted = true
	port := s.inflight
	s.inflight = nil
	s.lock.Unlock()
	if port != nil {
		port.Close()
	}
	if closer, ok := s.Commands.(io.Closer); ok {
		closer.Close()
	}
}

func (s *Session) portErr(op string, err error) error {
	return &PortError{Port: s.Port, Op: op, Err: err}
}
