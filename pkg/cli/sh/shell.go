package sh

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/fpctl/pkg/env"
	"github.com/robotalks/fpctl/pkg/sensor"
	"github.com/robotalks/fpctl/pkg/serial"
)

// Shell provides ishell backed interactive shell over a sensor session.
type Shell struct {
	Interactive bool

	Shell   *ishell.Shell
	Session *sensor.Session
}

const shellKey = "$shell"

var (
	evalOnly bool

	commands = []*ishell.Cmd{
		&StatusCmd,
		&PortsCmd,
		&WaitCmd,
		&EnrollCmd,
		&VerifyCmd,
		&SendCmd,
	}
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluation only, no interactive shell.")
}

// New creates a new shell driving session.
func New(session *sensor.Session) *Shell {
	s := &Shell{
		Interactive: !evalOnly,
		Shell:       ishell.New(),
		Session:     session,
	}
	session.Out = shellWriter{s.Shell}
	s.Shell.Set(shellKey, s)
	s.updatePrompt()
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

type shellWriter struct {
	sh *ishell.Shell
}

func (w shellWriter) Write(p []byte) (int, error) {
	w.sh.Print(string(p))
	return len(p), nil
}

func (s *Shell) updatePrompt() {
	if s.Shell == nil {
		return
	}
	s.Shell.SetPrompt(fmt.Sprintf("[%s] > ", strings.ToLower(s.Session.State().String())))
}

// MustBeReady wraps command func requires the sensor in WRITE state.
func MustBeReady(fn func(c *ishell.Context)) func(c *ishell.Context) {
	return func(c *ishell.Context) {
		if ShellFrom(c).Session.State() != sensor.StateWrite {
			c.Err(fmt.Errorf("sensor not ready, run wait first"))
			return
		}
		fn(c)
	}
}

// WaitReady reads from the sensor until it accepts a command: the
// ready marker in SETUP, or a pending reply in READ.
func (s *Shell) WaitReady(ctx context.Context) error {
	defer s.updatePrompt()
	for s.Session.State() != sensor.StateWrite {
		if err := s.Session.Step(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Send submits cmd and reads the reply if it was sent.
func (s *Shell) Send(ctx context.Context, cmd string) error {
	defer s.updatePrompt()
	if err := s.Session.Submit(cmd); err != nil {
		return err
	}
	if s.Session.State() == sensor.StateRead {
		return s.Session.Step(ctx)
	}
	return nil
}

// Run runs the shell.
func (s *Shell) Run(args ...string) {
	if len(args) > 0 {
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
		return
	}
	if s.Interactive {
		s.Shell.Run()
		return
	}
	log.Fatalln("command expected")
}

func sendFunc(cmd string) func(c *ishell.Context) {
	return MustBeReady(func(c *ishell.Context) {
		if err := ShellFrom(c).Send(context.Background(), cmd); err != nil {
			c.Err(err)
		}
	})
}

var (
	// StatusCmd prints the session state.
	StatusCmd = ishell.Cmd{
		Name:    "status",
		Aliases: []string{"st"},
		Help:    "",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c).Session
			c.Printf("%s @ %d: %s\n", s.Port, s.BaudRate, s.State())
		},
	}

	// PortsCmd lists serial ports.
	PortsCmd = ishell.Cmd{
		Name:    "ports",
		Aliases: []string{"ls"},
		Help:    "",
		Func: func(c *ishell.Context) {
			ports, err := serial.ListPorts()
			if err != nil {
				c.Err(err)
				return
			}
			if len(ports) == 0 {
				c.Println("No serial ports found")
				return
			}
			for _, port := range ports {
				c.Println(port)
			}
		},
	}

	// WaitCmd waits for the ready marker.
	WaitCmd = ishell.Cmd{
		Name:    "wait",
		Aliases: []string{"w"},
		Help:    "",
		Func: func(c *ishell.Context) {
			if err := ShellFrom(c).WaitReady(context.Background()); err != nil {
				c.Err(err)
			}
		},
	}

	// EnrollCmd sends Enroll.
	EnrollCmd = ishell.Cmd{
		Name:    "enroll",
		Aliases: []string{"e"},
		Help:    "",
		Func:    sendFunc(sensor.CmdEnroll),
	}

	// VerifyCmd sends Verify.
	VerifyCmd = ishell.Cmd{
		Name:    "verify",
		Aliases: []string{"v"},
		Help:    "",
		Func:    sendFunc(sensor.CmdVerify),
	}

	// SendCmd sends raw text; unrecognized commands are ignored.
	SendCmd = ishell.Cmd{
		Name: "send",
		Help: "COMMAND",
		Func: MustBeReady(func(c *ishell.Context) {
			if err := ShellFrom(c).Send(context.Background(), strings.Join(c.Args, " ")); err != nil {
				c.Err(err)
			}
		}),
	}
)

// Main is a helper to provide a single call in main.
func Main() {
	flag.Parse()
	session := env.Default().MustNewSession(nil, nil)
	New(session).Run(flag.Args()...)
}
