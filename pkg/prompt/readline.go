// Package prompt asks the operator for sensor commands.
package prompt

import (
	"context"
	"io"

	"github.com/abiosoft/readline"

	"github.com/robotalks/fpctl/pkg/sensor"
)

// DefaultPrompt is shown before each command.
const DefaultPrompt = "Command: "

// Readline is a line editing command source on the terminal.
type Readline struct {
	rl *readline.Instance
}

var _ sensor.CommandSource = (*Readline)(nil)

// New creates a Readline source with prompt on the terminal.
func New(prompt string) (*Readline, error) {
	return NewWith(&readline.Config{Prompt: prompt})
}

// NewWith creates a Readline source from config, completing the
// known commands unless config has its own completer.
func NewWith(config *readline.Config) (*Readline, error) {
	if config.InterruptPrompt == "" {
		config.InterruptPrompt = "^C"
	}
	if config.AutoComplete == nil {
		config.AutoComplete = completer()
	}
	rl, err := readline.NewEx(config)
	if err != nil {
		return nil, err
	}
	return &Readline{rl: rl}, nil
}

func completer() readline.AutoCompleter {
	items := make([]readline.PrefixCompleterInterface, len(sensor.Commands))
	for n, cmd := range sensor.Commands {
		items[n] = readline.PcItem(cmd)
	}
	return readline.NewPrefixCompleter(items...)
}

// NextCommand implements sensor.CommandSource. The line is returned
// verbatim, so " Enroll" is not a recognized command. End of input and
// interrupts end the session with sensor.ErrNoMoreCommands.
func (r *Readline) NextCommand(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	line, err := r.rl.Readline()
	switch err {
	case nil:
		return line, nil
	case io.EOF, readline.ErrInterrupt:
		return "", sensor.ErrNoMoreCommands
	default:
		return "", err
	}
}

// Close implements io.Closer.
func (r *Readline) Close() error {
	return r.rl.Close()
}
