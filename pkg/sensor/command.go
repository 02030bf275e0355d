package sensor

import "context"

// Commands understood by the sensor firmware.
const (
	CmdEnroll = "Enroll"
	CmdVerify = "Verify"
)

// ReadyMarker is printed by the firmware once the sensor is initialized.
const ReadyMarker = "FingerprintSensorSuccess"

// Commands lists the recognized commands.
var Commands = []string{CmdEnroll, CmdVerify}

// IsValidCommand reports whether cmd is a recognized command.
// Matching is exact and case sensitive.
func IsValidCommand(cmd string) bool {
	for _, c := range Commands {
		if c == cmd {
			return true
		}
	}
	return false
}

// CommandSource provides the next command to send to the sensor.
type CommandSource interface {
	NextCommand(context.Context) (string, error)
}

// CommandSourceFunc is the func form of CommandSource.
type CommandSourceFunc func(context.Context) (string, error)

// NextCommand implements CommandSource.
func (f CommandSourceFunc) NextCommand(ctx context.Context) (string, error) {
	return f(ctx)
}

// ScriptedCommands replays a fixed list of commands and then
// returns ErrNoMoreCommands.
func ScriptedCommands(cmds ...string) CommandSource {
	return CommandSourceFunc(func(ctx context.Context) (string, error) {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if len(cmds) == 0 {
			return "", ErrNoMoreCommands
		}
		cmd := cmds[0]
		cmds = cmds[1:]
		return cmd, nil
	})
}
