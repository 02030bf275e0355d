package sh

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/fpctl/pkg/sensor"
	"github.com/robotalks/fpctl/pkg/serial"
)

type scriptPort struct {
	*strings.Reader
	written *[]string
}

func (p *scriptPort) Write(b []byte) (int, error) {
	*p.written = append(*p.written, string(b))
	return len(b), nil
}

func (p *scriptPort) SetDTR(bool) error        { return nil }
func (p *scriptPort) ResetInputBuffer() error  { return nil }
func (p *scriptPort) ResetOutputBuffer() error { return nil }
func (p *scriptPort) Close() error             { return nil }

func newTestShell(script string) (*Shell, *[]string) {
	var written []string
	rx := strings.NewReader(script)
	session := sensor.NewSession("COM12", 9600)
	session.Sleep = nil
	session.Out = io.Discard
	session.Opener = func(string, int) (serial.Port, error) {
		return &scriptPort{Reader: rx, written: &written}, nil
	}
	return &Shell{Session: session}, &written
}

func TestShellWaitAndSend(t *testing.T) {
	s, written := newTestShell("booting\nFingerprintSensorSuccess\nImage taken\n")
	ctx := context.Background()

	require.NoError(t, s.WaitReady(ctx))
	require.Equal(t, sensor.StateWrite, s.Session.State())

	require.NoError(t, s.Send(ctx, "Scan"))
	require.Empty(t, *written)
	require.Equal(t, sensor.StateWrite, s.Session.State())

	require.NoError(t, s.Send(ctx, sensor.CmdVerify))
	require.Equal(t, []string{"Verify\n"}, *written)
	require.Equal(t, sensor.StateWrite, s.Session.State())
}

func TestShellSendBeforeReady(t *testing.T) {
	s, written := newTestShell("")
	require.Equal(t, sensor.ErrNotReady, s.Send(context.Background(), sensor.CmdEnroll))
	require.Empty(t, *written)
}

func TestShellWaitAfterFailedReply(t *testing.T) {
	s, written := newTestShell("FingerprintSensorSuccess\nStored!\n")
	ctx := context.Background()
	require.NoError(t, s.WaitReady(ctx))

	opener, opens := s.Session.Opener, 0
	unplugged := errors.New("cable unplugged")
	s.Session.Opener = func(name string, baudRate int) (serial.Port, error) {
		if opens++; opens == 2 {
			return nil, unplugged
		}
		return opener(name, baudRate)
	}

	require.True(t, errors.Is(s.Send(ctx, sensor.CmdEnroll), unplugged))
	require.Equal(t, sensor.StateRead, s.Session.State())

	require.NoError(t, s.WaitReady(ctx))
	require.Equal(t, sensor.StateWrite, s.Session.State())
	require.Equal(t, []string{"Enroll\n"}, *written)
}
