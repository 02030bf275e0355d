package env

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/fpctl/pkg/sensor"
)

func TestConfigSession(t *testing.T) {
	conf := NewConfig()
	conf.Port, conf.BaudRate = "/dev/ttyACM0", 57600
	var out bytes.Buffer
	s, err := conf.NewSession(sensor.ScriptedCommands(), &out)
	require.NoError(t, err)
	require.Equal(t, "/dev/ttyACM0", s.Port)
	require.Equal(t, 57600, s.BaudRate)
	require.Equal(t, sensor.StateSetup, s.State())
	require.Equal(t, &out, s.Out)

	s = conf.MustNewSession(nil, nil)
	require.Equal(t, "/dev/ttyACM0", s.Port)
	require.Nil(t, s.Commands)
}

func TestConfigValidate(t *testing.T) {
	testCases := []struct {
		name string
		port string
		baud int
		ok   bool
	}{
		{"defaults", "COM12", 9600, true},
		{"no port", "", 9600, false},
		{"zero baud", "COM12", 0, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			conf := &Config{Port: tc.port, BaudRate: tc.baud}
			if tc.ok {
				require.NoError(t, conf.Validate())
			} else {
				require.Error(t, conf.Validate())
			}
		})
	}
}

func TestConfigPublisher(t *testing.T) {
	conf := &Config{Port: "COM12", BaudRate: 9600}
	pub, err := conf.NewPublisher()
	require.NoError(t, err)
	require.Nil(t, pub)

	conf.MQTTBrokerURL, conf.SourceID = "mqtt://localhost:1883/fp/", "bench-1"
	pub, err = conf.NewPublisher()
	require.NoError(t, err)
	require.Equal(t, "bench-1", pub.Source)
}

func TestNewConfigIsCopy(t *testing.T) {
	conf := NewConfig()
	conf.Port = "changed"
	require.NotEqual(t, "changed", Default().Port)
}
