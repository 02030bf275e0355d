// Package env assembles a sensor session from flags and environment.
package env

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/golang/glog"

	"github.com/robotalks/fpctl/pkg/comm/mqtt"
	"github.com/robotalks/fpctl/pkg/sensor"
)

// Config provides options to set up a sensor session.
type Config struct {
	// Port is the serial device, e.g. COM12, /dev/ttyUSB0 or
	// tcp://host:port for a serial-over-TCP bridge.
	Port     string
	BaudRate int

	// MQTTBrokerURL enables event publishing when set.
	// e.g. mqtt://host:port/topic-prefix
	MQTTBrokerURL string
	// SourceID names this controller in published events.
	SourceID string
}

var defaultConfig = Config{
	Port:     "COM12",
	BaudRate: 9600,
}

func init() {
	if val := os.Getenv("FPCTL_PORT"); val != "" {
		defaultConfig.Port = val
	}
	if val := os.Getenv("FPCTL_BAUD"); val != "" {
		if baud, err := strconv.Atoi(val); err == nil {
			defaultConfig.BaudRate = baud
		} else {
			log.Printf("ignore FPCTL_BAUD=%q: %v", val, err)
		}
	}
	if val := os.Getenv("FPCTL_MQTT_URL"); val != "" {
		defaultConfig.MQTTBrokerURL = val
	}
	if val := os.Getenv("FPCTL_SOURCE_ID"); val != "" {
		defaultConfig.SourceID = val
	}
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Port, "port", defaultConfig.Port, "Serial port of the sensor board.")
	flag.IntVar(&defaultConfig.BaudRate, "baud", defaultConfig.BaudRate, "Baud rate.")
	flag.StringVar(&defaultConfig.MQTTBrokerURL, "mqtt", defaultConfig.MQTTBrokerURL, "MQTT broker URL to publish events, empty to disable.")
	flag.StringVar(&defaultConfig.SourceID, "source", defaultConfig.SourceID, "Source ID in published events, defaults to machine ID.")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// Validate checks the config.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("serial port must be specified")
	}
	if c.BaudRate <= 0 {
		return fmt.Errorf("invalid baud rate %d", c.BaudRate)
	}
	return nil
}

// Source returns SourceID or the machine ID when unset.
func (c *Config) Source() string {
	if c.SourceID != "" {
		return c.SourceID
	}
	return MachineID()
}

// NewSession creates a session reading commands from src and
// printing to out.
func (c *Config) NewSession(src sensor.CommandSource, out io.Writer) (*sensor.Session, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	s := sensor.NewSession(c.Port, c.BaudRate)
	s.Commands = src
	if out != nil {
		s.Out = out
	}
	return s, nil
}

// NewPublisher creates the MQTT event publisher, or nil if
// publishing is not configured.
func (c *Config) NewPublisher() (*mqtt.Publisher, error) {
	if c.MQTTBrokerURL == "" {
		return nil, nil
	}
	pub, err := mqtt.NewPublisher(c.MQTTBrokerURL, c.Source())
	if err != nil {
		return nil, fmt.Errorf("create MQTT publisher error: %v", err)
	}
	glog.Infof("publishing events as %q to %s", pub.Source, c.MQTTBrokerURL)
	return pub, nil
}

// MustNewSession creates a session and fails on error.
func (c *Config) MustNewSession(src sensor.CommandSource, out io.Writer) *sensor.Session {
	s, err := c.NewSession(src, out)
	if err != nil {
		log.Fatalln(err)
	}
	return s
}
