package main

import (
	"fmt"
	"io"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/influxdata/fluxbridge/logger"
)

const (
	// DefaultHTTPBindAddress is the address the API listens on if none is specified.
	DefaultHTTPBindAddress = ":8086"

	// DefaultHTTPReadTimeout bounds reading a request, body included.
	DefaultHTTPReadTimeout = 10 * time.Second

	// DefaultHTTPShutdownTimeout bounds draining inflight requests on exit.
	DefaultHTTPShutdownTimeout = 10 * time.Second

	// DefaultConcurrency is the number of files fmt processes at once.
	DefaultConcurrency = 4
)

// Config represents the fluxbridge configuration file.
type Config struct {
	Logging logger.Config `toml:"logging"`
	HTTP    HTTPConfig    `toml:"http"`
}

// HTTPConfig configures the serve command.
type HTTPConfig struct {
	BindAddress     string   `toml:"bind-address"`
	ReadTimeout     Duration `toml:"read-timeout"`
	ShutdownTimeout Duration `toml:"shutdown-timeout"`
}

// NewConfig returns an instance of Config with defaults.
func NewConfig() *Config {
	c := &Config{
		Logging: logger.NewConfig(),
	}
	c.HTTP.BindAddress = DefaultHTTPBindAddress
	c.HTTP.ReadTimeout = Duration(DefaultHTTPReadTimeout)
	c.HTTP.ShutdownTimeout = Duration(DefaultHTTPShutdownTimeout)
	return c
}

// Write encodes c as TOML.
func (c *Config) Write(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// ParseConfigFile parses a configuration file at a given path. Keys absent
// from the file keep their defaults.
func ParseConfigFile(path string) (*Config, error) {
	c := NewConfig()

	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown configuration key %q", undecoded[0].String())
	}
	return c, nil
}

// ParseConfig parses a configuration string into a config object.
func ParseConfig(s string) (*Config, error) {
	c := NewConfig()

	if _, err := toml.Decode(s, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Duration is a TOML wrapper type for time.Duration.
type Duration time.Duration

func (d Duration) String() string {
	return time.Duration(d).String()
}

// UnmarshalText parses a TOML value into a duration value.
func (d *Duration) UnmarshalText(text []byte) error {
	// Ignore if there is no value set.
	if len(text) == 0 {
		return nil
	}

	duration, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(duration)
	return nil
}

// MarshalText converts a duration to a string for encoding toml.
func (d Duration) MarshalText() (text []byte, err error) {
	return []byte(d.String()), nil
}
