package cli

import (
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewCommand_Flags(t *testing.T) {
	var (
		addr    string
		workers int
		write   bool
		timeout time.Duration
		level   zapcore.Level
		gotArgs []string
	)
	cmd := NewCommand(NewViper("fluxbridge"), &Program{
		Name: "fmt",
		Args: cobra.MinimumNArgs(1),
		Run: func(args []string) error {
			gotArgs = args
			return nil
		},
		Opts: []Opt{
			NewOpt(&addr, "http-bind-address", ":8086", "bind address"),
			NewOpt(&workers, "concurrency", 4, "workers"),
			NewOpt(&write, "write", false, "write files"),
			NewOpt(&timeout, "timeout", time.Second, "timeout"),
			NewOpt(&level, "log-level", zapcore.InfoLevel, "level"),
		},
	})

	cmd.SetArgs([]string{"--concurrency", "8", "--write", "--log-level", "debug", "a.flux", "b.flux"})
	require.NoError(t, cmd.Execute())

	assert.Equal(t, ":8086", addr)
	assert.Equal(t, 8, workers)
	assert.True(t, write)
	assert.Equal(t, time.Second, timeout)
	assert.Equal(t, zapcore.DebugLevel, level)
	assert.Equal(t, []string{"a.flux", "b.flux"}, gotArgs)
}

func TestNewCommand_EnvVars(t *testing.T) {
	t.Setenv("FLUXBRIDGE_HTTP_BIND_ADDRESS", ":9999")
	t.Setenv("FLUXBRIDGE_LOG_LEVEL", "warn")
	t.Setenv("FLUXBRIDGE_CONCURRENCY", "3")

	var (
		addr    string
		workers int
		level   zapcore.Level
	)
	cmd := NewCommand(NewViper("fluxbridge"), &Program{
		Name: "serve",
		Run:  func([]string) error { return nil },
		Opts: []Opt{
			NewOpt(&addr, "http-bind-address", ":8086", "bind address"),
			NewOpt(&workers, "concurrency", 1, "workers"),
			NewOpt(&level, "log-level", zapcore.InfoLevel, "level"),
		},
	})

	assert.Equal(t, ":9999", addr)
	assert.Equal(t, 3, workers)
	assert.Equal(t, zapcore.WarnLevel, level)

	cmd.SetArgs([]string{"--http-bind-address", ":1234"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, ":1234", addr, "flags override env vars")
}

func TestNewCommand_NoArgsByDefault(t *testing.T) {
	cmd := NewCommand(NewViper("fluxbridge"), &Program{
		Name: "serve",
		Run:  func([]string) error { return nil },
	})
	cmd.SetArgs([]string{"unexpected"})
	assert.Error(t, cmd.Execute())
}

func TestLevelVar_Invalid(t *testing.T) {
	var level zapcore.Level
	cmd := NewCommand(NewViper("fluxbridge"), &Program{
		Name: "serve",
		Run:  func([]string) error { return nil },
		Opts: []Opt{NewOpt(&level, "log-level", zapcore.InfoLevel, "level")},
	})
	cmd.SetArgs([]string{"--log-level", "loud"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown log level")
}

func TestIsSet(t *testing.T) {
	var addr, format string
	cmd := NewCommand(NewViper("fluxbridge"), &Program{
		Name: "serve",
		Run:  func([]string) error { return nil },
		Opts: []Opt{
			NewOpt(&addr, "http-bind-address", ":8086", "bind address"),
			NewOpt(&format, "log-format", "auto", "format"),
		},
	})
	t.Setenv("FLUXBRIDGE_LOG_FORMAT", "json")

	cmd.SetArgs([]string{"--http-bind-address", ":1"})
	require.NoError(t, cmd.Execute())

	assert.True(t, IsSet(cmd, "fluxbridge", "http-bind-address"))
	assert.True(t, IsSet(cmd, "fluxbridge", "log-format"))
	assert.False(t, IsSet(cmd, "fluxbridge", "unknown"))
	assert.Equal(t, "FLUXBRIDGE_HTTP_BIND_ADDRESS", EnvName("fluxbridge", "http-bind-address"))
}
