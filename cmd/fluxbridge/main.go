package main

import (
	"fmt"
	"io"
	"os"

	"github.com/influxdata/fluxbridge"
	"github.com/influxdata/fluxbridge/boundary"
	"github.com/influxdata/fluxbridge/fluxfrontend"
	"github.com/influxdata/fluxbridge/kit/cli"
	"github.com/influxdata/fluxbridge/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const programName = "fluxbridge"

func main() {
	a := newApp(fluxfrontend.New(), os.Stdin, os.Stdout, os.Stderr)
	if err := a.rootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// app holds the state shared by every sub-command.
type app struct {
	v        *viper.Viper
	frontend fluxbridge.Frontend

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	configPath string
	logLevel   zapcore.Level
	logFormat  string

	config *Config
	log    *zap.Logger
	reg    *prometheus.Registry
}

func newApp(fe fluxbridge.Frontend, stdin io.Reader, stdout, stderr io.Writer) *app {
	return &app{
		v:        cli.NewViper(programName),
		frontend: fe,
		stdin:    stdin,
		stdout:   stdout,
		stderr:   stderr,
		config:   NewConfig(),
		log:      zap.NewNop(),
		reg:      prometheus.NewRegistry(),
	}
}

func (a *app) rootCommand() *cobra.Command {
	cmd := cli.NewCommand(a.v, &cli.Program{
		Name:  programName,
		Short: "Parse, format and type flux source at a serialized boundary",
		Opts: []cli.Opt{
			{
				DestP:   &a.configPath,
				Flag:    "config",
				Default: "",
				Desc:    "path to a TOML configuration file",
				Persist: true,
			},
			{
				DestP:   &a.logLevel,
				Flag:    "log-level",
				Default: zapcore.InfoLevel,
				Desc:    "supported log levels are debug, info, warn and error",
				Persist: true,
			},
			{
				DestP:   &a.logFormat,
				Flag:    "log-format",
				Default: logger.FormatAuto,
				Desc:    "log format: auto, console, json or logfmt",
				Persist: true,
			},
		},
	})
	cmd.SetIn(a.stdin)
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)
	cmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		return a.setup(cmd)
	}
	cmd.PersistentPostRun = func(*cobra.Command, []string) {
		_ = a.log.Sync()
	}

	cmd.AddCommand(
		a.parseCommand(),
		a.formatCommand(),
		a.varTypeCommand(),
		a.fmtCommand(),
		a.serveCommand(),
		a.configCommand(),
	)
	return cmd
}

// setup loads the configuration file, applies flag and env overrides, and
// builds the logger.
func (a *app) setup(cmd *cobra.Command) error {
	if a.configPath != "" {
		c, err := ParseConfigFile(a.configPath)
		if err != nil {
			return fmt.Errorf("error parsing configuration %s: %w", a.configPath, err)
		}
		a.config = c
	}

	if cli.IsSet(cmd, programName, "log-level") {
		a.config.Logging.Level = a.logLevel
	}
	if cli.IsSet(cmd, programName, "log-format") {
		a.config.Logging.Format = a.logFormat
	}

	log, err := a.config.Logging.New(a.stderr)
	if err != nil {
		return err
	}
	a.log = log.With(zap.String("command", cmd.Name()))
	if a.configPath != "" {
		a.log.Debug("Using configuration", zap.String("path", a.configPath))
	}
	return nil
}

// service returns the boundary service with logging, and with metrics when
// instrument is set.
func (a *app) service(instrument bool) fluxbridge.BoundaryService {
	var svc fluxbridge.BoundaryService = boundary.NewService(a.frontend)
	svc = boundary.NewLoggingService(a.log.With(zap.String("service", "boundary")), svc)
	if instrument {
		svc = boundary.NewMetricService(a.reg, svc)
	}
	return svc
}

func (a *app) configCommand() *cobra.Command {
	return cli.NewCommand(a.v, &cli.Program{
		Name:  "config",
		Short: "Print the effective configuration as TOML",
		Run: func([]string) error {
			return a.config.Write(a.stdout)
		},
	})
}
