package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// Opt is a single command-line option
type Opt struct {
	DestP   interface{} // pointer to the destination
	Flag    string
	Default interface{}
	Desc    string
	Persist bool // also visible to sub-commands
}

// NewOpt creates a new command line option.
func NewOpt(destP interface{}, flag string, dflt interface{}, desc string) Opt {
	return Opt{
		DestP:   destP,
		Flag:    flag,
		Default: dflt,
		Desc:    desc,
	}
}

// Program parses CLI options
type Program struct {
	// Run is invoked by cobra on execute with the positional arguments.
	// A nil Run makes a command that only groups sub-commands.
	Run func(args []string) error
	// Name is the name of the program in help usage and the env var prefix.
	Name string
	// Short is the one line help text.
	Short string
	// Args validates the positional arguments, cobra.NoArgs when nil.
	Args cobra.PositionalArgs
	// Opts are the command line/env var options to the program
	Opts []Opt
}

// NewCommand creates a new cobra command to be executed that respects env vars.
//
// The upper-case name of the program, given in v's env prefix, is the prefix
// of all environment variables: a flag named http-bind-address on program
// fluxbridge is read from FLUXBRIDGE_HTTP_BIND_ADDRESS.
func NewCommand(v *viper.Viper, p *Program) *cobra.Command {
	args := p.Args
	if args == nil {
		args = cobra.NoArgs
	}
	cmd := &cobra.Command{
		Use:           p.Name,
		Short:         p.Short,
		Args:          args,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	if p.Run != nil {
		cmd.RunE = func(_ *cobra.Command, args []string) error {
			return p.Run(args)
		}
	}

	BindOptions(v, cmd, p.Opts)
	return cmd
}

// NewViper returns a viper instance reading env vars prefixed with the
// upper-case program name, with "-" in flag names mapped to "_".
func NewViper(name string) *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(strings.ToUpper(name))
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	return v
}

// EnvName returns the environment variable read for flag under prefix.
func EnvName(prefix, flag string) string {
	return strings.ToUpper(prefix + "_" + strings.Replace(flag, "-", "_", -1))
}

// IsSet reports whether flag was given to cmd on the command line or through
// its environment variable, as opposed to holding its default.
func IsSet(cmd *cobra.Command, prefix, flag string) bool {
	if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
		return true
	}
	_, ok := os.LookupEnv(EnvName(prefix, flag))
	return ok
}

// BindOptions adds opts to the specified command and registers those options
// with v. Destinations receive the env var value when one is set; a flag given
// on the command line overrides it when the command parses its flags.
func BindOptions(v *viper.Viper, cmd *cobra.Command, opts []Opt) {
	for _, o := range opts {
		flags := cmd.Flags()
		if o.Persist {
			flags = cmd.PersistentFlags()
		}

		switch destP := o.DestP.(type) {
		case *string:
			var d string
			if o.Default != nil {
				d = o.Default.(string)
			}
			flags.StringVar(destP, o.Flag, d, o.Desc)
			mustBindPFlag(v, o.Flag, cmd, o.Persist)
			*destP = v.GetString(o.Flag)
		case *int:
			var d int
			if o.Default != nil {
				d = o.Default.(int)
			}
			flags.IntVar(destP, o.Flag, d, o.Desc)
			mustBindPFlag(v, o.Flag, cmd, o.Persist)
			*destP = v.GetInt(o.Flag)
		case *bool:
			var d bool
			if o.Default != nil {
				d = o.Default.(bool)
			}
			flags.BoolVar(destP, o.Flag, d, o.Desc)
			mustBindPFlag(v, o.Flag, cmd, o.Persist)
			*destP = v.GetBool(o.Flag)
		case *time.Duration:
			var d time.Duration
			if o.Default != nil {
				d = o.Default.(time.Duration)
			}
			flags.DurationVar(destP, o.Flag, d, o.Desc)
			mustBindPFlag(v, o.Flag, cmd, o.Persist)
			*destP = v.GetDuration(o.Flag)
		case *zapcore.Level:
			var d zapcore.Level
			if o.Default != nil {
				d = o.Default.(zapcore.Level)
			}
			LevelVar(flags, destP, o.Flag, d, o.Desc)
			mustBindPFlag(v, o.Flag, cmd, o.Persist)
			if s := v.GetString(o.Flag); s != "" {
				if err := destP.Set(s); err != nil {
					panic(fmt.Errorf("invalid %s: %w", o.Flag, err))
				}
			}
		default:
			panic(fmt.Errorf("unknown destination type %T", o.DestP))
		}
	}
}

func mustBindPFlag(v *viper.Viper, key string, cmd *cobra.Command, persist bool) {
	flag := cmd.Flags().Lookup(key)
	if persist {
		flag = cmd.PersistentFlags().Lookup(key)
	}
	if err := v.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}
