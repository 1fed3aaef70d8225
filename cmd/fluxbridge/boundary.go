package main

import (
	"fmt"
	"io"
	"os"

	"github.com/influxdata/fluxbridge"
	"github.com/influxdata/fluxbridge/boundary"
	"github.com/influxdata/fluxbridge/kit/cli"
	"github.com/influxdata/fluxbridge/kit/platform/errors"
	"github.com/spf13/cobra"
)

const stdinArg = "-"

func (a *app) parseCommand() *cobra.Command {
	return cli.NewCommand(a.v, &cli.Program{
		Name:  "parse",
		Short: "Parse flux source and print the encoded syntax tree",
		Args:  cobra.MaximumNArgs(1),
		Run: func(args []string) error {
			unit, err := a.readSource(args)
			if err != nil {
				return err
			}

			encoded, err := a.service(false).Parse(unit)
			if err != nil {
				return err
			}

			diags, err := boundary.Diagnostics(encoded)
			if err != nil {
				return err
			}
			for _, d := range diags {
				fmt.Fprintf(a.stderr, "%s: %s\n", displayName(unit.FileName), d)
			}

			_, err = fmt.Fprintf(a.stdout, "%s\n", encoded)
			return err
		},
	})
}

func (a *app) formatCommand() *cobra.Command {
	return cli.NewCommand(a.v, &cli.Program{
		Name:  "format",
		Short: "Print the flux source of an encoded syntax tree",
		Args:  cobra.MaximumNArgs(1),
		Run: func(args []string) error {
			encoded, _, err := a.readInput(args)
			if err != nil {
				return err
			}

			src, err := a.service(false).Format(encoded)
			if err != nil {
				return err
			}
			_, err = io.WriteString(a.stdout, src)
			return err
		},
	})
}

func (a *app) varTypeCommand() *cobra.Command {
	var name string
	return cli.NewCommand(a.v, &cli.Program{
		Name:  "vartype",
		Short: "Print the encoded type of a variable bound in flux source",
		Args:  cobra.MaximumNArgs(1),
		Opts: []cli.Opt{
			cli.NewOpt(&name, "name", "", "name of the variable to resolve"),
		},
		Run: func(args []string) error {
			if name == "" {
				return &errors.Error{
					Code: errors.EInvalid,
					Msg:  "--name is required",
				}
			}

			unit, err := a.readSource(args)
			if err != nil {
				return err
			}

			encoded, err := a.service(false).ResolveVariableType(unit, name)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(a.stdout, "%s\n", encoded)
			return err
		},
	})
}

// readSource reads the source unit named by args, stdin when there is none.
func (a *app) readSource(args []string) (fluxbridge.SourceUnit, error) {
	b, name, err := a.readInput(args)
	if err != nil {
		return fluxbridge.SourceUnit{}, err
	}
	return fluxbridge.SourceUnit{Source: string(b), FileName: name}, nil
}

// readInput returns the contents and name of the file named by args. Stdin
// has no name.
func (a *app) readInput(args []string) ([]byte, string, error) {
	if len(args) == 0 || args[0] == stdinArg {
		b, err := io.ReadAll(a.stdin)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return b, "", nil
	}

	b, err := os.ReadFile(args[0])
	if err != nil {
		return nil, "", err
	}
	return b, args[0], nil
}

func displayName(fileName string) string {
	if fileName == "" {
		return "<stdin>"
	}
	return fileName
}
