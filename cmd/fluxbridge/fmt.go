package main

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/influxdata/fluxbridge"
	"github.com/influxdata/fluxbridge/boundary"
	"github.com/influxdata/fluxbridge/kit/cli"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type fmtOptions struct {
	write       bool
	check       bool
	concurrency int
}

// fmtResult is the outcome of formatting one file.
type fmtResult struct {
	name      string
	formatted string
	changed   bool
	size      int
	err       error
}

func (a *app) fmtCommand() *cobra.Command {
	var opts fmtOptions
	return cli.NewCommand(a.v, &cli.Program{
		Name:  "fmt",
		Short: "Format flux source files through the encoded syntax tree",
		Args:  cobra.MinimumNArgs(1),
		Opts: []cli.Opt{
			cli.NewOpt(&opts.write, "write", false, "write the result to the source files instead of stdout"),
			cli.NewOpt(&opts.check, "check", false, "list files whose formatting differs and fail if there are any"),
			cli.NewOpt(&opts.concurrency, "concurrency", DefaultConcurrency, "number of files formatted at once"),
		},
		Run: func(args []string) error {
			return a.runFmt(context.Background(), opts, args)
		},
	})
}

func (a *app) runFmt(ctx context.Context, opts fmtOptions, files []string) error {
	if opts.write && opts.check {
		return fmt.Errorf("--write and --check are mutually exclusive")
	}
	if opts.concurrency < 1 {
		opts.concurrency = 1
	}

	svc := a.service(false)
	results := make([]fmtResult, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.concurrency)
	for i, name := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = formatFile(svc, name)
			if opts.write && results[i].err == nil && results[i].changed {
				results[i].err = writeFile(name, results[i].formatted)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var failed, changed, total int
	for _, r := range results {
		total += r.size
		if r.err != nil {
			failed++
			fmt.Fprintf(a.stderr, "%s: %v\n", r.name, r.err)
			continue
		}
		if r.changed {
			changed++
		}
		switch {
		case opts.check:
			if r.changed {
				fmt.Fprintln(a.stdout, r.name)
			}
		case opts.write:
		default:
			fmt.Fprint(a.stdout, r.formatted)
		}
	}

	a.log.Info("Formatted files",
		zap.Int("files", len(files)),
		zap.Int("changed", changed),
		zap.Int("failed", failed),
		zap.String("size", humanize.Bytes(uint64(total))),
	)

	if failed > 0 {
		return fmt.Errorf("%d of %d files could not be formatted", failed, len(files))
	}
	if opts.check && changed > 0 {
		return fmt.Errorf("%d of %d files are not formatted", changed, len(files))
	}
	return nil
}

// formatFile runs name through parse and format. Files with syntax errors
// are reported rather than printed.
func formatFile(svc fluxbridge.BoundaryService, name string) fmtResult {
	r := fmtResult{name: name}

	src, err := os.ReadFile(name)
	if err != nil {
		r.err = err
		return r
	}
	r.size = len(src)

	encoded, err := svc.Parse(fluxbridge.SourceUnit{Source: string(src), FileName: name})
	if err != nil {
		r.err = err
		return r
	}
	syntax, err := boundary.SyntaxErrors(encoded)
	if err != nil {
		r.err = err
		return r
	}
	if syntax != nil {
		r.err = syntax
		return r
	}

	r.formatted, r.err = svc.Format(encoded)
	r.changed = r.err == nil && !bytes.Equal(src, []byte(r.formatted))
	return r
}

func writeFile(name, src string) error {
	fi, err := os.Stat(name)
	if err != nil {
		return err
	}
	return os.WriteFile(name, []byte(src), fi.Mode().Perm())
}
