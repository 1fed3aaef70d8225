package main

import (
	"context"
	"errors"
	"net"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	fluxhttp "github.com/influxdata/fluxbridge/http"
	"github.com/influxdata/fluxbridge/kit/cli"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func (a *app) serveCommand() *cobra.Command {
	var bindAddress string
	var cmd *cobra.Command
	cmd = cli.NewCommand(a.v, &cli.Program{
		Name:  "serve",
		Short: "Serve the boundary operations over HTTP",
		Opts: []cli.Opt{
			cli.NewOpt(&bindAddress, "http-bind-address", DefaultHTTPBindAddress, "bind address for the REST HTTP API"),
		},
		Run: func([]string) error {
			if cli.IsSet(cmd, programName, "http-bind-address") {
				a.config.HTTP.BindAddress = bindAddress
			}

			ln, err := net.Listen("tcp", a.config.HTTP.BindAddress)
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()
			return a.serve(ctx, ln)
		},
	})
	return cmd
}

// serve runs the API on ln until ctx is done, then drains inflight requests.
func (a *app) serve(ctx context.Context, ln net.Listener) error {
	log := a.log.With(zap.String("service", "http"))
	srv := &nethttp.Server{
		Handler:           fluxhttp.NewPlatformHandler(log, a.reg, a.service(true)),
		ReadHeaderTimeout: time.Duration(a.config.HTTP.ReadTimeout),
		ReadTimeout:       time.Duration(a.config.HTTP.ReadTimeout),
		ErrorLog:          zap.NewStdLog(log),
	}

	errc := make(chan error, 1)
	go func() {
		log.Info("Listening", zap.String("transport", "http"), zap.String("addr", ln.Addr().String()))
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	log.Info("Stopping")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(a.config.HTTP.ShutdownTimeout))
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, nethttp.ErrServerClosed) {
		return err
	}
	return nil
}
