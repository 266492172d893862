package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/xdccfind/xdccfind/internal/api"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(ctx *commandContext) *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the search HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if address == "" {
				address = cfg.Server.Address()
			}

			log, err := ctx.newLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer log.Close()

			svc, err := ctx.newSearchService(log, nil)
			if err != nil {
				return err
			}
			server := api.NewServer(svc, cfg, log.Logger)

			errCh := make(chan error, 1)
			go func() {
				if err := server.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			defer signal.Stop(quit)

			select {
			case err, ok := <-errCh:
				if ok {
					return err
				}
				return nil
			case sig := <-quit:
				log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&address, "addr", "", "Listen address (default from server.host and server.port)")

	return cmd
}
