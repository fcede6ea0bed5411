package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/TWRT/equipeapp/internal/api"
)

func newServeCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			server := &http.Server{
				Addr:    a.cfg.HTTP.Addr,
				Handler: api.SetupRouter(a.service, a.logger),
			}

			errCh := make(chan error, 1)
			go func() {
				a.logger.Info().
					Str("addr", server.Addr).
					Dur("cache_ttl", a.cfg.Cache.TTL).
					Msg("serving http")
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					a.logger.Error().
						Err(err).
						Msg("failed to listen and serve http")
				}
				return err
			case <-ctx.Done():
			}

			a.logger.Info().Msg("shutting down http server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTP.ShutdownTimeout)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				a.logger.Error().
					Err(err).
					Msg("failed to shutdown http server")
				return err
			}
			a.logger.Info().Msg("shut down http server")
			return nil
		},
	}
}
