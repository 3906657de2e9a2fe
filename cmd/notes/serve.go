package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-notes/internal/jobs"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(flags *globalFlags) *cobra.Command {
	var (
		addr           string
		reloadInterval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the notes read API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := flags.options(cmd)
			opts.HTTPAddr = addr
			built, err := loadModule(cmd.Context(), opts)
			if err != nil {
				return err
			}
			router, err := built.Module.Router()
			if err != nil {
				return err
			}

			interval := built.Module.Container().Config.Content.ReloadInterval
			if cmd.Flags().Changed("reload-interval") {
				interval = reloadInterval
			}
			reloader := jobs.NewReloader(built.Module, interval, jobs.WithLogger(built.Logger))
			go func() { _ = reloader.Run(cmd.Context()) }()

			srv := &http.Server{
				Addr:              built.Module.Container().Config.HTTP.Addr,
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
				WriteTimeout:      60 * time.Second,
				IdleTimeout:       60 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				built.Logger.Info("http.server.starting", "addr", srv.Addr)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return err
			case <-cmd.Context().Done():
			}

			built.Logger.Info("http.server.stopping")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return err
			}
			return <-errCh
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides config)")
	cmd.Flags().DurationVar(&reloadInterval, "reload-interval", 0, "Re-read notes at this interval (0 disables)")
	return cmd
}
