package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"taskboard/internal/handlers"
	"taskboard/internal/notify"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var sweepInterval time.Duration

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			feed := notify.NewFeed(a.cfg.Alerts.FeedSize)
			presenter := notify.Multi{feed, notify.LogPresenter{Logger: a.logger}}

			t, err := a.openTracker(ctx, presenter)
			if err != nil {
				return err
			}

			// Check due dates once on startup, then on every tick if enabled.
			t.SweepDue(ctx)
			if sweepInterval > 0 {
				go func() {
					ticker := time.NewTicker(sweepInterval)
					defer ticker.Stop()
					for {
						select {
						case <-ctx.Done():
							return
						case <-ticker.C:
							t.SweepDue(ctx)
						}
					}
				}()
			}

			h := handlers.New(t, feed, a.logger)
			srv := &http.Server{
				Addr:              a.cfg.Server.Addr,
				Handler:           h.Router(),
				ReadHeaderTimeout: 5 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				a.logger.Info("starting server", "addr", srv.Addr, "backend", a.cfg.Storage.Backend)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}

			a.logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().String("addr", "", "Listen address, e.g. :8080")
	cmd.Flags().DurationVar(&sweepInterval, "sweep-interval", 0, "Re-run the due-date sweep at this interval (0 disables)")
	_ = a.v.BindPFlag("server.addr", cmd.Flags().Lookup("addr"))
	return cmd
}
