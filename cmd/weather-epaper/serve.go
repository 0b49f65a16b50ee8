package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	httpapi "github.com/i474232898/weather-epaper/internal/api/http"
	"github.com/i474232898/weather-epaper/internal/scheduler"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Refresh the display on a schedule and serve the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		sched := scheduler.New(a.dash, a.cfg.RefreshInterval, 2*time.Minute, a.log.WithField("component", "scheduler"))
		if err := sched.Start(); err != nil {
			return err
		}
		defer sched.Stop()

		server := httpapi.NewApp(httpapi.Deps{
			Frames:       a.store,
			Dashboard:    a.dash,
			Variants:     a.cfg.Layouts,
			DefaultScale: a.cfg.PreviewScale,
			Gatherer:     a.registry,
			Log:          a.log.WithField("component", "http"),
		})

		go func() {
			if err := server.Listen(":" + a.cfg.Port); err != nil {
				a.log.WithError(err).Error("fiber server stopped")
			}
		}()
		a.log.Infof("listening on :%s", a.cfg.Port)

		// Wait for termination signal
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.ShutdownWithContext(shutdownCtx); err != nil {
			a.log.WithError(err).Warn("error during shutdown")
		}
		return nil
	},
}
