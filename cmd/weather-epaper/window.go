package main

import (
	"github.com/spf13/cobra"

	"github.com/i474232898/weather-epaper/internal/preview/window"
	"github.com/i474232898/weather-epaper/internal/scheduler"
)

var windowScale int

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Show frames in a desktop window while refreshing on a schedule",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		// the window needs the panel size before the first frame exists
		win := window.New(a.variant.Width, a.variant.Height, windowScale)
		a.dash.AddSink(win)

		sched := scheduler.New(a.dash, a.cfg.RefreshInterval, 0, a.log.WithField("component", "scheduler"))
		if err := sched.Start(); err != nil {
			return err
		}
		defer sched.Stop()

		return win.Run("weather-epaper: " + a.variant.Name)
	},
}

func init() {
	windowCmd.Flags().IntVar(&windowScale, "scale", 2, "window zoom")
}
