package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	variantFlag  string
	logLevelFlag string
)

var rootCmd = &cobra.Command{
	Use:   "weather-epaper",
	Short: "Render current weather and a four-day forecast for e-paper panels",
	Long: `Fetches current conditions and a 3-hourly forecast, draws them onto a
one- or two-colour frame sized for an e-paper panel, and presents the frame
to the panel, a PNG file, a preview window or the HTTP API.

Configuration is read from the environment (and a .env file).`,
	SilenceUsage: true,
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logrus.WithError(err).Error("weather-epaper failed")
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&variantFlag, "variant", "", "display variant, overrides DISPLAY_VARIANT")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "log level, overrides LOG_LEVEL")

	rootCmd.AddCommand(serveCmd, renderCmd, windowCmd, variantsCmd)
}
