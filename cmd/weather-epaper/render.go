package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/i474232898/weather-epaper/internal/preview"
)

var (
	renderOut   string
	renderScale int
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Run one refresh and write the frame to a PNG file",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(preview.NewFileSink(renderOut, renderScale))
		if err != nil {
			return err
		}
		defer a.Close()

		frame, err := a.dash.Refresh(cmd.Context())
		if err != nil {
			return err
		}
		for _, w := range frame.Warnings {
			a.log.Warn(w)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s, %d forecast days)\n", renderOut, frame.Variant, len(frame.Days))
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "frame.png", "output PNG path")
	renderCmd.Flags().IntVar(&renderScale, "scale", 1, fmt.Sprintf("upscale factor, 1..%d", preview.MaxScale))
}
