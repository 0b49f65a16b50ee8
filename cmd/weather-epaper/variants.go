package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/i474232898/weather-epaper/internal/layout"
)

var layoutFile string

var variantsCmd = &cobra.Command{
	Use:   "variants",
	Short: "List the display variants",
	RunE: func(cmd *cobra.Command, args []string) error {
		var overrides map[string]layout.Variant
		if layoutFile != "" {
			var err error
			if overrides, err = layout.LoadOverrides(layoutFile); err != nil {
				return err
			}
		}

		all := layout.Catalog(overrides)
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tSIZE\tCOLOURS\tFORECAST")
		for _, name := range layout.Names(overrides) {
			v := all[name]
			colours := "black"
			if v.Chromatic {
				colours = "black+chromatic"
			}
			fmt.Fprintf(w, "%s\t%dx%d\t%s\t%t\n", name, v.Width, v.Height, colours, v.Forecast)
		}
		return w.Flush()
	},
}

func init() {
	variantsCmd.Flags().StringVar(&layoutFile, "layout", os.Getenv("LAYOUT_FILE"), "YAML file with extra variants")
}
