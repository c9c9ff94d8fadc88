package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"bigcal/internal/event"
	"bigcal/internal/layout"
)

func newYearCmd() *cobra.Command {
	var legend bool
	cmd := &cobra.Command{
		Use:   "year",
		Short: "Print the year grid",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := initApp(cmd)
			if err != nil {
				return err
			}
			data, err := app.LoadYear(cmd.Context(), app.Year)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			opts := app.gridOptions(useColor())
			refs := layout.Refs(data.Events)
			months := layout.BuildYear(data.Year, refs, app.LayoutOptions())

			fmt.Fprintf(out, "%s  %s\n\n", bold(fmt.Sprintf("%d", data.Year)), gray(data.describe()))
			fmt.Fprintln(out, renderYear(months, opts))
			if legend {
				if text := renderLegend(refs, opts); text != "" {
					fmt.Fprintf(out, "\n%s\n", text)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&legend, "legend", false, "Show the color legend")
	return cmd
}

func (a *App) gridOptions(color bool) gridOptions {
	return gridOptions{
		Color:    color,
		Today:    event.DateOf(a.Now()),
		Fallback: a.Config.FallbackColor,
	}
}
