package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"bigcal/internal/ics"
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Write the year's events as an ICS file (\"-\" or no file for stdout)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := initApp(cmd)
			if err != nil {
				return err
			}
			data, err := app.LoadYear(cmd.Context(), app.Year)
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			target := ""
			if len(args) == 1 && args[0] != "-" {
				target = args[0]
				f, err := os.Create(target)
				if err != nil {
					return fmt.Errorf("create %s: %w", target, err)
				}
				defer func() { _ = f.Close() }()
				w = f
			}
			if err := ics.Export(w, data.Events, app.Now()); err != nil {
				return err
			}
			if target != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d events to %s\n", len(data.Events), target)
			}
			return nil
		},
	}
	return cmd
}
