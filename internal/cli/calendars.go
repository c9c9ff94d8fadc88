package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCalendarsCmd() *cobra.Command {
	var showIDs bool
	cmd := &cobra.Command{
		Use:   "calendars",
		Short: "List the calendars of the Google account",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := initApp(cmd)
			if err != nil {
				return err
			}
			if err := app.requireGoogle(); err != nil {
				return err
			}
			client, err := app.calendarClient(cmd.Context())
			if err != nil {
				return err
			}
			items, err := client.ListCalendars(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(items) == 0 {
				fmt.Fprintln(out, "(none)")
				return nil
			}
			for _, cal := range items {
				mark := " "
				if app.Config.Wants(cal.ID, cal.Selected) {
					mark = "x"
				}
				primary := ""
				if cal.Primary {
					primary = " (primary)"
				}
				fmt.Fprintf(out, "[%s] %s%s %s\n", mark, cal.Name, primary, gray(cal.Color))
				if showIDs {
					fmt.Fprintf(out, "    id: %s\n", cal.ID)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&showIDs, "ids", false, "Show calendar IDs")
	return cmd
}
