package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"bigcal/internal/layout"
)

func newEventCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event [id]",
		Short: "Show the details of one event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := initApp(cmd)
			if err != nil {
				return err
			}
			data, err := app.LoadYear(cmd.Context(), app.Year)
			if err != nil {
				return err
			}
			e, ok := layout.Find(layout.Refs(data.Events), args[0])
			if !ok {
				return fmt.Errorf("event not found in %d: %s", data.Year, args[0])
			}
			printDetail(cmd.OutOrStdout(), layout.Describe(e, app.LayoutOptions()))
			return nil
		},
	}
	return cmd
}

func printDetail(out io.Writer, d layout.Detail) {
	fmt.Fprint(out, detailText(d))
}

func detailText(d layout.Detail) string {
	var b strings.Builder
	b.WriteString(bold(d.Title) + "\n\n")
	b.WriteString(d.When + "\n")
	if d.Time != "" {
		b.WriteString(gray(d.Time) + "\n")
	}
	if d.Recurrence != "" {
		b.WriteString(gray("Repeats "+d.Recurrence) + "\n")
	}
	section := func(title, body string) {
		if body == "" {
			return
		}
		b.WriteString("\n" + bold(title) + "\n" + body + "\n")
	}
	section("Description", d.Description)
	section("Location", d.Location)
	if len(d.Attendees) > 0 {
		section("Attendees", "- "+strings.Join(d.Attendees, "\n- "))
	}
	if d.Link != "" {
		b.WriteString("\n" + hyperlink("View in Google Calendar", d.Link) + "\n")
	}
	return b.String()
}
