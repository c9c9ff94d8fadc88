package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"bigcal/internal/event"
	"bigcal/internal/layout"
	"bigcal/internal/timeparse"
)

func newMonthCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "month [month]",
		Short: "List the events of one month (defaults to the current month)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := initApp(cmd)
			if err != nil {
				return err
			}
			month := app.Now().Month()
			if len(args) == 1 {
				month, err = timeparse.ParseMonth(args[0])
				if err != nil {
					return err
				}
			}
			data, err := app.LoadYear(cmd.Context(), app.Year)
			if err != nil {
				return err
			}
			opts := app.LayoutOptions()
			if all {
				opts.VisibleEvents = len(data.Events) + 1
			}
			m := layout.BuildMonth(data.Year, month, layout.Refs(data.Events), opts)
			printMonth(cmd.OutOrStdout(), m, opts)
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Show every event of a day instead of the first few")
	return cmd
}

func printMonth(out io.Writer, m layout.MonthLayout, opts layout.Options) {
	fmt.Fprintln(out, bold(fmt.Sprintf("%s %d", m.Month, m.Year)))
	if len(m.Spans) == 0 && m.SingleDay.Len() == 0 {
		fmt.Fprintln(out, gray("(no events)"))
		return
	}
	for _, s := range m.Spans {
		fmt.Fprintf(out, "  %s  %s %s\n", spanRange(m, s), s.Event.Title, gray("["+s.Event.ID+"]"))
	}
	if len(m.Spans) > 0 {
		fmt.Fprintln(out)
	}
	for _, cell := range m.Days {
		if cell.Total() == 0 {
			continue
		}
		date := cell.Date.In(opts.Location)
		fmt.Fprintf(out, "%s\n", date.Format("Mon Jan 2"))
		for _, e := range cell.Entries {
			fmt.Fprintf(out, "  %-19s %s %s\n", entryTime(e, opts), e.Title, gray("["+e.ID+"]"))
		}
		if cell.Hidden > 0 {
			fmt.Fprintf(out, "  %s\n", gray(fmt.Sprintf("+%d more", cell.Hidden)))
		}
	}
}

func spanRange(m layout.MonthLayout, s layout.MultiDaySpan) string {
	var b strings.Builder
	if s.ContinuesBefore {
		b.WriteString("…")
	}
	b.WriteString(fmt.Sprintf("%s %d-%d", m.Month.String()[:3], s.StartDay, s.EndDay))
	if s.ContinuesAfter {
		b.WriteString("…")
	}
	return fmt.Sprintf("%-12s", b.String())
}

func entryTime(e *event.Event, opts layout.Options) string {
	if e.IsAllDay() {
		return "all day"
	}
	return layout.FormatTimeRange(e, opts.Location)
}
