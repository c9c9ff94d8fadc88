package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"bigcal/internal/event"
	"bigcal/internal/layout"
)

const (
	cellWidth  = 3
	labelWidth = 5
	marker     = "●"
)

type gridOptions struct {
	Color    bool
	Selected time.Month
	Today    event.Date
	Fallback string
}

// renderYear draws one block of rows per month: span bars first, in slot
// order, then one row per visible event and a "+k" row when a day has
// more.
func renderYear(months []layout.MonthLayout, opts gridOptions) string {
	var b strings.Builder
	b.WriteString(renderDayHeader(opts))
	for _, m := range months {
		b.WriteString("\n")
		b.WriteString(renderMonth(m, opts))
	}
	return b.String()
}

func renderDayHeader(opts gridOptions) string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", labelWidth))
	for day := 1; day <= 31; day++ {
		b.WriteString(fmt.Sprintf("%*d", cellWidth, day))
	}
	return muted(b.String(), opts.Color)
}

func renderMonth(m layout.MonthLayout, opts gridOptions) string {
	var rows []string
	for _, s := range m.Spans {
		rows = append(rows, renderSpanRow(m, s, opts))
	}
	rows = append(rows, renderDayNumbers(m, opts))
	visible := 0
	hidden := false
	for _, cell := range m.Days {
		visible = max(visible, len(cell.Entries))
		hidden = hidden || cell.Hidden > 0
	}
	for i := 0; i < visible; i++ {
		rows = append(rows, renderEntryRow(m, i, opts))
	}
	if hidden {
		rows = append(rows, renderOverflowRow(m, opts))
	}

	label := strings.ToUpper(m.Month.String()[:3])
	labelText := runewidth.FillRight(label, labelWidth)
	if opts.Color {
		style := lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
		if m.Month == opts.Selected {
			style = style.Reverse(true)
		}
		labelText = style.Render(label) + strings.Repeat(" ", labelWidth-len(label))
	} else if m.Month == opts.Selected {
		labelText = runewidth.FillRight(">"+label, labelWidth)
	}

	var b strings.Builder
	blank := strings.Repeat(" ", labelWidth)
	for i, row := range rows {
		if i > 0 {
			b.WriteString("\n")
		}
		if i == 0 {
			b.WriteString(labelText)
		} else {
			b.WriteString(blank)
		}
		b.WriteString(strings.TrimRight(row, " "))
	}
	return b.String()
}

func renderSpanRow(m layout.MonthLayout, s layout.MultiDaySpan, opts gridOptions) string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", (s.StartDay-1)*cellWidth))
	b.WriteString(spanBar(s, s.Days()*cellWidth, opts))
	return b.String()
}

// spanBar fits the title into a bar of width cells. Without color the bar
// is drawn with brackets, or arrows where the event continues into the
// neighbouring month.
func spanBar(s layout.MultiDaySpan, width int, opts gridOptions) string {
	title := ""
	if s.Event != nil {
		title = s.Event.Title
	}
	if opts.Color {
		text := runewidth.FillRight(runewidth.Truncate(" "+title, width, "…"), width)
		return lipgloss.NewStyle().
			Background(lipgloss.Color(s.Color)).
			Foreground(lipgloss.Color("#ffffff")).
			Bold(true).
			Render(text)
	}
	left, right := "[", "]"
	if s.ContinuesBefore {
		left = "<"
	}
	if s.ContinuesAfter {
		right = ">"
	}
	inner := width - 2
	text := runewidth.Truncate(title, inner, "…")
	text += strings.Repeat("=", inner-runewidth.StringWidth(text))
	return left + text + right
}

func renderDayNumbers(m layout.MonthLayout, opts gridOptions) string {
	var b strings.Builder
	for _, cell := range m.Days {
		text := fmt.Sprintf("%*d", cellWidth, cell.Day)
		switch {
		case cell.Date == opts.Today && opts.Color:
			text = lipgloss.NewStyle().Bold(true).Reverse(true).Render(text)
		case cell.Date == opts.Today:
			text = fmt.Sprintf("%*s", cellWidth, fmt.Sprintf("*%d", cell.Day))
		case opts.Color:
			text = muted(text, true)
		}
		b.WriteString(text)
	}
	return b.String()
}

func renderEntryRow(m layout.MonthLayout, i int, opts gridOptions) string {
	var b strings.Builder
	for _, cell := range m.Days {
		if i >= len(cell.Entries) {
			b.WriteString(strings.Repeat(" ", cellWidth))
			continue
		}
		dot := marker
		if opts.Color {
			color := layout.ResolveColor(cell.Entries[i], opts.Fallback)
			dot = lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(marker)
		}
		b.WriteString(strings.Repeat(" ", cellWidth-1) + dot)
	}
	return b.String()
}

func renderOverflowRow(m layout.MonthLayout, opts gridOptions) string {
	var b strings.Builder
	for _, cell := range m.Days {
		if cell.Hidden == 0 {
			b.WriteString(strings.Repeat(" ", cellWidth))
			continue
		}
		b.WriteString(muted(fmt.Sprintf("%*s", cellWidth, fmt.Sprintf("+%d", cell.Hidden)), opts.Color))
	}
	return b.String()
}

func muted(text string, color bool) string {
	if !color {
		return text
	}
	return lipgloss.NewStyle().Foreground(colorMuted).Render(text)
}

// renderLegend lists the palette colors used by the events of the year.
func renderLegend(events []*event.Event, opts gridOptions) string {
	used := map[string]bool{}
	for _, e := range events {
		if key, ok := e.ColorKey.Get(); ok {
			used[key] = true
		}
	}
	var parts []string
	for _, p := range layout.Palette {
		if !used[p.Key] {
			continue
		}
		dot := marker
		if opts.Color {
			dot = lipgloss.NewStyle().Foreground(lipgloss.Color(p.Color)).Render(marker)
		}
		parts = append(parts, dot+" "+p.Name)
	}
	return strings.Join(parts, "  ")
}
