package layout

import (
	"fmt"
	"strings"
	"time"

	"bigcal/internal/event"
	"bigcal/internal/recurrence"
)

const (
	dateFormat  = "January 2, 2006"
	clockFormat = "3:04 PM"
	stampFormat = "January 2, 2006 3:04 PM"
)

// Detail is the read-only presentation of one event.
type Detail struct {
	Title string
	// When is the primary date line; Time the secondary line.
	When        string
	Time        string
	AllDay      bool
	MultiDay    bool
	Description string
	Location    string
	Attendees   []string
	Link        string
	Color       string
	Recurrence  string
}

func Describe(e *event.Event, opts Options) Detail {
	if e == nil {
		return Detail{}
	}
	loc := opts.location()
	d := Detail{
		Title:       e.Title,
		AllDay:      e.IsAllDay(),
		MultiDay:    e.IsMultiDay(loc),
		Description: strings.TrimSpace(e.Description),
		Location:    strings.TrimSpace(e.Location),
		Link:        e.ExternalLink,
		Color:       ResolveColor(e, opts.fallback()),
	}
	for _, a := range e.Attendees {
		if name := a.Name(); name != "" {
			d.Attendees = append(d.Attendees, name)
		}
	}

	switch {
	case d.AllDay && d.MultiDay:
		d.When = fmt.Sprintf("%s - %s", e.StartDate(loc).In(loc).Format(dateFormat), e.LastDate(loc).In(loc).Format(dateFormat))
		d.Time = "All-day event"
	case d.AllDay:
		d.When = e.StartDate(loc).In(loc).Format(dateFormat)
		d.Time = "All-day"
	case d.MultiDay:
		d.When = instant(e.Start, loc).Format(stampFormat)
		d.Time = instant(e.End, loc).Format(stampFormat)
	default:
		start := instant(e.Start, loc)
		d.When = start.Format(dateFormat)
		d.Time = FormatTimeRange(e, loc)
	}

	if summary, ok := recurrence.DescribeAll(e.Recurrence, loc); ok {
		d.Recurrence = summary
	}
	return d
}

// FormatTimeRange renders "9:00 AM - 10:30 AM" for timed events and
// "All day" otherwise.
func FormatTimeRange(e *event.Event, loc *time.Location) string {
	if e == nil || e.IsAllDay() {
		return "All day"
	}
	start := instant(e.Start, loc)
	end := instant(e.End, loc)
	if e.End == nil || end.Before(start) {
		end = start
	}
	return fmt.Sprintf("%s - %s", start.Format(clockFormat), end.Format(clockFormat))
}

func instant(b event.Boundary, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	if b == nil {
		return time.Time{}
	}
	return b.Instant(loc).In(loc)
}
