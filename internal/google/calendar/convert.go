package calendar

import (
	"log/slog"
	"strings"
	"time"

	"github.com/samber/mo"
	"google.golang.org/api/calendar/v3"

	"bigcal/internal/event"
)

// DefaultCalendarColor is used for calendars that report no color.
const DefaultCalendarColor = "#3788d8"

const untitled = "(No title)"

// ToEvent converts an API event. calendarColor becomes the source color;
// now backs boundaries that carry neither a date nor a date-time.
func ToEvent(item *calendar.Event, calendarID, calendarColor string, now func() time.Time) event.Event {
	title := strings.TrimSpace(item.Summary)
	if title == "" {
		title = untitled
	}
	e := event.Event{
		ID:           item.Id,
		Title:        title,
		Start:        ParseBoundary(item.Start, now),
		End:          ParseBoundary(item.End, now),
		Description:  item.Description,
		Location:     item.Location,
		ExternalLink: item.HtmlLink,
		CalendarID:   calendarID,
		Recurrence:   item.Recurrence,
	}
	if item.ColorId != "" {
		e.ColorKey = mo.Some(item.ColorId)
	}
	if calendarColor != "" {
		e.SourceColor = mo.Some(calendarColor)
	}
	for _, a := range item.Attendees {
		if a == nil {
			continue
		}
		e.Attendees = append(e.Attendees, event.Attendee{Email: a.Email, DisplayName: a.DisplayName})
	}
	return e
}

// ParseBoundary maps an API start or end. A date-time wins over a date.
// Boundaries with neither, or with unparsable values, fall back to now.
func ParseBoundary(edt *calendar.EventDateTime, now func() time.Time) event.Boundary {
	if now == nil {
		now = time.Now
	}
	if edt == nil {
		slog.Warn("event boundary missing, using current time")
		return event.Timed{At: now()}
	}
	if edt.DateTime != "" {
		at, err := time.Parse(time.RFC3339, edt.DateTime)
		if err == nil {
			return event.Timed{At: at, TimeZone: edt.TimeZone}
		}
		slog.Warn("invalid event date-time, using current time", "value", edt.DateTime, "err", err)
		return event.Timed{At: now(), TimeZone: edt.TimeZone}
	}
	if edt.Date != "" {
		d, err := event.ParseDate(edt.Date)
		if err == nil {
			return event.AllDay{Date: d}
		}
		slog.Warn("invalid event date, using current time", "value", edt.Date, "err", err)
		return event.Timed{At: now()}
	}
	slog.Warn("event boundary has neither date nor dateTime, using current time")
	return event.Timed{At: now()}
}

// Cancelled reports whether the API marks the instance as cancelled.
func Cancelled(item *calendar.Event) bool {
	return item != nil && strings.EqualFold(item.Status, "cancelled")
}
