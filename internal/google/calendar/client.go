// Package calendar reads calendars and events from the Google Calendar API
// and converts them to the event model.
package calendar

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// pageSize is the largest page events.list accepts.
const pageSize = 2500

type Client struct {
	svc *calendar.Service
}

func New(ctx context.Context, httpClient *http.Client, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	svc, err := calendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("calendar service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// Calendar is one entry of the user's calendar list.
type Calendar struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Color    string `json:"color"`
	Primary  bool   `json:"primary"`
	Selected bool   `json:"selected"`
}

func (c *Client) ListCalendars(ctx context.Context) ([]Calendar, error) {
	var out []Calendar
	err := c.svc.CalendarList.List().Pages(ctx, func(resp *calendar.CalendarList) error {
		for _, item := range resp.Items {
			if item == nil {
				continue
			}
			out = append(out, calendarFromEntry(item))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list calendars: %w", err)
	}
	return out, nil
}

func calendarFromEntry(item *calendar.CalendarListEntry) Calendar {
	name := item.SummaryOverride
	if name == "" {
		name = item.Summary
	}
	color := item.BackgroundColor
	if color == "" {
		color = DefaultCalendarColor
	}
	return Calendar{
		ID:       item.Id,
		Name:     name,
		Color:    color,
		Primary:  item.Primary,
		Selected: item.Selected,
	}
}

// ListEventsForYear returns every single event instance of calendarID that
// intersects the year, following all result pages. Instances of a recurring
// series carry the series' RRULE lines in Recurrence.
func (c *Client) ListEventsForYear(ctx context.Context, calendarID string, year int, loc *time.Location) ([]*calendar.Event, error) {
	if calendarID == "" {
		return nil, fmt.Errorf("calendarID is required")
	}
	timeMin, timeMax := YearWindow(year, loc)
	call := c.svc.Events.List(calendarID).
		ShowDeleted(false).
		SingleEvents(true).
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		OrderBy("startTime").
		MaxResults(pageSize)
	var items []*calendar.Event
	err := call.Pages(ctx, func(resp *calendar.Events) error {
		items = append(items, resp.Items...)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list events for %s: %w", calendarID, err)
	}
	c.attachRecurrence(ctx, calendarID, items)
	return items, nil
}

// attachRecurrence copies the rule of each recurring series onto its
// instances, one lookup per series. A failed lookup leaves the instances
// without a rule.
func (c *Client) attachRecurrence(ctx context.Context, calendarID string, items []*calendar.Event) {
	rules := map[string][]string{}
	for _, item := range items {
		if item == nil || item.RecurringEventId == "" || len(item.Recurrence) > 0 {
			continue
		}
		rule, ok := rules[item.RecurringEventId]
		if !ok {
			master, err := c.svc.Events.Get(calendarID, item.RecurringEventId).Fields("recurrence").Context(ctx).Do()
			if err != nil {
				slog.Debug("recurring series lookup failed", "calendar", calendarID, "series", item.RecurringEventId, "err", err)
			} else {
				rule = master.Recurrence
			}
			rules[item.RecurringEventId] = rule
		}
		item.Recurrence = rule
	}
}

// YearWindow is [January 1 of year, January 1 of year+1) in loc.
func YearWindow(year int, loc *time.Location) (time.Time, time.Time) {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(year, time.January, 1, 0, 0, 0, 0, loc), time.Date(year+1, time.January, 1, 0, 0, 0, 0, loc)
}
