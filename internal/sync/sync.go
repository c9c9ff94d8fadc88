// Package sync fetches a year of events from every shown calendar and keeps
// the local cache current.
package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	gosync "sync"
	"time"

	"google.golang.org/api/calendar/v3"

	"bigcal/internal/cache"
	"bigcal/internal/event"
	gcal "bigcal/internal/google/calendar"
)

// Source is the subset of the Google client the fetcher needs.
type Source interface {
	ListCalendars(ctx context.Context) ([]gcal.Calendar, error)
	ListEventsForYear(ctx context.Context, calendarID string, year int, loc *time.Location) ([]*calendar.Event, error)
}

// Filter decides whether a calendar is shown; selected is the calendar
// list's own flag.
type Filter func(calendarID string, selected bool) bool

type Fetcher struct {
	Source   Source
	Filter   Filter
	Location *time.Location
	Now      func() time.Time
}

// Result is one year of events in calendar list order.
type Result struct {
	Year      int
	Calendars []gcal.Calendar
	Events    []event.Event
	// Failed lists calendars whose events could not be fetched.
	Failed   []string
	SyncedAt time.Time
}

type calendarResult struct {
	items []*calendar.Event
	err   error
}

// FetchYear fetches every shown calendar in parallel. A calendar that
// fails is logged and contributes no events; the call only fails when the
// calendar list cannot be read or every calendar failed.
func (f *Fetcher) FetchYear(ctx context.Context, year int) (Result, *cache.YearCache, error) {
	all, err := f.Source.ListCalendars(ctx)
	if err != nil {
		return Result{}, nil, err
	}
	shown := make([]gcal.Calendar, 0, len(all))
	for _, cal := range all {
		if f.Filter == nil || f.Filter(cal.ID, cal.Selected) {
			shown = append(shown, cal)
		}
	}

	results := make([]calendarResult, len(shown))
	var wg gosync.WaitGroup
	for i, cal := range shown {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			items, err := f.Source.ListEventsForYear(ctx, id, year, f.location())
			results[i] = calendarResult{items: items, err: err}
		}(i, cal.ID)
	}
	wg.Wait()

	now := f.now()
	yc := &cache.YearCache{
		Calendars: map[string][]*calendar.Event{},
		SyncedAt:  now.Format(time.RFC3339),
	}
	out := Result{Year: year, Calendars: shown, SyncedAt: now}
	var errs []error
	for i, cal := range shown {
		yc.CalendarOrder = append(yc.CalendarOrder, cal.ID)
		if results[i].err != nil {
			slog.Warn("fetch calendar failed", "calendar", cal.Name, "id", cal.ID, "err", results[i].err)
			out.Failed = append(out.Failed, cal.ID)
			errs = append(errs, results[i].err)
			yc.Failed = append(yc.Failed, cal.ID)
			continue
		}
		yc.Calendars[cal.ID] = results[i].items
		slog.Debug("fetched calendar", "calendar", cal.Name, "events", len(results[i].items))
	}
	if len(shown) > 0 && len(errs) == len(shown) {
		return Result{}, nil, fmt.Errorf("fetch %d: every calendar failed: %w", year, errors.Join(errs...))
	}
	out.Events = Events(yc, colors(shown), f.Now)
	return out, yc, nil
}

// Sync fetches the year and stores it, with calendar metadata, in the cache
// at path. A calendar that fails keeps the items of the previous cached
// fetch, and those items are part of the returned events.
func (f *Fetcher) Sync(ctx context.Context, year int, path string) (Result, error) {
	res, yc, err := f.FetchYear(ctx, year)
	if err != nil {
		return Result{}, err
	}
	c, err := cache.Load(path)
	if err != nil {
		return Result{}, fmt.Errorf("load cache: %w", err)
	}
	for _, cal := range res.Calendars {
		c.CalendarMeta[cal.ID] = cache.CalendarMeta{Name: cal.Name, Color: cal.Color, Primary: cal.Primary, Selected: cal.Selected}
	}
	if prev, ok := c.Year(year); ok && len(yc.Failed) > 0 {
		for _, id := range yc.Failed {
			if items, ok := prev.Calendars[id]; ok {
				yc.Calendars[id] = items
			}
		}
		res.Events = Events(yc, colors(res.Calendars), f.Now)
	}
	c.PutYear(year, yc)
	if err := cache.Save(path, c); err != nil {
		return Result{}, fmt.Errorf("save cache: %w", err)
	}
	return res, nil
}

// Events converts a cached year to events, flattened in calendar order.
// Cancelled instances are dropped.
func Events(yc *cache.YearCache, calendarColors map[string]string, now func() time.Time) []event.Event {
	if yc == nil {
		return nil
	}
	var out []event.Event
	for _, id := range yc.CalendarOrder {
		for _, item := range yc.Calendars[id] {
			if item == nil || gcal.Cancelled(item) {
				continue
			}
			out = append(out, gcal.ToEvent(item, id, calendarColors[id], now))
		}
	}
	return out
}

// FromCache returns the cached events of a year, if any.
func FromCache(c *cache.Cache, year int, now func() time.Time) ([]event.Event, *cache.YearCache, bool) {
	if c == nil {
		return nil, nil, false
	}
	yc, ok := c.Year(year)
	if !ok {
		return nil, nil, false
	}
	colors := make(map[string]string, len(c.CalendarMeta))
	for id, meta := range c.CalendarMeta {
		colors[id] = meta.Color
	}
	return Events(yc, colors, now), yc, true
}

func colors(cals []gcal.Calendar) map[string]string {
	out := make(map[string]string, len(cals))
	for _, cal := range cals {
		out[cal.ID] = cal.Color
	}
	return out
}

func (f *Fetcher) location() *time.Location {
	if f.Location == nil {
		return time.Local
	}
	return f.Location
}

func (f *Fetcher) now() time.Time {
	if f.Now == nil {
		return time.Now()
	}
	return f.Now()
}
