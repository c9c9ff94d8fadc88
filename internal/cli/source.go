package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"bigcal/internal/cache"
	"bigcal/internal/demo"
	"bigcal/internal/event"
	"bigcal/internal/google/calendar"
	"bigcal/internal/ics"
	"bigcal/internal/sync"
)

type sourceKind string

const (
	sourceDemo   sourceKind = "demo"
	sourceICS    sourceKind = "ics"
	sourceCache  sourceKind = "cache"
	sourceGoogle sourceKind = "google"
)

// yearData is one year of events plus where they came from.
type yearData struct {
	Year     int
	Events   []event.Event
	Source   sourceKind
	SyncedAt time.Time
	// Stale is set when a fetch failed and cached events were used instead.
	Stale  bool
	Failed []string

	fresh bool
}

func (d yearData) describe() string {
	switch d.Source {
	case sourceCache:
		label := "cached"
		if d.Stale {
			label = "cached, offline"
		}
		if len(d.Failed) > 0 {
			label = fmt.Sprintf("%s, %d calendar(s) failed", label, len(d.Failed))
		}
		if d.SyncedAt.IsZero() {
			return label
		}
		return fmt.Sprintf("%s %s", label, d.SyncedAt.Format("Jan 2 15:04"))
	case sourceGoogle:
		if len(d.Failed) > 0 {
			return fmt.Sprintf("google, %d calendar(s) failed", len(d.Failed))
		}
		return "google"
	default:
		return string(d.Source)
	}
}

// usesGoogle reports whether events come from the Google account.
func (a *App) usesGoogle() bool {
	return a.ICSPath == "" && !a.Demo && a.Session.HasCredentials()
}

// LoadYear picks the event source: an ICS file, demo data, the cache while
// it is fresh, or Google Calendar. Without credentials it falls back to
// demo data.
func (a *App) LoadYear(ctx context.Context, year int) (yearData, error) {
	return a.loadYear(ctx, year, a.Refresh)
}

func (a *App) loadYear(ctx context.Context, year int, refresh bool) (yearData, error) {
	switch {
	case a.ICSPath != "":
		return a.loadICS(year)
	case !a.usesGoogle():
		if !a.Demo {
			slog.Info("no Google credentials found, showing demo events", "credentials", a.Session.CredentialsPath)
		}
		return yearData{Year: year, Events: demo.Generate(year, a.Location), Source: sourceDemo}, nil
	}

	if !refresh {
		if data, ok := a.cachedYear(year); ok && data.fresh {
			return data, nil
		}
	}
	data, err := a.fetchYear(ctx, year)
	if err == nil {
		return data, nil
	}
	if cached, ok := a.cachedYear(year); ok {
		slog.Warn("fetch failed, using cached events", "year", year, "err", err)
		cached.Stale = true
		return cached, nil
	}
	return yearData{}, err
}

func (a *App) loadICS(year int) (yearData, error) {
	// #nosec G304 -- path is given by the user
	f, err := os.Open(a.ICSPath)
	if err != nil {
		return yearData{}, fmt.Errorf("open ICS: %w", err)
	}
	defer func() { _ = f.Close() }()
	events, err := ics.Import(f, a.Location)
	if err != nil {
		return yearData{}, err
	}
	return yearData{Year: year, Events: events, Source: sourceICS}, nil
}

func (a *App) cachedYear(year int) (yearData, bool) {
	if a.CachePath == "" {
		return yearData{}, false
	}
	c, err := cache.Load(a.CachePath)
	if err != nil {
		slog.Debug("cache unreadable", "path", a.CachePath, "err", err)
		return yearData{}, false
	}
	events, yc, ok := sync.FromCache(c, year, a.Now)
	if !ok {
		return yearData{}, false
	}
	synced, _ := time.Parse(time.RFC3339, yc.SyncedAt)
	return yearData{
		Year:     year,
		Events:   events,
		Source:   sourceCache,
		SyncedAt: synced,
		Failed:   yc.Failed,
		fresh:    yc.Fresh(a.Config.TTL(), a.Now()),
	}, true
}

func (a *App) fetchYear(ctx context.Context, year int) (yearData, error) {
	client, err := a.calendarClient(ctx)
	if err != nil {
		return yearData{}, err
	}
	fetcher := &sync.Fetcher{
		Source:   client,
		Filter:   a.Config.Wants,
		Location: a.Location,
		Now:      a.Now,
	}
	res, err := fetcher.Sync(ctx, year, a.CachePath)
	if err != nil {
		return yearData{}, err
	}
	return yearData{
		Year:     year,
		Events:   res.Events,
		Source:   sourceGoogle,
		SyncedAt: res.SyncedAt,
		Failed:   res.Failed,
	}, nil
}

func (a *App) calendarClient(ctx context.Context) (*calendar.Client, error) {
	httpClient, err := a.Session.Client(ctx)
	if err != nil {
		return nil, fmt.Errorf("auth failed: %w", err)
	}
	return calendar.New(ctx, httpClient)
}

// requireGoogle fails commands that only make sense with an account.
func (a *App) requireGoogle() error {
	if a.Session.HasCredentials() {
		return nil
	}
	return fmt.Errorf("%w: place your OAuth client file at %s or pass --credentials", errNoAccount, a.Session.CredentialsPath)
}

var errNoAccount = errors.New("no Google account configured")
