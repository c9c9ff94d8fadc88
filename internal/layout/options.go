// Package layout maps calendar events onto the month and year grid: it
// buckets events per date, separates multi-day spans, clamps them to the
// month window and picks their display color.
package layout

import "time"

// DefaultVisibleEvents is how many events a day cell shows before "+k".
const DefaultVisibleEvents = 2

type Options struct {
	// Location is the display zone; nil means time.Local.
	Location *time.Location
	// FallbackColor is used when an event has neither a palette key nor a
	// source color; empty means DefaultColor.
	FallbackColor string
	// VisibleEvents caps the entries of a DayCell; zero means
	// DefaultVisibleEvents.
	VisibleEvents int
}

func (o Options) location() *time.Location {
	if o.Location == nil {
		return time.Local
	}
	return o.Location
}

func (o Options) fallback() string {
	if o.FallbackColor == "" {
		return DefaultColor
	}
	return o.FallbackColor
}

func (o Options) visible() int {
	if o.VisibleEvents <= 0 {
		return DefaultVisibleEvents
	}
	return o.VisibleEvents
}
