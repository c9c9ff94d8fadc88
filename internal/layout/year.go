package layout

import (
	"time"

	"bigcal/internal/event"
)

// BuildYear lays out all twelve months. An event is handed to every month
// whose dates it occupies, so a span from December 30 to January 2 shows in
// December of one year and January of the next.
func BuildYear(year int, events []*event.Event, opts Options) []MonthLayout {
	loc := opts.location()
	months := make([]MonthLayout, 0, 12)
	for m := time.January; m <= time.December; m++ {
		first, last := MonthBounds(year, m)
		var inMonth []*event.Event
		for _, e := range events {
			if e != nil && e.Overlaps(first, last, loc) {
				inMonth = append(inMonth, e)
			}
		}
		months = append(months, BuildMonth(year, m, inMonth, opts))
	}
	return months
}

// Find returns the event with the given id.
func Find(events []*event.Event, id string) (*event.Event, bool) {
	for _, e := range events {
		if e != nil && e.ID == id {
			return e, true
		}
	}
	return nil, false
}
