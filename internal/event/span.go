package event

import "time"

// IsAllDay reports whether the event starts on a calendar date rather than
// at an instant.
func (e Event) IsAllDay() bool {
	_, ok := e.Start.(AllDay)
	return ok
}

// IsMultiDay reports whether the event occupies more than one calendar date
// in loc. All-day ends are exclusive, so an all-day event from D to D+1 is a
// single day. Timed ends are inclusive: 23:00 to 01:00 the next day spans two
// dates, while a zero-length event never does.
func (e Event) IsMultiDay(loc *time.Location) bool {
	start, end := e.bounds(loc)
	if e.IsAllDay() {
		return start.DaysUntil(end) > 1
	}
	return start != end
}

// StartDate is the first date the event occupies in loc.
func (e Event) StartDate(loc *time.Location) Date {
	start, _ := e.bounds(loc)
	return start
}

// LastDate is the last date the event occupies in loc, inclusive.
func (e Event) LastDate(loc *time.Location) Date {
	start, end := e.bounds(loc)
	if !e.IsMultiDay(loc) {
		return start
	}
	if e.IsAllDay() {
		return end.AddDays(-1)
	}
	return end
}

// Dates expands the event into every calendar date it occupies, ascending.
func (e Event) Dates(loc *time.Location) []Date {
	first := e.StartDate(loc)
	last := e.LastDate(loc)
	dates := make([]Date, 0, first.DaysUntil(last)+1)
	for d := first; !d.After(last); d = d.AddDays(1) {
		dates = append(dates, d)
	}
	return dates
}

// Overlaps reports whether any occupied date falls within [from, to].
func (e Event) Overlaps(from, to Date, loc *time.Location) bool {
	return !e.StartDate(loc).After(to) && !e.LastDate(loc).Before(from)
}

// bounds returns the start and end dates with a missing or inverted end
// clamped to the start, so a bad span reads as zero length.
func (e Event) bounds(loc *time.Location) (Date, Date) {
	var start Date
	if e.Start != nil {
		start = e.Start.LocalDate(loc)
	}
	if e.End == nil {
		return start, start
	}
	end := e.End.LocalDate(loc)
	if end.Before(start) {
		return start, start
	}
	return start, end
}
