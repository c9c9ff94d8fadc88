package layout

import (
	"time"

	"bigcal/internal/event"
)

// Grid geometry shared by every renderer: the first span bar sits below the
// day-number header and each further bar takes one row.
const (
	SpanTop       = 28
	SpanRowHeight = 24
)

// MultiDaySpan is a multi-day event clamped to one month.
type MultiDaySpan struct {
	Event    *event.Event
	StartDay int
	EndDay   int
	Color    string
	// Slot is the stacking row, in encounter order.
	Slot int
	// ContinuesBefore and ContinuesAfter mark spans cut by the month window.
	ContinuesBefore bool
	ContinuesAfter  bool
}

// Offset is the left edge of the bar as a percentage of the month width.
func (s MultiDaySpan) Offset(daysInMonth int) float64 {
	if daysInMonth <= 0 {
		return 0
	}
	return float64(s.StartDay-1) * 100 / float64(daysInMonth)
}

// Width is the bar width as a percentage of the month width.
func (s MultiDaySpan) Width(daysInMonth int) float64 {
	if daysInMonth <= 0 {
		return 0
	}
	return float64(s.EndDay-s.StartDay+1) * 100 / float64(daysInMonth)
}

// Top is the vertical position of the bar in grid units.
func (s MultiDaySpan) Top() int {
	return SpanTop + s.Slot*SpanRowHeight
}

// Days is the number of month days the bar covers.
func (s MultiDaySpan) Days() int {
	return s.EndDay - s.StartDay + 1
}

type DayCell struct {
	Day  int
	Date event.Date
	// Entries are the first visible single-day events of the day.
	Entries []*event.Event
	// Hidden counts the events left out of Entries.
	Hidden int
}

func (c DayCell) Total() int {
	return len(c.Entries) + c.Hidden
}

type MonthLayout struct {
	Year        int
	Month       time.Month
	DaysInMonth int
	Days        []DayCell
	Spans       []MultiDaySpan
	// SingleDay indexes the month's single-day events by date.
	SingleDay *DateIndex
}

// Events returns every event in the layout once: spans first, then
// single-day events in date order.
func (m MonthLayout) Events() []*event.Event {
	seen := map[*event.Event]bool{}
	var out []*event.Event
	for _, s := range m.Spans {
		if !seen[s.Event] {
			seen[s.Event] = true
			out = append(out, s.Event)
		}
	}
	for _, key := range m.SingleDay.Keys() {
		for _, e := range m.SingleDay.Get(key) {
			if !seen[e] {
				seen[e] = true
				out = append(out, e)
			}
		}
	}
	return out
}

func DaysInMonth(year int, month time.Month) int {
	switch month {
	case time.April, time.June, time.September, time.November:
		return 30
	case time.February:
		if isLeap(year) {
			return 29
		}
		return 28
	default:
		return 31
	}
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// MonthBounds returns the first and last date of the month.
func MonthBounds(year int, month time.Month) (event.Date, event.Date) {
	return event.NewDate(year, month, 1), event.NewDate(year, month, DaysInMonth(year, month))
}

// BuildMonth lays out one month. Events that occupy no date of the month
// are ignored. Every other event ends up either in SingleDay or as exactly
// one span.
func BuildMonth(year int, month time.Month, events []*event.Event, opts Options) MonthLayout {
	loc := opts.location()
	first, last := MonthBounds(year, month)
	days := DaysInMonth(year, month)

	var single []*event.Event
	var spans []MultiDaySpan
	for _, e := range events {
		if e == nil || !e.Overlaps(first, last, loc) {
			continue
		}
		if !e.IsMultiDay(loc) {
			single = append(single, e)
			continue
		}
		start := e.StartDate(loc)
		end := e.LastDate(loc)
		spans = append(spans, MultiDaySpan{
			Event:           e,
			StartDay:        event.MaxDate(start, first).Day,
			EndDay:          event.MinDate(end, last).Day,
			Color:           ResolveColor(e, opts.fallback()),
			Slot:            len(spans),
			ContinuesBefore: start.Before(first),
			ContinuesAfter:  end.After(last),
		})
	}

	index := GroupByDate(single, loc)
	visible := opts.visible()
	cells := make([]DayCell, days)
	for i := range cells {
		date := event.NewDate(year, month, i+1)
		bucket := index.GetDate(date)
		n := min(len(bucket), visible)
		cells[i] = DayCell{
			Day:     i + 1,
			Date:    date,
			Entries: bucket[:n:n],
			Hidden:  len(bucket) - n,
		}
	}

	return MonthLayout{
		Year:        year,
		Month:       month,
		DaysInMonth: days,
		Days:        cells,
		Spans:       spans,
		SingleDay:   index,
	}
}
