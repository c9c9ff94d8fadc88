package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allDay(id string, start, end Date) Event {
	return Event{ID: id, Title: id, Start: AllDay{Date: start}, End: AllDay{Date: end}}
}

func timed(id string, start, end time.Time) Event {
	return Event{ID: id, Title: id, Start: Timed{At: start}, End: Timed{At: end}}
}

func TestIsAllDay(t *testing.T) {
	assert.True(t, allDay("a", NewDate(2024, 1, 15), NewDate(2024, 1, 16)).IsAllDay())
	at := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	assert.False(t, timed("b", at, at.Add(time.Hour)).IsAllDay())
}

func TestIsMultiDay(t *testing.T) {
	loc := time.UTC
	tests := []struct {
		name string
		ev   Event
		want bool
	}{
		{
			name: "all-day single day",
			ev:   allDay("a", NewDate(2024, 1, 15), NewDate(2024, 1, 16)),
			want: false,
		},
		{
			name: "all-day two days",
			ev:   allDay("a", NewDate(2024, 1, 15), NewDate(2024, 1, 17)),
			want: true,
		},
		{
			name: "all-day across month end",
			ev:   allDay("a", NewDate(2024, 1, 31), NewDate(2024, 2, 2)),
			want: true,
		},
		{
			name: "all-day zero length",
			ev:   allDay("a", NewDate(2024, 1, 15), NewDate(2024, 1, 15)),
			want: false,
		},
		{
			name: "timed same day",
			ev:   timed("t", time.Date(2024, 1, 15, 9, 0, 0, 0, loc), time.Date(2024, 1, 15, 17, 0, 0, 0, loc)),
			want: false,
		},
		{
			name: "timed over midnight",
			ev:   timed("t", time.Date(2024, 1, 15, 23, 0, 0, 0, loc), time.Date(2024, 1, 16, 1, 0, 0, 0, loc)),
			want: true,
		},
		{
			name: "timed zero length at midnight",
			ev:   timed("t", time.Date(2024, 1, 16, 0, 0, 0, 0, loc), time.Date(2024, 1, 16, 0, 0, 0, 0, loc)),
			want: false,
		},
		{
			name: "timed end before start",
			ev:   timed("t", time.Date(2024, 1, 16, 9, 0, 0, 0, loc), time.Date(2024, 1, 14, 9, 0, 0, 0, loc)),
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.ev.IsMultiDay(loc))
		})
	}
}

func TestIsMultiDayUsesDisplayZone(t *testing.T) {
	// 22:00–23:30 UTC is one day in UTC but crosses midnight in UTC+1.
	ev := timed("t",
		time.Date(2024, 3, 10, 22, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 10, 23, 30, 0, 0, time.UTC),
	)
	assert.False(t, ev.IsMultiDay(time.UTC))
	assert.True(t, ev.IsMultiDay(time.FixedZone("CET", 3600)))
}

func TestAllDayMultiDayMatchesDayDifference(t *testing.T) {
	start := NewDate(2024, 2, 27)
	for n := 0; n <= 5; n++ {
		ev := allDay("a", start, start.AddDays(n))
		assert.Equal(t, n > 1, ev.IsMultiDay(time.UTC), "span of %d days", n)
	}
}

func TestDatesAllDayIsEndExclusive(t *testing.T) {
	ev := allDay("a", NewDate(2024, 1, 15), NewDate(2024, 1, 18))
	assert.Equal(t, []Date{
		NewDate(2024, 1, 15),
		NewDate(2024, 1, 16),
		NewDate(2024, 1, 17),
	}, ev.Dates(time.UTC))

	ev = allDay("a", NewDate(2024, 1, 15), NewDate(2024, 1, 17))
	assert.Equal(t, []Date{NewDate(2024, 1, 15), NewDate(2024, 1, 16)}, ev.Dates(time.UTC))
}

func TestDatesSingleDay(t *testing.T) {
	ev := allDay("a", NewDate(2024, 1, 15), NewDate(2024, 1, 16))
	assert.Equal(t, []Date{NewDate(2024, 1, 15)}, ev.Dates(time.UTC))

	at := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	ev = timed("t", at, at)
	assert.Equal(t, []Date{NewDate(2024, 1, 15)}, ev.Dates(time.UTC))
}

func TestDatesTimedIncludesEndDate(t *testing.T) {
	ev := timed("t",
		time.Date(2024, 12, 30, 20, 0, 0, 0, time.UTC),
		time.Date(2025, 1, 2, 8, 0, 0, 0, time.UTC),
	)
	dates := ev.Dates(time.UTC)
	require.Len(t, dates, 4)
	assert.Equal(t, NewDate(2024, 12, 30), dates[0])
	assert.Equal(t, NewDate(2025, 1, 2), dates[3])
}

func TestDatesInvertedSpanClampsToStart(t *testing.T) {
	ev := allDay("a", NewDate(2024, 5, 10), NewDate(2024, 5, 1))
	assert.Equal(t, []Date{NewDate(2024, 5, 10)}, ev.Dates(time.UTC))
	assert.Equal(t, NewDate(2024, 5, 10), ev.LastDate(time.UTC))
}

func TestOverlaps(t *testing.T) {
	ev := allDay("a", NewDate(2024, 12, 30), NewDate(2025, 1, 3))
	assert.True(t, ev.Overlaps(NewDate(2024, 12, 1), NewDate(2024, 12, 31), time.UTC))
	assert.True(t, ev.Overlaps(NewDate(2025, 1, 1), NewDate(2025, 1, 31), time.UTC))
	assert.False(t, ev.Overlaps(NewDate(2025, 2, 1), NewDate(2025, 2, 28), time.UTC))
}

func TestDateHelpers(t *testing.T) {
	d := NewDate(2024, 2, 28)
	assert.Equal(t, NewDate(2024, 2, 29), d.AddDays(1))
	assert.Equal(t, NewDate(2024, 3, 1), d.AddDays(2))
	assert.Equal(t, 2, d.DaysUntil(NewDate(2024, 3, 1)))
	assert.Equal(t, "2024-02-28", d.Key())

	parsed, err := ParseDate("2023-12-31")
	require.NoError(t, err)
	assert.Equal(t, NewDate(2023, 12, 31), parsed)

	_, err = ParseDate("31/12/2023")
	assert.Error(t, err)
}
