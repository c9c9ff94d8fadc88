package ics

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/samber/mo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bigcal/internal/event"
)

var stamp = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestExportImportRoundTrip(t *testing.T) {
	start := time.Date(2024, 3, 10, 9, 30, 0, 0, time.UTC)
	events := []event.Event{
		{
			ID:           "trip-1",
			Title:        "Trip, north; coast",
			Start:        event.AllDay{Date: event.NewDate(2024, 7, 1)},
			End:          event.AllDay{Date: event.NewDate(2024, 7, 5)},
			Description:  "line one\nline two",
			ColorKey:     mo.Some("4"),
			SourceColor:  mo.Some("#112233"),
			CalendarID:   "home",
			ExternalLink: "https://example.com/trip",
		},
		{
			ID:         "sync-1",
			Title:      "Sync",
			Start:      event.Timed{At: start},
			End:        event.Timed{At: start.Add(time.Hour)},
			Location:   "Room 4",
			Attendees:  []event.Attendee{{Email: "ana@example.com", DisplayName: "Ana"}, {Email: "bo@example.com"}},
			Recurrence: []string{"RRULE:FREQ=WEEKLY;BYDAY=SU", "EXDATE:20240317T093000Z"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, events, stamp))
	assert.Contains(t, buf.String(), "BEGIN:VEVENT")
	assert.Contains(t, buf.String(), "DTSTART;VALUE=DATE:20240701")

	got, err := Import(&buf, time.UTC)
	require.NoError(t, err)
	require.Len(t, got, 2)

	trip := got[0]
	assert.Equal(t, "trip-1", trip.ID)
	assert.Equal(t, "Trip, north; coast", trip.Title)
	assert.Equal(t, event.AllDay{Date: event.NewDate(2024, 7, 1)}, trip.Start)
	assert.Equal(t, event.AllDay{Date: event.NewDate(2024, 7, 5)}, trip.End)
	assert.Equal(t, "line one\nline two", trip.Description)
	assert.Equal(t, "4", trip.ColorKey.OrEmpty())
	assert.Equal(t, "#112233", trip.SourceColor.OrEmpty())
	assert.Equal(t, "home", trip.CalendarID)
	assert.Equal(t, "https://example.com/trip", trip.ExternalLink)

	sync := got[1]
	timed, ok := sync.Start.(event.Timed)
	require.True(t, ok)
	assert.True(t, timed.At.Equal(start))
	assert.True(t, sync.End.Instant(time.UTC).Equal(start.Add(time.Hour)))
	assert.Equal(t, "Room 4", sync.Location)
	assert.Equal(t, []event.Attendee{{Email: "ana@example.com", DisplayName: "Ana"}, {Email: "bo@example.com"}}, sync.Attendees)
	assert.Equal(t, []string{"RRULE:FREQ=WEEKLY;BYDAY=SU"}, sync.Recurrence)
	assert.True(t, sync.ColorKey.IsAbsent())
}

const external = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"PRODID:-//test//test//EN\r\n" +
	"BEGIN:VEVENT\r\n" +
	"DTSTAMP:20240101T000000Z\r\n" +
	"SUMMARY:Floating\r\n" +
	"DTSTART:20240502T100000\r\n" +
	"DURATION:PT1H30M\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:holiday\r\n" +
	"DTSTAMP:20240101T000000Z\r\n" +
	"DTSTART;VALUE=DATE:20241225\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"UID:broken\r\n" +
	"DTSTAMP:20240101T000000Z\r\n" +
	"SUMMARY:No start\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

func TestImportExternalCalendar(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	got, err := Import(strings.NewReader(external), loc)
	require.NoError(t, err)
	require.Len(t, got, 2)

	floating := got[0]
	assert.Equal(t, "Floating", floating.Title)
	assert.NotEmpty(t, floating.ID)
	start := floating.Start.Instant(loc)
	assert.True(t, start.Equal(time.Date(2024, 5, 2, 10, 0, 0, 0, loc)))
	assert.Equal(t, 90*time.Minute, floating.End.Instant(loc).Sub(start))

	again, err := Import(strings.NewReader(external), loc)
	require.NoError(t, err)
	assert.Equal(t, floating.ID, again[0].ID)

	holiday := got[1]
	assert.Equal(t, "(No title)", holiday.Title)
	assert.True(t, holiday.IsAllDay())
	assert.Equal(t, event.AllDay{Date: event.NewDate(2024, 12, 26)}, holiday.End)
	assert.False(t, holiday.IsMultiDay(loc))
}

func TestImportRejectsGarbage(t *testing.T) {
	_, err := Import(strings.NewReader("BEGIN:VCALENDAR\r\nthis is not ics"), time.UTC)
	assert.Error(t, err)
}

func durationCalendar(start, duration string) string {
	return "BEGIN:VCALENDAR\r\n" +
		"VERSION:2.0\r\n" +
		"PRODID:-//test//test//EN\r\n" +
		"BEGIN:VEVENT\r\n" +
		"UID:d1\r\n" +
		"DTSTAMP:20240101T000000Z\r\n" +
		"SUMMARY:Timed by duration\r\n" +
		start + "\r\n" +
		"DURATION:" + duration + "\r\n" +
		"END:VEVENT\r\n" +
		"END:VCALENDAR\r\n"
}

func TestImportDuration(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
	}{
		{in: "P1D", want: 24 * time.Hour},
		{in: "PT1H30M", want: 90 * time.Minute},
		{in: "P2W", want: 14 * 24 * time.Hour},
		{in: "-PT15M", want: -15 * time.Minute},
		{in: "P1DT2H", want: 26 * time.Hour},
		{in: "PT45S", want: 45 * time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Import(strings.NewReader(durationCalendar("DTSTART:20240502T100000Z", tt.in)), time.UTC)
			require.NoError(t, err)
			require.Len(t, got, 1)
			start := got[0].Start.Instant(time.UTC)
			assert.Equal(t, tt.want, got[0].End.Instant(time.UTC).Sub(start))
		})
	}
}

func TestImportAllDayDuration(t *testing.T) {
	got, err := Import(strings.NewReader(durationCalendar("DTSTART;VALUE=DATE:20240701", "P3D")), time.UTC)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, event.AllDay{Date: event.NewDate(2024, 7, 4)}, got[0].End)
	assert.True(t, got[0].IsMultiDay(time.UTC))
}

func TestImportSkipsInvalidDuration(t *testing.T) {
	got, err := Import(strings.NewReader(durationCalendar("DTSTART:20240502T100000Z", "garbage")), time.UTC)
	require.NoError(t, err)
	assert.Empty(t, got)
}
