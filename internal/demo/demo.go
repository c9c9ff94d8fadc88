// Package demo generates a stable set of sample events for a year, used
// when no calendar account is connected.
package demo

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/samber/mo"

	"bigcal/internal/event"
)

const (
	minEvents   = 35
	extraEvents = 16
)

type template struct {
	title    string
	colors   []string
	multiDay bool
}

var templates = []template{
	{title: "Team Meeting", colors: []string{"#4285f4", "#5484ed"}},
	{title: "Project Deadline", colors: []string{"#ea4335", "#dc2127"}},
	{title: "Birthday Party", colors: []string{"#fbbc04", "#fbd75b"}},
	{title: "Conference", colors: []string{"#34a853", "#51b749"}, multiDay: true},
	{title: "Client Call", colors: []string{"#46bdc6", "#7ae7bf"}},
	{title: "Workshop", colors: []string{"#9e69af", "#dbadff"}, multiDay: true},
	{title: "Lunch Meeting", colors: []string{"#ff887c", "#ffb878"}},
	{title: "Gym", colors: []string{"#46d6db", "#a4bdfc"}},
	{title: "Doctor Appointment", colors: []string{"#e1e1e1", "#5484ed"}},
	{title: "Team Standup", colors: []string{"#4285f4", "#51b749"}},
	{title: "Code Review", colors: []string{"#34a853", "#7ae7bf"}},
	{title: "Sprint Planning", colors: []string{"#5484ed", "#4285f4"}},
	{title: "Vacation", colors: []string{"#46bdc6", "#46d6db"}, multiDay: true},
	{title: "Training Session", colors: []string{"#9e69af", "#dbadff"}, multiDay: true},
	{title: "Holiday", colors: []string{"#ea4335", "#dc2127"}},
	{title: "Business Trip", colors: []string{"#5484ed", "#4285f4"}, multiDay: true},
}

var durations = []time.Duration{30 * time.Minute, time.Hour, 2 * time.Hour}

// Generate returns between 35 and 50 events spread over year. The same year
// always yields the same events. Multi-day templates become all-day spans
// of two to five days; the rest are timed events during work hours in loc.
func Generate(year int, loc *time.Location) []event.Event {
	if loc == nil {
		loc = time.Local
	}
	rng := rand.New(rand.NewPCG(uint64(year), 0x6269676361))
	n := minEvents + rng.IntN(extraEvents)
	events := make([]event.Event, 0, n)
	for i := 0; i < n; i++ {
		month := time.Month(1 + rng.IntN(12))
		day := 1 + rng.IntN(28)
		hour := 8 + rng.IntN(10)
		tpl := templates[rng.IntN(len(templates))]
		color := tpl.colors[rng.IntN(len(tpl.colors))]

		e := event.Event{
			ID:          fmt.Sprintf("demo-%d-%d", year, i),
			Title:       tpl.title,
			ColorKey:    mo.Some("1"),
			SourceColor: mo.Some(color),
			CalendarID:  "demo",
		}
		if tpl.multiDay {
			start := event.NewDate(year, month, day)
			e.Start = event.AllDay{Date: start}
			e.End = event.AllDay{Date: start.AddDays(2 + rng.IntN(4))}
		} else {
			start := time.Date(year, month, day, hour, 0, 0, 0, loc)
			e.Start = event.Timed{At: start}
			e.End = event.Timed{At: start.Add(durations[rng.IntN(len(durations))])}
		}
		events = append(events, e)
	}
	return events
}
