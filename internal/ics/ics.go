// Package ics reads and writes events as iCalendar (RFC 5545) streams.
package ics

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	ical "github.com/emersion/go-ical"
	"github.com/google/uuid"
	"github.com/samber/mo"

	"bigcal/internal/event"
)

const (
	productID = "-//bigcal//bigcal//EN"

	propColorKey    = "X-BIGCAL-COLOR-KEY"
	propSourceColor = "X-BIGCAL-SOURCE-COLOR"
	propCalendarID  = "X-BIGCAL-CALENDAR"

	dateValueLayout = "20060102"
)

// uidSpace namespaces the ids derived for events that carry no UID.
var uidSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://bigcal.invalid/ics"))

// Export writes events as one VCALENDAR. stamp becomes every DTSTAMP.
func Export(w io.Writer, events []event.Event, stamp time.Time) error {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)

	for _, e := range events {
		comp := ical.NewComponent(ical.CompEvent)
		comp.Props.SetText(ical.PropUID, e.ID)
		comp.Props.SetText(ical.PropSummary, e.Title)
		comp.Props.SetDateTime(ical.PropDateTimeStamp, stamp.UTC())

		setBoundary(comp, ical.PropDateTimeStart, e.Start)
		if e.End != nil {
			setBoundary(comp, ical.PropDateTimeEnd, e.End)
		}
		if e.Description != "" {
			comp.Props.SetText(ical.PropDescription, e.Description)
		}
		if e.Location != "" {
			comp.Props.SetText(ical.PropLocation, e.Location)
		}
		if e.ExternalLink != "" {
			comp.Props.SetText(ical.PropURL, e.ExternalLink)
		}
		if key, ok := e.ColorKey.Get(); ok {
			comp.Props.SetText(propColorKey, key)
		}
		if color, ok := e.SourceColor.Get(); ok {
			comp.Props.SetText(propSourceColor, color)
		}
		if e.CalendarID != "" {
			comp.Props.SetText(propCalendarID, e.CalendarID)
		}
		for _, a := range e.Attendees {
			prop := ical.NewProp(ical.PropAttendee)
			prop.Value = "mailto:" + a.Email
			if a.DisplayName != "" {
				prop.Params.Set(ical.ParamCommonName, a.DisplayName)
			}
			comp.Props.Add(prop)
		}
		for _, line := range e.Recurrence {
			name, value, ok := strings.Cut(line, ":")
			if !ok || !strings.EqualFold(name, ical.PropRecurrenceRule) {
				continue
			}
			prop := ical.NewProp(ical.PropRecurrenceRule)
			prop.Value = value
			comp.Props.Add(prop)
		}
		cal.Children = append(cal.Children, comp)
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("encode ICS: %w", err)
	}
	return nil
}

func setBoundary(comp *ical.Component, name string, b event.Boundary) {
	switch v := b.(type) {
	case event.AllDay:
		comp.Props.SetDate(name, v.Date.In(time.UTC))
	case event.Timed:
		comp.Props.SetDateTime(name, v.At.UTC())
	}
}

// Import reads every VEVENT of r. Floating times are read in loc. Events
// without a usable DTSTART are skipped and logged.
func Import(r io.Reader, loc *time.Location) ([]event.Event, error) {
	if loc == nil {
		loc = time.Local
	}
	dec := ical.NewDecoder(r)
	var events []event.Event
	for {
		cal, err := dec.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode ICS: %w", err)
		}
		for _, comp := range cal.Children {
			if comp.Name != ical.CompEvent {
				continue
			}
			e, err := fromComponent(comp, loc)
			if err != nil {
				slog.Warn("skipping ICS event", "err", err)
				continue
			}
			events = append(events, e)
		}
	}
	return events, nil
}

func fromComponent(comp *ical.Component, loc *time.Location) (event.Event, error) {
	startProp := comp.Props.Get(ical.PropDateTimeStart)
	if startProp == nil {
		return event.Event{}, fmt.Errorf("missing DTSTART")
	}
	start, err := parseBoundary(startProp, loc)
	if err != nil {
		return event.Event{}, fmt.Errorf("parse DTSTART: %w", err)
	}

	e := event.Event{
		Title: text(comp, ical.PropSummary),
		Start: start,
	}
	if e.Title == "" {
		e.Title = "(No title)"
	}
	e.End, err = endBoundary(comp, start, loc)
	if err != nil {
		return event.Event{}, err
	}

	e.ID = text(comp, ical.PropUID)
	if e.ID == "" {
		e.ID = uuid.NewSHA1(uidSpace, []byte(e.Title+"|"+startProp.Value)).String()
	}
	e.Description = text(comp, ical.PropDescription)
	e.Location = text(comp, ical.PropLocation)
	e.ExternalLink = text(comp, ical.PropURL)
	e.CalendarID = text(comp, propCalendarID)
	if key := text(comp, propColorKey); key != "" {
		e.ColorKey = mo.Some(key)
	}
	if color := text(comp, propSourceColor); color != "" {
		e.SourceColor = mo.Some(color)
	}
	for _, prop := range comp.Props.Values(ical.PropAttendee) {
		email := strings.TrimPrefix(strings.TrimPrefix(prop.Value, "mailto:"), "MAILTO:")
		e.Attendees = append(e.Attendees, event.Attendee{
			Email:       email,
			DisplayName: prop.Params.Get(ical.ParamCommonName),
		})
	}
	for _, prop := range comp.Props.Values(ical.PropRecurrenceRule) {
		e.Recurrence = append(e.Recurrence, "RRULE:"+prop.Value)
	}
	return e, nil
}

func endBoundary(comp *ical.Component, start event.Boundary, loc *time.Location) (event.Boundary, error) {
	if prop := comp.Props.Get(ical.PropDateTimeEnd); prop != nil {
		end, err := parseBoundary(prop, loc)
		if err != nil {
			return nil, fmt.Errorf("parse DTEND: %w", err)
		}
		return end, nil
	}
	var d time.Duration
	if prop := comp.Props.Get(ical.PropDuration); prop != nil {
		var err error
		d, err = prop.Duration()
		if err != nil {
			return nil, fmt.Errorf("parse DURATION: %w", err)
		}
	}
	switch s := start.(type) {
	case event.AllDay:
		days := int(d / (24 * time.Hour))
		if days < 1 {
			days = 1
		}
		return event.AllDay{Date: s.Date.AddDays(days)}, nil
	case event.Timed:
		return event.Timed{At: s.At.Add(d), TimeZone: s.TimeZone}, nil
	}
	return start, nil
}

func parseBoundary(prop *ical.Prop, loc *time.Location) (event.Boundary, error) {
	value := strings.TrimSpace(prop.Value)
	if prop.ValueType() == ical.ValueDate || len(value) == len(dateValueLayout) {
		t, err := time.Parse(dateValueLayout, value)
		if err != nil {
			return nil, err
		}
		return event.AllDay{Date: event.DateOf(t)}, nil
	}
	t, err := prop.DateTime(loc)
	if err != nil {
		return nil, err
	}
	return event.Timed{At: t, TimeZone: prop.Params.Get(ical.ParamTimezoneID)}, nil
}

func text(comp *ical.Component, name string) string {
	prop := comp.Props.Get(name)
	if prop == nil {
		return ""
	}
	v, err := prop.Text()
	if err != nil {
		return prop.Value
	}
	return strings.TrimSpace(v)
}
