// Package event holds the calendar event model and the rules that decide
// which calendar dates an event occupies.
package event

import (
	"time"

	"github.com/samber/mo"
)

// Boundary is the start or end of an event. It is either Timed or AllDay.
type Boundary interface {
	// LocalDate returns the calendar date of the boundary as seen from loc.
	LocalDate(loc *time.Location) Date
	// Instant returns the boundary as a point in time; all-day boundaries
	// resolve to midnight in loc.
	Instant(loc *time.Location) time.Time
	boundary()
}

// Timed is a boundary at a precise instant.
type Timed struct {
	At       time.Time
	TimeZone string
}

func (b Timed) LocalDate(loc *time.Location) Date {
	return DateOf(b.At.In(orLocal(loc)))
}

func (b Timed) Instant(*time.Location) time.Time { return b.At }

func (Timed) boundary() {}

// AllDay is a boundary on a calendar date. As an end boundary it is
// exclusive.
type AllDay struct {
	Date Date
}

func (b AllDay) LocalDate(*time.Location) Date { return b.Date }

func (b AllDay) Instant(loc *time.Location) time.Time { return b.Date.In(orLocal(loc)) }

func (AllDay) boundary() {}

type Attendee struct {
	Email       string `json:"email"`
	DisplayName string `json:"display_name,omitempty"`
}

// Name returns the display name, falling back to the email address.
func (a Attendee) Name() string {
	if a.DisplayName != "" {
		return a.DisplayName
	}
	return a.Email
}

// Event is an immutable calendar event. Recurring events are expected to be
// expanded into single instances upstream.
type Event struct {
	ID          string
	Title       string
	Start       Boundary
	End         Boundary
	Description string
	Location    string
	Attendees   []Attendee
	// ColorKey selects an entry of the fixed event palette ("1".."11").
	ColorKey mo.Option[string]
	// SourceColor is the owning calendar's color.
	SourceColor  mo.Option[string]
	ExternalLink string
	CalendarID   string
	Recurrence   []string
}

func orLocal(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}
