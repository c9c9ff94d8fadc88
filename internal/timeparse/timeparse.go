package timeparse

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tj/go-naturaldate"
)

func LoadLocation(name string) (*time.Location, error) {
	if name == "" || strings.EqualFold(name, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", name, err)
	}
	return loc, nil
}

// ParseYear accepts a four digit year or a relative phrase such as
// "next year" or "last year". Empty input is the current year.
func ParseYear(value string, now time.Time, loc *time.Location) (int, error) {
	clean := strings.TrimSpace(value)
	if clean == "" {
		return now.In(loc).Year(), nil
	}
	if year, err := strconv.Atoi(clean); err == nil {
		if year < 1 || year > 9999 {
			return 0, fmt.Errorf("year out of range: %d", year)
		}
		return year, nil
	}
	parsed, err := naturaldate.Parse(clean, now.In(loc), naturaldate.WithDirection(naturaldate.Past))
	if err != nil {
		return 0, fmt.Errorf("parse year %q: %w", value, err)
	}
	return parsed.In(loc).Year(), nil
}

// ParseMonth accepts a month number (1-12) or an English month name or
// its three letter abbreviation.
func ParseMonth(value string) (time.Month, error) {
	clean := strings.ToLower(strings.TrimSpace(value))
	if n, err := strconv.Atoi(clean); err == nil {
		if n < 1 || n > 12 {
			return 0, fmt.Errorf("month out of range: %d", n)
		}
		return time.Month(n), nil
	}
	for m := time.January; m <= time.December; m++ {
		name := strings.ToLower(m.String())
		if clean == name || (len(clean) >= 3 && strings.HasPrefix(name, clean)) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("invalid month: %q", value)
}
