// Package recurrence turns RFC 5545 recurrence lines into short English
// summaries for the event detail view. Occurrences are never expanded here;
// upstream sources deliver single instances.
package recurrence

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	rrule "github.com/teambition/rrule-go"
)

// Describe summarizes a single RRULE line such as "RRULE:FREQ=WEEKLY;BYDAY=MO".
// EXDATE and RDATE lines, unknown frequencies and malformed rules report false.
func Describe(rule string, loc *time.Location) (string, bool) {
	clean, ok := ruleBody(rule)
	if !ok {
		return "", false
	}
	if loc == nil {
		loc = time.Local
	}
	option, err := rrule.StrToROptionInLocation(clean, loc)
	if err != nil {
		return "", false
	}
	base, ok := describeFrequency(option)
	if !ok {
		return "", false
	}
	switch {
	case option.Count > 0:
		return fmt.Sprintf("%s, %s", base, times(option.Count)), true
	case !option.Until.IsZero():
		return fmt.Sprintf("%s until %s", base, option.Until.In(loc).Format("January 2, 2006")), true
	}
	return base, true
}

// DescribeAll summarizes the first rule in lines that can be described.
func DescribeAll(lines []string, loc *time.Location) (string, bool) {
	for _, line := range lines {
		if text, ok := Describe(line, loc); ok {
			return text, true
		}
	}
	return "", false
}

func ruleBody(rule string) (string, bool) {
	clean := strings.TrimSpace(rule)
	if clean == "" {
		return "", false
	}
	name, value, found := strings.Cut(clean, ":")
	if !found {
		return clean, true
	}
	if !strings.EqualFold(name, "RRULE") {
		return "", false
	}
	return strings.TrimSpace(value), value != ""
}

func describeFrequency(option *rrule.ROption) (string, bool) {
	interval := max(option.Interval, 1)
	switch option.Freq {
	case rrule.DAILY:
		return every(interval, "day", "days"), true
	case rrule.WEEKLY:
		return withWeekdays(every(interval, "week", "weeks"), option.Byweekday), true
	case rrule.MONTHLY:
		base := every(interval, "month", "months")
		if len(option.Bymonthday) > 0 {
			days := append([]int(nil), option.Bymonthday...)
			sort.Ints(days)
			return fmt.Sprintf("%s on day %s", base, joinInts(days)), true
		}
		return withWeekdays(base, option.Byweekday), true
	case rrule.YEARLY:
		return every(interval, "year", "years"), true
	default:
		return "", false
	}
}

func every(interval int, one, many string) string {
	if interval == 1 {
		return "every " + one
	}
	return fmt.Sprintf("every %d %s", interval, many)
}

func times(n int) string {
	if n == 1 {
		return "once"
	}
	return fmt.Sprintf("%d times", n)
}

func withWeekdays(base string, days []rrule.Weekday) string {
	if len(days) == 0 {
		return base
	}
	labels := make([]string, 0, len(days))
	for _, day := range days {
		labels = append(labels, weekdayLabel(day))
	}
	return fmt.Sprintf("%s (%s)", base, strings.Join(labels, ", "))
}

var weekdayLabels = map[string]string{
	"MO": "Mon", "TU": "Tue", "WE": "Wed", "TH": "Thu",
	"FR": "Fri", "SA": "Sat", "SU": "Sun",
}

// weekdayLabel renders "MO" as "Mon" and "+1MO" as "1st Mon".
func weekdayLabel(day rrule.Weekday) string {
	code := day.String()
	label := code
	for prefix, name := range weekdayLabels {
		if strings.HasSuffix(code, prefix) {
			label = name
			break
		}
	}
	if n := day.N(); n != 0 {
		return ordinal(n) + " " + label
	}
	return label
}

func ordinal(n int) string {
	if n == -1 {
		return "last"
	}
	if n < 0 {
		return strconv.Itoa(-n) + ordinalSuffix(-n) + " to last"
	}
	return strconv.Itoa(n) + ordinalSuffix(n)
}

func ordinalSuffix(n int) string {
	if n%100 >= 11 && n%100 <= 13 {
		return "th"
	}
	switch n % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}

func joinInts(values []int) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		parts = append(parts, strconv.Itoa(v))
	}
	return strings.Join(parts, ", ")
}
