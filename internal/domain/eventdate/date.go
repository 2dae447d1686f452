package eventdate

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Layout is the stored form of a calendar date.
const Layout = "2006-01-02"

// PrettyLayout renders a date as long month, day and year.
const PrettyLayout = "January 2, 2006"

var datePattern = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)

// ParseLocal parses a YYYY-MM-DD string into midnight of that day in loc.
// A nil loc means time.Local. The date is never interpreted as UTC unless loc is UTC.
// PRE: none
// POST: ok is false when s does not strictly match YYYY-MM-DD or names a day
// that does not exist on the calendar (month 13, February 30, ...)
func ParseLocal(s string, loc *time.Location) (time.Time, bool) {
	m := datePattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return time.Time{}, false
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	if loc == nil {
		loc = time.Local
	}

	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	// time.Date normalises overflow (Feb 30 -> Mar 2); reject anything it moved.
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// FormatPretty renders t as "March 5, 2026".
func FormatPretty(t time.Time) string {
	return t.Format(PrettyLayout)
}

// Midnight returns the start of the calendar day containing t, in t's location.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Display returns the pretty form of s when it parses, otherwise s unchanged.
// PRE: none
// POST: never fails; unparseable input is echoed literally
func Display(s string, loc *time.Location) string {
	if t, ok := ParseLocal(s, loc); ok {
		return FormatPretty(t)
	}
	return s
}
