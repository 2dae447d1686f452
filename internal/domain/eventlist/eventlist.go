// Package eventlist holds the pure logic behind the upcoming-events section:
// nearest-event selection, the countdown breakdown and the management panel.
package eventlist

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"

	"treetroopers/internal/domain/content"
	"treetroopers/internal/domain/eventdate"
)

// Candidate is an event whose date parsed, with its stored index.
type Candidate struct {
	Event content.Event
	Index int
	At    time.Time // local midnight of Event.Date
}

// NextUpcoming returns the earliest event dated today or later.
// Dates are read in now's location.
// PRE: none
// POST: ok is false when events is empty or every date is past or unparseable;
// events sharing a date keep their stored relative order
func NextUpcoming(events []content.Event, now time.Time) (Candidate, bool) {
	today := eventdate.Midnight(now)

	var upcoming []Candidate
	for i, ev := range events {
		at, ok := eventdate.ParseLocal(ev.Date, now.Location())
		if !ok || at.Before(today) {
			continue
		}
		upcoming = append(upcoming, Candidate{Event: ev, Index: i, At: at})
	}
	if len(upcoming) == 0 {
		return Candidate{}, false
	}
	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].At.Before(upcoming[j].At)
	})
	return upcoming[0], true
}

// sortKey places unparseable dates at the Unix epoch.
func sortKey(date string, loc *time.Location) int64 {
	if t, ok := eventdate.ParseLocal(date, loc); ok {
		return t.UnixMilli()
	}
	return 0
}

// SortByDate returns a copy of events ordered by ascending date.
// PRE: none
// POST: the sort is stable; unparseable dates sort as the epoch start
func SortByDate(events []content.Event, loc *time.Location) []content.Event {
	out := slices.Clone(events)
	sort.SliceStable(out, func(i, j int) bool {
		return sortKey(out[i].Date, loc) < sortKey(out[j].Date, loc)
	})
	return out
}

// Move relocates the event at from to position to.
// PRE: none
// POST: returns events unchanged when either index is out of bounds
func Move(events []content.Event, from, to int) []content.Event {
	if to < 0 || to >= len(events) || from < 0 || from >= len(events) {
		return events
	}
	item := events[from]
	events = slices.Delete(events, from, from+1)
	return slices.Insert(events, to, item)
}

// PanelRow is one row of free-text input in the events panel.
type PanelRow struct {
	Icon  string `json:"icon"`
	Title string `json:"title"`
	Date  string `json:"date"`
}

// Rows projects events into panel rows, filling the icon fallback.
func Rows(events []content.Event) []PanelRow {
	rows := make([]PanelRow, 0, len(events))
	for _, ev := range events {
		icon := ev.Icon
		if icon == "" {
			icon = content.DefaultEventIcon
		}
		rows = append(rows, PanelRow{Icon: icon, Title: ev.Title, Date: ev.Date})
	}
	return rows
}

// Apply reconciles panel rows into the canonical events sequence.
// PRE: none
// POST: each field is trimmed; blank fields take the fixed defaults, never blank
func Apply(rows []PanelRow) []content.Event {
	out := make([]content.Event, 0, len(rows))
	for _, r := range rows {
		out = append(out, content.Event{
			Icon:  orDefault(r.Icon, content.DefaultEventIcon),
			Title: orDefault(r.Title, content.DefaultEventTitle),
			Date:  orDefault(r.Date, content.DefaultEventDate),
		})
	}
	return out
}

func orDefault(s, fallback string) string {
	if s = strings.TrimSpace(s); s != "" {
		return s
	}
	return fallback
}

// Breakdown is a non-negative days/hours/minutes/seconds split.
type Breakdown struct {
	Days    int `json:"days"`
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
	Seconds int `json:"seconds"`
}

// Split breaks d into whole days, hours, minutes and seconds.
// PRE: none
// POST: negative durations yield the zero Breakdown
func Split(d time.Duration) Breakdown {
	total := int64(d / time.Second)
	if total < 0 {
		total = 0
	}
	return Breakdown{
		Days:    int(total / 86400),
		Hours:   int(total % 86400 / 3600),
		Minutes: int(total % 3600 / 60),
		Seconds: int(total % 60),
	}
}

// Padded returns hours, minutes and seconds as two-digit strings.
func (b Breakdown) Padded() (hours, minutes, seconds string) {
	return fmt.Sprintf("%02d", b.Hours), fmt.Sprintf("%02d", b.Minutes), fmt.Sprintf("%02d", b.Seconds)
}

// Placeholder text shown when nothing is upcoming.
const (
	NoUpcomingTitle    = "No upcoming events yet"
	NoUpcomingSubtitle = "Add a new event in Developer Mode."
)

// Tick is one countdown frame.
type Tick struct {
	Upcoming  bool      `json:"upcoming"`
	Title     string    `json:"title"`
	Subtitle  string    `json:"subtitle"`
	Index     int       `json:"index"` // stored index of the target event, -1 when none
	Remaining Breakdown `json:"remaining"`
}

// ComputeTick derives the countdown frame for now.
// PRE: none
// POST: with no upcoming event the placeholder state is returned with a zero breakdown
func ComputeTick(events []content.Event, now time.Time) Tick {
	next, ok := NextUpcoming(events, now)
	if !ok {
		return Tick{
			Title:    NoUpcomingTitle,
			Subtitle: NoUpcomingSubtitle,
			Index:    -1,
		}
	}

	title := next.Event.Title
	if title == "" {
		title = "Next Event"
	}
	return Tick{
		Upcoming:  true,
		Title:     strings.TrimSpace(title + " " + next.Event.Icon),
		Subtitle:  eventdate.FormatPretty(next.At),
		Index:     next.Index,
		Remaining: Split(next.At.Sub(now)),
	}
}
