package projections

import (
	"time"

	"treetroopers/internal/domain/content"
	"treetroopers/internal/domain/eventdate"
	"treetroopers/internal/domain/eventlist"
)

// EventCard is one event as displayed on the page, in stored order.
type EventCard struct {
	Index      int    `json:"index"`
	Icon       string `json:"icon"`
	Title      string `json:"title"`
	Date       string `json:"date"`
	PrettyDate string `json:"prettyDate"`
}

// EventsSection is the read model for the upcoming-events section.
type EventsSection struct {
	Cards     []EventCard    `json:"cards"`
	Countdown eventlist.Tick `json:"countdown"`
}

// GetEventsSectionQuery carries the inputs of the events section.
type GetEventsSectionQuery struct {
	Events []content.Event
	Now    time.Time
}

// QueryGetEventsSection projects the events list into display cards plus the
// current countdown frame. Dates are read in Now's location.
// PRE: none
// POST: Cards keep stored order; blank fields show their display fallbacks
func QueryGetEventsSection(query GetEventsSectionQuery) EventsSection {
	loc := query.Now.Location()
	cards := make([]EventCard, 0, len(query.Events))
	for i, ev := range query.Events {
		card := EventCard{
			Index: i,
			Icon:  orFallback(ev.Icon, content.DefaultEventIcon),
			Title: orFallback(ev.Title, content.DefaultEventTitle),
			Date:  orFallback(ev.Date, "YYYY-MM-DD"),
		}
		if t, ok := eventdate.ParseLocal(ev.Date, loc); ok {
			card.PrettyDate = eventdate.FormatPretty(t)
		} else {
			card.PrettyDate = card.Date
		}
		cards = append(cards, card)
	}
	return EventsSection{
		Cards:     cards,
		Countdown: eventlist.ComputeTick(query.Events, query.Now),
	}
}

func orFallback(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
