package editsession

import (
	"strings"

	"treetroopers/internal/domain/content"
)

// Harvest carries the text the developer edited in place on the page.
// List entries are matched to live items by index; entries past the end of
// a live list are ignored, and a nil list leaves that collection untouched.
// Image fields are never harvested.
type Harvest struct {
	Texts            map[string]string  `json:"texts"`
	BeforeAfterTitle *string            `json:"beforeAfterTitle"`
	Activities       []content.Activity `json:"activities"`
	Members          []content.Member   `json:"members"`
	Officers         []content.Officer  `json:"officers"`
	Events           []content.Event    `json:"events"`
	Gallery          []content.Photo    `json:"gallery"`
}

func (h Harvest) applyTo(c *content.SiteContent) {
	for key, value := range h.Texts {
		c.SetText(key, strings.TrimSpace(value))
	}
	if h.BeforeAfterTitle != nil {
		c.BeforeAfter.Title = strings.TrimSpace(*h.BeforeAfterTitle)
	}

	t := strings.TrimSpace
	for i := range min(len(h.Activities), len(c.Activities)) {
		in := h.Activities[i]
		c.Activities[i] = content.Activity{Icon: t(in.Icon), Title: t(in.Title), Desc: t(in.Desc), Tag: t(in.Tag)}
	}
	for i := range min(len(h.Members), len(c.Members)) {
		in := h.Members[i]
		c.Members[i] = content.Member{Title: t(in.Title), Desc: t(in.Desc)}
	}
	for i := range min(len(h.Officers), len(c.Officers)) {
		in, o := h.Officers[i], &c.Officers[i]
		o.Name, o.Role, o.Bio, o.Cause = t(in.Name), t(in.Role), t(in.Bio), t(in.Cause)
	}
	for i := range min(len(h.Events), len(c.Events)) {
		in := h.Events[i]
		c.Events[i] = content.Event{Date: t(in.Date), Title: t(in.Title), Icon: t(in.Icon)}
	}
	for i := range min(len(h.Gallery), len(c.Gallery)) {
		in, p := h.Gallery[i], &c.Gallery[i]
		p.Title, p.Tag = t(in.Title), t(in.Tag)
	}
}
