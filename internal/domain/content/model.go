package content

import (
	"errors"
	"slices"
)

// Collection names a list inside SiteContent. The values double as the
// per-card type tag carried by rendered markup.
type Collection string

// Collection constants.
const (
	CollectionActivities Collection = "activity"
	CollectionMembers    Collection = "member"
	CollectionOfficers   Collection = "officer"
	CollectionGallery    Collection = "photo"
	CollectionEvents     Collection = "event"
)

// Collections lists every editable collection in render order.
var Collections = []Collection{
	CollectionActivities,
	CollectionMembers,
	CollectionOfficers,
	CollectionEvents,
	CollectionGallery,
}

// Domain errors
var (
	ErrUnknownCollection = errors.New("unknown collection")
	ErrIndexOutOfRange   = errors.New("item index out of range")
)

// Activity is a card in the activities section.
type Activity struct {
	Icon  string `json:"icon"`
	Title string `json:"title"`
	Desc  string `json:"desc"`
	Tag   string `json:"tag"`
}

// Member is a membership role card.
type Member struct {
	Title string `json:"title"`
	Desc  string `json:"desc"`
}

// Officer is a leadership team card. Photo is an asset path or a data URL.
type Officer struct {
	Name  string `json:"name"`
	Role  string `json:"role"`
	Bio   string `json:"bio"`
	Cause string `json:"cause"`
	Photo string `json:"photo"`
}

// Event is a locally edited upcoming event.
// Date is expected as YYYY-MM-DD in the site's time zone but is stored verbatim.
type Event struct {
	Date  string `json:"date"`
	Title string `json:"title"`
	Icon  string `json:"icon"`
}

// Photo is a gallery item. Src is an asset path or a data URL.
type Photo struct {
	Src   string `json:"src"`
	Title string `json:"title"`
	Tag   string `json:"tag"`
}

// BeforeAfter is the before/after comparison block.
type BeforeAfter struct {
	Title     string `json:"title"`
	BeforeSrc string `json:"beforeSrc"`
	AfterSrc  string `json:"afterSrc"`
}

// SiteContent is the whole editable site.
// INVARIANT: list order is display order; events are not kept sorted.
type SiteContent struct {
	HeroTitle       string `json:"heroTitle"`
	HeroDescription string `json:"heroDescription"`
	AboutTitle      string `json:"aboutTitle"`
	AboutIntro      string `json:"aboutIntro"`
	EventsTitle     string `json:"eventsTitle"`
	EventsIntro     string `json:"eventsIntro"`
	OfficersTitle   string `json:"officersTitle"`
	OfficersIntro   string `json:"officersIntro"`
	GalleryTitle    string `json:"galleryTitle"`
	GalleryIntro    string `json:"galleryIntro"`

	Activities []Activity `json:"activities"`
	Members    []Member   `json:"members"`
	Events     []Event    `json:"events"`
	Officers   []Officer  `json:"officers"`
	Gallery    []Photo    `json:"gallery"`

	BeforeAfter BeforeAfter `json:"beforeAfter"`
	LogoDataURL string      `json:"logoDataUrl,omitempty"`
}

// Clone returns a deep copy sharing no slice storage with c.
// PRE: none
// POST: mutating the copy never affects c, and vice versa
func (c SiteContent) Clone() SiteContent {
	out := c
	out.Activities = slices.Clone(c.Activities)
	out.Members = slices.Clone(c.Members)
	out.Events = slices.Clone(c.Events)
	out.Officers = slices.Clone(c.Officers)
	out.Gallery = slices.Clone(c.Gallery)
	return out
}

// Len returns the number of items in a collection.
// PRE: none
// POST: returns ErrUnknownCollection for an unrecognised collection
func (c *SiteContent) Len(col Collection) (int, error) {
	switch col {
	case CollectionActivities:
		return len(c.Activities), nil
	case CollectionMembers:
		return len(c.Members), nil
	case CollectionOfficers:
		return len(c.Officers), nil
	case CollectionGallery:
		return len(c.Gallery), nil
	case CollectionEvents:
		return len(c.Events), nil
	}
	return 0, ErrUnknownCollection
}

// AddDefault appends a default-valued item to a collection.
// Gallery items need an image, so they are added with AddPhoto instead.
// PRE: col is one of activities, members, officers, events
// POST: the collection grows by one at the end; existing items are untouched
func (c *SiteContent) AddDefault(col Collection) error {
	switch col {
	case CollectionActivities:
		c.Activities = append(c.Activities, NewActivity())
	case CollectionMembers:
		c.Members = append(c.Members, NewMember())
	case CollectionOfficers:
		c.Officers = append(c.Officers, NewOfficer())
	case CollectionEvents:
		c.Events = append(c.Events, NewEvent())
	default:
		return ErrUnknownCollection
	}
	return nil
}

// AddPhoto appends a gallery photo with default title and tag.
// PRE: src is an asset path or data URL
// POST: gallery grows by one at the end
func (c *SiteContent) AddPhoto(src string) {
	c.Gallery = append(c.Gallery, NewPhoto(src))
}

// DeleteAt removes exactly one item at index i from a collection.
// PRE: 0 <= i < Len(col)
// POST: the item is gone; the remaining items keep their relative order
func (c *SiteContent) DeleteAt(col Collection, i int) error {
	n, err := c.Len(col)
	if err != nil {
		return err
	}
	if i < 0 || i >= n {
		return ErrIndexOutOfRange
	}
	switch col {
	case CollectionActivities:
		c.Activities = slices.Delete(c.Activities, i, i+1)
	case CollectionMembers:
		c.Members = slices.Delete(c.Members, i, i+1)
	case CollectionOfficers:
		c.Officers = slices.Delete(c.Officers, i, i+1)
	case CollectionGallery:
		c.Gallery = slices.Delete(c.Gallery, i, i+1)
	case CollectionEvents:
		c.Events = slices.Delete(c.Events, i, i+1)
	}
	return nil
}

// ParseCollection maps a card type tag to a Collection.
func ParseCollection(s string) (Collection, error) {
	for _, col := range Collections {
		if string(col) == s {
			return col, nil
		}
	}
	return "", ErrUnknownCollection
}
