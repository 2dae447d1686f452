package content

// Text field keys, as bound on the page and persisted.
const (
	KeyHeroTitle       = "heroTitle"
	KeyHeroDescription = "heroDescription"
	KeyAboutTitle      = "aboutTitle"
	KeyAboutIntro      = "aboutIntro"
	KeyEventsTitle     = "eventsTitle"
	KeyEventsIntro     = "eventsIntro"
	KeyOfficersTitle   = "officersTitle"
	KeyOfficersIntro   = "officersIntro"
	KeyGalleryTitle    = "galleryTitle"
	KeyGalleryIntro    = "galleryIntro"
)

// TextKeys lists every freeform text field.
var TextKeys = []string{
	KeyHeroTitle, KeyHeroDescription,
	KeyAboutTitle, KeyAboutIntro,
	KeyEventsTitle, KeyEventsIntro,
	KeyOfficersTitle, KeyOfficersIntro,
	KeyGalleryTitle, KeyGalleryIntro,
}

func (c *SiteContent) textField(key string) *string {
	switch key {
	case KeyHeroTitle:
		return &c.HeroTitle
	case KeyHeroDescription:
		return &c.HeroDescription
	case KeyAboutTitle:
		return &c.AboutTitle
	case KeyAboutIntro:
		return &c.AboutIntro
	case KeyEventsTitle:
		return &c.EventsTitle
	case KeyEventsIntro:
		return &c.EventsIntro
	case KeyOfficersTitle:
		return &c.OfficersTitle
	case KeyOfficersIntro:
		return &c.OfficersIntro
	case KeyGalleryTitle:
		return &c.GalleryTitle
	case KeyGalleryIntro:
		return &c.GalleryIntro
	}
	return nil
}

// Text returns the value of a freeform text field.
func (c *SiteContent) Text(key string) (string, bool) {
	p := c.textField(key)
	if p == nil {
		return "", false
	}
	return *p, true
}

// SetText assigns a freeform text field. Unknown keys are ignored.
// PRE: none
// POST: returns false when key is not a text field
func (c *SiteContent) SetText(key, value string) bool {
	p := c.textField(key)
	if p == nil {
		return false
	}
	*p = value
	return true
}

// Texts returns every text field keyed by name.
func (c *SiteContent) Texts() map[string]string {
	out := make(map[string]string, len(TextKeys))
	for _, k := range TextKeys {
		out[k], _ = c.Text(k)
	}
	return out
}
