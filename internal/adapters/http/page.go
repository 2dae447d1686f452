package web

import (
	"bytes"
	"html/template"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"treetroopers/internal/application/projections"
	"treetroopers/internal/domain/content"
	"treetroopers/internal/domain/theme"
	"treetroopers/internal/domain/widget"
)

// mdRenderer turns intro text into HTML. Raw HTML in the input is escaped
// (WithUnsafe is NOT set) and the output is sanitised again by mdPolicy.
var mdRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

var mdPolicy = bluemonday.UGCPolicy()

func renderMarkdown(md string) template.HTML {
	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(md), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(mdPolicy.SanitizeBytes(buf.Bytes()))
}

// imageURL lets uploaded data:image URLs and plain asset paths through the
// template URL filter. Anything else renders as "#".
func imageURL(src string) template.URL {
	if strings.HasPrefix(src, "data:image/") {
		return template.URL(src)
	}
	u, err := url.Parse(src)
	if err != nil {
		return "#"
	}
	switch u.Scheme {
	case "", "http", "https":
		return template.URL(src)
	}
	return "#"
}

// defaultLogo is shown until a logo is uploaded.
const defaultLogo = "assets/logo.png"

// cssColor accepts hex, named and functional colour notations.
var cssColor = regexp.MustCompile(`^[#a-zA-Z0-9 ,.%()-]{1,64}$`)

// safeTheme replaces any colour that could break out of the style block
// with its default.
func safeTheme(t theme.Theme) theme.Theme {
	d := theme.Default()
	check := func(v, fallback string) string {
		if cssColor.MatchString(v) {
			return v
		}
		return fallback
	}
	return theme.Theme{P1: check(t.P1, d.P1), P2: check(t.P2, d.P2), P3: check(t.P3, d.P3)}
}

// impactStat is an animated counter in the impact section.
type impactStat struct {
	Label   string
	Target  int
	Suffix  string
	Initial int
}

var impactStats = []struct {
	label  string
	target int
	suffix string
}{
	{"Years of action", 10, "+"},
	{"Beach cleanups", 40, "+"},
	{"Pounds of litter removed", 2500, "+"},
	{"Student volunteers", 120, "+"},
}

type officerCard struct {
	Index int
	Photo string
	Name  string
	Role  string
	Bio   string
	Cause string
}

type beforeAfterBlock struct {
	Show      bool
	Title     string
	BeforeSrc string
	AfterSrc  string
	Slider    int
	Clip      template.CSS
}

// pageState is the request-scoped part of the page.
type pageState struct {
	Developer bool
	DevEmail  string
	Editing   bool
	PanelOpen bool
	Now       time.Time
}

// pageData is the view model of templates/page.html.
type pageData struct {
	pageState
	ThemeCSS    template.CSS
	Text        map[string]string
	LogoSrc     string
	Activities  []content.Activity
	Members     []content.Member
	Officers    []officerCard
	Events      projections.EventsSection
	Gallery     []content.Photo
	BeforeAfter beforeAfterBlock
	Stats       []impactStat
	CounterMs   int64
	Year        int
}

// buildPage projects content and theme into the page view model, applying
// the display fallbacks for blank fields.
func buildPage(c content.SiteContent, t theme.Theme, st pageState) pageData {
	data := pageData{
		pageState:  st,
		ThemeCSS:   template.CSS(safeTheme(t).CSSVars()),
		Text:       c.Texts(),
		LogoSrc:    orFallback(c.LogoDataURL, defaultLogo),
		Activities: c.Activities,
		Members:    c.Members,
		Gallery:    c.Gallery,
		Events: projections.QueryGetEventsSection(projections.GetEventsSectionQuery{
			Events: c.Events,
			Now:    st.Now,
		}),
		CounterMs: widget.CounterDuration.Milliseconds(),
		Year:      st.Now.Year(),
	}

	for i, o := range c.Officers {
		data.Officers = append(data.Officers, officerCard{
			Index: i,
			Photo: o.Photo,
			Name:  orFallback(o.Name, "New Officer"),
			Role:  orFallback(o.Role, "Role"),
			Bio:   orFallback(o.Bio, "Short bio..."),
			Cause: orFallback(o.Cause, "Cause"),
		})
	}

	ba := c.BeforeAfter
	data.BeforeAfter = beforeAfterBlock{
		Show:      ba.BeforeSrc != "" && ba.AfterSrc != "",
		Title:     orFallback(ba.Title, "Before & After"),
		BeforeSrc: ba.BeforeSrc,
		AfterSrc:  ba.AfterSrc,
		Slider:    widget.SliderInitial,
		Clip:      template.CSS(widget.SliderClip(widget.SliderInitial)),
	}

	for _, s := range impactStats {
		data.Stats = append(data.Stats, impactStat{
			Label:   s.label,
			Target:  s.target,
			Suffix:  s.suffix,
			Initial: widget.CounterValue(s.target, 0),
		})
	}
	return data
}

func orFallback(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
