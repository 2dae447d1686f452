package email

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

var announcementTmpl = template.Must(template.New("announce").Parse(`<h2>{{.Title}}</h2>
<p><strong>When:</strong> {{.When}}</p>
{{- if .Location}}
<p><strong>Where:</strong> {{.Location}}</p>
{{- end}}
{{- if .Description}}
<p>{{.Description}}</p>
{{- end}}
`))

// Announcement describes a newly created club event.
type Announcement struct {
	Title       string
	When        string // human-readable date
	Location    string
	Description string
}

// AnnouncementMessage renders the announcement e-mail for to.
// PRE: a.Title is non-empty
// POST: HTML fields are escaped; Text carries the same facts in plain form
func AnnouncementMessage(to string, a Announcement) (Message, error) {
	var html bytes.Buffer
	if err := announcementTmpl.Execute(&html, a); err != nil {
		return Message{}, fmt.Errorf("render announcement: %w", err)
	}
	var text strings.Builder
	fmt.Fprintf(&text, "%s\nWhen: %s\n", a.Title, a.When)
	if a.Location != "" {
		fmt.Fprintf(&text, "Where: %s\n", a.Location)
	}
	if a.Description != "" {
		fmt.Fprintf(&text, "\n%s\n", a.Description)
	}
	return Message{
		To:      []string{to},
		Subject: "New event: " + a.Title,
		HTML:    html.String(),
		Text:    text.String(),
	}, nil
}
