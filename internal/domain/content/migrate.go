package content

import "strings"

// Canonical Secretary values used when repairing legacy officer data.
const (
	SecretaryRole  = "Secretary"
	SecretaryPhoto = "assets/officers/secretary.jpg"
)

const (
	placeholderName = "your name"
	placeholderRole = "role"

	// misspelledPhoto is the filename fragment left behind by an old upload.
	misspelledPhoto = "Secretrary.jpg"
)

// legacyRoles are role spellings that mean Secretary.
var legacyRoles = map[string]bool{
	"outreach coordinator": true,
	"secretrary":           true,
}

// Migrate repairs stale officer data in place and returns c.
//
// If any officer has a blank or "Your Name" name, the whole list is treated
// as placeholder data and replaced by the defaults. Otherwise each officer is
// repaired field by field against the default at the same index.
// PRE: none
// POST: officers are never reordered; only the placeholder case changes the count
// INVARIANT: Migrate(Migrate(c)) == Migrate(c)
func Migrate(c *SiteContent) *SiteContent {
	if c == nil || c.Officers == nil {
		return c
	}
	defaults := DefaultOfficers()

	if hasPlaceholder(c.Officers) && len(defaults) > 0 {
		c.Officers = defaults
		return c
	}

	for i := range c.Officers {
		var d *Officer
		if i < len(defaults) {
			d = &defaults[i]
		}
		repairOfficer(&c.Officers[i], d)
	}
	return c
}

func hasPlaceholder(officers []Officer) bool {
	for _, o := range officers {
		name := strings.ToLower(strings.TrimSpace(o.Name))
		if name == "" || name == placeholderName {
			return true
		}
	}
	return false
}

func repairOfficer(o *Officer, d *Officer) {
	if legacyRoles[strings.ToLower(strings.TrimSpace(o.Role))] {
		o.Role = SecretaryRole
		o.Photo = SecretaryPhoto
	}
	if strings.Contains(o.Photo, misspelledPhoto) {
		o.Photo = SecretaryPhoto
	}
	if d == nil {
		return
	}

	if name := strings.TrimSpace(o.Name); name == "" || strings.ToLower(name) == placeholderName {
		o.Name = d.Name
	}
	if isBlank(o.Photo) {
		o.Photo = d.Photo
	}
	if isBlank(o.Bio) {
		o.Bio = d.Bio
	}
	if isBlank(o.Cause) {
		o.Cause = d.Cause
	}
	if role := strings.TrimSpace(o.Role); role == "" || strings.ToLower(role) == placeholderRole {
		o.Role = d.Role
	}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
