package theme

import "fmt"

// Theme is the site colour palette, applied as CSS custom properties.
// Values are stored verbatim; any CSS colour is accepted.
type Theme struct {
	P1 string `json:"p1"` // primary purple
	P2 string `json:"p2"` // secondary purple
	P3 string `json:"p3"` // accent pink
}

// Default returns the built-in palette.
func Default() Theme {
	return Theme{
		P1: "#7b2cff",
		P2: "#b58cff",
		P3: "#ff4fd8",
	}
}

// WithOverrides returns a copy with each non-empty argument replacing its colour.
// PRE: none
// POST: empty arguments keep the current colour
func (t Theme) WithOverrides(p1, p2, p3 string) Theme {
	if p1 != "" {
		t.P1 = p1
	}
	if p2 != "" {
		t.P2 = p2
	}
	if p3 != "" {
		t.P3 = p3
	}
	return t
}

// CSSVars renders the palette as a declaration block for :root.
func (t Theme) CSSVars() string {
	return fmt.Sprintf("--p1: %s; --p2: %s; --p3: %s;", t.P1, t.P2, t.P3)
}
