// Package palette resolves the colors a proposal is rendered with.
package palette

import (
	"regexp"

	"orcafacil/internal/domain/entities"
)

// Palette is the complete color set used at render time. Values are #RRGGBB.
type Palette struct {
	Primary    string `json:"primary"`
	Background string `json:"background"`
	Text       string `json:"text"`
	Accent     string `json:"accent"`
}

var baselines = map[entities.TemplateID]Palette{
	entities.TemplateDefault: {Primary: "#2563eb", Background: "#ffffff", Text: "#1f2937", Accent: "#f3f4f6"},
	entities.TemplateMinimal: {Primary: "#000000", Background: "#ffffff", Text: "#333333", Accent: "#f5f5f5"},
	entities.TemplateDark:    {Primary: "#60a5fa", Background: "#1f2937", Text: "#f9fafb", Accent: "#374151"},
	entities.TemplateElegant: {Primary: "#7c3aed", Background: "#fefefe", Text: "#374151", Accent: "#f3e8ff"},
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// IsKnownTemplate reports whether id names one of the fixed templates.
func IsKnownTemplate(id entities.TemplateID) bool {
	_, ok := baselines[id]
	return ok
}

// IsHexColor reports whether s is a #RRGGBB color.
func IsHexColor(s string) bool {
	return hexColor.MatchString(s)
}

// Baseline returns the palette of a template; unknown ids get the default one.
func Baseline(id entities.TemplateID) Palette {
	if p, ok := baselines[id]; ok {
		return p
	}
	return baselines[entities.TemplateDefault]
}

// Resolve merges the per-proposal overrides onto the template baseline. Only
// the non-empty override fields replace baseline values.
func Resolve(id entities.TemplateID, overrides *entities.TemplateColors) Palette {
	p := Baseline(id)
	if overrides == nil {
		return p
	}
	if overrides.Primary != "" {
		p.Primary = overrides.Primary
	}
	if overrides.Background != "" {
		p.Background = overrides.Background
	}
	if overrides.Text != "" {
		p.Text = overrides.Text
	}
	if overrides.Accent != "" {
		p.Accent = overrides.Accent
	}
	return p
}

// ForProposal is Resolve applied to a proposal's own template fields.
func ForProposal(p entities.Proposal) Palette {
	return Resolve(p.TemplateID, p.TemplateColors)
}
