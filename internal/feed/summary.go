package feed

import (
	"fmt"
	"strings"
)

const partSeparator = " • "

// Summarize renders a human-readable description of the criteria. An
// explicit non-empty Summary wins verbatim; otherwise the populated
// fields are described in fixed order. Fully default criteria yield "".
func Summarize(c Criteria) string {
	if !c.IsActive() {
		return ""
	}
	if s := strings.TrimSpace(c.Summary); s != "" {
		return s
	}

	var parts []string

	if len(c.Categories) > 0 {
		parts = append(parts, "Categories: "+strings.Join(c.Categories, ", "))
	}
	if len(c.Jurisdictions) > 0 {
		parts = append(parts, "Jurisdictions: "+strings.Join(c.Jurisdictions, ", "))
	}
	if c.Injury != nil {
		if *c.Injury {
			parts = append(parts, "Requires injury")
		} else {
			parts = append(parts, "Exclude injury cases")
		}
	}
	if c.PropertyDamage != nil {
		if *c.PropertyDamage {
			parts = append(parts, "Requires property damage")
		} else {
			parts = append(parts, "Exclude property damage cases")
		}
	}
	if len(c.IncidentIDs) > 0 {
		parts = append(parts, "Incident IDs: "+strings.Join(c.IncidentIDs, ", "))
	}
	if s := strings.TrimSpace(c.SearchText); s != "" {
		parts = append(parts, fmt.Sprintf("Text contains %q", s))
	}

	if len(parts) == 0 {
		return "Custom filter"
	}
	return strings.Join(parts, partSeparator)
}
