// Package feed applies a mutable filter criteria to a case collection and
// keeps the active-case selection consistent with the matching set.
package feed

import "strings"

// Criteria narrows which cases are shown in the live feed. Empty list
// fields and nil booleans are unconstrained; a zero Criteria matches
// every case.
type Criteria struct {
	// Summary, when set, overrides the synthesized description verbatim.
	Summary    string `json:"summary"`
	SearchText string `json:"searchText"`

	// Set fields match case-insensitively.
	Categories    []string `json:"categories"`
	Jurisdictions []string `json:"jurisdictions"`
	IncidentIDs   []string `json:"incidentIds"`

	// Tri-state: nil = unconstrained.
	Injury         *bool `json:"injury"`
	PropertyDamage *bool `json:"propertyDamage"`
}

// Default returns the unconstrained criteria.
func Default() Criteria {
	return Criteria{}
}

// IsActive reports whether any constraint or summary override is set.
func (c Criteria) IsActive() bool {
	return strings.TrimSpace(c.Summary) != "" ||
		strings.TrimSpace(c.SearchText) != "" ||
		len(c.Categories) > 0 ||
		len(c.Jurisdictions) > 0 ||
		len(c.IncidentIDs) > 0 ||
		c.Injury != nil ||
		c.PropertyDamage != nil
}

// Normalize drops blank list entries and trims the rest. Malformed
// entries are discarded per-entry rather than failing the whole filter.
func (c Criteria) Normalize() Criteria {
	c.Categories = cleanList(c.Categories)
	c.Jurisdictions = cleanList(c.Jurisdictions)
	c.IncidentIDs = cleanList(c.IncidentIDs)
	return c
}

func cleanList(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// lowerSet folds a list into a lowercase membership set.
func lowerSet(values []string) map[string]bool {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[strings.ToLower(strings.TrimSpace(v))] = true
	}
	return set
}
