// Package profile owns the lawyer profile and its triage preferences.
// Preferences are long-lived configuration: they are read by triage
// evaluation and mutated only through an explicit update operation that
// returns the new value. There is no process-global profile.
package profile

import "time"

// DefaultProfileID is the profile used when a request names none.
const DefaultProfileID = "default"

// TriagePreferences is a lawyer's persistent triage configuration.
type TriagePreferences struct {
	CategoriesOfInterest  []string `json:"categoriesOfInterest"`
	RequireInjury         bool     `json:"requireInjury"`
	IncludePropertyDamage bool     `json:"includePropertyDamage"`
	CitiesOfInterest      []string `json:"citiesOfInterest"`
}

// Profile is one lawyer's dashboard identity and triage configuration.
type Profile struct {
	ID                string            `json:"id"`
	DisplayName       string            `json:"displayName"`
	Email             string            `json:"email,omitempty"`
	TriagePreferences TriagePreferences `json:"triagePreferences"`
	UpdatedAt         time.Time         `json:"updatedAt"`
}

// DefaultPreferences returns the unconstrained preference set: no
// category or city interest, injuries not required, property-damage-only
// cases included.
func DefaultPreferences() TriagePreferences {
	return TriagePreferences{
		CategoriesOfInterest:  []string{},
		IncludePropertyDamage: true,
		CitiesOfInterest:      []string{},
	}
}

// DefaultProfile returns a fresh profile with default preferences.
func DefaultProfile(id string) *Profile {
	if id == "" {
		id = DefaultProfileID
	}
	return &Profile{
		ID:                id,
		DisplayName:       "Trial Lawyer",
		TriagePreferences: DefaultPreferences(),
		UpdatedAt:         time.Now().UTC(),
	}
}
