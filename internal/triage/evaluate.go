package triage

import (
	"fmt"
	"strings"
	"time"

	"github.com/linnemanlabs/docket/internal/profile"
	"github.com/linnemanlabs/docket/internal/record"
)

// Evaluate applies the triage preferences to every case, in input order,
// and returns one notification per surviving case. Every active
// constraint must pass. All notifications share the evaluation instant
// as CreatedAt.
func Evaluate(cases []record.Case, prefs profile.TriagePreferences, now time.Time) []Notification {
	categories := interestSet(prefs.CategoriesOfInterest)
	cities := interestSet(prefs.CitiesOfInterest)

	var notifications []Notification
	for _, c := range cases {
		if !matches(c, prefs, categories, cities) {
			continue
		}
		notifications = append(notifications, Notification{
			ID:         "triage-" + c.IncidentID,
			IncidentID: c.IncidentID,
			CreatedAt:  now,
			Message:    message(c),
		})
	}
	return notifications
}

func matches(c record.Case, prefs profile.TriagePreferences, categories, cities map[string]bool) bool {
	if len(categories) > 0 && !categories[strings.ToLower(c.IncidentCategory)] {
		return false
	}

	if len(cities) > 0 {
		if !cities[strings.ToLower(c.Jurisdiction)] && !cityInLocation(cities, c.Location) {
			return false
		}
	}

	if prefs.RequireInjury && !c.InjuryReported {
		return false
	}

	// With property damage excluded, suppress property-damage-only
	// cases. An injury case is never suppressed here even when it also
	// has property damage.
	if !prefs.IncludePropertyDamage && c.PropertyDamage && !c.InjuryReported {
		return false
	}

	return true
}

// cityInLocation reports whether any city of interest appears as a
// substring of the lowercased location.
func cityInLocation(cities map[string]bool, location string) bool {
	loc := strings.ToLower(location)
	for city := range cities {
		if strings.Contains(loc, city) {
			return true
		}
	}
	return false
}

// interestSet folds preference values into a lowercase set, dropping
// blanks.
func interestSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			set[strings.ToLower(v)] = true
		}
	}
	return set
}

func message(c record.Case) string {
	return fmt.Sprintf("%s at %s on %s involving %s",
		orDefault(c.IncidentCategory, "Incident"),
		orDefault(c.Location, "unknown location"),
		orDefault(c.IncidentDate, "unknown date"),
		orDefault(c.FullName, "unknown party"),
	)
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
