package feed

import (
	"strings"

	"github.com/linnemanlabs/docket/internal/record"
)

// Apply returns the cases matching the criteria, in input order, together
// with their incident ids.
func Apply(cases []record.Case, c Criteria) ([]record.Case, []string) {
	if !c.IsActive() {
		ids := make([]string, len(cases))
		for i, rc := range cases {
			ids[i] = rc.IncidentID
		}
		return cases, ids
	}

	m := newMatcher(c)
	var matched []record.Case
	var ids []string
	for _, rc := range cases {
		if m.match(rc) {
			matched = append(matched, rc)
			ids = append(ids, rc.IncidentID)
		}
	}
	return matched, ids
}

// matcher holds the criteria pre-lowered for repeated per-case checks.
type matcher struct {
	criteria      Criteria
	incidentIDs   map[string]bool
	categories    map[string]bool
	jurisdictions map[string]bool
	tokens        []string
}

func newMatcher(c Criteria) matcher {
	return matcher{
		criteria:      c,
		incidentIDs:   lowerSet(c.IncidentIDs),
		categories:    lowerSet(c.Categories),
		jurisdictions: lowerSet(c.Jurisdictions),
		tokens:        strings.Fields(strings.ToLower(c.SearchText)),
	}
}

// match applies every active constraint; all must pass.
func (m matcher) match(rc record.Case) bool {
	if len(m.incidentIDs) > 0 && !m.incidentIDs[strings.ToLower(rc.IncidentID)] {
		return false
	}
	if len(m.categories) > 0 && !m.categories[strings.ToLower(rc.IncidentCategory)] {
		return false
	}
	if len(m.jurisdictions) > 0 && !m.jurisdictions[strings.ToLower(rc.Jurisdiction)] {
		return false
	}
	if m.criteria.Injury != nil && rc.InjuryReported != *m.criteria.Injury {
		return false
	}
	if m.criteria.PropertyDamage != nil && rc.PropertyDamage != *m.criteria.PropertyDamage {
		return false
	}
	if len(m.tokens) > 0 {
		haystack := searchText(rc)
		for _, token := range m.tokens {
			if !strings.Contains(haystack, token) {
				return false
			}
		}
	}
	return true
}

// searchText concatenates the searchable fields, lowercased, joined by
// spaces. Tokens match as substrings anywhere in the concatenation.
func searchText(rc record.Case) string {
	return strings.ToLower(strings.Join([]string{
		rc.IncidentID,
		rc.IncidentCategory,
		rc.IncidentDescription,
		rc.Location,
		rc.FullName,
		rc.Resolution,
		rc.FaultDetermination,
	}, " "))
}

// ResolveActiveCase keeps the active-case selection consistent after a
// filter pass: an active id still in the matching set is kept, otherwise
// the first matching id wins, or none when nothing matches.
func ResolveActiveCase(current string, matchingIDs []string) string {
	for _, id := range matchingIDs {
		if id == current {
			return current
		}
	}
	if len(matchingIDs) > 0 {
		return matchingIDs[0]
	}
	return ""
}

// FirstCaseID returns the id of the first case in collection order, or ""
// when the collection is empty. Used when a cleared filter resets the
// active case.
func FirstCaseID(cases []record.Case) string {
	if len(cases) == 0 {
		return ""
	}
	return cases[0].IncidentID
}
