// Package dashboard owns the per-session dashboard state: the parsed
// case set, the active feed filter, the selected case and the triage
// notifications, held as one coherent snapshot. Every operation computes
// a new snapshot value and replaces the session's current one atomically
// under a per-session lock.
package dashboard

import (
	"time"

	"github.com/linnemanlabs/docket/internal/feed"
	"github.com/linnemanlabs/docket/internal/profile"
	"github.com/linnemanlabs/docket/internal/record"
	"github.com/linnemanlabs/docket/internal/triage"
)

// DefaultVisibleCaseLimit caps how many matching cases are shown before
// the remainder queues. Zero is a valid limit and queues everything.
const DefaultVisibleCaseLimit = 97

// SheetMeta describes the spreadsheet a session was imported from.
type SheetMeta struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Title           string    `json:"title"`
	AvailableSheets []string  `json:"availableSheets"`
	LastSyncedAt    time.Time `json:"lastSyncedAt"`
}

// Snapshot is the complete dashboard state for one session. Cases holds
// the visible slice of the current matching set, QueuedCases the
// overflow beyond the visible limit.
type Snapshot struct {
	SessionID     string                `json:"sessionId"`
	Cases         []record.Case         `json:"cases"`
	QueuedCases   []record.Case         `json:"queuedCases"`
	TotalCases    int                   `json:"totalCases"`
	ActiveCaseID  string                `json:"activeCaseId"`
	Criteria      feed.Criteria         `json:"filterCriteria"`
	FilterSummary string                `json:"filterSummary"`
	Notifications []triage.Notification `json:"notifications"`
	Metrics       record.Metrics        `json:"metrics"`
	Sheet         SheetMeta             `json:"sheet"`
	Profile       profile.Profile       `json:"profile"`
	LastAction    string                `json:"lastAction"`
}

// FilterResult is the outcome of a filter apply/clear operation.
type FilterResult struct {
	MatchingIDs []string      `json:"matchingCaseIds"`
	MatchCount  int           `json:"matchCount"`
	Criteria    feed.Criteria `json:"filterCriteria"`
	Summary     string        `json:"summary"`
	Message     string        `json:"message"`
}

// clone deep-copies the snapshot so callers never alias store-owned
// slices.
func (s *Snapshot) clone() *Snapshot {
	cp := *s
	cp.Cases = append([]record.Case(nil), s.Cases...)
	cp.QueuedCases = append([]record.Case(nil), s.QueuedCases...)
	cp.Notifications = append([]triage.Notification(nil), s.Notifications...)
	cp.Criteria = cloneCriteria(s.Criteria)
	cp.Metrics.CasesByCategory = append(record.CategoryCounts(nil), s.Metrics.CasesByCategory...)
	cp.Sheet.AvailableSheets = append([]string(nil), s.Sheet.AvailableSheets...)
	cp.Profile.TriagePreferences.CategoriesOfInterest = append([]string(nil), s.Profile.TriagePreferences.CategoriesOfInterest...)
	cp.Profile.TriagePreferences.CitiesOfInterest = append([]string(nil), s.Profile.TriagePreferences.CitiesOfInterest...)
	return &cp
}

func cloneCriteria(c feed.Criteria) feed.Criteria {
	c.Categories = append([]string(nil), c.Categories...)
	c.Jurisdictions = append([]string(nil), c.Jurisdictions...)
	c.IncidentIDs = append([]string(nil), c.IncidentIDs...)
	if c.Injury != nil {
		v := *c.Injury
		c.Injury = &v
	}
	if c.PropertyDamage != nil {
		v := *c.PropertyDamage
		c.PropertyDamage = &v
	}
	return c
}
