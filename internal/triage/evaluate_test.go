package triage

import (
	"testing"
	"time"

	"github.com/linnemanlabs/docket/internal/profile"
	"github.com/linnemanlabs/docket/internal/record"
)

var evalTime = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func prefs() profile.TriagePreferences {
	return profile.DefaultPreferences()
}

func TestEvaluate_NoConstraintsMatchesAll(t *testing.T) {
	t.Parallel()

	cases := []record.Case{
		{IncidentID: "A-1"},
		{IncidentID: "B-2"},
	}
	got := Evaluate(cases, prefs(), evalTime)
	if len(got) != 2 {
		t.Fatalf("notifications = %d, want 2", len(got))
	}
	if got[0].ID != "triage-A-1" {
		t.Errorf("ID = %q, want triage-A-1", got[0].ID)
	}
	if got[0].IncidentID != "A-1" {
		t.Errorf("IncidentID = %q, want A-1", got[0].IncidentID)
	}
	if !got[0].CreatedAt.Equal(evalTime) || !got[1].CreatedAt.Equal(evalTime) {
		t.Error("notifications must share the evaluation timestamp")
	}
	if got[0].Acknowledged {
		t.Error("Acknowledged = true, want false")
	}
}

func TestEvaluate_CategoryConstraint(t *testing.T) {
	t.Parallel()

	p := prefs()
	p.CategoriesOfInterest = []string{"Dog Bite"}

	cases := []record.Case{
		{IncidentID: "A-1", IncidentCategory: "Dog Bite"},
		{IncidentID: "B-2", IncidentCategory: "Rear End"},
		{IncidentID: "C-3", IncidentCategory: "dog bite"}, // category set is case-insensitive
	}
	got := Evaluate(cases, p, evalTime)
	if len(got) != 2 {
		t.Fatalf("notifications = %d, want 2", len(got))
	}
	if got[0].IncidentID != "A-1" || got[1].IncidentID != "C-3" {
		t.Errorf("matched = %q, %q; want A-1, C-3", got[0].IncidentID, got[1].IncidentID)
	}
}

func TestEvaluate_CityConstraint(t *testing.T) {
	t.Parallel()

	p := prefs()
	p.CitiesOfInterest = []string{"Oakland"}

	cases := []record.Case{
		// jurisdiction match
		{IncidentID: "A-1", Jurisdiction: "OAKLAND"},
		// location substring match
		{IncidentID: "B-2", Jurisdiction: "XX", Location: "Broadway, Oakland, CA"},
		// neither
		{IncidentID: "C-3", Jurisdiction: "SF", Location: "Market St, San Francisco"},
	}
	got := Evaluate(cases, p, evalTime)
	if len(got) != 2 {
		t.Fatalf("notifications = %d, want 2", len(got))
	}
	if got[0].IncidentID != "A-1" || got[1].IncidentID != "B-2" {
		t.Errorf("matched = %q, %q; want A-1, B-2", got[0].IncidentID, got[1].IncidentID)
	}
}

func TestEvaluate_RequireInjury(t *testing.T) {
	t.Parallel()

	p := prefs()
	p.RequireInjury = true

	cases := []record.Case{
		{IncidentID: "A-1", InjuryReported: true},
		{IncidentID: "B-2"},
	}
	got := Evaluate(cases, p, evalTime)
	if len(got) != 1 || got[0].IncidentID != "A-1" {
		t.Fatalf("got %d notifications, want only A-1", len(got))
	}
}

// Property-damage-only cases are suppressed when property damage is
// excluded, but injury cases survive even with damage attached.
func TestEvaluate_PropertyDamageSuppression(t *testing.T) {
	t.Parallel()

	p := prefs()
	p.IncludePropertyDamage = false

	cases := []record.Case{
		{IncidentID: "A-1", PropertyDamage: true},                       // suppressed
		{IncidentID: "B-2", PropertyDamage: true, InjuryReported: true}, // kept
		{IncidentID: "C-3"},                                             // kept, no damage at all
	}
	got := Evaluate(cases, p, evalTime)
	if len(got) != 2 {
		t.Fatalf("notifications = %d, want 2", len(got))
	}
	if got[0].IncidentID != "B-2" || got[1].IncidentID != "C-3" {
		t.Errorf("matched = %q, %q; want B-2, C-3", got[0].IncidentID, got[1].IncidentID)
	}
}

// Combined injury requirement and damage exclusion: only the injured
// case with damage survives.
func TestEvaluate_InjuryRequiredDamageExcluded(t *testing.T) {
	t.Parallel()

	p := prefs()
	p.RequireInjury = true
	p.IncludePropertyDamage = false

	cases := []record.Case{
		{IncidentID: "A-1", PropertyDamage: true},
		{IncidentID: "B-2", PropertyDamage: true, InjuryReported: true},
	}
	got := Evaluate(cases, p, evalTime)
	if len(got) != 1 {
		t.Fatalf("notifications = %d, want 1", len(got))
	}
	if got[0].IncidentID != "B-2" {
		t.Errorf("IncidentID = %q, want B-2", got[0].IncidentID)
	}
}

func TestEvaluate_MessageTemplate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		c    record.Case
		want string
	}{
		{
			"full case",
			record.Case{
				IncidentID:       "A-1",
				IncidentCategory: "Dog Bite",
				Location:         "Lakeshore Ave, Oakland",
				IncidentDate:     "2024-03-05",
				FullName:         "Jane Doe",
			},
			"Dog Bite at Lakeshore Ave, Oakland on 2024-03-05 involving Jane Doe",
		},
		{
			"empty fields fall back",
			record.Case{IncidentID: "B-2"},
			"Incident at unknown location on unknown date involving unknown party",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := Evaluate([]record.Case{tt.c}, prefs(), evalTime)
			if len(got) != 1 {
				t.Fatalf("notifications = %d, want 1", len(got))
			}
			if got[0].Message != tt.want {
				t.Errorf("Message = %q, want %q", got[0].Message, tt.want)
			}
		})
	}
}

func TestEvaluate_BlankPreferenceEntriesIgnored(t *testing.T) {
	t.Parallel()

	p := prefs()
	p.CategoriesOfInterest = []string{"  ", ""}
	p.CitiesOfInterest = []string{""}

	got := Evaluate([]record.Case{{IncidentID: "A-1"}}, p, evalTime)
	if len(got) != 1 {
		t.Fatalf("blank-only interest lists must be unconstrained, got %d", len(got))
	}
}
