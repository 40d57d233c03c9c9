package feed

import (
	"testing"

	"github.com/linnemanlabs/docket/internal/record"
)

func boolPtr(v bool) *bool { return &v }

func testCases() []record.Case {
	return []record.Case{
		{
			IncidentID:          "INC-001-SF",
			FullName:            "Jane Doe",
			IncidentDate:        "2024-03-05",
			Location:            "Market St, San Francisco, CA",
			Jurisdiction:        "INC",
			IncidentCategory:    "Bicycle Vs Vehicle",
			Resolution:          "Resolved",
			FaultDetermination:  "Driver at fault",
			IncidentDescription: "Collision at intersection",
			InjuryReported:      true,
		},
		{
			IncidentID:       "OAK-002",
			FullName:         "John Roe",
			Location:         "Broadway, Oakland, CA",
			Jurisdiction:     "OAK",
			IncidentCategory: "Slip And Fall",
			PropertyDamage:   true,
		},
		{
			IncidentID:       "SJ-003",
			Location:         "1st St, San Jose, CA",
			Jurisdiction:     "SJ",
			IncidentCategory: "Bicycle Vs Vehicle",
		},
	}
}

func TestApply_DefaultCriteriaMatchesAll(t *testing.T) {
	t.Parallel()

	cases := testCases()
	matched, ids := Apply(cases, Default())
	if len(matched) != len(cases) {
		t.Fatalf("matched = %d, want %d", len(matched), len(cases))
	}
	if len(ids) != len(cases) {
		t.Fatalf("ids = %d, want %d", len(ids), len(cases))
	}
	for i, rc := range cases {
		if ids[i] != rc.IncidentID {
			t.Errorf("ids[%d] = %q, want %q", i, ids[i], rc.IncidentID)
		}
	}
}

// Scenario: category + injury constraint matches exactly one case.
func TestApply_CategoryAndInjury(t *testing.T) {
	t.Parallel()

	c := Criteria{
		Categories: []string{"Bicycle Vs Vehicle"},
		Injury:     boolPtr(true),
	}
	matched, ids := Apply(testCases(), c)
	if len(matched) != 1 {
		t.Fatalf("matched = %d, want 1", len(matched))
	}
	if ids[0] != "INC-001-SF" {
		t.Errorf("ids[0] = %q, want INC-001-SF", ids[0])
	}
}

func TestApply_CaseInsensitiveSets(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		c       Criteria
		wantIDs []string
	}{
		{"category lowercased", Criteria{Categories: []string{"bicycle vs vehicle"}}, []string{"INC-001-SF", "SJ-003"}},
		{"jurisdiction uppercased", Criteria{Jurisdictions: []string{"oak"}}, []string{"OAK-002"}},
		{"incident id mixed case", Criteria{IncidentIDs: []string{"inc-001-sf"}}, []string{"INC-001-SF"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, ids := Apply(testCases(), tt.c)
			if len(ids) != len(tt.wantIDs) {
				t.Fatalf("ids = %v, want %v", ids, tt.wantIDs)
			}
			for i := range ids {
				if ids[i] != tt.wantIDs[i] {
					t.Errorf("ids[%d] = %q, want %q", i, ids[i], tt.wantIDs[i])
				}
			}
		})
	}
}

func TestApply_TriStateBooleans(t *testing.T) {
	t.Parallel()

	// injury=false must match only cases with InjuryReported == false,
	// not be treated as unconstrained.
	_, ids := Apply(testCases(), Criteria{Injury: boolPtr(false)})
	if len(ids) != 2 {
		t.Fatalf("ids = %v, want 2 entries", ids)
	}
	for _, id := range ids {
		if id == "INC-001-SF" {
			t.Error("injury=false matched an injury case")
		}
	}

	_, ids = Apply(testCases(), Criteria{PropertyDamage: boolPtr(true)})
	if len(ids) != 1 || ids[0] != "OAK-002" {
		t.Errorf("ids = %v, want [OAK-002]", ids)
	}
}

func TestApply_SearchTokensAllMustMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		search  string
		wantIDs []string
	}{
		{"single token on description", "collision", []string{"INC-001-SF"}},
		{"token on name", "jane", []string{"INC-001-SF"}},
		{"tokens across fields", "jane resolved", []string{"INC-001-SF"}},
		{"one token misses", "jane oakland", nil},
		{"token on location", "oakland", []string{"OAK-002"}},
		{"substring across concatenation", "san", []string{"INC-001-SF", "SJ-003"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, ids := Apply(testCases(), Criteria{SearchText: tt.search})
			if len(ids) != len(tt.wantIDs) {
				t.Fatalf("ids = %v, want %v", ids, tt.wantIDs)
			}
			for i := range ids {
				if ids[i] != tt.wantIDs[i] {
					t.Errorf("ids[%d] = %q, want %q", i, ids[i], tt.wantIDs[i])
				}
			}
		})
	}
}

func TestApply_Idempotent(t *testing.T) {
	t.Parallel()

	c := Criteria{Categories: []string{"Bicycle Vs Vehicle"}}
	_, first := Apply(testCases(), c)
	_, second := Apply(testCases(), c)
	if len(first) != len(second) {
		t.Fatalf("repeated apply diverged: %v vs %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("repeated apply diverged at %d: %q vs %q", i, first[i], second[i])
		}
	}
}

func TestNormalize_DropsBlankEntries(t *testing.T) {
	t.Parallel()

	c := Criteria{
		Categories:    []string{" Dog Bite ", "", "   "},
		Jurisdictions: []string{"SF", ""},
		IncidentIDs:   []string{""},
	}.Normalize()

	if len(c.Categories) != 1 || c.Categories[0] != "Dog Bite" {
		t.Errorf("Categories = %v, want [Dog Bite]", c.Categories)
	}
	if len(c.Jurisdictions) != 1 || c.Jurisdictions[0] != "SF" {
		t.Errorf("Jurisdictions = %v, want [SF]", c.Jurisdictions)
	}
	if len(c.IncidentIDs) != 0 {
		t.Errorf("IncidentIDs = %v, want empty", c.IncidentIDs)
	}
}

func TestResolveActiveCase(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		current string
		ids     []string
		want    string
	}{
		{"kept when still matching", "B", []string{"A", "B"}, "B"},
		{"reassigned to first", "X", []string{"A", "B"}, "A"},
		{"none when no matches", "X", nil, ""},
		{"empty current picks first", "", []string{"A"}, "A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ResolveActiveCase(tt.current, tt.ids); got != tt.want {
				t.Errorf("ResolveActiveCase(%q, %v) = %q, want %q", tt.current, tt.ids, got, tt.want)
			}
		})
	}
}

func TestFirstCaseID(t *testing.T) {
	t.Parallel()

	if got := FirstCaseID(testCases()); got != "INC-001-SF" {
		t.Errorf("FirstCaseID = %q, want INC-001-SF", got)
	}
	if got := FirstCaseID(nil); got != "" {
		t.Errorf("FirstCaseID(nil) = %q, want empty", got)
	}
}
