package feed

import "testing"

func TestSummarize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		c    Criteria
		want string
	}{
		{
			"default criteria is empty",
			Default(),
			"",
		},
		{
			"explicit summary wins verbatim",
			Criteria{Summary: "Downtown bicycle cases", Categories: []string{"Dog Bite"}},
			"Downtown bicycle cases",
		},
		{
			"categories and injury",
			Criteria{Categories: []string{"Bicycle Vs Vehicle"}, Injury: boolPtr(true)},
			"Categories: Bicycle Vs Vehicle • Requires injury",
		},
		{
			"all fields in fixed order",
			Criteria{
				Categories:     []string{"Dog Bite", "Rear End"},
				Jurisdictions:  []string{"SF"},
				Injury:         boolPtr(false),
				PropertyDamage: boolPtr(true),
				IncidentIDs:    []string{"A-1", "B-2"},
				SearchText:     "broadway",
			},
			"Categories: Dog Bite, Rear End • Jurisdictions: SF • Exclude injury cases • Requires property damage • Incident IDs: A-1, B-2 • Text contains \"broadway\"",
		},
		{
			"property damage excluded",
			Criteria{PropertyDamage: boolPtr(false)},
			"Exclude property damage cases",
		},
		{
			"search text trimmed",
			Criteria{SearchText: "  crash  "},
			"Text contains \"crash\"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := Summarize(tt.c); got != tt.want {
				t.Errorf("Summarize = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSummarize_ClearIdempotent(t *testing.T) {
	t.Parallel()

	// clearing twice yields the same default criteria, and the default
	// synthesizes to the empty string both times
	first := Default()
	second := Default()
	if Summarize(first) != "" || Summarize(second) != "" {
		t.Error("default criteria must synthesize to empty string")
	}
	if first.IsActive() || second.IsActive() {
		t.Error("default criteria must be inactive")
	}
}
