package profile

import "context"

// Store is the persistence interface for lawyer profiles. Unknown ids
// resolve to a default profile rather than an error: profiles exist
// implicitly and are materialized on first update.
type Store interface {
	// Get returns the profile for id, or a default profile when none is
	// stored yet.
	Get(ctx context.Context, id string) (*Profile, error)

	// UpdateTriagePreferences replaces the triage preferences on the
	// profile, bumps UpdatedAt, and returns the new profile value.
	UpdateTriagePreferences(ctx context.Context, id string, prefs TriagePreferences) (*Profile, error)

	// Reset discards any stored state for id and returns the default
	// profile.
	Reset(ctx context.Context, id string) (*Profile, error)
}
