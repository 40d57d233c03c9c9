// Package memstore provides an in-memory implementation of profile.Store.
package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/linnemanlabs/docket/internal/profile"
)

// Store holds profiles in memory. Suitable for dev/testing and for
// single-node deployments without a database.
type Store struct {
	mu       sync.RWMutex
	profiles map[string]*profile.Profile // profile ID -> profile
}

// New initializes a new in-memory Store.
func New() *Store {
	return &Store{profiles: make(map[string]*profile.Profile)}
}

// Get returns a copy of the stored profile, or a default profile when
// none exists for id.
func (s *Store) Get(_ context.Context, id string) (*profile.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[id]
	if !ok {
		return profile.DefaultProfile(id), nil
	}
	cp := clone(p)
	return &cp, nil
}

// UpdateTriagePreferences replaces the preferences on the profile,
// materializing it from the default if unseen, and returns a copy of the
// new value.
func (s *Store) UpdateTriagePreferences(_ context.Context, id string, prefs profile.TriagePreferences) (*profile.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[id]
	if !ok {
		p = profile.DefaultProfile(id)
		s.profiles[p.ID] = p
	}
	p.TriagePreferences = clonePrefs(prefs)
	p.UpdatedAt = time.Now().UTC()
	cp := clone(p)
	return &cp, nil
}

// Reset discards stored state for id and returns the default profile.
func (s *Store) Reset(_ context.Context, id string) (*profile.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.profiles, id)
	return profile.DefaultProfile(id), nil
}

// clone copies a profile deeply enough that callers cannot mutate stored
// state through the returned value.
func clone(p *profile.Profile) profile.Profile {
	cp := *p
	cp.TriagePreferences = clonePrefs(p.TriagePreferences)
	return cp
}

func clonePrefs(prefs profile.TriagePreferences) profile.TriagePreferences {
	prefs.CategoriesOfInterest = append([]string(nil), prefs.CategoriesOfInterest...)
	prefs.CitiesOfInterest = append([]string(nil), prefs.CitiesOfInterest...)
	return prefs
}
