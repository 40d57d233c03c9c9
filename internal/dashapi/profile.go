package dashapi

import (
	"encoding/json"
	"net/http"

	"github.com/linnemanlabs/docket/internal/profile"
)

type profileResponse struct {
	Success bool             `json:"success"`
	Message string           `json:"message,omitempty"`
	Profile *profile.Profile `json:"profile"`
}

func (a *API) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	id := orDefault(r.URL.Query().Get("id"))

	prof, err := a.profiles.Get(r.Context(), id)
	if err != nil {
		a.logger.Error(r.Context(), err, "profile lookup failed", "profile_id", id)
		a.fail(w, http.StatusInternalServerError, "internal error")
		return
	}

	a.writeJSON(w, http.StatusOK, profileResponse{Success: true, Profile: prof})
}

// prefsPatch carries a partial preference update. Only keys present in
// the payload are applied; absent keys keep their current value.
// Non-string list entries are dropped per-entry.
type prefsPatch struct {
	CategoriesOfInterest  []any `json:"categoriesOfInterest"`
	RequireInjury         *bool `json:"requireInjury"`
	IncludePropertyDamage *bool `json:"includePropertyDamage"`
	CitiesOfInterest      []any `json:"citiesOfInterest"`
}

// apply merges the patch over prefs and returns the result.
func (p prefsPatch) apply(prefs profile.TriagePreferences) profile.TriagePreferences {
	if p.CategoriesOfInterest != nil {
		prefs.CategoriesOfInterest = stringsOnly(p.CategoriesOfInterest)
	}
	if p.CitiesOfInterest != nil {
		prefs.CitiesOfInterest = stringsOnly(p.CitiesOfInterest)
	}
	if p.RequireInjury != nil {
		prefs.RequireInjury = *p.RequireInjury
	}
	if p.IncludePropertyDamage != nil {
		prefs.IncludePropertyDamage = *p.IncludePropertyDamage
	}
	return prefs
}

type triageUpdateRequest struct {
	ProfileID string `json:"profileId"`
	prefsPatch
}

func (a *API) handleUpdateTriage(w http.ResponseWriter, r *http.Request) {
	var req triageUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.fail(w, http.StatusBadRequest, "invalid payload")
		return
	}

	id := orDefault(req.ProfileID)
	prof, err := a.profiles.Get(r.Context(), id)
	if err != nil {
		a.logger.Error(r.Context(), err, "profile lookup failed", "profile_id", id)
		a.fail(w, http.StatusInternalServerError, "internal error")
		return
	}

	updated, err := a.profiles.UpdateTriagePreferences(r.Context(), id, req.apply(prof.TriagePreferences))
	if err != nil {
		a.logger.Error(r.Context(), err, "preference update failed", "profile_id", id)
		a.fail(w, http.StatusInternalServerError, "internal error")
		return
	}

	a.logger.Info(r.Context(), "triage preferences updated", "profile_id", id)

	a.writeJSON(w, http.StatusOK, profileResponse{
		Success: true,
		Message: "Updated triage preferences",
		Profile: updated,
	})
}
