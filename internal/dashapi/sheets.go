package dashapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/linnemanlabs/docket/internal/dashboard"
	"github.com/linnemanlabs/docket/internal/profile"
	"github.com/linnemanlabs/docket/internal/sheets"
)

type syncRequest struct {
	SheetID           string      `json:"sheetId"`
	SheetName         string      `json:"sheetName"`
	SessionID         string      `json:"sessionId"`
	ProfileID         string      `json:"profileId"`
	VisibleCaseLimit  *int        `json:"visibleCaseLimit"`
	TriagePreferences *prefsPatch `json:"triagePreferences"`
}

type syncResponse struct {
	Success  bool                `json:"success"`
	Message  string              `json:"message"`
	Snapshot *dashboard.Snapshot `json:"snapshot"`
}

func (a *API) handleSheetSync(w http.ResponseWriter, r *http.Request) {
	var req syncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.fail(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.SheetID == "" {
		a.fail(w, http.StatusBadRequest, "sheetId is required")
		return
	}

	sheet, err := a.fetcher.Fetch(r.Context(), req.SheetID, req.SheetName)
	if err != nil {
		a.store.RecordImportFailure()

		var tnf *sheets.TabNotFoundError
		if errors.As(err, &tnf) {
			a.fail(w, http.StatusNotFound, err.Error(), map[string]any{
				"availableSheets": tnf.Available,
			})
			return
		}
		a.logger.Error(r.Context(), err, "sheet fetch failed", "sheet_id", req.SheetID)
		a.fail(w, http.StatusBadGateway, "failed to fetch sheet")
		return
	}

	prof, err := a.profiles.Get(r.Context(), orDefault(req.ProfileID))
	if err != nil {
		a.logger.Error(r.Context(), err, "profile lookup failed", "profile_id", req.ProfileID)
		a.fail(w, http.StatusInternalServerError, "internal error")
		return
	}

	// An inline preference override shapes this import only; the stored
	// profile is left untouched.
	imported := *prof
	if req.TriagePreferences != nil {
		imported.TriagePreferences = req.TriagePreferences.apply(prof.TriagePreferences)
	}

	snap, err := a.store.Import(r.Context(), dashboard.ImportParams{
		SessionID:    req.SessionID,
		Sheet:        sheet,
		Profile:      imported,
		VisibleLimit: req.VisibleCaseLimit,
	})
	if err != nil {
		a.logger.Error(r.Context(), err, "import failed", "sheet_id", req.SheetID)
		a.fail(w, http.StatusInternalServerError, "internal error")
		return
	}

	if a.notifier != nil && len(snap.Notifications) > 0 {
		// dispatch out of band; the import response never waits on Slack.
		go func(ctx context.Context) {
			if err := a.notifier.Send(ctx, sheet.Title, snap.Notifications); err != nil {
				a.logger.Error(ctx, err, "notification digest failed", "session_id", snap.SessionID)
			}
		}(context.WithoutCancel(r.Context()))
	}

	a.writeJSON(w, http.StatusOK, syncResponse{
		Success:  true,
		Message:  snap.LastAction,
		Snapshot: snap,
	})
}

type tabsRequest struct {
	SheetID string `json:"sheetId"`
}

func (a *API) handleSheetTabs(w http.ResponseWriter, r *http.Request) {
	var req tabsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.fail(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.SheetID == "" {
		a.fail(w, http.StatusBadRequest, "sheetId is required")
		return
	}

	tabs, err := a.fetcher.ListTabs(r.Context(), req.SheetID)
	if err != nil {
		a.logger.Error(r.Context(), err, "tab listing failed", "sheet_id", req.SheetID)
		a.fail(w, http.StatusBadGateway, "failed to list sheet tabs")
		return
	}

	a.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"sheets":  tabs,
	})
}

func orDefault(profileID string) string {
	if profileID == "" {
		return profile.DefaultProfileID
	}
	return profileID
}
