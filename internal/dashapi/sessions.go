package dashapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/linnemanlabs/docket/internal/dashboard"
	"github.com/linnemanlabs/docket/internal/feed"
)

// looseCriteria decodes filter criteria defensively: non-string entries
// in list-valued fields are dropped per-entry instead of failing the
// whole filter operation.
type looseCriteria struct {
	Summary        string `json:"summary"`
	SearchText     string `json:"searchText"`
	Categories     []any  `json:"categories"`
	Jurisdictions  []any  `json:"jurisdictions"`
	IncidentIDs    []any  `json:"incidentIds"`
	Injury         *bool  `json:"injury"`
	PropertyDamage *bool  `json:"propertyDamage"`
}

func (lc looseCriteria) criteria() feed.Criteria {
	return feed.Criteria{
		Summary:        lc.Summary,
		SearchText:     lc.SearchText,
		Categories:     stringsOnly(lc.Categories),
		Jurisdictions:  stringsOnly(lc.Jurisdictions),
		IncidentIDs:    stringsOnly(lc.IncidentIDs),
		Injury:         lc.Injury,
		PropertyDamage: lc.PropertyDamage,
	}
}

func stringsOnly(values []any) []string {
	var out []string
	for _, v := range values {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

type filterRequest struct {
	Intent   string        `json:"intent"`
	Criteria looseCriteria `json:"criteria"`
}

type filterResponse struct {
	Success bool `json:"success"`
	*dashboard.FilterResult
}

func (a *API) handleFilter(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	var req filterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.fail(w, http.StatusBadRequest, "invalid payload")
		return
	}

	var (
		res *dashboard.FilterResult
		err error
	)
	// clear is the only other intent; anything unrecognized applies.
	if req.Intent == "clear" {
		res, err = a.store.ClearFilter(r.Context(), sessionID)
	} else {
		res, err = a.store.ApplyFilter(r.Context(), sessionID, req.Criteria.criteria())
	}
	if err != nil {
		a.sessionError(w, r, err, sessionID)
		return
	}

	a.writeJSON(w, http.StatusOK, filterResponse{Success: true, FilterResult: res})
}

type snapshotResponse struct {
	Success  bool                `json:"success"`
	Snapshot *dashboard.Snapshot `json:"snapshot"`
}

func (a *API) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	span := trace.SpanFromContext(r.Context())
	span.SetAttributes(attribute.String("docket.session.id", sessionID))

	snap, err := a.store.Get(r.Context(), sessionID)
	if err != nil {
		a.sessionError(w, r, err, sessionID)
		return
	}

	a.writeJSON(w, http.StatusOK, snapshotResponse{Success: true, Snapshot: snap})
}

type selectCaseRequest struct {
	CaseID string `json:"caseId"`
}

func (a *API) handleSelectCase(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	var req selectCaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.fail(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.CaseID == "" {
		a.fail(w, http.StatusBadRequest, "caseId is required")
		return
	}

	snap, err := a.store.SelectCase(r.Context(), sessionID, req.CaseID)
	if err != nil {
		a.sessionError(w, r, err, sessionID)
		return
	}

	a.writeJSON(w, http.StatusOK, snapshotResponse{Success: true, Snapshot: snap})
}

type acknowledgeRequest struct {
	NotificationID string `json:"notificationId"`
}

func (a *API) handleAcknowledge(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	var req acknowledgeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.fail(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.NotificationID == "" {
		a.fail(w, http.StatusBadRequest, "notificationId is required")
		return
	}

	snap, err := a.store.AcknowledgeNotification(r.Context(), sessionID, req.NotificationID)
	if err != nil {
		a.sessionError(w, r, err, sessionID)
		return
	}

	a.writeJSON(w, http.StatusOK, snapshotResponse{Success: true, Snapshot: snap})
}

// sessionError maps store errors onto the failure envelope.
func (a *API) sessionError(w http.ResponseWriter, r *http.Request, err error, sessionID string) {
	switch {
	case errors.Is(err, dashboard.ErrSessionNotFound),
		errors.Is(err, dashboard.ErrCaseNotFound),
		errors.Is(err, dashboard.ErrNotificationNotFound):
		a.fail(w, http.StatusNotFound, err.Error())
	default:
		a.logger.Error(r.Context(), err, "session operation failed", "session_id", sessionID)
		a.fail(w, http.StatusInternalServerError, "internal error")
	}
}
