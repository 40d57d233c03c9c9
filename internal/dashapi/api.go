// Package dashapi exposes the dashboard over HTTP: sheet import, feed
// filtering, case selection and profile preferences.
package dashapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/linnemanlabs/go-core/log"
	"github.com/linnemanlabs/go-core/xerrors"

	"github.com/linnemanlabs/docket/internal/dashboard"
	"github.com/linnemanlabs/docket/internal/profile"
	"github.com/linnemanlabs/docket/internal/sheets"
	"github.com/linnemanlabs/docket/internal/triage"
)

// Notifier sends out-of-band digests of raised triage notifications.
type Notifier interface {
	Send(ctx context.Context, sheetTitle string, notifications []triage.Notification) error
}

// API holds dependencies for HTTP handlers.
type API struct {
	logger   log.Logger
	store    *dashboard.Store
	profiles profile.Store
	fetcher  sheets.Fetcher
	notifier Notifier // optional
}

// New creates a new API handler. notifier may be nil.
func New(logger log.Logger, store *dashboard.Store, profiles profile.Store, fetcher sheets.Fetcher, notifier Notifier) *API {
	if logger == nil {
		logger = log.Nop()
	}
	if store == nil {
		panic(xerrors.New("dashboard store is required"))
	}
	if profiles == nil {
		panic(xerrors.New("profile store is required"))
	}
	if fetcher == nil {
		panic(xerrors.New("sheet fetcher is required"))
	}
	return &API{
		logger:   logger,
		store:    store,
		profiles: profiles,
		fetcher:  fetcher,
		notifier: notifier,
	}
}

// RegisterRoutes attaches API endpoints to the router.
func (a *API) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/sheets/sync", a.handleSheetSync)
		r.Post("/sheets/tabs", a.handleSheetTabs)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", a.handleGetSession)
			r.Post("/filter", a.handleFilter)
			r.Post("/case", a.handleSelectCase)
			r.Post("/notifications/ack", a.handleAcknowledge)
		})
		r.Get("/profile", a.handleGetProfile)
		r.Post("/profile/triage", a.handleUpdateTriage)
	})
}

func (a *API) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// fail writes the structured failure envelope. extra keys are merged in
// alongside success and error.
func (a *API) fail(w http.ResponseWriter, status int, msg string, extra ...map[string]any) {
	body := map[string]any{
		"success": false,
		"error":   msg,
	}
	for _, m := range extra {
		for k, v := range m {
			body[k] = v
		}
	}
	a.writeJSON(w, status, body)
}
