package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/linnemanlabs/go-core/log"
	"github.com/oklog/ulid/v2"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/linnemanlabs/docket/internal/feed"
	"github.com/linnemanlabs/docket/internal/profile"
	"github.com/linnemanlabs/docket/internal/record"
	"github.com/linnemanlabs/docket/internal/sheets"
	"github.com/linnemanlabs/docket/internal/triage"
)

var (
	// ErrSessionNotFound reports an operation against an unknown session.
	ErrSessionNotFound = errors.New("session not found")
	// ErrCaseNotFound reports a case-select against an id absent from the set.
	ErrCaseNotFound = errors.New("case not found")
	// ErrNotificationNotFound reports an acknowledge for an unknown notification.
	ErrNotificationNotFound = errors.New("notification not found")
)

// session is one dashboard session. mu serializes read-modify-write so
// at most one mutation is in flight per session; snap is replaced
// wholesale, never edited in place.
type session struct {
	mu    sync.Mutex
	all   []record.Case // full parsed set, filter input
	limit int
	snap  *Snapshot
}

// Store holds dashboard sessions in memory.
type Store struct {
	logger       log.Logger
	metrics      *Metrics
	visibleLimit int

	mu       sync.RWMutex
	sessions map[string]*session
}

// New creates a dashboard store. visibleLimit caps the visible case
// slice per session; negative means DefaultVisibleCaseLimit, zero queues
// every case.
func New(logger log.Logger, metrics *Metrics, visibleLimit int) *Store {
	if logger == nil {
		logger = log.Nop()
	}
	if metrics == nil {
		metrics = NewMetrics(prometheus.NewRegistry())
	}
	if visibleLimit < 0 {
		visibleLimit = DefaultVisibleCaseLimit
	}
	return &Store{
		logger:       logger,
		metrics:      metrics,
		visibleLimit: visibleLimit,
		sessions:     make(map[string]*session),
	}
}

// ImportParams describes one sheet import. An empty SessionID creates a
// new session; an existing id fully replaces that session's state.
type ImportParams struct {
	SessionID    string
	Sheet        *sheets.Sheet
	Profile      profile.Profile
	VisibleLimit *int // nil = store default
}

// Import parses the sheet rows into cases, evaluates triage against the
// profile's preferences and installs a fresh snapshot for the session.
func (s *Store) Import(ctx context.Context, p ImportParams) (*Snapshot, error) {
	if p.Sheet == nil {
		s.metrics.ImportsTotal.WithLabelValues("error").Inc()
		return nil, errors.New("sheet payload is required")
	}

	cases := record.ParseRows(p.Sheet.Rows)
	notifications := triage.Evaluate(cases, p.Profile.TriagePreferences, time.Now())
	metrics := record.Summarize(cases)

	limit := s.visibleLimit
	if p.VisibleLimit != nil && *p.VisibleLimit >= 0 {
		limit = *p.VisibleLimit
	}
	visible, queued := splitVisible(cases, limit)

	title := p.Sheet.Title
	if title == "" {
		title = p.Sheet.Name
	}

	id := p.SessionID
	if id == "" {
		id = ulid.Make().String()
	}

	snap := &Snapshot{
		SessionID:     id,
		Cases:         visible,
		QueuedCases:   queued,
		TotalCases:    len(cases),
		ActiveCaseID:  feed.FirstCaseID(visible),
		Criteria:      feed.Default(),
		Notifications: notifications,
		Metrics:       metrics,
		Profile:       p.Profile,
		LastAction:    fmt.Sprintf("Imported %d cases from %s", len(cases), title),
		Sheet: SheetMeta{
			ID:              p.Sheet.ID,
			Name:            p.Sheet.Name,
			Title:           p.Sheet.Title,
			AvailableSheets: p.Sheet.AvailableTabs,
			LastSyncedAt:    time.Now(),
		},
	}

	s.mu.Lock()
	sess, ok := s.sessions[id]
	if !ok {
		sess = &session{}
		s.sessions[id] = sess
	}
	total := len(s.sessions)
	s.mu.Unlock()

	sess.mu.Lock()
	sess.all = cases
	sess.limit = limit
	sess.snap = snap
	sess.mu.Unlock()

	s.metrics.ImportsTotal.WithLabelValues("ok").Inc()
	s.metrics.ImportedCases.Observe(float64(len(cases)))
	s.metrics.NotificationsRaised.Add(float64(len(notifications)))
	s.metrics.SessionsActive.Set(float64(total))

	s.logger.Info(ctx, "sheet imported",
		"session_id", id,
		"sheet_id", p.Sheet.ID,
		"tab", p.Sheet.Name,
		"cases", len(cases),
		"notifications", len(notifications),
	)

	return snap.clone(), nil
}

// RecordImportFailure counts a failed import attempt (e.g. an
// unreachable sheet) that never produced a snapshot.
func (s *Store) RecordImportFailure() {
	s.metrics.ImportsTotal.WithLabelValues("error").Inc()
}

// ApplyFilter installs new filter criteria for the session and recomputes
// the visible set, keeping the active-case selection consistent.
func (s *Store) ApplyFilter(ctx context.Context, sessionID string, c feed.Criteria) (*FilterResult, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	c = c.Normalize()

	sess.mu.Lock()
	defer sess.mu.Unlock()

	matching, ids := feed.Apply(sess.all, c)
	visible, queued := splitVisible(matching, sess.limit)
	summary := feed.Summarize(c)

	next := sess.snap.clone()
	next.Cases = visible
	next.QueuedCases = queued
	next.Criteria = cloneCriteria(c)
	next.FilterSummary = summary
	next.ActiveCaseID = feed.ResolveActiveCase(sess.snap.ActiveCaseID, ids)
	next.LastAction = "Applied feed filter"
	if summary != "" {
		next.LastAction = "Applied feed filter: " + summary
	}
	sess.snap = next

	s.metrics.FilterOpsTotal.WithLabelValues("apply").Inc()
	s.logger.Info(ctx, "filter applied",
		"session_id", sessionID,
		"matches", len(matching),
		"summary", summary,
	)

	return &FilterResult{
		MatchingIDs: ids,
		MatchCount:  len(matching),
		Criteria:    cloneCriteria(c),
		Summary:     summary,
		Message:     fmt.Sprintf("Showing %d of %d cases", len(matching), len(sess.all)),
	}, nil
}

// ClearFilter resets the session to the default criteria. The active
// case resets to the first case of the full collection.
func (s *Store) ClearFilter(ctx context.Context, sessionID string) (*FilterResult, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	_, ids := feed.Apply(sess.all, feed.Default())
	visible, queued := splitVisible(sess.all, sess.limit)

	next := sess.snap.clone()
	next.Cases = visible
	next.QueuedCases = queued
	next.Criteria = feed.Default()
	next.FilterSummary = ""
	next.ActiveCaseID = feed.FirstCaseID(sess.all)
	next.LastAction = "Cleared feed filter"
	sess.snap = next

	s.metrics.FilterOpsTotal.WithLabelValues("clear").Inc()
	s.logger.Info(ctx, "filter cleared", "session_id", sessionID)

	return &FilterResult{
		MatchingIDs: ids,
		MatchCount:  len(sess.all),
		Criteria:    feed.Default(),
		Summary:     "",
		Message:     fmt.Sprintf("Showing all %d cases", len(sess.all)),
	}, nil
}

// SelectCase marks the given case as active. The id must belong to the
// session's case set, queued cases included.
func (s *Store) SelectCase(ctx context.Context, sessionID, caseID string) (*Snapshot, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	found := false
	for _, c := range sess.all {
		if c.IncidentID == caseID {
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("case %s: %w", caseID, ErrCaseNotFound)
	}

	next := sess.snap.clone()
	next.ActiveCaseID = caseID
	next.LastAction = "Selected case " + caseID
	sess.snap = next

	return next.clone(), nil
}

// AcknowledgeNotification marks one notification as acknowledged.
func (s *Store) AcknowledgeNotification(ctx context.Context, sessionID, notificationID string) (*Snapshot, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	next := sess.snap.clone()
	found := false
	for i := range next.Notifications {
		if next.Notifications[i].ID == notificationID {
			next.Notifications[i].Acknowledged = true
			found = true
			break
		}
	}
	if !found {
		return nil, fmt.Errorf("notification %s: %w", notificationID, ErrNotificationNotFound)
	}
	next.LastAction = "Acknowledged notification " + notificationID
	sess.snap = next

	return next.clone(), nil
}

// Get returns a copy of the session's current snapshot.
func (s *Store) Get(ctx context.Context, sessionID string) (*Snapshot, error) {
	sess, err := s.session(sessionID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.snap.clone(), nil
}

func (s *Store) session(id string) (*session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, ErrSessionNotFound)
	}
	return sess, nil
}

// splitVisible splits the matching set at the visible limit, copying so
// snapshot slices never alias the session's full set.
func splitVisible(cases []record.Case, limit int) (visible, queued []record.Case) {
	if limit > len(cases) {
		limit = len(cases)
	}
	visible = append([]record.Case(nil), cases[:limit]...)
	queued = append([]record.Case(nil), cases[limit:]...)
	return visible, queued
}
