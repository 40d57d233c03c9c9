package triage

import "time"

// Notification is one triage alert for a matched case. Notifications are
// ephemeral: each evaluation pass regenerates the full list rather than
// diffing against prior notifications.
type Notification struct {
	ID           string    `json:"id"`
	IncidentID   string    `json:"incidentId"`
	CreatedAt    time.Time `json:"createdAt"`
	Message      string    `json:"message"`
	Acknowledged bool      `json:"acknowledged"`
}
