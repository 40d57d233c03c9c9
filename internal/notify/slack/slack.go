// Package slack posts triage notification digests to Slack via incoming
// webhooks.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/linnemanlabs/docket/internal/triage"
)

const (
	maxListed   = 10
	httpTimeout = 10 * time.Second
)

// Notifier sends triage digests to a Slack webhook.
type Notifier struct {
	webhookURL string
	client     *http.Client
}

// New creates a new Slack notifier. If webhookURL is empty, Send is a no-op.
func New(webhookURL string) *Notifier {
	return &Notifier{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: httpTimeout},
	}
}

// Send posts a digest of the notifications raised by one import to the
// configured Slack webhook. Nothing is sent for an empty notification
// list or an unconfigured webhook.
func (n *Notifier) Send(ctx context.Context, sheetTitle string, notifications []triage.Notification) error {
	if n.webhookURL == "" || len(notifications) == 0 {
		return nil
	}

	msg := buildMessage(sheetTitle, notifications)

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("slack: marshal message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("slack: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("slack: post webhook: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("slack: webhook returned %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

func buildMessage(sheetTitle string, notifications []triage.Notification) map[string]any {
	return map[string]any{
		"blocks": []map[string]any{
			headerBlock(len(notifications)),
			{"type": "divider"},
			listBlock(notifications),
			{"type": "divider"},
			contextBlock(sheetTitle, notifications[0].CreatedAt),
		},
	}
}

func headerBlock(count int) map[string]any {
	noun := "cases"
	if count == 1 {
		noun = "case"
	}
	return map[string]any{
		"type": "header",
		"text": map[string]any{
			"type": "plain_text",
			"text": fmt.Sprintf("⚖️ Triage: %d %s flagged", count, noun),
		},
	}
}

func listBlock(notifications []triage.Notification) map[string]any {
	var b bytes.Buffer
	for i, n := range notifications {
		if i == maxListed {
			fmt.Fprintf(&b, "_...and %d more_", len(notifications)-maxListed)
			break
		}
		fmt.Fprintf(&b, "• *%s* — %s\n", n.IncidentID, n.Message)
	}

	return map[string]any{
		"type": "section",
		"text": map[string]any{
			"type": "mrkdwn",
			"text": b.String(),
		},
	}
}

func contextBlock(sheetTitle string, ts time.Time) map[string]any {
	if sheetTitle == "" {
		sheetTitle = "untitled sheet"
	}
	elements := []map[string]any{
		{
			"type": "mrkdwn",
			"text": fmt.Sprintf("docket • %s • %s", sheetTitle, ts.UTC().Format("2006-01-02 15:04 UTC")),
		},
	}

	return map[string]any{
		"type":     "context",
		"elements": elements,
	}
}
