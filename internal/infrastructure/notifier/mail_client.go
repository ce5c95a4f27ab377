package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// MailAPI delivers messages through an HTTP email provider (a single JSON
// POST accepting sender, recipient list, subject and HTML body).
type MailAPI struct {
	endpoint string
	apiKey   string
	sender   string
	http     *http.Client
}

func NewMailAPI(endpoint, apiKey, sender string) *MailAPI {
	return &MailAPI{
		endpoint: endpoint,
		apiKey:   apiKey,
		sender:   sender,
		http:     &http.Client{Timeout: 15 * time.Second},
	}
}

type mailPayload struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// Send posts a single message. The provider's response body is consumed only
// for the status code.
func (m *MailAPI) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(mailPayload{
		From:    m.sender,
		To:      []string{msg.To},
		Subject: msg.Subject,
		HTML:    msg.HTML,
	})
	if err != nil {
		return fmt.Errorf("mail: encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("mail: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.http.Do(req)
	if err != nil {
		return fmt.Errorf("mail: send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("mail: send: unexpected status %d", resp.StatusCode)
	}
	return nil
}
