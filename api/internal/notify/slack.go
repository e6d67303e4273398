package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrMissingWebhook is returned when no webhook URL is configured.
var ErrMissingWebhook = errors.New("SLACK_WEBHOOK_URL 환경변수가 설정되지 않았습니다")

// Channel delivers one rendered message.
type Channel interface {
	Name() string
	Send(ctx context.Context, m Message) error
}

// Slack posts messages to an incoming webhook.
type Slack struct {
	URL   string
	httpc *http.Client
}

func NewSlack(url string, httpc *http.Client) *Slack {
	if httpc == nil {
		httpc = &http.Client{Timeout: 15 * time.Second}
	}
	return &Slack{URL: url, httpc: httpc}
}

func (s *Slack) Name() string { return "slack" }

func (s *Slack) Send(ctx context.Context, m Message) error {
	if s.URL == "" {
		return ErrMissingWebhook
	}
	body, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("slack: marshal: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("slack: request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("slack: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("Slack 전송 실패: %s", resp.Status)
	}
	return nil
}
