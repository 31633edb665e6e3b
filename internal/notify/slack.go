package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pipewatch/pipewatch/internal/types"
)

var errSlackStatus = errors.New("non-ok slack webhook status")

// SlackSink posts dispatches to an incoming webhook. The dispatch address
// overrides the webhook's default channel.
type SlackSink struct {
	webhookURL string
	httpClient *http.Client
}

var _ Sink = (*SlackSink)(nil)

func NewSlackSink(webhookURL string) *SlackSink {
	return &SlackSink{
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type slackMessage struct {
	Channel string `json:"channel,omitempty"`
	Text    string `json:"text"`
}

func (s *SlackSink) Deliver(ctx context.Context, dispatch types.NotificationDispatch) error {
	body, err := json.Marshal(slackMessage{
		Channel: dispatch.Address,
		Text:    fmt.Sprintf("*%v*\n%v", dispatch.Title, dispatch.Message),
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if errorBody, err := io.ReadAll(resp.Body); err == nil {
			if errorBodyStr := strings.TrimSpace(string(errorBody)); errorBodyStr != "" {
				return fmt.Errorf("%w: %v (%v)", errSlackStatus, resp.Status, errorBodyStr)
			}
		}
		return fmt.Errorf("%w: %v", errSlackStatus, resp.Status)
	}
	return nil
}
