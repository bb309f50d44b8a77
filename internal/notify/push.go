package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTPPusher delivers notifications through an FCM-style HTTP send
// endpoint.
type HTTPPusher struct {
	endpoint   string
	serverKey  string
	httpClient *http.Client
}

func NewHTTPPusher(endpoint, serverKey string, timeout time.Duration) *HTTPPusher {
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &HTTPPusher{
		endpoint:   strings.TrimRight(endpoint, "/"),
		serverKey:  serverKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type pushMessage struct {
	To           string            `json:"to"`
	Notification pushNotification  `json:"notification"`
	Data         map[string]string `json:"data,omitempty"`
}

type pushNotification struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

func (p *HTTPPusher) Send(ctx context.Context, token string, n Notification) error {
	body, err := json.Marshal(pushMessage{
		To:           token,
		Notification: pushNotification{Title: n.Title, Body: n.Body},
		Data:         n.Data,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if p.serverKey != "" {
		req.Header.Set("Authorization", "key="+p.serverKey)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("push endpoint status %d", resp.StatusCode)
	}
	return nil
}
