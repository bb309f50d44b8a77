package assist

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	defaultTimeout     = 8 * time.Second
	replyTemperature   = 0.7
	replyMaxTokens     = 150
	logBodyPrefixChars = 300
)

// Client turns a prompt into a reply through one configured AI backend.
// A false result means no reply was produced; adapters log the cause and
// never surface it as an error, so assistant unavailability cannot block
// message delivery.
type Client interface {
	Reply(ctx context.Context, prompt string) (string, bool)
}

// postJSON performs one blocking request and returns the response body.
// Non-2xx statuses are errors. No retry.
func postJSON(ctx context.Context, httpClient *http.Client, url string, headers map[string]string, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("backend status %d: %s", resp.StatusCode, truncate(strings.TrimSpace(string(respBody)), logBodyPrefixChars))
	}
	return respBody, nil
}

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

func adapterLogger(log *slog.Logger, adapter string) *slog.Logger {
	if log == nil {
		log = slog.Default()
	}
	return log.With(slog.String("adapter", adapter))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
