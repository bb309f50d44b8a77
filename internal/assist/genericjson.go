package assist

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// GenericJSONClient speaks a minimal custom protocol: bearer auth, a bare
// {prompt} body, and a reply in the first present of reply/text/result.
// There is no model field.
type GenericJSONClient struct {
	endpoint   string
	apiKey     string
	logger     *slog.Logger
	httpClient *http.Client
}

func NewGenericJSONClient(log *slog.Logger, endpoint, apiKey string, timeout time.Duration) *GenericJSONClient {
	return &GenericJSONClient{
		endpoint:   endpoint,
		apiKey:     apiKey,
		logger:     adapterLogger(log, "generic-json"),
		httpClient: newHTTPClient(timeout),
	}
}

type genericJSONRequest struct {
	Prompt string `json:"prompt"`
}

type genericJSONResponse struct {
	Reply  string `json:"reply"`
	Text   string `json:"text"`
	Result string `json:"result"`
}

func (c *GenericJSONClient) Reply(ctx context.Context, prompt string) (string, bool) {
	body, err := json.Marshal(genericJSONRequest{Prompt: prompt})
	if err != nil {
		c.logger.Error("marshal request failed", slog.Any("error", err))
		return "", false
	}

	respBody, err := postJSON(ctx, c.httpClient, c.endpoint, map[string]string{
		"Authorization": "Bearer " + c.apiKey,
	}, body)
	if err != nil {
		c.logger.Error("generic json call failed", slog.Any("error", err))
		return "", false
	}

	var parsed genericJSONResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		c.logger.Error("parse response failed", slog.Any("error", err))
		return "", false
	}
	for _, candidate := range []string{parsed.Reply, parsed.Text, parsed.Result} {
		if candidate != "" {
			return candidate, true
		}
	}
	c.logger.Warn("response contained no reply field")
	return "", false
}
