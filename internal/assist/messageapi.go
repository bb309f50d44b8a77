package assist

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

const (
	defaultMessageAPIModel = "claude-3-sonnet-20240229"
	anthropicVersion       = "2023-06-01"
)

// MessageAPIClient speaks the Anthropic messages protocol: custom api-key
// header plus a version header, reply in the first content block.
type MessageAPIClient struct {
	endpoint   string
	apiKey     string
	model      string
	logger     *slog.Logger
	httpClient *http.Client
}

func NewMessageAPIClient(log *slog.Logger, endpoint, apiKey, model string, timeout time.Duration) *MessageAPIClient {
	if model == "" {
		model = defaultMessageAPIModel
	}
	return &MessageAPIClient{
		endpoint:   endpoint,
		apiKey:     apiKey,
		model:      model,
		logger:     adapterLogger(log, "message-api"),
		httpClient: newHTTPClient(timeout),
	}
}

type messageAPIRequest struct {
	Model     string        `json:"model"`
	MaxTokens int           `json:"max_tokens"`
	Messages  []chatMessage `json:"messages"`
}

type messageAPIResponse struct {
	Content []struct {
		Text string `json:"text"`
	} `json:"content"`
}

func (c *MessageAPIClient) Reply(ctx context.Context, prompt string) (string, bool) {
	body, err := json.Marshal(messageAPIRequest{
		Model:     c.model,
		MaxTokens: replyMaxTokens,
		Messages:  []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		c.logger.Error("marshal request failed", slog.Any("error", err))
		return "", false
	}

	respBody, err := postJSON(ctx, c.httpClient, c.endpoint, map[string]string{
		"x-api-key":         c.apiKey,
		"anthropic-version": anthropicVersion,
	}, body)
	if err != nil {
		c.logger.Error("message api call failed", slog.Any("error", err))
		return "", false
	}

	var parsed messageAPIResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		c.logger.Error("parse response failed", slog.Any("error", err))
		return "", false
	}
	if len(parsed.Content) == 0 || parsed.Content[0].Text == "" {
		c.logger.Warn("response contained no content blocks")
		return "", false
	}
	return parsed.Content[0].Text, true
}
