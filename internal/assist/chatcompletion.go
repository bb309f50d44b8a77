package assist

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

const defaultChatCompletionModel = "gpt-3.5-turbo"

// ChatCompletionClient speaks the OpenAI-style chat completions protocol
// (also used by DeepSeek and most compatible backends).
type ChatCompletionClient struct {
	endpoint   string
	apiKey     string
	model      string
	logger     *slog.Logger
	httpClient *http.Client
}

func NewChatCompletionClient(log *slog.Logger, endpoint, apiKey, model string, timeout time.Duration) *ChatCompletionClient {
	if model == "" {
		model = defaultChatCompletionModel
	}
	return &ChatCompletionClient{
		endpoint:   endpoint,
		apiKey:     apiKey,
		model:      model,
		logger:     adapterLogger(log, "chat-completion"),
		httpClient: newHTTPClient(timeout),
	}
}

type chatCompletionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *ChatCompletionClient) Reply(ctx context.Context, prompt string) (string, bool) {
	body, err := json.Marshal(chatCompletionRequest{
		Model:       c.model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: replyTemperature,
		MaxTokens:   replyMaxTokens,
	})
	if err != nil {
		c.logger.Error("marshal request failed", slog.Any("error", err))
		return "", false
	}

	respBody, err := postJSON(ctx, c.httpClient, c.endpoint, map[string]string{
		"Authorization": "Bearer " + c.apiKey,
	}, body)
	if err != nil {
		c.logger.Error("chat completion call failed", slog.Any("error", err))
		return "", false
	}

	var parsed chatCompletionResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		c.logger.Error("parse response failed", slog.Any("error", err))
		return "", false
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		c.logger.Warn("response contained no choices")
		return "", false
	}
	return parsed.Choices[0].Message.Content, true
}
