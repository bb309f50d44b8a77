package assist

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultGenerativeModel = "gemini-pro"

// GenerativeContentClient speaks the Gemini generateContent protocol. The
// endpoint may carry a {model} placeholder; the credential travels as a
// query parameter rather than a header.
type GenerativeContentClient struct {
	endpoint   string
	apiKey     string
	model      string
	logger     *slog.Logger
	httpClient *http.Client
}

func NewGenerativeContentClient(log *slog.Logger, endpoint, apiKey, model string, timeout time.Duration) *GenerativeContentClient {
	if model == "" {
		model = defaultGenerativeModel
	}
	return &GenerativeContentClient{
		endpoint:   endpoint,
		apiKey:     apiKey,
		model:      model,
		logger:     adapterLogger(log, "generative-content"),
		httpClient: newHTTPClient(timeout),
	}
}

type generativeRequest struct {
	Contents         []generativeContent `json:"contents"`
	GenerationConfig generationConfig    `json:"generationConfig"`
}

type generativeContent struct {
	Parts []generativePart `json:"parts"`
}

type generativePart struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generativeResponse struct {
	Candidates []struct {
		Content struct {
			Parts []generativePart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (c *GenerativeContentClient) Reply(ctx context.Context, prompt string) (string, bool) {
	body, err := json.Marshal(generativeRequest{
		Contents: []generativeContent{{Parts: []generativePart{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     replyTemperature,
			MaxOutputTokens: replyMaxTokens,
		},
	})
	if err != nil {
		c.logger.Error("marshal request failed", slog.Any("error", err))
		return "", false
	}

	callURL := strings.ReplaceAll(c.endpoint, "{model}", c.model) + "?key=" + url.QueryEscape(c.apiKey)
	respBody, err := postJSON(ctx, c.httpClient, callURL, nil, body)
	if err != nil {
		c.logger.Error("generate content call failed", slog.Any("error", err))
		return "", false
	}

	var parsed generativeResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		c.logger.Error("parse response failed", slog.Any("error", err))
		return "", false
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 || parsed.Candidates[0].Content.Parts[0].Text == "" {
		c.logger.Warn("response contained no candidates")
		return "", false
	}
	return parsed.Candidates[0].Content.Parts[0].Text, true
}
