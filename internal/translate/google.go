package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultGoogleBaseURL = "https://translation.googleapis.com/v3"

// GoogleBackend implements Backend against the Cloud Translation REST API
// under projects/{project}/locations/global.
type GoogleBackend struct {
	baseURL    string
	projectID  string
	apiKey     string
	logger     *slog.Logger
	httpClient *http.Client
}

func NewGoogleBackend(log *slog.Logger, projectID, apiKey string, timeout time.Duration) *GoogleBackend {
	if log == nil {
		log = slog.Default()
	}
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &GoogleBackend{
		baseURL:    defaultGoogleBaseURL,
		projectID:  projectID,
		apiKey:     apiKey,
		logger:     log.With(slog.String("service", "translate_google")),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// SetBaseURL overrides the API base URL. Used by tests.
func (b *GoogleBackend) SetBaseURL(baseURL string) {
	b.baseURL = strings.TrimRight(baseURL, "/")
}

type detectRequest struct {
	Content string `json:"content"`
}

type detectResponse struct {
	Languages []struct {
		LanguageCode string `json:"languageCode"`
	} `json:"languages"`
}

type translateRequest struct {
	Contents           []string `json:"contents"`
	MimeType           string   `json:"mimeType"`
	TargetLanguageCode string   `json:"targetLanguageCode"`
}

type translateResponse struct {
	Translations []struct {
		TranslatedText string `json:"translatedText"`
	} `json:"translations"`
}

func (b *GoogleBackend) DetectLanguage(ctx context.Context, text string) (string, error) {
	var parsed detectResponse
	if err := b.post(ctx, "detectLanguage", detectRequest{Content: text}, &parsed); err != nil {
		return "", err
	}
	if len(parsed.Languages) == 0 {
		return "", nil
	}
	return parsed.Languages[0].LanguageCode, nil
}

func (b *GoogleBackend) Translate(ctx context.Context, text, targetLanguage string) (string, error) {
	var parsed translateResponse
	req := translateRequest{
		Contents:           []string{text},
		MimeType:           "text/plain",
		TargetLanguageCode: targetLanguage,
	}
	if err := b.post(ctx, "translateText", req, &parsed); err != nil {
		return "", err
	}
	if len(parsed.Translations) == 0 {
		return "", fmt.Errorf("translate returned no translations")
	}
	return parsed.Translations[0].TranslatedText, nil
}

func (b *GoogleBackend) post(ctx context.Context, method string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	callURL := fmt.Sprintf("%s/projects/%s/locations/global:%s", b.baseURL, url.PathEscape(b.projectID), method)
	if b.apiKey != "" {
		callURL += "?key=" + url.QueryEscape(b.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, callURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("translate backend status %d", resp.StatusCode)
	}
	return json.Unmarshal(respBody, out)
}
