package providers

import "time"

// ClientType selects which assist adapter handles calls for a provider.
type ClientType string

const (
	ClientTypeChatCompletion    ClientType = "chat-completion"
	ClientTypeMessageAPI        ClientType = "message-api"
	ClientTypeGenerativeContent ClientType = "generative-content"
	ClientTypeGenericJSON       ClientType = "generic-json"
)

// Provider is a stored AI backend configuration. APIKey is the raw
// credential; it never leaves the process unmasked.
type Provider struct {
	ID         string
	ClientType ClientType
	Name       string
	Endpoint   string
	APIKey     string
	Model      string
	Enabled    bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PipelineConfig is the singleton pipeline configuration row. The default
// provider is stored for future use; selection currently uses the first
// enabled provider.
type PipelineConfig struct {
	DefaultProvider string    `json:"default_provider,omitempty"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CreateRequest represents a request to create a new provider.
type CreateRequest struct {
	ClientType ClientType `json:"client_type" validate:"required"`
	Name       string     `json:"name" validate:"required"`
	Endpoint   string     `json:"endpoint" validate:"required,url"`
	APIKey     string     `json:"api_key" validate:"required"`
	Model      string     `json:"model"`
	Enabled    *bool      `json:"enabled,omitempty"`
}

// UpdateRequest represents a partial update to an existing provider.
type UpdateRequest struct {
	ClientType *ClientType `json:"client_type,omitempty"`
	Name       *string     `json:"name,omitempty"`
	Endpoint   *string     `json:"endpoint,omitempty"`
	APIKey     *string     `json:"api_key,omitempty"`
	Model      *string     `json:"model,omitempty"`
	Enabled    *bool       `json:"enabled,omitempty"`
}

// GetResponse is the admin-facing view of a provider. APIKey is masked.
type GetResponse struct {
	ID         string     `json:"id"`
	ClientType ClientType `json:"client_type"`
	Name       string     `json:"name"`
	Endpoint   string     `json:"endpoint"`
	APIKey     string     `json:"api_key,omitempty"`
	Model      string     `json:"model,omitempty"`
	Enabled    bool       `json:"enabled"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// CountResponse is the count endpoint payload.
type CountResponse struct {
	Count int64 `json:"count"`
}
