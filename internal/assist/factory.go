package assist

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/relayhq/relay/internal/providers"
)

// NewClient builds the adapter matching a provider record. The match is
// exhaustive over the closed set of client types; an unrecognized type
// fails construction so bad configuration is caught before any call.
func NewClient(log *slog.Logger, p providers.Provider, timeout time.Duration) (Client, error) {
	if strings.TrimSpace(p.Endpoint) == "" || strings.TrimSpace(p.APIKey) == "" {
		return nil, fmt.Errorf("provider %s config incomplete", p.ID)
	}
	switch p.ClientType {
	case providers.ClientTypeChatCompletion:
		return NewChatCompletionClient(log, p.Endpoint, p.APIKey, p.Model, timeout), nil
	case providers.ClientTypeMessageAPI:
		return NewMessageAPIClient(log, p.Endpoint, p.APIKey, p.Model, timeout), nil
	case providers.ClientTypeGenerativeContent:
		return NewGenerativeContentClient(log, p.Endpoint, p.APIKey, p.Model, timeout), nil
	case providers.ClientTypeGenericJSON:
		return NewGenericJSONClient(log, p.Endpoint, p.APIKey, timeout), nil
	default:
		return nil, fmt.Errorf("unknown provider client type: %s", p.ClientType)
	}
}
