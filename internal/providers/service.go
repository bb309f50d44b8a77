package providers

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// Service handles provider configuration and active-provider resolution.
type Service struct {
	store  Store
	logger *slog.Logger
}

// NewService creates a new provider service.
func NewService(log *slog.Logger, store Store) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		store:  store,
		logger: log.With(slog.String("service", "providers")),
	}
}

// Create creates a new provider. New providers are enabled unless the
// request says otherwise.
func (s *Service) Create(ctx context.Context, req CreateRequest) (GetResponse, error) {
	if !isValidClientType(req.ClientType) {
		return GetResponse{}, fmt.Errorf("invalid client_type: %s", req.ClientType)
	}
	if strings.TrimSpace(req.Name) == "" {
		return GetResponse{}, fmt.Errorf("name is required")
	}
	if strings.TrimSpace(req.Endpoint) == "" || strings.TrimSpace(req.APIKey) == "" {
		return GetResponse{}, fmt.Errorf("endpoint and api_key are required")
	}

	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	created, err := s.store.Create(ctx, Provider{
		ClientType: req.ClientType,
		Name:       req.Name,
		Endpoint:   req.Endpoint,
		APIKey:     req.APIKey,
		Model:      req.Model,
		Enabled:    enabled,
	})
	if err != nil {
		return GetResponse{}, fmt.Errorf("create provider: %w", err)
	}
	s.logger.Info("provider created",
		slog.String("id", created.ID),
		slog.String("client_type", string(created.ClientType)),
		slog.String("name", created.Name),
	)
	return toGetResponse(created), nil
}

// Get retrieves a provider by ID.
func (s *Service) Get(ctx context.Context, id string) (GetResponse, error) {
	p, err := s.store.Get(ctx, id)
	if err != nil {
		return GetResponse{}, err
	}
	return toGetResponse(p), nil
}

// List retrieves all providers.
func (s *Service) List(ctx context.Context) ([]GetResponse, error) {
	all, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list providers: %w", err)
	}
	results := make([]GetResponse, 0, len(all))
	for _, p := range all {
		results = append(results, toGetResponse(p))
	}
	return results, nil
}

// Update applies a partial update to an existing provider.
func (s *Service) Update(ctx context.Context, id string, req UpdateRequest) (GetResponse, error) {
	existing, err := s.store.Get(ctx, id)
	if err != nil {
		return GetResponse{}, err
	}

	if req.ClientType != nil {
		if !isValidClientType(*req.ClientType) {
			return GetResponse{}, fmt.Errorf("invalid client_type: %s", *req.ClientType)
		}
		existing.ClientType = *req.ClientType
	}
	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Endpoint != nil {
		existing.Endpoint = *req.Endpoint
	}
	existing.APIKey = resolveUpdatedAPIKey(existing.APIKey, req.APIKey)
	if req.Model != nil {
		existing.Model = *req.Model
	}
	if req.Enabled != nil {
		existing.Enabled = *req.Enabled
	}

	updated, err := s.store.Update(ctx, existing)
	if err != nil {
		return GetResponse{}, fmt.Errorf("update provider: %w", err)
	}
	return toGetResponse(updated), nil
}

// Delete deletes a provider by ID.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("provider deleted", slog.String("id", id))
	return nil
}

// Count returns the total count of providers.
func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.store.Count(ctx)
}

// ResolveActive returns the first enabled provider, with the raw
// credential, for pipeline use. ok is false when no provider is enabled;
// that is a legitimate "no assistant available" state, not an error.
func (s *Service) ResolveActive(ctx context.Context) (Provider, bool, error) {
	enabled, err := s.store.ListEnabled(ctx)
	if err != nil {
		return Provider{}, false, fmt.Errorf("list enabled providers: %w", err)
	}
	if len(enabled) == 0 {
		return Provider{}, false, nil
	}
	return enabled[0], true, nil
}

// GetConfig returns the singleton pipeline config.
func (s *Service) GetConfig(ctx context.Context) (PipelineConfig, error) {
	return s.store.GetConfig(ctx)
}

// SetDefaultProvider records the advisory default provider id.
func (s *Service) SetDefaultProvider(ctx context.Context, id string) (PipelineConfig, error) {
	if _, err := s.store.Get(ctx, id); err != nil {
		return PipelineConfig{}, err
	}
	return s.store.SetDefaultProvider(ctx, id)
}

func toGetResponse(p Provider) GetResponse {
	return GetResponse{
		ID:         p.ID,
		ClientType: p.ClientType,
		Name:       p.Name,
		Endpoint:   p.Endpoint,
		APIKey:     maskAPIKey(p.APIKey),
		Model:      p.Model,
		Enabled:    p.Enabled,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func isValidClientType(clientType ClientType) bool {
	switch clientType {
	case ClientTypeChatCompletion, ClientTypeMessageAPI, ClientTypeGenerativeContent, ClientTypeGenericJSON:
		return true
	default:
		return false
	}
}

// maskAPIKey masks a credential for API responses (first 8 chars visible).
func maskAPIKey(apiKey string) string {
	if apiKey == "" {
		return ""
	}
	if len(apiKey) <= 8 {
		return strings.Repeat("*", len(apiKey))
	}
	return apiKey[:8] + strings.Repeat("*", len(apiKey)-8)
}

// resolveUpdatedAPIKey keeps the original key when the request value matches
// the masked version. This prevents masked placeholder values from
// overwriting the real stored credential.
func resolveUpdatedAPIKey(existing string, updated *string) string {
	if updated == nil {
		return existing
	}
	if *updated == maskAPIKey(existing) {
		return existing
	}
	return *updated
}
