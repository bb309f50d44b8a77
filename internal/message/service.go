package message

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/relayhq/relay/internal/message/event"
)

// Service persists chat messages and publishes creation events that feed
// the enrichment pipeline.
type Service struct {
	store     Store
	logger    *slog.Logger
	publisher event.Publisher
}

func NewService(log *slog.Logger, store Store, publishers ...event.Publisher) *Service {
	if log == nil {
		log = slog.Default()
	}
	var publisher event.Publisher
	if len(publishers) > 0 {
		publisher = publishers[0]
	}
	return &Service{
		store:     store,
		logger:    log.With(slog.String("service", "message")),
		publisher: publisher,
	}
}

// Create appends a message to a chat and publishes a created event. A
// fresh id is generated when the caller does not supply one.
func (s *Service) Create(ctx context.Context, chatID string, req CreateRequest) (Message, error) {
	if strings.TrimSpace(chatID) == "" {
		return Message{}, fmt.Errorf("chat id is required")
	}
	if strings.TrimSpace(req.SenderID) == "" || strings.TrimSpace(req.ReceiverID) == "" {
		return Message{}, fmt.Errorf("sender_id and receiver_id are required")
	}

	role := strings.TrimSpace(req.SenderRole)
	if role == "" {
		role = RoleUser
	}

	created, err := s.store.Create(ctx, Message{
		ID:           uuid.NewString(),
		ChatID:       chatID,
		SenderID:     req.SenderID,
		ReceiverID:   req.ReceiverID,
		SenderRole:   role,
		OriginalText: req.OriginalText,
		Status:       StatusSent,
	})
	if err != nil {
		return Message{}, fmt.Errorf("create message: %w", err)
	}

	s.publishCreated(created)
	return created, nil
}

// CreateAssistant appends an assistant-authored message to a chat. The
// record is complete at creation time; its created event still fires, and
// the pipeline's guard ignores it.
func (s *Service) CreateAssistant(ctx context.Context, chatID, receiverID, text, language string) (Message, error) {
	created, err := s.store.Create(ctx, Message{
		ID:               uuid.NewString(),
		ChatID:           chatID,
		SenderID:         AssistantSenderID,
		ReceiverID:       receiverID,
		SenderRole:       RoleBot,
		OriginalText:     text,
		OriginalLanguage: language,
		Status:           StatusSent,
	})
	if err != nil {
		return Message{}, fmt.Errorf("create assistant message: %w", err)
	}

	s.publishCreated(created)
	return created, nil
}

// Get returns one message of a chat.
func (s *Service) Get(ctx context.Context, chatID, id string) (Message, error) {
	return s.store.Get(ctx, chatID, id)
}

// ListByChat returns a chat's messages in creation order.
func (s *Service) ListByChat(ctx context.Context, chatID string) ([]Message, error) {
	return s.store.ListByChat(ctx, chatID)
}

// ApplyEnrichment merges enrichment results onto a message. An empty
// update skips the write entirely.
func (s *Service) ApplyEnrichment(ctx context.Context, chatID, id string, u EnrichmentUpdate) error {
	if u.Empty() {
		return nil
	}
	return s.store.ApplyEnrichment(ctx, chatID, id, u)
}

func (s *Service) publishCreated(m Message) {
	if s.publisher == nil {
		return
	}
	payload, err := json.Marshal(m)
	if err != nil {
		s.logger.Warn("marshal message event failed", slog.Any("error", err))
		return
	}
	s.publisher.Publish(event.Event{
		Type:   event.EventTypeMessageCreated,
		ChatID: m.ChatID,
		Data:   payload,
	})
}
