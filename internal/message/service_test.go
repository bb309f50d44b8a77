package message

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/relayhq/relay/internal/message/event"
)

// memStore is an in-memory Store used across package tests.
type memStore struct {
	messages map[string]Message
	applies  int
}

func newMemStore() *memStore {
	return &memStore{messages: make(map[string]Message)}
}

func (s *memStore) Create(ctx context.Context, m Message) (Message, error) {
	s.messages[m.ID] = m
	return m, nil
}

func (s *memStore) Get(ctx context.Context, chatID, id string) (Message, error) {
	m, ok := s.messages[id]
	if !ok || m.ChatID != chatID {
		return Message{}, ErrNotFound
	}
	return m, nil
}

func (s *memStore) ListByChat(ctx context.Context, chatID string) ([]Message, error) {
	var result []Message
	for _, m := range s.messages {
		if m.ChatID == chatID {
			result = append(result, m)
		}
	}
	return result, nil
}

func (s *memStore) ApplyEnrichment(ctx context.Context, chatID, id string, u EnrichmentUpdate) error {
	m, ok := s.messages[id]
	if !ok || m.ChatID != chatID {
		return ErrNotFound
	}
	s.applies++
	s.messages[id] = u.ApplyTo(m)
	return nil
}

func TestCreatePublishesEvent(t *testing.T) {
	t.Parallel()

	hub := event.NewHub()
	events, cancel := hub.Subscribe()
	defer cancel()

	svc := NewService(nil, newMemStore(), hub)
	created, err := svc.Create(context.Background(), "c1", CreateRequest{
		SenderID:     "u1",
		ReceiverID:   "u2",
		OriginalText: "hello",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	require.Equal(t, RoleUser, created.SenderRole)
	require.Equal(t, StatusSent, created.Status)

	e := <-events
	require.Equal(t, event.EventTypeMessageCreated, e.Type)
	require.Equal(t, "c1", e.ChatID)
}

func TestCreateAssistantMessage(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	svc := NewService(nil, store)
	created, err := svc.CreateAssistant(context.Background(), "c1", "u2", "a reply", "es")
	require.NoError(t, err)
	require.Equal(t, AssistantSenderID, created.SenderID)
	require.Equal(t, RoleBot, created.SenderRole)
	require.Equal(t, "es", created.OriginalLanguage)
	require.True(t, created.FromAssistant())
}

func TestApplyEnrichmentIdempotent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := newMemStore()
	svc := NewService(nil, store)
	created, err := svc.Create(ctx, "c1", CreateRequest{SenderID: "u1", ReceiverID: "u2", OriginalText: "hola"})
	require.NoError(t, err)

	update := EnrichmentUpdate{OriginalLanguage: "es", TranslatedText: "hello", TranslatedLanguage: "en"}
	require.NoError(t, svc.ApplyEnrichment(ctx, "c1", created.ID, update))
	first, err := svc.Get(ctx, "c1", created.ID)
	require.NoError(t, err)

	// Applying the same update again changes nothing.
	require.NoError(t, svc.ApplyEnrichment(ctx, "c1", created.ID, update))
	second, err := svc.Get(ctx, "c1", created.ID)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, "es", second.OriginalLanguage)
	require.Equal(t, "hello", second.TranslatedText)
	require.Equal(t, "en", second.TranslatedLanguage)
	// Unrelated fields survive the merge.
	require.Equal(t, "hola", second.OriginalText)
}

func TestApplyEnrichmentSkipsEmptyUpdate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	store := newMemStore()
	svc := NewService(nil, store)
	created, err := svc.Create(ctx, "c1", CreateRequest{SenderID: "u1", ReceiverID: "u2"})
	require.NoError(t, err)

	require.NoError(t, svc.ApplyEnrichment(ctx, "c1", created.ID, EnrichmentUpdate{}))
	require.Zero(t, store.applies)
}
