package message

import (
	"strings"
	"time"
)

// Sender roles. Messages authored by the assistant never re-trigger the
// pipeline.
const (
	RoleUser = "user"
	RoleBot  = "bot"
)

// StatusSent marks a delivered message record.
const StatusSent = "sent"

// AssistantSenderID is the synthetic sender of assistant messages.
const AssistantSenderID = "assistant"

// Message is one chat message record. The language fields are filled in
// by the enrichment pipeline after creation; empty means not enriched.
type Message struct {
	ID                 string    `json:"message_id"`
	ChatID             string    `json:"chat_id"`
	SenderID           string    `json:"sender_id"`
	ReceiverID         string    `json:"receiver_id"`
	SenderRole         string    `json:"sender_role"`
	OriginalText       string    `json:"original_text"`
	OriginalLanguage   string    `json:"original_language,omitempty"`
	TranslatedText     string    `json:"translated_text,omitempty"`
	TranslatedLanguage string    `json:"translated_language,omitempty"`
	Status             string    `json:"status"`
	CreatedAt          time.Time `json:"created_at"`
}

// FromAssistant reports whether the message was authored by the
// automated assistant.
func (m Message) FromAssistant() bool {
	return strings.EqualFold(strings.TrimSpace(m.SenderRole), RoleBot)
}

// CreateRequest creates a new message in a chat.
type CreateRequest struct {
	SenderID     string `json:"sender_id" validate:"required"`
	ReceiverID   string `json:"receiver_id" validate:"required"`
	SenderRole   string `json:"sender_role"`
	OriginalText string `json:"original_text"`
}

// EnrichmentUpdate is a merge-only update carrying what the pipeline
// learned about a message. Empty fields are never written, so repeated
// application is stable and unrelated fields survive.
type EnrichmentUpdate struct {
	OriginalLanguage   string
	TranslatedText     string
	TranslatedLanguage string
}

// Empty reports whether the update would write nothing.
func (u EnrichmentUpdate) Empty() bool {
	return u.OriginalLanguage == "" && u.TranslatedText == "" && u.TranslatedLanguage == ""
}

// ApplyTo merges the update onto a message, leaving fields untouched
// where the update is empty.
func (u EnrichmentUpdate) ApplyTo(m Message) Message {
	if u.OriginalLanguage != "" {
		m.OriginalLanguage = u.OriginalLanguage
	}
	if u.TranslatedText != "" {
		m.TranslatedText = u.TranslatedText
	}
	if u.TranslatedLanguage != "" {
		m.TranslatedLanguage = u.TranslatedLanguage
	}
	return m
}
