package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/relayhq/relay/internal/assist"
	"github.com/relayhq/relay/internal/message"
	"github.com/relayhq/relay/internal/notify"
	"github.com/relayhq/relay/internal/providers"
	"github.com/relayhq/relay/internal/translate"
	"github.com/relayhq/relay/internal/users"
)

const (
	defaultLanguage = "en"

	notificationTitle   = "New message"
	assistantPushTitle  = "Assistant"
	replyPromptTemplate = "User message: %s\nPlease provide a professional assistant reply."
)

// ProviderResolver yields the provider configuration the pipeline should
// use for generating replies.
type ProviderResolver interface {
	ResolveActive(ctx context.Context) (providers.Provider, bool, error)
}

// Translator runs language detection and translation for a single text.
type Translator interface {
	Enrich(ctx context.Context, text, targetLanguage string) translate.Enrichment
}

// Notifier delivers a push notification to a user, best effort.
type Notifier interface {
	Notify(ctx context.Context, userID string, n notify.Notification)
}

// MessageWriter is the slice of the message service the pipeline writes
// through.
type MessageWriter interface {
	ApplyEnrichment(ctx context.Context, chatID, id string, u message.EnrichmentUpdate) error
	CreateAssistant(ctx context.Context, chatID, receiverID, text, language string) (message.Message, error)
}

// ProfileReader looks up the receiver's profile.
type ProfileReader interface {
	Get(ctx context.Context, id string) (users.Profile, error)
}

// ClientFactory builds a reply client from a provider row. Tests swap it
// out; production uses assist.NewClient.
type ClientFactory func(log *slog.Logger, p providers.Provider, timeout time.Duration) (assist.Client, error)

// Processor runs the enrichment pipeline for one created message:
// translation, receiver notification, and the conditional assistant
// reply. Every stage degrades independently; a failed stage is logged
// and the remaining stages still run.
type Processor struct {
	logger         *slog.Logger
	profiles       ProfileReader
	translator     Translator
	notifier       Notifier
	messages       MessageWriter
	providers      ProviderResolver
	newClient      ClientFactory
	fallbackReply  string
	adapterTimeout time.Duration
}

func NewProcessor(
	log *slog.Logger,
	profiles ProfileReader,
	translator Translator,
	notifier Notifier,
	messages MessageWriter,
	resolver ProviderResolver,
	fallbackReply string,
	adapterTimeout time.Duration,
) *Processor {
	if log == nil {
		log = slog.Default()
	}
	return &Processor{
		logger:         log.With(slog.String("service", "pipeline")),
		profiles:       profiles,
		translator:     translator,
		notifier:       notifier,
		messages:       messages,
		providers:      resolver,
		newClient:      assist.NewClient,
		fallbackReply:  fallbackReply,
		adapterTimeout: adapterTimeout,
	}
}

// Process runs the pipeline for one message. Assistant-authored messages
// are ignored so the pipeline cannot feed itself.
func (p *Processor) Process(ctx context.Context, m message.Message) {
	if m.FromAssistant() {
		p.logger.Debug("skipping assistant message",
			slog.String("chat_id", m.ChatID),
			slog.String("message_id", m.ID),
		)
		return
	}

	log := p.logger.With(
		slog.String("chat_id", m.ChatID),
		slog.String("message_id", m.ID),
	)

	receiverLanguage := p.receiverLanguage(ctx, log, m.ReceiverID)

	if update := p.enrich(ctx, m, receiverLanguage); !update.Empty() {
		if err := p.messages.ApplyEnrichment(ctx, m.ChatID, m.ID, update); err != nil {
			log.Error("persisting enrichment failed", slog.Any("error", err))
		}
	}

	p.notifier.Notify(ctx, m.ReceiverID, notify.Notification{
		Title: notificationTitle,
		Body:  m.OriginalText,
		Data: map[string]string{
			"chatId": m.ChatID,
			"msgId":  m.ID,
		},
	})

	if !ShouldRespond(m.OriginalText) {
		return
	}

	reply := p.generateReply(ctx, log, m.OriginalText)

	data := map[string]string{"chatId": m.ChatID}
	assistantMsg, err := p.messages.CreateAssistant(ctx, m.ChatID, m.ReceiverID, reply, receiverLanguage)
	if err != nil {
		log.Error("persisting assistant reply failed", slog.Any("error", err))
	} else {
		data["msgId"] = assistantMsg.ID
	}

	p.notifier.Notify(ctx, m.ReceiverID, notify.Notification{
		Title: assistantPushTitle,
		Body:  reply,
		Data:  data,
	})
}

// receiverLanguage resolves the receiver's preferred language, falling
// back to English when the profile is missing or has none set.
func (p *Processor) receiverLanguage(ctx context.Context, log *slog.Logger, receiverID string) string {
	profile, err := p.profiles.Get(ctx, receiverID)
	if err != nil {
		if !errors.Is(err, users.ErrNotFound) {
			log.Warn("receiver profile lookup failed",
				slog.String("user_id", receiverID),
				slog.Any("error", err),
			)
		}
		return defaultLanguage
	}
	if profile.Language == "" {
		return defaultLanguage
	}
	return profile.Language
}

func (p *Processor) enrich(ctx context.Context, m message.Message, targetLanguage string) message.EnrichmentUpdate {
	e := p.translator.Enrich(ctx, m.OriginalText, targetLanguage)
	update := message.EnrichmentUpdate{
		OriginalLanguage: e.OriginalLanguage,
		TranslatedText:   e.TranslatedText,
	}
	if e.TranslatedText != "" {
		update.TranslatedLanguage = targetLanguage
	}
	return update
}

// generateReply asks the active provider for a reply and falls back to
// the configured canned answer when no provider is usable or the call
// produces nothing.
func (p *Processor) generateReply(ctx context.Context, log *slog.Logger, text string) string {
	prompt := fmt.Sprintf(replyPromptTemplate, text)

	provider, ok, err := p.providers.ResolveActive(ctx)
	if err != nil {
		log.Error("resolving active provider failed", slog.Any("error", err))
		return p.fallbackReply
	}
	if !ok {
		log.Warn("no enabled provider configured")
		return p.fallbackReply
	}

	client, err := p.newClient(p.logger, provider, p.adapterTimeout)
	if err != nil {
		log.Warn("provider not usable",
			slog.String("provider", provider.Name),
			slog.Any("error", err),
		)
		return p.fallbackReply
	}

	reply, ok := client.Reply(ctx, prompt)
	if !ok {
		log.Warn("reply generation failed, using fallback",
			slog.String("provider", provider.Name),
		)
		return p.fallbackReply
	}
	return reply
}
