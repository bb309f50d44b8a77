package translate

import (
	"context"
	"log/slog"
)

// Service runs the detect-then-translate stage. A nil backend disables
// the stage entirely; Enrich then returns an empty Enrichment for every
// input. Failures degrade the same way and are only logged.
type Service struct {
	backend Backend
	logger  *slog.Logger
}

func NewService(log *slog.Logger, backend Backend) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{
		backend: backend,
		logger:  log.With(slog.String("service", "translate")),
	}
}

// Enabled reports whether a translation backend is configured.
func (s *Service) Enabled() bool {
	return s.backend != nil
}

// Enrich detects the language of text and translates it to targetLanguage
// when they differ. Translation is skipped when the source already
// matches the target, or when no target is given.
func (s *Service) Enrich(ctx context.Context, text, targetLanguage string) Enrichment {
	if s.backend == nil {
		return Enrichment{}
	}

	detected, err := s.backend.DetectLanguage(ctx, text)
	if err != nil {
		s.logger.Warn("language detection failed", slog.Any("error", err))
		return Enrichment{}
	}
	if detected == "" {
		return Enrichment{}
	}

	if targetLanguage == "" || targetLanguage == detected {
		return Enrichment{OriginalLanguage: detected}
	}

	translated, err := s.backend.Translate(ctx, text, targetLanguage)
	if err != nil {
		s.logger.Warn("translation failed",
			slog.String("source", detected),
			slog.String("target", targetLanguage),
			slog.Any("error", err),
		)
		return Enrichment{}
	}
	return Enrichment{OriginalLanguage: detected, TranslatedText: translated}
}
