package translate

import "context"

// Enrichment carries what the translation stage learned about a text.
// Empty fields mean "nothing produced"; the stage never reports errors.
type Enrichment struct {
	OriginalLanguage string
	TranslatedText   string
}

// Backend is the detect/translate boundary of an external translation
// service.
type Backend interface {
	DetectLanguage(ctx context.Context, text string) (string, error)
	Translate(ctx context.Context, text, targetLanguage string) (string, error)
}
