package translate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeBackend struct {
	detected     string
	detectErr    error
	translated   string
	translateErr error
	translates   int
}

func (f *fakeBackend) DetectLanguage(ctx context.Context, text string) (string, error) {
	return f.detected, f.detectErr
}

func (f *fakeBackend) Translate(ctx context.Context, text, target string) (string, error) {
	f.translates++
	return f.translated, f.translateErr
}

func TestEnrich(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("translates when languages differ", func(t *testing.T) {
		t.Parallel()
		svc := NewService(nil, &fakeBackend{detected: "es", translated: "hello"})
		got := svc.Enrich(ctx, "hola", "en")
		require.Equal(t, Enrichment{OriginalLanguage: "es", TranslatedText: "hello"}, got)
	})

	t.Run("skips translation when source matches target", func(t *testing.T) {
		t.Parallel()
		backend := &fakeBackend{detected: "en", translated: "should not be used"}
		svc := NewService(nil, backend)
		got := svc.Enrich(ctx, "hello", "en")
		require.Equal(t, Enrichment{OriginalLanguage: "en"}, got)
		require.Zero(t, backend.translates)
	})

	t.Run("skips translation without a target", func(t *testing.T) {
		t.Parallel()
		backend := &fakeBackend{detected: "fr"}
		svc := NewService(nil, backend)
		got := svc.Enrich(ctx, "bonjour", "")
		require.Equal(t, Enrichment{OriginalLanguage: "fr"}, got)
		require.Zero(t, backend.translates)
	})

	t.Run("disabled backend is a no-op", func(t *testing.T) {
		t.Parallel()
		svc := NewService(nil, nil)
		require.False(t, svc.Enabled())
		require.Equal(t, Enrichment{}, svc.Enrich(ctx, "hola", "en"))
	})

	t.Run("detection miss yields empty result", func(t *testing.T) {
		t.Parallel()
		svc := NewService(nil, &fakeBackend{detected: ""})
		require.Equal(t, Enrichment{}, svc.Enrich(ctx, "???", "en"))
	})

	t.Run("detection failure degrades to empty", func(t *testing.T) {
		t.Parallel()
		svc := NewService(nil, &fakeBackend{detectErr: errors.New("backend down")})
		require.Equal(t, Enrichment{}, svc.Enrich(ctx, "hola", "en"))
	})

	t.Run("translation failure degrades to empty", func(t *testing.T) {
		t.Parallel()
		svc := NewService(nil, &fakeBackend{detected: "es", translateErr: errors.New("quota")})
		require.Equal(t, Enrichment{}, svc.Enrich(ctx, "hola", "en"))
	})
}
