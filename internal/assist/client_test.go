package assist

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/relayhq/relay/internal/providers"
)

func TestChatCompletionClient(t *testing.T) {
	t.Parallel()

	t.Run("extracts first choice content", func(t *testing.T) {
		t.Parallel()
		var gotAuth string
		var gotBody map[string]any
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			_ = json.NewDecoder(r.Body).Decode(&gotBody)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"choices": []map[string]any{
					{"message": map[string]any{"content": "hello there"}},
					{"message": map[string]any{"content": "ignored"}},
				},
			})
		}))
		defer srv.Close()

		client := NewChatCompletionClient(nil, srv.URL, "sk-test", "", time.Second)
		reply, ok := client.Reply(context.Background(), "hi")
		require.True(t, ok)
		require.Equal(t, "hello there", reply)
		require.Equal(t, "Bearer sk-test", gotAuth)
		require.Equal(t, defaultChatCompletionModel, gotBody["model"])
		require.EqualValues(t, 150, gotBody["max_tokens"])
	})

	t.Run("server error degrades to absent", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}))
		defer srv.Close()

		client := NewChatCompletionClient(nil, srv.URL, "sk-test", "gpt-4", time.Second)
		reply, ok := client.Reply(context.Background(), "hi")
		require.False(t, ok)
		require.Empty(t, reply)
	})

	t.Run("malformed json degrades to absent", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not json"))
		}))
		defer srv.Close()

		client := NewChatCompletionClient(nil, srv.URL, "sk-test", "", time.Second)
		_, ok := client.Reply(context.Background(), "hi")
		require.False(t, ok)
	})

	t.Run("unreachable backend degrades to absent", func(t *testing.T) {
		t.Parallel()
		client := NewChatCompletionClient(nil, "http://127.0.0.1:1", "sk-test", "", 200*time.Millisecond)
		_, ok := client.Reply(context.Background(), "hi")
		require.False(t, ok)
	})
}

func TestMessageAPIClient(t *testing.T) {
	t.Parallel()

	t.Run("extracts first content block", func(t *testing.T) {
		t.Parallel()
		var gotKey, gotVersion string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotKey = r.Header.Get("x-api-key")
			gotVersion = r.Header.Get("anthropic-version")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"content": []map[string]any{{"text": "block one"}},
			})
		}))
		defer srv.Close()

		client := NewMessageAPIClient(nil, srv.URL, "sk-ant", "", time.Second)
		reply, ok := client.Reply(context.Background(), "hi")
		require.True(t, ok)
		require.Equal(t, "block one", reply)
		require.Equal(t, "sk-ant", gotKey)
		require.Equal(t, anthropicVersion, gotVersion)
	})

	t.Run("empty content degrades to absent", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{"content": []any{}})
		}))
		defer srv.Close()

		client := NewMessageAPIClient(nil, srv.URL, "sk-ant", "", time.Second)
		_, ok := client.Reply(context.Background(), "hi")
		require.False(t, ok)
	})
}

func TestGenerativeContentClient(t *testing.T) {
	t.Parallel()

	t.Run("substitutes model and key", func(t *testing.T) {
		t.Parallel()
		var gotPath, gotKey string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotKey = r.URL.Query().Get("key")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"candidates": []map[string]any{
					{"content": map[string]any{"parts": []map[string]any{{"text": "generated"}}}},
				},
			})
		}))
		defer srv.Close()

		client := NewGenerativeContentClient(nil, srv.URL+"/v1beta/models/{model}:generateContent", "g-key", "", time.Second)
		reply, ok := client.Reply(context.Background(), "hi")
		require.True(t, ok)
		require.Equal(t, "generated", reply)
		require.Equal(t, "/v1beta/models/"+defaultGenerativeModel+":generateContent", gotPath)
		require.Equal(t, "g-key", gotKey)
	})

	t.Run("no candidates degrades to absent", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{"candidates": []any{}})
		}))
		defer srv.Close()

		client := NewGenerativeContentClient(nil, srv.URL, "g-key", "gemini-1.5-pro", time.Second)
		_, ok := client.Reply(context.Background(), "hi")
		require.False(t, ok)
	})
}

func TestGenericJSONClient(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		body map[string]any
		want string
	}{
		{"reply field", map[string]any{"reply": "from reply"}, "from reply"},
		{"text field", map[string]any{"text": "from text"}, "from text"},
		{"result field", map[string]any{"result": "from result"}, "from result"},
		{"reply wins over text", map[string]any{"reply": "first", "text": "second"}, "first"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_ = json.NewEncoder(w).Encode(tc.body)
			}))
			defer srv.Close()

			client := NewGenericJSONClient(nil, srv.URL, "key", time.Second)
			reply, ok := client.Reply(context.Background(), "hi")
			require.True(t, ok)
			require.Equal(t, tc.want, reply)
		})
	}

	t.Run("no known field degrades to absent", func(t *testing.T) {
		t.Parallel()
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]any{"answer": "nope"})
		}))
		defer srv.Close()

		client := NewGenericJSONClient(nil, srv.URL, "key", time.Second)
		_, ok := client.Reply(context.Background(), "hi")
		require.False(t, ok)
	})
}

func TestNewClient(t *testing.T) {
	t.Parallel()

	base := providers.Provider{
		ID:       "p1",
		Endpoint: "https://api.example.com/v1",
		APIKey:   "secret",
	}

	t.Run("builds each known type", func(t *testing.T) {
		t.Parallel()
		for _, ct := range []providers.ClientType{
			providers.ClientTypeChatCompletion,
			providers.ClientTypeMessageAPI,
			providers.ClientTypeGenerativeContent,
			providers.ClientTypeGenericJSON,
		} {
			p := base
			p.ClientType = ct
			client, err := NewClient(nil, p, time.Second)
			require.NoError(t, err, "client type %s", ct)
			require.NotNil(t, client)
		}
	})

	t.Run("unknown type fails construction", func(t *testing.T) {
		t.Parallel()
		p := base
		p.ClientType = "openai"
		_, err := NewClient(nil, p, time.Second)
		require.Error(t, err)
	})

	t.Run("incomplete config fails construction", func(t *testing.T) {
		t.Parallel()
		p := base
		p.ClientType = providers.ClientTypeChatCompletion
		p.APIKey = ""
		_, err := NewClient(nil, p, time.Second)
		require.Error(t, err)
	})
}
