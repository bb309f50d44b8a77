package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/relayhq/relay/internal/users"
)

type fakeProfiles struct {
	profiles map[string]users.Profile
	err      error
}

func (f *fakeProfiles) Get(ctx context.Context, id string) (users.Profile, error) {
	if f.err != nil {
		return users.Profile{}, f.err
	}
	p, ok := f.profiles[id]
	if !ok {
		return users.Profile{}, users.ErrNotFound
	}
	return p, nil
}

type fakePusher struct {
	sent []Notification
	to   []string
	err  error
}

func (f *fakePusher) Send(ctx context.Context, token string, n Notification) error {
	f.to = append(f.to, token)
	f.sent = append(f.sent, n)
	return f.err
}

func TestNotify(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("delivers to registered token", func(t *testing.T) {
		t.Parallel()
		pusher := &fakePusher{}
		d := NewDispatcher(nil, &fakeProfiles{profiles: map[string]users.Profile{
			"u1": {ID: "u1", DeviceToken: "tok-1"},
		}}, pusher)

		d.Notify(ctx, "u1", Notification{Title: "Assistant", Body: "hi", Data: map[string]string{"chatId": "c1"}})
		require.Len(t, pusher.sent, 1)
		require.Equal(t, "tok-1", pusher.to[0])
		require.Equal(t, "Assistant", pusher.sent[0].Title)
	})

	t.Run("missing user is silent no-op", func(t *testing.T) {
		t.Parallel()
		pusher := &fakePusher{}
		d := NewDispatcher(nil, &fakeProfiles{profiles: map[string]users.Profile{}}, pusher)
		d.Notify(ctx, "ghost", Notification{Body: "hi"})
		require.Empty(t, pusher.sent)
	})

	t.Run("missing token is silent no-op", func(t *testing.T) {
		t.Parallel()
		pusher := &fakePusher{}
		d := NewDispatcher(nil, &fakeProfiles{profiles: map[string]users.Profile{
			"u1": {ID: "u1"},
		}}, pusher)
		d.Notify(ctx, "u1", Notification{Body: "hi"})
		require.Empty(t, pusher.sent)
	})

	t.Run("delivery failure is swallowed", func(t *testing.T) {
		t.Parallel()
		pusher := &fakePusher{err: errors.New("fcm down")}
		d := NewDispatcher(nil, &fakeProfiles{profiles: map[string]users.Profile{
			"u1": {ID: "u1", DeviceToken: "tok-1"},
		}}, pusher)
		// Must not panic or propagate.
		d.Notify(ctx, "u1", Notification{Body: "hi"})
		require.Len(t, pusher.sent, 1)
	})

	t.Run("empty title defaults", func(t *testing.T) {
		t.Parallel()
		pusher := &fakePusher{}
		d := NewDispatcher(nil, &fakeProfiles{profiles: map[string]users.Profile{
			"u1": {ID: "u1", DeviceToken: "tok-1"},
		}}, pusher)
		d.Notify(ctx, "u1", Notification{Body: "hi"})
		require.Equal(t, "New message", pusher.sent[0].Title)
	})
}
