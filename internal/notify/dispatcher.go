package notify

import (
	"context"
	"log/slog"
	"strings"

	"github.com/relayhq/relay/internal/users"
)

// ProfileSource looks up the profile holding a user's device token.
type ProfileSource interface {
	Get(ctx context.Context, id string) (users.Profile, error)
}

// Dispatcher sends push notifications to users. It never fails visibly:
// a missing user or token is a silent no-op, and delivery errors are
// logged and swallowed so dispatch can never abort the pipeline.
type Dispatcher struct {
	profiles ProfileSource
	pusher   Pusher
	logger   *slog.Logger
}

func NewDispatcher(log *slog.Logger, profiles ProfileSource, pusher Pusher) *Dispatcher {
	if log == nil {
		log = slog.Default()
	}
	return &Dispatcher{
		profiles: profiles,
		pusher:   pusher,
		logger:   log.With(slog.String("service", "notify")),
	}
}

// Notify delivers a push notification to the user's device, if one is
// registered.
func (d *Dispatcher) Notify(ctx context.Context, userID string, n Notification) {
	if d.pusher == nil || strings.TrimSpace(userID) == "" {
		return
	}

	profile, err := d.profiles.Get(ctx, userID)
	if err != nil {
		d.logger.Warn("profile lookup failed", slog.String("user_id", userID), slog.Any("error", err))
		return
	}
	if profile.DeviceToken == "" {
		return
	}

	if n.Title == "" {
		n.Title = "New message"
	}
	if err := d.pusher.Send(ctx, profile.DeviceToken, n); err != nil {
		d.logger.Warn("push delivery failed", slog.String("user_id", userID), slog.Any("error", err))
	}
}
