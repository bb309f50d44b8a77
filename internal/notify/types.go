package notify

import "context"

// Notification is one push message. Data is an opaque payload the client
// uses to deep-link into a chat.
type Notification struct {
	Title string
	Body  string
	Data  map[string]string
}

// Pusher delivers a push message to a device token.
type Pusher interface {
	Send(ctx context.Context, token string, n Notification) error
}
