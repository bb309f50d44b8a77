package users

import "time"

// Profile is what the pipeline needs to know about a chat user: the
// preferred language for translation and the device token for push
// delivery. Either may be absent.
type Profile struct {
	ID          string    `json:"id"`
	Language    string    `json:"language,omitempty"`
	DeviceToken string    `json:"device_token,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// UpsertRequest updates a user profile.
type UpsertRequest struct {
	Language    *string `json:"language,omitempty"`
	DeviceToken *string `json:"device_token,omitempty"`
}
