// Package handlers holds the HTTP surface of the relay service.
package handlers

// ErrorResponse is the error body returned by all endpoints.
type ErrorResponse struct {
	Message string `json:"message"`
}
