// Package api defines the API types and structures used across the recipes backend.
// It contains request and response structures for the HTTP handlers.
package api

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// MessageResponse is returned by operations whose only result is a status message.
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse represents the response to a health check request
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
