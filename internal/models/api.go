package models

// APIError is the wire form of a request failure.
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse wraps an APIError for JSON endpoints.
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// SessionResponse is the payload of POST /api/v1/session.
type SessionResponse struct {
	SessionID string `json:"session_id"`
	Token     string `json:"token"`
	ExpiresIn int    `json:"expires_in"` // seconds
}
