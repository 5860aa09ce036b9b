package httpclient

import (
	"encoding/json"
	"fmt"
)

// HTTPError represents a non-2xx reply from the manager engine.
type HTTPError struct {
	StatusCode int
	URL        string
	Body       string
}

// Error returns the error message
func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d for URL %s: %s", e.StatusCode, e.URL, e.Body)
}

// NewHTTPError creates a new HTTP error
func NewHTTPError(statusCode int, url, body string) error {
	return &HTTPError{
		StatusCode: statusCode,
		URL:        url,
		Body:       body,
	}
}

// ErrorDetail is the structured error payload surfaced to callers when an
// exchange fails. It serializes to the engine's conventional error shape.
type ErrorDetail struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// JSON returns the serialized error payload.
func (e *ErrorDetail) JSON() string {
	data, err := json.Marshal(e)
	if err != nil {
		// Marshaling a flat string struct cannot fail in practice.
		return `{"error":"internal serialization failure"}`
	}
	return string(data)
}

// Result is the uniform outcome of a single transport exchange.
// Exactly one of Body (OK) or Err (!OK) is meaningful.
type Result struct {
	OK   bool
	Body json.RawMessage
	Err  *ErrorDetail
}

// Success wraps a parsed JSON payload into a Result.
func Success(body json.RawMessage) Result {
	return Result{OK: true, Body: body}
}

// Failure wraps an error message and optional detail text into a Result.
func Failure(message, details string) Result {
	return Result{OK: false, Err: &ErrorDetail{Error: message, Details: details}}
}
