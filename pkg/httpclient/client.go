// Package httpclient provides the JSON-over-HTTP transport used to talk
// to the ModuSnap manager engine.
//
// Every exchange is a single synchronous request/response with a fixed
// timeout bound. The transport never panics and never leaks an error past
// its boundary: every call produces exactly one Result, which is either
// the parsed JSON payload or a structured error value. Callers needing
// retries or caching must wrap this layer themselves.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultTimeout is the default bound for a single exchange with the
	// manager engine. A call exceeding it fails, it never hangs.
	DefaultTimeout = 25 * time.Second

	// MaxResponseSize is the maximum allowed response size (100MB)
	MaxResponseSize = 100 * 1024 * 1024

	// UserAgent is the user agent string for requests to the engine
	UserAgent = "modusnap-manager-client/1.0"
)

// Client is the interface for JSON exchanges with the manager engine.
type Client interface {
	// Do performs a single request and returns a uniform Result.
	// body, if non-nil, is serialized as JSON. apiKey, if non-empty, is
	// attached as a bearer token.
	Do(ctx context.Context, method, url string, body any, apiKey string) Result
}

// DefaultClient is the default transport implementation.
type DefaultClient struct {
	client *http.Client
}

// NewDefaultClient creates a transport with the specified timeout.
// If timeout is 0, uses DefaultTimeout.
func NewDefaultClient(timeout time.Duration) Client {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &DefaultClient{
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Do performs one outbound call and folds every failure mode into the
// Result value. Non-2xx statuses become "HTTP <status>" errors carrying
// the best-effort body text; everything else (DNS, refused connections,
// timeouts, malformed payloads) becomes an error string with no details.
func (c *DefaultClient) Do(ctx context.Context, method, url string, body any, apiKey string) Result {
	payload, err := c.exchange(ctx, method, url, body, apiKey)
	if err != nil {
		var httpErr *HTTPError
		if errors.As(err, &httpErr) {
			return Failure(fmt.Sprintf("HTTP %d", httpErr.StatusCode), httpErr.Body)
		}
		return Failure(err.Error(), "")
	}
	return Success(payload)
}

func (c *DefaultClient) exchange(ctx context.Context, method, url string, body any, apiKey string) (json.RawMessage, error) {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Set headers
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}

	// Execute request
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Read response body with size limit
	// Use LimitReader to prevent reading more than MaxResponseSize
	limitedReader := io.LimitReader(resp.Body, MaxResponseSize+1) // +1 to detect if limit exceeded
	raw, readErr := io.ReadAll(limitedReader)

	// Check status code before surfacing any read error: a non-2xx reply
	// must carry the status code even when the body cannot be decoded.
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		details := strings.TrimSpace(string(raw))
		if readErr != nil {
			details = readErr.Error()
		}
		return nil, NewHTTPError(resp.StatusCode, url, details)
	}

	if readErr != nil {
		return nil, fmt.Errorf("failed to read response body: %w", readErr)
	}
	if int64(len(raw)) > MaxResponseSize {
		return nil, fmt.Errorf("response size exceeds maximum allowed size of %d bytes", int64(MaxResponseSize))
	}

	// An empty body on success is treated as an empty object
	if len(bytes.TrimSpace(raw)) == 0 {
		return json.RawMessage("{}"), nil
	}
	if !json.Valid(raw) {
		return nil, fmt.Errorf("malformed JSON in response body")
	}
	return json.RawMessage(raw), nil
}
