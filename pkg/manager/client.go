package manager

import (
	"log/slog"
	"time"

	"github.com/tidwall/gjson"

	"github.com/MTheUnexpected-1/ModuSnap-ComfyUI-Manager/pkg/filtering"
	"github.com/MTheUnexpected-1/ModuSnap-ComfyUI-Manager/pkg/httpclient"
)

// Client issues queries against a manager engine. It holds no per-engine
// state; the target Endpoint is passed on every call, so a single Client
// may be shared across goroutines and engines.
type Client struct {
	http   httpclient.Client
	filter filtering.PackFilter
	logger *slog.Logger
}

// Option configures a Client.
type Option func(*options)

type options struct {
	http    httpclient.Client
	filter  filtering.PackFilter
	logger  *slog.Logger
	timeout time.Duration
}

// WithHTTPClient replaces the default transport.
func WithHTTPClient(c httpclient.Client) Option {
	return func(o *options) {
		o.http = c
	}
}

// WithTimeout sets the transport timeout for the default transport.
// Ignored when WithHTTPClient is also given.
func WithTimeout(d time.Duration) Option {
	return func(o *options) {
		o.timeout = d
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithPackFilter replaces the default catalog filter.
func WithPackFilter(f filtering.PackFilter) Option {
	return func(o *options) {
		o.filter = f
	}
}

// New creates a manager client.
func New(opts ...Option) *Client {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.http == nil {
		o.http = httpclient.NewDefaultClient(o.timeout)
	}
	if o.filter == nil {
		o.filter = filtering.NewDefaultPackFilter()
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return &Client{
		http:   o.http,
		filter: o.filter,
		logger: o.logger,
	}
}

// stringField extracts an optional string field, coercing scalar values to
// their textual form. Missing and null map to the default.
func stringField(body []byte, path, def string) string {
	v := gjson.GetBytes(body, path)
	if !v.Exists() || v.Type == gjson.Null {
		return def
	}
	return v.String()
}

// intField extracts an optional integer field. Missing, null and
// non-numeric values map to 0; integer-like strings and floats are
// coerced.
func intField(body []byte, path string) int {
	v := gjson.GetBytes(body, path)
	if !v.Exists() || v.Type == gjson.Null {
		return 0
	}
	return int(v.Int())
}

// truncateString hard-truncates s to at most limit characters (runes).
// Truncating serialized JSON may cut mid-structure; callers are expected
// to treat oversized results as potentially invalid JSON.
func truncateString(s string, limit int) string {
	if limit <= 0 || len(s) <= limit {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
