// Package helpers provides a mock ModuSnap engine for integration tests.
package helpers

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// BatchRecord captures one batch request as received by the mock engine.
type BatchRecord struct {
	Body    string
	Headers http.Header
}

// MockEngineBuilder provides a fluent interface for building mock engine servers
type MockEngineBuilder struct {
	statusResponse  string
	statusCode      int
	catalogResponse string
	catalogCode     int
	batchResponse   string
	batchCode       int
	requiredAPIKey  string
	customHandlers  map[string]http.HandlerFunc
}

// NewMockEngineBuilder creates a new mock engine builder with healthy defaults
func NewMockEngineBuilder() *MockEngineBuilder {
	return &MockEngineBuilder{
		statusResponse:  `{"managerRoutesReachable": true, "hardwareProfile": "cuda", "nodeCount": 4}`,
		statusCode:      http.StatusOK,
		catalogResponse: `{"node_packs": {}}`,
		catalogCode:     http.StatusOK,
		batchResponse:   `{"queued": 0}`,
		batchCode:       http.StatusOK,
		customHandlers:  make(map[string]http.HandlerFunc),
	}
}

// WithStatus sets the /api/manager/status response
func (b *MockEngineBuilder) WithStatus(code int, body string) *MockEngineBuilder {
	b.statusCode = code
	b.statusResponse = body
	return b
}

// WithCatalog sets the /api/manager/catalog response
func (b *MockEngineBuilder) WithCatalog(code int, body string) *MockEngineBuilder {
	b.catalogCode = code
	b.catalogResponse = body
	return b
}

// WithBatchResponse sets the /api/manager/batch response
func (b *MockEngineBuilder) WithBatchResponse(code int, body string) *MockEngineBuilder {
	b.batchCode = code
	b.batchResponse = body
	return b
}

// WithAPIKey makes the engine reject requests without the given bearer token
func (b *MockEngineBuilder) WithAPIKey(key string) *MockEngineBuilder {
	b.requiredAPIKey = key
	return b
}

// WithCustomHandler adds a custom HTTP handler for a specific path
func (b *MockEngineBuilder) WithCustomHandler(path string, handler http.HandlerFunc) *MockEngineBuilder {
	b.customHandlers[path] = handler
	return b
}

// MockEngine is a running in-process engine backed by httptest.
type MockEngine struct {
	Server *httptest.Server

	mu      sync.Mutex
	batches []BatchRecord
}

// URL returns the engine's base URL.
func (e *MockEngine) URL() string {
	return e.Server.URL
}

// Close shuts the engine down.
func (e *MockEngine) Close() {
	e.Server.Close()
}

// BatchRequests returns a copy of the batch requests received so far.
func (e *MockEngine) BatchRequests() []BatchRecord {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]BatchRecord, len(e.batches))
	copy(out, e.batches)
	return out
}

// Build creates and starts the mock engine
func (b *MockEngineBuilder) Build() *MockEngine {
	engine := &MockEngine{}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	if b.requiredAPIKey != "" {
		r.Use(b.requireAPIKey)
	}

	r.Get("/api/manager/status", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, b.statusCode, b.statusResponse)
	})

	r.Get("/api/manager/catalog", func(w http.ResponseWriter, req *http.Request) {
		q := req.URL.Query()
		if q.Get("mode") != "cache" || q.Get("skip_update") != "true" {
			writeJSON(w, http.StatusBadRequest, `{"message": "unexpected catalog query"}`)
			return
		}
		writeJSON(w, b.catalogCode, b.catalogResponse)
	})

	r.Post("/api/manager/batch", func(w http.ResponseWriter, req *http.Request) {
		body, err := io.ReadAll(req.Body)
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, `{"message": "read failed"}`)
			return
		}
		engine.mu.Lock()
		engine.batches = append(engine.batches, BatchRecord{
			Body:    string(body),
			Headers: req.Header.Clone(),
		})
		engine.mu.Unlock()
		writeJSON(w, b.batchCode, b.batchResponse)
	})

	for path, handler := range b.customHandlers {
		r.HandleFunc(path, handler)
	}

	engine.Server = httptest.NewServer(r)
	engine.Server.Config.SetKeepAlivesEnabled(false)
	return engine
}

func (b *MockEngineBuilder) requireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.Header.Get("Authorization") != "Bearer "+b.requiredAPIKey {
			writeJSON(w, http.StatusUnauthorized, `{"message": "missing or invalid api key"}`)
			return
		}
		next.ServeHTTP(w, req)
	})
}

func writeJSON(w http.ResponseWriter, code int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	fmt.Fprint(w, body)
}
