// Package testutil provides testing utilities for the iRacing data client.
package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"
)

// MockResponse defines the behavior of a mocked endpoint response.
type MockResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
	Delay      time.Duration
}

// MockDataAPI is a configurable mock of the members service for testing.
// It serves the /auth handshake plus any configured data endpoints, and
// stamps rate-limit headers on every response.
type MockDataAPI struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]http.HandlerFunc

	// Tracking
	RequestCount int
	LoginCount   int
	PathCounts   map[string]int
}

// NewMockDataAPI creates a mock server whose /auth endpoint accepts any
// credentials.
func NewMockDataAPI() *MockDataAPI {
	mock := &MockDataAPI{
		handlers:   make(map[string]http.HandlerFunc),
		PathCounts: make(map[string]int),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.RequestCount++
		mock.PathCounts[r.URL.Path]++
		if r.URL.Path == "/auth" {
			mock.LoginCount++
		}
		mock.mu.Unlock()

		mock.mu.RLock()
		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.RUnlock()

		if exists {
			handler(w, r)
			return
		}

		mock.defaultHandler(w, r)
	}))

	return mock
}

// URL returns the mock server URL.
func (m *MockDataAPI) URL() string {
	return m.server.URL
}

// AuthURL returns the mock login endpoint.
func (m *MockDataAPI) AuthURL() string {
	return m.server.URL + "/auth"
}

// Close shuts down the mock server.
func (m *MockDataAPI) Close() {
	m.server.Close()
}

// Reset clears all tracking counters.
func (m *MockDataAPI) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestCount = 0
	m.LoginCount = 0
	m.PathCounts = make(map[string]int)
}

// SetHandler sets a custom handler for a specific path.
func (m *MockDataAPI) SetHandler(path string, handler http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetResponse configures a fixed response for a path.
func (m *MockDataAPI) SetResponse(path string, resp MockResponse) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		if resp.Delay > 0 {
			time.Sleep(resp.Delay)
		}

		for key, value := range resp.Headers {
			w.Header().Set(key, value)
		}

		w.WriteHeader(resp.StatusCode)
		if resp.Body != "" {
			w.Write([]byte(resp.Body))
		}
	})
}

// SetResponseSequence serves one response per request to a path, in order,
// repeating the last response once the sequence is exhausted.
func (m *MockDataAPI) SetResponseSequence(path string, responses []MockResponse) {
	var mu sync.Mutex
	next := 0

	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		resp := responses[next]
		if next < len(responses)-1 {
			next++
		}
		mu.Unlock()

		for key, value := range resp.Headers {
			w.Header().Set(key, value)
		}
		w.WriteHeader(resp.StatusCode)
		if resp.Body != "" {
			w.Write([]byte(resp.Body))
		}
	})
}

// SetChunkedResource wires a full chunked result set: the endpoint answers
// with a link, the link answers with a chunk manifest, and each chunk file
// serves its JSON fragment.
func (m *MockDataAPI) SetChunkedResource(endpoint string, chunkBodies []string) {
	manifestPath := "/cache" + endpoint + "/manifest"

	names := ""
	for i, body := range chunkBodies {
		name := fmt.Sprintf("chunk_%d.json", i)
		if i > 0 {
			names += ","
		}
		names += fmt.Sprintf("%q", name)
		m.SetResponse("/chunks/"+name, NewJSONResponse(body))
	}

	manifest := fmt.Sprintf(
		`{"chunk_info": {"base_download_url": "%s/chunks/", "chunk_file_names": [%s]}}`,
		m.server.URL, names)

	m.SetResponse(endpoint, NewLinkResponse(m.server.URL+manifestPath))
	m.SetResponse(manifestPath, NewJSONResponse(manifest))
}

// GetRequestCount returns the number of requests made to the server.
func (m *MockDataAPI) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.RequestCount
}

// GetLoginCount returns the number of /auth handshakes seen.
func (m *MockDataAPI) GetLoginCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.LoginCount
}

// GetPathCount returns the number of requests made to one path.
func (m *MockDataAPI) GetPathCount(path string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.PathCounts[path]
}

// defaultHandler serves the /auth handshake and a generic 200 elsewhere.
func (m *MockDataAPI) defaultHandler(w http.ResponseWriter, r *http.Request) {
	setRateLimitHeaders(w, 239, 240, 60)
	w.Header().Set("Content-Type", "application/json")

	if r.URL.Path == "/auth" {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"authcode": "mock-authcode", "custId": 12345}`))
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}

func setRateLimitHeaders(w http.ResponseWriter, remaining, limit, resetIn int) {
	w.Header().Set("x-ratelimit-remaining", strconv.Itoa(remaining))
	w.Header().Set("x-ratelimit-limit", strconv.Itoa(limit))
	w.Header().Set("x-ratelimit-reset", strconv.FormatInt(time.Now().Add(time.Duration(resetIn)*time.Second).Unix(), 10))
}

// NewJSONResponse creates a 200 response with a JSON body and rate-limit
// headers.
func NewJSONResponse(body string) MockResponse {
	return MockResponse{
		StatusCode: http.StatusOK,
		Body:       body,
		Headers: map[string]string{
			"Content-Type":          "application/json",
			"x-ratelimit-remaining": "239",
			"x-ratelimit-limit":     "240",
			"x-ratelimit-reset":     strconv.FormatInt(time.Now().Add(time.Minute).Unix(), 10),
		},
	}
}

// NewLinkResponse creates a 200 response carrying a link indirection.
func NewLinkResponse(link string) MockResponse {
	return NewJSONResponse(fmt.Sprintf(`{"link": %q, "expires": %q}`,
		link, time.Now().Add(time.Minute).Format(time.RFC3339)))
}

// NewCSVResponse creates a 200 response with a text/csv body.
func NewCSVResponse(body string) MockResponse {
	return MockResponse{
		StatusCode: http.StatusOK,
		Body:       body,
		Headers: map[string]string{
			"Content-Type":          "text/csv",
			"x-ratelimit-remaining": "239",
			"x-ratelimit-limit":     "240",
			"x-ratelimit-reset":     strconv.FormatInt(time.Now().Add(time.Minute).Unix(), 10),
		},
	}
}

// NewRateLimitedResponse creates a 429 whose reset header points resetIn
// from now.
func NewRateLimitedResponse(resetIn time.Duration) MockResponse {
	return MockResponse{
		StatusCode: http.StatusTooManyRequests,
		Body:       `{"error": "Rate limit exceeded"}`,
		Headers: map[string]string{
			"Content-Type":          "application/json",
			"x-ratelimit-remaining": "0",
			"x-ratelimit-limit":     "240",
			"x-ratelimit-reset":     strconv.FormatInt(time.Now().Add(resetIn).Unix(), 10),
		},
	}
}

// NewStatusResponse creates a bare response with the given status code.
func NewStatusResponse(code int) MockResponse {
	return MockResponse{
		StatusCode: code,
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}
}
