package test_helpers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"
)

// Paths served by MockServer.
const (
	GraphQLPath = "/graphql"
	RefreshPath = "/refresh"
	UploadPath  = "/upload/"
	ImagePath   = "/image/upload/"
)

// MockServer provides a configurable mock of the journal API: the GraphQL
// endpoint, the refresh endpoint, a pre-signed upload target and the image CDN.
type MockServer struct {
	server     *httptest.Server
	handler    *MockHandler
	requestLog []RequestEntry
	logMu      sync.RWMutex
}

// RequestEntry represents a logged request
type RequestEntry struct {
	Method    string
	Path      string
	Operation string
	Variables map[string]any
	Headers   http.Header
	Body      string
	Timestamp time.Time
	Status    int
}

// MockHandler holds the configured responses.
type MockHandler struct {
	operations    map[string][]*MockResponse
	refreshTokens []string
	refreshStatus int
	uploadStatus  int
	images        map[string][]byte
	delay         time.Duration
	callCount     map[string]int
	mu            sync.RWMutex
}

// MockResponse represents a mock HTTP response
type MockResponse struct {
	Status  int
	Body    string
	Headers map[string]string
	Delay   time.Duration
}

// NewMockServer creates a new mock server. Until configured, every operation
// answers with an empty data object, refresh hands out "access-1",
// "access-2", ... and uploads succeed.
func NewMockServer() *MockServer {
	handler := &MockHandler{
		operations:    make(map[string][]*MockResponse),
		refreshStatus: http.StatusOK,
		uploadStatus:  http.StatusOK,
		images:        make(map[string][]byte),
		callCount:     make(map[string]int),
	}

	ms := &MockServer{handler: handler}
	ms.server = httptest.NewServer(ms)
	return ms
}

// URL returns the mock server's base URL
func (ms *MockServer) URL() string {
	return ms.server.URL
}

// GraphQLURL returns the URL of the GraphQL endpoint.
func (ms *MockServer) GraphQLURL() string {
	return ms.server.URL + GraphQLPath
}

// RefreshURL returns the URL of the refresh endpoint.
func (ms *MockServer) RefreshURL() string {
	return ms.server.URL + RefreshPath
}

// UploadURL returns a pre-signed style upload URL for name.
func (ms *MockServer) UploadURL(name string) string {
	return ms.server.URL + UploadPath + name + "?X-Amz-Signature=secret"
}

// ImageBaseURL returns the CDN prefix served by the mock.
func (ms *MockServer) ImageBaseURL() string {
	return ms.server.URL + ImagePath
}

// Close shuts down the mock server
func (ms *MockServer) Close() {
	ms.server.Close()
}

// SetOperation sets the responses for a GraphQL operation name. Responses are
// served in order; the last one repeats.
func (ms *MockServer) SetOperation(name string, responses ...*MockResponse) {
	ms.handler.mu.Lock()
	defer ms.handler.mu.Unlock()
	ms.handler.operations[name] = responses
}

// SetData is shorthand for SetOperation with one DataResponse per payload.
func (ms *MockServer) SetData(name string, payloads ...string) {
	responses := make([]*MockResponse, 0, len(payloads))
	for _, p := range payloads {
		responses = append(responses, DataResponse(p))
	}
	ms.SetOperation(name, responses...)
}

// SetRefreshTokens sets the access tokens handed out by successive refresh
// calls. The last token repeats.
func (ms *MockServer) SetRefreshTokens(tokens ...string) {
	ms.handler.mu.Lock()
	defer ms.handler.mu.Unlock()
	ms.handler.refreshTokens = tokens
}

// SetRefreshStatus sets the status of the refresh endpoint.
func (ms *MockServer) SetRefreshStatus(status int) {
	ms.handler.mu.Lock()
	defer ms.handler.mu.Unlock()
	ms.handler.refreshStatus = status
}

// SetUploadStatus sets the status returned for blob uploads.
func (ms *MockServer) SetUploadStatus(status int) {
	ms.handler.mu.Lock()
	defer ms.handler.mu.Unlock()
	ms.handler.uploadStatus = status
}

// SetImage serves data at the CDN path name.
func (ms *MockServer) SetImage(name string, data []byte) {
	ms.handler.mu.Lock()
	defer ms.handler.mu.Unlock()
	ms.handler.images[name] = data
}

// SetDelay sets a global delay for all responses
func (ms *MockServer) SetDelay(delay time.Duration) {
	ms.handler.mu.Lock()
	defer ms.handler.mu.Unlock()
	ms.handler.delay = delay
}

// GetRequestLog returns a copy of the request log
func (ms *MockServer) GetRequestLog() []RequestEntry {
	ms.logMu.RLock()
	defer ms.logMu.RUnlock()

	logCopy := make([]RequestEntry, len(ms.requestLog))
	copy(logCopy, ms.requestLog)
	return logCopy
}

// Requests returns the logged GraphQL requests for one operation.
func (ms *MockServer) Requests(operation string) []RequestEntry {
	var out []RequestEntry
	for _, e := range ms.GetRequestLog() {
		if e.Operation == operation {
			out = append(out, e)
		}
	}
	return out
}

// GetCallCount returns the number of calls for an operation name, or for
// "refresh" and "upload".
func (ms *MockServer) GetCallCount(key string) int {
	ms.handler.mu.RLock()
	defer ms.handler.mu.RUnlock()
	return ms.handler.callCount[key]
}

// ClearLog clears the request log
func (ms *MockServer) ClearLog() {
	ms.logMu.Lock()
	defer ms.logMu.Unlock()
	ms.requestLog = nil
}

// ServeHTTP implements http.Handler
func (ms *MockServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	entry := RequestEntry{
		Method:    r.Method,
		Path:      r.URL.Path,
		Headers:   r.Header.Clone(),
		Body:      string(body),
		Timestamp: time.Now(),
	}

	ms.handler.mu.RLock()
	delay := ms.handler.delay
	ms.handler.mu.RUnlock()
	if delay > 0 {
		time.Sleep(delay)
	}

	var resp *MockResponse
	switch {
	case r.URL.Path == GraphQLPath && r.Method == http.MethodPost:
		var gql struct {
			OperationName string         `json:"operationName"`
			Variables     map[string]any `json:"variables"`
		}
		if err := json.Unmarshal(body, &gql); err != nil {
			resp = &MockResponse{Status: http.StatusBadRequest, Body: `{"message":"bad request"}`}
			break
		}
		entry.Operation = gql.OperationName
		entry.Variables = gql.Variables
		resp = ms.handler.next(gql.OperationName)
	case r.URL.Path == RefreshPath && r.Method == http.MethodPost:
		entry.Operation = "refresh"
		resp = ms.handler.refresh()
	case strings.HasPrefix(r.URL.Path, UploadPath) && r.Method == http.MethodPut:
		entry.Operation = "upload"
		resp = ms.handler.upload()
	case strings.HasPrefix(r.URL.Path, ImagePath) && r.Method == http.MethodGet:
		entry.Operation = "image"
		resp = ms.handler.image(strings.TrimPrefix(r.URL.Path, ImagePath))
	default:
		resp = &MockResponse{Status: http.StatusNotFound, Body: "not found"}
	}

	if resp.Delay > 0 {
		time.Sleep(resp.Delay)
	}
	for k, v := range resp.Headers {
		w.Header().Set(k, v)
	}
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "application/json")
	}
	status := resp.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	_, _ = w.Write([]byte(resp.Body))

	entry.Status = status
	ms.logMu.Lock()
	ms.requestLog = append(ms.requestLog, entry)
	ms.logMu.Unlock()
}

func (h *MockHandler) next(operation string) *MockResponse {
	h.mu.Lock()
	defer h.mu.Unlock()

	n := h.callCount[operation]
	h.callCount[operation] = n + 1

	responses := h.operations[operation]
	if len(responses) == 0 {
		return DataResponse(`{}`)
	}
	if n >= len(responses) {
		n = len(responses) - 1
	}
	return responses[n]
}

func (h *MockHandler) refresh() *MockResponse {
	h.mu.Lock()
	defer h.mu.Unlock()

	n := h.callCount["refresh"]
	h.callCount["refresh"] = n + 1

	if h.refreshStatus != http.StatusOK {
		return &MockResponse{Status: h.refreshStatus, Body: `{"message":"invalid refresh token"}`}
	}

	token := fmt.Sprintf("access-%d", n+1)
	if len(h.refreshTokens) > 0 {
		token = h.refreshTokens[min(n, len(h.refreshTokens)-1)]
	}
	body, _ := json.Marshal(map[string]string{"accessToken": token})
	return &MockResponse{Status: http.StatusOK, Body: string(body)}
}

func (h *MockHandler) upload() *MockResponse {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.callCount["upload"]++
	if h.uploadStatus < 200 || h.uploadStatus >= 300 {
		return &MockResponse{Status: h.uploadStatus, Body: "<Error><Code>InternalError</Code></Error>", Headers: map[string]string{"Content-Type": "application/xml"}}
	}
	return &MockResponse{Status: h.uploadStatus}
}

func (h *MockHandler) image(name string) *MockResponse {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.callCount["image"]++
	data, ok := h.images[name]
	if !ok {
		return &MockResponse{Status: http.StatusNotFound, Body: "not found"}
	}
	return &MockResponse{Status: http.StatusOK, Body: string(data), Headers: map[string]string{"Content-Type": "image/jpeg"}}
}

// DataResponse wraps a data payload in a GraphQL response body.
func DataResponse(data string) *MockResponse {
	return &MockResponse{Status: http.StatusOK, Body: `{"data":` + data + `}`}
}

// ErrorResponse returns a 200 GraphQL response carrying one error.
func ErrorResponse(message string) *MockResponse {
	body, _ := json.Marshal(map[string]any{
		"data":   nil,
		"errors": []map[string]any{{"message": message}},
	})
	return &MockResponse{Status: http.StatusOK, Body: string(body)}
}

// ExpiredResponse returns the server's expired-token error.
func ExpiredResponse() *MockResponse {
	return ErrorResponse("Token expired at 2024-01-01T00:00:00.000Z")
}

// SuccessResponse returns a mutation envelope {"<field>":{"success":<ok>}}.
func SuccessResponse(field string, ok bool) *MockResponse {
	return DataResponse(fmt.Sprintf(`{%q:{"success":%t}}`, field, ok))
}
