package test_helpers

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	lapse "github.com/jamesprial/go-lapse-api-wrapper"
)

// FixedClock is the clock installed on every test client.
var FixedClock = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

// TestClient provides a wrapper around the Lapse client for testing
type TestClient struct {
	*lapse.Client
	mockServer *MockServer
}

// NewTestClient creates a client wired to a fresh mock server. configure may
// adjust the config before the client is built. The server is closed when the
// test ends.
func NewTestClient(tb testing.TB, configure func(*lapse.Config)) *TestClient {
	tb.Helper()

	mockServer := NewMockServer()
	tb.Cleanup(mockServer.Close)

	config := &lapse.Config{
		RefreshToken: "test-refresh-token",
		GraphQLURL:   mockServer.GraphQLURL(),
		RefreshURL:   mockServer.RefreshURL(),
		ImageBaseURL: mockServer.ImageBaseURL(),
		HTTPClient:   &http.Client{Timeout: 5 * time.Second},
		RateLimit:    lapse.RateLimit{RequestsPerMinute: 60000, Burst: 1000},
		Device:       lapse.DeviceOptions{DeviceID: "TEST-DEVICE", Timezone: "UTC"},
		Clock:        func() time.Time { return FixedClock },
	}
	if configure != nil {
		configure(config)
	}

	client, err := lapse.NewClient(config)
	if err != nil {
		tb.Fatalf("failed to create lapse client: %v", err)
	}

	return &TestClient{
		Client:     client,
		mockServer: mockServer,
	}
}

// MockServer returns the underlying mock server
func (tc *TestClient) MockServer() *MockServer {
	return tc.mockServer
}

// Reset resets the mock server state
func (tc *TestClient) Reset() {
	tc.mockServer.ClearLog()
	tc.mockServer.handler.mu.Lock()
	tc.mockServer.handler.callCount = make(map[string]int)
	tc.mockServer.handler.mu.Unlock()
}

// AssertCallCount asserts how many times an operation was served.
func (tc *TestClient) AssertCallCount(key string, expected int) error {
	if got := tc.mockServer.GetCallCount(key); got != expected {
		return fmt.Errorf("expected %d calls to %s, got %d", expected, key, got)
	}
	return nil
}

// RunConcurrent calls fn from n goroutines at once and returns their errors
// indexed by goroutine.
func RunConcurrent(n int, fn func(i int) error) []error {
	errs := make([]error, n)
	start := make(chan struct{})
	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(index int) {
			defer wg.Done()
			<-start
			errs[index] = fn(index)
		}(i)
	}

	close(start)
	wg.Wait()
	return errs
}

// AssertErrorContains asserts that an error contains specific text
func AssertErrorContains(err error, expected string) error {
	if err == nil {
		return fmt.Errorf("expected error containing '%s', got nil", expected)
	}
	if !strings.Contains(err.Error(), expected) {
		return fmt.Errorf("expected error containing '%s', got '%s'", expected, err.Error())
	}
	return nil
}
