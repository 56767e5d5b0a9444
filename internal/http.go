package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/jamesprial/go-lapse-api-wrapper/pkg/errors"
)

// BlobUserAgent is the User-Agent sent with blob uploads. The storage
// endpoint only accepts uploads that look like they come from the iOS app.
const BlobUserAgent = "Lapse/20651 CFNetwork/1408.0.4 Darwin/22.5.0"

// Client sends GraphQL operations to the journal endpoint and raw bytes to
// pre-signed storage URLs.
type Client struct {
	client     *http.Client
	GraphQLURL *url.URL
	headers    http.Header
	logger     *slog.Logger

	maxLogBodyBytes int

	limiter        *rate.Limiter
	mu             sync.Mutex
	forceWaitUntil time.Time
}

// RateLimitConfig controls how requests are throttled before reaching Lapse.
type RateLimitConfig struct {
	// RequestsPerMinute caps steady-state throughput. Defaults to 60 if zero.
	RequestsPerMinute float64
	// Burst allows short spikes above the steady-state rate. Defaults to 10 if zero.
	Burst int
}

const (
	DefaultRequestsPerMinute = 60
	DefaultRateLimitBurst    = 10
	SecondsPerMinute         = 60.0
	ParseFloatBitSize        = 64

	defaultLogBodyBytes = 500
	maxErrorBodyBytes   = 64 << 10

	// MaxRetryAfter caps how long a single Retry-After header can pause requests.
	MaxRetryAfter = 5 * time.Minute
)

// NewClient returns a new transport. headers is the device header table sent
// with every GraphQL request. If a nil httpClient is provided,
// http.DefaultClient will be used.
func NewClient(httpClient *http.Client, graphqlURL string, headers http.Header, rateCfg *RateLimitConfig, logger *slog.Logger) (*Client, error) {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	parsedURL, err := url.Parse(graphqlURL)
	if err != nil {
		return nil, &errors.ConfigError{Field: "GraphQLURL", Message: err.Error()}
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, &errors.ConfigError{Field: "GraphQLURL", Message: "must be an absolute URL"}
	}

	if rateCfg == nil {
		rateCfg = &RateLimitConfig{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if headers == nil {
		headers = http.Header{}
	}

	c := &Client{
		client:          httpClient,
		GraphQLURL:      parsedURL,
		headers:         headers.Clone(),
		logger:          logger,
		maxLogBodyBytes: defaultLogBodyBytes,
		limiter:         buildLimiter(*rateCfg),
	}

	return c, nil
}

// SetLogBodyLimit sets how many bytes of each response body are included in
// debug logs. Zero or negative restores the default.
func (c *Client) SetLogBodyLimit(n int) {
	if n <= 0 {
		n = defaultLogBodyBytes
	}
	c.maxLogBodyBytes = n
}

// graphqlResponse is the JSON body shape for a GraphQL HTTP response.
type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors"`
}

// newGraphQLRequest builds the POST for op with the device headers, the
// per-operation Apollo headers and the access token.
func (c *Client) newGraphQLRequest(ctx context.Context, op Operation, token string) (*http.Request, error) {
	body, err := json.Marshal(op)
	if err != nil {
		return nil, &errors.TransportError{Operation: op.Name, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.GraphQLURL.String(), bytes.NewReader(body))
	if err != nil {
		return nil, &errors.TransportError{Operation: op.Name, URL: c.GraphQLURL.String(), Err: err}
	}

	for k, v := range c.headers {
		req.Header[k] = append([]string(nil), v...)
	}
	kind := op.Kind
	if kind == "" {
		kind = KindQuery
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Apollo-Operation-Name", op.Name)
	req.Header.Set("X-Apollo-Operation-Type", string(kind))
	req.Header.Set("X-Emb-Path", "/graphql/"+op.Name)
	req.Header.Set("Authorization", token)

	return req, nil
}

// Send posts op to the GraphQL endpoint and returns the raw data object.
//
// A non-2xx status is a TransportError carrying the response body. A 2xx
// response with a non-empty errors array fails with the classified error for
// the first entry.
func (c *Client) Send(ctx context.Context, op Operation, token string) (json.RawMessage, error) {
	req, err := c.newGraphQLRequest(ctx, op, token)
	if err != nil {
		return nil, err
	}

	body, err := c.do(req, op.Name)
	if err != nil {
		return nil, err
	}

	var gql graphqlResponse
	if err := json.Unmarshal(body, &gql); err != nil {
		return nil, &errors.ParseError{Operation: op.Name, Message: "response is not JSON", Err: err}
	}
	if len(gql.Errors) > 0 {
		c.logger.Debug("graphql error", "operation", op.Name, "message", gql.Errors[0].Message, "count", len(gql.Errors))
		return nil, ErrorFor(gql.Errors[0])
	}

	return gql.Data, nil
}

// PutBlob uploads data to a pre-signed storage URL.
func (c *Client) PutBlob(ctx context.Context, uploadURL string, data []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, bytes.NewReader(data))
	if err != nil {
		return &errors.TransportError{Operation: "PutBlob", URL: uploadURL, Err: err}
	}
	req.Header.Set("User-Agent", BlobUserAgent)
	req.ContentLength = int64(len(data))

	_, err = c.do(req, "PutBlob")
	return err
}

// Get fetches a URL without device or auth headers. It is used for CDN images.
func (c *Client) Get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &errors.TransportError{Operation: "Get", URL: rawURL, Err: err}
	}
	return c.do(req, "Get")
}

// do runs req through the rate limiter and returns the body of a 2xx response.
func (c *Client) do(req *http.Request, operation string) ([]byte, error) {
	target := redactURL(req.URL)

	if err := c.waitForRateLimit(req.Context()); err != nil {
		return nil, &errors.TransportError{Operation: operation, URL: target, Err: err}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		// url.Error repeats the full URL, signature included
		if uerr, ok := err.(*url.Error); ok {
			uerr.URL = target
		}
		return nil, &errors.TransportError{Operation: operation, URL: target, Err: err}
	}
	defer resp.Body.Close()

	c.applyRateHeaders(resp)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		c.logger.Debug("request failed", "operation", operation, "status", resp.StatusCode, "body", c.preview(body))
		return nil, &errors.TransportError{
			Operation:  operation,
			URL:        target,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &errors.TransportError{Operation: operation, URL: target, StatusCode: resp.StatusCode, Err: err}
	}

	if c.logger.Enabled(req.Context(), slog.LevelDebug) {
		c.logger.Debug("response", "operation", operation, "status", resp.StatusCode, "bytes", len(body), "body", c.preview(body))
	}

	return body, nil
}

func (c *Client) preview(body []byte) string {
	limit := c.maxLogBodyBytes
	if limit <= 0 {
		limit = defaultLogBodyBytes
	}
	if len(body) <= limit {
		return string(body)
	}
	return string(body[:limit]) + "...(truncated)"
}

// redactURL drops the query string, which carries the signature of
// pre-signed upload URLs.
func redactURL(u *url.URL) string {
	if u == nil {
		return ""
	}
	clean := *u
	clean.RawQuery = ""
	clean.User = nil
	return clean.String()
}

func buildLimiter(cfg RateLimitConfig) *rate.Limiter {
	requestsPerMinute := cfg.RequestsPerMinute
	if requestsPerMinute <= 0 {
		requestsPerMinute = DefaultRequestsPerMinute
	}

	burst := cfg.Burst
	if burst <= 0 {
		burst = DefaultRateLimitBurst
	}

	limitPerSecond := rate.Limit(requestsPerMinute / SecondsPerMinute)
	if limitPerSecond <= 0 {
		limitPerSecond = rate.Limit(1)
	}

	return rate.NewLimiter(limitPerSecond, burst)
}

func (c *Client) waitForRateLimit(ctx context.Context) error {
	if err := c.waitForForcedDelay(ctx); err != nil {
		return err
	}

	if c.limiter == nil {
		return nil
	}

	return c.limiter.Wait(ctx)
}

func (c *Client) waitForForcedDelay(ctx context.Context) error {
	for {
		c.mu.Lock()
		waitUntil := c.forceWaitUntil
		c.mu.Unlock()

		if waitUntil.IsZero() {
			return nil
		}

		now := time.Now()
		if !now.Before(waitUntil) {
			c.clearForcedDelay(waitUntil)
			return nil
		}

		timer := time.NewTimer(waitUntil.Sub(now))
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
			c.clearForcedDelay(waitUntil)
		}
	}
}

func (c *Client) clearForcedDelay(previous time.Time) {
	c.mu.Lock()
	if previous.Equal(c.forceWaitUntil) {
		c.forceWaitUntil = time.Time{}
	}
	c.mu.Unlock()
}

// applyRateHeaders honours Retry-After on any response, including the 429s the
// journal service returns when a device sends too quickly.
func (c *Client) applyRateHeaders(resp *http.Response) {
	retryAfter := resp.Header.Get("Retry-After")
	if retryAfter == "" {
		return
	}
	if seconds, err := strconv.ParseFloat(retryAfter, ParseFloatBitSize); err == nil {
		if seconds > 0 {
			c.deferRequests(time.Duration(math.Min(seconds, MaxRetryAfter.Seconds()) * float64(time.Second)))
		}
		return
	}
	if at, err := http.ParseTime(retryAfter); err == nil {
		c.deferRequests(time.Until(at))
	}
}

func (c *Client) deferRequests(d time.Duration) {
	if d <= 0 {
		return
	}
	d = min(d, MaxRetryAfter)

	until := time.Now().Add(d)

	c.mu.Lock()
	if until.After(c.forceWaitUntil) {
		c.forceWaitUntil = until
	}
	c.mu.Unlock()
}
