package helpers

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// ChaosMode defines the type of chaos to inject
type ChaosMode int

const (
	// ChaosNone passes requests through untouched
	ChaosNone ChaosMode = iota

	// ChaosConnectionReset fails before any response is received
	ChaosConnectionReset

	// ChaosPartialRead truncates the response body and fails mid-read
	ChaosPartialRead

	// ChaosHang blocks until the request context is done
	ChaosHang

	// ChaosEmptyBody answers 200 with no body
	ChaosEmptyBody

	// ChaosNotJSON answers 200 with a body that is not JSON
	ChaosNotJSON

	// ChaosHTMLGateway answers 502 with an HTML gateway page
	ChaosHTMLGateway

	// ChaosCustom answers with CustomStatus and CustomBody
	ChaosCustom

	// ChaosIntermittent applies a random failure mode at FailureRate
	ChaosIntermittent
)

// ChaosConfig configures the chaos transport behavior
type ChaosConfig struct {
	Mode ChaosMode

	// FailureRate is the probability of failure (0.0 to 1.0)
	// Only used for ChaosIntermittent mode
	FailureRate float64

	// Delay is applied before every request
	Delay time.Duration

	// PartialReadBytes is how many bytes are delivered before the read fails
	PartialReadBytes int

	CustomStatus int
	CustomBody   string
	CustomHeader http.Header

	// Paths limits injection to requests whose path has one of these
	// prefixes; empty means every request
	Paths []string

	// Seed makes ChaosIntermittent reproducible; zero picks one from the clock
	Seed uint64
}

// ChaosTransport is an http.RoundTripper that injects failures in front of a
// real transport.
type ChaosTransport struct {
	base   http.RoundTripper
	config ChaosConfig

	requests atomic.Int64
	injected atomic.Int64

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewChaosTransport wraps base, or http.DefaultTransport when base is nil.
func NewChaosTransport(base http.RoundTripper, config ChaosConfig) *ChaosTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	seed := config.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &ChaosTransport{
		base:   base,
		config: config,
		rnd:    rand.New(rand.NewPCG(seed, seed>>1)),
	}
}

// Client returns an http.Client using the transport.
func (c *ChaosTransport) Client() *http.Client {
	return &http.Client{Transport: c, Timeout: 10 * time.Second}
}

// Requests is the number of requests seen.
func (c *ChaosTransport) Requests() int64 {
	return c.requests.Load()
}

// Injected is the number of requests that had a failure injected.
func (c *ChaosTransport) Injected() int64 {
	return c.injected.Load()
}

func (c *ChaosTransport) pickMode(req *http.Request) ChaosMode {
	if len(c.config.Paths) > 0 {
		matched := false
		for _, prefix := range c.config.Paths {
			if strings.HasPrefix(req.URL.Path, prefix) {
				matched = true
				break
			}
		}
		if !matched {
			return ChaosNone
		}
	}
	if c.config.Mode != ChaosIntermittent {
		return c.config.Mode
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.rnd.Float64() >= c.config.FailureRate {
		return ChaosNone
	}
	modes := []ChaosMode{
		ChaosConnectionReset,
		ChaosPartialRead,
		ChaosEmptyBody,
		ChaosNotJSON,
		ChaosHTMLGateway,
	}
	return modes[c.rnd.IntN(len(modes))]
}

// RoundTrip implements http.RoundTripper
func (c *ChaosTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	c.requests.Add(1)

	if c.config.Delay > 0 {
		select {
		case <-time.After(c.config.Delay):
		case <-req.Context().Done():
			return nil, req.Context().Err()
		}
	}

	mode := c.pickMode(req)
	if mode != ChaosNone {
		c.injected.Add(1)
	}

	switch mode {
	case ChaosConnectionReset:
		return nil, errors.New("connection reset by peer")

	case ChaosHang:
		<-req.Context().Done()
		return nil, req.Context().Err()

	case ChaosPartialRead:
		resp, err := c.base.RoundTrip(req)
		if err != nil {
			return nil, err
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, err
		}
		n := c.config.PartialReadBytes
		if n <= 0 || n >= len(body) {
			n = len(body) / 2
		}
		resp.Body = &partialReadCloser{reader: bytes.NewReader(body[:n])}
		resp.ContentLength = -1
		return resp, nil

	case ChaosEmptyBody:
		return respond(req, http.StatusOK, "", nil), nil

	case ChaosNotJSON:
		return respond(req, http.StatusOK, "This is not valid JSON\x00\x01\x02", nil), nil

	case ChaosHTMLGateway:
		return respond(req, http.StatusBadGateway, "<html><body><h1>502 Bad Gateway</h1></body></html>", http.Header{"Content-Type": {"text/html"}}), nil

	case ChaosCustom:
		return respond(req, c.config.CustomStatus, c.config.CustomBody, c.config.CustomHeader), nil

	default:
		return c.base.RoundTrip(req)
	}
}

func respond(req *http.Request, status int, body string, header http.Header) *http.Response {
	if header == nil {
		header = make(http.Header)
	}
	return &http.Response{
		Status:        fmt.Sprintf("%d %s", status, http.StatusText(status)),
		StatusCode:    status,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Body:          io.NopCloser(strings.NewReader(body)),
		ContentLength: int64(len(body)),
		Request:       req,
		Header:        header,
	}
}

// partialReadCloser delivers what it has and then fails like a dropped connection
type partialReadCloser struct {
	reader io.Reader
}

func (p *partialReadCloser) Read(buf []byte) (int, error) {
	n, err := p.reader.Read(buf)
	if err == io.EOF {
		return n, errors.New("connection reset during read")
	}
	return n, err
}

func (p *partialReadCloser) Close() error {
	return nil
}
