package internal

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jamesprial/go-lapse-api-wrapper/pkg/errors"
)

// Sender dispatches a rendered operation with an access token.
type Sender interface {
	Send(ctx context.Context, op Operation, token string) (json.RawMessage, error)
}

// TokenSource obtains a fresh access token.
type TokenSource interface {
	Refresh(ctx context.Context) (string, error)
}

// Session owns the current access token and wraps every Send with the
// refresh-once-and-retry-once policy for expired tokens.
//
// The token field is guarded, but the refresh-and-retry sequence is not
// serialised: two goroutines hitting an expired token concurrently will each
// refresh. Callers that fan out requests should Connect first.
type Session struct {
	sender    Sender
	refresher TokenSource
	logger    *slog.Logger

	mu        sync.RWMutex
	token     string
	expiresAt time.Time

	refreshes atomic.Int64

	connMu   sync.Mutex
	inflight chan struct{} // non-nil while a connect attempt runs
	ready    chan struct{} // closed once the connect result is final
	initErr  error
}

// NewSession creates a session. No token is fetched until Connect.
func NewSession(sender Sender, refresher TokenSource, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Session{
		sender:    sender,
		refresher: refresher,
		logger:    logger,
		ready:     make(chan struct{}),
	}
}

// Connect performs the initial refresh. Concurrent callers wait for and share
// the running attempt, and its result is final for every later call. An
// attempt that fails because its own caller's context ended is not kept; the
// next caller starts a new one.
func (s *Session) Connect(ctx context.Context) error {
	for {
		s.connMu.Lock()
		select {
		case <-s.ready:
			s.connMu.Unlock()
			return s.initErr
		default:
		}

		if s.inflight == nil {
			attempt := make(chan struct{})
			s.inflight = attempt
			s.connMu.Unlock()
			return s.connect(ctx, attempt)
		}

		attempt := s.inflight
		s.connMu.Unlock()
		select {
		case <-attempt:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (s *Session) connect(ctx context.Context, attempt chan struct{}) error {
	err := s.Refresh(ctx)

	s.connMu.Lock()
	s.inflight = nil
	if err != nil && ctx.Err() != nil {
		s.logger.Debug("connect abandoned by caller, not kept", "error", err)
	} else {
		s.initErr = err
		close(s.ready)
	}
	s.connMu.Unlock()

	close(attempt)
	return err
}

// IsConnected reports whether the initial refresh has completed successfully.
func (s *Session) IsConnected() bool {
	select {
	case <-s.ready:
		return s.initErr == nil
	default:
		return false
	}
}

// Refresh exchanges the refresh token and stores the new access token.
func (s *Session) Refresh(ctx context.Context) error {
	token, err := s.refresher.Refresh(ctx)
	if err != nil {
		return err
	}

	exp, ok := TokenExpiry(token)

	s.mu.Lock()
	s.token = token
	s.expiresAt = exp
	s.mu.Unlock()

	n := s.refreshes.Add(1)
	if ok {
		s.logger.Debug("access token refreshed", "refreshes", n, "expires_at", exp)
	} else {
		s.logger.Debug("access token refreshed", "refreshes", n)
	}
	return nil
}

// Token returns the current access token.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// ExpiresAt returns the exp claim of the current token, or the zero time.
func (s *Session) ExpiresAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.expiresAt
}

// Refreshes returns how many successful refreshes this session has made.
func (s *Session) Refreshes() int64 {
	return s.refreshes.Load()
}

// Execute sends op with the current token. On an expired-token error it
// refreshes once and retries once; a second expiry is returned to the caller.
// Every other error is returned immediately.
func (s *Session) Execute(ctx context.Context, op Operation) (json.RawMessage, error) {
	data, err := s.sender.Send(ctx, op, s.Token())
	if err == nil {
		return data, nil
	}

	var expired *errors.AuthTokenExpiredError
	if !stderrors.As(err, &expired) {
		return nil, err
	}

	s.logger.Debug("access token expired, refreshing", "operation", op.Name, "message", expired.Message)
	if err := s.Refresh(ctx); err != nil {
		return nil, err
	}

	return s.sender.Send(ctx, op, s.Token())
}
