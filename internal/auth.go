package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/jamesprial/go-lapse-api-wrapper/pkg/errors"
)

// Refresher exchanges a long-lived refresh token for an access token.
type Refresher struct {
	client       *http.Client
	refreshURL   *url.URL
	refreshToken string
}

// NewRefresher creates a new refresher for the given endpoint and token.
func NewRefresher(httpClient *http.Client, refreshURL, refreshToken string) (*Refresher, error) {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	parsedURL, err := url.Parse(refreshURL)
	if err != nil {
		return nil, &errors.ConfigError{Field: "RefreshURL", Message: err.Error()}
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, &errors.ConfigError{Field: "RefreshURL", Message: "must be an absolute URL"}
	}
	if refreshToken == "" {
		return nil, &errors.ConfigError{Field: "RefreshToken", Message: "is required"}
	}

	return &Refresher{
		client:       httpClient,
		refreshURL:   parsedURL,
		refreshToken: refreshToken,
	}, nil
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type refreshResponse struct {
	AccessToken string `json:"accessToken"`
}

// Refresh performs the refresh exchange. Any non-200 response is an
// AuthTokenError with code AUTH_REJECTED.
func (r *Refresher) Refresh(ctx context.Context) (string, error) {
	payload, err := json.Marshal(refreshRequest{RefreshToken: r.refreshToken})
	if err != nil {
		return "", &errors.AuthTokenError{Err: fmt.Errorf("failed to encode refresh request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.refreshURL.String(), bytes.NewReader(payload))
	if err != nil {
		return "", &errors.AuthTokenError{Err: fmt.Errorf("failed to create refresh request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", &errors.TransportError{Operation: "Refresh", URL: r.refreshURL.String(), Err: err}
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	if err != nil {
		return "", &errors.TransportError{
			Operation:  "Refresh",
			URL:        r.refreshURL.String(),
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("failed to read response body: %w", err),
		}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &errors.AuthTokenError{
			Code:       errors.CodeAuthRejected,
			StatusCode: resp.StatusCode,
			Message:    "invalid refresh token",
			Body:       string(bodyBytes),
		}
	}

	var tokenResp refreshResponse
	if err := json.Unmarshal(bodyBytes, &tokenResp); err != nil {
		return "", &errors.AuthTokenError{
			StatusCode: resp.StatusCode,
			Body:       string(bodyBytes),
			Err:        fmt.Errorf("failed to unmarshal refresh response: %w", err),
		}
	}

	if tokenResp.AccessToken == "" {
		return "", &errors.AuthTokenError{
			StatusCode: resp.StatusCode,
			Body:       string(bodyBytes),
			Err:        fmt.Errorf("access token was empty in response"),
		}
	}

	return tokenResp.AccessToken, nil
}

// TokenExpiry returns the exp claim of an access token without verifying its
// signature. ok is false when the token is not a JWT or carries no exp.
func TokenExpiry(token string) (exp time.Time, ok bool) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}
	date, err := parsed.Claims.GetExpirationTime()
	if err != nil || date == nil {
		return time.Time{}, false
	}
	return date.Time, true
}
