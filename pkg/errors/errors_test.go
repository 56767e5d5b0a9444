package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestConfigError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      ConfigError
		contains []string
	}{
		{
			name:     "with field and message",
			err:      ConfigError{Field: "RefreshToken", Message: "cannot be empty"},
			contains: []string{"config error", "RefreshToken", "cannot be empty"},
		},
		{
			name:     "only message",
			err:      ConfigError{Message: "invalid configuration"},
			contains: []string{"config error", "invalid configuration"},
		},
		{
			name:     "empty error",
			err:      ConfigError{},
			contains: []string{"config error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.err.Error()
			for _, want := range tt.contains {
				if !strings.Contains(result, want) {
					t.Errorf("ConfigError.Error() = %q, want to contain %q", result, want)
				}
			}
		})
	}
}

func TestTransportError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      TransportError
		contains []string
	}{
		{
			name: "full error with all fields",
			err: TransportError{
				Operation:  "CurrentUserGraphQLQuery",
				URL:        "https://example.test/graphql",
				StatusCode: 502,
				Body:       "bad gateway",
				Err:        errors.New("upstream"),
			},
			contains: []string{"transport error", "CurrentUserGraphQLQuery", "example.test", "502", "bad gateway", "upstream"},
		},
		{
			name:     "only status",
			err:      TransportError{StatusCode: 500},
			contains: []string{"transport error", "status code 500"},
		},
		{
			name:     "empty",
			err:      TransportError{},
			contains: []string{"transport error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.err.Error()
			for _, want := range tt.contains {
				if !strings.Contains(result, want) {
					t.Errorf("TransportError.Error() = %q, want to contain %q", result, want)
				}
			}
		})
	}
}

func TestAuthTokenError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      AuthTokenError
		contains []string
	}{
		{
			name: "rejected refresh",
			err: AuthTokenError{
				Code:       CodeAuthRejected,
				StatusCode: 401,
				Message:    "invalid refresh token",
				Body:       `{"error":"nope"}`,
			},
			contains: []string{"auth token error", "401", "invalid refresh token", "nope"},
		},
		{
			name:     "empty",
			err:      AuthTokenError{},
			contains: []string{"auth token error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.err.Error()
			for _, want := range tt.contains {
				if !strings.Contains(result, want) {
					t.Errorf("AuthTokenError.Error() = %q, want to contain %q", result, want)
				}
			}
		})
	}
}

func TestSimpleErrors_Error(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"operation failed", &OperationFailedError{Operation: "SendKudosGraphQLMutation"}, "SendKudosGraphQLMutation"},
		{"media identity", &MediaIdentityError{Kind: "snap"}, "snap"},
		{"time format", &TimeFormatError{Field: "takenAt", Value: "yesterday", Err: errors.New("bad")}, "takenAt"},
		{"user not found", &UserNotFoundError{Username: "alice"}, `"alice"`},
		{"unknown server", &UnknownServerError{Message: "boom"}, "boom"},
		{"expired", &AuthTokenExpiredError{Message: "Token expired at 2024-01-01T00:00:00Z"}, "Token expired at"},
		{"validation", &ValidationError{Field: "Quality", Message: "must be between 1 and 100"}, "Quality"},
		{"state", &StateError{Operation: "SendKudos", Message: "client not connected"}, "SendKudos"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); !strings.Contains(got, tt.want) {
				t.Errorf("Error() = %q, want to contain %q", got, tt.want)
			}
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	base := errors.New("base error")

	tests := []struct {
		name string
		err  error
	}{
		{"TransportError", &TransportError{Err: base}},
		{"AuthTokenError", &AuthTokenError{Err: base}},
		{"TimeFormatError", &TimeFormatError{Err: base}},
		{"ParseError", &ParseError{Err: base}},
		{"StateError", &StateError{Message: "client not connected", Err: base}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, base) {
				t.Errorf("errors.Is(%T, base) = false, want true", tt.err)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"nil", nil, CodeUnknown},
		{"expired", &AuthTokenExpiredError{Message: "Token expired at x"}, CodeAuthExpired},
		{"wrapped expired", fmt.Errorf("call: %w", &AuthTokenExpiredError{}), CodeAuthExpired},
		{"missing", &AuthTokenError{Code: CodeAuthMissing}, CodeAuthMissing},
		{"malformed", &AuthTokenError{Code: CodeAuthMalformed}, CodeAuthMalformed},
		{"auth without code", &AuthTokenError{}, CodeUnknown},
		{"unknown server", &UnknownServerError{Message: "x"}, CodeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.want {
				t.Errorf("GetCode() = %q, want %q", got, tt.want)
			}
		})
	}

	if IsCode(nil, CodeUnknown) {
		t.Error("IsCode(nil) = true, want false")
	}
	if !IsCode(&AuthTokenExpiredError{}, CodeAuthExpired) {
		t.Error("IsCode(expired, CodeAuthExpired) = false, want true")
	}
}
