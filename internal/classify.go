package internal

import (
	"strings"

	"github.com/jamesprial/go-lapse-api-wrapper/pkg/errors"
)

// Server messages recognised by Classify. The journal service exposes no error
// codes, so these strings are the only signal; keep every match here.
const (
	msgAuthMissing     = "No authentication token provided"
	msgAuthMalformed   = "JWT string does not consist of exactly 3 parts (header, payload, signature)"
	msgAuthExpiredHead = "Token expired at "
)

// GraphQLError is one entry of a GraphQL response's errors array.
type GraphQLError struct {
	Message    string         `json:"message"`
	Path       []any          `json:"path,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

// Classify maps a server error message to its error code.
func Classify(message string) errors.Code {
	switch {
	case message == msgAuthMissing:
		return errors.CodeAuthMissing
	case message == msgAuthMalformed:
		return errors.CodeAuthMalformed
	case strings.HasPrefix(message, msgAuthExpiredHead):
		return errors.CodeAuthExpired
	default:
		return errors.CodeUnknown
	}
}

// ErrorFor converts a server error payload into the matching typed error.
func ErrorFor(e GraphQLError) error {
	switch code := Classify(e.Message); code {
	case errors.CodeAuthExpired:
		return &errors.AuthTokenExpiredError{Message: e.Message}
	case errors.CodeAuthMissing, errors.CodeAuthMalformed:
		return &errors.AuthTokenError{Code: code, Message: e.Message}
	default:
		return &errors.UnknownServerError{Message: e.Message}
	}
}
