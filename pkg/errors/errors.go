// Package errors defines the error types returned by the Lapse API wrapper.
package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// ErrIteratorDone is returned by an iterator's Next once the server has no
// more items. It ends the stream and is never reported by Err.
var ErrIteratorDone = stderrors.New("iterator done")

// Code is the classified kind of a server-side error payload.
type Code string

const (
	// CodeAuthMissing means the request carried no access token.
	CodeAuthMissing Code = "AUTH_MISSING"
	// CodeAuthMalformed means the access token was not a three-part JWT.
	CodeAuthMalformed Code = "AUTH_MALFORMED"
	// CodeAuthExpired means the access token has expired. It is the only
	// code that the session layer retries.
	CodeAuthExpired Code = "AUTH_EXPIRED"
	// CodeAuthRejected means the refresh endpoint refused the refresh token.
	CodeAuthRejected Code = "AUTH_REJECTED"
	// CodeUnknown covers every message the classifier does not recognise.
	CodeUnknown Code = "UNKNOWN"
)

// joinParts joins error message parts with the specified separator.
func joinParts(parts []string, sep string) string {
	return strings.Join(parts, sep)
}

// ConfigError indicates a problem with the client configuration.
type ConfigError struct {
	// Field contains the name of the configuration field that caused the error
	Field string
	// Message contains the detailed error message
	Message string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config error in field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("config error: %s", e.Message)
}

// ValidationError indicates that request parameters were rejected before any
// network call was made.
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error in field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// StateError indicates an operation was attempted when the client is not ready.
type StateError struct {
	// Operation is the name of the operation that was attempted
	Operation string
	// Message contains the detailed error message
	Message string
	// Err is the failure that left the client unready, such as a rejected refresh
	Err error
}

func (e *StateError) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Operation != "" {
		return fmt.Sprintf("state error during %s: %s", e.Operation, msg)
	}
	return fmt.Sprintf("state error: %s", msg)
}

func (e *StateError) Unwrap() error {
	return e.Err
}

// TransportError indicates a network failure or a non-2xx HTTP response.
// The core never retries these.
type TransportError struct {
	// Operation is the GraphQL operation name, or a label such as "PutBlob"
	Operation string
	// URL is the URL that was being accessed
	URL string
	// StatusCode is the HTTP status code, zero when no response was received
	StatusCode int
	// Body contains the raw response body for diagnostics
	Body string
	// Err contains the underlying error if available
	Err error
}

func (e *TransportError) Error() string {
	var parts []string
	if e.Operation != "" {
		parts = append(parts, "during "+e.Operation)
	}
	if e.URL != "" {
		parts = append(parts, "to "+e.URL)
	}
	head := "transport error"
	if len(parts) > 0 {
		head += " " + joinParts(parts, " ")
	}

	var details []string
	if e.StatusCode > 0 {
		details = append(details, fmt.Sprintf("status code %d", e.StatusCode))
	}
	if e.Body != "" {
		details = append(details, fmt.Sprintf("body: %q", e.Body))
	}
	if e.Err != nil {
		details = append(details, fmt.Sprintf("err: %v", e.Err))
	}
	if len(details) == 0 {
		return head
	}
	return head + ": " + joinParts(details, ", ")
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// AuthTokenError indicates an authentication failure that will not be retried:
// a rejected refresh token, a missing token or a malformed token.
type AuthTokenError struct {
	// Code is the classified kind of the failure
	Code Code
	// StatusCode is the HTTP status code (if from an HTTP response)
	StatusCode int
	// Message contains the detailed error message
	Message string
	// Body contains the raw response body (if available)
	Body string
	// Err contains the underlying error if available
	Err error
}

func (e *AuthTokenError) Error() string {
	var parts []string
	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("status code %d", e.StatusCode))
	}
	if e.Message != "" {
		parts = append(parts, e.Message)
	}
	if e.Body != "" {
		parts = append(parts, fmt.Sprintf("body: %q", e.Body))
	}
	if e.Err != nil {
		parts = append(parts, fmt.Sprintf("err: %v", e.Err))
	}
	if len(parts) == 0 {
		return "auth token error"
	}
	return "auth token error: " + joinParts(parts, ", ")
}

func (e *AuthTokenError) Unwrap() error {
	return e.Err
}

// AuthTokenExpiredError indicates the server rejected the access token as
// expired. The session layer refreshes and retries once on this error; a
// second occurrence reaches the caller.
type AuthTokenExpiredError struct {
	// Message is the raw server message, e.g. "Token expired at ..."
	Message string
}

func (e *AuthTokenExpiredError) Error() string {
	return fmt.Sprintf("auth token expired: %s", e.Message)
}

// OperationFailedError indicates that the server accepted a mutation but
// reported success false, or omitted the success flag.
type OperationFailedError struct {
	Operation string
}

func (e *OperationFailedError) Error() string {
	return fmt.Sprintf("operation %s failed: server did not report success", e.Operation)
}

// MediaIdentityError indicates a media node with neither a filtered nor an
// original content identifier, so no media id could be derived.
type MediaIdentityError struct {
	// Kind is the media variant being constructed (snap, darkroom, album)
	Kind string
}

func (e *MediaIdentityError) Error() string {
	if e.Kind != "" {
		return fmt.Sprintf("media identity error: %s has no filtered or original content id", e.Kind)
	}
	return "media identity error: no filtered or original content id"
}

// TimeFormatError indicates a missing or malformed server timestamp.
type TimeFormatError struct {
	Field string
	Value string
	Err   error
}

func (e *TimeFormatError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("time format error in field %s: %q: %v", e.Field, e.Value, e.Err)
	}
	return fmt.Sprintf("time format error: %q: %v", e.Value, e.Err)
}

func (e *TimeFormatError) Unwrap() error {
	return e.Err
}

// UserNotFoundError indicates that a username search returned no exact match.
type UserNotFoundError struct {
	Username string
}

func (e *UserNotFoundError) Error() string {
	return fmt.Sprintf("user not found: %q", e.Username)
}

// UnknownServerError carries an unclassified server error message.
type UnknownServerError struct {
	Message string
}

func (e *UnknownServerError) Error() string {
	return fmt.Sprintf("unknown server error: %s", e.Message)
}

// ParseError indicates a problem parsing the API response.
type ParseError struct {
	// Operation is the name of the API operation where parsing failed
	Operation string
	// Message contains the detailed error message
	Message string
	// Err contains the underlying error if available
	Err error
}

func (e *ParseError) Error() string {
	// Use Message if available, otherwise use Err.Error()
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}

	if e.Operation != "" {
		return fmt.Sprintf("parse error during %s: %s", e.Operation, msg)
	}
	return fmt.Sprintf("parse error: %s", msg)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// GetCode returns the classified code carried by err, or CodeUnknown.
func GetCode(err error) Code {
	var expired *AuthTokenExpiredError
	if stderrors.As(err, &expired) {
		return CodeAuthExpired
	}
	var authErr *AuthTokenError
	if stderrors.As(err, &authErr) && authErr.Code != "" {
		return authErr.Code
	}
	return CodeUnknown
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}
