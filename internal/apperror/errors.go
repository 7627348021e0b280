// Package apperror defines the failure kinds a lookup can end in and the
// HTTP status and client-facing detail attached to each of them.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Failure kinds. Test for them with errors.Is.
var (
	ErrInvalidFormat       = errors.New("invalid IP address format")
	ErrCannotDetermineIP   = errors.New("cannot determine client IP")
	ErrNotFound            = errors.New("IP address not found")
	ErrUpstream            = errors.New("upstream returned an error status")
	ErrMalformedResponse   = errors.New("malformed upstream response")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

// Error is a classified failure: Kind says what went wrong, Status and
// Detail say how it is reported to the client, Cause keeps the original error
type Error struct {
	Kind   error
	Status int
	Detail string
	Cause  error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Detail, e.Cause)
	}
	return e.Detail
}

// Unwrap exposes the cause to errors.Is/As
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is this error's kind
func (e *Error) Is(target error) bool {
	return target == e.Kind
}

// InvalidFormat is returned when a string is not an IPv4 or IPv6 address
func InvalidFormat() *Error {
	return &Error{Kind: ErrInvalidFormat, Status: http.StatusBadRequest, Detail: "Invalid IP address format"}
}

// CannotDetermineIP is returned when neither a forwarding header nor a peer
// address identifies the caller
func CannotDetermineIP() *Error {
	return &Error{Kind: ErrCannotDetermineIP, Status: http.StatusBadRequest, Detail: "Cannot determine client IP"}
}

// NotFound is returned when the upstream answers with a non-success status.
// An empty message falls back to the standard status text.
func NotFound(message string) *Error {
	if message == "" {
		message = http.StatusText(http.StatusNotFound)
	}
	return &Error{Kind: ErrNotFound, Status: http.StatusNotFound, Detail: message}
}

// Upstream is returned for a non-2xx upstream HTTP status. Server errors are
// mirrored; anything else is reported as 502 Bad Gateway.
func Upstream(upstreamStatus int) *Error {
	status := upstreamStatus
	if status < 500 || status > 599 {
		status = http.StatusBadGateway
	}
	return &Error{
		Kind:   ErrUpstream,
		Status: status,
		Detail: fmt.Sprintf("Upstream returned status %d %s", upstreamStatus, http.StatusText(upstreamStatus)),
	}
}

// MalformedResponse is returned when the upstream body is not valid JSON
func MalformedResponse(cause error) *Error {
	return &Error{
		Kind:   ErrMalformedResponse,
		Status: http.StatusInternalServerError,
		Detail: "Failed to parse JSON response",
		Cause:  cause,
	}
}

// IncompleteResponse is returned when the upstream JSON parses but lacks
// required fields
func IncompleteResponse(fields []string, cause error) *Error {
	return &Error{
		Kind:   ErrMalformedResponse,
		Status: http.StatusInternalServerError,
		Detail: "Upstream response is missing required fields: " + strings.Join(fields, ", "),
		Cause:  cause,
	}
}

// UpstreamUnavailable is returned for connection, DNS and timeout failures.
// The transport error text is part of the detail.
func UpstreamUnavailable(cause error) *Error {
	return &Error{
		Kind:   ErrUpstreamUnavailable,
		Status: http.StatusServiceUnavailable,
		Detail: fmt.Sprintf("Request error: %v", cause),
		Cause:  cause,
	}
}

// StatusAndDetail resolves any error to the status code and message that
// should be sent to the client. Unclassified errors become a generic 500.
func StatusAndDetail(err error) (int, string) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Status, appErr.Detail
	}
	return http.StatusInternalServerError, "Internal server error"
}
