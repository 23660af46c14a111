package scaleapi

import (
	"errors"
	"fmt"
)

// ErrorKind classifies an Error.
type ErrorKind int

const (
	// KindInvalidRequest is raised locally for malformed calls or by the
	// server as HTTP 400.
	KindInvalidRequest ErrorKind = iota + 1
	// KindAPI covers every other non-200 response.
	KindAPI
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidRequest:
		return "invalid_request"
	case KindAPI:
		return "api_error"
	default:
		return "unknown"
	}
}

// Sentinel errors for use with errors.Is.
var (
	ErrInvalidRequest = errors.New("scaleapi: invalid request")
	ErrAPI            = errors.New("scaleapi: api error")
)

// Error is returned for every API-level failure. StatusCode is zero when the
// error was raised before any request was sent.
type Error struct {
	Kind       ErrorKind
	Message    string
	StatusCode int
}

func (e *Error) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("<Response [%d]> %s", e.StatusCode, e.Message)
}

// Is lets errors.Is match an *Error against ErrInvalidRequest or ErrAPI.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrInvalidRequest:
		return e.Kind == KindInvalidRequest
	case ErrAPI:
		return e.Kind == KindAPI
	}
	return false
}

// apiErrorResponse is the JSON body the API sends on failure.
type apiErrorResponse struct {
	StatusCode int `json:"status_code"`
	Error      any `json:"error"`
}

// IsInvalidRequest reports whether err is an invalid-request error.
func IsInvalidRequest(err error) bool {
	return hasKind(err, KindInvalidRequest)
}

// IsAPIError reports whether err is a non-400 API error.
func IsAPIError(err error) bool {
	return hasKind(err, KindAPI)
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

func hasKind(err error, kind ErrorKind) bool {
	if err == nil {
		return false
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind == kind
	}
	return false
}

// newInvalidRequestError builds a locally raised invalid-request error.
func newInvalidRequestError(format string, args ...any) *Error {
	return &Error{
		Kind:    KindInvalidRequest,
		Message: fmt.Sprintf(format, args...),
	}
}

// newStatusError maps a non-200 status and its extracted message to an Error.
func newStatusError(statusCode int, message string) *Error {
	kind := KindAPI
	if statusCode == 400 {
		kind = KindInvalidRequest
	}
	return &Error{
		Kind:       kind,
		Message:    message,
		StatusCode: statusCode,
	}
}
