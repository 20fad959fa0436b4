package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failed API call.
type Kind int

const (
	// KindNetwork means no usable response was received.
	KindNetwork Kind = iota
	// KindUnauthorized is a 401 response.
	KindUnauthorized
	// KindValidation is any other 4xx response.
	KindValidation
	// KindServer is a 5xx response.
	KindServer
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindUnauthorized:
		return "unauthorized"
	case KindValidation:
		return "validation"
	case KindServer:
		return "server"
	}
	return "unknown"
}

// Error is the normalized error for all non-2xx responses and transport
// failures. Message carries the server-provided error string when the
// response body had one.
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
	cause      error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.StatusCode != 0 {
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	}
	return "request failed"
}

func (e *Error) Unwrap() error {
	return e.cause
}

// IsUnauthorized reports whether err is an API error with a 401 status.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindUnauthorized
}

// kindForStatus maps an HTTP status code to an error kind.
func kindForStatus(code int) Kind {
	switch {
	case code == http.StatusUnauthorized:
		return KindUnauthorized
	case code >= 400 && code < 500:
		return KindValidation
	default:
		return KindServer
	}
}
