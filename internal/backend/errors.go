package backend

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed backend call.
type ErrorKind int

const (
	// KindTransport means no HTTP response was received.
	KindTransport ErrorKind = iota + 1

	// KindStatus means the backend answered with a non-2xx status.
	KindStatus

	// KindDecode means a 2xx response body could not be decoded.
	KindDecode
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Error is returned by every Client call that fails.
type Error struct {
	Kind       ErrorKind
	Method     string
	Path       string
	StatusCode int

	// Detail is the backend's {"detail": ...} message, when present.
	Detail string

	Err error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindStatus:
		if e.Detail != "" {
			return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Detail)
		}
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.StatusCode)
	default:
		return fmt.Sprintf("%s %s: %s error: %v", e.Method, e.Path, e.Kind, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf reports the kind of err, or 0 if err is not an *Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// IsTransport reports whether err is a transport failure.
func IsTransport(err error) bool { return KindOf(err) == KindTransport }

// IsStatus reports whether err is a non-2xx response.
func IsStatus(err error) bool { return KindOf(err) == KindStatus }

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}
