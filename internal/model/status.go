package model

import "time"

// FailureKind classifies why a status check did not report connected.
type FailureKind int

const (
	FailureNone FailureKind = iota
	FailureHTTP
	FailureTransport
)

// String returns a short name for logging.
func (k FailureKind) String() string {
	switch k {
	case FailureHTTP:
		return "http"
	case FailureTransport:
		return "transport"
	default:
		return "none"
	}
}

// ConnectionStatus is the result of a single backend health check.
type ConnectionStatus struct {
	// Connected reports whether the backend answered with a 2xx status.
	Connected bool

	// Label is a human-readable description of the status.
	Label string

	// Failure is FailureNone when Connected is true.
	Failure FailureKind

	// HTTPStatus is the response code, or 0 when no response arrived.
	HTTPStatus int

	// Telegram mirrors telegram_connected from the status body when present.
	Telegram *bool

	// CheckedAt is when the check completed.
	CheckedAt time.Time
}
