package elevenlabs

import (
	"errors"
	"fmt"
)

// ErrEmptyText is returned when Synthesize is called without text.
var ErrEmptyText = errors.New("text cannot be empty")

// Kind classifies a failed provider call.
type Kind int

const (
	// KindUnknown covers failures that are neither HTTP nor network related,
	// such as an undecodable response body.
	KindUnknown Kind = iota
	// KindCredential means the provider rejected the API key (HTTP 401).
	KindCredential
	// KindProvider is any other non-2xx provider response.
	KindProvider
	// KindTransport is a network failure or timeout reaching the provider.
	KindTransport
)

func (k Kind) String() string {
	switch k {
	case KindCredential:
		return "credential"
	case KindProvider:
		return "provider"
	case KindTransport:
		return "transport"
	default:
		return "unknown"
	}
}

// Error is the single failure type returned by Client. StatusCode and Body are
// only set for HTTP failures and are meant for logs, never for end users.
type Error struct {
	Op         string
	Kind       Kind
	StatusCode int
	Body       string
	Err        error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("elevenlabs %s: %s error", e.Op, e.Kind)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf extracts the failure kind from err, defaulting to KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
