package remote

import (
	"errors"
	"fmt"
)

// ErrPageLimit is returned when a collection is still yielding records after the
// configured maximum number of pages.
var ErrPageLimit = errors.New("page limit reached before an empty page")

// TransportError is a failed remote call: network error, timeout or non-2xx status.
// It is never retried.
type TransportError struct {
	// Op is the API action that failed.
	Op string
	// StatusCode is the HTTP status, zero when no response was received.
	StatusCode int
	// Err is the underlying cause.
	Err error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("remote %s: unexpected status %d: %v", e.Op, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("remote %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
