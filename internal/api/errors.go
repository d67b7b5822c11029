package api

import (
	"errors"
	"fmt"
)

// ErrTransport matches every *TransportError via errors.Is.
var ErrTransport = errors.New("transport error")

// TransportError reports a failed request: the server was unreachable,
// answered outside the 2xx range, or sent a body that could not be decoded.
type TransportError struct {
	Op         string // "fetch", "get", "create", "patch"
	URL        string
	StatusCode int // 0 when no usable response was received
	RequestID  string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s %s: HTTP status %d", e.Op, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrTransport.
func (e *TransportError) Is(target error) bool {
	return target == ErrTransport
}
