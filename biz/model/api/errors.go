package api

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport marks a request that never produced a response.
	ErrTransport = errors.New("backend unreachable")
	// ErrDecode marks a response whose body is not the expected JSON.
	ErrDecode = errors.New("invalid backend response")
)

// APIError is an application-level failure: the backend answered with a non-2xx status.
type APIError struct {
	StatusCode int
	Details    string
	Body       []byte
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Details)
	}
	return fmt.Sprintf("backend returned %d", e.StatusCode)
}

// AsAPIError unwraps err into an *APIError when possible.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
