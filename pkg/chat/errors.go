package chat

import (
	"errors"
	"fmt"
)

var (
	ErrNoMessages           = errors.New("request has no messages")
	ErrStreamingUnsupported = errors.New("streaming responses are not supported")
	ErrEmptyResponse        = errors.New("response has no choices")
	ErrInvalidSchema        = errors.New("invalid parameter schema")
	ErrMissingCredential    = errors.New("missing API credential")
)

// APIError is returned when the API answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Err        error
}

func (e *APIError) Error() string {
	return fmt.Sprintf("chat api returned status %d: %v", e.StatusCode, e.Err)
}

func (e *APIError) Unwrap() error {
	return e.Err
}
