package domain

import (
	"errors"
	"fmt"
)

var (
	ErrRequestFailed      = errors.New("request failed")
	ErrLoginRequired      = errors.New("login required")
	ErrAccessDenied       = errors.New("seller account required")
	ErrEmptyCart          = errors.New("cart is empty")
	ErrProductNotFound    = errors.New("product not in current listing")
	ErrSubmissionInFlight = errors.New("a product submission is already in progress")
	ErrNotConfirmed       = errors.New("action not confirmed")
	ErrInvalidForm        = errors.New("invalid product form")
)

// DefaultFailureMessage is shown when the backend gives no usable message.
const DefaultFailureMessage = "API request failed"

// RequestFailedError is the single error kind produced by the HTTP client.
// Network, authentication, validation and server faults all collapse into it.
type RequestFailedError struct {
	Status  int // 0 when no response was received
	Message string
	Err     error // transport or decode cause, if any
}

func (e *RequestFailedError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("request failed: %s", e.Message)
	}
	return fmt.Sprintf("request failed (%d): %s", e.Status, e.Message)
}

func (e *RequestFailedError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrRequestFailed) match any RequestFailedError.
func (e *RequestFailedError) Is(target error) bool {
	return target == ErrRequestFailed
}
