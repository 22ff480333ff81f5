package services

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned for missing or blank text.
	ErrInvalidInput = errors.New("text is required")
	// ErrInputTooLong is returned when text exceeds the configured limit.
	ErrInputTooLong = errors.New("text exceeds maximum length")
	// ErrMissingCredential is returned by remote gateways built without an API key.
	ErrMissingCredential = errors.New("gateway API key not configured")
)

// GatewayError reports a failed call to the translation backend: a non-success
// HTTP status (StatusCode/Body set) or a transport failure (Err set).
type GatewayError struct {
	Provider   string
	StatusCode int
	Body       string
	Err        error
}

func (e *GatewayError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s API returned status %d: %s", e.Provider, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s request failed: %v", e.Provider, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}
