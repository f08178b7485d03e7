package llm

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// UnsupportedProviderError indicates a model config names a provider the
// router has no backend for. Configuration error, not a runtime failure.
type UnsupportedProviderError struct {
	Provider ProviderName
}

func (e *UnsupportedProviderError) Error() string {
	return fmt.Sprintf("unsupported LLM provider: %q", e.Provider)
}

// NotConfiguredError indicates a known provider whose API key is missing.
type NotConfiguredError struct {
	Provider ProviderName
}

func (e *NotConfiguredError) Error() string {
	return fmt.Sprintf("LLM provider %q has no API key configured", e.Provider)
}

// RateLimitError indicates the backend returned 429.
type RateLimitError struct {
	RetryAfter time.Duration
	Err        error
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *RateLimitError) Unwrap() error { return e.Err }

// TimeoutError indicates the provider call exceeded its deadline.
type TimeoutError struct {
	Err error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("LLM provider call timed out: %v", e.Err)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// UnavailableError indicates the backend is down, unreachable or
// rejected the credentials.
type UnavailableError struct {
	Err error
}

func (e *UnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// EmptyResponseError indicates the backend returned no usable content.
type EmptyResponseError struct {
	Model string
}

func (e *EmptyResponseError) Error() string {
	return fmt.Sprintf("model %q returned no content", e.Model)
}

// wrapTransportError maps context deadline errors to TimeoutError before
// falling back to the given default mapping.
func wrapTransportError(err error, fallback error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{Err: err}
	}
	return fallback
}
