package neows

import (
	"errors"
	"fmt"
)

// ErrFetchFailed matches every error returned by the catalog client.
var ErrFetchFailed = errors.New("neo catalog fetch failed")

// FetchError describes a failed catalog fetch. Message is safe to return to
// API callers.
type FetchError struct {
	StatusCode int // 0 when no response was received
	Message    string
	Err        error
}

func (e *FetchError) Error() string { return e.Message }

func (e *FetchError) Unwrap() error { return e.Err }

func (e *FetchError) Is(target error) bool { return target == ErrFetchFailed }

func statusError(code int, body []byte) *FetchError {
	return &FetchError{
		StatusCode: code,
		Message:    fmt.Sprintf("Failed to fetch data from NASA NEO API. Status Code: %d", code),
		Err:        fmt.Errorf("neows API error: status %d: %s", code, body),
	}
}

func networkError(err error) *FetchError {
	return &FetchError{
		Message: fmt.Sprintf("Network request failed: %v", err),
		Err:     err,
	}
}

// retryable reports whether another attempt could succeed.
func (e *FetchError) retryable() bool {
	return e.StatusCode == 0 || e.StatusCode == 429 || e.StatusCode >= 500
}
