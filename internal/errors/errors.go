package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// Application exit codes define the standard exit statuses for the application.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic error.
	ExitErrorFetch    = 3   // Indicates the cat fact could not be fetched.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// FetchFailedMessage is the single user-facing message for every fetch failure.
// Transport errors, bad statuses and malformed bodies are not distinguished.
const FetchFailedMessage = "Failed to fetch a cat fact."

// ConfigError represents a user configuration error, such as invalid flags or
// values.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// FetchError is the only domain error kind: a failed attempt to retrieve a
// cat fact. StatusCode is zero when the failure happened below HTTP.
type FetchError struct {
	// URL is the endpoint that was requested.
	URL string
	// StatusCode is the HTTP status of a non-success response, if any.
	StatusCode int
	// Cause is the underlying transport or decoding error, if any.
	Cause error
}

// Error returns a diagnostic message. It is meant for logs, not for the user;
// see FetchFailedMessage.
func (e FetchError) Error() string {
	switch {
	case e.StatusCode != 0:
		return fmt.Sprintf("fetch %s: unexpected status %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
	case e.Cause != nil:
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Cause)
	default:
		return fmt.Sprintf("fetch %s failed", e.URL)
	}
}

// Unwrap returns the underlying cause.
func (e FetchError) Unwrap() error { return e.Cause }

// UserMessage returns the text shown on screen for err. Every non-nil error
// collapses to FetchFailedMessage.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	return FetchFailedMessage
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
// It returns nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// HandleFetchError prints the user-facing message for err (if any) and maps it
// to an exit code.
func HandleFetchError(err error, out io.Writer) int {
	if err == nil {
		return ExitSuccess
	}
	if errors.Is(err, context.Canceled) {
		return ExitErrorCanceled
	}
	if out != nil {
		fmt.Fprintln(out, UserMessage(err))
	}
	return ExitErrorFetch
}
