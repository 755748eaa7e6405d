package errs

import "fmt"

// ValidationError reports malformed input or an unexpected response shape.
// It is terminal: retrying the same input cannot succeed.
type ValidationError struct {
	Source string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("validation: %s", e.Reason)
	}
	return fmt.Sprintf("validation (%s): %s", e.Source, e.Reason)
}

// Validation builds a ValidationError with a formatted reason.
func Validation(source, format string, args ...any) *ValidationError {
	return &ValidationError{Source: source, Reason: fmt.Sprintf(format, args...)}
}

// TransientSourceError reports a network failure or a 5xx response from an
// external agency. It is retryable.
type TransientSourceError struct {
	Source     string
	StatusCode int
	Err        error
}

func (e *TransientSourceError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("transient source error (%s): status %d", e.Source, e.StatusCode)
	}
	return fmt.Sprintf("transient source error (%s): %v", e.Source, e.Err)
}

func (e *TransientSourceError) Unwrap() error { return e.Err }

// ExhaustedRetriesError reports that all retry attempts for a transient
// failure were spent. It wraps the last attempt's error.
type ExhaustedRetriesError struct {
	Source   string
	Attempts int
	Err      error
}

func (e *ExhaustedRetriesError) Error() string {
	return fmt.Sprintf("exhausted %d attempts against %s: %v", e.Attempts, e.Source, e.Err)
}

func (e *ExhaustedRetriesError) Unwrap() error { return e.Err }

// ConfigurationError reports a missing or unusable credential for a source.
// Surfaced without retry.
type ConfigurationError struct {
	Source string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration (%s): %s", e.Source, e.Reason)
}

// StoreError reports a persistence failure. It aborts the current
// reconciliation phase; writes committed earlier in the run stay.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
