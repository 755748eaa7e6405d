// Package errs defines the error taxonomy shared by the ingestion pipeline.
//
// The types split cleanly into retryable and terminal classes:
//
//   - ValidationError: malformed input or response shape. Terminal.
//   - TransientSourceError: network failure or 5xx from an agency. Retryable.
//   - ExhaustedRetriesError: a transient failure that outlived its retry
//     budget. Terminal, wraps the last attempt's error.
//   - ConfigurationError: missing credential. Terminal.
//   - StoreError: persistence failure, aborts the current phase. Terminal.
//
// The retry loop in core/fetch consults a classifier over these types rather
// than branching ad hoc. A rate-limit denial is deliberately NOT an error;
// it is a typed result callers branch on (see feature/ratelimit.Decision).
package errs
