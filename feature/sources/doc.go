// Package sources defines the source adapter contract and the canonical
// DataPoint every agency's response is normalized into.
//
// One subpackage exists per statistical agency (bls, fred, ecb, worldbank,
// imf). Each adapter owns its request building, retry/backoff via core/fetch,
// response shape validation, and period normalization via core/period, and
// emits DataPoints. Adapters never touch the store; the reconciliation
// engine consumes their output.
//
// # Provider caps
//
// Every provider enforces a maximum ids-per-call. CheckBatch rejects an
// oversized batch with a ValidationError before any network call is made.
//
// # Serialized fetching
//
// Calls against a single provider are serialized with an inter-request delay
// (Throttle) to respect third-party limits. There is no parallel fan-out
// against one agency.
//
// # Static name tables
//
// Each adapter carries a read-only series-id to display-name table, built
// once in its constructor and exposed through Catalog(). These are
// configuration values, not global mutable state.
package sources
