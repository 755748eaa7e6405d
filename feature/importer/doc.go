// Package importer reconciles fetched observations into the store.
//
// The engine works in two strictly ordered phases. First, candidate
// indicators are deduplicated by natural key (name, country_code),
// resolved against existing rows with chunked tuple-IN lookups,
// batch-inserted or updated, and their ids collected. Second, release rows
// are reconciled the same way under (indicator_id, release_at, period),
// with indicator ids resolved from the first phase.
//
// Updating a release whose actual was already reported with a different
// value appends an entry to its append-only revision history. Values are
// compared numerically, so "3.10" and "3.1" are the same report.
//
// The Service orchestrates a full run for one source: it chunks the
// requested series by the provider cap, serializes the fetches with an
// inter-request delay, folds per-series failures into the ImportResult,
// and hands everything fetched to the engine in one batch.
package importer
