package sources

import (
	"context"
	"sort"
	"time"

	"econfeed/core/errs"
)

// DataPoint is the canonical adapter output: one observation of one series,
// already period-normalized. It is transient and never persisted directly;
// the reconciliation engine turns batches of these into indicator and
// release rows.
type DataPoint struct {
	// SourceKey is the provider's series/indicator id.
	SourceKey string
	// NameHint is the display name for the indicator this point belongs to.
	NameHint string
	// CountryCode is the ISO-3166 alpha-2 country code.
	CountryCode string
	// Category groups indicators (e.g. "labor", "prices", "growth").
	Category string
	// IsoDate is the normalized period start date (YYYY-MM-DD).
	IsoDate string
	// PeriodLabel is the normalized display label (e.g. "Q1 2024").
	PeriodLabel string
	// Value is the observation as a decimal string.
	Value string
	// Forecast, Previous and Revised are optional companion values some
	// ingestion paths carry; agency adapters leave them empty.
	Forecast string
	Previous string
	Revised  string
	// Unit is the observation unit (e.g. "%", "USD").
	Unit string
	// SourceName and SourceURL identify the publishing agency.
	SourceName string
	SourceURL  string
}

// Query bounds a fetch by calendar year and, for agencies serving many
// countries per series, restricts the countries of interest.
type Query struct {
	StartYear int
	EndYear   int
	// Countries holds ISO alpha-2 codes; empty means the provider default.
	// Adapters for single-country agencies ignore it.
	Countries []string
}

// Normalize fills missing bounds: a five-year lookback ending this year.
func (q Query) Normalize(now time.Time) Query {
	if q.EndYear <= 0 {
		q.EndYear = now.Year()
	}
	if q.StartYear <= 0 {
		q.StartYear = q.EndYear - 5
	}
	if q.StartYear > q.EndYear {
		q.StartYear = q.EndYear
	}
	return q
}

// CatalogEntry describes one series a provider can serve.
type CatalogEntry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CountryCode string `json:"countryCode"`
	Category    string `json:"category"`
}

// Catalog is the read-only listing of a provider's available series.
type Catalog struct {
	Source     string         `json:"source"`
	Configured bool           `json:"configured"`
	Entries    []CatalogEntry `json:"entries"`
}

// Adapter is the per-agency contract. Implementations own request building,
// retry/backoff, response shape validation, and normalization; they never
// touch the store.
type Adapter interface {
	// Name is the registry key (e.g. "bls").
	Name() string
	// Configured reports whether required credentials are present.
	Configured() bool
	// MaxIDsPerCall is the provider's hard cap on ids per request.
	MaxIDsPerCall() int
	// Catalog lists the series this adapter knows how to fetch.
	Catalog() Catalog
	// FetchSeries fetches and normalizes observations for the given series
	// ids. Requesting more than MaxIDsPerCall ids fails immediately with a
	// ValidationError, before any network call.
	FetchSeries(ctx context.Context, ids []string, q Query) ([]DataPoint, error)
}

// CheckBatch enforces the provider cap. Called by every adapter before it
// builds a request.
func CheckBatch(a Adapter, ids []string) error {
	if len(ids) == 0 {
		return errs.Validation(a.Name(), "no series requested")
	}
	if cap := a.MaxIDsPerCall(); len(ids) > cap {
		return errs.Validation(a.Name(), "requested %d series, provider cap is %d", len(ids), cap)
	}
	return nil
}

// Throttle sleeps the configured inter-request delay, honoring cancellation.
// Multi-series fetch flows call this between consecutive requests to the
// same provider; there is deliberately no parallel fan-out against a single
// external agency.
func Throttle(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	t := time.NewTimer(delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Registry holds the configured adapters by name.
type Registry struct {
	adapters map[string]Adapter
}

// NewRegistry creates an empty adapter registry.
func NewRegistry() *Registry {
	return &Registry{adapters: make(map[string]Adapter)}
}

// Register adds an adapter under its own name.
func (r *Registry) Register(a Adapter) {
	r.adapters[a.Name()] = a
}

// Get returns the adapter for a source name.
func (r *Registry) Get(name string) (Adapter, bool) {
	a, ok := r.adapters[name]
	return a, ok
}

// Names returns the registered source names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.adapters))
	for name := range r.adapters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
