package importer

import (
	"context"
	"fmt"
	"time"

	"econfeed/core/errs"
	"econfeed/core/logger"
	"econfeed/feature/sources"

	"go.uber.org/zap"
)

// ImportRequest narrows one import run. All fields are optional; defaults
// come from the adapter's catalog and a five-year lookback.
type ImportRequest struct {
	SeriesIDs    []string `json:"seriesIds"`
	CountryCodes []string `json:"countryCodes"`
	StartYear    int      `json:"startYear"`
	EndYear      int      `json:"endYear"`
}

// Service orchestrates one import run: resolve the adapter, fetch series in
// provider-capped chunks, and hand the accumulated data points to the
// reconciliation engine.
type Service struct {
	registry *sources.Registry
	engine   *Engine
	cfg      sources.Config
	logger   *zap.Logger
}

// NewService creates the import orchestrator.
func NewService(registry *sources.Registry, engine *Engine, cfg sources.Config, logger *zap.Logger) *Service {
	return &Service{registry: registry, engine: engine, cfg: cfg, logger: logger}
}

// Catalog returns the provider's available series and whether its
// credential is configured.
func (s *Service) Catalog(source string) (sources.Catalog, error) {
	adapter, ok := s.registry.Get(source)
	if !ok {
		return sources.Catalog{}, errs.Validation(source, "unknown source")
	}
	return adapter.Catalog(), nil
}

// Run executes one import against the named source. Per-series fetch
// failures are folded into the result as FailedImports; only a systemic
// failure (unknown source, missing credential, store unreachable) returns
// an error instead of a result.
func (s *Service) Run(ctx context.Context, source string, req ImportRequest) (*ImportResult, error) {
	adapter, ok := s.registry.Get(source)
	if !ok {
		return nil, errs.Validation(source, "unknown source")
	}
	if !adapter.Configured() {
		return nil, &errs.ConfigurationError{Source: source, Reason: "credential not configured"}
	}

	ids := req.SeriesIDs
	if len(ids) == 0 {
		for _, entry := range adapter.Catalog().Entries {
			ids = append(ids, entry.ID)
		}
	}

	query := sources.Query{
		StartYear: req.StartYear,
		EndYear:   req.EndYear,
		Countries: req.CountryCodes,
	}.Normalize(time.Now())

	result := &ImportResult{Source: source, TotalSeries: len(ids)}
	logg := logger.WithSource(s.logger, source)

	// Fetch in provider-capped chunks, serialized with the inter-request
	// delay. One chunk failing does not abort the run.
	var points []sources.DataPoint
	chunkSize := adapter.MaxIDsPerCall()
	for start := 0; start < len(ids); start += chunkSize {
		end := start + chunkSize
		if end > len(ids) {
			end = len(ids)
		}
		chunk := ids[start:end]

		if start > 0 {
			if err := sources.Throttle(ctx, s.cfg.Delay()); err != nil {
				return nil, err
			}
		}

		fetched, err := adapter.FetchSeries(ctx, chunk, query)
		if err != nil {
			result.FailedImports += len(chunk)
			result.AddError(fmt.Sprintf("%s: %v", source, err))
			logg.Warn("Series fetch failed",
				zap.Strings("series", chunk),
				zap.Error(err))
			continue
		}

		result.SuccessfulImports += len(chunk)
		points = append(points, fetched...)
	}

	stats, err := s.engine.Reconcile(ctx, points)
	if err != nil {
		return nil, err
	}

	result.TotalIndicators = stats.Indicators
	result.TotalObservations = stats.Observations
	result.TotalInserted = stats.Inserted()
	result.TotalUpdated = stats.Updated()
	result.TotalSkipped = stats.Skipped

	logg.Info("Import run finished",
		zap.Int("series", result.TotalSeries),
		zap.Int("indicators", result.TotalIndicators),
		zap.Int("observations", result.TotalObservations),
		zap.Int("inserted", result.TotalInserted),
		zap.Int("updated", result.TotalUpdated),
		zap.Int("skipped", result.TotalSkipped),
		zap.Int("failed_imports", result.FailedImports))

	return result, nil
}
