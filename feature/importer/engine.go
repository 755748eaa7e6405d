package importer

import (
	"context"
	"sync"
	"time"

	"econfeed/core/period"
	"econfeed/feature/importer/models"
	"econfeed/feature/sources"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// updateWorkers bounds the fan-out of per-row update calls. Inserts are
// batched instead; batching bounds round-trips, per-row updates are the
// unavoidable remainder.
const updateWorkers = 8

// ReconcileStats summarizes one engine run over a batch of data points.
type ReconcileStats struct {
	Indicators         int
	Observations       int
	IndicatorsInserted int
	IndicatorsUpdated  int
	ReleasesInserted   int
	ReleasesUpdated    int

	// Skipped counts release candidates dropped before any store call:
	// points whose indicator never resolved an id or whose date never
	// parsed. Unchanged matched rows are not skipped; they still get a
	// content-identical update call.
	Skipped int
}

// Inserted is the insert count across both phases.
func (s ReconcileStats) Inserted() int { return s.IndicatorsInserted + s.ReleasesInserted }

// Updated is the update count across both phases.
func (s ReconcileStats) Updated() int { return s.IndicatorsUpdated + s.ReleasesUpdated }

// Engine reconciles candidate data points against the store by natural key:
// one batched lookup per phase, batched inserts, bounded-concurrency
// updates. Indicator reconciliation completes before release reconciliation
// starts, since release rows need resolved indicator ids.
//
// No transaction spans the two phases. A failure between them leaves
// indicators without their releases; re-running the same import is the
// recovery path, reconciliation being idempotent.
type Engine struct {
	store  *Store
	logger *zap.Logger

	now func() time.Time
}

// NewEngine creates an engine over the given store.
func NewEngine(store *Store, logger *zap.Logger) *Engine {
	return &Engine{store: store, logger: logger, now: time.Now}
}

// Reconcile runs the full indicator-then-release reconciliation for one
// batch. A store failure aborts the current phase; earlier writes stay.
func (e *Engine) Reconcile(ctx context.Context, points []sources.DataPoint) (ReconcileStats, error) {
	stats := ReconcileStats{Observations: len(points)}

	idByKey, err := e.reconcileIndicators(ctx, points, &stats)
	if err != nil {
		return stats, err
	}

	if err := e.reconcileReleases(ctx, points, idByKey, &stats); err != nil {
		return stats, err
	}

	return stats, nil
}

func (e *Engine) reconcileIndicators(ctx context.Context, points []sources.DataPoint, stats *ReconcileStats) (map[IndicatorKey]uint, error) {
	// Dedupe candidates by natural key; a later candidate for the same key
	// overwrites an earlier one wholesale (last-write-wins).
	order := make([]IndicatorKey, 0, len(points))
	candidates := make(map[IndicatorKey]*models.Indicator, len(points))
	for _, p := range points {
		name := p.NameHint
		if name == "" {
			name = p.SourceKey
		}
		key := IndicatorKey{Name: name, CountryCode: p.CountryCode}
		if _, seen := candidates[key]; !seen {
			order = append(order, key)
		}
		candidates[key] = &models.Indicator{
			Name:        name,
			CountryCode: p.CountryCode,
			Category:    p.Category,
			SourceName:  p.SourceName,
			SourceURL:   p.SourceURL,
		}
	}
	stats.Indicators = len(order)

	existing, err := e.store.FindIndicators(ctx, order)
	if err != nil {
		return nil, err
	}

	var inserts []*models.Indicator
	var updates []*models.Indicator
	for _, key := range order {
		cand := candidates[key]
		row, found := existing[key]
		if !found {
			inserts = append(inserts, cand)
			continue
		}
		// Matched rows always get an update call; an unchanged merge just
		// rewrites identical content.
		applyIndicator(row, cand)
		updates = append(updates, row)
	}

	if err := e.store.InsertIndicators(ctx, inserts); err != nil {
		return nil, err
	}
	stats.IndicatorsInserted = len(inserts)

	if err := e.runUpdates(ctx, len(updates), func(ctx context.Context, i int) error {
		return e.store.UpdateIndicator(ctx, updates[i])
	}); err != nil {
		return nil, err
	}
	stats.IndicatorsUpdated = len(updates)

	// Merge freshly assigned ids with the pre-existing ones.
	idByKey := make(map[IndicatorKey]uint, len(order))
	for key, row := range existing {
		idByKey[key] = row.ID
	}
	for _, row := range inserts {
		idByKey[IndicatorKey{Name: row.Name, CountryCode: row.CountryCode}] = row.ID
	}

	return idByKey, nil
}

func (e *Engine) reconcileReleases(ctx context.Context, points []sources.DataPoint, idByKey map[IndicatorKey]uint, stats *ReconcileStats) error {
	order := make([]ReleaseKey, 0, len(points))
	candidates := make(map[ReleaseKey]*models.Release, len(points))
	for _, p := range points {
		name := p.NameHint
		if name == "" {
			name = p.SourceKey
		}
		indicatorID, ok := idByKey[IndicatorKey{Name: name, CountryCode: p.CountryCode}]
		if !ok {
			// Indicator phase never produced an id for this point.
			stats.Skipped++
			continue
		}

		releaseAt, err := period.Date(p.IsoDate)
		if err != nil {
			stats.Skipped++
			continue
		}

		key := ReleaseKey{IndicatorID: indicatorID, ReleaseAt: releaseAt.UTC(), Period: p.PeriodLabel}
		if _, seen := candidates[key]; !seen {
			order = append(order, key)
		}
		candidates[key] = &models.Release{
			IndicatorID: indicatorID,
			ReleaseAt:   releaseAt.UTC(),
			Period:      p.PeriodLabel,
			Actual:      nullable(p.Value),
			Forecast:    nullable(p.Forecast),
			Previous:    nullable(p.Previous),
			Revised:     nullable(p.Revised),
			Unit:        p.Unit,
		}
	}

	existing, err := e.store.FindReleases(ctx, order)
	if err != nil {
		return err
	}

	var inserts []*models.Release
	var updates []*models.Release
	now := e.now()
	for _, key := range order {
		cand := candidates[key]
		row, found := existing[key]
		if !found {
			inserts = append(inserts, cand)
			continue
		}
		// As with indicators, every matched row goes through an update call.
		// An unchanged actual appends no revision entry, so the rewrite is
		// content-identical.
		applyRelease(row, cand, now)
		updates = append(updates, row)
	}

	if err := e.store.InsertReleases(ctx, inserts); err != nil {
		return err
	}
	stats.ReleasesInserted = len(inserts)

	if err := e.runUpdates(ctx, len(updates), func(ctx context.Context, i int) error {
		return e.store.UpdateRelease(ctx, updates[i])
	}); err != nil {
		return err
	}
	stats.ReleasesUpdated = len(updates)

	return nil
}

// applyIndicator overwrites the descriptive fields from the candidate and
// reports whether anything changed. Name and country are the natural key
// and never move.
func applyIndicator(row, cand *models.Indicator) bool {
	changed := false
	if cand.Category != "" && cand.Category != row.Category {
		row.Category = cand.Category
		changed = true
	}
	if cand.SourceName != "" && cand.SourceName != row.SourceName {
		row.SourceName = cand.SourceName
		changed = true
	}
	if cand.SourceURL != "" && cand.SourceURL != row.SourceURL {
		row.SourceURL = cand.SourceURL
		changed = true
	}
	return changed
}

// applyRelease merges the candidate into the existing row and reports
// whether anything changed. Overwriting a non-null actual with a different
// value appends exactly one revision entry first; a null-to-value
// transition is a first report and appends nothing.
func applyRelease(row, cand *models.Release, now time.Time) bool {
	changed := false

	if cand.Actual != nil {
		switch {
		case row.Actual == nil:
			row.Actual = cand.Actual
			changed = true
		case !decimalEqual(*row.Actual, *cand.Actual):
			row.RevisionHistory = append(row.RevisionHistory, models.RevisionEntry{
				PreviousActual: row.Actual,
				NewActual:      cand.Actual,
				RevisedAt:      now,
			})
			row.Actual = cand.Actual
			changed = true
		}
	}

	if cand.Forecast != nil && (row.Forecast == nil || !decimalEqual(*row.Forecast, *cand.Forecast)) {
		row.Forecast = cand.Forecast
		changed = true
	}
	if cand.Previous != nil && (row.Previous == nil || !decimalEqual(*row.Previous, *cand.Previous)) {
		row.Previous = cand.Previous
		changed = true
	}
	if cand.Revised != nil && (row.Revised == nil || !decimalEqual(*row.Revised, *cand.Revised)) {
		row.Revised = cand.Revised
		changed = true
	}
	if cand.Unit != "" && cand.Unit != row.Unit {
		row.Unit = cand.Unit
		changed = true
	}

	return changed
}

// decimalEqual compares decimal-as-string values numerically, so "3.10"
// equals "3.1". Unparsable values fall back to string comparison.
func decimalEqual(a, b string) bool {
	da, errA := decimal.NewFromString(a)
	db, errB := decimal.NewFromString(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return da.Equal(db)
}

// runUpdates dispatches per-row update calls across a bounded worker pool.
// All dispatched calls run to completion; the first observed failure is
// reported, in-flight siblings are not cancelled.
func (e *Engine) runUpdates(ctx context.Context, n int, do func(ctx context.Context, i int) error) error {
	if n == 0 {
		return nil
	}

	workers := updateWorkers
	if n < workers {
		workers = n
	}

	indexCh := make(chan int, n)
	errorCh := make(chan error, n)

	for i := 0; i < n; i++ {
		indexCh <- i
	}
	close(indexCh)

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range indexCh {
				if err := do(ctx, i); err != nil {
					errorCh <- err
				}
			}
		}()
	}

	wg.Wait()
	close(errorCh)

	var first error
	failures := 0
	for err := range errorCh {
		if first == nil {
			first = err
		}
		failures++
	}
	if first != nil && failures > 1 {
		e.logger.Warn("Multiple row updates failed, reporting first",
			zap.Int("failures", failures),
			zap.Error(first))
	}
	return first
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
