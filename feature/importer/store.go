package importer

import (
	"context"
	"time"

	"econfeed/core/errs"
	"econfeed/feature/importer/models"

	"gorm.io/gorm"
)

// lookupChunk bounds the number of natural-key tuples per IN clause. The
// store publishes no hard cap; 50 keeps statements comfortably small.
const lookupChunk = 50

// insertBatch is the row count per batched INSERT.
const insertBatch = 100

// IndicatorKey is the indicator natural key.
type IndicatorKey struct {
	Name        string
	CountryCode string
}

// ReleaseKey is the release natural key.
type ReleaseKey struct {
	IndicatorID uint
	ReleaseAt   time.Time
	Period      string
}

// Store issues the reconciliation engine's queries against the relational
// store. All failures come back wrapped in StoreError.
type Store struct {
	db *gorm.DB
}

// NewStore creates a store over the given database handle.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// FindIndicators resolves existing rows for the given natural keys with
// chunked tuple-IN lookups.
func (s *Store) FindIndicators(ctx context.Context, keys []IndicatorKey) (map[IndicatorKey]*models.Indicator, error) {
	found := make(map[IndicatorKey]*models.Indicator, len(keys))

	for start := 0; start < len(keys); start += lookupChunk {
		end := start + lookupChunk
		if end > len(keys) {
			end = len(keys)
		}

		tuples := make([][]any, 0, end-start)
		for _, k := range keys[start:end] {
			tuples = append(tuples, []any{k.Name, k.CountryCode})
		}

		var rows []models.Indicator
		err := s.db.WithContext(ctx).
			Where("(name, country_code) IN ?", tuples).
			Find(&rows).Error
		if err != nil {
			return nil, &errs.StoreError{Op: "find indicators", Err: err}
		}

		for i := range rows {
			row := rows[i]
			found[IndicatorKey{Name: row.Name, CountryCode: row.CountryCode}] = &row
		}
	}

	return found, nil
}

// InsertIndicators creates the rows with batched inserts and leaves the
// assigned ids on the structs.
func (s *Store) InsertIndicators(ctx context.Context, rows []*models.Indicator) error {
	if len(rows) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).CreateInBatches(rows, insertBatch).Error; err != nil {
		return &errs.StoreError{Op: "insert indicators", Err: err}
	}
	return nil
}

// UpdateIndicator saves one existing row.
func (s *Store) UpdateIndicator(ctx context.Context, row *models.Indicator) error {
	if err := s.db.WithContext(ctx).Save(row).Error; err != nil {
		return &errs.StoreError{Op: "update indicator", Err: err}
	}
	return nil
}

// FindReleases resolves existing rows for the given natural keys with
// chunked tuple-IN lookups.
func (s *Store) FindReleases(ctx context.Context, keys []ReleaseKey) (map[ReleaseKey]*models.Release, error) {
	found := make(map[ReleaseKey]*models.Release, len(keys))

	for start := 0; start < len(keys); start += lookupChunk {
		end := start + lookupChunk
		if end > len(keys) {
			end = len(keys)
		}

		tuples := make([][]any, 0, end-start)
		for _, k := range keys[start:end] {
			tuples = append(tuples, []any{k.IndicatorID, k.ReleaseAt, k.Period})
		}

		var rows []models.Release
		err := s.db.WithContext(ctx).
			Where("(indicator_id, release_at, period) IN ?", tuples).
			Find(&rows).Error
		if err != nil {
			return nil, &errs.StoreError{Op: "find releases", Err: err}
		}

		for i := range rows {
			row := rows[i]
			key := ReleaseKey{IndicatorID: row.IndicatorID, ReleaseAt: row.ReleaseAt.UTC(), Period: row.Period}
			found[key] = &row
		}
	}

	return found, nil
}

// InsertReleases creates the rows with batched inserts.
func (s *Store) InsertReleases(ctx context.Context, rows []*models.Release) error {
	if len(rows) == 0 {
		return nil
	}
	if err := s.db.WithContext(ctx).CreateInBatches(rows, insertBatch).Error; err != nil {
		return &errs.StoreError{Op: "insert releases", Err: err}
	}
	return nil
}

// UpdateRelease saves one existing row.
func (s *Store) UpdateRelease(ctx context.Context, row *models.Release) error {
	if err := s.db.WithContext(ctx).Save(row).Error; err != nil {
		return &errs.StoreError{Op: "update release", Err: err}
	}
	return nil
}
