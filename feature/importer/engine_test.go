package importer

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"econfeed/feature/importer/models"
	"econfeed/feature/sources"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func testEngine(t *testing.T) (*Engine, sqlmock.Sqlmock) {
	db, mock := newMockDB(t)
	e := NewEngine(NewStore(db), zap.NewNop())
	e.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return e, mock
}

func indicatorColumns() []string {
	return []string{"id", "name", "country_code", "category", "source_name", "source_url", "created_at", "updated_at"}
}

func releaseColumns() []string {
	return []string{"id", "indicator_id", "release_at", "period", "actual", "forecast", "previous", "revised", "unit", "revision_history", "created_at", "updated_at"}
}

func TestReconcile_DuplicateIndicatorKeyLastWriteWins(t *testing.T) {
	e, mock := testEngine(t)

	// Both points share the indicator natural key; the later category wins
	// and exactly one row is inserted.
	points := []sources.DataPoint{
		{NameHint: "CPI", CountryCode: "US", Category: "prices-old", IsoDate: "2024-01-01", PeriodLabel: "Jan 2024", Value: "3.1"},
		{NameHint: "CPI", CountryCode: "US", Category: "prices", IsoDate: "2024-01-01", PeriodLabel: "Jan 2024", Value: "3.1"},
	}

	mock.ExpectQuery("SELECT (.+) FROM `indicators`").
		WillReturnRows(sqlmock.NewRows(indicatorColumns()))

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `indicators`").
		WithArgs("CPI", "US", "prices", "", "", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectCommit()

	mock.ExpectQuery("SELECT (.+) FROM `releases`").
		WillReturnRows(sqlmock.NewRows(releaseColumns()))

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `releases`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	stats, err := e.Reconcile(context.Background(), points)

	require.NoError(t, err)
	assert.Equal(t, 1, stats.Indicators)
	assert.Equal(t, 2, stats.Inserted(), "one indicator, one deduped release")
	assert.Equal(t, 0, stats.Updated())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReconcile_IdenticalRerunInsertsNothing(t *testing.T) {
	e, mock := testEngine(t)

	points := []sources.DataPoint{
		{NameHint: "Unemployment Rate", CountryCode: "US", Category: "labor",
			IsoDate: "2024-04-01", PeriodLabel: "Apr 2024", Value: "3.9", Unit: "%"},
	}

	releaseAt := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT (.+) FROM `indicators`").
		WillReturnRows(sqlmock.NewRows(indicatorColumns()).
			AddRow(3, "Unemployment Rate", "US", "labor", "", "", time.Now(), time.Now()))

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `indicators`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectQuery("SELECT (.+) FROM `releases`").
		WillReturnRows(sqlmock.NewRows(releaseColumns()).
			AddRow(11, 3, releaseAt, "Apr 2024", "3.9", nil, nil, nil, "%", "[]", time.Now(), time.Now()))

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `releases`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	stats, err := e.Reconcile(context.Background(), points)

	// Unchanged rows still flow through update calls; only inserts are a
	// no-op on an identical second run.
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Inserted())
	assert.Equal(t, 2, stats.Updated(), "indicator and release both rewritten unchanged")
	assert.Equal(t, 0, stats.Skipped)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReconcile_UnparsablePeriodSkipsRelease(t *testing.T) {
	e, mock := testEngine(t)

	points := []sources.DataPoint{
		{NameHint: "GDP", CountryCode: "JP", Category: "growth",
			IsoDate: "FY2024", PeriodLabel: "FY2024", Value: "1.2"},
	}

	mock.ExpectQuery("SELECT (.+) FROM `indicators`").
		WillReturnRows(sqlmock.NewRows(indicatorColumns()))

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `indicators`").
		WillReturnResult(sqlmock.NewResult(9, 1))
	mock.ExpectCommit()

	stats, err := e.Reconcile(context.Background(), points)

	require.NoError(t, err)
	assert.Equal(t, 1, stats.IndicatorsInserted)
	assert.Equal(t, 0, stats.ReleasesInserted)
	assert.Equal(t, 1, stats.Skipped, "release with an unparsable date never reaches the store")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReconcile_RevisedActualUpdatesRelease(t *testing.T) {
	e, mock := testEngine(t)

	points := []sources.DataPoint{
		{NameHint: "GDP", CountryCode: "US", Category: "growth",
			IsoDate: "2024-01-01", PeriodLabel: "Q1 2024", Value: "3.2"},
	}

	releaseAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT (.+) FROM `indicators`").
		WillReturnRows(sqlmock.NewRows(indicatorColumns()).
			AddRow(5, "GDP", "US", "growth", "", "", time.Now(), time.Now()))

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `indicators`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	mock.ExpectQuery("SELECT (.+) FROM `releases`").
		WillReturnRows(sqlmock.NewRows(releaseColumns()).
			AddRow(21, 5, releaseAt, "Q1 2024", "3.1", nil, nil, nil, "", "[]", time.Now(), time.Now()))

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `releases`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	stats, err := e.Reconcile(context.Background(), points)

	require.NoError(t, err)
	assert.Equal(t, 0, stats.Inserted())
	assert.Equal(t, 1, stats.ReleasesUpdated)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplyRelease_RevisionAppendedOnOverwrite(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	old := "3.1"
	row := &models.Release{Actual: &old}

	newVal := "3.2"
	changed := applyRelease(row, &models.Release{Actual: &newVal}, now)

	require.True(t, changed)
	require.Len(t, row.RevisionHistory, 1)
	assert.Equal(t, "3.1", *row.RevisionHistory[0].PreviousActual)
	assert.Equal(t, "3.2", *row.RevisionHistory[0].NewActual)
	assert.Equal(t, now, row.RevisionHistory[0].RevisedAt)
	assert.Equal(t, "3.2", *row.Actual)

	// Re-applying the same value appends nothing further.
	changed = applyRelease(row, &models.Release{Actual: &newVal}, now)
	assert.False(t, changed)
	assert.Len(t, row.RevisionHistory, 1)
}

func TestApplyRelease_NullToValueIsFirstReport(t *testing.T) {
	row := &models.Release{}
	val := "2.4"

	changed := applyRelease(row, &models.Release{Actual: &val}, time.Now())

	require.True(t, changed)
	assert.Empty(t, row.RevisionHistory, "null to value is a first report, not a revision")
	assert.Equal(t, "2.4", *row.Actual)
}

func TestApplyRelease_NumericallyEqualStringsAreNoChange(t *testing.T) {
	old := "3.10"
	row := &models.Release{Actual: &old}
	newVal := "3.1"

	changed := applyRelease(row, &models.Release{Actual: &newVal}, time.Now())

	assert.False(t, changed)
	assert.Empty(t, row.RevisionHistory)
}

func TestApplyIndicator_DescriptiveFieldsUpdate(t *testing.T) {
	row := &models.Indicator{Name: "CPI", CountryCode: "US", Category: "old"}

	changed := applyIndicator(row, &models.Indicator{Category: "prices", SourceName: "Bureau"})

	require.True(t, changed)
	assert.Equal(t, "prices", row.Category)
	assert.Equal(t, "Bureau", row.SourceName)
	assert.False(t, applyIndicator(row, &models.Indicator{Category: "prices", SourceName: "Bureau"}))
}

func TestRunUpdates_ReportsFirstFailureAfterCompletion(t *testing.T) {
	e, _ := testEngine(t)

	var done atomic.Int32
	err := e.runUpdates(context.Background(), 20, func(ctx context.Context, i int) error {
		done.Add(1)
		if i == 3 {
			return assert.AnError
		}
		return nil
	})

	assert.Error(t, err)
	assert.Equal(t, int32(20), done.Load(), "siblings run to completion")
}
