package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

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

func testLimiter(t *testing.T) (*Limiter, sqlmock.Sqlmock) {
	db, mock := newMockDB(t)
	l := NewLimiter(db, zap.NewNop(), Config{BaseLimit: 60, ElevatedMultiplier: 10, WindowSeconds: 60})
	l.now = func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) }
	return l, mock
}

func expectCount(mock sqlmock.Sqlmock, count int64) {
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `request_logs`").
		WithArgs("key-1", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(count))
}

func TestCheckLimit_BaseTierDeniesAtLimit(t *testing.T) {
	l, mock := testLimiter(t)
	expectCount(mock, 60)

	d := l.CheckLimit(context.Background(), "key-1", TierBase)

	assert.False(t, d.Allowed)
	assert.Equal(t, 60, d.Limit)
	assert.Equal(t, 0, d.Remaining)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckLimit_ElevatedTierAllowsSameCount(t *testing.T) {
	l, mock := testLimiter(t)
	expectCount(mock, 60)

	d := l.CheckLimit(context.Background(), "key-1", TierElevated)

	assert.True(t, d.Allowed)
	assert.Equal(t, 600, d.Limit)
	assert.Equal(t, 540, d.Remaining)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCheckLimit_UnderLimit(t *testing.T) {
	l, mock := testLimiter(t)
	expectCount(mock, 12)

	d := l.CheckLimit(context.Background(), "key-1", TierBase)

	assert.True(t, d.Allowed)
	assert.Equal(t, 48, d.Remaining)
	assert.Equal(t, l.now().Add(60*time.Second), d.ResetAt)
}

func TestCheckLimit_FailsOpenOnQueryError(t *testing.T) {
	l, mock := testLimiter(t)
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `request_logs`").
		WillReturnError(errors.New("connection reset"))

	d := l.CheckLimit(context.Background(), "key-1", TierBase)

	assert.True(t, d.Allowed)
	assert.Equal(t, 60, d.Remaining)
}

func TestLimitFor_UnknownTierFallsBackToBase(t *testing.T) {
	cfg := Config{BaseLimit: 60, ElevatedMultiplier: 10}
	assert.Equal(t, 60, cfg.LimitFor("enterprise-legacy"))
}

func TestRecord(t *testing.T) {
	l, mock := testLimiter(t)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `request_logs`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	l.Record(context.Background(), RequestLog{
		CredentialID: "key-1",
		Method:       "POST",
		Path:         "/import/fred",
		StatusCode:   200,
		CreatedAt:    time.Now(),
	})

	require.NoError(t, mock.ExpectationsWereMet())
}
