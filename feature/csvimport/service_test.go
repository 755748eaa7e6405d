package csvimport

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"econfeed/core/storage/mocks"
	"econfeed/feature/importer"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mockDB, err := sqlmock.New()
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

	return gormDB, mockDB
}

func testService(t *testing.T, client *mocks.Client) (*Service, sqlmock.Sqlmock) {
	db, mockDB := newMockDB(t)
	engine := importer.NewEngine(importer.NewStore(db), zap.NewNop())
	if client == nil {
		return NewService(engine, nil, "", zap.NewNop()), mockDB
	}
	return NewService(engine, client, "csv-archive", zap.NewNop()), mockDB
}

func TestIngest_RejectsFileWhenAnyRowFails(t *testing.T) {
	svc, _ := testService(t, nil)

	csv := "name,country_code,period,actual\n" +
		"CPI,US,2024-01,3.1\n" +
		",US,2024-02,3.2\n" // missing name

	result, rejection, err := svc.Ingest(context.Background(), "test.csv", []byte(csv))

	require.NoError(t, err)
	assert.Nil(t, result, "valid rows are not imported when any row fails")
	require.NotNil(t, rejection)
	assert.Equal(t, 1, rejection.TotalErrors)
	assert.Contains(t, rejection.Errors[0], "name is required")
}

func TestIngest_ErrorListCappedAtTen(t *testing.T) {
	svc, _ := testService(t, nil)

	var b strings.Builder
	b.WriteString("name,country_code,period,actual\n")
	for i := 0; i < 15; i++ {
		b.WriteString(fmt.Sprintf("CPI,US,2024-%02d,not-a-number\n", i%12+1))
	}

	_, rejection, err := svc.Ingest(context.Background(), "test.csv", []byte(b.String()))

	require.NoError(t, err)
	require.NotNil(t, rejection)
	assert.Len(t, rejection.Errors, 10)
	assert.Equal(t, 15, rejection.TotalErrors)
}

func TestIngest_MissingRequiredColumn(t *testing.T) {
	svc, _ := testService(t, nil)

	_, rejection, err := svc.Ingest(context.Background(), "test.csv", []byte("name,period\nCPI,2024-01\n"))

	require.NoError(t, err)
	require.NotNil(t, rejection)
	assert.Contains(t, rejection.Errors[0], "country_code")
}

func TestIngest_ValidFileReconcilesAndArchives(t *testing.T) {
	client := &mocks.Client{}
	client.On("BucketExists", mock.Anything, "csv-archive").Return(true, nil)
	client.On("PutObject", mock.Anything, "csv-archive", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)

	svc, mockDB := testService(t, client)

	mockDB.ExpectQuery("SELECT (.+) FROM `indicators`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "country_code"}))
	mockDB.ExpectBegin()
	mockDB.ExpectExec("INSERT INTO `indicators`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mockDB.ExpectCommit()
	mockDB.ExpectQuery("SELECT (.+) FROM `releases`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "indicator_id", "release_at", "period"}))
	mockDB.ExpectBegin()
	mockDB.ExpectExec("INSERT INTO `releases`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mockDB.ExpectCommit()

	csv := "name,country_code,period,actual,unit\n" +
		"CPI,us,2024-Q1,3.1,%\n"

	result, rejection, err := svc.Ingest(context.Background(), "q1.csv", []byte(csv))

	require.NoError(t, err)
	require.Nil(t, rejection)
	require.NotNil(t, result)
	assert.True(t, result.Success)
	assert.Equal(t, 1, result.IndicatorsUpserted)
	assert.Equal(t, 1, result.ReleasesInserted)
	require.NoError(t, mockDB.ExpectationsWereMet())
	client.AssertExpectations(t)
}

func TestIngest_UnrecognizedPeriodRejectsFile(t *testing.T) {
	svc, _ := testService(t, nil)

	csv := "name,country_code,period,actual\n" +
		"GDP,JP,FY2024,1.2\n"

	result, rejection, err := svc.Ingest(context.Background(), "test.csv", []byte(csv))

	require.NoError(t, err)
	assert.Nil(t, result)
	require.NotNil(t, rejection)
	assert.Equal(t, 1, rejection.TotalErrors)
	assert.Contains(t, rejection.Errors[0], `period "FY2024"`)
}

func TestArchiveFile_CreatesMissingBucket(t *testing.T) {
	client := &mocks.Client{}
	client.On("BucketExists", mock.Anything, "csv-archive").Return(false, nil)
	client.On("MakeBucket", mock.Anything, "csv-archive", mock.Anything).Return(nil)
	client.On("PutObject", mock.Anything, "csv-archive", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil)

	svc, _ := testService(t, client)

	svc.archiveFile(context.Background(), "q1.csv", []byte("name\n"))

	client.AssertExpectations(t)
}

func TestValidateRow_DecimalColumns(t *testing.T) {
	row := Row{Line: 2, Fields: map[string]string{
		"name": "CPI", "country_code": "US", "period": "2024-01",
		"actual": "3.1", "forecast": "abc",
	}}

	errors := validateRow(row)

	require.Len(t, errors, 1)
	assert.Contains(t, errors[0], "forecast")
}
