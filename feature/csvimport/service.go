package csvimport

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"econfeed/core/period"
	"econfeed/core/storage"
	"econfeed/feature/importer"
	"econfeed/feature/sources"

	"github.com/minio/minio-go/v7"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// maxReportedErrors caps the validation-error list in a rejection response.
const maxReportedErrors = 10

// requiredColumns must all appear in the header.
var requiredColumns = []string{"name", "country_code", "period", "actual"}

// decimalColumns must hold a parseable decimal when non-empty.
var decimalColumns = []string{"actual", "forecast", "previous", "revised"}

// UploadResult is the success response for one accepted file.
type UploadResult struct {
	Success            bool `json:"success"`
	IndicatorsUpserted int  `json:"indicatorsUpserted"`
	ReleasesInserted   int  `json:"releasesInserted"`
}

// Rejection carries the structured validation-error list for a rejected
// file: the first errors plus the total count. The whole file is rejected
// when any row fails; no partial acceptance.
type Rejection struct {
	Errors      []string `json:"errors"`
	TotalErrors int      `json:"totalErrors"`
}

// Service turns an uploaded CSV file into reconciled indicator and release
// rows, archiving accepted files to object storage when configured.
type Service struct {
	engine  *importer.Engine
	client  storage.Client
	bucket  string
	archive bool
	logger  *zap.Logger
}

// NewService creates the CSV ingestion service. A nil storage client
// disables archiving.
func NewService(engine *importer.Engine, client storage.Client, bucket string, logger *zap.Logger) *Service {
	return &Service{
		engine:  engine,
		client:  client,
		bucket:  bucket,
		archive: client != nil && bucket != "",
		logger:  logger,
	}
}

// Ingest parses, validates and reconciles one file. A Rejection is returned
// when any row fails validation; an error only on systemic failures.
func (s *Service) Ingest(ctx context.Context, filename string, data []byte) (*UploadResult, *Rejection, error) {
	rows, err := Parse(bytes.NewReader(data))
	if err != nil {
		return nil, &Rejection{Errors: []string{err.Error()}, TotalErrors: 1}, nil
	}

	points, rejection := validate(rows)
	if rejection != nil {
		return nil, rejection, nil
	}

	stats, err := s.engine.Reconcile(ctx, points)
	if err != nil {
		return nil, nil, err
	}

	if s.archive {
		s.archiveFile(ctx, filename, data)
	}

	s.logger.Info("CSV file ingested",
		zap.String("filename", filename),
		zap.Int("rows", len(rows)),
		zap.Int("indicators", stats.Indicators),
		zap.Int("inserted", stats.Inserted()),
		zap.Int("updated", stats.Updated()))

	return &UploadResult{
		Success:            true,
		IndicatorsUpserted: stats.IndicatorsInserted + stats.IndicatorsUpdated,
		ReleasesInserted:   stats.ReleasesInserted,
	}, nil, nil
}

// validate checks every row and collects all failures; any failure rejects
// the whole file.
func validate(rows []Row) ([]sources.DataPoint, *Rejection) {
	if len(rows) == 0 {
		return nil, &Rejection{Errors: []string{"file has no data rows"}, TotalErrors: 1}
	}

	for _, col := range requiredColumns {
		if _, ok := rows[0].Fields[col]; !ok {
			return nil, &Rejection{
				Errors:      []string{fmt.Sprintf("missing required column %q", col)},
				TotalErrors: 1,
			}
		}
	}

	var allErrors []string
	points := make([]sources.DataPoint, 0, len(rows))
	for _, row := range rows {
		rowErrors := validateRow(row)
		if len(rowErrors) > 0 {
			allErrors = append(allErrors, rowErrors...)
			continue
		}

		isoDate, label := period.Normalize(strings.TrimSpace(row.Fields["period"]))
		points = append(points, sources.DataPoint{
			NameHint:    strings.TrimSpace(row.Fields["name"]),
			CountryCode: strings.ToUpper(strings.TrimSpace(row.Fields["country_code"])),
			Category:    strings.TrimSpace(row.Fields["category"]),
			IsoDate:     isoDate,
			PeriodLabel: label,
			Value:       strings.TrimSpace(row.Fields["actual"]),
			Forecast:    strings.TrimSpace(row.Fields["forecast"]),
			Previous:    strings.TrimSpace(row.Fields["previous"]),
			Revised:     strings.TrimSpace(row.Fields["revised"]),
			Unit:        strings.TrimSpace(row.Fields["unit"]),
			SourceName:  strings.TrimSpace(row.Fields["source_name"]),
			SourceURL:   strings.TrimSpace(row.Fields["source_url"]),
		})
	}

	if len(allErrors) > 0 {
		capped := allErrors
		if len(capped) > maxReportedErrors {
			capped = capped[:maxReportedErrors]
		}
		return nil, &Rejection{Errors: capped, TotalErrors: len(allErrors)}
	}

	return points, nil
}

func validateRow(row Row) []string {
	var errors []string

	for _, col := range []string{"name", "country_code", "period"} {
		if strings.TrimSpace(row.Fields[col]) == "" {
			errors = append(errors, fmt.Sprintf("row %d: %s is required", row.Line, col))
		}
	}

	// A period the normalizer cannot turn into a date would make the engine
	// drop the release later with no trace in the response; reject it here.
	if p := strings.TrimSpace(row.Fields["period"]); p != "" {
		isoDate, _ := period.Normalize(p)
		if _, err := period.Date(isoDate); err != nil {
			errors = append(errors, fmt.Sprintf("row %d: period %q is not a recognized period", row.Line, p))
		}
	}

	for _, col := range decimalColumns {
		v := strings.TrimSpace(row.Fields[col])
		if v == "" {
			continue
		}
		if _, err := decimal.NewFromString(v); err != nil {
			errors = append(errors, fmt.Sprintf("row %d: %s %q is not a decimal", row.Line, col, v))
		}
	}

	return errors
}

// archiveFile stores the accepted upload for audit. Failures are logged and
// swallowed; the import already succeeded.
func (s *Service) archiveFile(ctx context.Context, filename string, data []byte) {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		s.logger.Error("Failed to check archive bucket",
			zap.String("bucket", s.bucket),
			zap.Error(err))
		return
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			s.logger.Error("Failed to create archive bucket",
				zap.String("bucket", s.bucket),
				zap.Error(err))
			return
		}
	}

	object := fmt.Sprintf("uploads/%s-%s", time.Now().UTC().Format("20060102T150405"), filename)
	_, err = s.client.PutObject(ctx, s.bucket, object, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "text/csv"})
	if err != nil {
		s.logger.Error("Failed to archive CSV upload",
			zap.String("object", object),
			zap.Error(err))
	}
}
