package ratelimit

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Decision is the outcome of one limit check. It is a plain result, not an
// error; callers branch on Allowed.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Limiter implements a sliding-window rate limit over the request log. The
// count is recomputed from the store on every check; there is no in-memory
// counter or bucket.
type Limiter struct {
	db     *gorm.DB
	logger *zap.Logger
	cfg    Config

	now func() time.Time
}

// NewLimiter creates a limiter backed by the given database.
func NewLimiter(db *gorm.DB, logger *zap.Logger, cfg Config) *Limiter {
	return &Limiter{db: db, logger: logger, cfg: cfg, now: time.Now}
}

// CheckLimit counts the credential's requests within the trailing window and
// decides whether one more is allowed. A failing count query fails OPEN: the
// request is allowed and the error is logged, trading enforcement for
// availability.
//
// ResetAt is now + window, so it drifts per call instead of marking a fixed
// window edge.
func (l *Limiter) CheckLimit(ctx context.Context, credentialID, tier string) Decision {
	now := l.now()
	window := time.Duration(l.cfg.WindowSeconds) * time.Second
	limit := l.cfg.LimitFor(tier)
	resetAt := now.Add(window)

	var count int64
	err := l.db.WithContext(ctx).
		Model(&RequestLog{}).
		Where("credential_id = ? AND created_at >= ?", credentialID, now.Add(-window)).
		Count(&count).Error
	if err != nil {
		l.logger.Error("Rate limit count query failed, failing open",
			zap.String("credential_id", credentialID),
			zap.Error(err))
		return Decision{Allowed: true, Limit: limit, Remaining: limit, ResetAt: resetAt}
	}

	remaining := limit - int(count)
	if remaining < 0 {
		remaining = 0
	}

	return Decision{
		Allowed:   int(count) < limit,
		Limit:     limit,
		Remaining: remaining,
		ResetAt:   resetAt,
	}
}

// Record appends one request row to the log. Failures are logged and
// swallowed; a lost audit row must not fail the request.
func (l *Limiter) Record(ctx context.Context, row RequestLog) {
	if err := l.db.WithContext(ctx).Create(&row).Error; err != nil {
		l.logger.Error("Failed to record request log row", zap.Error(err))
	}
}
