package fetch

import (
	"context"
	"errors"
	"time"

	"econfeed/core/errs"
)

// Class is the retry classification of an error.
type Class int

const (
	// Terminal errors must surface immediately; retrying cannot help.
	Terminal Class = iota
	// Retryable errors may succeed on a later attempt.
	Retryable
)

// Classify decides whether an error is worth retrying. The retry loop
// consults this single function instead of branching ad hoc; anything not
// explicitly transient is terminal.
func Classify(err error) Class {
	var transient *errs.TransientSourceError
	if errors.As(err, &transient) {
		return Retryable
	}
	return Terminal
}

// Config controls the retry loop.
type Config struct {
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries int
	// BaseDelay is the delay before the first retry; it doubles per attempt.
	BaseDelay time.Duration
}

// DefaultConfig matches the observed provider behavior: 3 retries (4 total
// attempts) with a 500ms base delay.
func DefaultConfig() Config {
	return Config{MaxRetries: 3, BaseDelay: 500 * time.Millisecond}
}

func (c Config) withDefaults() Config {
	if c.MaxRetries < 0 {
		c.MaxRetries = 0
	}
	if c.BaseDelay <= 0 {
		c.BaseDelay = 500 * time.Millisecond
	}
	return c
}

// Backoff returns the delay before the given retry (1-based): base doubling
// per attempt.
func (c Config) Backoff(retry int) time.Duration {
	c = c.withDefaults()
	if retry <= 0 {
		return 0
	}
	return c.BaseDelay << (retry - 1)
}

// Do runs op with retry and exponential backoff. Terminal errors surface
// immediately; retryable errors are reattempted until the budget is spent,
// after which an ExhaustedRetriesError wrapping the last error is returned.
func Do(ctx context.Context, source string, cfg Config, op func(ctx context.Context) error) error {
	cfg = cfg.withDefaults()

	var lastErr error
	for attempt := 0; attempt <= cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			if err := sleep(ctx, cfg.Backoff(attempt)); err != nil {
				return err
			}
		}

		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}
		if Classify(lastErr) == Terminal {
			return lastErr
		}
	}

	return &errs.ExhaustedRetriesError{
		Source:   source,
		Attempts: cfg.MaxRetries + 1,
		Err:      lastErr,
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
