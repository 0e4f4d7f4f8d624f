package retry

import (
	"context"

	"github.com/cenkalti/backoff/v4"

	"github.com/rupiksha/go-ppob-transaction/internal/common/log"
	"github.com/rupiksha/go-ppob-transaction/internal/config"
)

const DefaultMaxRetries uint64 = 3

type Retryer interface {
	Retry(ctx context.Context, operation, exhaustedCallback func() error) error
	StopRetryWithErr(err error) error
}

type exponentialBackoff struct {
	ebCfg *config.ExponentialBackOffConfig
}

// NewExponentialBackOff inits a Retryer with exponential backoff.
//
// Example:
//
//	Retry(ctx, func() error { return queryStatus() }, func() error { return markAmbiguous() })
func NewExponentialBackOff(ebCfg *config.ExponentialBackOffConfig) Retryer {
	if ebCfg.MaxBackoffTime < 0 {
		ebCfg.MaxBackoffTime = backoff.DefaultMaxElapsedTime
	}

	if ebCfg.BackoffMultiplier <= 0 {
		ebCfg.BackoffMultiplier = backoff.DefaultMultiplier
	}

	if ebCfg.MaxRetries <= 0 {
		ebCfg.MaxRetries = DefaultMaxRetries
	}

	return &exponentialBackoff{ebCfg: ebCfg}
}

// Retry keeps running "operation" until it succeeds or retries are
// exhausted; "exhaustedCallback" runs once on exhaustion and its error is
// returned.
func (r *exponentialBackoff) Retry(ctx context.Context, operation, exhaustedCallback func() error) error {
	eb := backoff.NewExponentialBackOff()
	eb.MaxElapsedTime = r.ebCfg.MaxBackoffTime
	eb.Multiplier = r.ebCfg.BackoffMultiplier

	err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(eb, r.ebCfg.MaxRetries), ctx))
	if err != nil {
		log.Debug(ctx, "retries exhausted", log.Err(err))
		if err := exhaustedCallback(); err != nil {
			return err
		}
		return nil
	}

	return nil
}

// StopRetryWithErr aborts the retry loop. Call from inside "operation".
func (r *exponentialBackoff) StopRetryWithErr(err error) error {
	return backoff.Permanent(err)
}
