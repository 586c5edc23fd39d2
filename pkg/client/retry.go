package client

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// Prometheus metrics for retry operations.
var (
	wmsRetriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wms_retries_total",
		Help: "Total number of retry attempts by error class",
	}, []string{"error_class"})

	wmsRetryBackoffSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "wms_retry_backoff_seconds",
		Help:    "Backoff duration for retries by error class",
		Buckets: []float64{0.5, 1, 2, 5, 10},
	}, []string{"error_class"})

	wmsRetryExhaustedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wms_retry_exhausted_total",
		Help: "Total number of times retry attempts were exhausted by error class",
	}, []string{"error_class"})
)

// RetryConfig holds the configuration for retry logic.
type RetryConfig struct {
	// MaxAttempts is the maximum number of attempts (including the initial request).
	MaxAttempts int

	// InitialBackoff is the initial backoff duration.
	InitialBackoff time.Duration

	// MaxBackoff is the maximum backoff duration.
	MaxBackoff time.Duration

	// BackoffMultiplier is the multiplier for exponential backoff.
	BackoffMultiplier float64
}

// DefaultRetryConfig returns the default retry configuration.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:       5,
		InitialBackoff:    500 * time.Millisecond,
		MaxBackoff:        10 * time.Second,
		BackoffMultiplier: 2.0,
	}
}

// errClass extracts the error class for metrics and logging.
func errClass(err error) ErrorClass {
	var re *RequestError
	if errors.As(err, &re) {
		return re.Class
	}
	return ErrorClassNetwork
}

// retryWithBackoff executes fn with exponential backoff retry logic. It
// respects context cancellation and adds jitter to prevent thundering herd.
// Permanent errors (404, other 4xx) are returned immediately.
func retryWithBackoff(ctx context.Context, cfg RetryConfig, logger zerolog.Logger, fn func() error) error {
	var lastErr error
	backoff := cfg.InitialBackoff

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		err := fn()
		if err == nil {
			if attempt > 1 {
				logger.Info().
					Int("attempt", attempt).
					Msg("Request succeeded after retry")
			}
			return nil
		}

		lastErr = err

		if !shouldRetry(err) {
			return lastErr
		}

		if attempt >= cfg.MaxAttempts {
			break
		}

		class := string(errClass(err))
		wmsRetriesTotal.WithLabelValues(class).Inc()

		// ±20% jitter
		jitter := time.Duration(float64(backoff) * (0.8 + rand.Float64()*0.4))
		wmsRetryBackoffSeconds.WithLabelValues(class).Observe(jitter.Seconds())

		logger.Warn().
			Err(err).
			Str("error_class", class).
			Int("attempt", attempt).
			Dur("backoff", jitter).
			Msg("Retrying request after backoff")

		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %v", ErrContextCancelled, ctx.Err())
		case <-time.After(jitter):
		}

		backoff = time.Duration(float64(backoff) * cfg.BackoffMultiplier)
		if backoff > cfg.MaxBackoff {
			backoff = cfg.MaxBackoff
		}
	}

	wmsRetryExhaustedTotal.WithLabelValues(string(errClass(lastErr))).Inc()
	logger.Warn().
		Int("max_attempts", cfg.MaxAttempts).
		Msg("Retry attempts exhausted")

	return fmt.Errorf("%w after %d attempts: %v", ErrRetryExhausted, cfg.MaxAttempts, lastErr)
}
