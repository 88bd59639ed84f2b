package retry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/thqlabel/thqlabel/internal/pkg/logger"
)

// RetryableFunc represents a function that can be retried
type RetryableFunc func(ctx context.Context) error

// Config holds retry configuration
type Config struct {
	MaxRetries    int              // Maximum number of retry attempts
	BaseDelay     time.Duration    // Base delay between retries
	MaxDelay      time.Duration    // Maximum delay between retries
	Multiplier    float64          // Exponential backoff multiplier
	Jitter        bool             // Add up to 10% random delay
	RetryableFunc func(error) bool // Decides whether an error is worth another attempt
}

// DefaultConfig retries everything except permanent errors
func DefaultConfig() Config {
	return Config{
		MaxRetries:    3,
		BaseDelay:     200 * time.Millisecond,
		MaxDelay:      5 * time.Second,
		Multiplier:    2.0,
		Jitter:        true,
		RetryableFunc: IsRetryable,
	}
}

// permanentError marks an error that must not be retried
type permanentError struct {
	err error
}

func (p *permanentError) Error() string { return p.err.Error() }
func (p *permanentError) Unwrap() error { return p.err }

// Permanent wraps err so that the retrier gives up immediately
func Permanent(err error) error {
	if err == nil {
		return nil
	}
	return &permanentError{err: err}
}

// IsRetryable reports whether err is neither permanent nor a context error
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var p *permanentError
	if errors.As(err, &p) {
		return false
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// Retrier handles retry logic with exponential backoff
type Retrier struct {
	config Config
	logger *logger.ZapLogger
}

// New creates a new retrier with the given configuration
func New(config Config, l *logger.ZapLogger) *Retrier {
	if config.RetryableFunc == nil {
		config.RetryableFunc = IsRetryable
	}
	return &Retrier{config: config, logger: l}
}

// NewWithDefaults creates a new retrier with default configuration
func NewWithDefaults(l *logger.ZapLogger) *Retrier {
	return New(DefaultConfig(), l)
}

// Execute runs fn until it succeeds, returns a non-retryable error, or the
// attempts are exhausted
func (r *Retrier) Execute(ctx context.Context, fn RetryableFunc) error {
	var lastErr error

	for attempt := 0; attempt <= r.config.MaxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := fn(ctx)
		if err == nil {
			if attempt > 0 {
				r.logger.Info("Call succeeded after retries", logger.Int("attempts", attempt+1))
			}
			return nil
		}
		lastErr = err

		if !r.config.RetryableFunc(err) {
			var p *permanentError
			if errors.As(err, &p) {
				return p.err
			}
			return err
		}

		if attempt == r.config.MaxRetries {
			break
		}

		delay := r.calculateDelay(attempt)
		r.logger.Debug("Call failed, retrying",
			logger.Err(err),
			logger.Int("attempt", attempt+1),
			logger.Duration("delay", delay))

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}

	r.logger.Warn("Call failed after all retries",
		logger.Err(lastErr),
		logger.Int("attempts", r.config.MaxRetries+1))

	return fmt.Errorf("retry limit exceeded after %d attempts: %w", r.config.MaxRetries+1, lastErr)
}

func (r *Retrier) calculateDelay(attempt int) time.Duration {
	delay := float64(r.config.BaseDelay) * math.Pow(r.config.Multiplier, float64(attempt))
	if delay > float64(r.config.MaxDelay) {
		delay = float64(r.config.MaxDelay)
	}
	if r.config.Jitter {
		delay += delay * 0.1 * rand.Float64()
	}
	return time.Duration(delay)
}
