// Package aws provides retry utilities for AWS service calls.
package aws

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/aws/smithy-go"
)

// RetryConfig holds configuration for retry behavior with exponential backoff
type RetryConfig struct {
	MaxAttempts    int           // Maximum number of attempts (default: 5)
	InitialDelay   time.Duration // Delay before first retry (default: 1s)
	MaxDelay       time.Duration // Maximum delay between retries (default: 30s)
	BackoffFactor  float64       // Multiplier for exponential backoff (default: 2.0)
	JitterFraction float64       // Fraction of delay used for jitter (default: 0.1)
}

// DefaultRetryConfig returns the default retry configuration
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:    5,
		InitialDelay:   1 * time.Second,
		MaxDelay:       30 * time.Second,
		BackoffFactor:  2.0,
		JitterFraction: 0.1,
	}
}

// RetryWithBackoff executes an operation with exponential backoff retry logic.
// Non-retryable errors are returned immediately.
func RetryWithBackoff(ctx context.Context, operation func() error, config RetryConfig) error {
	var lastErr error
	delay := config.InitialDelay

	for attempt := 1; attempt <= config.MaxAttempts; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}
		lastErr = err

		if !isRetryableError(err) {
			return err
		}

		if attempt == config.MaxAttempts {
			break
		}

		jitter := time.Duration(float64(delay) * config.JitterFraction * (rand.Float64()*2 - 1))
		sleepTime := delay + jitter
		if sleepTime > config.MaxDelay {
			sleepTime = config.MaxDelay
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("operation cancelled: %w", ctx.Err())
		case <-time.After(sleepTime):
		}

		delay = time.Duration(float64(delay) * config.BackoffFactor)
	}

	return fmt.Errorf("operation failed after %d attempts: %w", config.MaxAttempts, lastErr)
}

// isRetryableError determines if an AWS error should be retried
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		// Throttling errors
		case "Throttling",
			"ThrottlingException",
			"TooManyRequestsException",
			"RequestLimitExceeded":
			return true
		// Transient service errors
		case "ServiceUnavailable",
			"ServiceUnavailableException",
			"InternalError",
			"InternalServerError",
			"InternalFailure",
			"RequestTimeout":
			return true
		}
	}

	return false
}
