package services

import (
	"context"
	"math"
	"time"

	"jira-ticket-viewer/internal/common"
)

// RetryPolicy runs an operation until it succeeds, fails with a
// non-retryable error, or MaxRetries retries have been spent. Attempts run
// sequentially with a delay of BaseDelay * Multiplier^attempt between them.
type RetryPolicy struct {
	MaxRetries  int
	BaseDelay   time.Duration
	Multiplier  float64
	IsRetryable func(error) bool

	// Sleep waits between attempts; nil means a context-aware timer.
	Sleep func(ctx context.Context, d time.Duration) error
	// OnRetry is called before each wait
	OnRetry func(attempt int, delay time.Duration, err error)
}

// NewRetryPolicy builds the policy described by the credentials
func NewRetryPolicy(creds common.Credentials) RetryPolicy {
	return RetryPolicy{
		MaxRetries:  creds.MaxRetries,
		BaseDelay:   creds.RetryBaseDelay,
		Multiplier:  creds.BackoffMultiplier,
		IsRetryable: common.IsRetryable,
	}
}

// maxDelay caps the backoff at the largest representable duration
const maxDelay = time.Duration(math.MaxInt64)

// Delay returns the wait after the given 0-indexed attempt. Schedules that
// outgrow time.Duration are clamped to maxDelay.
func (p RetryPolicy) Delay(attempt int) time.Duration {
	d := float64(p.BaseDelay) * math.Pow(p.Multiplier, float64(attempt))
	if math.IsNaN(d) || d < 0 || d >= float64(maxDelay) {
		return maxDelay
	}
	return time.Duration(d)
}

// Execute runs operation with the policy. The error returned after the last
// attempt is that attempt's error, not the first one seen.
func (p RetryPolicy) Execute(ctx context.Context, operation func(ctx context.Context, attempt int) error) error {
	for attempt := 0; ; attempt++ {
		err := operation(ctx, attempt)
		if err == nil {
			return nil
		}

		if attempt >= p.MaxRetries || !p.retryable(err) || ctx.Err() != nil {
			return err
		}

		delay := p.Delay(attempt)
		if p.OnRetry != nil {
			p.OnRetry(attempt, delay, err)
		}

		if sleepErr := p.sleep(ctx, delay); sleepErr != nil {
			return err
		}
	}
}

func (p RetryPolicy) retryable(err error) bool {
	if p.IsRetryable == nil {
		return common.IsRetryable(err)
	}
	return p.IsRetryable(err)
}

func (p RetryPolicy) sleep(ctx context.Context, d time.Duration) error {
	if p.Sleep != nil {
		return p.Sleep(ctx, d)
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
