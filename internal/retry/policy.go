// Package retry provides the opt-in backoff policy wrapped around uploads.
// The base publish flow is a single attempt; a configured policy retries
// only failures classified as transient.
package retry

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/pkgship/internal/config"
	"git.home.luguber.info/inful/pkgship/internal/logfields"
)

// Policy encapsulates retry/backoff settings for transient failures.
// It is immutable after construction.
type Policy struct {
	Mode       config.RetryBackoffMode // fixed|linear|exponential
	Initial    time.Duration           // base delay
	Max        time.Duration           // cap for growth
	MaxRetries int                     // maximum retry attempts after the first failure
}

// None returns the single-attempt policy.
func None() Policy {
	return Policy{Mode: config.RetryBackoffLinear, Initial: time.Second, Max: 30 * time.Second, MaxRetries: 0}
}

// FromConfig builds a policy from optional config; nil means single attempt.
// Zero/invalid values fall back to defaults (linear, 1s initial, 30s cap).
func FromConfig(rc *config.RetryConfig) Policy {
	p := None()
	if rc == nil {
		return p
	}
	if rc.MaxRetries > 0 {
		p.MaxRetries = rc.MaxRetries
	}
	if rc.InitialSeconds > 0 {
		p.Initial = time.Duration(rc.InitialSeconds) * time.Second
	}
	if rc.MaxSeconds > 0 {
		p.Max = time.Duration(rc.MaxSeconds) * time.Second
	}
	switch rc.Mode {
	case config.RetryBackoffFixed, config.RetryBackoffLinear, config.RetryBackoffExponential:
		p.Mode = rc.Mode
	default:
		// unknown -> keep default
	}
	if p.Initial > p.Max {
		p.Initial = p.Max
	}
	return p
}

// Delay returns the backoff delay for the given retry attempt number (1-based: first retry => 1).
func (p Policy) Delay(retryCount int) time.Duration {
	if retryCount <= 0 {
		return 0
	}
	switch p.Mode {
	case config.RetryBackoffFixed:
		return p.Initial
	case config.RetryBackoffExponential:
		d := p.Initial * (1 << (retryCount - 1))
		if d > p.Max {
			return p.Max
		}
		return d
	default: // linear
		d := time.Duration(retryCount) * p.Initial
		if d > p.Max {
			return p.Max
		}
		return d
	}
}

// Run invokes fn, retrying up to MaxRetries additional times while the
// returned error is classified retryable by isRetryable. The last error is
// returned once attempts are exhausted or a non-retryable failure occurs.
func (p Policy) Run(ctx context.Context, fn func() error, isRetryable func(error) bool) error {
	var err error
	for attempt := 0; ; attempt++ {
		err = fn()
		if err == nil || attempt >= p.MaxRetries || !isRetryable(err) {
			return err
		}
		slog.Debug("Retrying after transient failure",
			logfields.Attempt(attempt+1), logfields.Error(err))
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.Delay(attempt + 1)):
		}
	}
}
