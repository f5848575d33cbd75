// Package resilience guards calls to the receivables API: a circuit
// breaker that fails fast while the API is down, a bulkhead that caps
// in-flight requests, and an opt-in retry used for list reads only.
package resilience

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"

	"github.com/boddenberg/ardesk-go/internal/domain"

	"github.com/sony/gobreaker"
)

// Config holds resilience parameters.
// MaxReadRetries defaults to zero: a failed load is not retried unless
// configured. Mutations never go through RetryWithBackoff.
type Config struct {
	MaxReadRetries int
	InitialBackoff time.Duration
	MaxConcurrency int
}

// RetryWithBackoff executes fn up to MaxReadRetries+1 times with
// exponential backoff + jitter. It respects context cancellation.
// A 4xx rejection is returned at once: asking again gets the same answer.
func RetryWithBackoff(ctx context.Context, cfg Config, fn func() error) error {
	var lastErr error
	for attempt := 0; attempt <= cfg.MaxReadRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn()
		if lastErr == nil || isClientRejection(lastErr) {
			return lastErr
		}

		if attempt < cfg.MaxReadRetries {
			backoff := time.Duration(math.Pow(2, float64(attempt))) * cfg.InitialBackoff
			wait := backoff
			if half := int64(backoff / 2); half > 0 {
				wait += time.Duration(rand.Int63n(half))
			}

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
	}
	return lastErr
}

// NewCircuitBreaker creates a circuit breaker for one upstream API.
// Only transport failures and 5xx responses count against it; a 4xx
// rejection means the API is up.
func NewCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,                // half-open: allow 3 requests
		Interval:    30 * time.Second, // closed: reset counters every 30s
		Timeout:     10 * time.Second, // open -> half-open after 10s
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 5 && failureRatio >= 0.6
		},
		IsSuccessful: countsAsSuccess,
	})
}

func countsAsSuccess(err error) bool {
	return err == nil || isClientRejection(err)
}

func isClientRejection(err error) bool {
	var rejected *domain.ErrServerRejected
	return errors.As(err, &rejected) && rejected.StatusCode < 500
}

// Bulkhead limits concurrent access to a resource.
type Bulkhead struct {
	sem chan struct{}
}

// NewBulkhead creates a bulkhead with the given max concurrency.
// A non-positive value means one slot.
func NewBulkhead(maxConcurrency int) *Bulkhead {
	if maxConcurrency < 1 {
		maxConcurrency = 1
	}
	return &Bulkhead{sem: make(chan struct{}, maxConcurrency)}
}

// Acquire blocks until a slot is available or context is cancelled.
func (b *Bulkhead) Acquire(ctx context.Context) error {
	select {
	case b.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release frees a slot.
func (b *Bulkhead) Release() {
	<-b.sem
}
