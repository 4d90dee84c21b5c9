// Package ratelimit implements token-bucket admission control for the
// HTTP surface. Every route except the health and metrics probes passes
// through a bucket before it may touch the view manager.
package ratelimit

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	admittedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sunwatch_ratelimit_admitted_total",
		Help: "Requests admitted by the rate limiter",
	})

	rejectedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sunwatch_ratelimit_rejected_total",
		Help: "Requests rejected by the rate limiter",
	})
)

// Bucket is a token bucket: capacity C, continuous refill at R tokens
// per second. A request is admitted while accumulated tokens >= 1.
type Bucket struct {
	mu         sync.Mutex
	capacity   float64
	rate       float64
	tokens     float64
	lastRefill time.Time

	// now is injectable for tests.
	now func() time.Time
}

// New creates a bucket that starts full.
func New(capacity int, perSecond float64) *Bucket {
	b := &Bucket{
		capacity: float64(capacity),
		rate:     perSecond,
		tokens:   float64(capacity),
		now:      time.Now,
	}
	b.lastRefill = b.now()
	return b
}

// Allow reports whether one request may proceed, consuming a token if so.
//
// Refill and consume happen as one atomic step under the lock: two
// near-simultaneous requests can never both act on a stale pre-refill
// count.
func (b *Bucket) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	elapsed := now.Sub(b.lastRefill).Seconds()
	b.tokens = min(b.capacity, b.tokens+elapsed*b.rate)
	b.lastRefill = now

	if b.tokens >= 1 {
		b.tokens--
		admittedTotal.Inc()
		return true
	}
	rejectedTotal.Inc()
	return false
}

// Tokens returns the current token count after refill. Intended for
// tests and diagnostics.
func (b *Bucket) Tokens() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	elapsed := now.Sub(b.lastRefill).Seconds()
	b.tokens = min(b.capacity, b.tokens+elapsed*b.rate)
	b.lastRefill = now
	return b.tokens
}
