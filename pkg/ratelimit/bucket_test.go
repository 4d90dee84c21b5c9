package ratelimit

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func newTestBucket(capacity int, perSecond float64) (*Bucket, *time.Time) {
	t := time.Unix(1000, 0)
	b := New(capacity, perSecond)
	b.now = func() time.Time { return t }
	b.lastRefill = t
	return b, &t
}

func TestBurstAdmitsExactlyCapacity(t *testing.T) {
	b, _ := newTestBucket(10, 10)

	admitted := 0
	for i := 0; i < 15; i++ {
		if b.Allow() {
			admitted++
		}
	}

	if admitted != 10 {
		t.Errorf("admitted %d of 15 burst requests, want exactly 10", admitted)
	}
}

func TestConcurrentBurstAdmitsExactlyCapacity(t *testing.T) {
	b, _ := newTestBucket(10, 10)

	var admitted, rejected atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 15; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if b.Allow() {
				admitted.Add(1)
			} else {
				rejected.Add(1)
			}
		}()
	}
	wg.Wait()

	if admitted.Load() != 10 || rejected.Load() != 5 {
		t.Errorf("admitted=%d rejected=%d, want 10/5", admitted.Load(), rejected.Load())
	}
}

func TestRefillAfterOneSecond(t *testing.T) {
	b, clock := newTestBucket(10, 10)

	for i := 0; i < 10; i++ {
		b.Allow()
	}
	if b.Allow() {
		t.Fatal("empty bucket must reject")
	}

	*clock = clock.Add(time.Second)
	if !b.Allow() {
		t.Error("request after 1s refill must be admitted")
	}
}

func TestRefillIsCappedAtCapacity(t *testing.T) {
	b, clock := newTestBucket(5, 10)

	*clock = clock.Add(time.Hour)
	if got := b.Tokens(); got != 5 {
		t.Errorf("tokens after long idle = %v, want capped at 5", got)
	}
}

func TestPartialRefill(t *testing.T) {
	b, clock := newTestBucket(10, 2)

	for i := 0; i < 10; i++ {
		b.Allow()
	}

	// 2 tokens/sec: after 500ms only one token has accumulated.
	*clock = clock.Add(500 * time.Millisecond)
	if !b.Allow() {
		t.Error("expected one token after 500ms at 2/sec")
	}
	if b.Allow() {
		t.Error("expected only one token after 500ms at 2/sec")
	}
}
