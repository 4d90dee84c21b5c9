package cache

import (
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Yearly caches a single value for one calendar year. While the
// requested year matches the cached one, the underlying computation is
// short-circuited entirely.
type Yearly[T any] struct {
	name string

	mu    sync.Mutex
	year  int
	value T
	valid bool
	sf    singleflight.Group
}

// NewYearly creates a named per-year cache. The name labels its metrics.
func NewYearly[T any](name string) *Yearly[T] {
	return &Yearly[T]{name: name}
}

// GetOrCompute returns the cached value when year matches, else invokes
// compute once (concurrent callers share the flight) and replaces the
// slot. The lock is never held across compute.
func (c *Yearly[T]) GetOrCompute(year int, compute func() (T, error)) (T, error) {
	c.mu.Lock()
	if c.valid && c.year == year {
		v := c.value
		c.mu.Unlock()
		cacheHits.WithLabelValues(c.name).Inc()
		return v, nil
	}
	c.mu.Unlock()
	cacheMisses.WithLabelValues(c.name).Inc()

	v, err, _ := c.sf.Do(strconv.Itoa(year), func() (any, error) {
		c.mu.Lock()
		if c.valid && c.year == year {
			v := c.value
			c.mu.Unlock()
			return v, nil
		}
		c.mu.Unlock()

		val, err := compute()
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.year = year
		c.value = val
		c.valid = true
		cacheEntries.WithLabelValues(c.name).Set(1)
		c.mu.Unlock()

		return val, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// Year returns the currently cached year and whether the slot is valid.
func (c *Yearly[T]) Year() (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.year, c.valid
}
