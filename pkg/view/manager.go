package view

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Common errors returned by the manager.
var (
	// ErrNoViews is returned when a manager is constructed without views.
	ErrNoViews = errors.New("at least one view is required")

	// ErrRenderFailed wraps a view's render error.
	ErrRenderFailed = errors.New("render failed")
)

// Manager owns the ordered view registry, the current index, and the
// render-serialization lock. Its operations are callable concurrently
// from the scheduler, the gesture recognizer, and HTTP handlers.
type Manager struct {
	// mu guards the current index AND the whole render path. Holding it
	// for the full render (not just the index read) is what guarantees
	// at most one in-flight render system-wide.
	mu        sync.Mutex
	views     []View
	index     int
	lastFrame *Frame

	// wake is the latched wake signal: capacity 1, non-blocking send.
	// Receiving from it consumes (clears) the latch, so a wait and its
	// clear are a single atomic step. Signals arriving before a wait
	// collapse into one pending wake.
	wake chan struct{}

	logger zerolog.Logger
}

// NewManager creates a manager over a fixed, ordered view registry.
func NewManager(views []View, defaultIndex int) (*Manager, error) {
	if len(views) == 0 {
		return nil, ErrNoViews
	}
	if defaultIndex < 0 || defaultIndex >= len(views) {
		return nil, fmt.Errorf("default index %d out of range [0, %d)", defaultIndex, len(views))
	}

	return &Manager{
		views:  views,
		index:  defaultIndex,
		wake:   make(chan struct{}, 1),
		logger: log.With().Str("component", "view-manager").Logger(),
	}, nil
}

// Count returns the number of registered views.
func (m *Manager) Count() int {
	return len(m.views)
}

// Index returns the current view index.
func (m *Manager) Index() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.index
}

// Current returns the current view.
func (m *Manager) Current() View {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.views[m.index]
}

// CurrentInterval returns the refresh cadence of the current view.
func (m *Manager) CurrentInterval() time.Duration {
	return m.Current().Interval()
}

// Next navigates to the next view (modulo N) and signals the wake latch
// so a sleeping scheduler re-renders promptly instead of waiting out the
// current view's cadence.
func (m *Manager) Next() {
	m.navigate(1)
	navigationsTotal.WithLabelValues("next").Inc()
}

// Prev navigates to the previous view (modulo N) and signals the wake latch.
func (m *Manager) Prev() {
	m.navigate(-1)
	navigationsTotal.WithLabelValues("prev").Inc()
}

func (m *Manager) navigate(delta int) {
	m.mu.Lock()
	n := len(m.views)
	m.index = ((m.index+delta)%n + n) % n
	name := m.views[m.index].Name()
	index := m.index
	m.mu.Unlock()

	m.logger.Debug().Str("view", name).Int("index", index).Msg("Navigated")
	m.Signal()
}

// Signal latches a wake. Repeated signals before a wait collapse to one.
func (m *Manager) Signal() {
	select {
	case m.wake <- struct{}{}:
	default:
	}
}

// Wake returns the latched wake channel. Receiving from it consumes the
// pending signal; callers must treat a receive as both the wake and the
// clear, and must never drain the channel separately after waiting (that
// re-opens the lost-wakeup window).
func (m *Manager) Wake() <-chan struct{} {
	return m.wake
}

// RenderCurrent renders the current view while holding the render lock
// for the entire call. Concurrent callers block; none observe a partial
// Frame. On success the frame is also retained as the last known good
// frame for screenshot fallback.
func (m *Manager) RenderCurrent(ctx context.Context) (*Frame, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	v := m.views[m.index]
	start := time.Now()

	frame, err := v.Render(ctx)
	renderDuration.WithLabelValues(v.Name()).Observe(time.Since(start).Seconds())

	if err != nil {
		rendersTotal.WithLabelValues(v.Name(), "error").Inc()
		return nil, fmt.Errorf("%w: view %s: %v", ErrRenderFailed, v.Name(), err)
	}

	rendersTotal.WithLabelValues(v.Name(), "ok").Inc()
	m.lastFrame = frame
	return frame, nil
}

// LastFrame returns the most recent successfully rendered frame, or nil
// if nothing has rendered yet. Stale-but-valid frames are preferred over
// no frame at all.
func (m *Manager) LastFrame() *Frame {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastFrame
}
