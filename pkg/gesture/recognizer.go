// Package gesture classifies raw touch samples into discrete tap and
// swipe navigation commands.
//
// A single goroutine consumes (x, y, pressed) samples from an input
// source and drives a small state machine: Idle -> Tracking on press,
// back to Idle on release via Tap, Swipe, or Cancel. Gesture state is
// owned exclusively by that goroutine; navigation callbacks are the only
// way anything escapes it.
package gesture

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var gesturesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "sunwatch_gestures_total",
	Help: "Classified gestures by kind (tap, swipe_left, swipe_right, cancel, debounced)",
}, []string{"kind"})

// Sample is one raw touch sample from the input device.
type Sample struct {
	X       int
	Y       int
	Pressed bool
}

// Source is a blocking stream of touch samples. Next returns io.EOF (or
// any other error) when the stream ends; the recognizer then stops.
type Source interface {
	Next(ctx context.Context) (Sample, error)
}

// Navigator receives the navigation intents the recognizer emits.
// *view.Manager satisfies it.
type Navigator interface {
	Next()
	Prev()
}

// Config holds gesture classification thresholds and the button geometry
// of the navigation bar.
type Config struct {
	// SwipeThreshold is the minimum |dx| in pixels for a swipe.
	SwipeThreshold int

	// SwipeMaxDuration is the maximum press duration for a swipe.
	SwipeMaxDuration time.Duration

	// TapThreshold is the maximum |dx| and |dy| in pixels for a tap.
	TapThreshold int

	// TapMaxDuration is the maximum press duration for a tap.
	TapMaxDuration time.Duration

	// Cooldown is the refractory period after any classified gesture.
	// Presses released within it are suppressed (release bounce).
	Cooldown time.Duration

	// DisplayWidth, DisplayHeight and NavBarHeight define the navigation
	// button hit regions: the bottom NavBarHeight strip, left and right
	// NavButtonWidth pixels.
	DisplayWidth   int
	DisplayHeight  int
	NavBarHeight   int
	NavButtonWidth int
}

// DefaultConfig returns thresholds tuned for a 480x320 resistive panel.
func DefaultConfig() Config {
	return Config{
		SwipeThreshold:   80,
		SwipeMaxDuration: 600 * time.Millisecond,
		TapThreshold:     30,
		TapMaxDuration:   400 * time.Millisecond,
		Cooldown:         150 * time.Millisecond,
		DisplayWidth:     480,
		DisplayHeight:    320,
		NavBarHeight:     40,
		NavButtonWidth:   60,
	}
}

// Recognizer consumes touch samples and emits navigation intents.
type Recognizer struct {
	cfg    Config
	source Source
	nav    Navigator
	logger zerolog.Logger

	// now is injectable for tests.
	now func() time.Time

	// Gesture state, owned by the Run goroutine. hasStart is an explicit
	// flag: (0, 0) is a valid touch point, so "is tracking" must never be
	// inferred from coordinate values.
	hasStart    bool
	startX      int
	startY      int
	startTime   time.Time
	curX        int
	curY        int
	lastGesture time.Time
}

// New creates a recognizer.
func New(cfg Config, source Source, nav Navigator) *Recognizer {
	return &Recognizer{
		cfg:    cfg,
		source: source,
		nav:    nav,
		logger: log.With().Str("component", "gesture").Logger(),
		now:    time.Now,
	}
}

// Run consumes samples until ctx is cancelled or the source ends.
// It is intended to run on its own goroutine.
func (r *Recognizer) Run(ctx context.Context) error {
	r.logger.Info().Msg("Gesture recognizer started")

	for {
		sample, err := r.source.Next(ctx)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
				r.logger.Info().Msg("Gesture recognizer stopped")
				return nil
			}
			r.logger.Error().Err(err).Msg("Touch source failed")
			return err
		}
		r.process(sample)
	}
}

func (r *Recognizer) process(s Sample) {
	switch {
	case s.Pressed && !r.hasStart:
		r.hasStart = true
		r.startX = s.X
		r.startY = s.Y
		r.startTime = r.now()
		r.curX = s.X
		r.curY = s.Y

	case s.Pressed:
		// Position update while tracking.
		r.curX = s.X
		r.curY = s.Y

	case r.hasStart:
		r.curX = s.X
		r.curY = s.Y
		r.classifyRelease()
		r.hasStart = false
	}
}

// classifyRelease runs the release classification in Tracking state.
func (r *Recognizer) classifyRelease() {
	now := r.now()

	if now.Sub(r.lastGesture) < r.cfg.Cooldown {
		gesturesTotal.WithLabelValues("debounced").Inc()
		r.logger.Debug().Msg("Gesture suppressed by cooldown")
		return
	}

	dx := r.curX - r.startX
	dy := r.curY - r.startY
	dt := now.Sub(r.startTime)

	r.logger.Debug().
		Int("dx", dx).
		Int("dy", dy).
		Dur("duration", dt).
		Msg("Touch released")

	switch {
	case abs(dx) >= r.cfg.SwipeThreshold && dt < r.cfg.SwipeMaxDuration && abs(dx) > abs(dy):
		if dx < 0 {
			gesturesTotal.WithLabelValues("swipe_left").Inc()
			r.logger.Debug().Str("gesture", "swipe_left").Msg("Swipe -> next view")
			r.nav.Next()
		} else {
			gesturesTotal.WithLabelValues("swipe_right").Inc()
			r.logger.Debug().Str("gesture", "swipe_right").Msg("Swipe -> prev view")
			r.nav.Prev()
		}
		r.lastGesture = now

	case abs(dx) < r.cfg.TapThreshold && abs(dy) < r.cfg.TapThreshold && dt < r.cfg.TapMaxDuration:
		gesturesTotal.WithLabelValues("tap").Inc()
		r.handleTap()
		r.lastGesture = now

	default:
		gesturesTotal.WithLabelValues("cancel").Inc()
		r.logger.Debug().Str("gesture", "cancel").Msg("Gesture cancelled")
	}
}

// handleTap routes a tap on a navigation button region; taps elsewhere
// are ignored.
func (r *Recognizer) handleTap() {
	navBarTop := r.cfg.DisplayHeight - r.cfg.NavBarHeight
	if r.curY < navBarTop {
		r.logger.Debug().Str("gesture", "tap").Msg("Tap outside nav bar, ignored")
		return
	}

	switch {
	case r.curX < r.cfg.NavButtonWidth:
		r.logger.Debug().Str("gesture", "tap").Msg("Tap on prev button")
		r.nav.Prev()
	case r.curX > r.cfg.DisplayWidth-r.cfg.NavButtonWidth:
		r.logger.Debug().Str("gesture", "tap").Msg("Tap on next button")
		r.nav.Next()
	default:
		r.logger.Debug().Str("gesture", "tap").Msg("Tap between buttons, ignored")
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
