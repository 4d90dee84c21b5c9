// Package scheduler drives the periodic render loop. It sleeps for the
// current view's cadence, wakes early on navigation, and shuts down
// cooperatively on context cancellation.
package scheduler

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sunwatch/sunwatch/pkg/view"
)

var (
	wakeupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sunwatch_scheduler_wakeups_total",
		Help: "Scheduler wakeups by reason (timer, signal)",
	}, []string{"reason"})

	framesSkippedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sunwatch_frames_skipped_total",
		Help: "Frames skipped because a render failed",
	})

	publishErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sunwatch_publish_errors_total",
		Help: "Display sink publish failures",
	})
)

// Publisher accepts a completed frame for display. Format conversion and
// the actual pixel pushing live behind this interface.
type Publisher interface {
	Publish(frame *view.Frame) error
}

// Scheduler runs the render loop against a view manager and a display sink.
type Scheduler struct {
	views  *view.Manager
	sink   Publisher
	logger zerolog.Logger
}

// New creates a scheduler.
func New(views *view.Manager, sink Publisher) *Scheduler {
	return &Scheduler{
		views:  views,
		sink:   sink,
		logger: log.With().Str("component", "scheduler").Logger(),
	}
}

// Run executes the render loop until ctx is cancelled.
//
// Each iteration renders the current view, publishes the frame, then
// waits on the wake latch with a timeout of the current view's cadence.
// Receiving from the latch consumes it, so waiting and clearing are one
// atomic step: a navigation signal arriving at any point before the wait
// (including during the render) is never dropped, only collapsed.
//
// A render failure skips the frame and keeps the loop alive. Cancellation
// interrupts the wait immediately, so shutdown is never delayed by up to
// the longest cadence.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info().Int("views", s.views.Count()).Msg("Scheduler started")

	for {
		if err := ctx.Err(); err != nil {
			s.logger.Info().Msg("Scheduler stopped")
			return err
		}

		s.renderAndPublish(ctx)

		// Re-read the cadence after rendering: navigation may have just
		// changed the current view.
		interval := s.views.CurrentInterval()

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info().Msg("Scheduler stopped")
			return ctx.Err()
		case <-s.views.Wake():
			timer.Stop()
			wakeupsTotal.WithLabelValues("signal").Inc()
			s.logger.Debug().Msg("Woken by navigation signal")
		case <-timer.C:
			wakeupsTotal.WithLabelValues("timer").Inc()
		}
	}
}

func (s *Scheduler) renderAndPublish(ctx context.Context) {
	frame, err := s.views.RenderCurrent(ctx)
	if err != nil {
		// Skip this frame; the loop never terminates because of a
		// failed render.
		framesSkippedTotal.Inc()
		s.logger.Error().Err(err).Msg("Render failed, skipping frame")
		return
	}

	if err := s.sink.Publish(frame); err != nil {
		publishErrorsTotal.Inc()
		s.logger.Error().Err(err).Str("view", frame.View()).Msg("Publish failed")
	}
}
