package view

import (
	"context"
	"time"
)

// View is a renderable page with its own refresh cadence.
//
// Implementations must be safe for repeated Render calls but are never
// invoked concurrently with themselves: the Manager serializes all
// rendering behind a single lock.
type View interface {
	// Name returns the stable view identifier (e.g. "clock", "weather").
	Name() string

	// Interval returns the refresh cadence for this view.
	Interval() time.Duration

	// Render produces a complete Frame, or an error if the frame could
	// not be drawn. A failed render must not return a partial Frame.
	Render(ctx context.Context) (*Frame, error)
}
