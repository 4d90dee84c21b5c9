// Package display publishes rendered frames to an output device: a
// Linux framebuffer, a PNG file, or nowhere (headless).
package display

import (
	"fmt"

	"github.com/sunwatch/sunwatch/pkg/view"
)

// Sink receives completed frames.
type Sink interface {
	Publish(frame *view.Frame) error
	Close() error
}

// NullSink discards frames; used headless and in tests.
type NullSink struct{}

// Publish discards the frame.
func (NullSink) Publish(*view.Frame) error { return nil }

// Close is a no-op.
func (NullSink) Close() error { return nil }

// Open picks a sink for the configured output device. An empty device
// selects the null sink; a path ending in .png selects the PNG file
// sink; anything else is treated as a framebuffer device.
func Open(device string, width, height int) (Sink, error) {
	switch {
	case device == "":
		return NullSink{}, nil
	case len(device) > 4 && device[len(device)-4:] == ".png":
		return NewPNGSink(device), nil
	default:
		fb, err := OpenFramebuffer(device, width, height)
		if err != nil {
			return nil, fmt.Errorf("open framebuffer %s: %w", device, err)
		}
		return fb, nil
	}
}
