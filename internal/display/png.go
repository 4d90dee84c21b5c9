package display

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sunwatch/sunwatch/pkg/view"
)

// PNGSink writes each frame to a fixed path as PNG. The write goes to a
// temp file first and is renamed into place, so readers never observe a
// half-written image.
type PNGSink struct {
	path string
}

// NewPNGSink creates a sink writing to path.
func NewPNGSink(path string) *PNGSink {
	return &PNGSink{path: path}
}

// Publish writes the frame atomically.
func (s *PNGSink) Publish(frame *view.Frame) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".frame-*.png")
	if err != nil {
		return fmt.Errorf("create temp frame: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := frame.EncodePNG(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("encode frame: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp frame: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("publish frame: %w", err)
	}
	return nil
}

// Close is a no-op.
func (s *PNGSink) Close() error { return nil }
