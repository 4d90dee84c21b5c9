//go:build epaper

package display

import (
	"fmt"
	"image"
	"image/draw"

	"periph.io/x/conn/v3/spi/spireg"
	"periph.io/x/devices/v3/ssd1306/image1bit"
	"periph.io/x/devices/v3/waveshare2in13v4"
	"periph.io/x/host/v3"

	"github.com/sunwatch/sunwatch/pkg/view"
)

// EPaperSink drives a Waveshare 2.13" e-paper HAT. Frames are converted
// to 1-bit and scaled to the panel by cropping to its bounds.
type EPaperSink struct {
	port    spireg.PortCloser
	display *waveshare2in13v4.Dev
}

// OpenEPaper initializes the SPI host and the panel.
func OpenEPaper() (*EPaperSink, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("init periph host: %w", err)
	}

	port, err := spireg.Open("")
	if err != nil {
		return nil, fmt.Errorf("open spi: %w", err)
	}

	opts := waveshare2in13v4.EPD2in13v4
	display, err := waveshare2in13v4.NewHat(port, &opts)
	if err != nil {
		port.Close()
		return nil, fmt.Errorf("init epaper: %w", err)
	}

	return &EPaperSink{port: port, display: display}, nil
}

// Publish converts the frame to the panel's 1-bit format and draws it.
func (s *EPaperSink) Publish(frame *view.Frame) error {
	img := image1bit.NewVerticalLSB(s.display.Bounds())
	draw.Draw(img, img.Bounds(), frame.Image(), image.Point{}, draw.Src)
	if err := s.display.Draw(s.display.Bounds(), img, image.Point{}); err != nil {
		return fmt.Errorf("epaper draw: %w", err)
	}
	return nil
}

// Close halts the panel and releases the SPI port.
func (s *EPaperSink) Close() error {
	if err := s.display.Halt(); err != nil {
		s.port.Close()
		return err
	}
	return s.port.Close()
}
