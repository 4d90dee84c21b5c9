package display

import (
	"fmt"
	"os"

	"github.com/sunwatch/sunwatch/pkg/view"
)

// Framebuffer writes frames to a Linux framebuffer device in RGB565, the
// native format of the small SPI TFT panels this targets.
type Framebuffer struct {
	file   *os.File
	width  int
	height int
	buf    []byte
}

// OpenFramebuffer opens the device for writing.
func OpenFramebuffer(device string, width, height int) (*Framebuffer, error) {
	file, err := os.OpenFile(device, os.O_RDWR, 0)
	if err != nil {
		return nil, err
	}
	return &Framebuffer{
		file:   file,
		width:  width,
		height: height,
		buf:    make([]byte, width*height*2),
	}, nil
}

// Publish converts the frame to RGB565 and writes it at offset 0.
func (f *Framebuffer) Publish(frame *view.Frame) error {
	img := frame.Image()
	bounds := img.Bounds()
	if bounds.Dx() != f.width || bounds.Dy() != f.height {
		return fmt.Errorf("frame %dx%d does not match framebuffer %dx%d",
			bounds.Dx(), bounds.Dy(), f.width, f.height)
	}

	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.RGBAAt(x, y)
			pixel := rgb565(c.R, c.G, c.B)
			// Little-endian, as the kernel fbdev exposes it.
			f.buf[i] = byte(pixel)
			f.buf[i+1] = byte(pixel >> 8)
			i += 2
		}
	}

	if _, err := f.file.WriteAt(f.buf, 0); err != nil {
		return fmt.Errorf("write framebuffer: %w", err)
	}
	return nil
}

// Close closes the device.
func (f *Framebuffer) Close() error {
	return f.file.Close()
}

// rgb565 packs 8-bit channels into 5-6-5.
func rgb565(r, g, b uint8) uint16 {
	return uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
}
