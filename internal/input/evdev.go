// Package input reads touch samples from a Linux evdev device and maps
// raw digitizer coordinates onto the rotated screen.
package input

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sunwatch/sunwatch/pkg/gesture"
)

// evdev event types and codes used by resistive touch panels.
const (
	evSyn = 0x00
	evKey = 0x01
	evAbs = 0x03

	synReport = 0x00
	absX      = 0x00
	absY      = 0x01
	btnTouch  = 0x14a
)

// eventSize is the struct input_event size on 64-bit kernels.
const eventSize = 24

// Raw digitizer range of the XPT2046-style controllers this targets.
const (
	rawMin = 0
	rawMax = 4095
)

// Device reads touch samples from an evdev node. It implements
// gesture.Source: one Sample per hardware sync, with coordinates already
// transformed for the 90-degree-rotated panel.
type Device struct {
	file   io.ReadCloser
	width  int
	height int

	x, y    int
	pressed bool
}

// Open opens the evdev node.
func Open(path string, width, height int) (*Device, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open touch device %s: %w", path, err)
	}
	return &Device{file: file, width: width, height: height}, nil
}

// Next blocks until the next complete touch sample. A closed device
// returns io.EOF, which the gesture recognizer treats as a clean stop.
// The underlying read cannot be interrupted mid-call; cancel by closing
// the device.
func (d *Device) Next(ctx context.Context) (gesture.Sample, error) {
	var buf [eventSize]byte
	changed := false

	for {
		if err := ctx.Err(); err != nil {
			return gesture.Sample{}, err
		}

		if _, err := io.ReadFull(d.file, buf[:]); err != nil {
			if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, os.ErrClosed) {
				err = io.EOF
			}
			return gesture.Sample{}, err
		}

		evType := binary.LittleEndian.Uint16(buf[16:18])
		code := binary.LittleEndian.Uint16(buf[18:20])
		value := int32(binary.LittleEndian.Uint32(buf[20:24]))

		switch evType {
		case evAbs:
			switch code {
			case absX:
				// Raw X maps to screen Y, inverted.
				d.y = transform(int(value), d.height, true)
				changed = true
			case absY:
				// Raw Y maps to screen X.
				d.x = transform(int(value), d.width, false)
				changed = true
			}
		case evKey:
			if code == btnTouch {
				d.pressed = value != 0
				changed = true
			}
		case evSyn:
			if code == synReport && changed {
				return gesture.Sample{X: d.x, Y: d.y, Pressed: d.pressed}, nil
			}
			changed = false
		}
	}
}

// Close closes the device, unblocking a pending Next.
func (d *Device) Close() error {
	return d.file.Close()
}

// transform maps a raw digitizer value onto a screen axis.
func transform(raw, extent int, invert bool) int {
	if raw < rawMin {
		raw = rawMin
	}
	if raw > rawMax {
		raw = rawMax
	}
	normalized := float64(raw-rawMin) / float64(rawMax-rawMin)
	if invert {
		normalized = 1.0 - normalized
	}
	v := int(normalized * float64(extent))
	if v >= extent {
		v = extent - 1
	}
	return v
}
