// Package screen provides the OS-level capture and pointer capabilities.
// These are thin library calls with no algorithmic content; the matcher
// and controller consume them through interfaces so tests substitute
// synthetic frames and recording clickers.
package screen

import (
	"fmt"
	"image"

	"github.com/kbinani/screenshot"

	"screenmon/internal/vision"
)

// Display captures frames from the primary display.
type Display struct{}

// NewDisplay returns a grabber over the primary display.
func NewDisplay() *Display {
	return &Display{}
}

// Grab captures the current display contents. With a nil region the whole
// primary display is captured; otherwise only the given absolute-screen
// rectangle.
func (d *Display) Grab(region *vision.Region) (image.Image, error) {
	if screenshot.NumActiveDisplays() == 0 {
		return nil, fmt.Errorf("no active display")
	}

	var img *image.RGBA
	var err error
	if region != nil {
		img, err = screenshot.CaptureRect(region.Rect())
	} else {
		img, err = screenshot.CaptureDisplay(0)
	}
	if err != nil {
		return nil, fmt.Errorf("capturing display: %w", err)
	}
	return img, nil
}
