// Package testpattern fabricates playable containers so playback can
// be exercised on hosts without access to device recordings.
package testpattern

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"math"

	"github.com/fogleman/gg"

	"github.com/user/pocketshow/pkg/mjpeg"
)

// Options controls the generated stream. Zero values select the
// defaults.
type Options struct {
	Frames  uint32
	Rate    uint32
	Width   uint32
	Height  uint32
	Quality int
}

// Generator defaults.
const (
	DefaultFrames  = 60
	DefaultRate    = 30
	DefaultWidth   = 240
	DefaultHeight  = 320
	DefaultQuality = 80
)

func (o Options) withDefaults() Options {
	if o.Frames == 0 {
		o.Frames = DefaultFrames
	}
	if o.Rate == 0 {
		o.Rate = DefaultRate
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Quality <= 0 {
		o.Quality = DefaultQuality
	}
	return o
}

// Generate writes a complete container to dst: a color cycle with a
// bar sweeping top to bottom over the length of the clip. Returns the
// number of frames written.
func Generate(dst io.Writer, opts Options) (uint32, error) {
	o := opts.withDefaults()

	w := mjpeg.NewWriter(dst)
	err := w.WriteHeader(mjpeg.Header{
		FrameCount: o.Frames,
		FrameRate:  o.Rate,
		Width:      o.Width,
		Height:     o.Height,
	})
	if err != nil {
		return 0, err
	}

	var buf bytes.Buffer
	for i := uint32(0); i < o.Frames; i++ {
		buf.Reset()
		if err := jpeg.Encode(&buf, drawFrame(i, o), &jpeg.Options{Quality: o.Quality}); err != nil {
			return w.Frames(), fmt.Errorf("frame %d: %w", i, err)
		}
		if err := w.WriteFrame(buf.Bytes()); err != nil {
			return w.Frames(), fmt.Errorf("frame %d: %w", i, err)
		}
	}
	return w.Frames(), nil
}

// drawFrame renders one frame: a solid background cycling through hues
// with a contrasting bar whose position encodes playback progress.
func drawFrame(i uint32, o Options) image.Image {
	phase := float64(i) * 0.1

	dc := gg.NewContext(int(o.Width), int(o.Height))
	dc.SetRGB(
		0.5+0.5*math.Sin(phase),
		0.5+0.5*math.Sin(phase+2*math.Pi/3),
		0.5+0.5*math.Sin(phase+4*math.Pi/3),
	)
	dc.Clear()

	barH := float64(o.Height) / 8
	span := float64(o.Height) - barH
	y := span * float64(i) / float64(o.Frames)

	dc.SetRGB(1, 1, 1)
	dc.DrawRectangle(0, y, float64(o.Width), barH)
	dc.Fill()

	return dc.Image()
}
