// Package ggrender implements frame rendering on gg canvases with
// Catmull-Rom resampling.
package ggrender

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"

	"github.com/fogleman/gg"
	"golang.org/x/image/draw"

	"github.com/user/pocketshow/pkg/ports"
)

// Renderer implements ports.FrameRenderer.
type Renderer struct{}

// New creates a new Renderer.
func New() *Renderer {
	return &Renderer{}
}

// Decode decodes a JPEG frame payload.
func (r *Renderer) Decode(frame []byte) (image.Image, error) {
	img, err := jpeg.Decode(bytes.NewReader(frame))
	if err != nil {
		return nil, fmt.Errorf("decode frame: %w", err)
	}
	return img, nil
}

// Compose scales img onto a width x height canvas, preserving aspect
// ratio and filling the remainder with bg.
func (r *Renderer) Compose(img image.Image, width, height int, bg color.Color) image.Image {
	dc := gg.NewContext(width, height)
	dc.SetColor(bg)
	dc.Clear()

	bounds := img.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return dc.Image()
	}

	scale := float64(width) / float64(bounds.Dx())
	if s := float64(height) / float64(bounds.Dy()); s < scale {
		scale = s
	}
	w := int(float64(bounds.Dx())*scale + 0.5)
	h := int(float64(bounds.Dy())*scale + 0.5)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	if w != bounds.Dx() || h != bounds.Dy() {
		img = r.resize(img, w, h)
	}

	dc.DrawImage(img, (width-w)/2, (height-h)/2)
	return dc.Image()
}

// EncodePNG encodes img as PNG.
func (r *Renderer) EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// resize scales img to the given dimensions.
func (r *Renderer) resize(img image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)
	return dst
}

var _ ports.FrameRenderer = (*Renderer)(nil)
