package mocks

import (
	"image"
	"image/color"

	"github.com/user/pocketshow/pkg/ports"
)

// FrameRenderer is a mock implementation of ports.FrameRenderer. The
// defaults decode every payload to a small gray image and encode to a
// fixed byte pattern.
type FrameRenderer struct {
	DecodeFunc    func(frame []byte) (image.Image, error)
	ComposeFunc   func(img image.Image, width, height int, bg color.Color) image.Image
	EncodePNGFunc func(img image.Image) ([]byte, error)

	// Recorded calls for verification
	DecodeCalls  int
	ComposeCalls []ComposeCall
	EncodeCalls  int
}

// ComposeCall records the surface a frame was composed for.
type ComposeCall struct {
	Width  int
	Height int
}

// NewFrameRenderer creates a mock renderer with default behavior.
func NewFrameRenderer() *FrameRenderer {
	return &FrameRenderer{}
}

func (m *FrameRenderer) Decode(frame []byte) (image.Image, error) {
	m.DecodeCalls++
	if m.DecodeFunc != nil {
		return m.DecodeFunc(frame)
	}
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = 0x80
	}
	return img, nil
}

func (m *FrameRenderer) Compose(img image.Image, width, height int, bg color.Color) image.Image {
	m.ComposeCalls = append(m.ComposeCalls, ComposeCall{Width: width, Height: height})
	if m.ComposeFunc != nil {
		return m.ComposeFunc(img, width, height, bg)
	}
	return img
}

func (m *FrameRenderer) EncodePNG(img image.Image) ([]byte, error) {
	m.EncodeCalls++
	if m.EncodePNGFunc != nil {
		return m.EncodePNGFunc(img)
	}
	return []byte{0x89, 'P', 'N', 'G'}, nil
}

var _ ports.FrameRenderer = (*FrameRenderer)(nil)
