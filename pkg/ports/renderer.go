package ports

import (
	"image"
	"image/color"
)

// FrameRenderer abstracts the image work display sinks need: turning a
// frame payload into pixels and shaping it for an output surface.
type FrameRenderer interface {
	// Decode decodes one frame payload into an image.
	Decode(frame []byte) (image.Image, error)

	// Compose scales the image onto a width x height surface, preserving
	// aspect ratio and filling the remainder with bg.
	Compose(img image.Image, width, height int, bg color.Color) image.Image

	// EncodePNG encodes an image as PNG.
	EncodePNG(img image.Image) ([]byte, error)
}
