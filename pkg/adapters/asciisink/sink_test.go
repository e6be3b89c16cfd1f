package asciisink

import (
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"

	"github.com/user/pocketshow/pkg/adapters/logger"
	"github.com/user/pocketshow/pkg/mocks"
)

func TestSink_DrawsGrid(t *testing.T) {
	renderer := mocks.NewFrameRenderer()
	renderer.DecodeFunc = func(frame []byte) (image.Image, error) {
		img := image.NewRGBA(image.Rect(0, 0, 8, 8))
		for y := 0; y < 8; y++ {
			for x := 0; x < 8; x++ {
				img.SetRGBA(x, y, color.RGBA{R: 255, G: 255, B: 255, A: 255})
			}
		}
		return img, nil
	}

	var out strings.Builder
	sink := NewWith(&out, renderer, logger.NewNoop(), 10, 4)

	sink.Present([]byte{0x01}, 8, 8)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(lines))
	}
	for i, line := range lines {
		if len(line) != 10 {
			t.Fatalf("row %d: expected 10 columns, got %d", i, len(line))
		}
		if line != strings.Repeat("@", 10) {
			t.Fatalf("row %d: expected brightest glyph, got %q", i, line)
		}
	}
}

func TestSink_DarkFramesUseDarkGlyphs(t *testing.T) {
	renderer := mocks.NewFrameRenderer()
	renderer.DecodeFunc = func(frame []byte) (image.Image, error) {
		return image.NewRGBA(image.Rect(0, 0, 8, 8)), nil
	}

	var out strings.Builder
	sink := NewWith(&out, renderer, logger.NewNoop(), 6, 2)

	sink.Present(nil, 8, 8)

	for _, line := range strings.Split(strings.TrimRight(out.String(), "\n"), "\n") {
		if line != strings.Repeat(" ", 6) {
			t.Fatalf("expected blank rows for black frames, got %q", line)
		}
	}
}

func TestSink_SkipsUndecodableFrames(t *testing.T) {
	renderer := mocks.NewFrameRenderer()
	renderer.DecodeFunc = func(frame []byte) (image.Image, error) {
		return nil, errors.New("bad frame")
	}

	var out strings.Builder
	sink := NewWith(&out, renderer, logger.NewNoop(), 6, 2)

	sink.Present(nil, 8, 8)

	if out.Len() != 0 {
		t.Fatalf("expected no output, got %q", out.String())
	}
}

func TestSink_RepaintMovesCursorUp(t *testing.T) {
	renderer := mocks.NewFrameRenderer()

	var out strings.Builder
	sink := NewWith(&out, renderer, logger.NewNoop(), 6, 3)
	sink.repaint = true

	sink.Present([]byte{0x01}, 4, 4)
	first := out.String()
	if strings.Contains(first, "\033[") {
		t.Fatalf("expected no cursor movement on first frame, got %q", first)
	}

	sink.Present([]byte{0x02}, 4, 4)
	rest := out.String()[len(first):]
	if !strings.HasPrefix(rest, "\033[3A") {
		t.Fatalf("expected repaint to move cursor up 3 rows, got %q", rest)
	}
}

func TestSink_DefaultGridSize(t *testing.T) {
	renderer := mocks.NewFrameRenderer()
	var out strings.Builder
	sink := NewWith(&out, renderer, logger.NewNoop(), 0, 0)
	if sink.cols != DefaultCols || sink.rows != DefaultRows {
		t.Fatalf("expected %dx%d default grid, got %dx%d", DefaultCols, DefaultRows, sink.cols, sink.rows)
	}
}
