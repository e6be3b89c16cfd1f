// Package pngsink dumps presented frames as PNG files, one per frame.
package pngsink

import (
	"fmt"
	"image/color"
	"path"
	"sync"

	"github.com/user/pocketshow/pkg/ports"
)

// Sink writes frame-NNNN.png files through Storage. Frames that fail to
// decode are skipped with a warning; presentation never reports errors
// upstream.
type Sink struct {
	mu       sync.Mutex
	dir      string
	storage  ports.Storage
	renderer ports.FrameRenderer
	log      ports.Logger
	bg       color.Color
	index    int
}

// New creates a sink writing under dir. A nil bg letterboxes frames
// on black.
func New(dir string, storage ports.Storage, renderer ports.FrameRenderer, bg color.Color, log ports.Logger) *Sink {
	if bg == nil {
		bg = color.Black
	}
	return &Sink{
		dir:      dir,
		storage:  storage,
		renderer: renderer,
		log:      log.WithComponent("pngsink"),
		bg:       bg,
	}
}

// Present decodes the frame, letterboxes it to the stream dimensions
// and writes one PNG per frame.
func (s *Sink) Present(frame []byte, width, height uint32) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := s.index
	s.index++

	img, err := s.renderer.Decode(frame)
	if err != nil {
		s.log.Warn("frame %d skipped: %v", index, err)
		return
	}
	if width == 0 || height == 0 {
		b := img.Bounds()
		width, height = uint32(b.Dx()), uint32(b.Dy())
	}
	composed := s.renderer.Compose(img, int(width), int(height), s.bg)
	data, err := s.renderer.EncodePNG(composed)
	if err != nil {
		s.log.Warn("frame %d skipped: %v", index, err)
		return
	}

	name := path.Join(s.dir, fmt.Sprintf("frame-%04d.png", index))
	f, err := s.storage.Create(name)
	if err != nil {
		s.log.Warn("frame %d not written: %v", index, err)
		return
	}
	if _, err := f.Write(data); err != nil {
		s.log.Warn("frame %d not written: %v", index, err)
	}
	f.Close()
}

// Count returns the number of frames presented so far.
func (s *Sink) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

var _ ports.DisplaySink = (*Sink)(nil)
