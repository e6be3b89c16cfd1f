// Package nullsink provides a no-op display sink implementation.
package nullsink

import (
	"sync/atomic"

	"github.com/user/pocketshow/pkg/ports"
)

// Sink is a no-op implementation of ports.DisplaySink.
// It counts presented frames and discards the pixels.
type Sink struct {
	presented atomic.Uint64
}

// New creates a new NullSink.
func New() *Sink {
	return &Sink{}
}

// Present discards the frame.
func (s *Sink) Present(frame []byte, width, height uint32) {
	s.presented.Add(1)
}

// Presented returns the number of frames presented so far.
func (s *Sink) Presented() uint64 {
	return s.presented.Load()
}

// Ensure Sink implements ports.DisplaySink
var _ ports.DisplaySink = (*Sink)(nil)
