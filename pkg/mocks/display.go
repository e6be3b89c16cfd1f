package mocks

import (
	"sync"

	"github.com/user/pocketshow/pkg/ports"
)

// DisplaySink is a mock implementation of ports.DisplaySink. It copies
// every presented payload, since the engine recycles the buffer as soon
// as Present returns.
type DisplaySink struct {
	mu sync.Mutex

	PresentFunc func(frame []byte, width, height uint32)

	// Recorded calls for verification
	Frames []PresentCall
}

// PresentCall records one Present invocation.
type PresentCall struct {
	Frame  []byte
	Width  uint32
	Height uint32
}

// NewDisplaySink creates a recording sink.
func NewDisplaySink() *DisplaySink {
	return &DisplaySink{}
}

func (m *DisplaySink) Present(frame []byte, width, height uint32) {
	m.mu.Lock()
	m.Frames = append(m.Frames, PresentCall{
		Frame:  append([]byte(nil), frame...),
		Width:  width,
		Height: height,
	})
	m.mu.Unlock()
	if m.PresentFunc != nil {
		m.PresentFunc(frame, width, height)
	}
}

// Count returns the number of presented frames.
func (m *DisplaySink) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Frames)
}

// Frame returns the recorded payload at index i, nil when out of range.
func (m *DisplaySink) Frame(i int) []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i < 0 || i >= len(m.Frames) {
		return nil
	}
	return m.Frames[i].Frame
}

var _ ports.DisplaySink = (*DisplaySink)(nil)
