package mjpeg

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Writer produces a container: header first, then length-prefixed
// records.
type Writer struct {
	dst    io.Writer
	frames uint32
}

// NewWriter creates a Writer on dst.
func NewWriter(dst io.Writer) *Writer {
	return &Writer{dst: dst}
}

// WriteHeader writes the 16 byte header. Call it once, before any frame.
func (w *Writer) WriteHeader(h Header) error {
	if err := binary.Write(w.dst, binary.LittleEndian, h); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	return nil
}

// WriteFrame appends one record. The payload must respect the record
// bound: 0 < len(payload) <= MaxFrameSize.
func (w *Writer) WriteFrame(payload []byte) error {
	if len(payload) == 0 || len(payload) > MaxFrameSize {
		return fmt.Errorf("frame size %d out of range 1..%d", len(payload), MaxFrameSize)
	}
	if err := binary.Write(w.dst, binary.LittleEndian, uint32(len(payload))); err != nil {
		return fmt.Errorf("write frame size: %w", err)
	}
	if _, err := w.dst.Write(payload); err != nil {
		return fmt.Errorf("write frame payload: %w", err)
	}
	w.frames++
	return nil
}

// Frames returns the number of records written so far.
func (w *Writer) Frames() uint32 {
	return w.frames
}
