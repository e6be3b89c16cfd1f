// Package mjpeg reads and writes the frame container used for device
// recordings: a 16 byte little-endian header followed by length-prefixed
// JPEG records.
//
//	header: frame_count u32 | frame_rate_hz u32 | width u32 | height u32
//	record: size u32 | size bytes of JPEG data
package mjpeg

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"
)

// Container layout constants.
const (
	// HeaderSize is the fixed byte length of the container header.
	HeaderSize = 16

	// MaxFrameSize bounds a single record body. A larger length prefix
	// marks the stream corrupt.
	MaxFrameSize = 50 * 1024
)

// Defaults substituted when a header cannot be read in full.
const (
	DefaultFrameCount = 300
	DefaultFrameRate  = 30
	DefaultWidth      = 240
	DefaultHeight     = 320
)

// Header is the container header. Width and height are carried as
// written and never validated.
type Header struct {
	FrameCount uint32
	FrameRate  uint32
	Width      uint32
	Height     uint32
}

// FrameInterval returns the wall-clock period of one frame,
// 1_000_000 / FrameRate microseconds. Zero when the rate is zero.
func (h Header) FrameInterval() time.Duration {
	if h.FrameRate == 0 {
		return 0
	}
	return time.Duration(1_000_000/h.FrameRate) * time.Microsecond
}

// Duration returns the nominal stream length in whole seconds.
func (h Header) Duration() uint32 {
	if h.FrameRate == 0 {
		return 0
	}
	return h.FrameCount / h.FrameRate
}

// Reader walks a container sequentially. It is not safe for concurrent
// use; the playback session serializes access to it.
type Reader struct {
	src      io.ReadSeeker
	hdr      Header
	degraded bool
}

// OpenReader reads the header from the start of src and leaves the
// stream positioned at the first record. A short header is not an
// error: defaults are substituted and the reader reports Degraded.
func OpenReader(src io.ReadSeeker) (*Reader, error) {
	r := &Reader{src: src}

	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek header: %w", err)
	}

	if err := binary.Read(src, binary.LittleEndian, &r.hdr); err != nil {
		if !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("read header: %w", err)
		}
		r.hdr = Header{
			FrameCount: DefaultFrameCount,
			FrameRate:  DefaultFrameRate,
			Width:      DefaultWidth,
			Height:     DefaultHeight,
		}
		r.degraded = true
		if err := r.Rewind(); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Header returns the parsed header, or the substituted defaults when
// the source was degraded.
func (r *Reader) Header() Header { return r.hdr }

// Degraded reports whether defaults were substituted for a short header.
func (r *Reader) Degraded() bool { return r.degraded }

// NextFrameSize reads the next record's length prefix and validates it
// against the record bound. End of stream repositions to the first
// record before returning. A corrupt prefix leaves the offset where the
// prefix ended: the caller must reposition before reading again.
func (r *Reader) NextFrameSize() (uint32, error) {
	var size uint32
	if err := binary.Read(r.src, binary.LittleEndian, &size); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			if rerr := r.Rewind(); rerr != nil {
				return 0, rerr
			}
			return 0, ErrEndOfStream
		}
		return 0, fmt.Errorf("read frame size: %w", err)
	}
	if size == 0 || size > MaxFrameSize {
		return 0, &CorruptFrameError{Size: size}
	}
	return size, nil
}

// ReadPayload fills dst with the record body. A short body repositions
// to the first record and returns ErrTruncatedFrame.
func (r *Reader) ReadPayload(dst []byte) error {
	if _, err := io.ReadFull(r.src, dst); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			if rerr := r.Rewind(); rerr != nil {
				return rerr
			}
			return ErrTruncatedFrame
		}
		return fmt.Errorf("read frame payload: %w", err)
	}
	return nil
}

// SkipPayload advances past a record body without reading it.
func (r *Reader) SkipPayload(size uint32) error {
	if _, err := r.src.Seek(int64(size), io.SeekCurrent); err != nil {
		return fmt.Errorf("skip frame payload: %w", err)
	}
	return nil
}

// Rewind repositions to the first record. The offset is HeaderSize even
// when the header was short; the first 16 bytes of a stream are never
// treated as frame data.
func (r *Reader) Rewind() error {
	if _, err := r.src.Seek(HeaderSize, io.SeekStart); err != nil {
		return fmt.Errorf("rewind: %w", err)
	}
	return nil
}

// SeekToFrame repositions to record n by walking the stream from the
// start, reading each length prefix and skipping each body. It returns
// the index actually reached. Running off the end of a stream shorter
// than its declared frame count lands back at record 0.
func (r *Reader) SeekToFrame(n uint32) (uint32, error) {
	if err := r.Rewind(); err != nil {
		return 0, err
	}
	for i := uint32(0); i < n; i++ {
		size, err := r.NextFrameSize()
		if err != nil {
			if errors.Is(err, ErrEndOfStream) {
				return 0, nil
			}
			return i, err
		}
		if err := r.SkipPayload(size); err != nil {
			return i, err
		}
	}
	return n, nil
}
