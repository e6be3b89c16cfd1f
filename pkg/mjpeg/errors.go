package mjpeg

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Reader.
var (
	// ErrEndOfStream indicates the last record has been consumed. The
	// reader has already repositioned to the first record.
	ErrEndOfStream = errors.New("end of stream")

	// ErrTruncatedFrame indicates a record body ended early. Recovery is
	// the same as end of stream: the reader has repositioned to the
	// first record.
	ErrTruncatedFrame = errors.New("truncated frame")
)

// CorruptFrameError reports a record whose length prefix violates the
// 0 < size <= MaxFrameSize bound. The stream offset is left where the
// prefix ended; reading must not resume without a reposition.
type CorruptFrameError struct {
	Size uint32
}

func (e *CorruptFrameError) Error() string {
	return fmt.Sprintf("corrupt frame: declared size %d bytes", e.Size)
}
