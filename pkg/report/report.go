// Package report inspects containers without playing them.
package report

import (
	"errors"
	"fmt"
	"time"

	"github.com/user/pocketshow/pkg/mjpeg"
)

// Report describes what a scan found in a container.
type Report struct {
	GeneratedAt time.Time

	// Source is the storage path the container was read from.
	Source string

	// Header as parsed, or the substituted defaults when Degraded.
	Header   mjpeg.Header
	Degraded bool

	// Frames actually present and their payload sizes.
	FramesFound   uint32
	PayloadBytes  int64
	MinFrameBytes uint32
	MaxFrameBytes uint32

	// Truncated is set when the last record's body was cut short.
	Truncated bool

	// Corrupt is set when a record declared an out-of-range size.
	// CorruptSize is the declared value; the record index is FramesFound.
	Corrupt     bool
	CorruptSize uint32
}

// Complete reports whether the stream holds every declared frame with
// no damage.
func (r *Report) Complete() bool {
	return !r.Degraded && !r.Truncated && !r.Corrupt &&
		r.FramesFound == r.Header.FrameCount
}

// Scan walks every record of the container from the start. Damage is
// recorded in the report rather than returned: only host I/O failures
// are errors. The walk stops at the first corrupt length prefix since
// record boundaries are meaningless beyond it.
func Scan(r *mjpeg.Reader, source string) (*Report, error) {
	rep := &Report{
		GeneratedAt: time.Now(),
		Source:      source,
		Header:      r.Header(),
		Degraded:    r.Degraded(),
	}

	if err := r.Rewind(); err != nil {
		return nil, err
	}

	scratch := make([]byte, mjpeg.MaxFrameSize)
	for {
		size, err := r.NextFrameSize()
		if err != nil {
			var corrupt *mjpeg.CorruptFrameError
			switch {
			case errors.Is(err, mjpeg.ErrEndOfStream):
				return rep, nil
			case errors.As(err, &corrupt):
				rep.Corrupt = true
				rep.CorruptSize = corrupt.Size
				return rep, nil
			default:
				return nil, fmt.Errorf("record %d: %w", rep.FramesFound, err)
			}
		}

		// Read rather than skip so a cut-off tail shows up.
		if err := r.ReadPayload(scratch[:size]); err != nil {
			if errors.Is(err, mjpeg.ErrTruncatedFrame) {
				rep.Truncated = true
				return rep, nil
			}
			return nil, fmt.Errorf("record %d: %w", rep.FramesFound, err)
		}

		if rep.FramesFound == 0 || size < rep.MinFrameBytes {
			rep.MinFrameBytes = size
		}
		if size > rep.MaxFrameBytes {
			rep.MaxFrameBytes = size
		}
		rep.PayloadBytes += int64(size)
		rep.FramesFound++
	}
}
