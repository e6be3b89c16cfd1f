// Package mp4export wraps recorded frames into a fragmented MP4 so
// desktop players can open device recordings.
package mp4export

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/user/pocketshow/pkg/mjpeg"
)

// Export reads every record from r and builds a single-track MP4 with
// one motion-JPEG sample per frame. JPEG frames have no inter-frame
// dependencies, so every sample is a sync sample and each frame gets
// its own fragment. A truncated tail record is dropped; a corrupt
// length prefix aborts the export.
func Export(r *mjpeg.Reader) ([]byte, error) {
	hdr := r.Header()
	if hdr.FrameRate == 0 {
		return nil, fmt.Errorf("cannot time samples: frame rate is zero")
	}

	frames, err := collectFrames(r)
	if err != nil {
		return nil, err
	}
	if len(frames) == 0 {
		return nil, fmt.Errorf("no frames to export")
	}

	timescale := hdr.FrameRate * 1000
	trackID := uint32(1)
	sampleDur := timescale / hdr.FrameRate

	// Create initialization segment
	init := mp4.CreateEmptyInit()
	init.AddEmptyTrack(timescale, "video", "en")

	trak := init.Moov.Trak

	// QuickTime-style motion JPEG sample entry; no codec config box
	entry := mp4.CreateVisualSampleEntryBox("jpeg", uint16(hdr.Width), uint16(hdr.Height), nil)
	trak.Mdia.Minf.Stbl.Stsd.AddChild(entry)

	// Set track header dimensions
	trak.Tkhd.Width = mp4.Fixed32(hdr.Width << 16)
	trak.Tkhd.Height = mp4.Fixed32(hdr.Height << 16)

	var buf bytes.Buffer

	// Write ftyp
	ftyp := mp4.NewFtyp("isom", 0x200, []string{"isom", "iso2", "mp41"})
	if err := ftyp.Encode(&buf); err != nil {
		return nil, fmt.Errorf("encode ftyp: %w", err)
	}

	// Write moov (from init segment)
	if err := init.Moov.Encode(&buf); err != nil {
		return nil, fmt.Errorf("encode moov: %w", err)
	}

	// Write one fragment (moof + mdat) per frame
	for i, data := range frames {
		frag, err := mp4.CreateFragment(uint32(i+1), trackID)
		if err != nil {
			return nil, fmt.Errorf("create fragment %d: %w", i, err)
		}
		frag.AddFullSample(mp4.FullSample{
			Sample: mp4.Sample{
				Flags: mp4.SyncSampleFlags,
				Size:  uint32(len(data)),
				Dur:   sampleDur,
			},
			DecodeTime: uint64(i) * uint64(sampleDur),
			Data:       data,
		})
		if err := frag.Encode(&buf); err != nil {
			return nil, fmt.Errorf("encode fragment %d: %w", i, err)
		}
	}

	return buf.Bytes(), nil
}

// collectFrames walks the container from the first record and copies
// every complete payload.
func collectFrames(r *mjpeg.Reader) ([][]byte, error) {
	if err := r.Rewind(); err != nil {
		return nil, err
	}

	var frames [][]byte
	for {
		size, err := r.NextFrameSize()
		if errors.Is(err, mjpeg.ErrEndOfStream) {
			return frames, nil
		}
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", len(frames), err)
		}
		data := make([]byte, size)
		if err := r.ReadPayload(data); err != nil {
			if errors.Is(err, mjpeg.ErrTruncatedFrame) {
				return frames, nil
			}
			return nil, fmt.Errorf("frame %d: %w", len(frames), err)
		}
		frames = append(frames, data)
	}
}
