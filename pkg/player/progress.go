package player

import "fmt"

// Progress is a snapshot of the playback position.
type Progress struct {
	// Frame is the zero-based index of the next frame to deliver.
	Frame uint32
	// Total is the declared frame count of the stream.
	Total uint32
	// Percent is Frame*100/Total, 0 when Total is 0.
	Percent int
	// Elapsed is the whole seconds at the cursor.
	Elapsed uint32
	// Length is the whole seconds of the full stream.
	Length uint32
}

// Clock renders the position as "MM:SS / MM:SS".
func (p Progress) Clock() string {
	return FormatTime(p.Elapsed) + " / " + FormatTime(p.Length)
}

// FormatTime renders whole seconds as MM:SS.
func FormatTime(seconds uint32) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
