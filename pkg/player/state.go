// Package player implements the playback engine: one session per
// source, a four state transport machine, and frame delivery on
// scheduler ticks.
package player

// State is the transport state of a session.
type State int

const (
	// StateStopped means no playback; the cursor sits at the first frame.
	StateStopped State = iota
	// StatePlaying means the scheduler is armed and ticks deliver frames.
	StatePlaying
	// StatePaused means delivery is halted with the cursor retained.
	StatePaused
	// StateError means a fatal stream condition stopped delivery.
	// Stop clears it; the cursor stays at the failed frame until then.
	StateError
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}
