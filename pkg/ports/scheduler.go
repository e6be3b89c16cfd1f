package ports

import "time"

// FrameScheduler drives playback by invoking a callback at a fixed period.
type FrameScheduler interface {
	// Arm starts periodic invocation of tick every interval. Arming an
	// already armed scheduler replaces the previous schedule.
	Arm(interval time.Duration, tick func()) error

	// Disarm stops future invocations. It is idempotent and must not
	// block on an invocation already in flight; callers that need
	// mutual exclusion serialize inside the callback.
	Disarm()
}
