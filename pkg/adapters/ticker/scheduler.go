// Package ticker schedules playback ticks on a wall-clock period.
package ticker

import (
	"fmt"
	"sync"
	"time"

	"github.com/user/pocketshow/pkg/ports"
)

// Scheduler drives a callback from a time.Ticker goroutine. The zero
// value is ready to use.
type Scheduler struct {
	mu   sync.Mutex
	stop chan struct{}
}

// New creates a disarmed scheduler.
func New() *Scheduler {
	return &Scheduler{}
}

// Arm starts invoking tick every interval, replacing any prior
// schedule. The callback runs on a dedicated goroutine, one invocation
// at a time.
func (s *Scheduler) Arm(interval time.Duration, tick func()) error {
	if interval <= 0 {
		return fmt.Errorf("interval must be positive, got %v", interval)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != nil {
		close(s.stop)
	}
	stop := make(chan struct{})
	s.stop = stop
	go run(interval, tick, stop)
	return nil
}

// Disarm stops future ticks. It is idempotent and returns without
// waiting for an in-flight invocation.
func (s *Scheduler) Disarm() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != nil {
		close(s.stop)
		s.stop = nil
	}
}

func run(interval time.Duration, tick func(), stop <-chan struct{}) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case <-t.C:
			// A stop racing the ticker wins.
			select {
			case <-stop:
				return
			default:
			}
			tick()
		}
	}
}

var _ ports.FrameScheduler = (*Scheduler)(nil)
