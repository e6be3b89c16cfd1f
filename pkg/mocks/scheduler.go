package mocks

import (
	"sync"
	"time"

	"github.com/user/pocketshow/pkg/ports"
)

// Scheduler is a mock implementation of ports.FrameScheduler. Tests
// drive ticks by hand with Tick, so timing stays deterministic.
type Scheduler struct {
	mu   sync.Mutex
	tick func()

	ArmFunc func(interval time.Duration, tick func()) error

	// Recorded calls for verification
	ArmCalls    []time.Duration
	DisarmCalls int
}

// NewScheduler creates a disarmed mock scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

func (m *Scheduler) Arm(interval time.Duration, tick func()) error {
	if m.ArmFunc != nil {
		if err := m.ArmFunc(interval, tick); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArmCalls = append(m.ArmCalls, interval)
	m.tick = tick
	return nil
}

func (m *Scheduler) Disarm() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DisarmCalls++
	m.tick = nil
}

// Armed reports whether a callback is currently scheduled.
func (m *Scheduler) Armed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tick != nil
}

// Tick invokes the armed callback once. It is a no-op while disarmed.
// The callback runs outside the mock's lock so it may call Disarm.
func (m *Scheduler) Tick() {
	m.mu.Lock()
	tick := m.tick
	m.mu.Unlock()
	if tick != nil {
		tick()
	}
}

// Interval returns the most recently armed interval.
func (m *Scheduler) Interval() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.ArmCalls) == 0 {
		return 0
	}
	return m.ArmCalls[len(m.ArmCalls)-1]
}

var _ ports.FrameScheduler = (*Scheduler)(nil)
