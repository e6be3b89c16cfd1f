package ticker

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestScheduler_DeliversTicks(t *testing.T) {
	s := New()
	var count atomic.Int64

	if err := s.Arm(5*time.Millisecond, func() { count.Add(1) }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Disarm()

	deadline := time.After(2 * time.Second)
	for count.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("only %d ticks before deadline", count.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestScheduler_DisarmStopsTicks(t *testing.T) {
	s := New()
	var count atomic.Int64

	if err := s.Arm(2*time.Millisecond, func() { count.Add(1) }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	time.Sleep(20 * time.Millisecond)
	s.Disarm()

	// Let any in-flight invocation finish, then the count must freeze.
	time.Sleep(20 * time.Millisecond)
	frozen := count.Load()
	time.Sleep(40 * time.Millisecond)
	if got := count.Load(); got != frozen {
		t.Errorf("ticks after disarm: %d -> %d", frozen, got)
	}
}

func TestScheduler_RearmReplacesSchedule(t *testing.T) {
	s := New()
	var first, second atomic.Int64

	if err := s.Arm(2*time.Millisecond, func() { first.Add(1) }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Arm(2*time.Millisecond, func() { second.Add(1) }); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Disarm()

	deadline := time.After(2 * time.Second)
	for second.Load() < 2 {
		select {
		case <-deadline:
			t.Fatalf("replacement callback got %d ticks before deadline", second.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}

	// The first schedule is gone; give it room to prove otherwise.
	frozen := first.Load()
	time.Sleep(30 * time.Millisecond)
	if got := first.Load(); got != frozen {
		t.Errorf("replaced callback still ticking: %d -> %d", frozen, got)
	}
}

func TestScheduler_DisarmFromCallback(t *testing.T) {
	s := New()
	var count atomic.Int64

	err := s.Arm(2*time.Millisecond, func() {
		count.Add(1)
		s.Disarm()
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for count.Load() == 0 {
		select {
		case <-deadline:
			t.Fatal("no tick before deadline")
		case <-time.After(5 * time.Millisecond):
		}
	}
	time.Sleep(20 * time.Millisecond)
	if got := count.Load(); got != 1 {
		t.Errorf("ticks = %d, want 1", got)
	}
}

func TestScheduler_RejectsNonPositiveInterval(t *testing.T) {
	s := New()
	if err := s.Arm(0, func() {}); err == nil {
		t.Error("zero interval accepted")
	}
	if err := s.Arm(-time.Second, func() {}); err == nil {
		t.Error("negative interval accepted")
	}
}

func TestScheduler_DisarmIsIdempotent(t *testing.T) {
	s := New()
	s.Disarm()
	s.Disarm()

	if err := s.Arm(time.Millisecond, func() {}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.Disarm()
	s.Disarm()
}
