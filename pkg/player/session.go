package player

import (
	"errors"
	"fmt"
	"sync"

	"github.com/user/pocketshow/pkg/framebuf"
	"github.com/user/pocketshow/pkg/mjpeg"
	"github.com/user/pocketshow/pkg/ports"
)

// Sentinel errors returned by session commands.
var (
	// ErrSourceUnavailable covers open failures: the storage medium is
	// missing or the path cannot be read. No session exists when it is
	// returned.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrSessionClosed rejects commands arriving after Close.
	ErrSessionClosed = errors.New("session closed")

	// ErrZeroFrameRate rejects play on a header without a frame rate;
	// no tick interval can be derived from it.
	ErrZeroFrameRate = errors.New("zero frame rate")

	// ErrHalted rejects play and seek while the session is in the error
	// state. Stop clears it.
	ErrHalted = errors.New("playback halted by stream error")
)

// Options configures a session. Sink, Scheduler and Logger must be set;
// tests pass mocks and a no-op logger.
type Options struct {
	// Sink receives every delivered frame.
	Sink ports.DisplaySink
	// Scheduler paces ticks while playing.
	Scheduler ports.FrameScheduler
	// Logger receives engine diagnostics.
	Logger ports.Logger
	// OnState, when set, observes every state transition. It runs
	// outside the session lock, so it may call back into the session.
	OnState func(old, now State)
}

// Session is one playback run of one source. All methods are safe for
// concurrent use: a single mutex serializes commands and scheduler
// ticks, so a tick arriving after pause or stop observes the new state
// and delivers nothing.
type Session struct {
	mu sync.Mutex

	src     ports.File
	reader  *mjpeg.Reader
	pool    *framebuf.Pool
	sink    ports.DisplaySink
	sched   ports.FrameScheduler
	log     ports.Logger
	onState func(old, now State)

	state  State
	cursor uint32
	cause  error
	closed bool
}

// Open checks the storage, opens path and returns a stopped session
// with the cursor at the first frame. Failures wrap ErrSourceUnavailable
// and leave nothing open.
func Open(storage ports.Storage, path string, opts Options) (*Session, error) {
	if !storage.Ready() {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, ports.ErrNotReady)
	}
	src, err := storage.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	reader, err := mjpeg.OpenReader(src)
	if err != nil {
		src.Close()
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}

	s := &Session{
		src:     src,
		reader:  reader,
		pool:    framebuf.NewPool(mjpeg.MaxFrameSize),
		sink:    opts.Sink,
		sched:   opts.Scheduler,
		log:     opts.Logger.WithComponent("player"),
		onState: opts.OnState,
		state:   StateStopped,
	}

	hdr := reader.Header()
	if reader.Degraded() {
		s.log.Warn("header unreadable in %s, assuming %d frames at %d fps", path, hdr.FrameCount, hdr.FrameRate)
	} else {
		s.log.Debug("opened %s: %d frames, %d fps, %dx%d", path, hdr.FrameCount, hdr.FrameRate, hdr.Width, hdr.Height)
	}
	return s, nil
}

// Header returns the stream header the session plays against.
func (s *Session) Header() mjpeg.Header {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.reader == nil {
		return mjpeg.Header{}
	}
	return s.reader.Header()
}

// State returns the current transport state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Err returns the halt cause while in StateError, nil otherwise.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateError {
		return nil
	}
	return s.cause
}

// Progress returns a snapshot of the cursor against the declared length.
func (s *Session) Progress() Progress {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.reader == nil {
		return Progress{}
	}
	hdr := s.reader.Header()
	p := Progress{Frame: s.cursor, Total: hdr.FrameCount}
	if hdr.FrameCount > 0 {
		p.Percent = int(uint64(s.cursor) * 100 / uint64(hdr.FrameCount))
	}
	if hdr.FrameRate > 0 {
		p.Elapsed = s.cursor / hdr.FrameRate
		p.Length = hdr.FrameCount / hdr.FrameRate
	}
	return p
}

// Play starts or resumes frame delivery. Playing again is a no-op. The
// error state stays latched until Stop.
func (s *Session) Play() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	switch s.state {
	case StatePlaying:
		s.mu.Unlock()
		return nil
	case StateError:
		err := fmt.Errorf("%w: %v", ErrHalted, s.cause)
		s.mu.Unlock()
		return err
	}

	interval := s.reader.Header().FrameInterval()
	if interval <= 0 {
		s.mu.Unlock()
		return ErrZeroFrameRate
	}
	if err := s.sched.Arm(interval, s.tick); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("arm scheduler: %w", err)
	}

	old := s.state
	s.state = StatePlaying
	s.log.Debug("playing from frame %d, interval %s", s.cursor, interval)
	s.mu.Unlock()
	s.notify(old, StatePlaying)
	return nil
}

// Pause halts delivery and keeps the cursor. Any state but Playing is a
// no-op.
func (s *Session) Pause() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	if s.state != StatePlaying {
		s.mu.Unlock()
		return nil
	}
	s.sched.Disarm()
	s.state = StatePaused
	s.log.Debug("paused at frame %d", s.cursor)
	s.mu.Unlock()
	s.notify(StatePlaying, StatePaused)
	return nil
}

// Stop disarms the scheduler and rewinds to the first frame. It is
// idempotent and also the way out of the error state.
func (s *Session) Stop() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	old := s.state
	s.sched.Disarm()
	if err := s.reader.Rewind(); err != nil {
		s.cause = err
		s.state = StateError
		s.mu.Unlock()
		s.notify(old, StateError)
		return err
	}
	s.cursor = 0
	s.cause = nil
	s.state = StateStopped
	s.mu.Unlock()
	s.notify(old, StateStopped)
	return nil
}

// SeekToFrame clamps n to the declared frame range and repositions with
// a linear walk from the stream start. Playing or paused status is
// preserved. A corrupt record on the way halts the session exactly as a
// corrupt tick would.
func (s *Session) SeekToFrame(n int) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	if s.state == StateError {
		err := fmt.Errorf("%w: %v", ErrHalted, s.cause)
		s.mu.Unlock()
		return err
	}

	total := s.reader.Header().FrameCount
	var target uint32
	switch {
	case n <= 0 || total == 0:
		target = 0
	case uint64(n) >= uint64(total):
		target = total - 1
	default:
		target = uint32(n)
	}

	reached, err := s.reader.SeekToFrame(target)
	if err != nil {
		var corrupt *mjpeg.CorruptFrameError
		if errors.As(err, &corrupt) {
			s.haltLocked(err)
			return err
		}
		s.mu.Unlock()
		return err
	}
	s.cursor = reached
	s.log.Debug("seek to frame %d", reached)
	s.mu.Unlock()
	return nil
}

// Close tears the session down: delivery stops, the source closes and
// the sink reference is dropped. Further commands return
// ErrSessionClosed. Safe to call repeatedly.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.sched.Disarm()
	old := s.state
	s.state = StateStopped
	err := s.src.Close()
	s.src = nil
	s.sink = nil
	s.reader = nil
	s.log.Debug("session closed")
	s.mu.Unlock()
	s.notify(old, StateStopped)
	if err != nil {
		return fmt.Errorf("close source: %w", err)
	}
	return nil
}

// tick delivers at most one frame. It runs on the scheduler's goroutine;
// the session mutex serializes it against commands.
func (s *Session) tick() {
	s.mu.Lock()
	if s.closed || s.state != StatePlaying {
		s.mu.Unlock()
		return
	}

	size, err := s.reader.NextFrameSize()
	if err != nil {
		s.settleLocked(err)
		return
	}

	buf, err := s.pool.Acquire(size)
	if err != nil {
		s.haltLocked(fmt.Errorf("frame %d: %w", s.cursor, err))
		return
	}

	if err := s.reader.ReadPayload(buf.Bytes()); err != nil {
		buf.Release()
		s.settleLocked(err)
		return
	}

	hdr := s.reader.Header()
	s.sink.Present(buf.Bytes(), hdr.Width, hdr.Height)
	buf.Release()
	s.cursor++
	s.mu.Unlock()
}

// settleLocked routes a tick failure: end of stream and truncation stop
// and rewind, anything else halts. Called with the lock held; unlocks.
func (s *Session) settleLocked(err error) {
	if !errors.Is(err, mjpeg.ErrEndOfStream) && !errors.Is(err, mjpeg.ErrTruncatedFrame) {
		s.haltLocked(err)
		return
	}
	old := s.state
	s.sched.Disarm()
	s.cursor = 0
	s.state = StateStopped
	if errors.Is(err, mjpeg.ErrTruncatedFrame) {
		s.log.Warn("stream truncated, stopping")
	} else {
		s.log.Info("end of stream")
	}
	s.mu.Unlock()
	s.notify(old, StateStopped)
}

// haltLocked latches the error state with the cursor untouched, so the
// failed frame index stays visible. Called with the lock held; unlocks.
func (s *Session) haltLocked(err error) {
	old := s.state
	s.sched.Disarm()
	s.cause = err
	s.state = StateError
	s.log.Error("playback halted at frame %d: %v", s.cursor, err)
	s.mu.Unlock()
	s.notify(old, StateError)
}

// notify runs the state callback outside the lock.
func (s *Session) notify(old, now State) {
	if s.onState != nil && old != now {
		s.onState(old, now)
	}
}
