// Package framebuf manages the bounded buffers the playback engine
// reads frame payloads into. One buffer is in flight per tick; the pool
// recycles backing storage and enforces the size bound before anything
// is allocated.
package framebuf

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
)

// ErrFrameTooLarge reports an acquire whose size violates the pool bound.
var ErrFrameTooLarge = errors.New("frame exceeds buffer bound")

// Pool hands out frame buffers up to a fixed per-frame byte bound.
type Pool struct {
	max     int
	backing sync.Pool

	acquired atomic.Uint64
	released atomic.Uint64
	rejected atomic.Uint64
	inUse    atomic.Int64
}

// NewPool creates a pool whose buffers hold at most max bytes.
func NewPool(max int) *Pool {
	p := &Pool{max: max}
	p.backing.New = func() interface{} {
		b := make([]byte, max)
		return &b
	}
	return p
}

// Acquire returns a buffer of exactly size bytes. Sizes outside
// 0 < size <= max are rejected before any allocation happens.
func (p *Pool) Acquire(size uint32) (*Buffer, error) {
	if size == 0 || int64(size) > int64(p.max) {
		p.rejected.Add(1)
		return nil, fmt.Errorf("%w: %d bytes, bound %d", ErrFrameTooLarge, size, p.max)
	}
	backing := p.backing.Get().(*[]byte)
	p.acquired.Add(1)
	p.inUse.Add(1)
	return &Buffer{data: (*backing)[:size], backing: backing, pool: p}, nil
}

// Max returns the per-frame byte bound.
func (p *Pool) Max() int { return p.max }

// Acquired returns the count of successful acquires.
func (p *Pool) Acquired() uint64 { return p.acquired.Load() }

// Released returns the count of buffers returned to the pool.
func (p *Pool) Released() uint64 { return p.released.Load() }

// Rejected returns the count of acquires refused by the size bound.
func (p *Pool) Rejected() uint64 { return p.rejected.Load() }

// InUse returns the number of buffers currently held by callers.
func (p *Pool) InUse() int64 { return p.inUse.Load() }

// Buffer is one acquired frame buffer. Bytes must not be used after
// Release.
type Buffer struct {
	data    []byte
	backing *[]byte
	pool    *Pool
}

// Bytes returns the buffer contents, sized to the acquired frame.
func (b *Buffer) Bytes() []byte { return b.data }

// Release returns the backing storage to the pool. Releasing more than
// once is a no-op; only the first call recycles.
func (b *Buffer) Release() {
	if b.backing == nil {
		return
	}
	b.pool.backing.Put(b.backing)
	b.pool.released.Add(1)
	b.pool.inUse.Add(-1)
	b.backing = nil
	b.data = nil
}
