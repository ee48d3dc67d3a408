// Package memdriver implements an in-memory driver.ChannelDriver for
// deterministic testing and CLI demos, adapted from the teacher's
// radio-specific stub driver ring buffer (driver/stub in the example
// pack) to the pull-based Observe contract this codec's driver boundary
// needs.
package memdriver

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/kpavlenko/lumabeam"
)

// ErrClosed is returned by Observe once the driver has been closed and
// its buffered changes are exhausted.
var ErrClosed = errors.New("memdriver: closed")

const ringCapacity = 4096

// Driver is a deterministic, allocation-free-after-construction
// implementation of driver.ChannelDriver backed by a single ring buffer:
// every Emit call appends to the ring, every Observe call pops from it.
// It is safe for concurrent use by one emitter and one observer.
type Driver struct {
	mu     sync.Mutex
	ring   ringBuffer
	closed bool
}

// New returns an empty Driver.
func New() *Driver {
	return &Driver{}
}

// Emit appends change to the ring, dropping the oldest entry if the ring
// is full so a slow observer never blocks or crashes the emitter.
func (d *Driver) Emit(change lumabeam.SignalChange) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	d.ring.push(change)
	return nil
}

// Observe blocks until a change is available, ctx is done, or the driver
// is closed with nothing left buffered.
func (d *Driver) Observe(ctx context.Context) (lumabeam.SignalChange, error) {
	for {
		d.mu.Lock()
		change, ok := d.ring.pop()
		closed := d.closed
		d.mu.Unlock()

		if ok {
			return change, nil
		}
		if closed {
			return lumabeam.SignalChange{}, ErrClosed
		}

		select {
		case <-ctx.Done():
			return lumabeam.SignalChange{}, ctx.Err()
		case <-time.After(time.Millisecond):
		}
	}
}

// Close marks the driver closed; buffered changes already emitted are
// still delivered to Observe before it starts returning ErrClosed.
func (d *Driver) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
}

type ringBuffer struct {
	data       [ringCapacity]lumabeam.SignalChange
	head, tail int
	count      int
}

func (r *ringBuffer) push(change lumabeam.SignalChange) {
	if r.count == ringCapacity {
		r.head = (r.head + 1) % ringCapacity
		r.count--
	}
	r.data[r.tail] = change
	r.tail = (r.tail + 1) % ringCapacity
	r.count++
}

func (r *ringBuffer) pop() (lumabeam.SignalChange, bool) {
	if r.count == 0 {
		return lumabeam.SignalChange{}, false
	}
	change := r.data[r.head]
	r.head = (r.head + 1) % ringCapacity
	r.count--
	return change, true
}
