package stream

import "sync"

// Ring capacities per source kind, in samples. Sized so typical arrival
// jitter does not starve the output callback.
const (
	NetworkRingCapacity   = 32768
	PipeHiResRingCapacity = 65536
)

// Ring is a bounded FIFO of interleaved post-DSP samples shared between
// the reader goroutine and the output callback. The producer honors
// TryPush returning false and waits (backpressure); the consumer never
// blocks and zero-fills on underrun. A hard ceiling of twice the nominal
// capacity bounds memory if backpressure is ever bypassed; hitting it
// drops the oldest samples and counts the loss.
type Ring struct {
	mu       sync.Mutex
	buf      []float64 // backing store, 2x nominal capacity
	head     int
	count    int
	capacity int

	pushed  uint64
	dropped uint64
}

// NewRing returns a Ring with the given nominal capacity in samples.
// Non-positive capacities fall back to NetworkRingCapacity.
func NewRing(capacity int) *Ring {
	if capacity < 1 {
		capacity = NetworkRingCapacity
	}
	return &Ring{
		buf:      make([]float64, 2*capacity),
		capacity: capacity,
	}
}

// TryPush appends samples in order. It reports false without writing
// anything when the ring already holds a nominal capacity's worth, which
// is the producer's cue to wait and retry. A single oversized chunk may
// overshoot the nominal capacity; the hard ceiling then evicts the
// oldest samples rather than growing.
func (r *Ring) TryPush(samples []float64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.count >= r.capacity {
		return false
	}

	size := len(r.buf)
	for _, v := range samples {
		if r.count == size {
			r.head++
			if r.head == size {
				r.head = 0
			}
			r.count--
			r.dropped++
		}
		tail := r.head + r.count
		if tail >= size {
			tail -= size
		}
		r.buf[tail] = v
		r.count++
	}
	r.pushed += uint64(len(samples))
	return true
}

// Pop moves up to len(dst) samples into dst in FIFO order and zero-fills
// the remainder. It returns the number of real samples delivered and
// never blocks; the zero fill is what the output callback plays as
// silence on underrun.
func (r *Ring) Pop(dst []float64) int {
	r.mu.Lock()
	n := r.count
	if n > len(dst) {
		n = len(dst)
	}
	for i := 0; i < n; i++ {
		dst[i] = r.buf[r.head]
		r.head++
		if r.head == len(r.buf) {
			r.head = 0
		}
	}
	r.count -= n
	r.mu.Unlock()

	for i := n; i < len(dst); i++ {
		dst[i] = 0
	}
	return n
}

// Len returns the number of buffered samples.
func (r *Ring) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.count
}

// Cap returns the nominal capacity in samples.
func (r *Ring) Cap() int { return r.capacity }

// Pushed returns the total number of samples ever accepted.
func (r *Ring) Pushed() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pushed
}

// Dropped returns the number of samples evicted at the hard ceiling.
// Non-zero values indicate a data-loss event, not a failure.
func (r *Ring) Dropped() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.dropped
}
