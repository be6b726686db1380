package vis

import "sync"

// DefaultBufferSize bounds the handoff queue at two FFT windows.
const DefaultBufferSize = 8192

// Buffer is a bounded queue of mono samples written by the output
// callback and read destructively by the analyzer. When full, the oldest
// samples are dropped; the visualization only ever cares about recent
// signal.
type Buffer struct {
	mu    sync.Mutex
	data  []float64
	head  int
	count int
}

// NewBuffer returns a Buffer bounded at capacity samples.
// Non-positive capacities fall back to DefaultBufferSize.
func NewBuffer(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultBufferSize
	}
	return &Buffer{data: make([]float64, capacity)}
}

// Cap returns the buffer bound.
func (b *Buffer) Cap() int {
	return len(b.data)
}

// Len returns the number of queued samples.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.count
}

// Push appends samples, dropping the oldest queued samples once the
// bound is reached. A chunk larger than the bound keeps only its newest
// portion.
func (b *Buffer) Push(samples []float64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	size := len(b.data)
	if len(samples) >= size {
		copy(b.data, samples[len(samples)-size:])
		b.head = 0
		b.count = size
		return
	}

	overflow := b.count + len(samples) - size
	if overflow > 0 {
		b.head = (b.head + overflow) % size
		b.count -= overflow
	}

	tail := (b.head + b.count) % size
	n := copy(b.data[tail:], samples)
	copy(b.data, samples[n:])
	b.count += len(samples)
}

// Drain pops up to len(dst) of the oldest queued samples into dst and
// returns how many were popped. It never blocks.
func (b *Buffer) Drain(dst []float64) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := len(dst)
	if n > b.count {
		n = b.count
	}

	size := len(b.data)
	first := copy(dst[:n], b.data[b.head:])
	copy(dst[first:n], b.data[:n-first])

	b.head = (b.head + n) % size
	b.count -= n

	return n
}
