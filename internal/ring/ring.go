// Package ring provides a fixed-capacity FIFO buffer that evicts the oldest
// entry on overflow.
package ring

import "sync"

// Buffer is a bounded history. Push is O(1); once full, each push overwrites
// the oldest entry.
type Buffer[T any] struct {
	mu    sync.RWMutex
	items []T
	head  int // next write position
	size  int
}

// New returns a buffer holding at most capacity items. A non-positive capacity
// is raised to 1.
func New[T any](capacity int) *Buffer[T] {
	if capacity <= 0 {
		capacity = 1
	}
	return &Buffer[T]{items: make([]T, capacity)}
}

// Push appends v, evicting the oldest item when the buffer is full. It reports
// whether an item was evicted.
func (b *Buffer[T]) Push(v T) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items[b.head] = v
	b.head = (b.head + 1) % len(b.items)
	if b.size == len(b.items) {
		return true
	}
	b.size++
	return false
}

// Len returns the number of stored items.
func (b *Buffer[T]) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.size
}

// Cap returns the capacity.
func (b *Buffer[T]) Cap() int { return len(b.items) }

// Snapshot copies the items, oldest first.
func (b *Buffer[T]) Snapshot() []T {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]T, b.size)
	start := (b.head - b.size + len(b.items)) % len(b.items)
	for i := 0; i < b.size; i++ {
		out[i] = b.items[(start+i)%len(b.items)]
	}
	return out
}

// Last returns the most recent item.
func (b *Buffer[T]) Last() (T, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	var zero T
	if b.size == 0 {
		return zero, false
	}
	return b.items[(b.head-1+len(b.items))%len(b.items)], true
}

// Reset drops all items.
func (b *Buffer[T]) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	var zero T
	for i := range b.items {
		b.items[i] = zero
	}
	b.head, b.size = 0, 0
}
