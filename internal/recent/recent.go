// Package recent keeps a short list of recently analyzed logs.
package recent

import "sync"

// DefaultCapacity is the number of identifiers remembered by default.
const DefaultCapacity = 5

// Entry is one remembered identifier and the value stored with it.
type Entry[V any] struct {
	Key   string
	Value V
}

// List is a bounded FIFO of identifiers. When full, adding a new key
// evicts the oldest one. Lookups do not refresh an entry's position.
//
// List is safe for concurrent use.
type List[V any] struct {
	mu       sync.Mutex
	capacity int
	entries  []Entry[V]
}

// New returns an empty List holding at most capacity entries.
// A capacity below 1 uses DefaultCapacity.
func New[V any](capacity int) *List[V] {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	return &List[V]{capacity: capacity}
}

// Add appends key with its value, evicting the oldest entry when the list
// is full. If key is already present nothing changes and Add returns false.
func (l *List[V]) Add(key string, value V) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.indexOf(key) >= 0 {
		return false
	}
	l.entries = append(l.entries, Entry[V]{Key: key, Value: value})
	if len(l.entries) > l.capacity {
		l.entries = append(l.entries[:0:0], l.entries[len(l.entries)-l.capacity:]...)
	}
	return true
}

// Lookup returns the value stored for key.
func (l *List[V]) Lookup(key string) (V, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if i := l.indexOf(key); i >= 0 {
		return l.entries[i].Value, true
	}
	var zero V
	return zero, false
}

// Len returns the number of entries.
func (l *List[V]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Entries returns a copy of the entries, oldest first.
func (l *List[V]) Entries() []Entry[V] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Entry[V](nil), l.entries...)
}

func (l *List[V]) indexOf(key string) int {
	for i, e := range l.entries {
		if e.Key == key {
			return i
		}
	}
	return -1
}
