package registry

import "sync"

// Registry is a thread-safe registry for values indexed by string key.
// Keys keep the order in which they were first registered.
type Registry[V any] struct {
	mu      sync.RWMutex
	keys    []string
	entries map[string]V
}

// New creates a new empty registry.
func New[V any]() *Registry[V] {
	return &Registry[V]{
		entries: make(map[string]V),
	}
}

// Register adds or updates a value in the registry.
// A new key is appended to the key order; an existing key keeps its
// original position.
func (r *Registry[V]) Register(key string, value V) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.entries[key] = value
}

// Get returns the value for a key and whether it exists.
func (r *Registry[V]) Get(key string) (V, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.entries[key]
	return v, ok
}

// Has returns true if the key exists in the registry.
func (r *Registry[V]) Has(key string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.entries[key]
	return ok
}

// Keys returns all keys in registration order.
// The returned slice is a copy and may be modified by the caller.
func (r *Registry[V]) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	return keys
}

// Len returns the number of entries in the registry.
func (r *Registry[V]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Range iterates over all entries in registration order.
// The function fn is called for each entry. If fn returns false,
// iteration stops.
//
// Range iterates over a snapshot of the registry, so it is safe to call
// Register during iteration without affecting the current iteration.
func (r *Registry[V]) Range(fn func(string, V) bool) {
	// Take a snapshot under read lock
	r.mu.RLock()
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	values := make([]V, len(keys))
	for i, k := range keys {
		values[i] = r.entries[k]
	}
	r.mu.RUnlock()

	// Iterate over snapshot without holding lock
	for i, k := range keys {
		if !fn(k, values[i]) {
			return
		}
	}
}
