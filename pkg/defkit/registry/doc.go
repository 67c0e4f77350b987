// Package registry provides a generic thread-safe registry that preserves
// the order in which keys were registered.
//
// Registry is designed for read-heavy workloads using sync.RWMutex. Keys
// are strings; values can be any type through Go generics. Unlike a plain
// map, Keys and Range visit entries in registration order, which matters
// when the registry backs an ordered namespace.
//
// # Basic Usage
//
// Create a registry and register values:
//
//	r := registry.New[int]()
//	r.Register("one", 1)
//	r.Register("two", 2)
//
//	r.Keys() // ["one", "two"], always in this order
//
//	value, ok := r.Get("one")
//	if ok {
//	    fmt.Println(value) // Output: 1
//	}
//
// Re-registering an existing key replaces its value but keeps its
// original position.
//
// # Thread Safety
//
// All Registry methods are safe for concurrent use. Range iterates over a
// snapshot, so mutating the registry from inside the callback does not
// affect the current iteration.
package registry
