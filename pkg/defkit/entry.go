package defkit

import "fmt"

// Entry is one eager binding in an index's namespace: a name carrying
// either a ready definition or a zero-argument factory that produces one.
// The name is authoritative; for factory entries the produced definition
// must carry the same name.
type Entry[T Definition] struct {
	name    string
	def     T
	hasDef  bool
	factory func() (T, error)

	// badType records the actual type when FromAny was given a value that
	// is neither a definition nor a factory. Reported at index
	// construction time.
	badType string
}

// Eager binds a ready definition to a name.
func Eager[T Definition](name string, def T) Entry[T] {
	return Entry[T]{name: name, def: def, hasDef: true}
}

// Factory binds a name to a zero-argument constructor, invoked at most
// once, on the first lookup of the name.
func Factory[T Definition](name string, fn func() (T, error)) Entry[T] {
	return Entry[T]{name: name, factory: fn}
}

// FromAny builds an entry from an untyped value, as handed over by
// manifest loaders or plugin tables. Accepted values are a T, a
// func() (T, error), or a func() T. Anything else produces an entry that
// fails index construction with a type mismatch naming the offending key.
func FromAny[T Definition](name string, value any) Entry[T] {
	switch v := value.(type) {
	case T:
		return Eager(name, v)
	case func() (T, error):
		return Factory(name, v)
	case func() T:
		return Factory(name, func() (T, error) { return v(), nil })
	default:
		return Entry[T]{name: name, badType: fmt.Sprintf("%T", value)}
	}
}

// Name returns the name the entry is bound to.
func (e Entry[T]) Name() string { return e.name }

// valid reports whether the entry carries a definition or a factory.
func (e Entry[T]) valid() bool {
	return e.hasDef || e.factory != nil
}
