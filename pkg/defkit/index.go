package defkit

import (
	"context"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/randalmurphal/defkit/pkg/defkit/observability"
	"github.com/randalmurphal/defkit/pkg/defkit/registry"
)

// Index is a lazy, validating, name-indexed catalog of definitions of one
// kind. Names resolve against a merged namespace: eager entries (ready
// definitions or factories) in registration order, followed by
// definitions produced by the discovery function in discovery order.
//
// Construction work happens at most once per name: factories are invoked
// on the first lookup of their name, discovery runs on the first call
// that needs the full namespace, and every result is cached for the life
// of the index. There is no refresh; once resolved, a name's definition
// is permanent.
type Index[T Definition] struct {
	kind    string
	cfg     indexConfig[T]
	entries *registry.Registry[Entry[T]]

	mu       sync.Mutex
	resolved map[string]T
	names    []string
	namesSet bool
	all      []T
	allSet   bool
}

// New creates an index for one definition kind. kind is the
// human-readable kind name used in diagnostics (e.g. "job"). entries is
// the eager namespace, in authoritative order; duplicate names are a
// construction error, as is an entry carrying neither a definition nor a
// factory.
//
// Factories and discovery results are not constructed here; they are
// validated lazily on first resolution.
func New[T Definition](kind string, entries []Entry[T], opts ...Option[T]) (*Index[T], error) {
	cfg := defaultIndexConfig[T]()
	for _, opt := range opts {
		opt(&cfg)
	}

	ix := &Index[T]{
		kind:     kind,
		cfg:      cfg,
		entries:  registry.New[Entry[T]](),
		resolved: make(map[string]T),
	}

	for _, entry := range entries {
		if entry.badType != "" {
			return nil, &TypeMismatchError{Kind: kind, Name: entry.name, Got: entry.badType}
		}
		if !entry.valid() {
			return nil, &TypeMismatchError{Kind: kind, Name: entry.name, Got: "an empty entry"}
		}
		if entry.hasDef && isNilDefinition(entry.def) {
			return nil, &TypeMismatchError{Kind: kind, Name: entry.name, Got: fmt.Sprintf("a nil %T", entry.def)}
		}
		if ix.entries.Has(entry.name) {
			return nil, &DuplicateDefinitionError{Kind: kind, Name: entry.name}
		}
		ix.entries.Register(entry.name, entry)
	}

	return ix, nil
}

// Kind returns the human-readable kind name the index was created with.
func (ix *Index[T]) Kind() string { return ix.kind }

// Names returns every name in the merged namespace: eager entry names in
// registration order, then discovery-only names in discovery order.
//
// The first call runs discovery, and every discovered definition is
// validated and cached as a side effect, so this call alone can carry the
// full construction cost of the discovered batch.
func (ix *Index[T]) Names() ([]string, error) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	names, err := ix.materializeLocked()
	if err != nil {
		return nil, err
	}
	return slices.Clone(names), nil
}

// Has reports whether name exists in the merged namespace. Triggers the
// same discovery side effect as Names.
func (ix *Index[T]) Has(name string) (bool, error) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	names, err := ix.materializeLocked()
	if err != nil {
		return false, err
	}
	return slices.Contains(names, name), nil
}

// Get resolves a name to its definition.
//
// An unknown name yields a NotFoundError listing every known name. A
// cached name is returned in O(1) without re-running construction or
// validation. Otherwise the eager entry is resolved: a factory is invoked
// (once, ever), its result name-checked and validated, then cached and
// returned. For entries supplied as ready instances, the validation
// function's result is cached for later lookups while the first call
// returns the instance exactly as supplied.
//
// Errors from factories and the validation function are propagated
// unchanged; a failed resolution caches nothing for that name.
func (ix *Index[T]) Get(name string) (T, error) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	return ix.getLocked(name)
}

// All resolves every name and returns the definitions sorted by name.
// The result is memoized: later calls return the same slice without
// recomputation. Callers must not modify it.
func (ix *Index[T]) All() ([]T, error) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if ix.allSet {
		return ix.all, nil
	}

	names, err := ix.materializeLocked()
	if err != nil {
		return nil, err
	}

	defs := make([]T, 0, len(names))
	for _, name := range names {
		def, err := ix.getLocked(name)
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
	}
	slices.SortFunc(defs, func(a, b T) int {
		return strings.Compare(a.Name(), b.Name())
	})

	ix.all = defs
	ix.allSet = true
	return ix.all, nil
}

// materializeLocked computes the merged name list, running discovery
// under its own span if it has not run yet.
func (ix *Index[T]) materializeLocked() ([]string, error) {
	if ix.namesSet {
		return ix.names, nil
	}

	ctx, span := ix.cfg.tracing.StartDiscoverySpan(context.Background(), ix.kind)
	names, err := ix.discoverLocked(ctx)
	ix.cfg.tracing.EndSpanWithError(span, err)
	return names, err
}

// discoverLocked runs discovery and commits the merged name list. Every
// discovered definition is validated and staged before anything is
// committed: a failing discovery run, conflict, or validation leaves the
// index as if the run never happened.
func (ix *Index[T]) discoverLocked(ctx context.Context) ([]string, error) {
	start := time.Now()
	batch, err := ix.cfg.discover()
	ix.cfg.metrics.RecordDiscovery(ctx, ix.kind, len(batch), time.Since(start), err)
	if err != nil {
		observability.LogDiscoveryError(ix.cfg.logger, ix.kind, err)
		return nil, err
	}

	staged := make(map[string]T, len(batch))
	var extra []string
	for _, def := range batch {
		if isNilDefinition(def) {
			return nil, &TypeMismatchError{Kind: ix.kind, Got: "a nil definition from discovery"}
		}
		name := def.Name()
		if entry, ok := ix.entries.Get(name); ok {
			// A name in both namespaces must carry equal definitions.
			// A factory entry can never equal a discovered instance.
			if !entry.hasDef || !ix.cfg.equals(entry.def, def) {
				return nil, &DuplicateDefinitionError{Kind: ix.kind, Name: name}
			}
		} else {
			if _, dup := staged[name]; dup {
				return nil, &DuplicateDefinitionError{Kind: ix.kind, Name: name}
			}
			extra = append(extra, name)
		}
		validated, err := ix.validateDefinition(def, name)
		if err != nil {
			return nil, err
		}
		staged[name] = validated
	}

	for name, def := range staged {
		ix.resolved[name] = def
	}
	ix.names = append(ix.entries.Keys(), extra...)
	ix.namesSet = true
	observability.LogDiscoveryComplete(ix.cfg.logger, ix.kind, len(batch), time.Since(start))
	return ix.names, nil
}

// getLocked resolves one name with the index lock held.
func (ix *Index[T]) getLocked(name string) (T, error) {
	var zero T

	names, err := ix.materializeLocked()
	if err != nil {
		return zero, err
	}
	if !slices.Contains(names, name) {
		return zero, &NotFoundError{Kind: ix.kind, Name: name, Known: slices.Clone(names)}
	}

	if def, ok := ix.resolved[name]; ok {
		ix.cfg.metrics.RecordResolve(context.Background(), ix.kind, name, true)
		observability.LogResolve(ix.cfg.logger, ix.kind, name, true)
		return def, nil
	}

	entry, ok := ix.entries.Get(name)
	if !ok {
		// names holds only eager keys and names cached by discovery, so
		// this cannot happen after a successful materialization.
		return zero, &NotFoundError{Kind: ix.kind, Name: name, Known: slices.Clone(names)}
	}

	ctx, span := ix.cfg.tracing.StartResolveSpan(context.Background(), ix.kind, name)
	def, err := ix.resolveLocked(ctx, name, entry)
	ix.cfg.tracing.EndSpanWithError(span, err)
	return def, err
}

// resolveLocked constructs, validates, and caches the definition behind
// an uncached eager entry.
func (ix *Index[T]) resolveLocked(ctx context.Context, name string, entry Entry[T]) (T, error) {
	var zero T
	ix.cfg.metrics.RecordResolve(ctx, ix.kind, name, false)

	if entry.hasDef {
		// The validated result is cached; the supplied instance is what
		// the caller gets back.
		validated, err := ix.cfg.validate(entry.def)
		if err != nil {
			observability.LogValidationFailure(ix.cfg.logger, ix.kind, name, err)
			return zero, err
		}
		ix.resolved[name] = validated
		observability.LogResolve(ix.cfg.logger, ix.kind, name, false)
		return entry.def, nil
	}

	start := time.Now()
	def, err := entry.factory()
	ix.cfg.metrics.RecordFactory(ctx, ix.kind, name, time.Since(start), err)
	if err != nil {
		return zero, err
	}
	observability.LogFactoryInvoked(ix.cfg.logger, ix.kind, name, time.Since(start))

	validated, err := ix.validateDefinition(def, name)
	if err != nil {
		return zero, err
	}
	ix.resolved[name] = validated
	observability.LogResolve(ix.cfg.logger, ix.kind, name, false)
	return validated, nil
}

// validateDefinition runs the shared checks on a freshly constructed
// definition: it must be usable, must carry the name it was registered
// under, and must pass the external validation function. The validation
// function's result is what callers should cache.
func (ix *Index[T]) validateDefinition(def T, key string) (T, error) {
	var zero T
	if isNilDefinition(def) {
		return zero, &TypeMismatchError{Kind: ix.kind, Name: key, Got: fmt.Sprintf("a nil %T", def)}
	}
	if def.Name() != key {
		return zero, &NameMismatchError{Kind: ix.kind, Key: key, Got: def.Name()}
	}
	validated, err := ix.cfg.validate(def)
	if err != nil {
		observability.LogValidationFailure(ix.cfg.logger, ix.kind, key, err)
		return zero, err
	}
	return validated, nil
}

// isNilDefinition reports whether def is unusable: the zero value of an
// interface type or a nil pointer, map, slice, func, or channel. Calling
// Name() on such a value would panic.
func isNilDefinition[T Definition](def T) bool {
	rv := reflect.ValueOf(def)
	if !rv.IsValid() {
		return true
	}
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
