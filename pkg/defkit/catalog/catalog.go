// Package catalog provides a SQLite-backed source of definition records.
//
// A catalog stores one row per definition: its kind, its name, and a JSON
// payload. The Discovery constructors turn a catalog into deferred bulk
// sources for defkit indexes: the catalog is queried once, on the first
// index access that needs the full namespace, and its rows decode into
// definitions whose names are unknown until the query runs.
//
//	store, err := catalog.Open("definitions.db")
//	...
//	repo, err := defkit.NewRepository("etl",
//	    defkit.WithJobDiscovery(catalog.JobDiscovery(store)),
//	    defkit.WithScheduleDiscovery(catalog.ScheduleDiscovery(store)),
//	)
//
// The catalog is an input to the index; resolved definitions are cached
// in memory only and never written back.
package catalog

import (
	"errors"
	"time"
)

// Sentinel errors for catalog operations.
var (
	// ErrRecordNotFound indicates no record exists for the kind and name.
	ErrRecordNotFound = errors.New("catalog record not found")

	// ErrStoreClosed indicates an operation on a closed store.
	ErrStoreClosed = errors.New("catalog store is closed")
)

// Record is one stored definition row.
type Record struct {
	// Kind is the definition kind (e.g. "job").
	Kind string
	// Name is the definition name, unique per kind.
	Name string
	// Data is the JSON-encoded definition payload.
	Data []byte
	// UpdatedAt is when the record was last written.
	UpdatedAt time.Time
}
