package defkit

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for index construction and resolution.
var (
	// ErrNotFound indicates a lookup for a name absent from the namespace.
	ErrNotFound = errors.New("definition not found")

	// ErrTypeMismatch indicates a supplied entry is neither a definition
	// nor a zero-argument factory, or a factory/discovery result is not a
	// usable definition.
	ErrTypeMismatch = errors.New("definition type mismatch")

	// ErrNameMismatch indicates a constructed definition's name does not
	// match the key it was registered under.
	ErrNameMismatch = errors.New("definition name mismatch")

	// ErrDuplicateDefinition indicates the same name carries conflicting
	// definitions across the eager and discovered namespaces, or appears
	// twice in the eager entries.
	ErrDuplicateDefinition = errors.New("duplicate definition")
)

// Sentinel errors for the built-in definition kinds.
var (
	// ErrInvalidDefinition indicates a built-in validation function
	// rejected a definition.
	ErrInvalidDefinition = errors.New("invalid definition")

	// ErrUnknownJob indicates a schedule or sensor targets a job that does
	// not exist in the repository.
	ErrUnknownJob = errors.New("unknown target job")
)

// NotFoundError reports a lookup for an unknown name.
// Known lists every name the index currently resolves, to aid diagnosis.
type NotFoundError struct {
	// Kind is the definition kind held by the index (e.g. "job").
	Kind string
	// Name is the name that was looked up.
	Name string
	// Known is every name in the merged namespace, in list order.
	Known []string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	quoted := make([]string, len(e.Known))
	for i, n := range e.Known {
		quoted[i] = fmt.Sprintf("%q", n)
	}
	return fmt.Sprintf("could not find %s %q. Found: %s", e.Kind, e.Name, strings.Join(quoted, ", "))
}

// Unwrap returns ErrNotFound for errors.Is support.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// TypeMismatchError reports an entry or constructed value that is not a
// usable definition.
type TypeMismatchError struct {
	// Kind is the definition kind held by the index.
	Kind string
	// Name is the key the offending value was registered under.
	Name string
	// Got describes the value actually found.
	Got string
}

// Error implements the error interface.
func (e *TypeMismatchError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("bad definition for %s: must be a definition or a zero-argument factory, got %s", e.Kind, e.Got)
	}
	return fmt.Sprintf("bad definition for %s %q: must be a definition or a zero-argument factory, got %s", e.Kind, e.Name, e.Got)
}

// Unwrap returns ErrTypeMismatch for errors.Is support.
func (e *TypeMismatchError) Unwrap() error {
	return ErrTypeMismatch
}

// NameMismatchError reports a factory- or discovery-produced definition
// whose own name differs from its registration key.
type NameMismatchError struct {
	// Kind is the definition kind held by the index.
	Kind string
	// Key is the name the definition was registered under.
	Key string
	// Got is the name the constructed definition carries.
	Got string
}

// Error implements the error interface.
func (e *NameMismatchError) Error() string {
	return fmt.Sprintf("bad constructor for %s %q: constructed definition is named %q", e.Kind, e.Key, e.Got)
}

// Unwrap returns ErrNameMismatch for errors.Is support.
func (e *NameMismatchError) Unwrap() error {
	return ErrNameMismatch
}

// DuplicateDefinitionError reports a name bound to conflicting definitions.
type DuplicateDefinitionError struct {
	// Kind is the definition kind held by the index.
	Kind string
	// Name is the conflicting name.
	Name string
}

// Error implements the error interface.
func (e *DuplicateDefinitionError) Error() string {
	return fmt.Sprintf("duplicate definition found for %s %q", e.Kind, e.Name)
}

// Unwrap returns ErrDuplicateDefinition for errors.Is support.
func (e *DuplicateDefinitionError) Unwrap() error {
	return ErrDuplicateDefinition
}

// UnknownJobError reports a schedule or sensor whose target job is not
// present in the repository's job namespace.
type UnknownJobError struct {
	// Kind is the referencing definition's kind ("schedule" or "sensor").
	Kind string
	// Name is the referencing definition's name.
	Name string
	// Job is the missing target job name.
	Job string
}

// Error implements the error interface.
func (e *UnknownJobError) Error() string {
	return fmt.Sprintf("%s %q targets unknown job %q", e.Kind, e.Name, e.Job)
}

// Unwrap returns ErrUnknownJob for errors.Is support.
func (e *UnknownJobError) Unwrap() error {
	return ErrUnknownJob
}
