package defkit

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFoundErrorMessage(t *testing.T) {
	err := &NotFoundError{Kind: "job", Name: "missing", Known: []string{"a", "b"}}

	assert.Equal(t, `could not find job "missing". Found: "a", "b"`, err.Error())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNotFoundErrorEmptyNamespace(t *testing.T) {
	err := &NotFoundError{Kind: "sensor", Name: "x"}

	assert.Equal(t, `could not find sensor "x". Found: `, err.Error())
}

func TestTypeMismatchErrorMessage(t *testing.T) {
	err := &TypeMismatchError{Kind: "job", Name: "ingest", Got: "int"}

	assert.Contains(t, err.Error(), `job "ingest"`)
	assert.Contains(t, err.Error(), "got int")
	assert.ErrorIs(t, err, ErrTypeMismatch)
}

func TestTypeMismatchErrorWithoutName(t *testing.T) {
	err := &TypeMismatchError{Kind: "job", Got: "a nil definition from discovery"}

	assert.Equal(t, "bad definition for job: must be a definition or a zero-argument factory, got a nil definition from discovery", err.Error())
}

func TestNameMismatchErrorMessage(t *testing.T) {
	err := &NameMismatchError{Kind: "schedule", Key: "nightly", Got: "weekly"}

	assert.Equal(t, `bad constructor for schedule "nightly": constructed definition is named "weekly"`, err.Error())
	assert.ErrorIs(t, err, ErrNameMismatch)
}

func TestDuplicateDefinitionErrorMessage(t *testing.T) {
	err := &DuplicateDefinitionError{Kind: "job", Name: "etl"}

	assert.Equal(t, `duplicate definition found for job "etl"`, err.Error())
	assert.ErrorIs(t, err, ErrDuplicateDefinition)
}

func TestUnknownJobErrorMessage(t *testing.T) {
	err := &UnknownJobError{Kind: "schedule", Name: "nightly", Job: "ghost"}

	assert.Equal(t, `schedule "nightly" targets unknown job "ghost"`, err.Error())
	assert.ErrorIs(t, err, ErrUnknownJob)
}

func TestErrorsDoNotMatchEachOther(t *testing.T) {
	err := &NotFoundError{Kind: "job", Name: "x"}

	assert.False(t, errors.Is(err, ErrTypeMismatch))
	assert.False(t, errors.Is(err, ErrDuplicateDefinition))
}
