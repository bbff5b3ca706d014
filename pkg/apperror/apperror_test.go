package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", NotFound("task", "x"), http.StatusNotFound},
		{"invalid field", InvalidField("title", "too short"), http.StatusBadRequest},
		{"validation failed", ValidationFailed([]FieldError{{Field: "a", Message: "b"}}), http.StatusBadRequest},
		{"invalid identifier", InvalidIdentifier("id", "nope"), http.StatusBadRequest},
		{"duplicate key", DuplicateKey("name", "taken"), http.StatusConflict},
		{"storage unavailable", StorageUnavailable("list", errors.New("down")), http.StatusInternalServerError},
		{"foreign error", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("ctx: %w", NotFound("project", "y")), http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestErrorsIs(t *testing.T) {
	err := fmt.Errorf("outer: %w", DuplicateKey("name", "taken"))

	assert.True(t, errors.Is(err, ErrDuplicateKey))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, KindDuplicateKey, KindOf(err))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
}

func TestStorageUnavailable_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := StorageUnavailable("find task", cause)

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.Contains(t, err.Error(), "find task")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestError_Message(t *testing.T) {
	assert.Equal(t, "title: too short", InvalidField("title", "too short").Error())
	assert.Equal(t, "id: task abc not found", NotFound("task", "abc").Error())

	err := ValidationFailed([]FieldError{
		{Field: "title", Message: "required"},
		{Field: "priority", Message: "unknown"},
	})
	assert.Equal(t, "validation failed: title: required, priority: unknown", err.Error())
}

func TestFieldErrors(t *testing.T) {
	var errs FieldErrors
	assert.True(t, errs.Empty())
	assert.NoError(t, errs.First())
	assert.NoError(t, errs.All())

	errs.Add("title", "required")
	errs.Add("notes", "too long")
	require.False(t, errs.Empty())

	first, ok := As(errs.First())
	require.True(t, ok)
	assert.Equal(t, KindInvalidField, first.Kind)
	assert.Equal(t, "title", first.Field)

	all, ok := As(errs.All())
	require.True(t, ok)
	assert.Equal(t, KindValidationFailed, all.Kind)
	assert.Len(t, all.Details, 2)
	assert.Equal(t, "notes", all.Details[1].Field)
}
