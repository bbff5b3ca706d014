// Package apperror defines the failure kinds shared by validators, repositories
// and usecases, and how each kind maps onto an HTTP status.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies a failure.
type Kind string

const (
	KindInvalidField       Kind = "invalid_field"
	KindDuplicateKey       Kind = "duplicate_key"
	KindNotFound           Kind = "not_found"
	KindInvalidIdentifier  Kind = "invalid_identifier"
	KindValidationFailed   Kind = "validation_failed"
	KindStorageUnavailable Kind = "storage_unavailable"
	KindInternal           Kind = "internal"
)

// FieldError names one offending field and why it was rejected.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the single error type returned across the core.
type Error struct {
	Kind    Kind
	Field   string       // offending field, if any
	Message string       // human-readable message
	Details []FieldError // populated for KindValidationFailed
	Op      string       // storage operation, for KindStorageUnavailable
	Cause   error
}

func (e *Error) Error() string {
	switch {
	case e.Kind == KindValidationFailed && len(e.Details) > 0:
		parts := make([]string, len(e.Details))
		for i, d := range e.Details {
			parts[i] = d.Field + ": " + d.Message
		}
		return fmt.Sprintf("%s: %s", e.Message, strings.Join(parts, ", "))
	case e.Op != "" && e.Cause != nil:
		return fmt.Sprintf("%s during %s: %v", e.Message, e.Op, e.Cause)
	case e.Field != "":
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is lets errors.Is match on kind alone, e.g. errors.Is(err, apperror.ErrNotFound).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Field == "" && t.Kind == e.Kind
}

// Kind-only sentinels for errors.Is.
var (
	ErrInvalidField       = &Error{Kind: KindInvalidField}
	ErrDuplicateKey       = &Error{Kind: KindDuplicateKey}
	ErrNotFound           = &Error{Kind: KindNotFound}
	ErrInvalidIdentifier  = &Error{Kind: KindInvalidIdentifier}
	ErrValidationFailed   = &Error{Kind: KindValidationFailed}
	ErrStorageUnavailable = &Error{Kind: KindStorageUnavailable}
)

// InvalidField creates an InvalidField error.
func InvalidField(field, message string) *Error {
	return &Error{Kind: KindInvalidField, Field: field, Message: message}
}

// DuplicateKey creates a DuplicateKey error for a unique field.
func DuplicateKey(field, message string) *Error {
	return &Error{Kind: KindDuplicateKey, Field: field, Message: message}
}

// NotFound creates a NotFound error for the given entity.
func NotFound(entity, id string) *Error {
	return &Error{Kind: KindNotFound, Field: "id", Message: fmt.Sprintf("%s %s not found", entity, id)}
}

// InvalidIdentifier creates an InvalidIdentifier error.
func InvalidIdentifier(field, value string) *Error {
	return &Error{Kind: KindInvalidIdentifier, Field: field, Message: fmt.Sprintf("invalid identifier %q", value)}
}

// ValidationFailed aggregates one or more field errors.
func ValidationFailed(details []FieldError) *Error {
	return &Error{Kind: KindValidationFailed, Message: "validation failed", Details: details}
}

// StorageUnavailable wraps a failure of the storage layer.
func StorageUnavailable(op string, cause error) *Error {
	return &Error{Kind: KindStorageUnavailable, Message: "storage unavailable", Op: op, Cause: cause}
}

// KindOf reports the kind of err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// As extracts the *Error from err's chain.
func As(err error) (*Error, bool) {
	var ae *Error
	ok := errors.As(err, &ae)
	return ae, ok
}

// HTTPStatus maps err onto the status code the HTTP layer responds with.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidField, KindValidationFailed, KindInvalidIdentifier:
		return http.StatusBadRequest
	case KindDuplicateKey:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
