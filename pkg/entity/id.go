package entity

import (
	"projecthub-backend/pkg/apperror"

	"github.com/google/uuid"
)

// NewID returns a fresh entity identifier.
func NewID() string {
	return uuid.New().String()
}

// ValidateID fails with InvalidIdentifier unless id is a canonical
// (36 character, hyphenated) UUID.
func ValidateID(field, id string) error {
	if len(id) != 36 {
		return apperror.InvalidIdentifier(field, id)
	}
	if _, err := uuid.Parse(id); err != nil {
		return apperror.InvalidIdentifier(field, id)
	}
	return nil
}
