package apperror

// FieldErrors collects validator failures in the order they were found.
type FieldErrors []FieldError

// Add records a failure for field.
func (fe *FieldErrors) Add(field, message string) {
	*fe = append(*fe, FieldError{Field: field, Message: message})
}

// Empty reports whether no failure was recorded.
func (fe FieldErrors) Empty() bool {
	return len(fe) == 0
}

// First returns the first failure as an InvalidField error, or nil.
func (fe FieldErrors) First() error {
	if len(fe) == 0 {
		return nil
	}
	return InvalidField(fe[0].Field, fe[0].Message)
}

// All returns every failure as one ValidationFailed error, or nil.
func (fe FieldErrors) All() error {
	if len(fe) == 0 {
		return nil
	}
	details := make([]FieldError, len(fe))
	copy(details, fe)
	return ValidationFailed(details)
}
