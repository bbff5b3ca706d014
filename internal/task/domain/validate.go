package domain

import (
	"fmt"

	"projecthub-backend/pkg/apperror"
	"projecthub-backend/pkg/entity"
)

const (
	TitleMinLength         = 3
	TitleMaxLength         = 150
	DescriptionMaxLength   = 1000
	AssigneeMaxLength      = 50
	EstimatedTimeMaxLength = 20
	TagMaxLength           = 30
	NotesMaxLength         = 1000
)

// Validate checks a sanitized task and returns every failed constraint.
func Validate(t *Task) apperror.FieldErrors {
	var errs apperror.FieldErrors

	switch n := entity.Len(t.Title); {
	case n == 0:
		errs.Add("title", "title is required")
	case n < TitleMinLength:
		errs.Add("title", fmt.Sprintf("title must be at least %d characters", TitleMinLength))
	case n > TitleMaxLength:
		errs.Add("title", fmt.Sprintf("title cannot exceed %d characters", TitleMaxLength))
	}

	if entity.Len(t.Description) > DescriptionMaxLength {
		errs.Add("description", fmt.Sprintf("description cannot exceed %d characters", DescriptionMaxLength))
	}
	if !ValidPriority(t.Priority) {
		errs.Add("priority", fmt.Sprintf("priority must be one of %v", Priorities))
	}
	if !ValidCategory(t.Category) {
		errs.Add("category", fmt.Sprintf("category must be one of %v", Categories))
	}
	if entity.Len(t.Assignee) > AssigneeMaxLength {
		errs.Add("assignee", fmt.Sprintf("assignee cannot exceed %d characters", AssigneeMaxLength))
	}
	if entity.Len(t.EstimatedTime) > EstimatedTimeMaxLength {
		errs.Add("estimated_time", fmt.Sprintf("estimated time cannot exceed %d characters", EstimatedTimeMaxLength))
	}
	for _, tag := range t.Tags {
		if entity.Len(tag) > TagMaxLength {
			errs.Add("tags", fmt.Sprintf("tag %q cannot exceed %d characters", tag, TagMaxLength))
			break
		}
	}
	if entity.Len(t.Notes) > NotesMaxLength {
		errs.Add("notes", fmt.Sprintf("notes cannot exceed %d characters", NotesMaxLength))
	}

	return errs
}

// ValidPriority reports enum membership.
func ValidPriority(p Priority) bool {
	for _, v := range Priorities {
		if p == v {
			return true
		}
	}
	return false
}

// ValidCategory reports enum membership.
func ValidCategory(c Category) bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}
