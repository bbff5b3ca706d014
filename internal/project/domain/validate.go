package domain

import (
	"fmt"

	"projecthub-backend/pkg/apperror"
	"projecthub-backend/pkg/entity"
)

const (
	NameMinLength        = 3
	NameMaxLength        = 100
	DescriptionMaxLength = 500
)

// Validate checks a sanitized project and returns every failed constraint.
// Name uniqueness is left to storage.
func Validate(p *Project) apperror.FieldErrors {
	var errs apperror.FieldErrors

	switch n := entity.Len(p.Name); {
	case n == 0:
		errs.Add("name", "name is required")
	case n < NameMinLength:
		errs.Add("name", fmt.Sprintf("name must be at least %d characters", NameMinLength))
	case n > NameMaxLength:
		errs.Add("name", fmt.Sprintf("name cannot exceed %d characters", NameMaxLength))
	}

	if entity.Len(p.Description) > DescriptionMaxLength {
		errs.Add("description", fmt.Sprintf("description cannot exceed %d characters", DescriptionMaxLength))
	}
	if !ValidStatus(p.Status) {
		errs.Add("status", fmt.Sprintf("status must be one of %v", Statuses))
	}
	if !ValidPriority(p.Priority) {
		errs.Add("priority", fmt.Sprintf("priority must be one of %v", Priorities))
	}
	if p.EndDate != nil && !p.StartDate.IsZero() && !p.EndDate.After(p.StartDate) {
		errs.Add("end_date", "end date must be after start date")
	}

	if p.Meta.TotalTasks < 0 {
		errs.Add("meta.total_tasks", "total tasks cannot be negative")
	}
	if p.Meta.CompletedTasks < 0 {
		errs.Add("meta.completed_tasks", "completed tasks cannot be negative")
	}
	if p.Meta.CompletedTasks > p.Meta.TotalTasks && p.Meta.TotalTasks >= 0 {
		errs.Add("meta.completed_tasks", "completed tasks cannot exceed total tasks")
	}

	return errs
}

// ValidStatus reports enum membership.
func ValidStatus(s Status) bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
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
