package domain

import (
	"fmt"
	"strings"
	"time"

	"projecthub-backend/pkg/apperror"
	"projecthub-backend/pkg/entity"
)

// Sanitize trims free text, normalizes tags and applies defaults to empty
// fields.
func Sanitize(t *Task) {
	t.Title = strings.TrimSpace(t.Title)
	t.Description = strings.TrimSpace(t.Description)
	t.Assignee = strings.TrimSpace(t.Assignee)
	t.EstimatedTime = strings.TrimSpace(t.EstimatedTime)
	t.Notes = strings.TrimSpace(t.Notes)
	if t.Assignee == "" {
		t.Assignee = DefaultAssignee
	}
	if t.EstimatedTime == "" {
		t.EstimatedTime = DefaultEstimatedTime
	}
	if t.Priority == "" {
		t.Priority = PriorityMedium
	}
	if t.Category == "" {
		t.Category = CategoryOther
	}
	t.Tags = entity.NormalizeTags(t.Tags)
}

// SetCompleted toggles completion. Going false->true stamps CompletedAt
// unless it is already set; going true->false clears it. Setting the current
// value changes nothing. It reports whether the flag changed.
func SetCompleted(t *Task, completed bool, now time.Time) bool {
	if t.Completed == completed {
		return false
	}
	t.Completed = completed
	if completed {
		if t.CompletedAt == nil {
			at := now
			t.CompletedAt = &at
		}
	} else {
		t.CompletedAt = nil
	}
	return true
}

// Prepare is the save pipeline: sanitize then validate.
func Prepare(t *Task) apperror.FieldErrors {
	Sanitize(t)
	return Validate(t)
}

// IsOverdue is true iff a due date is set, the task is open and now is
// past the due date.
func IsOverdue(t *Task, now time.Time) bool {
	if t.DueDate == nil || t.Completed {
		return false
	}
	return now.After(*t.DueDate)
}

// AgeBucket describes how long ago the task was created.
func AgeBucket(createdAt, now time.Time) string {
	days := int(now.Sub(createdAt) / (24 * time.Hour))
	switch {
	case days <= 0:
		return "today"
	case days == 1:
		return "yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	case days < 30:
		return fmt.Sprintf("%d weeks ago", days/7)
	default:
		return fmt.Sprintf("%d months ago", days/30)
	}
}

// View is a task as returned to readers: stored fields plus the values
// derived at read time.
type View struct {
	*Task
	Overdue bool   `json:"overdue"`
	Age     string `json:"age"`
}

// NewView derives the read-time fields at now.
func NewView(t *Task, now time.Time) View {
	return View{
		Task:    t,
		Overdue: IsOverdue(t, now),
		Age:     AgeBucket(t.CreatedAt, now),
	}
}

// NewViews maps NewView over tasks. The result is never nil.
func NewViews(tasks []*Task, now time.Time) []View {
	views := make([]View, 0, len(tasks))
	for _, t := range tasks {
		views = append(views, NewView(t, now))
	}
	return views
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
