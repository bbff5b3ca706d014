package domain

import (
	"time"

	"projecthub-backend/pkg/entity"
)

// Priority represents task priority level
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Priorities lists every valid priority in ascending order.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent}

// Category groups tasks by the kind of work involved
type Category string

const (
	CategorySetup         Category = "setup"
	CategoryBackend       Category = "backend"
	CategoryFrontend      Category = "frontend"
	CategoryTest          Category = "test"
	CategoryDocumentation Category = "documentation"
	CategoryBugs          Category = "bugs"
	CategoryImprovements  Category = "improvements"
	CategoryOther         Category = "other"
)

// Categories lists every valid category.
var Categories = []Category{
	CategorySetup, CategoryBackend, CategoryFrontend, CategoryTest,
	CategoryDocumentation, CategoryBugs, CategoryImprovements, CategoryOther,
}

const (
	DefaultAssignee      = "unassigned"
	DefaultEstimatedTime = "1h"
)

// Task represents a unit of work, optionally attached to a project
type Task struct {
	ID            string             `json:"id" gorm:"primaryKey" bson:"_id"`
	Title         string             `json:"title" gorm:"not null" bson:"title"`
	Description   string             `json:"description" bson:"description"`
	Completed     bool               `json:"completed" gorm:"index;not null" bson:"completed"`
	Priority      Priority           `json:"priority" gorm:"not null" bson:"priority"`
	Category      Category           `json:"category" gorm:"not null" bson:"category"`
	Assignee      string             `json:"assignee" bson:"assignee"`
	EstimatedTime string             `json:"estimated_time" bson:"estimated_time"`
	CompletedAt   *time.Time         `json:"completed_at" bson:"completed_at"`
	DueDate       *time.Time         `json:"due_date" bson:"due_date"`
	Tags          entity.StringArray `json:"tags" gorm:"type:text" bson:"tags"`
	Notes         string             `json:"notes" bson:"notes"`
	ProjectID     *string            `json:"project" gorm:"index" bson:"project"` // weak reference, never enforced by storage
	CreatedAt     time.Time          `json:"created_at" gorm:"index" bson:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updated_at"`
}

// NewTask returns a task carrying every default.
func NewTask(title string, now time.Time) *Task {
	return &Task{
		ID:            entity.NewID(),
		Title:         title,
		Priority:      PriorityMedium,
		Category:      CategoryOther,
		Assignee:      DefaultAssignee,
		EstimatedTime: DefaultEstimatedTime,
		Tags:          entity.StringArray{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Clone returns a deep copy.
func (t *Task) Clone() *Task {
	c := *t
	if t.CompletedAt != nil {
		v := *t.CompletedAt
		c.CompletedAt = &v
	}
	if t.DueDate != nil {
		v := *t.DueDate
		c.DueDate = &v
	}
	if t.ProjectID != nil {
		v := *t.ProjectID
		c.ProjectID = &v
	}
	c.Tags = append(entity.StringArray{}, t.Tags...)
	return &c
}

// BelongsTo reports whether the task references projectID.
func (t *Task) BelongsTo(projectID string) bool {
	return t.ProjectID != nil && *t.ProjectID == projectID
}

// Filter narrows task listings. Nil fields impose no constraint; Assignee
// is a case-insensitive substring match, everything else is exact.
type Filter struct {
	Completed *bool
	Priority  *Priority
	Category  *Category
	Assignee  *string
	ProjectID *string
}

// Matches applies the filter to a single task. Stores that cannot push the
// filter down to the database use this.
func (f Filter) Matches(t *Task) bool {
	if f.Completed != nil && t.Completed != *f.Completed {
		return false
	}
	if f.Priority != nil && t.Priority != *f.Priority {
		return false
	}
	if f.Category != nil && t.Category != *f.Category {
		return false
	}
	if f.Assignee != nil && !containsFold(t.Assignee, *f.Assignee) {
		return false
	}
	if f.ProjectID != nil && !t.BelongsTo(*f.ProjectID) {
		return false
	}
	return true
}
