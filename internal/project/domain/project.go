package domain

import (
	"time"

	"projecthub-backend/pkg/entity"
)

// Status represents the lifecycle state of a project
type Status string

const (
	StatusActive    Status = "active"
	StatusPaused    Status = "paused"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// Statuses lists every valid status in display order.
var Statuses = []Status{StatusActive, StatusPaused, StatusCompleted, StatusCancelled}

// Priority represents project priority level
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Priorities lists every valid priority in ascending order.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

// Meta holds the task counters a project's progress is derived from.
type Meta struct {
	TotalTasks     int `json:"total_tasks" bson:"total_tasks"`
	CompletedTasks int `json:"completed_tasks" bson:"completed_tasks"`
	Progress       int `json:"progress" bson:"progress"` // 0-100, always derived
}

// Project groups tasks under a uniquely named umbrella
type Project struct {
	ID          string             `json:"id" gorm:"primaryKey" bson:"_id"`
	Name        string             `json:"name" gorm:"uniqueIndex;not null" bson:"name"`
	Description string             `json:"description" bson:"description"`
	Status      Status             `json:"status" gorm:"index;not null" bson:"status"`
	Priority    Priority           `json:"priority" gorm:"not null" bson:"priority"`
	StartDate   time.Time          `json:"start_date" bson:"start_date"`
	EndDate     *time.Time         `json:"end_date,omitempty" bson:"end_date,omitempty"`
	Tags        entity.StringArray `json:"tags" gorm:"type:text" bson:"tags"`
	Meta        Meta               `json:"meta" gorm:"embedded;embeddedPrefix:meta_" bson:"meta"`
	CreatedAt   time.Time          `json:"created_at" gorm:"index" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

// NewProject returns a project carrying every default: active, medium
// priority, started now, no tags and zero progress.
func NewProject(name, description string, now time.Time) *Project {
	return &Project{
		ID:          entity.NewID(),
		Name:        name,
		Description: description,
		Status:      StatusActive,
		Priority:    PriorityMedium,
		StartDate:   now,
		Tags:        entity.StringArray{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Clone returns a deep copy, so merges can be validated before they touch
// the stored value.
func (p *Project) Clone() *Project {
	c := *p
	if p.EndDate != nil {
		end := *p.EndDate
		c.EndDate = &end
	}
	c.Tags = append(entity.StringArray{}, p.Tags...)
	return &c
}

// HasTag reports whether the normalized tag is present.
func (p *Project) HasTag(tag string) bool {
	tag = entity.NormalizeTag(tag)
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Filter narrows project listings. Nil fields impose no constraint.
type Filter struct {
	Status   *Status
	Priority *Priority
}

// DeleteResult is what a cascading delete reports back.
type DeleteResult struct {
	Project      *Project `json:"project"`
	TasksRemoved int64    `json:"tasks_removed"`
}
