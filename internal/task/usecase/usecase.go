package usecase

import (
	"context"

	"projecthub-backend/internal/task/domain"
)

// TaskUsecase defines the interface for task business logic
type TaskUsecase interface {
	// CreateTask validates, defaults and stores a new task
	CreateTask(ctx context.Context, req TaskCreateRequest) (*domain.Task, error)

	// GetTaskByID retrieves a task by ID
	GetTaskByID(ctx context.Context, id string) (*domain.Task, error)

	// ListTasks retrieves tasks matching filter, newest first
	ListTasks(ctx context.Context, filter domain.Filter) ([]*domain.Task, error)

	// UpdateTask merges updates into an existing task and re-validates it
	UpdateTask(ctx context.Context, id string, updates TaskUpdateRequest) (*domain.Task, error)

	// CompleteTask marks a task completed
	CompleteTask(ctx context.Context, id string) (*domain.Task, error)

	// ReopenTask marks a task pending again
	ReopenTask(ctx context.Context, id string) (*domain.Task, error)

	// DeleteTask deletes a task and returns what was removed
	DeleteTask(ctx context.Context, id string) (*domain.Task, error)

	// SearchTasks ranks tasks whose title or description match query
	SearchTasks(ctx context.Context, query string) ([]*domain.Task, error)

	// GetStats aggregates counts over every task
	GetStats(ctx context.Context) (domain.Stats, error)

	// ClearTasks removes every task
	ClearTasks(ctx context.Context) (int64, error)
}

// TaskCreateRequest carries the raw fields of a new task. Empty values
// take their defaults.
type TaskCreateRequest struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Completed     bool     `json:"completed"`
	Priority      string   `json:"priority"`
	Category      string   `json:"category"`
	Assignee      string   `json:"assignee"`
	EstimatedTime string   `json:"estimated_time"`
	DueDate       *string  `json:"due_date"` // RFC3339
	Tags          []string `json:"tags"`
	Notes         string   `json:"notes"`
	ProjectID     *string  `json:"project"`
}

// TaskUpdateRequest represents the fields that can be updated. Nil means
// unchanged; an empty DueDate or ProjectID clears the field.
type TaskUpdateRequest struct {
	Title         *string   `json:"title,omitempty"`
	Description   *string   `json:"description,omitempty"`
	Completed     *bool     `json:"completed,omitempty"`
	Priority      *string   `json:"priority,omitempty"`
	Category      *string   `json:"category,omitempty"`
	Assignee      *string   `json:"assignee,omitempty"`
	EstimatedTime *string   `json:"estimated_time,omitempty"`
	DueDate       *string   `json:"due_date,omitempty"`
	Tags          *[]string `json:"tags,omitempty"`
	Notes         *string   `json:"notes,omitempty"`
	ProjectID     *string   `json:"project,omitempty"`
}
