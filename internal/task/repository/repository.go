package repository

import (
	"context"

	"projecthub-backend/internal/task/domain"
)

// TasksCollection is the table/collection name tasks are stored under.
const TasksCollection = "tasks"

// TaskRepository defines the interface for task data access.
// Storage failures come back as apperror StorageUnavailable.
type TaskRepository interface {
	// Create stores a new task
	Create(ctx context.Context, task *domain.Task) error

	// FindByID finds a task by its ID, returning nil, nil when absent
	FindByID(ctx context.Context, id string) (*domain.Task, error)

	// List returns tasks matching filter, most recently created first
	List(ctx context.Context, filter domain.Filter) ([]*domain.Task, error)

	// Update replaces an existing task
	Update(ctx context.Context, task *domain.Task) error

	// Delete deletes a task by ID
	Delete(ctx context.Context, id string) error

	// DeleteByProject deletes every task referencing projectID and
	// returns how many were removed
	DeleteByProject(ctx context.Context, projectID string) (int64, error)

	// DeleteAll empties the collection
	DeleteAll(ctx context.Context) (int64, error)

	// CountByProject counts the tasks referencing projectID, and how many
	// of those are completed
	CountByProject(ctx context.Context, projectID string) (total, completed int64, err error)
}
