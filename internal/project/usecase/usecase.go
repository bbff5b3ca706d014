package usecase

import (
	"context"

	"projecthub-backend/internal/project/domain"
)

// ProjectUsecase defines the interface for project business logic
type ProjectUsecase interface {
	CreateProject(ctx context.Context, req ProjectCreateRequest) (*domain.Project, error)
	GetProjectByID(ctx context.Context, id string) (*domain.Project, error)
	ListProjects(ctx context.Context, filter domain.Filter) ([]*domain.Project, error)
	UpdateProject(ctx context.Context, id string, updates ProjectUpdateRequest) (*domain.Project, error)

	// DeleteProject removes the project and every task referencing it
	DeleteProject(ctx context.Context, id string) (*domain.DeleteResult, error)

	AddTag(ctx context.Context, id, tag string) (*domain.Project, error)
	RemoveTag(ctx context.Context, id, tag string) (*domain.Project, error)

	// SyncProgress recounts the project's tasks into its meta counters
	SyncProgress(ctx context.Context, id string) (*domain.Project, error)

	// SyncAllProgress runs SyncProgress over every active project and
	// returns how many were refreshed
	SyncAllProgress(ctx context.Context) (int, error)

	GetStats(ctx context.Context) (domain.Stats, error)
}

// ProjectTasks is the slice of task storage a project needs: counting its
// tasks and removing them when it goes away.
type ProjectTasks interface {
	DeleteByProject(ctx context.Context, projectID string) (int64, error)
	CountByProject(ctx context.Context, projectID string) (total, completed int64, err error)
}

// ProjectCreateRequest carries the raw fields of a new project
type ProjectCreateRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
	Priority    string   `json:"priority"`
	StartDate   *string  `json:"start_date"` // RFC3339, defaults to now
	EndDate     *string  `json:"end_date"`
	Tags        []string `json:"tags"`
}

// MetaUpdate overwrites the task counters. Progress is never accepted from
// callers.
type MetaUpdate struct {
	TotalTasks     *int `json:"total_tasks,omitempty"`
	CompletedTasks *int `json:"completed_tasks,omitempty"`
}

// ProjectUpdateRequest represents the fields that can be updated. Nil means
// unchanged; an empty EndDate clears it.
type ProjectUpdateRequest struct {
	Name        *string     `json:"name,omitempty"`
	Description *string     `json:"description,omitempty"`
	Status      *string     `json:"status,omitempty"`
	Priority    *string     `json:"priority,omitempty"`
	StartDate   *string     `json:"start_date,omitempty"`
	EndDate     *string     `json:"end_date,omitempty"`
	Tags        *[]string   `json:"tags,omitempty"`
	Meta        *MetaUpdate `json:"meta,omitempty"`
}
