package repository

import (
	"context"

	"projecthub-backend/internal/project/domain"
)

// ProjectsCollection is the table/collection name projects are stored under.
const ProjectsCollection = "projects"

// ProjectRepository defines the interface for project data access.
// Create and Update fail with apperror DuplicateKey when the name is taken.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) error
	// FindByID returns nil, nil when the project does not exist
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	// List returns projects matching filter, most recently created first
	List(ctx context.Context, filter domain.Filter) ([]*domain.Project, error)
	Update(ctx context.Context, project *domain.Project) error
	Delete(ctx context.Context, id string) error
}

// CascadeDeleter is implemented by stores that can remove a project together
// with the tasks referencing it in one atomic step.
type CascadeDeleter interface {
	DeleteCascade(ctx context.Context, id string) (tasksRemoved int64, err error)
}
