package usecase

import (
	"context"
	"log"

	"projecthub-backend/internal/project/domain"
	"projecthub-backend/internal/project/repository"
)

// DeleteProject checks the project exists before anything is mutated, then
// removes its tasks and the project itself. Stores implementing
// repository.CascadeDeleter do both in one transaction. Otherwise the tasks
// go first, so a failure in between leaves an empty project rather than
// orphaned tasks.
func (u *projectUsecase) DeleteProject(ctx context.Context, id string) (*domain.DeleteResult, error) {
	project, err := u.GetProjectByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var removed int64
	if cascader, ok := u.projectRepo.(repository.CascadeDeleter); ok {
		removed, err = cascader.DeleteCascade(ctx, project.ID)
		if err != nil {
			return nil, err
		}
	} else {
		removed, err = u.tasks.DeleteByProject(ctx, project.ID)
		if err != nil {
			return nil, err
		}
		if err := u.projectRepo.Delete(ctx, project.ID); err != nil {
			return nil, err
		}
	}

	log.Printf("[ProjectUsecase] Deleted project %s and %d tasks", project.ID, removed)
	return &domain.DeleteResult{Project: project, TasksRemoved: removed}, nil
}
