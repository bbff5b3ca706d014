package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"projecthub-backend/internal/task/domain"
	"projecthub-backend/pkg/apperror"

	"gorm.io/gorm"
)

// gormTaskRepository implements TaskRepository using GORM
type gormTaskRepository struct {
	db *gorm.DB
}

// NewGormTaskRepository creates a new GORM-based TaskRepository.
// The schema is migrated by database.AutoMigrate.
func NewGormTaskRepository(db *gorm.DB) TaskRepository {
	return &gormTaskRepository{db: db}
}

func (r *gormTaskRepository) Create(ctx context.Context, task *domain.Task) error {
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now()
	}
	task.UpdatedAt = time.Now()
	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return apperror.StorageUnavailable("create task", err)
	}
	return nil
}

func (r *gormTaskRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	var task domain.Task
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperror.StorageUnavailable("find task", err)
	}
	return &task, nil
}

func (r *gormTaskRepository) List(ctx context.Context, filter domain.Filter) ([]*domain.Task, error) {
	var tasks []*domain.Task

	query := r.db.WithContext(ctx).Model(&domain.Task{})
	if filter.Completed != nil {
		query = query.Where("completed = ?", *filter.Completed)
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", *filter.Priority)
	}
	if filter.Category != nil {
		query = query.Where("category = ?", *filter.Category)
	}
	if filter.Assignee != nil {
		query = query.Where(`LOWER(assignee) LIKE ? ESCAPE '\'`, "%"+escapeLike(strings.ToLower(*filter.Assignee))+"%")
	}
	if filter.ProjectID != nil {
		query = query.Where("project_id = ?", *filter.ProjectID)
	}

	if err := query.Order("created_at DESC").Find(&tasks).Error; err != nil {
		return nil, apperror.StorageUnavailable("list tasks", err)
	}
	return tasks, nil
}

func (r *gormTaskRepository) Update(ctx context.Context, task *domain.Task) error {
	task.UpdatedAt = time.Now()
	result := r.db.WithContext(ctx).Model(task).Select("*").Updates(task)
	if result.Error != nil {
		return apperror.StorageUnavailable("update task", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("task", task.ID)
	}
	return nil
}

func (r *gormTaskRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&domain.Task{}, "id = ?", id).Error; err != nil {
		return apperror.StorageUnavailable("delete task", err)
	}
	return nil
}

func (r *gormTaskRepository) DeleteByProject(ctx context.Context, projectID string) (int64, error) {
	result := r.db.WithContext(ctx).Where("project_id = ?", projectID).Delete(&domain.Task{})
	if result.Error != nil {
		return 0, apperror.StorageUnavailable("delete project tasks", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *gormTaskRepository) DeleteAll(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Where("1 = 1").Delete(&domain.Task{})
	if result.Error != nil {
		return 0, apperror.StorageUnavailable("delete all tasks", result.Error)
	}
	return result.RowsAffected, nil
}

func (r *gormTaskRepository) CountByProject(ctx context.Context, projectID string) (int64, int64, error) {
	var total, completed int64

	err := r.db.WithContext(ctx).Model(&domain.Task{}).
		Where("project_id = ?", projectID).
		Count(&total).Error
	if err != nil {
		return 0, 0, apperror.StorageUnavailable("count project tasks", err)
	}
	err = r.db.WithContext(ctx).Model(&domain.Task{}).
		Where("project_id = ? AND completed = ?", projectID, true).
		Count(&completed).Error
	if err != nil {
		return 0, 0, apperror.StorageUnavailable("count completed project tasks", err)
	}
	return total, completed, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
