package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"projecthub-backend/internal/project/domain"
	taskdomain "projecthub-backend/internal/task/domain"
	"projecthub-backend/pkg/apperror"

	"gorm.io/gorm"
)

// gormProjectRepository implements ProjectRepository and CascadeDeleter
type gormProjectRepository struct {
	db *gorm.DB
}

// NewGormProjectRepository creates a new instance of gormProjectRepository
func NewGormProjectRepository(db *gorm.DB) ProjectRepository {
	return &gormProjectRepository{db: db}
}

func (r *gormProjectRepository) Create(ctx context.Context, project *domain.Project) error {
	if project.CreatedAt.IsZero() {
		project.CreatedAt = time.Now()
	}
	project.UpdatedAt = time.Now()
	if err := r.db.WithContext(ctx).Create(project).Error; err != nil {
		return translateGormError("create project", err)
	}
	return nil
}

func (r *gormProjectRepository) FindByID(ctx context.Context, id string) (*domain.Project, error) {
	var project domain.Project
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperror.StorageUnavailable("find project", err)
	}
	return &project, nil
}

func (r *gormProjectRepository) List(ctx context.Context, filter domain.Filter) ([]*domain.Project, error) {
	var projects []*domain.Project

	query := r.db.WithContext(ctx).Model(&domain.Project{})
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", *filter.Priority)
	}

	if err := query.Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, apperror.StorageUnavailable("list projects", err)
	}
	return projects, nil
}

func (r *gormProjectRepository) Update(ctx context.Context, project *domain.Project) error {
	project.UpdatedAt = time.Now()
	// Updates rather than Save: Save inserts when the row is gone
	result := r.db.WithContext(ctx).Model(project).Select("*").Updates(project)
	if result.Error != nil {
		return translateGormError("update project", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperror.NotFound("project", project.ID)
	}
	return nil
}

func (r *gormProjectRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&domain.Project{}, "id = ?", id).Error; err != nil {
		return apperror.StorageUnavailable("delete project", err)
	}
	return nil
}

// DeleteCascade removes the project's tasks and then the project inside one
// transaction, so either both deletes commit or neither does.
func (r *gormProjectRepository) DeleteCascade(ctx context.Context, id string) (int64, error) {
	var removed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("project_id = ?", id).Delete(&taskdomain.Task{})
		if result.Error != nil {
			return result.Error
		}
		removed = result.RowsAffected

		result = tx.Delete(&domain.Project{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, apperror.NotFound("project", id)
		}
		return 0, apperror.StorageUnavailable("delete project cascade", err)
	}
	return removed, nil
}

// translateGormError maps unique violations onto DuplicateKey. GORM only
// translates driver errors when opened with TranslateError, so the message
// is checked as well.
func translateGormError(op string, err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperror.DuplicateKey("name", "a project with this name already exists")
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate key") {
		return apperror.DuplicateKey("name", "a project with this name already exists")
	}
	return apperror.StorageUnavailable(op, err)
}
