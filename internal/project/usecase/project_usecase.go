package usecase

import (
	"context"
	"log"
	"time"

	"projecthub-backend/internal/project/domain"
	"projecthub-backend/internal/project/repository"
	"projecthub-backend/pkg/apperror"
	"projecthub-backend/pkg/entity"
)

type projectUsecase struct {
	projectRepo repository.ProjectRepository
	tasks       ProjectTasks
	now         func() time.Time
}

// NewProjectUsecase creates a new instance of projectUsecase
func NewProjectUsecase(projectRepo repository.ProjectRepository, tasks ProjectTasks) ProjectUsecase {
	return &projectUsecase{
		projectRepo: projectRepo,
		tasks:       tasks,
		now:         time.Now,
	}
}

func (u *projectUsecase) CreateProject(ctx context.Context, req ProjectCreateRequest) (*domain.Project, error) {
	now := u.now()
	project := domain.NewProject(req.Name, req.Description, now)
	project.Status = domain.Status(req.Status)
	project.Priority = domain.Priority(req.Priority)
	project.Tags = req.Tags

	startDate, err := parseOptionalTime("start_date", req.StartDate)
	if err != nil {
		return nil, err
	}
	if startDate != nil {
		project.StartDate = *startDate
	}
	if project.EndDate, err = parseOptionalTime("end_date", req.EndDate); err != nil {
		return nil, err
	}

	if errs := domain.Prepare(project, false, now); !errs.Empty() {
		return nil, errs.First()
	}

	if err := u.projectRepo.Create(ctx, project); err != nil {
		return nil, err
	}

	log.Printf("[ProjectUsecase] Created project %s (%q)", project.ID, project.Name)
	return project, nil
}

func (u *projectUsecase) GetProjectByID(ctx context.Context, id string) (*domain.Project, error) {
	if err := entity.ValidateID("id", id); err != nil {
		return nil, err
	}
	project, err := u.projectRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, apperror.NotFound("project", id)
	}
	return project, nil
}

func (u *projectUsecase) ListProjects(ctx context.Context, filter domain.Filter) ([]*domain.Project, error) {
	return u.projectRepo.List(ctx, filter)
}

func (u *projectUsecase) UpdateProject(ctx context.Context, id string, updates ProjectUpdateRequest) (*domain.Project, error) {
	existing, err := u.GetProjectByID(ctx, id)
	if err != nil {
		return nil, err
	}

	project := existing.Clone()
	var errs apperror.FieldErrors

	if updates.Name != nil {
		project.Name = *updates.Name
	}
	if updates.Description != nil {
		project.Description = *updates.Description
	}
	if updates.Status != nil {
		project.Status = domain.Status(*updates.Status)
	}
	if updates.Priority != nil {
		project.Priority = domain.Priority(*updates.Priority)
	}
	if updates.Tags != nil {
		project.Tags = *updates.Tags
	}
	if updates.StartDate != nil {
		if startDate, err := parseOptionalTime("start_date", updates.StartDate); err != nil {
			errs.Add("start_date", "start date must be an RFC3339 timestamp")
		} else if startDate != nil {
			project.StartDate = *startDate
		}
	}
	if updates.EndDate != nil {
		if endDate, err := parseOptionalTime("end_date", updates.EndDate); err != nil {
			errs.Add("end_date", "end date must be an RFC3339 timestamp")
		} else {
			project.EndDate = endDate
		}
	}

	metaChanged := false
	if updates.Meta != nil {
		if updates.Meta.TotalTasks != nil {
			project.Meta.TotalTasks = *updates.Meta.TotalTasks
			metaChanged = true
		}
		if updates.Meta.CompletedTasks != nil {
			project.Meta.CompletedTasks = *updates.Meta.CompletedTasks
			metaChanged = true
		}
	}

	errs = append(errs, domain.Prepare(project, metaChanged, u.now())...)
	if !errs.Empty() {
		return nil, errs.All()
	}

	if err := u.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}
	if project.Status != existing.Status {
		log.Printf("[ProjectUsecase] Project %s moved from %s to %s", project.ID, existing.Status, project.Status)
	}
	return project, nil
}

func (u *projectUsecase) AddTag(ctx context.Context, id, tag string) (*domain.Project, error) {
	tag = entity.NormalizeTag(tag)
	if tag == "" {
		return nil, apperror.InvalidField("tag", "tag is required")
	}

	existing, err := u.GetProjectByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing.HasTag(tag) {
		return existing, nil
	}

	project := existing.Clone()
	project.Tags = append(project.Tags, tag)
	return u.save(ctx, project)
}

func (u *projectUsecase) RemoveTag(ctx context.Context, id, tag string) (*domain.Project, error) {
	existing, err := u.GetProjectByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !existing.HasTag(tag) {
		return existing, nil
	}

	tag = entity.NormalizeTag(tag)
	project := existing.Clone()
	kept := project.Tags[:0]
	for _, t := range project.Tags {
		if t != tag {
			kept = append(kept, t)
		}
	}
	project.Tags = kept
	return u.save(ctx, project)
}

func (u *projectUsecase) SyncProgress(ctx context.Context, id string) (*domain.Project, error) {
	existing, err := u.GetProjectByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return u.syncProgress(ctx, existing)
}

func (u *projectUsecase) syncProgress(ctx context.Context, existing *domain.Project) (*domain.Project, error) {
	total, completed, err := u.tasks.CountByProject(ctx, existing.ID)
	if err != nil {
		return nil, err
	}

	project := existing.Clone()
	project.Meta.TotalTasks = int(total)
	project.Meta.CompletedTasks = int(completed)
	if errs := domain.Prepare(project, true, u.now()); !errs.Empty() {
		return nil, errs.All()
	}
	if err := u.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}

	if project.Status != existing.Status {
		log.Printf("[ProjectUsecase] Project %s auto-completed at %d/%d tasks", project.ID, completed, total)
	}
	return project, nil
}

func (u *projectUsecase) SyncAllProgress(ctx context.Context) (int, error) {
	active := domain.StatusActive
	projects, err := u.projectRepo.List(ctx, domain.Filter{Status: &active})
	if err != nil {
		return 0, err
	}

	synced := 0
	for _, project := range projects {
		if err := ctx.Err(); err != nil {
			return synced, err
		}
		if _, err := u.syncProgress(ctx, project); err != nil {
			log.Printf("[ProjectUsecase] Failed to sync progress for project %s: %v", project.ID, err)
			continue
		}
		synced++
	}
	return synced, nil
}

func (u *projectUsecase) GetStats(ctx context.Context) (domain.Stats, error) {
	projects, err := u.projectRepo.List(ctx, domain.Filter{})
	if err != nil {
		return domain.Stats{}, err
	}
	return domain.ComputeStats(projects), nil
}

// save runs the full pipeline for edits that never touch meta.
func (u *projectUsecase) save(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	if errs := domain.Prepare(project, false, u.now()); !errs.Empty() {
		return nil, errs.All()
	}
	if err := u.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

func parseOptionalTime(field string, value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *value)
	if err != nil {
		return nil, apperror.InvalidField(field, "must be an RFC3339 timestamp")
	}
	return &t, nil
}
