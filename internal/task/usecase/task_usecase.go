package usecase

import (
	"context"
	"log"
	"sort"
	"strings"
	"time"

	"projecthub-backend/internal/task/domain"
	"projecthub-backend/internal/task/repository"
	"projecthub-backend/pkg/apperror"
	"projecthub-backend/pkg/entity"
	"projecthub-backend/pkg/fuzzy"
)

// taskUsecase implements TaskUsecase interface
type taskUsecase struct {
	taskRepo repository.TaskRepository
	now      func() time.Time
}

// NewTaskUsecase creates a new instance of taskUsecase
func NewTaskUsecase(taskRepo repository.TaskRepository) TaskUsecase {
	return &taskUsecase{
		taskRepo: taskRepo,
		now:      time.Now,
	}
}

func (u *taskUsecase) CreateTask(ctx context.Context, req TaskCreateRequest) (*domain.Task, error) {
	now := u.now()
	task := domain.NewTask(req.Title, now)
	task.Description = req.Description
	task.Priority = domain.Priority(req.Priority)
	task.Category = domain.Category(req.Category)
	task.Assignee = req.Assignee
	task.EstimatedTime = req.EstimatedTime
	task.Tags = req.Tags
	task.Notes = req.Notes

	if req.ProjectID != nil && *req.ProjectID != "" {
		if err := entity.ValidateID("project", *req.ProjectID); err != nil {
			return nil, err
		}
		projectID := *req.ProjectID
		task.ProjectID = &projectID
	}

	dueDate, err := parseOptionalTime("due_date", req.DueDate)
	if err != nil {
		return nil, err
	}
	task.DueDate = dueDate

	if req.Completed {
		domain.SetCompleted(task, true, now)
	}

	if errs := domain.Prepare(task); !errs.Empty() {
		return nil, errs.First()
	}

	if err := u.taskRepo.Create(ctx, task); err != nil {
		return nil, err
	}

	log.Printf("[TaskUsecase] Created task %s (%q)", task.ID, task.Title)
	return task, nil
}

func (u *taskUsecase) GetTaskByID(ctx context.Context, id string) (*domain.Task, error) {
	if err := entity.ValidateID("id", id); err != nil {
		return nil, err
	}
	task, err := u.taskRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, apperror.NotFound("task", id)
	}
	return task, nil
}

func (u *taskUsecase) ListTasks(ctx context.Context, filter domain.Filter) ([]*domain.Task, error) {
	if filter.ProjectID != nil {
		if err := entity.ValidateID("project", *filter.ProjectID); err != nil {
			return nil, err
		}
	}
	return u.taskRepo.List(ctx, filter)
}

func (u *taskUsecase) UpdateTask(ctx context.Context, id string, updates TaskUpdateRequest) (*domain.Task, error) {
	existing, err := u.GetTaskByID(ctx, id)
	if err != nil {
		return nil, err
	}

	task := existing.Clone()
	var errs apperror.FieldErrors

	if updates.Title != nil {
		task.Title = *updates.Title
	}
	if updates.Description != nil {
		task.Description = *updates.Description
	}
	if updates.Priority != nil {
		task.Priority = domain.Priority(*updates.Priority)
	}
	if updates.Category != nil {
		task.Category = domain.Category(*updates.Category)
	}
	if updates.Assignee != nil {
		task.Assignee = *updates.Assignee
	}
	if updates.EstimatedTime != nil {
		task.EstimatedTime = *updates.EstimatedTime
	}
	if updates.Tags != nil {
		task.Tags = *updates.Tags
	}
	if updates.Notes != nil {
		task.Notes = *updates.Notes
	}
	if updates.DueDate != nil {
		dueDate, err := parseOptionalTime("due_date", updates.DueDate)
		if err != nil {
			errs.Add("due_date", "due date must be an RFC3339 timestamp")
		} else {
			task.DueDate = dueDate
		}
	}
	if updates.ProjectID != nil {
		if *updates.ProjectID == "" {
			task.ProjectID = nil
		} else {
			if err := entity.ValidateID("project", *updates.ProjectID); err != nil {
				return nil, err
			}
			projectID := *updates.ProjectID
			task.ProjectID = &projectID
		}
	}
	if updates.Completed != nil {
		domain.SetCompleted(task, *updates.Completed, u.now())
	}

	errs = append(errs, domain.Prepare(task)...)
	if !errs.Empty() {
		return nil, errs.All()
	}

	if err := u.taskRepo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (u *taskUsecase) CompleteTask(ctx context.Context, id string) (*domain.Task, error) {
	completed := true
	task, err := u.UpdateTask(ctx, id, TaskUpdateRequest{Completed: &completed})
	if err != nil {
		return nil, err
	}
	log.Printf("[TaskUsecase] Completed task %s", task.ID)
	return task, nil
}

func (u *taskUsecase) ReopenTask(ctx context.Context, id string) (*domain.Task, error) {
	completed := false
	task, err := u.UpdateTask(ctx, id, TaskUpdateRequest{Completed: &completed})
	if err != nil {
		return nil, err
	}
	log.Printf("[TaskUsecase] Reopened task %s", task.ID)
	return task, nil
}

func (u *taskUsecase) DeleteTask(ctx context.Context, id string) (*domain.Task, error) {
	task, err := u.GetTaskByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := u.taskRepo.Delete(ctx, task.ID); err != nil {
		return nil, err
	}
	return task, nil
}

func (u *taskUsecase) SearchTasks(ctx context.Context, query string) ([]*domain.Task, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, apperror.InvalidField("q", "search query is required")
	}

	tasks, err := u.taskRepo.List(ctx, domain.Filter{})
	if err != nil {
		return nil, err
	}

	type scoredTask struct {
		task  *domain.Task
		score float64
	}
	var matches []scoredTask
	for _, task := range tasks {
		// Typo hits in the description pass the match but score zero, so they rank last
		if !fuzzy.Match(query, task.Title) && !fuzzy.Match(query, task.Description) {
			continue
		}
		matches = append(matches, scoredTask{
			task:  task,
			score: fuzzy.TaskScore(query, task.Title, task.Description),
		})
	}

	// Stable keeps the newest-first order among equal scores
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	result := make([]*domain.Task, len(matches))
	for i, m := range matches {
		result[i] = m.task
	}
	return result, nil
}

func (u *taskUsecase) GetStats(ctx context.Context) (domain.Stats, error) {
	tasks, err := u.taskRepo.List(ctx, domain.Filter{})
	if err != nil {
		return domain.Stats{}, err
	}
	return domain.ComputeStats(tasks, u.now()), nil
}

func (u *taskUsecase) ClearTasks(ctx context.Context) (int64, error) {
	removed, err := u.taskRepo.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	log.Printf("[TaskUsecase] Removed %d tasks", removed)
	return removed, nil
}

// parseOptionalTime reads an RFC3339 timestamp; nil or "" yields nil.
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
