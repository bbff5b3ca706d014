package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"projecthub-backend/internal/project/domain"
	"projecthub-backend/internal/project/repository"
	taskdomain "projecthub-backend/internal/task/domain"
	taskrepo "projecthub-backend/internal/task/repository"
	"projecthub-backend/pkg/apperror"
	"projecthub-backend/pkg/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

type fixture struct {
	uc       *projectUsecase
	projects repository.ProjectRepository
	tasks    taskrepo.TaskRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	projects := repository.NewMemoryProjectRepository()
	tasks := taskrepo.NewMemoryTaskRepository()
	uc := NewProjectUsecase(projects, tasks).(*projectUsecase)
	uc.now = func() time.Time { return fixedNow }
	return &fixture{uc: uc, projects: projects, tasks: tasks}
}

func (f *fixture) addTask(t *testing.T, projectID string, completed bool) *taskdomain.Task {
	t.Helper()
	task := taskdomain.NewTask("Project task", fixedNow)
	task.ProjectID = &projectID
	task.Completed = completed
	require.NoError(t, f.tasks.Create(context.Background(), task))
	return task
}

func ptr[T any](v T) *T { return &v }

func TestScenario_ProjectLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alpha, err := f.uc.CreateProject(ctx, ProjectCreateRequest{Name: "Alpha", Description: ""})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusActive, alpha.Status)
	assert.Equal(t, domain.PriorityMedium, alpha.Priority)
	assert.Zero(t, alpha.Meta.Progress)

	_, err = f.uc.CreateProject(ctx, ProjectCreateRequest{Name: "Al"})
	require.Error(t, err)
	ae, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindInvalidField, ae.Kind)
	assert.Equal(t, "name", ae.Field)

	_, err = f.uc.CreateProject(ctx, ProjectCreateRequest{Name: "Beta"})
	require.NoError(t, err)
	_, err = f.uc.CreateProject(ctx, ProjectCreateRequest{Name: "Beta"})
	assert.ErrorIs(t, err, apperror.ErrDuplicateKey)

	task := taskdomain.NewTask("Fix login bug", fixedNow)
	task.ProjectID = &alpha.ID
	require.NoError(t, f.tasks.Create(ctx, task))

	result, err := f.uc.DeleteProject(ctx, alpha.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, result.TasksRemoved)
	assert.Equal(t, alpha.ID, result.Project.ID)

	found, err := f.tasks.FindByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestCreateProject(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	t.Run("sanitizes and stores", func(t *testing.T) {
		p, err := f.uc.CreateProject(ctx, ProjectCreateRequest{
			Name:     "  Gamma ",
			Priority: "high",
			Tags:     []string{"API", " api", "Backend"},
		})
		require.NoError(t, err)
		assert.Equal(t, "Gamma", p.Name)
		assert.Equal(t, domain.PriorityHigh, p.Priority)
		assert.Equal(t, []string{"api", "backend"}, []string(p.Tags))
		assert.Equal(t, fixedNow, p.StartDate)

		stored, err := f.projects.FindByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, "Gamma", stored.Name)
	})

	t.Run("first failure wins", func(t *testing.T) {
		_, err := f.uc.CreateProject(ctx, ProjectCreateRequest{Name: "", Status: "nope"})
		ae, ok := apperror.As(err)
		require.True(t, ok)
		assert.Equal(t, apperror.KindInvalidField, ae.Kind)
		assert.Equal(t, "name", ae.Field)
	})

	t.Run("end date must follow start date", func(t *testing.T) {
		_, err := f.uc.CreateProject(ctx, ProjectCreateRequest{
			Name:      "Dated",
			StartDate: ptr("2025-03-10T00:00:00Z"),
			EndDate:   ptr("2025-03-01T00:00:00Z"),
		})
		ae, ok := apperror.As(err)
		require.True(t, ok)
		assert.Equal(t, "end_date", ae.Field)
	})

	t.Run("malformed date", func(t *testing.T) {
		_, err := f.uc.CreateProject(ctx, ProjectCreateRequest{Name: "Dated", EndDate: ptr("tomorrow")})
		assert.ErrorIs(t, err, apperror.ErrInvalidField)
	})

	t.Run("nothing stored on failure", func(t *testing.T) {
		all, err := f.projects.List(ctx, domain.Filter{})
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})
}

func TestGetProjectByID(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.GetProjectByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, apperror.ErrInvalidIdentifier)

	_, err = f.uc.GetProjectByID(ctx, entity.NewID())
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestUpdateProject(t *testing.T) {
	ctx := context.Background()

	t.Run("partial merge", func(t *testing.T) {
		f := newFixture(t)
		p, err := f.uc.CreateProject(ctx, ProjectCreateRequest{Name: "Alpha", Description: "keep me"})
		require.NoError(t, err)

		updated, err := f.uc.UpdateProject(ctx, p.ID, ProjectUpdateRequest{Status: ptr("paused")})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusPaused, updated.Status)
		assert.Equal(t, "keep me", updated.Description)
		assert.Equal(t, "Alpha", updated.Name)
	})

	t.Run("aggregates every failure", func(t *testing.T) {
		f := newFixture(t)
		p, err := f.uc.CreateProject(ctx, ProjectCreateRequest{Name: "Alpha"})
		require.NoError(t, err)

		_, err = f.uc.UpdateProject(ctx, p.ID, ProjectUpdateRequest{
			Name:     ptr("Al"),
			Priority: ptr("urgent"),
		})
		ae, ok := apperror.As(err)
		require.True(t, ok)
		assert.Equal(t, apperror.KindValidationFailed, ae.Kind)
		require.Len(t, ae.Details, 2)
		assert.Equal(t, "name", ae.Details[0].Field)
		assert.Equal(t, "priority", ae.Details[1].Field)

		stored, err := f.uc.GetProjectByID(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, "Alpha", stored.Name, "failed update must not write")
	})

	t.Run("meta change auto-completes", func(t *testing.T) {
		f := newFixture(t)
		p, err := f.uc.CreateProject(ctx, ProjectCreateRequest{Name: "Alpha"})
		require.NoError(t, err)

		updated, err := f.uc.UpdateProject(ctx, p.ID, ProjectUpdateRequest{
			Meta: &MetaUpdate{TotalTasks: ptr(3), CompletedTasks: ptr(3)},
		})
		require.NoError(t, err)
		assert.Equal(t, 100, updated.Meta.Progress)
		assert.Equal(t, domain.StatusCompleted, updated.Status)
		require.NotNil(t, updated.EndDate)
		assert.False(t, updated.EndDate.Before(fixedNow))
	})

	t.Run("meta over total is rejected", func(t *testing.T) {
		f := newFixture(t)
		p, err := f.uc.CreateProject(ctx, ProjectCreateRequest{Name: "Alpha"})
		require.NoError(t, err)

		_, err = f.uc.UpdateProject(ctx, p.ID, ProjectUpdateRequest{
			Meta: &MetaUpdate{TotalTasks: ptr(1), CompletedTasks: ptr(2)},
		})
		assert.ErrorIs(t, err, apperror.ErrValidationFailed)
	})

	t.Run("rename onto existing name", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.uc.CreateProject(ctx, ProjectCreateRequest{Name: "Alpha"})
		require.NoError(t, err)
		beta, err := f.uc.CreateProject(ctx, ProjectCreateRequest{Name: "Beta"})
		require.NoError(t, err)

		_, err = f.uc.UpdateProject(ctx, beta.ID, ProjectUpdateRequest{Name: ptr("Alpha")})
		assert.ErrorIs(t, err, apperror.ErrDuplicateKey)
	})

	t.Run("clear end date", func(t *testing.T) {
		f := newFixture(t)
		p, err := f.uc.CreateProject(ctx, ProjectCreateRequest{Name: "Alpha", EndDate: ptr("2030-01-01T00:00:00Z")})
		require.NoError(t, err)
		require.NotNil(t, p.EndDate)

		updated, err := f.uc.UpdateProject(ctx, p.ID, ProjectUpdateRequest{EndDate: ptr("")})
		require.NoError(t, err)
		assert.Nil(t, updated.EndDate)
	})
}

func TestTags(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p, err := f.uc.CreateProject(ctx, ProjectCreateRequest{Name: "Alpha", Tags: []string{"api"}})
	require.NoError(t, err)

	p, err = f.uc.AddTag(ctx, p.ID, " Backend ")
	require.NoError(t, err)
	assert.Equal(t, []string{"api", "backend"}, []string(p.Tags))

	p, err = f.uc.AddTag(ctx, p.ID, "API")
	require.NoError(t, err)
	assert.Equal(t, []string{"api", "backend"}, []string(p.Tags), "duplicate tag is a no-op")

	_, err = f.uc.AddTag(ctx, p.ID, "   ")
	assert.ErrorIs(t, err, apperror.ErrInvalidField)

	p, err = f.uc.RemoveTag(ctx, p.ID, "API")
	require.NoError(t, err)
	assert.Equal(t, []string{"backend"}, []string(p.Tags))

	p, err = f.uc.RemoveTag(ctx, p.ID, "missing")
	require.NoError(t, err)
	assert.Equal(t, []string{"backend"}, []string(p.Tags))
}

func TestSyncProgress(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p, err := f.uc.CreateProject(ctx, ProjectCreateRequest{Name: "Alpha"})
	require.NoError(t, err)

	f.addTask(t, p.ID, true)
	f.addTask(t, p.ID, false)
	f.addTask(t, p.ID, false)

	synced, err := f.uc.SyncProgress(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.Meta{TotalTasks: 3, CompletedTasks: 1, Progress: 33}, synced.Meta)
	assert.Equal(t, domain.StatusActive, synced.Status)

	f.addTask(t, p.ID, true)
	f.addTask(t, p.ID, true)
	tasks, err := f.tasks.List(ctx, taskdomain.Filter{})
	require.NoError(t, err)
	for _, task := range tasks {
		task.Completed = true
		require.NoError(t, f.tasks.Update(ctx, task))
	}

	synced, err = f.uc.SyncProgress(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 100, synced.Meta.Progress)
	assert.Equal(t, domain.StatusCompleted, synced.Status)
}

func TestSyncAllProgress_OnlyActive(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	active, err := f.uc.CreateProject(ctx, ProjectCreateRequest{Name: "Active one"})
	require.NoError(t, err)
	paused, err := f.uc.CreateProject(ctx, ProjectCreateRequest{Name: "Paused one", Status: "paused"})
	require.NoError(t, err)
	f.addTask(t, active.ID, false)
	f.addTask(t, paused.ID, false)

	n, err := f.uc.SyncAllProgress(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := f.uc.GetProjectByID(ctx, paused.ID)
	require.NoError(t, err)
	assert.Zero(t, got.Meta.TotalTasks)

	got, err = f.uc.GetProjectByID(ctx, active.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Meta.TotalTasks)
}

func TestSyncProgress_AfterDeleteKeepsProjectDeleted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alpha, err := f.uc.CreateProject(ctx, ProjectCreateRequest{Name: "Alpha"})
	require.NoError(t, err)
	f.addTask(t, alpha.ID, false)

	// Snapshot taken by a sync pass before the delete lands
	snapshot, err := f.projects.FindByID(ctx, alpha.ID)
	require.NoError(t, err)

	result, err := f.uc.DeleteProject(ctx, alpha.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, result.TasksRemoved)

	_, err = f.uc.syncProgress(ctx, snapshot)
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	found, err := f.projects.FindByID(ctx, alpha.ID)
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestDeleteProject(t *testing.T) {
	ctx := context.Background()

	t.Run("missing project mutates nothing", func(t *testing.T) {
		f := newFixture(t)
		orphanOwner := entity.NewID()
		f.addTask(t, orphanOwner, false)

		_, err := f.uc.DeleteProject(ctx, orphanOwner)
		assert.ErrorIs(t, err, apperror.ErrNotFound)

		tasks, err := f.tasks.List(ctx, taskdomain.Filter{})
		require.NoError(t, err)
		assert.Len(t, tasks, 1)
	})

	t.Run("removes only referencing tasks", func(t *testing.T) {
		f := newFixture(t)
		a, err := f.uc.CreateProject(ctx, ProjectCreateRequest{Name: "Alpha"})
		require.NoError(t, err)
		b, err := f.uc.CreateProject(ctx, ProjectCreateRequest{Name: "Beta"})
		require.NoError(t, err)
		f.addTask(t, a.ID, false)
		f.addTask(t, a.ID, true)
		kept := f.addTask(t, b.ID, false)

		result, err := f.uc.DeleteProject(ctx, a.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 2, result.TasksRemoved)

		tasks, err := f.tasks.List(ctx, taskdomain.Filter{})
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, kept.ID, tasks[0].ID)

		_, err = f.uc.DeleteProject(ctx, a.ID)
		assert.ErrorIs(t, err, apperror.ErrNotFound, "second delete finds nothing")
	})

	t.Run("task storage failure keeps the project", func(t *testing.T) {
		f := newFixture(t)
		p, err := f.uc.CreateProject(ctx, ProjectCreateRequest{Name: "Alpha"})
		require.NoError(t, err)
		f.uc.tasks = failingTasks{}

		_, err = f.uc.DeleteProject(ctx, p.ID)
		assert.ErrorIs(t, err, apperror.ErrStorageUnavailable)

		_, err = f.uc.GetProjectByID(ctx, p.ID)
		assert.NoError(t, err)
	})
}

type failingTasks struct{}

func (failingTasks) DeleteByProject(context.Context, string) (int64, error) {
	return 0, apperror.StorageUnavailable("delete project tasks", errors.New("disk full"))
}

func (failingTasks) CountByProject(context.Context, string) (int64, int64, error) {
	return 0, 0, apperror.StorageUnavailable("count project tasks", errors.New("disk full"))
}

func TestGetStats(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	stats, err := f.uc.GetStats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.Total)
	assert.Len(t, stats.ByStatus, len(domain.Statuses))

	_, err = f.uc.CreateProject(ctx, ProjectCreateRequest{Name: "Alpha"})
	require.NoError(t, err)
	_, err = f.uc.CreateProject(ctx, ProjectCreateRequest{Name: "Beta", Status: "cancelled"})
	require.NoError(t, err)

	stats, err = f.uc.GetStats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.Total)
	assert.EqualValues(t, 1, stats.ByStatus[domain.StatusActive])
	assert.EqualValues(t, 1, stats.ByStatus[domain.StatusCancelled])
}
