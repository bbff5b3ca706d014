package repository_test

import (
	"context"
	"testing"
	"time"

	"projecthub-backend/internal/task/domain"
	"projecthub-backend/internal/task/repository"
	"projecthub-backend/pkg/apperror"
	"projecthub-backend/pkg/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// Test Helpers
// =============================================================================

type repoFactory func(t *testing.T) repository.TaskRepository

func backends() map[string]repoFactory {
	return map[string]repoFactory{
		"memory": func(t *testing.T) repository.TaskRepository {
			return repository.NewMemoryTaskRepository()
		},
		"gorm-sqlite": func(t *testing.T) repository.TaskRepository {
			t.Helper()
			db, err := database.NewSQLiteConnection("file:" + uuid.NewString() + "?mode=memory&cache=shared")
			require.NoError(t, err)
			sqlDB, err := db.DB()
			require.NoError(t, err)
			sqlDB.SetMaxOpenConns(1)
			t.Cleanup(func() { sqlDB.Close() })
			require.NoError(t, database.AutoMigrate(db))
			return repository.NewGormTaskRepository(db)
		},
	}
}

var base = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func newTask(t *testing.T, title string, minute int) *domain.Task {
	t.Helper()
	task := domain.NewTask(title, base.Add(time.Duration(minute)*time.Minute))
	require.Empty(t, domain.Prepare(task))
	return task
}

func titles(tasks []*domain.Task) []string {
	out := make([]string, len(tasks))
	for i, task := range tasks {
		out[i] = task.Title
	}
	return out
}

// =============================================================================
// Contract Tests
// =============================================================================

func TestTaskRepository_Contract(t *testing.T) {
	for name, factory := range backends() {
		t.Run(name, func(t *testing.T) {
			t.Run("create and find", func(t *testing.T) {
				repo := factory(t)
				ctx := context.Background()

				task := newTask(t, "Write tests", 0)
				task.Tags = []string{"qa", "go"}
				task.Notes = "cover the storage layer"
				require.NoError(t, repo.Create(ctx, task))

				found, err := repo.FindByID(ctx, task.ID)
				require.NoError(t, err)
				require.NotNil(t, found)
				assert.Equal(t, "Write tests", found.Title)
				assert.Equal(t, []string{"qa", "go"}, []string(found.Tags))
				assert.Equal(t, "cover the storage layer", found.Notes)
				assert.Nil(t, found.ProjectID)
				assert.WithinDuration(t, task.CreatedAt, found.CreatedAt, time.Millisecond)
			})

			t.Run("find missing returns nil", func(t *testing.T) {
				repo := factory(t)
				found, err := repo.FindByID(context.Background(), uuid.NewString())
				require.NoError(t, err)
				assert.Nil(t, found)
			})

			t.Run("list is newest first", func(t *testing.T) {
				repo := factory(t)
				ctx := context.Background()
				for i, title := range []string{"first", "second", "third"} {
					require.NoError(t, repo.Create(ctx, newTask(t, title, i)))
				}

				tasks, err := repo.List(ctx, domain.Filter{})
				require.NoError(t, err)
				assert.Equal(t, []string{"third", "second", "first"}, titles(tasks))
			})

			t.Run("list filters", func(t *testing.T) {
				repo := factory(t)
				ctx := context.Background()
				projectID := uuid.NewString()

				a := newTask(t, "Backend task", 0)
				a.Category = domain.CategoryBackend
				a.Assignee = "Backend Developer"
				a.ProjectID = &projectID
				b := newTask(t, "Urgent bug", 1)
				b.Priority = domain.PriorityUrgent
				b.Category = domain.CategoryBugs
				b.Completed = true
				c := newTask(t, "Docs 100%", 2)
				c.Assignee = "tech_writer"
				for _, task := range []*domain.Task{a, b, c} {
					require.NoError(t, repo.Create(ctx, task))
				}

				completed := true
				urgent := domain.PriorityUrgent
				backend := domain.CategoryBackend
				dev := "DEVELOPER"
				underscore := "_"

				tests := []struct {
					name   string
					filter domain.Filter
					want   []string
				}{
					{"completed", domain.Filter{Completed: &completed}, []string{"Urgent bug"}},
					{"priority", domain.Filter{Priority: &urgent}, []string{"Urgent bug"}},
					{"category", domain.Filter{Category: &backend}, []string{"Backend task"}},
					{"assignee substring ignores case", domain.Filter{Assignee: &dev}, []string{"Backend task"}},
					{"assignee wildcard is literal", domain.Filter{Assignee: &underscore}, []string{"Docs 100%"}},
					{"project", domain.Filter{ProjectID: &projectID}, []string{"Backend task"}},
				}
				for _, tt := range tests {
					t.Run(tt.name, func(t *testing.T) {
						tasks, err := repo.List(ctx, tt.filter)
						require.NoError(t, err)
						assert.Equal(t, tt.want, titles(tasks))
					})
				}
			})

			t.Run("update", func(t *testing.T) {
				repo := factory(t)
				ctx := context.Background()
				task := newTask(t, "Draft", 0)
				require.NoError(t, repo.Create(ctx, task))

				task.Title = "Final"
				domain.SetCompleted(task, true, base)
				require.NoError(t, repo.Update(ctx, task))

				found, err := repo.FindByID(ctx, task.ID)
				require.NoError(t, err)
				assert.Equal(t, "Final", found.Title)
				assert.True(t, found.Completed)
				require.NotNil(t, found.CompletedAt)
			})

			t.Run("update missing task fails and creates nothing", func(t *testing.T) {
				repo := factory(t)
				ctx := context.Background()
				task := newTask(t, "Never stored", 0)

				err := repo.Update(ctx, task)
				assert.ErrorIs(t, err, apperror.ErrNotFound)

				found, err := repo.FindByID(ctx, task.ID)
				require.NoError(t, err)
				assert.Nil(t, found)
			})

			t.Run("update after delete does not resurrect", func(t *testing.T) {
				repo := factory(t)
				ctx := context.Background()
				task := newTask(t, "Short lived", 0)
				require.NoError(t, repo.Create(ctx, task))
				require.NoError(t, repo.Delete(ctx, task.ID))

				task.Title = "Edited late"
				assert.ErrorIs(t, repo.Update(ctx, task), apperror.ErrNotFound)

				all, err := repo.List(ctx, domain.Filter{})
				require.NoError(t, err)
				assert.Empty(t, all)
			})

			t.Run("delete", func(t *testing.T) {
				repo := factory(t)
				ctx := context.Background()
				task := newTask(t, "Temporary", 0)
				require.NoError(t, repo.Create(ctx, task))

				require.NoError(t, repo.Delete(ctx, task.ID))
				found, err := repo.FindByID(ctx, task.ID)
				require.NoError(t, err)
				assert.Nil(t, found)
			})

			t.Run("count and delete by project", func(t *testing.T) {
				repo := factory(t)
				ctx := context.Background()
				projectID := uuid.NewString()
				otherID := uuid.NewString()

				for i := 0; i < 3; i++ {
					task := newTask(t, "Project task", i)
					task.ProjectID = &projectID
					task.Completed = i == 0
					require.NoError(t, repo.Create(ctx, task))
				}
				other := newTask(t, "Other project", 5)
				other.ProjectID = &otherID
				require.NoError(t, repo.Create(ctx, other))
				require.NoError(t, repo.Create(ctx, newTask(t, "Loose", 6)))

				total, completed, err := repo.CountByProject(ctx, projectID)
				require.NoError(t, err)
				assert.EqualValues(t, 3, total)
				assert.EqualValues(t, 1, completed)

				removed, err := repo.DeleteByProject(ctx, projectID)
				require.NoError(t, err)
				assert.EqualValues(t, 3, removed)

				remaining, err := repo.List(ctx, domain.Filter{})
				require.NoError(t, err)
				assert.ElementsMatch(t, []string{"Other project", "Loose"}, titles(remaining))

				removed, err = repo.DeleteByProject(ctx, projectID)
				require.NoError(t, err)
				assert.Zero(t, removed)
			})

			t.Run("delete all", func(t *testing.T) {
				repo := factory(t)
				ctx := context.Background()
				require.NoError(t, repo.Create(ctx, newTask(t, "one", 0)))
				require.NoError(t, repo.Create(ctx, newTask(t, "two", 1)))

				removed, err := repo.DeleteAll(ctx)
				require.NoError(t, err)
				assert.EqualValues(t, 2, removed)

				tasks, err := repo.List(ctx, domain.Filter{})
				require.NoError(t, err)
				assert.Empty(t, tasks)
			})
		})
	}
}

func TestMemoryTaskRepository_ReturnsCopies(t *testing.T) {
	repo := repository.NewMemoryTaskRepository()
	ctx := context.Background()
	task := newTask(t, "Original", 0)
	require.NoError(t, repo.Create(ctx, task))

	task.Title = "Mutated after create"
	found, err := repo.FindByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Original", found.Title)

	found.Title = "Mutated after read"
	again, err := repo.FindByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Original", again.Title)
}
