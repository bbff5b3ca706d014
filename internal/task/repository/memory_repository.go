package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"projecthub-backend/internal/task/domain"
	"projecthub-backend/pkg/apperror"
)

type memoryEntry struct {
	task *domain.Task
	seq  uint64
}

// memoryTaskRepository keeps tasks in process memory. Values are cloned on
// the way in and out so callers never share state with the store.
type memoryTaskRepository struct {
	mu    sync.RWMutex
	tasks map[string]memoryEntry
	seq   uint64
}

// NewMemoryTaskRepository creates an empty in-memory TaskRepository
func NewMemoryTaskRepository() TaskRepository {
	return &memoryTaskRepository{tasks: make(map[string]memoryEntry)}
}

func (r *memoryTaskRepository) Create(_ context.Context, task *domain.Task) error {
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now()
	}
	task.UpdatedAt = time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	r.tasks[task.ID] = memoryEntry{task: task.Clone(), seq: r.seq}
	return nil
}

func (r *memoryTaskRepository) FindByID(_ context.Context, id string) (*domain.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.tasks[id]
	if !ok {
		return nil, nil
	}
	return entry.task.Clone(), nil
}

func (r *memoryTaskRepository) List(_ context.Context, filter domain.Filter) ([]*domain.Task, error) {
	r.mu.RLock()
	entries := make([]memoryEntry, 0, len(r.tasks))
	for _, entry := range r.tasks {
		if filter.Matches(entry.task) {
			entries = append(entries, entry)
		}
	}
	r.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.task.CreatedAt.Equal(b.task.CreatedAt) {
			return a.task.CreatedAt.After(b.task.CreatedAt)
		}
		return a.seq > b.seq
	})

	tasks := make([]*domain.Task, len(entries))
	for i, entry := range entries {
		tasks[i] = entry.task.Clone()
	}
	return tasks, nil
}

func (r *memoryTaskRepository) Update(_ context.Context, task *domain.Task) error {
	task.UpdatedAt = time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.tasks[task.ID]
	if !ok {
		return apperror.NotFound("task", task.ID)
	}
	entry.task = task.Clone()
	r.tasks[task.ID] = entry
	return nil
}

func (r *memoryTaskRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tasks, id)
	return nil
}

func (r *memoryTaskRepository) DeleteByProject(_ context.Context, projectID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var removed int64
	for id, entry := range r.tasks {
		if entry.task.BelongsTo(projectID) {
			delete(r.tasks, id)
			removed++
		}
	}
	return removed, nil
}

func (r *memoryTaskRepository) DeleteAll(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := int64(len(r.tasks))
	r.tasks = make(map[string]memoryEntry)
	return removed, nil
}

func (r *memoryTaskRepository) CountByProject(_ context.Context, projectID string) (int64, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var total, completed int64
	for _, entry := range r.tasks {
		if !entry.task.BelongsTo(projectID) {
			continue
		}
		total++
		if entry.task.Completed {
			completed++
		}
	}
	return total, completed, nil
}
