package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"projecthub-backend/internal/project/domain"
	"projecthub-backend/pkg/apperror"
)

type memoryEntry struct {
	project *domain.Project
	seq     uint64
}

// memoryProjectRepository keeps projects in process memory and enforces the
// unique name constraint itself.
type memoryProjectRepository struct {
	mu       sync.RWMutex
	projects map[string]memoryEntry
	seq      uint64
}

// NewMemoryProjectRepository creates an empty in-memory ProjectRepository
func NewMemoryProjectRepository() ProjectRepository {
	return &memoryProjectRepository{projects: make(map[string]memoryEntry)}
}

func (r *memoryProjectRepository) Create(_ context.Context, project *domain.Project) error {
	if project.CreatedAt.IsZero() {
		project.CreatedAt = time.Now()
	}
	project.UpdatedAt = time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.nameTakenLocked(project.Name, project.ID) {
		return apperror.DuplicateKey("name", "a project with this name already exists")
	}
	r.seq++
	r.projects[project.ID] = memoryEntry{project: project.Clone(), seq: r.seq}
	return nil
}

func (r *memoryProjectRepository) FindByID(_ context.Context, id string) (*domain.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.projects[id]
	if !ok {
		return nil, nil
	}
	return entry.project.Clone(), nil
}

func (r *memoryProjectRepository) List(_ context.Context, filter domain.Filter) ([]*domain.Project, error) {
	r.mu.RLock()
	entries := make([]memoryEntry, 0, len(r.projects))
	for _, entry := range r.projects {
		if filter.Status != nil && entry.project.Status != *filter.Status {
			continue
		}
		if filter.Priority != nil && entry.project.Priority != *filter.Priority {
			continue
		}
		entries = append(entries, entry)
	}
	r.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if !a.project.CreatedAt.Equal(b.project.CreatedAt) {
			return a.project.CreatedAt.After(b.project.CreatedAt)
		}
		return a.seq > b.seq
	})

	projects := make([]*domain.Project, len(entries))
	for i, entry := range entries {
		projects[i] = entry.project.Clone()
	}
	return projects, nil
}

func (r *memoryProjectRepository) Update(_ context.Context, project *domain.Project) error {
	project.UpdatedAt = time.Now()

	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.projects[project.ID]
	if !ok {
		return apperror.NotFound("project", project.ID)
	}
	if r.nameTakenLocked(project.Name, project.ID) {
		return apperror.DuplicateKey("name", "a project with this name already exists")
	}
	entry.project = project.Clone()
	r.projects[project.ID] = entry
	return nil
}

func (r *memoryProjectRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.projects, id)
	return nil
}

func (r *memoryProjectRepository) nameTakenLocked(name, exceptID string) bool {
	for id, entry := range r.projects {
		if id != exceptID && entry.project.Name == name {
			return true
		}
	}
	return false
}
