// Package seed loads a small sample workspace: two projects and a set of
// tasks attached to them.
package seed

import (
	"context"
	"log"
	"time"

	projectDomain "projecthub-backend/internal/project/domain"
	projectUsecase "projecthub-backend/internal/project/usecase"
	taskUsecase "projecthub-backend/internal/task/usecase"
	"projecthub-backend/pkg/apperror"
)

// Result reports what Run changed.
type Result struct {
	TasksRemoved    int64 `json:"tasks_removed"`
	ProjectsCreated int   `json:"projects_created"`
	TasksCreated    int   `json:"tasks_created"`
}

type sampleTask struct {
	project int // index into sampleProjects
	req     taskUsecase.TaskCreateRequest
}

var sampleProjects = []projectUsecase.ProjectCreateRequest{
	{
		Name:        "Task Tracker API",
		Description: "REST backend for projects and tasks",
		Priority:    string(projectDomain.PriorityHigh),
		Tags:        []string{"backend", "api"},
	},
	{
		Name:        "Web Dashboard",
		Description: "Responsive interface over the tracker API",
		Tags:        []string{"frontend"},
	},
}

func sampleTasks(now time.Time) []sampleTask {
	due := func(days int) *string {
		s := now.AddDate(0, 0, days).UTC().Format(time.RFC3339)
		return &s
	}
	return []sampleTask{
		{0, taskUsecase.TaskCreateRequest{
			Title: "Set up development environment", Completed: true, Priority: "high", Category: "setup",
			Assignee: "Lead Developer", EstimatedTime: "2h", Tags: []string{"setup", "go"},
			Description: "Install the toolchain and database, and bootstrap the repository",
		}},
		{0, taskUsecase.TaskCreateRequest{
			Title: "Build REST routes", Completed: true, Priority: "high", Category: "backend",
			Assignee: "Backend Developer", EstimatedTime: "3h", Tags: []string{"routes", "api"},
			Description: "Expose every page and API endpoint with request validation",
		}},
		{0, taskUsecase.TaskCreateRequest{
			Title: "Implement task CRUD", Priority: "high", Category: "backend",
			Assignee: "Full-Stack Developer", EstimatedTime: "4h", DueDate: due(7), Tags: []string{"crud", "storage"},
			Description: "Create, read, update and delete operations with validation and error handling",
		}},
		{0, taskUsecase.TaskCreateRequest{
			Title: "Write automated tests", Priority: "medium", Category: "test",
			Assignee: "QA Engineer", EstimatedTime: "4h", DueDate: due(14), Tags: []string{"testing", "quality"},
			Description: "Unit and integration suites covering the storage backends",
		}},
		{0, taskUsecase.TaskCreateRequest{
			Title: "Document API endpoints", Priority: "low", Category: "documentation",
			Assignee: "Tech Writer", EstimatedTime: "2h", DueDate: due(21), Tags: []string{"docs", "api"},
			Description: "Reference for every route with example payloads",
		}},
		{0, taskUsecase.TaskCreateRequest{
			Title: "Fix category filter bug", Priority: "urgent", Category: "bugs",
			Assignee: "Backend Developer", EstimatedTime: "1h", DueDate: due(-1), Tags: []string{"bug", "filters"},
			Description: "Filtering by category returns tasks from every category",
		}},
		{1, taskUsecase.TaskCreateRequest{
			Title: "Create responsive layout", Priority: "high", Category: "frontend",
			Assignee: "Frontend Developer", EstimatedTime: "5h", DueDate: due(10), Tags: []string{"css", "layout"},
			Description: "Base layout that works from phone to desktop",
		}},
		{1, taskUsecase.TaskCreateRequest{
			Title: "Optimize page load", Priority: "low", Category: "improvements",
			Assignee: "Senior Developer", EstimatedTime: "3h", Tags: []string{"performance", "cache"},
			Description: "Profile slow pages and cache expensive queries",
		}},
	}
}

// Run inserts the sample data. With reset, every task is removed first.
// Projects whose name already exists are reused rather than duplicated.
func Run(ctx context.Context, projects projectUsecase.ProjectUsecase, tasks taskUsecase.TaskUsecase, reset bool) (Result, error) {
	var result Result

	if reset {
		removed, err := tasks.ClearTasks(ctx)
		if err != nil {
			return result, err
		}
		result.TasksRemoved = removed
	}

	existing, err := projects.ListProjects(ctx, projectDomain.Filter{})
	if err != nil {
		return result, err
	}
	byName := make(map[string]string, len(existing))
	for _, p := range existing {
		byName[p.Name] = p.ID
	}

	projectIDs := make([]string, len(sampleProjects))
	for i, req := range sampleProjects {
		if id, ok := byName[req.Name]; ok {
			projectIDs[i] = id
			continue
		}
		project, err := projects.CreateProject(ctx, req)
		if err != nil {
			if apperror.KindOf(err) == apperror.KindDuplicateKey {
				log.Printf("[Seed] Project %q created concurrently, skipping", req.Name)
				continue
			}
			return result, err
		}
		projectIDs[i] = project.ID
		result.ProjectsCreated++
	}

	for _, sample := range sampleTasks(time.Now()) {
		req := sample.req
		if id := projectIDs[sample.project]; id != "" {
			req.ProjectID = &id
		}
		if _, err := tasks.CreateTask(ctx, req); err != nil {
			return result, err
		}
		result.TasksCreated++
	}

	for _, id := range projectIDs {
		if id == "" {
			continue
		}
		if _, err := projects.SyncProgress(ctx, id); err != nil {
			return result, err
		}
	}

	log.Printf("[Seed] Created %d projects and %d tasks", result.ProjectsCreated, result.TasksCreated)
	return result, nil
}
