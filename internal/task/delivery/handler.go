package delivery

import (
	"net/http"
	"strconv"
	"time"

	"projecthub-backend/internal/task/domain"
	"projecthub-backend/internal/task/usecase"
	"projecthub-backend/pkg/apperror"
	"projecthub-backend/pkg/entity"
	"projecthub-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	taskUsecase usecase.TaskUsecase
	now         func() time.Time
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskUsecase usecase.TaskUsecase) *TaskHandler {
	return &TaskHandler{
		taskUsecase: taskUsecase,
		now:         time.Now,
	}
}

// RegisterRoutes mounts the task endpoints on rg
func (h *TaskHandler) RegisterRoutes(rg *gin.RouterGroup) {
	tasks := rg.Group("/tasks")
	{
		tasks.GET("", h.GetTasks)
		tasks.POST("", h.CreateTask)
		tasks.GET("/stats", h.GetStats)
		tasks.GET("/search", h.SearchTasks)
		tasks.GET("/:id", h.GetTaskByID)
		tasks.PUT("/:id", h.UpdateTask)
		tasks.DELETE("/:id", h.DeleteTask)
		tasks.POST("/:id/complete", h.CompleteTask)
		tasks.POST("/:id/reopen", h.ReopenTask)
	}
}

// GetTasks returns tasks, newest first
// GET /api/tasks?completed=false&priority=high&category=backend&assignee=ana&project=<id>
func (h *TaskHandler) GetTasks(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	tasks, err := h.taskUsecase.ListTasks(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": domain.NewViews(tasks, h.now()),
		"total": len(tasks),
	})
}

// GetTaskByID returns a specific task
// GET /api/tasks/:id
func (h *TaskHandler) GetTaskByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	task, err := h.taskUsecase.GetTaskByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, domain.NewView(task, h.now()))
}

// CreateTask creates a new task
// POST /api/tasks
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req usecase.TaskCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	task, err := h.taskUsecase.CreateTask(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, domain.NewView(task, h.now()))
}

// UpdateTask applies a partial update
// PUT /api/tasks/:id
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var updates usecase.TaskUpdateRequest
	if err := c.ShouldBindJSON(&updates); err != nil {
		response.BadRequest(c, err)
		return
	}

	task, err := h.taskUsecase.UpdateTask(c.Request.Context(), id, updates)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, domain.NewView(task, h.now()))
}

// CompleteTask marks a task as done
// POST /api/tasks/:id/complete
func (h *TaskHandler) CompleteTask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	task, err := h.taskUsecase.CompleteTask(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, domain.NewView(task, h.now()))
}

// ReopenTask marks a task as pending
// POST /api/tasks/:id/reopen
func (h *TaskHandler) ReopenTask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	task, err := h.taskUsecase.ReopenTask(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, domain.NewView(task, h.now()))
}

// DeleteTask deletes a task
// DELETE /api/tasks/:id
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	task, err := h.taskUsecase.DeleteTask(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
		"task":    domain.NewView(task, h.now()),
	})
}

// SearchTasks ranks tasks against a free-text query
// GET /api/tasks/search?q=login
func (h *TaskHandler) SearchTasks(c *gin.Context) {
	tasks, err := h.taskUsecase.SearchTasks(c.Request.Context(), c.Query("q"))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": domain.NewViews(tasks, h.now()),
		"total": len(tasks),
	})
}

// GetStats returns the task statistics
// GET /api/tasks/stats
func (h *TaskHandler) GetStats(c *gin.Context) {
	stats, err := h.taskUsecase.GetStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// pathID validates the :id parameter, writing a 400 when it is malformed.
func pathID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if err := entity.ValidateID("id", id); err != nil {
		response.Error(c, err)
		return "", false
	}
	return id, true
}

func parseFilter(c *gin.Context) (domain.Filter, error) {
	var filter domain.Filter

	if raw, ok := c.GetQuery("completed"); ok {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			return filter, apperror.InvalidField("completed", "completed must be true or false")
		}
		filter.Completed = &completed
	}
	if raw := c.Query("priority"); raw != "" {
		priority := domain.Priority(raw)
		if !domain.ValidPriority(priority) {
			return filter, apperror.InvalidField("priority", "unknown priority "+raw)
		}
		filter.Priority = &priority
	}
	if raw := c.Query("category"); raw != "" {
		category := domain.Category(raw)
		if !domain.ValidCategory(category) {
			return filter, apperror.InvalidField("category", "unknown category "+raw)
		}
		filter.Category = &category
	}
	if raw := c.Query("assignee"); raw != "" {
		filter.Assignee = &raw
	}
	if raw := c.Query("project"); raw != "" {
		if err := entity.ValidateID("project", raw); err != nil {
			return filter, err
		}
		filter.ProjectID = &raw
	}
	return filter, nil
}
