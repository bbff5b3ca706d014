package delivery

import (
	"net/http"

	"projecthub-backend/internal/project/domain"
	"projecthub-backend/internal/project/usecase"
	"projecthub-backend/pkg/apperror"
	"projecthub-backend/pkg/entity"
	"projecthub-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

// ProjectHandler handles project-related HTTP requests
type ProjectHandler struct {
	projectUsecase usecase.ProjectUsecase
}

// NewProjectHandler creates a new ProjectHandler
func NewProjectHandler(projectUsecase usecase.ProjectUsecase) *ProjectHandler {
	return &ProjectHandler{projectUsecase: projectUsecase}
}

// TagRequest is the body of POST /api/projects/:id/tags
type TagRequest struct {
	Tag string `json:"tag" binding:"required"`
}

func (h *ProjectHandler) RegisterRoutes(rg *gin.RouterGroup) {
	projects := rg.Group("/projects")
	{
		projects.GET("", h.GetProjects)
		projects.POST("", h.CreateProject)
		projects.GET("/stats", h.GetStats)
		projects.GET("/:id", h.GetProjectByID)
		projects.PUT("/:id", h.UpdateProject)
		projects.DELETE("/:id", h.DeleteProject)
		projects.POST("/:id/tags", h.AddTag)
		projects.DELETE("/:id/tags/:tag", h.RemoveTag)
		projects.POST("/:id/sync-progress", h.SyncProgress)
	}
}

// GetProjects lists projects
// GET /api/projects?status=active&priority=high
func (h *ProjectHandler) GetProjects(c *gin.Context) {
	var filter domain.Filter
	if raw := c.Query("status"); raw != "" {
		status := domain.Status(raw)
		if !domain.ValidStatus(status) {
			response.Error(c, apperror.InvalidField("status", "unknown status "+raw))
			return
		}
		filter.Status = &status
	}
	if raw := c.Query("priority"); raw != "" {
		priority := domain.Priority(raw)
		if !domain.ValidPriority(priority) {
			response.Error(c, apperror.InvalidField("priority", "unknown priority "+raw))
			return
		}
		filter.Priority = &priority
	}

	projects, err := h.projectUsecase.ListProjects(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects": projects,
		"total":    len(projects),
	})
}

// GET /api/projects/:id
func (h *ProjectHandler) GetProjectByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	project, err := h.projectUsecase.GetProjectByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// POST /api/projects
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req usecase.ProjectCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	project, err := h.projectUsecase.CreateProject(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, project)
}

// PUT /api/projects/:id
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var updates usecase.ProjectUpdateRequest
	if err := c.ShouldBindJSON(&updates); err != nil {
		response.BadRequest(c, err)
		return
	}

	project, err := h.projectUsecase.UpdateProject(c.Request.Context(), id, updates)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// DeleteProject removes a project together with its tasks
// DELETE /api/projects/:id
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	result, err := h.projectUsecase.DeleteProject(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// POST /api/projects/:id/tags
func (h *ProjectHandler) AddTag(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req TagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	project, err := h.projectUsecase.AddTag(c.Request.Context(), id, req.Tag)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// DELETE /api/projects/:id/tags/:tag
func (h *ProjectHandler) RemoveTag(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	project, err := h.projectUsecase.RemoveTag(c.Request.Context(), id, c.Param("tag"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// SyncProgress recounts the project's tasks
// POST /api/projects/:id/sync-progress
func (h *ProjectHandler) SyncProgress(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	project, err := h.projectUsecase.SyncProgress(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}

// GET /api/projects/stats
func (h *ProjectHandler) GetStats(c *gin.Context) {
	stats, err := h.projectUsecase.GetStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func pathID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if err := entity.ValidateID("id", id); err != nil {
		response.Error(c, err)
		return "", false
	}
	return id, true
}
