package api

import (
	"context"
	"net/http"
	"time"

	projectDomain "projecthub-backend/internal/project/domain"
	taskDomain "projecthub-backend/internal/task/domain"
	"projecthub-backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type taskStatser interface {
	GetStats(ctx context.Context) (taskDomain.Stats, error)
}

type projectStatser interface {
	GetStats(ctx context.Context) (projectDomain.Stats, error)
}

// StatusHandler reports what the running server is backed by and how much
// it holds.
type StatusHandler struct {
	driver    string
	tasks     taskStatser
	projects  projectStatser
	startedAt time.Time
}

// NewStatusHandler creates a StatusHandler
func NewStatusHandler(driver string, tasks taskStatser, projects projectStatser, startedAt time.Time) *StatusHandler {
	return &StatusHandler{
		driver:    driver,
		tasks:     tasks,
		projects:  projects,
		startedAt: startedAt,
	}
}

// GetStatus returns uptime, storage driver and current statistics
// GET /api/status
func (h *StatusHandler) GetStatus(c *gin.Context) {
	ctx := c.Request.Context()

	taskStats, err := h.tasks.GetStats(ctx)
	if err != nil {
		response.Error(c, err)
		return
	}
	projectStats, err := h.projects.GetStats(ctx)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"storage_driver": h.driver,
		"uptime_seconds": int64(time.Since(h.startedAt).Seconds()),
		"tasks":          taskStats,
		"projects":       projectStats,
	})
}
