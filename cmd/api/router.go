package api

import (
	"net/http"

	projectDelivery "projecthub-backend/internal/project/delivery"
	taskDelivery "projecthub-backend/internal/task/delivery"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, status *StatusHandler, taskHandler *taskDelivery.TaskHandler, projectHandler *projectDelivery.ProjectHandler) {
	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
		api.GET("/status", status.GetStatus)

		taskHandler.RegisterRoutes(api)
		projectHandler.RegisterRoutes(api)
	}
}
