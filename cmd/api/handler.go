package api

import (
	"net/http"
	"time"

	projectDelivery "projecthub-backend/internal/project/delivery"
	projectUsecasePkg "projecthub-backend/internal/project/usecase"
	taskDelivery "projecthub-backend/internal/task/delivery"
	taskUsecasePkg "projecthub-backend/internal/task/usecase"
	"projecthub-backend/pkg/config"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	config         *config.Config
	status         *StatusHandler
	taskHandler    *taskDelivery.TaskHandler
	projectHandler *projectDelivery.ProjectHandler
}

func NewHandler(cfg *config.Config, taskUc taskUsecasePkg.TaskUsecase, projectUc projectUsecasePkg.ProjectUsecase) *Handler {
	return &Handler{
		config:         cfg,
		status:         NewStatusHandler(cfg.StorageDriver, taskUc, projectUc, time.Now()),
		taskHandler:    taskDelivery.NewTaskHandler(taskUc),
		projectHandler: projectDelivery.NewProjectHandler(projectUc),
	}
}

// Router builds the gin engine with middleware and every route mounted
func (h *Handler) Router() *gin.Engine {
	if h.config.GinMode != "" {
		gin.SetMode(h.config.GinMode)
	}
	r := gin.Default()

	r.Use(corsMiddleware(h.config.CORSAllowedOrigin))

	SetupRoutes(r, h.status, h.taskHandler, h.projectHandler)
	return r
}

// Server wraps the router in an http.Server listening on addr
func (h *Handler) Server(addr string) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           h.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// corsMiddleware echoes the request origin unless allowedOrigin pins one
func corsMiddleware(allowedOrigin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := allowedOrigin
		if origin == "" {
			origin = c.Request.Header.Get("Origin")
		}
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
