// Package response writes the JSON error bodies shared by every handler.
package response

import (
	"log"
	"net/http"

	"projecthub-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

// Error writes err with the status its kind maps to. The body always has
// "error", plus "field" and "details" when the error carries them.
func Error(c *gin.Context, err error) {
	status := apperror.HTTPStatus(err)
	ae, ok := apperror.As(err)
	if !ok || status == http.StatusInternalServerError {
		log.Printf("[HTTP] %s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	if !ok {
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}

	body := gin.H{"error": ae.Message}
	if ae.Field != "" {
		body["field"] = ae.Field
	}
	if len(ae.Details) > 0 {
		body["details"] = ae.Details
	}
	c.JSON(status, body)
}

// BadRequest reports a body or query that could not be decoded.
func BadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
