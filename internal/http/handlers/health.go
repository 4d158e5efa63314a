package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type sessionCounter interface {
	Len() int
}

// Health reports liveness and the number of live view sessions.
func Health(sessions sessionCounter) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":        "ok",
			"view_sessions": sessions.Len(),
		})
	}
}
