package render

import (
	"github.com/gin-gonic/gin"

	"github.com/atikurraha/admin-frontend/internal/http/middleware"
	"github.com/atikurraha/admin-frontend/templates/pages"
)

func ErrorPage(c *gin.Context, status int, msg string) {
	flash := middleware.GetFlash(c)
	Component(c, status, pages.Error(status, msg, middleware.GetRequestID(c), flash))
}
