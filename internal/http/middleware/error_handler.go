package middleware

import (
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/atikurraha/admin-frontend/internal/shared/apperr"
	"github.com/atikurraha/admin-frontend/templates/pages"
)

// APIPrefix is where the JSON endpoints live.
const APIPrefix = "/admin/api/"

func WantsJSON(c *gin.Context) bool {
	if strings.Contains(c.GetHeader("Accept"), "application/json") {
		return true
	}
	return strings.HasPrefix(c.Request.URL.Path, APIPrefix)
}

func Fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// ErrorHandler renders the last error a handler recorded with Fail, as
// JSON for API clients and as the error page otherwise.
func ErrorHandler(l *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}
		writeError(c, l, c.Errors.Last().Err)
	}
}

func writeError(c *gin.Context, l *slog.Logger, err error) {
	status := apperr.HTTPStatus(err)
	publicMsg := apperr.PublicMessage(err)
	rid := GetRequestID(c)

	level := slog.LevelError
	if status < 500 {
		level = slog.LevelWarn
	}
	l.LogAttrs(c.Request.Context(), level, "request_failed",
		slog.String("request_id", rid),
		slog.Int("status", status),
		slog.Any("err", err),
	)

	if WantsJSON(c) {
		payload := gin.H{
			"error":      publicMsg,
			"request_id": rid,
		}
		if ae, ok := apperr.As(err); ok && len(ae.Fields) > 0 {
			payload["fields"] = ae.Fields
		}
		c.AbortWithStatusJSON(status, payload)
		return
	}

	c.Abort()
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	if rerr := pages.Error(status, publicMsg, rid, GetFlash(c)).Render(c.Request.Context(), c.Writer); rerr != nil {
		l.Error("error_page_render_failed", slog.String("request_id", rid), slog.Any("err", rerr))
	}
}
