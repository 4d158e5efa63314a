package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"runtime/debug"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/atikurraha/admin-frontend/internal/shared/apperr"
)

// Recovery turns a handler panic into a 500 rendered the same way as any
// other failure. http.ErrAbortHandler is re-raised for net/http, and a
// client that hung up mid-response is only logged.
func Recovery(l *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			attrs := []slog.Attr{
				slog.String("request_id", GetRequestID(c)),
				slog.String("route", c.FullPath()),
				slog.Any("panic", rec),
			}
			if vid := GetViewID(c); vid != "" {
				attrs = append(attrs, slog.String("view_id", vid))
			}

			if clientGone(rec) {
				l.LogAttrs(c.Request.Context(), slog.LevelWarn, "client_disconnected", attrs...)
				c.Abort()
				return
			}

			attrs = append(attrs, slog.String("stack", string(debug.Stack())))
			l.LogAttrs(c.Request.Context(), slog.LevelError, "panic_recovered", attrs...)

			err := apperr.Wrap(fmt.Errorf("panic: %v", rec))
			Fail(c, err)
			if !c.Writer.Written() {
				writeError(c, l, err)
			}
		}()

		c.Next()
	}
}

func clientGone(rec any) bool {
	err, ok := rec.(error)
	if !ok {
		return false
	}
	var se *os.SyscallError
	if errors.As(err, &se) {
		return errors.Is(se.Err, syscall.EPIPE) || errors.Is(se.Err, syscall.ECONNRESET)
	}
	var oe *net.OpError
	return errors.As(err, &oe)
}
