package admin

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/atikurraha/admin-frontend/internal/storage"
	"github.com/atikurraha/admin-frontend/pkg/view"
)

// RefreshSeconds is the reload interval of a page rendered while loading.
const RefreshSeconds = 1

// waiter is what settle needs from a view.
type waiter interface {
	WaitIdle(ctx context.Context) error
}

// settle gives the view up to d to finish its newest fetch. A timeout is
// not an error; the page then renders its loading state.
func settle(c *gin.Context, w waiter, d time.Duration) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), d)
	defer cancel()
	_ = w.WaitIdle(ctx)
}

func thumbs(ctx context.Context, res storage.Resolver, l *slog.Logger) view.ThumbResolver {
	return func(img string) string {
		u, err := storage.Resolve(ctx, res, img)
		if err != nil {
			l.LogAttrs(ctx, slog.LevelWarn, "thumbnail_resolve_failed", slog.String("image", img), slog.Any("err", err))
			return ""
		}
		return u
	}
}
