package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/atikurraha/admin-frontend/internal/http/viewsession"
	"github.com/atikurraha/admin-frontend/internal/ui/productlist"
)

const (
	CtxKeyViewID      = "view_id"
	CtxKeyViewSession = "view_session"
)

type ViewSessionCfg struct {
	Registry   *viewsession.Registry
	CookieName string
	Secure     bool
}

// ViewSession attaches the browser's view session to the context, creating
// one on first visit or after it was reaped.
func ViewSession(cfg ViewSessionCfg) gin.HandlerFunc {
	maxAge := int(cfg.Registry.TTL().Seconds())
	return func(c *gin.Context) {
		id, _ := c.Cookie(cfg.CookieName)
		id, s := cfg.Registry.Acquire(id)

		c.Set(CtxKeyViewID, id)
		c.Set(CtxKeyViewSession, s)
		setAdminCookie(c, cfg.CookieName, id, maxAge, cfg.Secure)

		c.Next()
	}
}

func GetViewID(c *gin.Context) string {
	return c.GetString(CtxKeyViewID)
}

func GetViewSession(c *gin.Context) *viewsession.Session {
	if v, ok := c.Get(CtxKeyViewSession); ok {
		if s, ok := v.(*viewsession.Session); ok {
			return s
		}
	}
	return nil
}

func GetProductView(c *gin.Context) *productlist.View {
	if s := GetViewSession(c); s != nil {
		return s.Products
	}
	return nil
}
