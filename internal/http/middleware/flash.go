package middleware

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/atikurraha/admin-frontend/internal/http/flash"
	"github.com/atikurraha/admin-frontend/pkg/view"
)

const CtxKeyFlash = "flash"

// FlashMiddleware hands a pending flash to the next rendered page and
// drops the cookie so the message shows once. JSON requests leave it in
// place; a script polling /admin/api/ must not eat the banner meant for
// the page the browser is about to load.
func FlashMiddleware(codec *flash.Codec, l *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(codec.CookieName)
		if err != nil || raw == "" || WantsJSON(c) {
			c.Next()
			return
		}

		f, err := codec.Decode(raw)
		if err != nil {
			l.LogAttrs(c.Request.Context(), slog.LevelDebug, "flash_rejected",
				slog.String("request_id", GetRequestID(c)),
				slog.Any("err", err),
			)
		} else {
			c.Set(CtxKeyFlash, f)
		}
		dropCookie(c, codec.CookieName, flashCookiePath, codec.Secure)

		c.Next()
	}
}

func GetFlash(c *gin.Context) *view.Flash {
	if v, ok := c.Get(CtxKeyFlash); ok {
		if f, ok := v.(*view.Flash); ok {
			return f
		}
	}
	return nil
}

// SetFlashCookie queues f for the next page. A flash that cannot be encoded
// is dropped; the redirect it rides on still happens.
func SetFlashCookie(c *gin.Context, codec *flash.Codec, f view.Flash) error {
	val, err := codec.Encode(f)
	if err != nil {
		return err
	}
	writeCookie(c, codec.CookieName, val, flashCookiePath, codec.CookieMaxAge(), codec.Secure)
	return nil
}
