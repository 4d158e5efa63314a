package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Cookie paths. The view session only matters to admin pages; a flash may
// be read by whatever page a redirect lands on.
const (
	adminCookiePath = "/admin"
	flashCookiePath = "/"
)

// Every cookie this front-end sets is HttpOnly and SameSite=Lax: none is
// read by scripts and all must survive the 303 after a form POST.
func writeCookie(c *gin.Context, name, value, path string, maxAge int, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, path, "", secure, true)
}

func setAdminCookie(c *gin.Context, name, value string, maxAge int, secure bool) {
	writeCookie(c, name, value, adminCookiePath, maxAge, secure)
}

func dropCookie(c *gin.Context, name, path string, secure bool) {
	writeCookie(c, name, "", path, -1, secure)
}
