package render

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/atikurraha/admin-frontend/internal/http/flash"
	"github.com/atikurraha/admin-frontend/internal/http/middleware"
	"github.com/atikurraha/admin-frontend/pkg/view"
)

// RedirectWithFlash answers a form POST with 303 See Other so the browser
// follows up with a GET. A flash that fails to encode is recorded on the
// context and shows up in the request log; the redirect still goes out.
func RedirectWithFlash(c *gin.Context, codec *flash.Codec, location string, f view.Flash) {
	if err := middleware.SetFlashCookie(c, codec, f); err != nil {
		_ = c.Error(err)
	}
	c.Redirect(http.StatusSeeOther, location)
}
