// Package http wires the admin web front-end: middleware chain, routes and
// handlers.
package http

import (
	"log/slog"
	nethttp "net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/atikurraha/admin-frontend/internal/config"
	"github.com/atikurraha/admin-frontend/internal/http/flash"
	"github.com/atikurraha/admin-frontend/internal/http/handlers"
	"github.com/atikurraha/admin-frontend/internal/http/handlers/admin"
	"github.com/atikurraha/admin-frontend/internal/http/middleware"
	"github.com/atikurraha/admin-frontend/internal/http/viewsession"
	"github.com/atikurraha/admin-frontend/internal/storage"
)

type Deps struct {
	Logger   *slog.Logger
	Config   config.Config
	// Sessions builds each browser's product list and dashboard views.
	Sessions *viewsession.Registry
	Thumbs   storage.Resolver
	Location *time.Location
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(d.Logger))
	r.Use(middleware.Recovery(d.Logger))
	r.Use(middleware.ErrorHandler(d.Logger))

	codec := flash.NewCodec([]byte(d.Config.FlashSecret), "flash", d.Config.CookieSecure)
	r.Use(middleware.FlashMiddleware(codec, d.Logger))

	r.GET("/healthz", handlers.Health(d.Sessions))
	r.GET("/", func(c *gin.Context) { c.Redirect(nethttp.StatusFound, "/admin") })

	dash := admin.NewDashboardHandler(d.Thumbs, d.Config.RenderWait, d.Location, d.Logger)
	products := admin.NewProductsHandler(codec, d.Thumbs, d.Config.RenderWait, d.Logger)

	withView := r.Group("/admin", middleware.ViewSession(middleware.ViewSessionCfg{
		Registry:   d.Sessions,
		CookieName: d.Config.ViewCookieName,
		Secure:     d.Config.CookieSecure,
	}))
	withView.GET("", dash.Show)
	withView.GET("/api/dashboard", dash.ShowJSON)
	withView.GET("/products", products.List)
	withView.GET("/api/products", products.ListJSON)
	withView.GET("/products/:id/delete", products.ConfirmDeletePage)
	withView.POST("/products/:id/delete", products.Delete)

	return r
}
