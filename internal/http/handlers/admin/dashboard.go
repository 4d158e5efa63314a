package admin

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/atikurraha/admin-frontend/internal/http/middleware"
	"github.com/atikurraha/admin-frontend/internal/http/render"
	"github.com/atikurraha/admin-frontend/internal/shared/apperr"
	"github.com/atikurraha/admin-frontend/internal/storage"
	"github.com/atikurraha/admin-frontend/pkg/view"
	"github.com/atikurraha/admin-frontend/templates/pages"
)

type DashboardHandler struct {
	Thumbs     storage.Resolver
	RenderWait time.Duration
	Location   *time.Location
	Logger     *slog.Logger
}

func NewDashboardHandler(thumbs storage.Resolver, renderWait time.Duration, loc *time.Location, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{Thumbs: thumbs, RenderWait: renderWait, Location: loc, Logger: logger}
}

// page renders the session's dashboard. A visit whose fetch has not settled
// keeps the dashboard mounted so the loading page's refresh picks up the
// same fetch; a settled visit is closed and the next one fetches again.
func (h *DashboardHandler) page(c *gin.Context) (view.AdminDashboardPage, bool) {
	s := middleware.GetViewSession(c)
	if s == nil {
		middleware.Fail(c, apperr.Wrap(errors.New("no view session in context")))
		return view.AdminDashboardPage{}, false
	}

	s.OpenDashboard()
	settle(c, s.Dashboard, h.RenderWait)
	st := s.Dashboard.State()
	if !st.Loading {
		s.CloseDashboard()
	}

	return view.NewAdminDashboardPage(view.DashboardInput{
		Summary: st.Summary,
		Loading: st.Loading,
		Error:   st.Error,
	}, thumbs(c.Request.Context(), h.Thumbs, h.Logger), h.Location), true
}

func (h *DashboardHandler) Show(c *gin.Context) {
	p, ok := h.page(c)
	if !ok {
		return
	}
	render.Component(c, http.StatusOK, pages.AdminDashboard(middleware.GetFlash(c), p, RefreshSeconds))
}

func (h *DashboardHandler) ShowJSON(c *gin.Context) {
	p, ok := h.page(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, p)
}
