package admin

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/atikurraha/admin-frontend/internal/http/flash"
	"github.com/atikurraha/admin-frontend/internal/http/middleware"
	"github.com/atikurraha/admin-frontend/internal/http/render"
	"github.com/atikurraha/admin-frontend/internal/http/validation"
	"github.com/atikurraha/admin-frontend/internal/shared/apperr"
	"github.com/atikurraha/admin-frontend/internal/storage"
	"github.com/atikurraha/admin-frontend/internal/ui/productlist"
	"github.com/atikurraha/admin-frontend/pkg/view"
	"github.com/atikurraha/admin-frontend/templates/pages"
)

type ProductsHandler struct {
	Flash      *flash.Codec
	Thumbs     storage.Resolver
	RenderWait time.Duration
	Logger     *slog.Logger
}

func NewProductsHandler(codec *flash.Codec, thumbs storage.Resolver, renderWait time.Duration, logger *slog.Logger) *ProductsHandler {
	return &ProductsHandler{Flash: codec, Thumbs: thumbs, RenderWait: renderWait, Logger: logger}
}

type listQuery struct {
	Search string `form:"q" binding:"max=200"`
	Page   *int   `form:"page"`
}

func bindListQuery(c *gin.Context) (productlist.Query, error) {
	var in listQuery
	if err := c.ShouldBindQuery(&in); err != nil {
		fe := validation.FromBindError(err, &in)
		return productlist.Query{}, apperr.InvalidErr(fe.String(), fe)
	}
	q := productlist.Query{Page: 1, Search: in.Search}
	if in.Page != nil {
		q.Page = *in.Page
	}
	return q, nil
}

// navigate turns the URL's query into the list's input events. A new
// search term resets the page; an explicit page in the same URL then wins.
func navigate(v *productlist.View, q productlist.Query) {
	cur := v.State().Query
	if q.Search != cur.Search {
		v.SearchChanged(q.Search)
		cur = productlist.Query{Page: 1, Search: q.Search}
	}
	if q.Page != cur.Page {
		v.PageChanged(q.Page)
	}
}

// view returns the session's product list. Arriving here ends any
// dashboard visit still waiting on its fetch.
func (h *ProductsHandler) view(c *gin.Context) (*productlist.View, bool) {
	s := middleware.GetViewSession(c)
	if s == nil {
		middleware.Fail(c, apperr.Wrap(errors.New("no view session in context")))
		return nil, false
	}
	s.CloseDashboard()
	return s.Products, true
}

func (h *ProductsHandler) page(c *gin.Context, v *productlist.View) view.AdminProductListPage {
	settle(c, v, h.RenderWait)
	st := v.State()
	p := view.NewAdminProductListPage(view.ProductListInput{
		Search:      st.Query.Search,
		Page:        st.Query.Page,
		TotalPages:  st.TotalPages,
		Products:    st.Products,
		Loading:     st.Loading,
		Error:       st.Error,
		ActionError: st.ActionError,
	}, thumbs(c.Request.Context(), h.Thumbs, h.Logger))
	p.Flash = middleware.GetFlash(c)
	return p
}

func (h *ProductsHandler) List(c *gin.Context) {
	v, ok := h.view(c)
	if !ok {
		return
	}
	q, err := bindListQuery(c)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	navigate(v, q)
	render.Component(c, http.StatusOK, pages.AdminProductList(h.page(c, v), RefreshSeconds))
}

// ListJSON serves the same page model for scripted clients.
func (h *ProductsHandler) ListJSON(c *gin.Context) {
	v, ok := h.view(c)
	if !ok {
		return
	}
	q, err := bindListQuery(c)
	if err != nil {
		middleware.Fail(c, err)
		return
	}
	navigate(v, q)
	c.JSON(http.StatusOK, h.page(c, v))
}

// ConfirmDeletePage is the confirmation step; nothing is sent to the
// backend yet.
func (h *ProductsHandler) ConfirmDeletePage(c *gin.Context) {
	v, ok := h.view(c)
	if !ok {
		return
	}
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		middleware.Fail(c, apperr.NotFoundErr("Product not found."))
		return
	}

	req := v.RequestDelete(id)
	render.Component(c, http.StatusOK, pages.AdminProductDeleteConfirm(
		middleware.GetFlash(c),
		view.DeleteConfirmPage{
			ProductID:   req.ProductID,
			ProductName: req.ProductName,
			Prompt:      req.Prompt,
			ActionURL:   view.DeleteProductURL(req.ProductID),
			CancelURL:   view.ProductListURL(req.Query.Page, req.Query.Search),
		},
	))
}

type deleteForm struct {
	Confirm string `form:"confirm" binding:"omitempty,oneof=0 1"`
}

// Delete runs the confirmed delete and sends the browser back to the list.
// A failure is shown by the list itself as its action error.
func (h *ProductsHandler) Delete(c *gin.Context) {
	v, ok := h.view(c)
	if !ok {
		return
	}
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		middleware.Fail(c, apperr.NotFoundErr("Product not found."))
		return
	}

	var in deleteForm
	if err := c.ShouldBind(&in); err != nil {
		fe := validation.FromBindError(err, &in)
		middleware.Fail(c, apperr.InvalidErr(fe.String(), fe))
		return
	}
	if in.Confirm != "1" {
		q := v.State().Query
		render.RedirectWithFlash(c, h.Flash, view.ProductListURL(q.Page, q.Search),
			view.Flash{Kind: view.FlashInfo, Message: "Delete cancelled."})
		return
	}

	err := v.ConfirmDelete(c.Request.Context(), id)
	q := v.State().Query
	back := view.ProductListURL(q.Page, q.Search)
	if err != nil {
		c.Redirect(http.StatusSeeOther, back)
		return
	}
	render.RedirectWithFlash(c, h.Flash, back, view.SuccessFlash("Product deleted."))
}
