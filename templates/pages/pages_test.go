package pages

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atikurraha/admin-frontend/internal/modules/catalog"
	"github.com/atikurraha/admin-frontend/pkg/view"
)

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	return buf.String()
}

func TestAdminProductList_TwoRowsThreePages(t *testing.T) {
	p := view.NewAdminProductListPage(view.ProductListInput{
		Page:       1,
		TotalPages: 3,
		Products: []catalog.Product{
			{ID: "a", Name: "Alpha", Price: decimal.NewFromInt(1), IsActive: true},
			{ID: "b", Name: "Beta", Price: decimal.NewFromInt(2)},
		},
	}, nil)
	html := renderString(t, AdminProductList(p, 1))

	assert.Equal(t, 2, strings.Count(html, "<tr data-id="))
	assert.Contains(t, html, `<button class="btn btn-sm" disabled>Previous</button>`)
	assert.Contains(t, html, `href="/admin/products?page=2">Next</a>`)
	assert.Contains(t, html, `class="btn btn-sm active" href="/admin/products">1</a>`)
	assert.Equal(t, 3, strings.Count(html, `<a class="btn btn-sm`)-1, "three page buttons plus Next")
	assert.NotContains(t, html, "http-equiv")
}

func TestAdminProductList_ErrorHidesTable(t *testing.T) {
	p := view.NewAdminProductListPage(view.ProductListInput{Search: "widget", Error: "Network error"}, nil)
	html := renderString(t, AdminProductList(p, 1))

	assert.Contains(t, html, `<div class="error">Network error</div>`)
	assert.NotContains(t, html, "<table")
	assert.NotContains(t, html, `class="pagination"`)
}

func TestAdminProductList_LoadingRefreshes(t *testing.T) {
	p := view.NewAdminProductListPage(view.ProductListInput{Loading: true}, nil)
	html := renderString(t, AdminProductList(p, 2))

	assert.Contains(t, html, `<div class="loading">Loading...</div>`)
	assert.Contains(t, html, `<meta http-equiv="refresh" content="2">`)
	assert.NotContains(t, html, "<table")
}

func TestAdminProductList_SinglePageHasNoPagination(t *testing.T) {
	p := view.NewAdminProductListPage(view.ProductListInput{Page: 1, TotalPages: 1, Products: []catalog.Product{{ID: "a"}}}, nil)
	html := renderString(t, AdminProductList(p, 1))
	assert.NotContains(t, html, `class="pagination"`)
}

func TestAdminProductList_EscapesInput(t *testing.T) {
	p := view.NewAdminProductListPage(view.ProductListInput{Search: `"><script>`, Products: []catalog.Product{{ID: "a", Name: "<b>x</b>"}}}, nil)
	html := renderString(t, AdminProductList(p, 1))
	assert.NotContains(t, html, "<script>")
	assert.NotContains(t, html, "<b>x</b>")
}

func TestAdminDashboard_Sections(t *testing.T) {
	p := view.NewAdminDashboardPage(view.DashboardInput{Summary: catalog.DashboardSummary{
		TotalSales:       decimal.RequireFromString("1234.5"),
		RecentOrders:     []catalog.OrderSummary{{ID: "abcdefghijk", Status: catalog.OrderPending, User: catalog.Customer{Name: "Ada"}}},
		LowStockProducts: []catalog.Product{{ID: "l", Name: "Cable", Stock: 1}},
	}}, nil, nil)
	html := renderString(t, AdminDashboard(nil, p, 1))

	assert.Contains(t, html, "<p>$1234.50</p>")
	assert.Contains(t, html, "New order <strong>#abcdefgh</strong> from Ada")
	assert.Contains(t, html, "Low stock for <strong>Cable</strong>")
	assert.Less(t, strings.Index(html, "New order"), strings.Index(html, "Low stock"))
}

func TestAdminDashboard_LoadingAndError(t *testing.T) {
	html := renderString(t, AdminDashboard(nil, view.AdminDashboardPage{Loading: true}, 1))
	assert.Contains(t, html, "Loading dashboard...")
	assert.NotContains(t, html, "stats-cards")

	html = renderString(t, AdminDashboard(nil, view.AdminDashboardPage{Error: "boom"}, 1))
	assert.Contains(t, html, `<div class="error">boom</div>`)
	assert.NotContains(t, html, "stats-cards")
}

func TestError(t *testing.T) {
	html := renderString(t, Error(404, "Not here", "rid-1", &view.Flash{Kind: view.FlashWarning, Message: "hi"}))
	assert.Contains(t, html, "404 Not Found")
	assert.Contains(t, html, "Request ID: rid-1")
	assert.Contains(t, html, `flash flash-warning`)
}

func TestAdminProductDeleteConfirm(t *testing.T) {
	html := renderString(t, AdminProductDeleteConfirm(nil, view.DeleteConfirmPage{
		ProductID:   "p 1",
		ProductName: "Widget",
		Prompt:      "Are you sure?",
		ActionURL:   view.DeleteProductURL("p 1"),
		CancelURL:   view.ProductListURL(2, "wid"),
	}))

	assert.Contains(t, html, `<form method="post" action="/admin/products/p%201/delete">`)
	assert.Contains(t, html, `<input type="hidden" name="confirm" value="1">`)
	assert.Contains(t, html, `href="/admin/products?page=2&amp;q=wid" class="btn">Cancel</a>`)
	assert.Contains(t, html, "<strong>Widget</strong>")
	assert.NotContains(t, html, "http-equiv")
}
