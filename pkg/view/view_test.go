package view

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atikurraha/admin-frontend/internal/modules/catalog"
)

func link(n int) string { return fmt.Sprintf("/p/%d", n) }

func TestMoney(t *testing.T) {
	assert.Equal(t, "$1234.50", Money(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "$0.00", Money(decimal.Zero))
	assert.Equal(t, "€10.00", MoneyIn(decimal.NewFromInt(10), "EUR"))
	assert.Equal(t, "CHF 1.25", MoneyIn(decimal.RequireFromString("1.25"), "CHF"))
}

func TestNewPagination_HiddenForSinglePage(t *testing.T) {
	assert.False(t, NewPagination(1, 0, link).Show)
	assert.False(t, NewPagination(1, 1, link).Show)
}

func TestNewPagination_Boundaries(t *testing.T) {
	for total := 2; total <= 6; total++ {
		for cur := 1; cur <= total; cur++ {
			p := NewPagination(cur, total, link)
			require.True(t, p.Show)
			require.Len(t, p.Pages, total)
			assert.Equal(t, cur == 1, p.Previous.Disabled, "prev total=%d cur=%d", total, cur)
			assert.Equal(t, cur == total, p.Next.Disabled, "next total=%d cur=%d", total, cur)

			active := 0
			for i, b := range p.Pages {
				assert.Equal(t, i+1, b.Number)
				if b.Active {
					active++
					assert.Equal(t, cur, b.Number)
				}
			}
			assert.Equal(t, 1, active)
		}
	}
}

func TestNewAdminProductListPage_Scenario(t *testing.T) {
	in := ProductListInput{
		Page:       1,
		TotalPages: 3,
		Products: []catalog.Product{
			{ID: "a", Name: "A", Price: decimal.RequireFromString("5"), IsActive: true, Images: []string{"a.png"}},
			{ID: "b", Name: "B", Price: decimal.RequireFromString("7.5")},
		},
	}
	page := NewAdminProductListPage(in, nil)

	require.True(t, page.ShowTable)
	assert.Len(t, page.Rows, 2)
	assert.Len(t, page.Pagination.Pages, 3)
	assert.True(t, page.Pagination.Previous.Disabled)
	assert.False(t, page.Pagination.Next.Disabled)
	assert.Equal(t, "/admin/products?page=2", page.Pagination.Next.URL)

	assert.Equal(t, "$5.00", page.Rows[0].Price)
	assert.Equal(t, "Active", page.Rows[0].StatusLabel)
	assert.Equal(t, "a.png", page.Rows[0].ThumbnailURL)
	assert.Equal(t, "Inactive", page.Rows[1].StatusLabel)
	assert.Equal(t, "/admin/products/b", page.Rows[1].EditURL)
}

func TestNewAdminProductListPage_ExclusiveStates(t *testing.T) {
	loading := NewAdminProductListPage(ProductListInput{Loading: true, Error: "old", Products: []catalog.Product{{ID: "x"}}}, nil)
	assert.True(t, loading.Loading)
	assert.False(t, loading.ShowTable)
	assert.Empty(t, loading.Error)

	failed := NewAdminProductListPage(ProductListInput{Search: "widget", Error: "Network error", TotalPages: 4}, nil)
	assert.False(t, failed.ShowTable)
	assert.Equal(t, "Network error", failed.Error)
	assert.False(t, failed.Pagination.Show)

	banner := NewAdminProductListPage(ProductListInput{ActionError: "delete failed", Products: []catalog.Product{{ID: "x"}}}, nil)
	assert.True(t, banner.ShowTable)
	assert.Equal(t, "delete failed", banner.ActionError)
	assert.Len(t, banner.Rows, 1)
}

func TestProductListURL(t *testing.T) {
	assert.Equal(t, "/admin/products", ProductListURL(1, ""))
	assert.Equal(t, "/admin/products?page=3&q=red+shoe", ProductListURL(3, "red shoe"))
	assert.Equal(t, "/admin/products?q=x", ProductListURL(1, "x"))
}

func TestThumbResolverApplied(t *testing.T) {
	rows := ProductRows([]catalog.Product{{ID: "a", Images: []string{"k.png"}}, {ID: "b"}}, func(s string) string { return "https://cdn/" + s })
	assert.Equal(t, "https://cdn/k.png", rows[0].ThumbnailURL)
	assert.Equal(t, "", rows[1].ThumbnailURL)
}

func TestActivityFeed_OrdersThenLowStock(t *testing.T) {
	older := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	newer := older.Add(48 * time.Hour)
	feed := ActivityFeed(
		[]catalog.OrderSummary{
			{ID: "0123456789abcdef", Status: catalog.OrderShipped, User: catalog.Customer{Name: "Ada"}, CreatedAt: older},
			{ID: "short", Status: catalog.OrderPending, User: catalog.Customer{Name: "Bo"}, CreatedAt: newer},
		},
		[]catalog.Product{{ID: "p1", Name: "Cable", Stock: 2}},
		time.UTC,
	)

	require.Len(t, feed, 3)
	assert.Equal(t, ActivityOrder, feed[0].Kind)
	assert.Equal(t, "#01234567", feed[0].Ref)
	assert.Equal(t, "2026-01-01 09:00", feed[0].Time)
	assert.Equal(t, "shipped", feed[0].Status)
	assert.Equal(t, "#short", feed[1].Ref)
	assert.Equal(t, ActivityLowStock, feed[2].Kind)
	assert.Equal(t, "Cable", feed[2].Ref)
	assert.Equal(t, 2, feed[2].Stock)
	assert.True(t, feed[2].Warning)
}

func TestNewAdminDashboardPage(t *testing.T) {
	sum := catalog.DashboardSummary{
		TotalSales:     decimal.RequireFromString("1234.5"),
		TotalOrders:    10,
		TotalCustomers: 4,
		TotalProducts:  22,
		TopSellingProducts: []catalog.Product{
			{ID: "t1", Name: "First", SoldCount: 50, Price: decimal.NewFromInt(3)},
			{ID: "t2", Name: "Second", SoldCount: 20, Price: decimal.NewFromInt(4)},
		},
	}
	page := NewAdminDashboardPage(DashboardInput{Summary: sum}, nil, time.UTC)

	require.Len(t, page.Cards, 4)
	assert.Equal(t, "$1234.50", page.Cards[0].Value)
	assert.Equal(t, "10", page.Cards[1].Value)
	assert.Equal(t, 1, page.TopSellers[0].Rank)
	assert.Equal(t, 2, page.TopSellers[1].Rank)
	assert.Equal(t, 50, page.TopSellers[0].Sold)

	assert.True(t, NewAdminDashboardPage(DashboardInput{Loading: true}, nil, nil).Loading)
	failed := NewAdminDashboardPage(DashboardInput{Error: "down"}, nil, nil)
	assert.Equal(t, "down", failed.Error)
	assert.Empty(t, failed.Cards)
}
