package mockapi

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atikurraha/admin-frontend/internal/modules/catalog"
)

func newBackend(t *testing.T, store *Store, opts Options) *catalog.Client {
	t.Helper()
	opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(NewServer(store, opts).Router())
	t.Cleanup(srv.Close)
	return catalog.NewClient(srv.URL+"/api", 2*time.Second, opts.Logger)
}

func TestStore_ListPagesAndSearch(t *testing.T) {
	s := Seed(25, time.Now())

	p1 := s.List(1, "")
	assert.Equal(t, 3, p1.Pages)
	assert.Len(t, p1.Products, 10)
	assert.Len(t, s.List(3, "").Products, 5)
	assert.Empty(t, s.List(9, "").Products, "past the end")
	assert.Empty(t, s.List(0, "").Products)

	hubs := s.List(1, "hub")
	for _, p := range hubs.Products {
		assert.Contains(t, p.Name, "Hub")
	}
	assert.Len(t, s.List(1, "sku-0001").Products, 1)
}

func TestClientAgainstMock(t *testing.T) {
	store := Seed(12, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))
	client := newBackend(t, store, Options{})
	ctx := context.Background()

	page, err := client.ListProducts(ctx, 1, "")
	require.NoError(t, err)
	assert.Equal(t, 2, page.Pages)
	require.NotEmpty(t, page.Products)

	victim := page.Products[0].ID
	require.NoError(t, client.DeleteProduct(ctx, victim))

	err = client.DeleteProduct(ctx, victim)
	require.Error(t, err)
	assert.Equal(t, "Product not found", catalog.Message(err))

	sum, err := client.DashboardSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 11, sum.TotalProducts)
	assert.Len(t, sum.RecentOrders, recentOrders)
	assert.True(t, sum.RecentOrders[0].CreatedAt.After(sum.RecentOrders[1].CreatedAt))
	for _, p := range sum.LowStockProducts {
		assert.LessOrEqual(t, p.Stock, LowStockThreshold)
	}
}

func TestSummary_TotalsAndTopSellers(t *testing.T) {
	s := NewStore(10)
	s.Add(catalog.Product{ID: "a", Price: decimal.RequireFromString("2.50"), SoldCount: 4, Stock: 50})
	s.Add(catalog.Product{ID: "b", Price: decimal.NewFromInt(10), SoldCount: 1, Stock: 2})

	sum := s.Summary()
	assert.True(t, decimal.NewFromInt(20).Equal(sum.TotalSales))
	assert.Equal(t, "a", sum.TopSellingProducts[0].ID)
	require.Len(t, sum.LowStockProducts, 1)
	assert.Equal(t, "b", sum.LowStockProducts[0].ID)
}

func TestChaos_FailureRate(t *testing.T) {
	client := newBackend(t, Seed(3, time.Now()), Options{FailureRate: 1})
	_, err := client.ListProducts(context.Background(), 1, "")
	require.Error(t, err)
	assert.Equal(t, "Simulated server failure", catalog.Message(err))
}
