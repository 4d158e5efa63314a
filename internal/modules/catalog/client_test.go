package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBackend(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", 2*time.Second, nil)
}

func TestListProducts_SendsPageAndSearch(t *testing.T) {
	var gotPath, gotPage, gotSearch string
	c := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotPage = r.URL.Query().Get("page")
		gotSearch = r.URL.Query().Get("search")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"products":[
			{"_id":"a1","name":"Widget","sku":"W-1","price":19.9,"stock":4,"isActive":true,"images":["http://img/a.png","http://img/b.png"]},
			{"_id":"b2","name":"Gadget","sku":"G-1","price":"5.00","stock":0,"isActive":false,"images":[]}
		],"pages":3}`))
	})

	page, err := c.ListProducts(context.Background(), 2, "wid get")
	require.NoError(t, err)

	assert.Equal(t, "/products", gotPath)
	assert.Equal(t, "2", gotPage)
	assert.Equal(t, "wid get", gotSearch)
	require.Len(t, page.Products, 2)
	assert.Equal(t, 3, page.Pages)
	assert.Equal(t, "19.90", page.Products[0].Price.StringFixed(2))
	assert.Equal(t, "http://img/a.png", page.Products[0].Thumbnail())
	assert.Equal(t, "", page.Products[1].Thumbnail())
	assert.False(t, page.Products[1].IsActive)
}

func TestListProducts_StatusErrorUsesServerMessage(t *testing.T) {
	c := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"message":"database unavailable"}`))
	})

	_, err := c.ListProducts(context.Background(), 1, "")
	require.Error(t, err)

	var re *RequestError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, http.StatusInternalServerError, re.Status)
	assert.Equal(t, "database unavailable", Message(err))
}

func TestListProducts_StatusErrorWithoutBody(t *testing.T) {
	c := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.ListProducts(context.Background(), 1, "")
	assert.Equal(t, "Request failed with status code 502", Message(err))
}

func TestListProducts_RejectsInvalidPayload(t *testing.T) {
	c := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"products":[{"_id":"x","stock":-2}],"pages":1}`))
	})

	_, err := c.ListProducts(context.Background(), 1, "")
	assert.Equal(t, msgInvalidResponse, Message(err))
}

func TestListProducts_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c := NewClient(base, time.Second, nil)
	_, err := c.ListProducts(context.Background(), 1, "")
	assert.Equal(t, msgNetwork, Message(err))
}

func TestDeleteProduct(t *testing.T) {
	var method, path string
	c := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.EscapedPath()
		if r.URL.Path == "/product/missing" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"product not found"}`))
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.DeleteProduct(context.Background(), "p 1"))
	assert.Equal(t, http.MethodDelete, method)
	assert.Equal(t, "/product/p%201", path)

	err := c.DeleteProduct(context.Background(), "missing")
	assert.Equal(t, "product not found", Message(err))
}

func TestDashboardSummary(t *testing.T) {
	created := time.Date(2026, 3, 4, 10, 30, 0, 0, time.UTC)
	c := newBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/dashboard-summary", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"totalSales":     1234.5,
			"totalOrders":    12,
			"totalCustomers": 7,
			"totalProducts":  40,
			"topSellingProducts": []map[string]any{
				{"_id": "t1", "name": "Top", "price": 10, "soldCount": 99, "images": []string{"x.png"}},
			},
			"recentOrders": []map[string]any{
				{"_id": "0123456789abcdef", "status": "pending", "user": map[string]any{"name": "Ada"}, "createdAt": created},
			},
			"lowStockProducts": []map[string]any{
				{"_id": "l1", "name": "Low", "stock": 2},
			},
		})
	})

	sum, err := c.DashboardSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1234.50", sum.TotalSales.StringFixed(2))
	assert.Equal(t, 12, sum.TotalOrders)
	require.Len(t, sum.RecentOrders, 1)
	assert.Equal(t, OrderPending, sum.RecentOrders[0].Status)
	assert.Equal(t, "Ada", sum.RecentOrders[0].User.Name)
	assert.True(t, created.Equal(sum.RecentOrders[0].CreatedAt))
	require.Len(t, sum.LowStockProducts, 1)
	assert.Equal(t, 2, sum.LowStockProducts[0].Stock)
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "", Message(nil))
	assert.Equal(t, assert.AnError.Error(), Message(assert.AnError))
	assert.Equal(t, "boom", Message(&RequestError{Message: "boom"}))
}
