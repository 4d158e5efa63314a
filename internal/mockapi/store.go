// Package mockapi is an in-memory stand-in for the catalog backend, used
// for local development and end-to-end tests of the client.
package mockapi

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/atikurraha/admin-frontend/internal/modules/catalog"
)

const (
	DefaultPageSize   = 10
	LowStockThreshold = 5
	topSellers        = 5
	recentOrders      = 5
)

type Store struct {
	mu        sync.RWMutex
	products  []catalog.Product
	orders    []catalog.OrderSummary
	customers int
	pageSize  int
}

func NewStore(pageSize int) *Store {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Store{pageSize: pageSize}
}

// Seed fills the store with n products and a handful of orders.
func Seed(n int, now time.Time) *Store {
	s := NewStore(DefaultPageSize)
	names := []string{"Widget", "Gadget", "Cable", "Adapter", "Charger", "Stand", "Sleeve", "Hub"}
	for i := 0; i < n; i++ {
		name := fmt.Sprintf("%s %d", names[i%len(names)], i+1)
		s.products = append(s.products, catalog.Product{
			ID:        uuid.NewString(),
			Name:      name,
			SKU:       fmt.Sprintf("SKU-%04d", i+1),
			Price:     decimal.NewFromInt(int64(5 + i%40)).Add(decimal.New(99, -2)),
			Stock:     (i * 7) % 30,
			IsActive:  i%5 != 0,
			Images:    []string{fmt.Sprintf("products/%04d.jpg", i+1)},
			SoldCount: (i * 13) % 90,
		})
	}
	statuses := []catalog.OrderStatus{catalog.OrderPending, catalog.OrderProcessing, catalog.OrderShipped, catalog.OrderDelivered, catalog.OrderCancelled}
	customers := []string{"Ada Lovelace", "Grace Hopper", "Alan Turing", "Barbara Liskov"}
	for i := 0; i < 8; i++ {
		s.orders = append(s.orders, catalog.OrderSummary{
			ID:        uuid.NewString(),
			Status:    statuses[i%len(statuses)],
			User:      catalog.Customer{Name: customers[i%len(customers)]},
			CreatedAt: now.Add(-time.Duration(i) * 3 * time.Hour).UTC(),
		})
	}
	s.customers = len(customers)
	return s
}

func (s *Store) Add(p catalog.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = append(s.products, p)
}

// List returns page (1-based) of the products whose name or SKU contains
// search, case-insensitively. Pages past the end are empty.
func (s *Store) List(page int, search string) catalog.ProductPage {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(strings.TrimSpace(search))
	matched := make([]catalog.Product, 0, len(s.products))
	for _, p := range s.products {
		if needle == "" || strings.Contains(strings.ToLower(p.Name), needle) || strings.Contains(strings.ToLower(p.SKU), needle) {
			matched = append(matched, p)
		}
	}

	pages := (len(matched) + s.pageSize - 1) / s.pageSize
	out := catalog.ProductPage{Products: []catalog.Product{}, Pages: pages}
	if page < 1 {
		return out
	}
	start := (page - 1) * s.pageSize
	if start >= len(matched) {
		return out
	}
	end := start + s.pageSize
	if end > len(matched) {
		end = len(matched)
	}
	out.Products = append(out.Products, matched[start:end]...)
	return out
}

// Delete removes id and reports whether it existed.
func (s *Store) Delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.products {
		if p.ID == id {
			s.products = append(s.products[:i], s.products[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Store) Summary() catalog.DashboardSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sum := catalog.DashboardSummary{
		TotalSales:         decimal.Zero,
		TotalOrders:        len(s.orders),
		TotalCustomers:     s.customers,
		TotalProducts:      len(s.products),
		TopSellingProducts: []catalog.Product{},
		RecentOrders:       []catalog.OrderSummary{},
		LowStockProducts:   []catalog.Product{},
	}
	for _, p := range s.products {
		sum.TotalSales = sum.TotalSales.Add(p.Price.Mul(decimal.NewFromInt(int64(p.SoldCount))))
		if p.Stock <= LowStockThreshold {
			sum.LowStockProducts = append(sum.LowStockProducts, p)
		}
	}

	top := append([]catalog.Product(nil), s.products...)
	sort.SliceStable(top, func(i, j int) bool { return top[i].SoldCount > top[j].SoldCount })
	if len(top) > topSellers {
		top = top[:topSellers]
	}
	sum.TopSellingProducts = append(sum.TopSellingProducts, top...)

	orders := append([]catalog.OrderSummary(nil), s.orders...)
	sort.SliceStable(orders, func(i, j int) bool { return orders[i].CreatedAt.After(orders[j].CreatedAt) })
	if len(orders) > recentOrders {
		orders = orders[:recentOrders]
	}
	sum.RecentOrders = append(sum.RecentOrders, orders...)
	return sum
}
