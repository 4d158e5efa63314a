package catalog

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the backend's product record as the admin views see it.
// Price is kept as a decimal to avoid float rounding in the totals.
type Product struct {
	ID        string          `json:"_id"       validate:"required"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"     validate:"gte=0"`
	IsActive  bool            `json:"isActive"`
	Images    []string        `json:"images"`
	SoldCount int             `json:"soldCount" validate:"gte=0"`
}

// Thumbnail returns the first image, or "" when the product has none.
func (p Product) Thumbnail() string {
	if len(p.Images) == 0 {
		return ""
	}
	return p.Images[0]
}

// ProductPage is one page of a product list query.
type ProductPage struct {
	Products []Product `json:"products" validate:"dive"`
	Pages    int       `json:"pages"    validate:"gte=0"`
}

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

type Customer struct {
	Name string `json:"name"`
}

// OrderSummary is the short order form used by the dashboard feed.
type OrderSummary struct {
	ID        string      `json:"_id"       validate:"required"`
	Status    OrderStatus `json:"status"`
	User      Customer    `json:"user"`
	CreatedAt time.Time   `json:"createdAt"`
}

// DashboardSummary is an aggregate snapshot, always replaced wholesale.
type DashboardSummary struct {
	TotalSales         decimal.Decimal `json:"totalSales"`
	TotalOrders        int             `json:"totalOrders"        validate:"gte=0"`
	TotalCustomers     int             `json:"totalCustomers"     validate:"gte=0"`
	TotalProducts      int             `json:"totalProducts"      validate:"gte=0"`
	TopSellingProducts []Product       `json:"topSellingProducts" validate:"dive"`
	RecentOrders       []OrderSummary  `json:"recentOrders"       validate:"dive"`
	LowStockProducts   []Product       `json:"lowStockProducts"   validate:"dive"`
}
