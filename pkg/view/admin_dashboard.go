package view

import (
	"strconv"
	"time"

	"github.com/atikurraha/admin-frontend/internal/modules/catalog"
)

const (
	LoadingDashboard = "Loading dashboard..."
	TimeLayout       = "2006-01-02 15:04"
)

type StatCard struct {
	Title string `json:"title"`
	Value string `json:"value"`
	Icon  string `json:"icon"`
}

type TopSeller struct {
	Rank         int    `json:"rank"`
	ID           string `json:"id"`
	Name         string `json:"name"`
	ThumbnailURL string `json:"thumbnail_url"`
	Price        string `json:"price"`
	Sold         int    `json:"sold"`
}

type ActivityKind string

const (
	ActivityOrder    ActivityKind = "order"
	ActivityLowStock ActivityKind = "low_stock"
)

type ActivityItem struct {
	Kind     ActivityKind `json:"kind"`
	Key      string       `json:"key"`
	Ref      string       `json:"ref"`
	Customer string       `json:"customer,omitempty"`
	Time     string       `json:"time,omitempty"`
	Status   string       `json:"status,omitempty"`
	Stock    int          `json:"stock"`
	Warning  bool         `json:"warning"`
}

type AdminDashboardPage struct {
	Loading    bool           `json:"loading"`
	Error      string         `json:"error,omitempty"`
	Cards      []StatCard     `json:"cards"`
	TopSellers []TopSeller    `json:"top_sellers"`
	Activity   []ActivityItem `json:"activity"`
}

// ShortOrderRef is "#" plus the first eight characters of the order id.
func ShortOrderRef(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return "#" + id
}

func StatCards(sum catalog.DashboardSummary) []StatCard {
	return []StatCard{
		{Title: "Total Sales", Value: Money(sum.TotalSales), Icon: "dollar"},
		{Title: "Total Orders", Value: strconv.Itoa(sum.TotalOrders), Icon: "cart"},
		{Title: "Total Customers", Value: strconv.Itoa(sum.TotalCustomers), Icon: "users"},
		{Title: "Total Products", Value: strconv.Itoa(sum.TotalProducts), Icon: "box"},
	}
}

// TopSellers keeps the backend's ranking; rank is the 1-based position.
func TopSellers(items []catalog.Product, thumb ThumbResolver) []TopSeller {
	out := make([]TopSeller, 0, len(items))
	for i, p := range items {
		out = append(out, TopSeller{
			Rank:         i + 1,
			ID:           p.ID,
			Name:         p.Name,
			ThumbnailURL: thumb.resolve(p.Thumbnail()),
			Price:        Money(p.Price),
			Sold:         p.SoldCount,
		})
	}
	return out
}

// ActivityFeed lists recent orders first and then low-stock warnings. The
// two groups are not interleaved by time.
func ActivityFeed(orders []catalog.OrderSummary, lowStock []catalog.Product, loc *time.Location) []ActivityItem {
	if loc == nil {
		loc = time.Local
	}
	out := make([]ActivityItem, 0, len(orders)+len(lowStock))
	for _, o := range orders {
		out = append(out, ActivityItem{
			Kind:     ActivityOrder,
			Key:      "order-" + o.ID,
			Ref:      ShortOrderRef(o.ID),
			Customer: o.User.Name,
			Time:     o.CreatedAt.In(loc).Format(TimeLayout),
			Status:   string(o.Status),
		})
	}
	for _, p := range lowStock {
		out = append(out, ActivityItem{
			Kind:    ActivityLowStock,
			Key:     "stock-" + p.ID,
			Ref:     p.Name,
			Stock:   p.Stock,
			Warning: true,
		})
	}
	return out
}

// DashboardInput is the dashboard view-state the page is built from.
type DashboardInput struct {
	Summary catalog.DashboardSummary
	Loading bool
	Error   string
}

func NewAdminDashboardPage(in DashboardInput, thumb ThumbResolver, loc *time.Location) AdminDashboardPage {
	switch {
	case in.Loading:
		return AdminDashboardPage{Loading: true}
	case in.Error != "":
		return AdminDashboardPage{Error: in.Error}
	}
	return AdminDashboardPage{
		Cards:      StatCards(in.Summary),
		TopSellers: TopSellers(in.Summary.TopSellingProducts, thumb),
		Activity:   ActivityFeed(in.Summary.RecentOrders, in.Summary.LowStockProducts, loc),
	}
}
