package view

import (
	"net/url"
	"strconv"

	"github.com/atikurraha/admin-frontend/internal/modules/catalog"
)

const (
	NewProductURL   = "/admin/products/new"
	ProductsURL     = "/admin/products"
	LoadingProducts = "Loading..."
)

// EditProductURL is the external router's edit target for id.
func EditProductURL(id string) string { return ProductsURL + "/" + url.PathEscape(id) }

func DeleteProductURL(id string) string { return EditProductURL(id) + "/delete" }

// ProductListURL builds the list URL for a page and search term.
func ProductListURL(page int, search string) string {
	q := url.Values{}
	if search != "" {
		q.Set("q", search)
	}
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	if len(q) == 0 {
		return ProductsURL
	}
	return ProductsURL + "?" + q.Encode()
}

type AdminProductRow struct {
	ID           string `json:"id"`
	ThumbnailURL string `json:"thumbnail_url"`
	Name         string `json:"name"`
	SKU          string `json:"sku"`
	Price        string `json:"price"`
	Stock        int    `json:"stock"`
	Active       bool   `json:"active"`
	StatusLabel  string `json:"status_label"`
	StatusClass  string `json:"status_class"`
	EditURL      string `json:"edit_url"`
	DeleteURL    string `json:"delete_url"`
}

type PageLink struct {
	Page     int    `json:"page"`
	URL      string `json:"url"`
	Disabled bool   `json:"disabled"`
}

type PageButton struct {
	Number int    `json:"number"`
	URL    string `json:"url"`
	Active bool   `json:"active"`
}

// Pagination is omitted entirely (Show=false) when there is at most one page.
type Pagination struct {
	Show     bool         `json:"show"`
	Previous PageLink     `json:"previous"`
	Next     PageLink     `json:"next"`
	Pages    []PageButton `json:"pages"`
}

// AdminProductListPage is the product list in one of three mutually
// exclusive shapes: Loading, Error, or the table (ShowTable).
type AdminProductListPage struct {
	Search        string            `json:"search"`
	Page          int               `json:"page"`
	Loading       bool              `json:"loading"`
	Error         string            `json:"error,omitempty"`
	ActionError   string            `json:"action_error,omitempty"`
	ShowTable     bool              `json:"show_table"`
	Rows          []AdminProductRow `json:"rows"`
	Pagination    Pagination        `json:"pagination"`
	NewProductURL string            `json:"new_product_url"`
	Flash         *Flash            `json:"flash,omitempty"`
}

// NewPagination builds the controls for current out of total pages. Every
// page gets a button; Previous/Next are disabled exactly at the first/last
// page.
func NewPagination(current, total int, link func(page int) string) Pagination {
	if total <= 1 {
		return Pagination{}
	}
	p := Pagination{
		Show:     true,
		Previous: PageLink{Page: current - 1, URL: link(current - 1), Disabled: current == 1},
		Next:     PageLink{Page: current + 1, URL: link(current + 1), Disabled: current == total},
		Pages:    make([]PageButton, 0, total),
	}
	for i := 1; i <= total; i++ {
		p.Pages = append(p.Pages, PageButton{Number: i, URL: link(i), Active: i == current})
	}
	return p
}

// ProductRows maps one page of products to table rows, in order.
func ProductRows(items []catalog.Product, thumb ThumbResolver) []AdminProductRow {
	out := make([]AdminProductRow, 0, len(items))
	for _, p := range items {
		row := AdminProductRow{
			ID:           p.ID,
			ThumbnailURL: thumb.resolve(p.Thumbnail()),
			Name:         p.Name,
			SKU:          p.SKU,
			Price:        Money(p.Price),
			Stock:        p.Stock,
			Active:       p.IsActive,
			StatusLabel:  "Inactive",
			StatusClass:  "inactive",
			EditURL:      EditProductURL(p.ID),
			DeleteURL:    DeleteProductURL(p.ID),
		}
		if p.IsActive {
			row.StatusLabel, row.StatusClass = "Active", "active"
		}
		out = append(out, row)
	}
	return out
}

// ProductListInput is the slice of list view-state the page is built from.
type ProductListInput struct {
	Search      string
	Page        int
	TotalPages  int
	Products    []catalog.Product
	Loading     bool
	Error       string
	ActionError string
}

func NewAdminProductListPage(in ProductListInput, thumb ThumbResolver) AdminProductListPage {
	page := AdminProductListPage{
		Search:        in.Search,
		Page:          in.Page,
		NewProductURL: NewProductURL,
		Rows:          []AdminProductRow{},
	}
	switch {
	case in.Loading:
		page.Loading = true
	case in.Error != "":
		page.Error = in.Error
	default:
		page.ShowTable = true
		page.ActionError = in.ActionError
		page.Rows = ProductRows(in.Products, thumb)
		page.Pagination = NewPagination(in.Page, in.TotalPages, func(n int) string {
			return ProductListURL(n, in.Search)
		})
	}
	return page
}

// DeleteConfirmPage is the confirmation step shown before a delete.
type DeleteConfirmPage struct {
	ProductID   string
	ProductName string
	Prompt      string
	ActionURL   string
	CancelURL   string
}
