// Package catalog is the HTTP client for the shop backend's admin API.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Client talks to the backend REST API. It has no retry policy: a failed
// call is reported once and the caller decides what to show.
type Client struct {
	HTTP    *http.Client
	BaseURL string

	logger   *slog.Logger
	validate *validator.Validate
}

func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		HTTP:     &http.Client{Timeout: timeout},
		BaseURL:  strings.TrimRight(baseURL, "/"),
		logger:   logger,
		validate: validator.New(),
	}
}

// ListProducts calls GET products?page=&search=.
func (c *Client) ListProducts(ctx context.Context, page int, search string) (ProductPage, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("search", search)

	var out ProductPage
	if err := c.getJSON(ctx, "list_products", "/products?"+q.Encode(), &out); err != nil {
		return ProductPage{}, err
	}
	return out, nil
}

// DeleteProduct calls DELETE product/<id>. The response body is ignored.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	const op = "delete_product"
	res, err := c.do(ctx, op, http.MethodDelete, "/product/"+url.PathEscape(id))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	_, _ = io.Copy(io.Discard, res.Body)
	return nil
}

// DashboardSummary calls GET dashboard-summary.
func (c *Client) DashboardSummary(ctx context.Context) (DashboardSummary, error) {
	var out DashboardSummary
	if err := c.getJSON(ctx, "dashboard_summary", "/dashboard-summary", &out); err != nil {
		return DashboardSummary{}, err
	}
	return out, nil
}

func (c *Client) getJSON(ctx context.Context, op, path string, dst any) error {
	res, err := c.do(ctx, op, http.MethodGet, path)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if err := json.NewDecoder(res.Body).Decode(dst); err != nil {
		c.logger.LogAttrs(ctx, slog.LevelWarn, "catalog_decode_failed",
			slog.String("op", op),
			slog.Any("err", err),
		)
		return &RequestError{Op: op, Status: res.StatusCode, Message: msgInvalidResponse, Err: err}
	}
	if err := c.validate.Struct(dst); err != nil {
		c.logger.LogAttrs(ctx, slog.LevelWarn, "catalog_response_invalid",
			slog.String("op", op),
			slog.Any("err", err),
		)
		return &RequestError{Op: op, Status: res.StatusCode, Message: msgInvalidResponse, Err: err}
	}
	return nil
}

// do sends the request and turns transport failures and non-2xx statuses
// into *RequestError. On success the caller owns res.Body.
func (c *Client) do(ctx context.Context, op, method, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, nil)
	if err != nil {
		return nil, &RequestError{Op: op, Message: msgNetwork, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	res, err := c.HTTP.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, &RequestError{Op: op, Message: "Request cancelled", Err: err}
		}
		return nil, &RequestError{Op: op, Message: msgNetwork, Err: err}
	}

	c.logger.LogAttrs(ctx, slog.LevelDebug, "catalog_request",
		slog.String("op", op),
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", res.StatusCode),
		slog.Duration("latency", time.Since(start)),
	)

	if res.StatusCode < 200 || res.StatusCode > 299 {
		defer res.Body.Close()
		return nil, statusError(op, res.StatusCode, serverMessage(res.Body))
	}
	return res, nil
}

// serverMessage pulls {"message": ...} or {"error": ...} out of an error body.
func serverMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 64<<10))
	if err != nil || len(raw) == 0 {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	if m := strings.TrimSpace(payload.Message); m != "" {
		return m
	}
	return strings.TrimSpace(payload.Error)
}

func (c *Client) String() string { return fmt.Sprintf("catalog(%s)", c.BaseURL) }
