// Package productlist is the searchable, paginated, deletable product
// catalog view.
//
// The only inputs to the list query are the current page and the search
// term. Any change to either issues a fetch (see NeedsFetch); deleting a
// product re-issues the active query. Out-of-range pages are passed through
// to the backend unchanged.
package productlist

import (
	"context"
	"log/slog"
	"sync"

	"github.com/atikurraha/admin-frontend/internal/modules/catalog"
	"github.com/atikurraha/admin-frontend/internal/ui/viewstate"
)

const DeletePrompt = "Are you sure you want to delete this product?"

// API is the part of the backend client the list needs.
type API interface {
	ListProducts(ctx context.Context, page int, search string) (catalog.ProductPage, error)
	DeleteProduct(ctx context.Context, id string) error
}

// Query is the (page, search) pair a fetch is issued for.
type Query struct {
	Page   int
	Search string
}

// InitialQuery is the query a freshly mounted list fetches.
var InitialQuery = Query{Page: 1}

// NeedsFetch is the re-fetch trigger: a fetch is due exactly when the query
// changed.
func NeedsFetch(prev, next Query) bool { return prev != next }

// State is what the list renders from.
type State struct {
	Query      Query
	Products   []catalog.Product
	TotalPages int
	Loading    bool
	// Error is a list fetch failure; it replaces the table.
	Error string
	// ActionError is a delete failure; the table stays visible.
	ActionError string
	Mounted     bool
}

// ConfirmationRequest is handed to whatever confirmation UI the front-end
// uses before ConfirmDelete is called.
type ConfirmationRequest struct {
	ProductID   string
	ProductName string
	Prompt      string
	Query       Query
}

type View struct {
	api    API
	logger *slog.Logger
	loader *viewstate.Loader[catalog.ProductPage]

	mu        sync.Mutex
	query     Query
	actionErr string
}

func New(api API, logger *slog.Logger) *View {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With(slog.String("view", "product_list"))
	return &View{
		api:    api,
		logger: logger,
		query:  InitialQuery,
		loader: viewstate.NewLoader[catalog.ProductPage]("product_list",
			viewstate.WithLogger(logger),
			viewstate.WithErrorMessage(catalog.Message),
		),
	}
}

// OnChange registers a callback fired after every state change.
func (v *View) OnChange(fn func()) { v.loader.OnChange(fn) }

// Mount starts the view with page 1 and an empty search and issues the
// initial fetch. Mounting an already mounted view does nothing.
func (v *View) Mount(ctx context.Context) {
	if !v.loader.Mount(ctx) {
		return
	}
	v.mu.Lock()
	v.query = InitialQuery
	v.actionErr = ""
	v.mu.Unlock()
	v.fetch(InitialQuery)
}

func (v *View) Unmount() { v.loader.Unmount() }

// SearchChanged applies one keystroke's worth of search input. The page
// resets to 1 in the same step, so the fetch never sees a stale page.
func (v *View) SearchChanged(text string) {
	v.setQuery(Query{Page: 1, Search: text})
}

// PageChanged moves to page. The value is not range-checked.
func (v *View) PageChanged(page int) {
	v.mu.Lock()
	q := Query{Page: page, Search: v.query.Search}
	v.mu.Unlock()
	v.setQuery(q)
}

func (v *View) setQuery(next Query) {
	v.mu.Lock()
	prev := v.query
	if !NeedsFetch(prev, next) {
		v.mu.Unlock()
		return
	}
	v.query = next
	v.actionErr = ""
	v.mu.Unlock()
	v.fetch(next)
}

// Refresh re-issues the current query.
func (v *View) Refresh() {
	v.mu.Lock()
	q := v.query
	v.mu.Unlock()
	v.fetch(q)
}

func (v *View) fetch(q Query) {
	v.loader.Load(func(ctx context.Context) (catalog.ProductPage, error) {
		return v.api.ListProducts(ctx, q.Page, q.Search)
	})
}

// RequestDelete builds the confirmation step for id. It does not touch the
// backend.
func (v *View) RequestDelete(id string) ConfirmationRequest {
	v.mu.Lock()
	q := v.query
	v.mu.Unlock()

	req := ConfirmationRequest{ProductID: id, Prompt: DeletePrompt, Query: q}
	for _, p := range v.loader.Snapshot().Data.Products {
		if p.ID == id {
			req.ProductName = p.Name
			break
		}
	}
	return req
}

// ConfirmDelete deletes id and, on success, re-fetches exactly once the
// query that was active when the delete started. If the query moved on
// while the delete was in flight, the list returns to that query so the
// refreshed rows and the query shown with them agree. On failure the
// message is recorded and the rows stay as they were.
func (v *View) ConfirmDelete(ctx context.Context, id string) error {
	v.mu.Lock()
	at := v.query
	v.mu.Unlock()

	if err := v.api.DeleteProduct(ctx, id); err != nil {
		if v.loader.Mounted() {
			v.mu.Lock()
			v.actionErr = catalog.Message(err)
			v.mu.Unlock()
		}
		v.logger.Warn("product_delete_failed", slog.String("product_id", id), slog.Any("err", err))
		return err
	}
	v.logger.Info("product_deleted", slog.String("product_id", id))

	v.mu.Lock()
	v.actionErr = ""
	if v.query != at {
		v.logger.Debug("product_delete_restores_query", slog.Any("at", at), slog.Any("was", v.query))
		v.query = at
	}
	v.mu.Unlock()
	v.fetch(at)
	return nil
}

// WaitIdle blocks until the newest fetch has settled or ctx is done.
func (v *View) WaitIdle(ctx context.Context) error { return v.loader.WaitIdle(ctx) }

func (v *View) State() State {
	snap := v.loader.Snapshot()
	v.mu.Lock()
	defer v.mu.Unlock()

	st := State{
		Query:       v.query,
		Products:    snap.Data.Products,
		TotalPages:  snap.Data.Pages,
		Loading:     snap.Loading,
		Error:       snap.Error,
		ActionError: v.actionErr,
		Mounted:     v.loader.Mounted(),
	}
	if st.Error != "" {
		// a fetch failure outranks an older delete banner
		st.ActionError = ""
	}
	return st
}
