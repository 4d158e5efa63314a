package productlist

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atikurraha/admin-frontend/internal/modules/catalog"
)

// stubAPI implements API in memory and records every call.
type stubAPI struct {
	mu        sync.Mutex
	calls     []Query
	deletes   []string
	pages     map[Query]catalog.ProductPage
	listErr   error
	deleteErr error
	// deleteHold, when set, blocks DeleteProduct until closed
	deleteHold chan struct{}
	// hold, when set for a query, blocks that list call until closed
	hold map[Query]chan struct{}
}

func newStubAPI() *stubAPI {
	return &stubAPI{pages: map[Query]catalog.ProductPage{}, hold: map[Query]chan struct{}{}}
}

func (s *stubAPI) ListProducts(ctx context.Context, page int, search string) (catalog.ProductPage, error) {
	q := Query{Page: page, Search: search}
	s.mu.Lock()
	s.calls = append(s.calls, q)
	wait := s.hold[q]
	res, err := s.pages[q], s.listErr
	s.mu.Unlock()

	if wait != nil {
		<-wait
	}
	if err != nil {
		return catalog.ProductPage{}, err
	}
	return res, nil
}

func (s *stubAPI) DeleteProduct(ctx context.Context, id string) error {
	s.mu.Lock()
	s.deletes = append(s.deletes, id)
	wait, err := s.deleteHold, s.deleteErr
	s.mu.Unlock()

	if wait != nil {
		<-wait
	}
	return err
}

func (s *stubAPI) Calls() []Query {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Query(nil), s.calls...)
}

func product(id, name string) catalog.Product {
	return catalog.Product{ID: id, Name: name, SKU: "SKU-" + id, Price: decimal.RequireFromString("9.99"), Stock: 3, IsActive: true}
}

func settle(t *testing.T, v *View) State {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, v.WaitIdle(ctx))
	return v.State()
}

func mounted(t *testing.T, api *stubAPI) *View {
	t.Helper()
	v := New(api, nil)
	v.Mount(context.Background())
	t.Cleanup(v.Unmount)
	return v
}

func TestMount_FetchesFirstPageWithEmptySearch(t *testing.T) {
	api := newStubAPI()
	api.pages[Query{1, ""}] = catalog.ProductPage{Products: []catalog.Product{product("a", "A"), product("b", "B")}, Pages: 3}

	v := mounted(t, api)
	st := settle(t, v)

	assert.Equal(t, []Query{{1, ""}}, api.Calls())
	assert.False(t, st.Loading)
	assert.Empty(t, st.Error)
	assert.Len(t, st.Products, 2)
	assert.Equal(t, 3, st.TotalPages)
	assert.Equal(t, Query{1, ""}, st.Query)
}

func TestMount_Twice_DoesNotRefetch(t *testing.T) {
	api := newStubAPI()
	v := mounted(t, api)
	settle(t, v)
	v.Mount(context.Background())
	settle(t, v)

	assert.Len(t, api.Calls(), 1)
}

func TestFetchFailure_ShowsErrorAndKeepsNoTable(t *testing.T) {
	api := newStubAPI()
	api.listErr = &catalog.RequestError{Message: "Network error"}

	v := mounted(t, api)
	st := settle(t, v)

	assert.Equal(t, "Network error", st.Error)
	assert.Empty(t, st.Products)
}

func TestSearchChanged_ResetsPageToOne(t *testing.T) {
	api := newStubAPI()
	v := mounted(t, api)
	settle(t, v)

	v.PageChanged(3)
	settle(t, v)
	v.SearchChanged("w")
	settle(t, v)
	v.SearchChanged("wi")
	st := settle(t, v)

	assert.Equal(t, []Query{{1, ""}, {3, ""}, {1, "w"}, {1, "wi"}}, api.Calls())
	assert.Equal(t, Query{1, "wi"}, st.Query)
}

func TestSearchChanged_SameTextOnPageOneDoesNotRefetch(t *testing.T) {
	api := newStubAPI()
	v := mounted(t, api)
	settle(t, v)

	v.SearchChanged("")
	settle(t, v)
	assert.Len(t, api.Calls(), 1)
}

func TestPageChanged_KeepsSearchAndIsNotRangeChecked(t *testing.T) {
	api := newStubAPI()
	v := mounted(t, api)
	settle(t, v)
	v.SearchChanged("gadget")
	settle(t, v)

	v.PageChanged(99)
	st := settle(t, v)

	calls := api.Calls()
	assert.Equal(t, Query{99, "gadget"}, calls[len(calls)-1])
	assert.Equal(t, 99, st.Query.Page)
}

func TestSuccessAfterFailure_ClearsError(t *testing.T) {
	api := newStubAPI()
	api.listErr = errors.New("down")
	v := mounted(t, api)
	require.Equal(t, "down", settle(t, v).Error)

	api.mu.Lock()
	api.listErr = nil
	api.pages[Query{2, ""}] = catalog.ProductPage{Products: []catalog.Product{product("x", "X")}, Pages: 2}
	api.mu.Unlock()

	v.PageChanged(2)
	st := settle(t, v)
	assert.Empty(t, st.Error)
	assert.Len(t, st.Products, 1)
}

func TestConfirmDelete_RefetchesSameQueryOnce(t *testing.T) {
	api := newStubAPI()
	api.pages[Query{2, "wid"}] = catalog.ProductPage{Products: []catalog.Product{product("x", "X")}, Pages: 2}
	v := mounted(t, api)
	settle(t, v)
	v.SearchChanged("wid")
	settle(t, v)
	v.PageChanged(2)
	settle(t, v)

	before := len(api.Calls())
	req := v.RequestDelete("x")
	assert.Equal(t, "X", req.ProductName)
	assert.Equal(t, DeletePrompt, req.Prompt)
	assert.Equal(t, before, len(api.Calls()), "requesting confirmation must not hit the backend")

	api.mu.Lock()
	api.pages[Query{2, "wid"}] = catalog.ProductPage{Products: nil, Pages: 2}
	api.mu.Unlock()

	require.NoError(t, v.ConfirmDelete(context.Background(), "x"))
	st := settle(t, v)

	calls := api.Calls()
	require.Len(t, calls, before+1)
	assert.Equal(t, Query{2, "wid"}, calls[len(calls)-1])
	assert.Equal(t, []string{"x"}, api.deletes)
	// an emptied last page stays where it is
	assert.Equal(t, 2, st.Query.Page)
	assert.Empty(t, st.Products)
}

func TestConfirmDelete_QueryMovedMidDelete_RefetchesPreDeleteQuery(t *testing.T) {
	api := newStubAPI()
	api.pages[Query{1, ""}] = catalog.ProductPage{Products: []catalog.Product{product("a", "A")}, Pages: 3}
	api.deleteHold = make(chan struct{})
	v := mounted(t, api)
	settle(t, v)

	done := make(chan error, 1)
	go func() { done <- v.ConfirmDelete(context.Background(), "a") }()
	require.Eventually(t, func() bool {
		api.mu.Lock()
		defer api.mu.Unlock()
		return len(api.deletes) == 1
	}, time.Second, time.Millisecond)

	v.PageChanged(3)
	settle(t, v)
	before := len(api.Calls())

	close(api.deleteHold)
	require.NoError(t, <-done)
	st := settle(t, v)

	calls := api.Calls()
	require.Len(t, calls, before+1, "exactly one re-fetch after the delete")
	assert.Equal(t, Query{1, ""}, calls[len(calls)-1])
	assert.Equal(t, Query{1, ""}, st.Query)
}

func TestConfirmDelete_FailureKeepsListVisible(t *testing.T) {
	api := newStubAPI()
	api.pages[Query{1, ""}] = catalog.ProductPage{Products: []catalog.Product{product("a", "A")}, Pages: 1}
	api.deleteErr = &catalog.RequestError{Message: "Request failed with status code 500"}
	v := mounted(t, api)
	settle(t, v)

	err := v.ConfirmDelete(context.Background(), "a")
	require.Error(t, err)
	st := settle(t, v)

	assert.Len(t, api.Calls(), 1, "no re-fetch after a failed delete")
	assert.Empty(t, st.Error)
	assert.Equal(t, "Request failed with status code 500", st.ActionError)
	require.Len(t, st.Products, 1)
	assert.Equal(t, "a", st.Products[0].ID)

	v.PageChanged(2)
	assert.Empty(t, settle(t, v).ActionError)
}

func TestOutOfOrderResponses_NewestIssuedWins(t *testing.T) {
	api := newStubAPI()
	v := mounted(t, api)
	settle(t, v)

	slow := make(chan struct{})
	api.mu.Lock()
	api.hold[Query{1, "w"}] = slow
	api.pages[Query{1, "w"}] = catalog.ProductPage{Products: []catalog.Product{product("old", "Old")}, Pages: 1}
	api.pages[Query{1, "wi"}] = catalog.ProductPage{Products: []catalog.Product{product("new", "New")}, Pages: 1}
	api.mu.Unlock()

	v.SearchChanged("w")
	v.SearchChanged("wi")
	st := settle(t, v)
	require.Len(t, st.Products, 1)
	assert.Equal(t, "new", st.Products[0].ID)

	close(slow)
	time.Sleep(20 * time.Millisecond)

	st = v.State()
	require.Len(t, st.Products, 1)
	assert.Equal(t, "new", st.Products[0].ID)
	assert.Equal(t, Query{1, "wi"}, st.Query)
}

func TestUnmount_LateResponseIsIgnored(t *testing.T) {
	api := newStubAPI()
	hold := make(chan struct{})
	api.hold[Query{1, ""}] = hold
	api.pages[Query{1, ""}] = catalog.ProductPage{Products: []catalog.Product{product("a", "A")}, Pages: 1}

	v := New(api, nil)
	v.Mount(context.Background())
	v.Unmount()
	close(hold)
	time.Sleep(20 * time.Millisecond)

	st := v.State()
	assert.False(t, st.Mounted)
	assert.Empty(t, st.Products)
}

func TestNeedsFetch(t *testing.T) {
	assert.False(t, NeedsFetch(Query{1, "a"}, Query{1, "a"}))
	assert.True(t, NeedsFetch(Query{1, "a"}, Query{2, "a"}))
	assert.True(t, NeedsFetch(Query{1, "a"}, Query{1, "ab"}))
}
