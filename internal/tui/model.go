// Package tui is a terminal front-end over the same product list and
// dashboard views the web pages use.
package tui

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atikurraha/admin-frontend/internal/ui/dashboard"
	"github.com/atikurraha/admin-frontend/internal/ui/productlist"
	"github.com/atikurraha/admin-frontend/pkg/view"
)

type screen int

const (
	screenProducts screen = iota
	screenDashboard
)

// API is the backend client both views fetch through.
type API interface {
	productlist.API
	dashboard.API
}

// changedMsg tells Update that a view's state moved.
type changedMsg struct{}

type deleteDoneMsg struct {
	id  string
	err error
}

type Model struct {
	ctx      context.Context
	products *productlist.View
	dash     *dashboard.View
	changes  chan struct{}

	screen    screen
	searching bool
	search    string
	cursor    int
	confirm   *productlist.ConfirmationRequest
	status    string
	quitting  bool
}

func New(ctx context.Context, api API, logger *slog.Logger) *Model {
	m := &Model{
		ctx:      ctx,
		products: productlist.New(api, logger),
		dash:     dashboard.New(api, logger),
		changes:  make(chan struct{}, 1),
	}
	m.products.OnChange(m.notify)
	m.dash.OnChange(m.notify)
	return m
}

func (m *Model) notify() {
	select {
	case m.changes <- struct{}{}:
	default:
	}
}

func (m *Model) waitForChange() tea.Cmd {
	ch := m.changes
	return func() tea.Msg {
		<-ch
		return changedMsg{}
	}
}

func (m *Model) Init() tea.Cmd {
	m.products.Mount(m.ctx)
	return m.waitForChange()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case changedMsg:
		m.clampCursor()
		return m, m.waitForChange()
	case deleteDoneMsg:
		if msg.err == nil {
			m.status = "Product deleted."
		} else {
			m.status = ""
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	if k.String() == "ctrl+c" {
		return m, m.quit()
	}
	if m.searching {
		return m.handleSearchKey(k)
	}
	if m.confirm != nil {
		return m.handleConfirmKey(k)
	}

	switch k.String() {
	case "q":
		return m, m.quit()
	case "tab":
		m.toggleScreen()
		return m, nil
	}
	if m.screen != screenProducts {
		return m, nil
	}

	st := m.products.State()
	switch k.String() {
	case "/":
		m.searching = true
		m.search = st.Query.Search
	case "left", "h":
		if st.Query.Page > 1 {
			m.products.PageChanged(st.Query.Page - 1)
		}
	case "right", "l":
		if st.Query.Page < st.TotalPages {
			m.products.PageChanged(st.Query.Page + 1)
		}
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(st.Products)-1 {
			m.cursor++
		}
	case "r":
		m.products.Refresh()
	case "d":
		if m.cursor < len(st.Products) && !st.Loading && st.Error == "" {
			req := m.products.RequestDelete(st.Products[m.cursor].ID)
			m.confirm = &req
		}
	}
	return m, nil
}

// handleSearchKey applies every edit as its own search change.
func (m *Model) handleSearchKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch k.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.searching = false
		return m, nil
	case tea.KeyBackspace:
		if r := []rune(m.search); len(r) > 0 {
			m.search = string(r[:len(r)-1])
			m.products.SearchChanged(m.search)
		}
	case tea.KeySpace:
		m.search += " "
		m.products.SearchChanged(m.search)
	case tea.KeyRunes:
		m.search += string(k.Runes)
		m.products.SearchChanged(m.search)
	}
	m.cursor = 0
	return m, nil
}

func (m *Model) handleConfirmKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	req := m.confirm
	m.confirm = nil
	switch k.String() {
	case "y", "Y":
		ctx, v, id := m.ctx, m.products, req.ProductID
		m.status = "Deleting..."
		return m, func() tea.Msg {
			return deleteDoneMsg{id: id, err: v.ConfirmDelete(ctx, id)}
		}
	default:
		m.status = "Delete cancelled."
		return m, nil
	}
}

// toggleScreen mounts the dashboard when shown and unmounts it when left,
// so every visit fetches a fresh summary.
func (m *Model) toggleScreen() {
	if m.screen == screenProducts {
		m.screen = screenDashboard
		m.dash.Mount(m.ctx)
		return
	}
	m.dash.Unmount()
	m.screen = screenProducts
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	m.products.Unmount()
	m.dash.Unmount()
	return tea.Quit
}

func (m *Model) clampCursor() {
	n := len(m.products.State().Products)
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	if m.screen == screenDashboard {
		m.renderDashboard(&b)
	} else {
		m.renderProducts(&b)
	}
	if m.status != "" {
		fmt.Fprintf(&b, "\n%s\n", m.status)
	}
	b.WriteString("\n" + m.help() + "\n")
	return b.String()
}

func (m *Model) help() string {
	switch {
	case m.searching:
		return "type to search • enter/esc: done"
	case m.confirm != nil:
		return "y: delete • any other key: cancel"
	case m.screen == screenDashboard:
		return "tab: products • q: quit"
	default:
		return "/: search • ←/→: page • ↑/↓: select • d: delete • r: reload • tab: dashboard • q: quit"
	}
}

func (m *Model) renderProducts(b *strings.Builder) {
	st := m.products.State()
	page := view.NewAdminProductListPage(view.ProductListInput{
		Search:      st.Query.Search,
		Page:        st.Query.Page,
		TotalPages:  st.TotalPages,
		Products:    st.Products,
		Loading:     st.Loading,
		Error:       st.Error,
		ActionError: st.ActionError,
	}, nil)

	search := page.Search
	if m.searching {
		search = m.search + "▏"
	}
	fmt.Fprintf(b, "Products   search: %s\n\n", search)

	switch {
	case page.Loading:
		b.WriteString(view.LoadingProducts + "\n")
		return
	case page.Error != "":
		fmt.Fprintf(b, "! %s\n", page.Error)
		return
	}
	if page.ActionError != "" {
		fmt.Fprintf(b, "! %s\n\n", page.ActionError)
	}

	tw := tabwriter.NewWriter(b, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\tNAME\tSKU\tPRICE\tSTOCK\tSTATUS")
	for i, r := range page.Rows {
		marker := " "
		if i == m.cursor {
			marker = ">"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n", marker, r.Name, r.SKU, r.Price, r.Stock, r.StatusLabel)
	}
	_ = tw.Flush()

	if p := page.Pagination; p.Show {
		b.WriteString("\n")
		b.WriteString(pagerLabel("< Prev", p.Previous.Disabled))
		for _, btn := range p.Pages {
			if btn.Active {
				fmt.Fprintf(b, " [%d]", btn.Number)
			} else {
				fmt.Fprintf(b, " %d", btn.Number)
			}
		}
		b.WriteString(" " + pagerLabel("Next >", p.Next.Disabled) + "\n")
	}

	if m.confirm != nil {
		name := m.confirm.ProductName
		if name == "" {
			name = m.confirm.ProductID
		}
		fmt.Fprintf(b, "\n%s (%s) [y/N]\n", m.confirm.Prompt, name)
	}
}

func pagerLabel(s string, disabled bool) string {
	if disabled {
		return "(" + s + ")"
	}
	return s
}

func (m *Model) renderDashboard(b *strings.Builder) {
	st := m.dash.State()
	page := view.NewAdminDashboardPage(view.DashboardInput{
		Summary: st.Summary,
		Loading: st.Loading,
		Error:   st.Error,
	}, nil, nil)

	b.WriteString("Dashboard\n\n")
	switch {
	case page.Loading:
		b.WriteString(view.LoadingDashboard + "\n")
		return
	case page.Error != "":
		fmt.Fprintf(b, "! %s\n", page.Error)
		return
	}

	for _, c := range page.Cards {
		fmt.Fprintf(b, "%-16s %s\n", c.Title, c.Value)
	}

	b.WriteString("\nTop selling products\n")
	for _, t := range page.TopSellers {
		fmt.Fprintf(b, "  %d. %s  %s  %d sold\n", t.Rank, t.Name, t.Price, t.Sold)
	}

	b.WriteString("\nRecent activity\n")
	for _, a := range page.Activity {
		switch a.Kind {
		case view.ActivityOrder:
			fmt.Fprintf(b, "  New order %s from %s  %s  %s\n", a.Ref, a.Customer, a.Time, a.Status)
		case view.ActivityLowStock:
			fmt.Fprintf(b, "  Low stock for %s  only %d left\n", a.Ref, a.Stock)
		}
	}
}
