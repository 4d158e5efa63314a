// Package dashboard is the one-shot admin summary view: it fetches the
// dashboard summary once per mount and never re-fetches on its own.
package dashboard

import (
	"context"
	"log/slog"

	"github.com/atikurraha/admin-frontend/internal/modules/catalog"
	"github.com/atikurraha/admin-frontend/internal/ui/viewstate"
)

type API interface {
	DashboardSummary(ctx context.Context) (catalog.DashboardSummary, error)
}

type State struct {
	Summary catalog.DashboardSummary
	HasData bool
	Loading bool
	Error   string
}

type View struct {
	api    API
	loader *viewstate.Loader[catalog.DashboardSummary]
}

func New(api API, logger *slog.Logger) *View {
	if logger == nil {
		logger = slog.Default()
	}
	return &View{
		api: api,
		loader: viewstate.NewLoader[catalog.DashboardSummary]("dashboard",
			viewstate.WithLogger(logger.With(slog.String("view", "dashboard"))),
			viewstate.WithErrorMessage(catalog.Message),
		),
	}
}

func (v *View) OnChange(fn func()) { v.loader.OnChange(fn) }

// Mount issues the single fetch for this mount. Repeated calls while
// mounted are no-ops, so re-rendering never triggers another request.
func (v *View) Mount(ctx context.Context) {
	if !v.loader.Mount(ctx) {
		return
	}
	v.loader.Load(v.api.DashboardSummary)
}

func (v *View) Unmount() { v.loader.Unmount() }

func (v *View) Mounted() bool { return v.loader.Mounted() }

func (v *View) WaitIdle(ctx context.Context) error { return v.loader.WaitIdle(ctx) }

func (v *View) State() State {
	s := v.loader.Snapshot()
	return State{
		Summary: s.Data,
		HasData: s.HasData,
		Loading: s.Loading,
		Error:   s.Error,
	}
}
