package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"station-reports/http-server/respond"
	"station-reports/internal/service/dashboard"
	"station-reports/internal/service/reconcile"
)

type DashboardReader interface {
	Dashboard(ctx context.Context, from, to *time.Time) (*dashboard.Dashboard, error)
	Online(ctx context.Context) ([]dashboard.Presence, error)
	Table2Grid(ctx context.Context, date time.Time) (*dashboard.Grid, error)
}

// optionalDate: пустой параметр означает отсутствие границы.
func optionalDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	d, err := reconcile.ParseDate(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func GetDashboard(log *slog.Logger, reader DashboardReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.dashboard.GetDashboard"

		from, err := optionalDate(r.URL.Query().Get("from"))
		if err != nil {
			respond.Error(w, log, op, err)
			return
		}
		to, err := optionalDate(r.URL.Query().Get("to"))
		if err != nil {
			respond.Error(w, log, op, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		dash, err := reader.Dashboard(ctx, from, to)
		if err != nil {
			respond.Error(w, log, op, err)
			return
		}

		render.JSON(w, r, dash)
	}
}

func GetOnline(log *slog.Logger, reader DashboardReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.dashboard.GetOnline"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		list, err := reader.Online(ctx)
		if err != nil {
			respond.Error(w, log, op, err)
			return
		}
		if list == nil {
			list = []dashboard.Presence{}
		}

		render.JSON(w, r, list)
	}
}

func GetTable2Grid(log *slog.Logger, reader DashboardReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.dashboard.GetTable2Grid"

		date, err := reconcile.ParseDate(chi.URLParam(r, "date"))
		if err != nil {
			respond.Error(w, log, op, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		grid, err := reader.Table2Grid(ctx, date)
		if err != nil {
			respond.Error(w, log, op, err)
			return
		}

		render.JSON(w, r, grid)
	}
}
