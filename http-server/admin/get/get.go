package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"station-reports/http-server/respond"
	"station-reports/internal/constants"
	"station-reports/internal/service/reports"
	"station-reports/internal/storage"
)

type AdminReader interface {
	AdminTable1Day(ctx context.Context, rawDate string) (*reports.AdminDay, error)
	SubmissionOverview(ctx context.Context, rt constants.ReportType, rawFrom, rawTo string) ([]reports.DateOverview, error)
}

// GetTable1Day - сводка таблицы 1 по всем станциям за дату.
func GetTable1Day(log *slog.Logger, reader AdminReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.GetTable1Day"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		day, err := reader.AdminTable1Day(ctx, chi.URLParam(r, "date"))
		if err != nil {
			respond.Error(w, log, op, err)
			return
		}

		render.JSON(w, r, day)
	}
}

// GetOverview - кто отправил и кто нет по каждой дате диапазона.
// Параметры: type (table1|table2), from, to.
func GetOverview(log *slog.Logger, reader AdminReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.GetOverview"

		q := r.URL.Query()
		rt := constants.ReportType(q.Get("type"))
		if rt == "" {
			rt = constants.ReportTable1
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		overview, err := reader.SubmissionOverview(ctx, rt, q.Get("from"), q.Get("to"))
		if err != nil {
			respond.Error(w, log, op, err)
			return
		}
		if overview == nil {
			overview = []reports.DateOverview{}
		}

		render.JSON(w, r, overview)
	}
}

type StationLister interface {
	ListStations(ctx context.Context) ([]storage.Station, error)
}

func GetStations(log *slog.Logger, lister StationLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.GetStations"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		list, err := lister.ListStations(ctx)
		if err != nil {
			respond.Error(w, log, op, err)
			return
		}
		if list == nil {
			list = []storage.Station{}
		}

		render.JSON(w, r, list)
	}
}
