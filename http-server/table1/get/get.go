package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"station-reports/http-server/respond"
	"station-reports/internal/service/reports"
	"station-reports/internal/storage"
)

type Table1Reader interface {
	ListTable1(ctx context.Context, stationID int64) ([]storage.DateStatus, error)
	StationDay(ctx context.Context, stationID int64, rawDate string) (*reports.StationDayView, error)
}

// ListTable1 - даты отчетов станции, новые сверху.
func ListTable1(log *slog.Logger, reader Table1Reader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.table1.ListTable1"

		stationID, err := respond.StationID(r)
		if err != nil {
			respond.Error(w, log, op, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		dates, err := reader.ListTable1(ctx, stationID)
		if err != nil {
			respond.Error(w, log, op, err)
			return
		}
		if dates == nil {
			dates = []storage.DateStatus{}
		}

		render.JSON(w, r, dates)
	}
}

func GetTable1Day(log *slog.Logger, reader Table1Reader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.table1.GetTable1Day"

		stationID, err := respond.StationID(r)
		if err != nil {
			respond.Error(w, log, op, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		view, err := reader.StationDay(ctx, stationID, chi.URLParam(r, "date"))
		if err != nil {
			respond.Error(w, log, op, err)
			return
		}

		render.JSON(w, r, view)
	}
}
