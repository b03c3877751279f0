package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"station-reports/http-server/respond"
	"station-reports/internal/storage"
)

type Table2Reader interface {
	GetTable2(ctx context.Context, stationID int64, rawDate string) (*storage.Table2Record, error)
	ListTable2(ctx context.Context, stationID int64) ([]storage.DateStatus, error)
}

func GetTable2(log *slog.Logger, reader Table2Reader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.table2.GetTable2"

		stationID, err := respond.StationID(r)
		if err != nil {
			respond.Error(w, log, op, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		rec, err := reader.GetTable2(ctx, stationID, chi.URLParam(r, "date"))
		if err != nil {
			respond.Error(w, log, op, err)
			return
		}

		render.JSON(w, r, rec)
	}
}

func ListTable2(log *slog.Logger, reader Table2Reader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.table2.ListTable2"

		stationID, err := respond.StationID(r)
		if err != nil {
			respond.Error(w, log, op, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		dates, err := reader.ListTable2(ctx, stationID)
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
