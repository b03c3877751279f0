package update

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"station-reports/http-server/respond"
)

type Table2Updater interface {
	SubmitTable2(ctx context.Context, stationID int64, rawDate string) (time.Time, error)
	DeleteTable2(ctx context.Context, stationID int64, rawDate string) error
}

type SubmitResponse struct {
	SubmittedAt time.Time `json:"submitted_at"`
}

func SubmitTable2(log *slog.Logger, upd Table2Updater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.table2.SubmitTable2"

		stationID, err := respond.StationID(r)
		if err != nil {
			respond.Error(w, log, op, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		at, err := upd.SubmitTable2(ctx, stationID, chi.URLParam(r, "date"))
		if err != nil {
			respond.Error(w, log, op, err)
			return
		}

		render.JSON(w, r, SubmitResponse{SubmittedAt: at})
	}
}

func DeleteTable2(log *slog.Logger, upd Table2Updater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.table2.DeleteTable2"

		stationID, err := respond.StationID(r)
		if err != nil {
			respond.Error(w, log, op, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := upd.DeleteTable2(ctx, stationID, chi.URLParam(r, "date")); err != nil {
			respond.Error(w, log, op, err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
