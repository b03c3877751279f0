package save

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"station-reports/http-server/respond"
	"station-reports/internal/service/reports"
	"station-reports/internal/storage"
)

type Table2Saver interface {
	SaveTable2(ctx context.Context, req reports.SaveTable2Request) (*storage.Table2Record, error)
}

type Request struct {
	Date   string         `json:"date"`
	IsNew  bool           `json:"is_new"`
	Submit bool           `json:"submit"`
	Data   map[string]any `json:"data"`
}

func SaveTable2(log *slog.Logger, saver Table2Saver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.table2.SaveTable2"

		stationID, err := respond.StationID(r)
		if err != nil {
			respond.Error(w, log, op, err)
			return
		}

		var req Request
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Error("Неверный JSON", slog.String("op", op), slog.String("error", err.Error()))
			http.Error(w, "Неверные данные", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		rec, err := saver.SaveTable2(ctx, reports.SaveTable2Request{
			StationID: stationID,
			Date:      req.Date,
			IsNew:     req.IsNew,
			Submit:    req.Submit,
			Values:    req.Data,
		})
		if err != nil {
			respond.Error(w, log, op, err)
			return
		}

		if req.IsNew {
			render.Status(r, http.StatusCreated)
		}
		render.JSON(w, r, rec)
	}
}
