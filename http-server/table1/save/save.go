package save

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"station-reports/http-server/respond"
	"station-reports/internal/service/reports"
)

type Table1Saver interface {
	SaveTable1(ctx context.Context, req reports.SaveTable1Request) (*reports.SaveTable1Result, error)
}

// Request - форма терминала: значения дня и ночи, общие поля и ручные значения итога.
type Request struct {
	Date   string         `json:"date"`
	Block  int            `json:"block"`
	IsNew  bool           `json:"is_new"`
	Submit bool           `json:"submit"`
	Day    map[string]any `json:"day"`
	Night  map[string]any `json:"night"`
	Common map[string]any `json:"common"`
	Manual map[string]any `json:"manual"`
}

func SaveTable1(log *slog.Logger, saver Table1Saver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.table1.SaveTable1"

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

		res, err := saver.SaveTable1(ctx, reports.SaveTable1Request{
			StationID: stationID,
			Date:      req.Date,
			Block:     req.Block,
			IsNew:     req.IsNew,
			Submit:    req.Submit,
			Day:       req.Day,
			Night:     req.Night,
			Common:    req.Common,
			Manual:    req.Manual,
		})
		if err != nil {
			respond.Error(w, log, op, err)
			return
		}

		log.Info("отчет сохранен",
			slog.Int64("station_id", stationID),
			slog.String("date", req.Date),
			slog.Int("block", res.Block),
			slog.Bool("submitted", res.Submitted),
		)

		if req.IsNew {
			render.Status(r, http.StatusCreated)
		}
		render.JSON(w, r, res)
	}
}
