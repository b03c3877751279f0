package save

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"station-reports/http-server/respond"
	"station-reports/internal/storage"
)

type StationCreator interface {
	CreateStation(ctx context.Context, st storage.Station) (*storage.Station, error)
}

type Request struct {
	Username      string `json:"username"`
	StationName   string `json:"station_name"`
	HasNightShift bool   `json:"has_night_shift"`
}

func SaveStation(log *slog.Logger, creator StationCreator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.SaveStation"

		var req Request
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			http.Error(w, "Неверный JSON", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		st, err := creator.CreateStation(ctx, storage.Station{
			Username:      req.Username,
			StationName:   req.StationName,
			HasNightShift: req.HasNightShift,
		})
		if err != nil {
			respond.Error(w, log, op, err)
			return
		}

		log.Info("станция добавлена", slog.Int64("station_id", st.ID), slog.String("username", st.Username))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, st)
	}
}
