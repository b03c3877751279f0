package update

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"station-reports/http-server/respond"
)

type NightShiftToggler interface {
	ToggleNightShift(ctx context.Context, stationID int64) (bool, error)
}

type ToggleResponse struct {
	StationID     int64 `json:"station_id"`
	HasNightShift bool  `json:"has_night_shift"`
}

func ToggleNightShift(log *slog.Logger, toggler NightShiftToggler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.ToggleNightShift"

		stationID, err := respond.StationID(r)
		if err != nil {
			respond.Error(w, log, op, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		hasNight, err := toggler.ToggleNightShift(ctx, stationID)
		if err != nil {
			respond.Error(w, log, op, err)
			return
		}

		log.Info("ночная смена переключена", slog.Int64("station_id", stationID), slog.Bool("has_night_shift", hasNight))

		render.JSON(w, r, ToggleResponse{StationID: stationID, HasNightShift: hasNight})
	}
}
