// Package presence отмечает время последнего обращения станции для статуса онлайн.
package presence

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"station-reports/internal/clock"
)

type Toucher interface {
	TouchLastSeen(ctx context.Context, id int64, at time.Time) error
}

// Track пишет время визита станции из параметра маршрута stationID. Ошибка записи не
// прерывает запрос, только логируется.
func Track(log *slog.Logger, store Toucher, clk clock.Clock) func(http.Handler) http.Handler {
	if clk == nil {
		clk = clock.Real{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middleware.presence.Track"

			stationID, err := strconv.ParseInt(chi.URLParam(r, "stationID"), 10, 64)
			if err == nil && stationID > 0 {
				ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
				if err := store.TouchLastSeen(ctx, stationID, clk.Now()); err != nil {
					log.Warn("не удалось обновить время визита станции",
						slog.String("op", op),
						slog.Int64("station_id", stationID),
						slog.String("error", err.Error()),
					)
				}
				cancel()
			}

			next.ServeHTTP(w, r)
		})
	}
}
