// Package respond - общие для обработчиков разбор параметров маршрута и перевод ошибок сервиса в HTTP-статусы.
package respond

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"station-reports/internal/constants"
	"station-reports/internal/service/reconcile"
	"station-reports/internal/service/reports"
	"station-reports/internal/storage"
)

var ErrBadStationID = errors.New("bad station id")

type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func StationID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "stationID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrBadStationID, raw)
	}
	return id, nil
}

// Error пишет ответ по ошибке сервиса. Ошибки ввода отдаются клиенту как есть,
// остальные логируются и скрываются за "Internal error".
func Error(w http.ResponseWriter, log *slog.Logger, op string, err error) {
	switch {
	case errors.Is(err, reconcile.ErrInvalidDate),
		errors.Is(err, ErrBadStationID),
		errors.Is(err, reports.ErrInvalidRange),
		errors.Is(err, reports.ErrEmptyUsername),
		errors.Is(err, constants.ErrUnknownReportType):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, storage.ErrReportExists):
		http.Error(w, "Отчет за эту дату уже существует", http.StatusConflict)
	case errors.Is(err, storage.ErrStationExists):
		http.Error(w, "Станция с таким логином уже существует", http.StatusConflict)
	case errors.Is(err, storage.ErrNotFound):
		http.Error(w, "Не найдено", http.StatusNotFound)
	default:
		log.Error("ошибка обработки запроса", slog.String("op", op), slog.String("error", err.Error()))
		http.Error(w, "Internal error", http.StatusInternalServerError)
	}
}
