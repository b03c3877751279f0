package generate_excel

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"station-reports/http-server/respond"
)

type GenerateExcelHandler interface {
	GenerateTable1Day(ctx context.Context, rawDate string) ([]byte, error)
}

func GenerateTable1Excel(log *slog.Logger, gen GenerateExcelHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.generate_excel.GenerateTable1Excel"

		date := chi.URLParam(r, "date")

		// На Excel времени побольше
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		excelBytes, err := gen.GenerateTable1Day(ctx, date)
		if err != nil {
			respond.Error(w, log, op, err)
			return
		}

		fileName := fmt.Sprintf("table1_%s.xlsx", date)

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", "attachment; filename="+fileName)
		if _, err := w.Write(excelBytes); err != nil {
			log.Error("не удалось отдать файл", slog.String("op", op), slog.String("error", err.Error()))
		}
	}
}
