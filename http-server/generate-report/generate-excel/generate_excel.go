package generate_excel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"shopfloor-sim/http-server/respond"
	"shopfloor-sim/internal/storage"
)

type GenerateExcelHandler interface {
	GenerateExcel(ctx context.Context, id string) ([]byte, error)
}

func GenerateRunExcel(log *slog.Logger, gen GenerateExcelHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.report.GenerateRunExcel"

		id := chi.URLParam(r, "id")

		// building a workbook takes longer than a plain read
		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		excelBytes, err := gen.GenerateExcel(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrRunNotFound) {
				respond.Error(w, r, http.StatusNotFound, "simulation run not found")
				return
			}
			log.Error("failed to generate excel", slog.String("op", op), slog.String("id", id), slog.String("error", err.Error()))
			respond.Error(w, r, http.StatusInternalServerError, "internal error")
			return
		}

		fileName := fmt.Sprintf("simulation_%s_%s.xlsx", id, time.Now().Format("2006-01-02_150405"))

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", "attachment; filename="+fileName)
		if _, err := w.Write(excelBytes); err != nil {
			log.Error("failed to write excel", slog.String("op", op), slog.String("error", err.Error()))
		}
	}
}
