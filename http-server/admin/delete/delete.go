package delete

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"shopfloor-sim/http-server/respond"
	"shopfloor-sim/internal/storage"
)

type RunDeleter interface {
	DeleteRun(ctx context.Context, id string) error
}

func DeleteRunAdmin(log *slog.Logger, runs RunDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.admin.DeleteRunAdmin"

		id := chi.URLParam(r, "id")

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := runs.DeleteRun(ctx, id); err != nil {
			if errors.Is(err, storage.ErrRunNotFound) {
				respond.Error(w, r, http.StatusNotFound, "simulation run not found")
				return
			}
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("failed to delete simulation run")
			respond.Error(w, r, http.StatusInternalServerError, "internal error")
			return
		}

		log.Info("simulation run deleted", slog.String("op", op), slog.String("id", id))
		w.WriteHeader(http.StatusNoContent)
	}
}
