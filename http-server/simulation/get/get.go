package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"shopfloor-sim/http-server/respond"
	"shopfloor-sim/internal/storage"
)

const (
	defaultLimit = 20
	maxLimit     = 200
)

type RunDetails interface {
	RunDetails(ctx context.Context, id string) (*storage.RunDetails, error)
}

type RunLister interface {
	ListRuns(ctx context.Context, limit int) ([]storage.Run, error)
}

func GetRun(log *slog.Logger, runs RunDetails) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.simulation.GetRun"

		id := chi.URLParam(r, "id")

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		details, err := runs.RunDetails(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrRunNotFound) {
				respond.Error(w, r, http.StatusNotFound, "simulation run not found")
				return
			}
			log.Error("failed to get simulation run", slog.String("op", op), slog.String("id", id), slog.String("error", err.Error()))
			respond.Error(w, r, http.StatusInternalServerError, "internal error")
			return
		}

		render.JSON(w, r, details)
	}
}

func ListRuns(log *slog.Logger, runs RunLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.simulation.ListRuns"

		limit := defaultLimit
		if s := r.URL.Query().Get("limit"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n < 1 {
				respond.Error(w, r, http.StatusBadRequest, "invalid limit")
				return
			}
			limit = min(n, maxLimit)
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		list, err := runs.ListRuns(ctx, limit)
		if err != nil {
			log.Error("failed to list simulation runs", slog.String("op", op), slog.String("error", err.Error()))
			respond.Error(w, r, http.StatusInternalServerError, "internal error")
			return
		}

		render.JSON(w, r, list)
	}
}
