package run

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"shopfloor-sim/http-server/respond"
	"shopfloor-sim/internal/service/simulate"
)

type Simulator interface {
	Simulate(ctx context.Context, req simulate.Request) (*simulate.Response, error)
}

func RunSimulation(log *slog.Logger, sim Simulator, timeout time.Duration, maxBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.simulation.RunSimulation"

		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

		var req simulate.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				respond.Error(w, r, http.StatusRequestEntityTooLarge, "request body too large")
				return
			}
			log.Error("invalid JSON", slog.String("op", op), slog.String("error", err.Error()))
			respond.Error(w, r, http.StatusBadRequest, "invalid JSON")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		resp, err := sim.Simulate(ctx, req)
		if err != nil {
			respond.SimulationError(w, r, log, op, err)
			return
		}

		render.JSON(w, r, resp)
	}
}
