package respond

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/render"

	"shopfloor-sim/internal/orders"
	"shopfloor-sim/internal/service/simulate"
	"shopfloor-sim/internal/storage"
)

type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

func Error(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, Response{Status: strconv.Itoa(status), Error: msg})
}

// SimulationError maps a failed run to a response. Problems with the input
// are shown to the caller, anything else is logged and hidden.
func SimulationError(w http.ResponseWriter, r *http.Request, log *slog.Logger, op string, err error) {
	var inputErr *orders.InputError

	switch {
	case simulate.IsInputError(err), errors.As(err, &inputErr):
		log.Warn("rejected simulation input", slog.String("op", op), slog.String("error", err.Error()))
		Error(w, r, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, storage.ErrRunNotFound):
		Error(w, r, http.StatusNotFound, "simulation run not found")
	default:
		log.Error("simulation failed", slog.String("op", op), slog.String("error", err.Error()))
		Error(w, r, http.StatusInternalServerError, "internal error")
	}
}
