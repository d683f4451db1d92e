package upload

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/render"

	"shopfloor-sim/http-server/respond"
	"shopfloor-sim/internal/orders"
	"shopfloor-sim/internal/service/simulate"
)

const ordersFileField = "orders_file"

type Simulator interface {
	Simulate(ctx context.Context, req simulate.Request) (*simulate.Response, error)
}

// UploadSimulation runs a simulation from the planner form: shop parameters
// as form fields and the orders as a CSV or XLSX file.
func UploadSimulation(log *slog.Logger, sim Simulator, timeout time.Duration, maxBytes int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.simulation.UploadSimulation"

		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			log.Error("invalid form", slog.String("op", op), slog.String("error", err.Error()))
			respond.Error(w, r, http.StatusBadRequest, "invalid form")
			return
		}

		params, err := formParameters(r)
		if err != nil {
			respond.Error(w, r, http.StatusBadRequest, err.Error())
			return
		}

		req := simulate.Request{Parameters: params}

		file, header, err := r.FormFile(ordersFileField)
		switch {
		case errors.Is(err, http.ErrMissingFile):
			// no file means no orders
		case err != nil:
			log.Error("cannot open orders file", slog.String("op", op), slog.String("error", err.Error()))
			respond.Error(w, r, http.StatusBadRequest, "invalid orders file")
			return
		default:
			defer file.Close()

			req.Orders, err = orders.Read(header.Filename, file)
			if err != nil {
				if errors.Is(err, orders.ErrUnsupportedFormat) {
					respond.Error(w, r, http.StatusUnsupportedMediaType, err.Error())
					return
				}
				respond.SimulationError(w, r, log, op, err)
				return
			}
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

func formParameters(r *http.Request) (simulate.Parameters, error) {
	p := simulate.Parameters{StartDate: strings.TrimSpace(r.FormValue("start_date"))}

	ints := []struct {
		field string
		dst   *int
	}{
		{"shifts", &p.Shifts},
		{"hours_per_shift", &p.HoursPerShift},
		{"operators_per_shift", &p.OperatorsPerShift},
	}
	for _, f := range ints {
		v, err := strconv.Atoi(strings.TrimSpace(r.FormValue(f.field)))
		if err != nil {
			return p, fmt.Errorf("invalid %s", f.field)
		}
		*f.dst = v
	}

	floats := []struct {
		field string
		dst   *float64
	}{
		{"scrap_rate", &p.ScrapRate},
		{"downtime_rate", &p.DowntimeRate},
	}
	for _, f := range floats {
		v, err := strconv.ParseFloat(strings.TrimSpace(r.FormValue(f.field)), 64)
		if err != nil {
			return p, fmt.Errorf("invalid %s", f.field)
		}
		*f.dst = v
	}

	return p, nil
}
