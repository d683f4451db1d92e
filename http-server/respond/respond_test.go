package respond

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopfloor-sim/internal/orders"
	"shopfloor-sim/internal/simulation"
	"shopfloor-sim/internal/storage"
	"shopfloor-sim/internal/timeparse"
)

func TestSimulationError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{
			name:    "parse error",
			err:     fmt.Errorf("op: %w", &timeparse.ParseError{Value: "01/01/2024"}),
			status:  http.StatusUnprocessableEntity,
			message: "01/01/2024",
		},
		{
			name:    "domain error",
			err:     &simulation.DomainError{HoursPerShift: 0, OperatorsPerShift: 2},
			status:  http.StatusUnprocessableEntity,
			message: "shift capacity",
		},
		{
			name:    "input error",
			err:     &orders.InputError{Row: 3, Column: orders.ColumnSize, Err: orders.ErrEmptyValue},
			status:  http.StatusUnprocessableEntity,
			message: "row 3",
		},
		{
			name:    "not found",
			err:     fmt.Errorf("op: %w", storage.ErrRunNotFound),
			status:  http.StatusNotFound,
			message: "not found",
		},
		{
			name:    "internal",
			err:     errors.New("connection refused"),
			status:  http.StatusInternalServerError,
			message: "internal error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/simulations", nil)

			SimulationError(rr, req, slog.Default(), "test", tt.err)

			assert.Equal(t, tt.status, rr.Code)

			var resp Response
			require.NoError(t, render.DecodeJSON(rr.Body, &resp))
			assert.Contains(t, resp.Error, tt.message)
		})
	}
}
