package generate_excel

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"shopfloor-sim/internal/storage"
)

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) GenerateExcel(ctx context.Context, id string) ([]byte, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func serve(gen GenerateExcelHandler, target string) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.Get("/api/simulations/{id}/report/excel", GenerateRunExcel(slog.Default(), gen))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
	return rr
}

func TestGenerateRunExcel(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("GenerateExcel", mock.Anything, "run-1").Return([]byte("PK\x03\x04"), nil)

	rr := serve(gen, "/api/simulations/run-1/report/excel")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "attachment; filename=simulation_run-1_")
	assert.Equal(t, "PK\x03\x04", rr.Body.String())
	gen.AssertExpectations(t)
}

func TestGenerateRunExcel_NotFound(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("GenerateExcel", mock.Anything, "missing").Return(nil, storage.ErrRunNotFound)

	rr := serve(gen, "/api/simulations/missing/report/excel")

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGenerateRunExcel_Error(t *testing.T) {
	gen := new(MockGenerator)
	gen.On("GenerateExcel", mock.Anything, "run-1").Return(nil, assert.AnError)

	rr := serve(gen, "/api/simulations/run-1/report/excel")

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Empty(t, rr.Header().Get("Content-Disposition"))
}
