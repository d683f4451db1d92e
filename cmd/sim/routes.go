package main

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	deleterun "shopfloor-sim/http-server/admin/delete"
	generate_excel "shopfloor-sim/http-server/generate-report/generate-excel"
	getrun "shopfloor-sim/http-server/simulation/get"
	"shopfloor-sim/http-server/simulation/run"
	"shopfloor-sim/http-server/simulation/upload"
	"shopfloor-sim/internal/config"
	"shopfloor-sim/internal/metrics"
	"shopfloor-sim/internal/middleware/auth"
	"shopfloor-sim/internal/service/report"
	"shopfloor-sim/internal/service/simulate"
	"shopfloor-sim/internal/storage/mysql"
)

func routes(cfg config.Config, log *slog.Logger, storage *mysql.Storage, sim *simulate.Service, rep *report.Service, m *metrics.Metrics) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	timeout := cfg.Simulation.RequestTimeout

	router.Post("/api/simulations", run.RunSimulation(log, sim, timeout, cfg.Simulation.MaxUploadBytes))
	router.Post("/api/simulations/upload", upload.UploadSimulation(log, sim, timeout, cfg.Simulation.MaxUploadBytes))

	router.Get("/api/simulations", getrun.ListRuns(log, storage))
	router.Get("/api/simulations/{id}", getrun.GetRun(log, rep))
	router.Get("/api/simulations/{id}/report/excel", generate_excel.GenerateRunExcel(log, rep))

	router.Handle("/metrics", m.Handler())

	adminRouter := chi.NewRouter()
	adminRouter.Use(auth.BasicAuth(cfg.AdminLogin, cfg.AdminPassHash))

	adminRouter.Delete("/simulations/{id}", deleterun.DeleteRunAdmin(log, storage))

	router.Mount("/api/admin", adminRouter)

	return router
}
