package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	getadmin "station-reports/http-server/admin/get"
	saveadmin "station-reports/http-server/admin/save"
	upadmin "station-reports/http-server/admin/update"
	getdashboard "station-reports/http-server/dashboard/get"
	generate_excel "station-reports/http-server/generate-report/generate-excel"
	gettable1 "station-reports/http-server/table1/get"
	savetable1 "station-reports/http-server/table1/save"
	uptable1 "station-reports/http-server/table1/update"
	gettable2 "station-reports/http-server/table2/get"
	savetable2 "station-reports/http-server/table2/save"
	uptable2 "station-reports/http-server/table2/update"
	"station-reports/internal/clock"
	"station-reports/internal/config"
	"station-reports/internal/middleware/auth"
	"station-reports/internal/middleware/presence"
	"station-reports/internal/service/dashboard"
	generate_excel2 "station-reports/internal/service/generate-excel"
	"station-reports/internal/service/reports"
	"station-reports/internal/storage/mysql"
)

func routes(cfg config.Config, log *slog.Logger, storage *mysql.Storage, reportService *reports.Service, dashService *dashboard.Service, genService *generate_excel2.GenerateExcelService) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)

	router.Use(middleware.RequestID)
	//ip станции
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := storage.Ping(r.Context()); err != nil {
			http.Error(w, "db unavailable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	// Маршруты станции: каждый запрос отмечает станцию как активную
	router.Route("/api/stations/{stationID}", func(r chi.Router) {
		r.Use(presence.Track(log, storage, clock.Real{}))

		r.Get("/table1", gettable1.ListTable1(log, reportService))
		r.Get("/table1/{date}", gettable1.GetTable1Day(log, reportService))
		r.Post("/table1", savetable1.SaveTable1(log, reportService))
		r.Post("/table1/{date}/submit", uptable1.SubmitTable1(log, reportService))
		r.Delete("/table1/{date}", uptable1.DeleteTable1(log, reportService))

		r.Get("/table2", gettable2.ListTable2(log, reportService))
		r.Get("/table2/{date}", gettable2.GetTable2(log, reportService))
		r.Post("/table2", savetable2.SaveTable2(log, reportService))
		r.Post("/table2/{date}/submit", uptable2.SubmitTable2(log, reportService))
		r.Delete("/table2/{date}", uptable2.DeleteTable2(log, reportService))
	})

	//adminPanel центрального офиса
	adminRouter := chi.NewRouter()
	adminRouter.Use(auth.BasicAuth(cfg.AdminLogin, cfg.AdminPass))

	adminRouter.Get("/table1/{date}", getadmin.GetTable1Day(log, reportService))
	adminRouter.Get("/table1/{date}/excel", generate_excel.GenerateTable1Excel(log, genService))
	adminRouter.Get("/overview", getadmin.GetOverview(log, reportService))
	adminRouter.Get("/stations", getadmin.GetStations(log, reportService))
	adminRouter.Post("/stations", saveadmin.SaveStation(log, reportService))
	adminRouter.Put("/stations/{stationID}/night-shift", upadmin.ToggleNightShift(log, reportService))

	adminRouter.Get("/table2/{date}/grid", getdashboard.GetTable2Grid(log, dashService))
	adminRouter.Get("/dashboard", getdashboard.GetDashboard(log, dashService))
	adminRouter.Get("/online", getdashboard.GetOnline(log, dashService))

	router.Mount("/api/admin", adminRouter)

	return router
}
