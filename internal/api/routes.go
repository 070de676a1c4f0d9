package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// SetupRoutes configures all HTTP routes and returns the router.
//
// Route structure:
//
//	GET /health                              liveness and database check
//	GET /api/v1/days/today                   today's resolved day
//	GET /api/v1/days/{date}                  one resolved day (YYYY-MM-DD)
//	GET /api/v1/years/{year}                 a full liturgical year
//	GET /api/v1/years/{year}/calendar.ics    iCalendar export
func SetupRoutes(handlers *Handlers, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(
		RecoveryMiddleware(logger),
		RequestIDMiddleware(),
		LoggingMiddleware(logger),
		CORSMiddleware(),
	)

	r.Get("/health", handlers.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/days/today", handlers.GetToday)
		r.Get("/days/{date}", handlers.GetDay)
		r.Get("/years/{year}", handlers.GetYear)
		r.Get("/years/{year}/calendar.ics", handlers.GetYearCalendar)
	})

	return r
}
