package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/isdelr/medapi/internal/api/handlers"
	"github.com/isdelr/medapi/internal/config"
	"github.com/isdelr/medapi/internal/logger"
	"github.com/isdelr/medapi/internal/metrics"
	"github.com/isdelr/medapi/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	cfg *config.Config,
	m *metrics.Metrics,
	userService services.UserServiceProvider,
	labResultService services.LabResultServiceProvider,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logger.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(m.Middleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg.ProjectName, cfg.APIPrefix)
	userHandler := handlers.NewUserHandler(userService)
	labResultHandler := handlers.NewLabResultHandler(labResultService)

	r.Get("/", healthHandler.Root)
	r.Get("/health", healthHandler.Health)
	r.Method("GET", "/metrics", m.Handler())

	// API versioning
	r.Route(cfg.APIPrefix, func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Get("/", userHandler.GetAll)
			r.Post("/", userHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", userHandler.Get)
				r.Put("/", userHandler.Update)
				r.Delete("/", userHandler.Delete)
			})
		})

		r.Route("/results", func(r chi.Router) {
			r.Get("/", labResultHandler.GetAll)
			r.Post("/", labResultHandler.Create)
			r.Get("/user/{userID}", labResultHandler.GetByUser)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", labResultHandler.Get)
				r.Put("/", labResultHandler.Update)
				r.Delete("/", labResultHandler.Delete)
			})
		})
	})

	return r
}
