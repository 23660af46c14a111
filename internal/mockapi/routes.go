package mockapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/maumercado/scaleapi-go/internal/config"
	"github.com/maumercado/scaleapi-go/internal/mockapi/handlers"
	apiMiddleware "github.com/maumercado/scaleapi-go/internal/mockapi/middleware"
	"github.com/maumercado/scaleapi-go/internal/store"
)

// Server is a local stand-in for the Scale API
type Server struct {
	router       *chi.Mux
	store        *store.Memory
	config       *config.Config
	taskHandler  *handlers.TaskHandler
	batchHandler *handlers.BatchHandler
	adminHandler *handlers.AdminHandler
}

// NewServer creates a new HTTP server backed by st
func NewServer(cfg *config.Config, st *store.Memory) *Server {
	s := &Server{
		router:       chi.NewRouter(),
		store:        st,
		config:       cfg,
		taskHandler:  handlers.NewTaskHandler(st),
		batchHandler: handlers.NewBatchHandler(st),
		adminHandler: handlers.NewAdminHandler(st),
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	// Request ID
	s.router.Use(middleware.RequestID)

	// Real IP
	s.router.Use(middleware.RealIP)

	// Logging and HTTP metrics
	s.router.Use(apiMiddleware.RequestLogger())

	// Recoverer
	s.router.Use(middleware.Recoverer)

	// Heartbeat endpoint for load balancers
	s.router.Use(middleware.Heartbeat("/health"))

	s.router.NotFound(handlers.NotFound)
	s.router.MethodNotAllowed(handlers.MethodNotAllowed)
}

func (s *Server) setupRoutes() {
	auth := apiMiddleware.Auth(apiMiddleware.NewAuthConfig(s.config.Mock.APIKeys))

	// API v1 routes
	s.router.Route("/v1", func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))
		r.Use(auth)

		// Rate limiting per API key
		if s.config.Mock.RateLimitRPS > 0 {
			r.Use(apiMiddleware.ClientRateLimit(s.config.Mock.RateLimitRPS, s.config.Mock.RateLimitBurst))
		}

		// Task routes. Creation shares the {id} segment with lookup and
		// carries the task type there.
		r.Get("/task/{id}", s.taskHandler.Get)
		r.Post("/task/{id}", s.taskHandler.Create)
		r.Post("/task/{id}/cancel", s.taskHandler.Cancel)
		r.Get("/tasks", s.taskHandler.List)

		// Batch routes
		r.Post("/batches", s.batchHandler.Create)
		r.Get("/batches/{name}", s.batchHandler.Get)
		r.Post("/batches/{name}/finalize", s.batchHandler.Finalize)
		r.Get("/batches/{name}/status", s.batchHandler.Status)
	})

	// Admin routes
	s.router.Route("/admin", func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))
		r.Use(auth)

		r.Get("/health", s.adminHandler.HealthCheck)
		r.Post("/tasks/{id}/complete", s.adminHandler.CompleteTask)
		r.Post("/tasks/{id}/review", s.adminHandler.ReviewTask)
	})

	// Metrics endpoint
	if s.config.Metrics.Enabled {
		s.router.Handle(s.config.Metrics.Path, promhttp.Handler())
	}
}

// Router returns the chi router
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Store returns the backing store
func (s *Server) Store() *store.Memory {
	return s.store
}

// ServeHTTP implements the http.Handler interface
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
