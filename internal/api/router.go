package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/furnet/instance-server/internal/api/handler"
	"github.com/furnet/instance-server/internal/api/middleware"
	"github.com/furnet/instance-server/internal/config"
	"github.com/furnet/instance-server/internal/service"
	"github.com/furnet/instance-server/internal/storage"
)

// NewRouter creates a new HTTP router with all routes configured.
func NewRouter(
	cfg *config.Config,
	store storage.Storage,
	friends *service.FriendService,
	health *service.HealthService,
	gatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.Recoverer)
	r.Use(middleware.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOriginList(),
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	// Service probes (no JSON middleware needed beyond the literal bodies)
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"Welcome to FurNet API"}`))
	})
	r.Get("/health", probeHandler("healthy"))
	r.Get("/health/live", probeHandler("alive"))
	r.Get("/health/ready", probeHandler("ready"))

	// Metrics
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	// Instance API (JSON Content-Type)
	r.Group(func(r chi.Router) {
		r.Use(middleware.ContentType)

		identityHandler := handler.NewIdentityHandler(cfg)
		r.Get("/identity", identityHandler.Get)

		friendHandler := handler.NewFriendHandler(friends)
		r.Get("/friends", friendHandler.List)
		r.Post("/friends", friendHandler.Create)
		r.Post("/friends/add", friendHandler.Add)

		healthHandler := handler.NewHealthCheckHandler(health)
		r.Post("/health-check", healthHandler.Check)

		itemHandler := handler.NewItemHandler(store)
		r.Get("/items", itemHandler.List)
		r.Post("/items", itemHandler.Create)
		r.Get("/items/{id}", itemHandler.Get)
		r.Delete("/items/{id}", itemHandler.Delete)
	})

	return r
}

// probeHandler serves the kubernetes-style status probes.
func probeHandler(status string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"` + status + `"}`))
	}
}
