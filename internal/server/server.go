// Package server assembles the router, middleware chain, and HTTP server.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/rsinnovation/hub-api/internal/auth"
	"github.com/rsinnovation/hub-api/internal/config"
	"github.com/rsinnovation/hub-api/internal/http/handlers"
	"github.com/rsinnovation/hub-api/internal/metrics"
	"github.com/rsinnovation/hub-api/internal/middleware"
	"github.com/rsinnovation/hub-api/internal/models"
	"github.com/rsinnovation/hub-api/internal/storage"
	"github.com/rsinnovation/hub-api/internal/users"
)

// anonymousRateLimit is the per-minute budget for unauthenticated write
// endpoints (register, login, contact form).
const anonymousRateLimit = 10

// Server wraps the http.Server with its background resources.
type Server struct {
	httpServer  *http.Server
	rateLimiter *middleware.RateLimiter
}

// New wires the full API: handlers over the given store, authentication via
// the token manager, and the shared middleware stack.
func New(cfg config.Config, store storage.Store, logger *slog.Logger) *Server {
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer)
	authenticator := auth.NewAuthenticator(tokens, store)
	userService := users.NewService(store)

	authHandler := handlers.NewAuthHandler(store, tokens)
	userHandler := handlers.NewUserAdminHandler(userService)
	programHandler := handlers.NewProgramHandler(store)
	eventHandler := handlers.NewEventHandler(store)
	applicationHandler := handlers.NewApplicationHandler(store, store, store, store)
	contactHandler := handlers.NewContactHandler(store)
	storyHandler := handlers.NewStoryHandler(store)
	dashboardHandler := handlers.NewDashboardHandler(store)
	healthHandler := handlers.NewHealthHandler()

	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)
	rateLimiter := middleware.NewRateLimiter(anonymousRateLimit)
	authenticate := middleware.Authenticate(authenticator)

	r := chi.NewRouter()
	r.Use(collector.Middleware)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.Logging(logger))

	r.Get("/health", healthHandler.Check)
	r.Method(http.MethodGet, "/metrics", metrics.Handler(registry))

	r.Route("/api", func(r chi.Router) {
		// Anonymous surface. Write endpoints sit behind the per-IP limiter.
		r.Group(func(r chi.Router) {
			r.Use(rateLimiter.Middleware)
			r.Post("/auth/register", authHandler.Register)
			r.Post("/auth/login", authHandler.Login)
			r.Post("/auth/google", authHandler.GoogleAuth)
			r.Post("/contact", contactHandler.Submit)
		})

		// Logout is a stateless acknowledgment; it works with or without a
		// bearer token.
		r.Post("/auth/logout", authHandler.Logout)

		r.Get("/programs", programHandler.ListPublic)
		r.Get("/programs/{id}", programHandler.GetPublic)
		r.Get("/events", eventHandler.ListPublic)
		r.Get("/events/{id}", eventHandler.GetPublic)
		r.Get("/success-stories", storyHandler.ListPublic)
		r.Get("/success-stories/{id}", storyHandler.GetPublic)

		// Any authenticated user.
		r.Group(func(r chi.Router) {
			r.Use(authenticate)
			r.Get("/auth/me", authHandler.Me)
			r.Put("/auth/profile", authHandler.UpdateProfile)
			r.Post("/applications", applicationHandler.Submit)
			r.Get("/applications/my", applicationHandler.ListMine)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(authenticate)

			// Content management requires editor or above.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleEditor))

				r.Get("/dashboard", dashboardHandler.Stats)

				r.Post("/programs", programHandler.Create)
				r.Get("/programs", programHandler.ListAdmin)
				r.Get("/programs/{id}", programHandler.GetAdmin)
				r.Put("/programs/{id}", programHandler.Update)

				r.Post("/events", eventHandler.Create)
				r.Get("/events", eventHandler.ListAdmin)
				r.Get("/events/{id}", eventHandler.GetAdmin)
				r.Put("/events/{id}", eventHandler.Update)

				r.Post("/success-stories", storyHandler.Create)
				r.Get("/success-stories", storyHandler.ListAdmin)
				r.Get("/success-stories/{id}", storyHandler.GetAdmin)
				r.Put("/success-stories/{id}", storyHandler.Update)
				r.Patch("/success-stories/{id}/publish", storyHandler.Publish)

				r.Get("/applications", applicationHandler.ListAdmin)
				r.Get("/applications/{id}", applicationHandler.GetAdmin)
				r.Patch("/applications/{id}/status", applicationHandler.UpdateStatus)

				r.Get("/contacts", contactHandler.List)
				r.Get("/contacts/{id}", contactHandler.Get)
				r.Post("/contacts/{id}/reply", contactHandler.Reply)
				r.Patch("/contacts/{id}/status", contactHandler.UpdateStatus)
			})

			// Destructive content operations require manager or above.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleManager))

				r.Delete("/programs/{id}", programHandler.Delete)
				r.Delete("/events/{id}", eventHandler.Delete)
				r.Delete("/success-stories/{id}", storyHandler.Delete)
				r.Delete("/applications/{id}", applicationHandler.Delete)
				r.Delete("/contacts/{id}", contactHandler.Delete)

				r.Get("/users", userHandler.List)
				r.Get("/users/{id}", userHandler.Get)
				r.Patch("/users/{id}/status", userHandler.UpdateStatus)
			})

			// Role assignment and account deletion are owner-only.
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(models.RoleOwner))
				r.Patch("/users/{id}/role", userHandler.UpdateRole)
				r.Delete("/users/{id}", userHandler.Delete)
			})
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.HTTPAddress(),
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
		rateLimiter: rateLimiter,
	}
}

// Handler exposes the assembled router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start blocks serving HTTP until the listener fails or Shutdown runs.
func (s *Server) Start() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests and stops background loops.
func (s *Server) Shutdown(ctx context.Context) error {
	s.rateLimiter.Stop()
	return s.httpServer.Shutdown(ctx)
}
