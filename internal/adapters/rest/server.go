package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"crm-service/internal/configs"
	core_port "crm-service/internal/core/port"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

// Server - наш REST API сервер.
type Server struct {
	httpServer *http.Server
	logger     core_port.LoggerPort
}

// Handlers - все обработчики, которые монтирует роутер.
type Handlers struct {
	Auth       *AuthHandler
	Properties *PropertyHandler
	Buyers     *BuyerHandler
	Sellers    *SellerHandler
	Tenants    *TenantHandler
	Tasks      *TaskHandler
	Search     *SearchHandler
	Analytics  *AnalyticsHandler
}

// NewServer создает новый экземпляр сервера и собирает все роуты.
func NewServer(cfg *configs.AppConfig, h Handlers, baseLogger core_port.LoggerPort) *Server {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(LoggerMiddleware(baseLogger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.Rest.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Trace-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health без аутентификации и rate limit'а - его дергают пробы.
	r.Get("/health", healthHandler(cfg.AppName))

	r.Route("/api", func(r chi.Router) {
		r.Use(httprate.LimitByIP(cfg.Rest.RateLimitPerMinute, time.Minute))

		r.Post("/auth/login", h.Auth.Login)

		// Все остальное - только с валидным токеном.
		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(cfg.Auth.JWTSecret))

			r.Get("/auth/me", h.Auth.Me)

			// Управление пользователями - только admin
			r.Route("/users", func(r chi.Router) {
				r.Use(RequireAdmin)
				r.Get("/", h.Auth.ListUsers)
				r.Post("/", h.Auth.CreateUser)
				r.Get("/{id}", h.Auth.GetUser)
				r.Put("/{id}", h.Auth.UpdateUser)
				r.Post("/{id}/deactivate", h.Auth.DeactivateUser)
				r.Post("/{id}/activate", h.Auth.ActivateUser)
			})

			r.Route("/properties", func(r chi.Router) {
				r.Get("/", h.Properties.List)
				r.Post("/", h.Properties.Create)
				r.Get("/{id}", h.Properties.Get)
				r.Put("/{id}", h.Properties.Update)
				r.Delete("/{id}", h.Properties.Delete)
				r.Post("/{id}/viewing", h.Properties.RecordViewing)
				r.Post("/{id}/archive", h.Properties.Archive)
				r.Post("/{id}/restore", h.Properties.Restore)
			})

			r.Route("/buyers", func(r chi.Router) {
				r.Get("/", h.Buyers.List)
				r.Post("/", h.Buyers.Create)
				r.Get("/{id}", h.Buyers.Get)
				r.Put("/{id}", h.Buyers.Update)
				r.Delete("/{id}", h.Buyers.Delete)
				r.Post("/{id}/restore", h.Buyers.Restore)
			})

			r.Route("/sellers", func(r chi.Router) {
				r.Get("/", h.Sellers.List)
				r.Post("/", h.Sellers.Create)
				r.Get("/{id}", h.Sellers.Get)
				r.Put("/{id}", h.Sellers.Update)
				r.Delete("/{id}", h.Sellers.Delete)
				r.Post("/{id}/restore", h.Sellers.Restore)
			})

			r.Route("/tenants", func(r chi.Router) {
				r.Get("/", h.Tenants.List)
				r.Post("/", h.Tenants.Create)
				r.Get("/{id}", h.Tenants.Get)
				r.Put("/{id}", h.Tenants.Update)
				r.Delete("/{id}", h.Tenants.Delete)
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", h.Tasks.List)
				r.Post("/", h.Tasks.Create)
				r.Get("/overdue", h.Tasks.Overdue)
				r.Get("/{id}", h.Tasks.Get)
				r.Put("/{id}", h.Tasks.Update)
				r.Delete("/{id}", h.Tasks.Delete)
				r.Post("/{id}/complete", h.Tasks.Complete)
			})

			r.Route("/search", func(r chi.Router) {
				r.Get("/", h.Search.Search)
				r.Get("/suggestions", h.Search.Suggestions)
				r.Get("/quick/{id}", h.Search.Quick)
			})

			r.Route("/analytics", func(r chi.Router) {
				r.Get("/dashboard", h.Analytics.Dashboard)
				r.Get("/properties", h.Analytics.Properties)
				r.Get("/revenue", h.Analytics.Revenue)
				r.Get("/performance", h.Analytics.Performance)
			})
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:    ":" + cfg.Rest.PORT,
			Handler: r,
		},
		logger: baseLogger,
	}
}

func healthHandler(serviceName string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		RespondWithJSON(w, http.StatusOK, map[string]string{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"service":   serviceName,
		})
	}
}

// Start запускает HTTP-сервер.
func (s *Server) Start() error {
	s.logger.Info("Starting REST API server", core_port.Fields{"address": s.httpServer.Addr})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Could not start server", err, nil)
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

// Stop корректно останавливает сервер.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST API server...", nil)
	return s.httpServer.Shutdown(ctx)
}
