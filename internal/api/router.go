package api

import (
	"encoding/json"
	"net/http"

	"github.com/civiltoolbox/toolbox/internal/api/handlers"
	"github.com/civiltoolbox/toolbox/internal/api/middleware"
	"github.com/civiltoolbox/toolbox/internal/config"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const serviceName = "toolbox"

// NewRouter creates the HTTP router with all API routes. chatLimiter
// throttles the routes that reach the assistant backend; it is shared so
// the janitor can prune it.
func NewRouter(cfg *config.Config, h *handlers.Handlers, chatLimiter *middleware.RateLimiter) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(middleware.Logger)
	r.Use(middleware.Telemetry)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-API-Key", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id", "X-Trace-Id", "Retry-After"},
		MaxAge:         300,
	}))
	r.Use(middleware.NewAPIKeyAuth(cfg.Auth.APIKeys).Middleware)

	// Health & info
	r.Get("/health", healthHandler)
	r.Get("/version", versionHandler(cfg))

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/categories", h.ListCategories)

		// Tool Registry + Catalog Filter
		r.Route("/tools", func(r chi.Router) {
			r.Get("/", h.ListTools)
			r.Route("/{toolID}", func(r chi.Router) {
				r.Get("/", h.GetTool)
				r.Post("/evaluate", h.EvaluateTool)
			})
		})

		// Calculator sessions
		r.Route("/calculators", func(r chi.Router) {
			r.Post("/", h.OpenCalculator)
			r.Route("/{sessionID}", func(r chi.Router) {
				r.Get("/", h.GetCalculator)
				r.Delete("/", h.CloseCalculator)
				r.Put("/inputs/{fieldID}", h.EditCalculatorInput)
				r.Get("/report", h.CalculatorReport)
			})
		})

		// Assistant. Only the routes that call the backend are throttled.
		limited := func(next http.HandlerFunc) http.Handler {
			if chatLimiter == nil {
				return next
			}
			return chatLimiter.Middleware(next)
		}
		r.Method(http.MethodPost, "/chat", limited(h.Chat))
		r.Route("/conversations", func(r chi.Router) {
			r.Post("/", h.CreateConversation)
			r.Route("/{conversationID}", func(r chi.Router) {
				r.Get("/", h.GetConversation)
				r.Delete("/", h.DeleteConversation)
				r.Method(http.MethodPost, "/messages", limited(h.SendConversationMessage))
			})
		})
	})

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": serviceName,
	})
}

func versionHandler(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"version": cfg.Version,
			"service": serviceName,
		})
	}
}
