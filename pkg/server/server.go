// Package server provides the public entry point for initializing the
// toolbox HTTP server.
//
// Usage:
//
//	srv, err := server.New(ctx)
//	go srv.Janitor.Start(ctx)
//	http.ListenAndServe(fmt.Sprintf(":%d", srv.Port), srv.Handler)
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/civiltoolbox/toolbox/internal/api"
	"github.com/civiltoolbox/toolbox/internal/api/handlers"
	"github.com/civiltoolbox/toolbox/internal/api/middleware"
	"github.com/civiltoolbox/toolbox/internal/assistant"
	"github.com/civiltoolbox/toolbox/internal/catalog"
	"github.com/civiltoolbox/toolbox/internal/config"
	"github.com/civiltoolbox/toolbox/internal/sessions"
	"github.com/civiltoolbox/toolbox/internal/telemetry"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/language"
)

// Server holds the initialized toolbox.
type Server struct {
	// Handler is the HTTP handler with all routes and middleware.
	Handler http.Handler

	// Catalog is the tool registry the handlers serve from.
	Catalog *catalog.Registry

	// Janitor expires idle calculator sessions, conversations and
	// rate-limit buckets. The caller runs it.
	Janitor *sessions.Janitor

	Config *config.Config

	// Port is the port the server should listen on.
	Port int

	// ShutdownFunc should be called on graceful shutdown to flush telemetry.
	ShutdownFunc func(context.Context) error
}

// New loads configuration from the environment and builds a Server.
func New(ctx context.Context) (*Server, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return NewWithConfig(ctx, cfg)
}

// NewWithConfig initializes the server with an explicit configuration.
func NewWithConfig(ctx context.Context, cfg *config.Config) (*Server, error) {
	shutdown, err := telemetry.Init(ctx, cfg.Telemetry, cfg.Version)
	if err != nil {
		return nil, fmt.Errorf("init telemetry: %w", err)
	}

	reg := catalog.Builtin(catalog.WithLocale(ParseLocale(cfg.Locale)))
	log.Info().Int("tools", reg.Count()).Msg("✅ Tool registry loaded")

	backend, err := assistant.NewBackend(ctx, cfg.Assistant)
	if err != nil {
		log.Warn().Err(err).Msg("Assistant backend unavailable, chat will return fallback replies")
	} else {
		log.Info().Str("backend", backend.Name()).Msg("✅ Assistant gateway initialized")
	}
	gw := assistant.NewGateway(backend, assistant.WithTimeout(cfg.Assistant.Timeout))

	h := handlers.New(reg, gw)
	limiter := middleware.NewRateLimiter(cfg.Chat.RPS, cfg.Chat.Burst)
	router := api.NewRouter(cfg, h, limiter)

	janitor := sessions.NewJanitor(cfg.Sessions.IdleTTL, cfg.Sessions.SweepInterval, map[string]sessions.Sweeper{
		"calculators":   h.Calculators,
		"conversations": h.Conversations,
		"chat_clients":  limiter,
	})

	return &Server{
		Handler:      router,
		Catalog:      reg,
		Janitor:      janitor,
		Config:       cfg,
		Port:         cfg.Port,
		ShutdownFunc: shutdown,
	}, nil
}

// ParseLocale resolves a BCP 47 tag for money formatting, falling back to
// American English grouping.
func ParseLocale(s string) language.Tag {
	tag, err := language.Parse(s)
	if err != nil {
		log.Warn().Str("locale", s).Err(err).Msg("Unknown locale, using en-US")
		return language.AmericanEnglish
	}
	return tag
}
