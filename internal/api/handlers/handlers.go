// Package handlers implements the HTTP handlers for the toolbox server.
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/civiltoolbox/toolbox/internal/assistant"
	"github.com/civiltoolbox/toolbox/internal/catalog"
	"github.com/civiltoolbox/toolbox/internal/engine"
	"github.com/civiltoolbox/toolbox/internal/sessions"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("toolbox/handlers")

// Handlers holds all handler dependencies.
type Handlers struct {
	Catalog       *catalog.Registry
	Calculators   *sessions.CalculatorStore
	Conversations *sessions.ConversationStore
	Assistant     *assistant.Gateway
}

// New creates a new Handlers instance. Conversations reply through gw.
func New(cat *catalog.Registry, gw *assistant.Gateway) *Handlers {
	return &Handlers{
		Catalog:       cat,
		Calculators:   sessions.NewCalculatorStore(),
		Conversations: sessions.NewConversationStore(gw),
		Assistant:     gw,
	}
}

// ══════════════════════════════════════════════════════════════
// ── Helpers ──────────────────────────────────────────────────
// ══════════════════════════════════════════════════════════════

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondDomainError maps sentinel errors to HTTP status codes.
func respondDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalog.ErrToolNotFound), errors.Is(err, sessions.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, engine.ErrUnknownField):
		respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, sessions.ErrBusy):
		respondError(w, http.StatusConflict, err.Error())
	default:
		log.Error().Err(err).Msg("Unhandled handler error")
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}

// decodeBody decodes an optional JSON body into v. An empty body is fine.
func decodeBody(r *http.Request, v interface{}) error {
	if r.Body == nil || r.Body == http.NoBody {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
