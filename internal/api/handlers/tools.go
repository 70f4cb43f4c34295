package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/civiltoolbox/toolbox/internal/engine"
	"github.com/civiltoolbox/toolbox/pkg/models"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ══════════════════════════════════════════════════════════════
// ── Catalog Handlers ─────────────────────────────────────────
// ══════════════════════════════════════════════════════════════

func (h *Handlers) ListCategories(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, models.CategoryListing{
		All:     append([]models.Category{models.CategoryAll}, models.AllCategories()...),
		Present: h.Catalog.CategoryCounts(),
	})
}

// ListTools applies the Catalog Filter: ?q= matches name or description,
// ?category= is a category label or All (the default).
func (h *Handlers) ListTools(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	category := models.Category(r.URL.Query().Get("category"))
	if category == "" {
		category = models.CategoryAll
	}
	if category != models.CategoryAll && !category.Valid() {
		respondError(w, http.StatusBadRequest, "unknown category: "+string(category))
		return
	}
	respondJSON(w, http.StatusOK, h.Catalog.Search(query, category))
}

func (h *Handlers) GetTool(w http.ResponseWriter, r *http.Request) {
	tool, err := h.Catalog.Lookup(chi.URLParam(r, "toolID"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, models.ToolDetail{
		Tool:   tool,
		Inputs: engine.InitialInputs(tool),
	})
}

// EvaluateTool is stateless evaluation. Fields missing from the body keep
// their defaults; values may be JSON numbers or raw text, and text goes
// through the same parsing as an edit.
func (h *Handlers) EvaluateTool(w http.ResponseWriter, r *http.Request) {
	tool, err := h.Catalog.Lookup(chi.URLParam(r, "toolID"))
	if err != nil {
		respondDomainError(w, err)
		return
	}

	var req models.EvaluateRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	inputs := engine.InitialInputs(tool)
	for id, raw := range req.Inputs {
		if _, ok := inputs[id]; !ok {
			respondDomainError(w, fmt.Errorf("%w: %s has no field %q", engine.ErrUnknownField, tool.ID, id))
			return
		}
		v, err := inputValue(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("field %q: %v", id, err))
			return
		}
		inputs[id] = v
	}

	_, span := tracer.Start(r.Context(), "engine.evaluate",
		trace.WithAttributes(
			attribute.String("tool.id", tool.ID),
			attribute.String("tool.formula", tool.FormulaKind()),
		),
	)
	result := engine.Evaluate(tool, inputs)
	span.SetAttributes(attribute.Int("tool.outputs", len(result.Outputs)))
	span.End()

	respondJSON(w, http.StatusOK, models.EvaluateResponse{Inputs: inputs, Result: result})
}

// inputValue accepts a JSON number, a string (parsed leniently, 0 when it
// is not a number) or null (0).
func inputValue(raw json.RawMessage) (float64, error) {
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, err
	}
	switch x := v.(type) {
	case nil:
		return 0, nil
	case float64:
		return x, nil
	case string:
		return engine.ParseInput(x), nil
	default:
		return 0, fmt.Errorf("value must be a number or a string")
	}
}
