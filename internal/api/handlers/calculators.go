package handlers

import (
	"bytes"
	"net/http"

	"github.com/civiltoolbox/toolbox/pkg/models"
	"github.com/go-chi/chi/v5"
)

// ══════════════════════════════════════════════════════════════
// ── Calculator Session Handlers ──────────────────────────────
// ══════════════════════════════════════════════════════════════

func (h *Handlers) OpenCalculator(w http.ResponseWriter, r *http.Request) {
	var req models.OpenCalculatorRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ToolID == "" {
		respondError(w, http.StatusBadRequest, "tool_id is required")
		return
	}

	tool, err := h.Catalog.Lookup(req.ToolID)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, h.Calculators.Open(tool))
}

func (h *Handlers) GetCalculator(w http.ResponseWriter, r *http.Request) {
	sess, err := h.Calculators.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sess)
}

// EditCalculatorInput is the single edit entry point. The raw text is
// parsed leniently and the result is recomputed before responding.
func (h *Handlers) EditCalculatorInput(w http.ResponseWriter, r *http.Request) {
	var req models.EditInputRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sess, err := h.Calculators.Edit(chi.URLParam(r, "sessionID"), chi.URLParam(r, "fieldID"), req.Value)
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sess)
}

func (h *Handlers) CalculatorReport(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.Calculators.Report(chi.URLParam(r, "sessionID"), &buf); err != nil {
		respondDomainError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func (h *Handlers) CloseCalculator(w http.ResponseWriter, r *http.Request) {
	if err := h.Calculators.Close(chi.URLParam(r, "sessionID")); err != nil {
		respondDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
