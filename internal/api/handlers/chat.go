package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/civiltoolbox/toolbox/pkg/models"
	"github.com/go-chi/chi/v5"
)

// ══════════════════════════════════════════════════════════════
// ── Chat Handlers ────────────────────────────────────────────
// ══════════════════════════════════════════════════════════════

// Chat is the stateless form: the client sends the whole history. The
// reply is always 200; assistant failures arrive as fallback text.
func (h *Handlers) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		respondError(w, http.StatusBadRequest, "message is required")
		return
	}

	start := time.Now()
	reply := h.Assistant.Converse(r.Context(), req.History, req.Message)
	respondJSON(w, http.StatusOK, models.ChatResponse{
		Reply:     reply,
		LatencyMs: time.Since(start).Milliseconds(),
	})
}

func (h *Handlers) CreateConversation(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusCreated, h.Conversations.Create())
}

func (h *Handlers) GetConversation(w http.ResponseWriter, r *http.Request) {
	conv, err := h.Conversations.Get(chi.URLParam(r, "conversationID"))
	if err != nil {
		respondDomainError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, conv)
}

// SendConversationMessage appends a user turn and the assistant's reply.
// It answers 409 while an earlier message is still waiting on the assistant.
func (h *Handlers) SendConversationMessage(w http.ResponseWriter, r *http.Request) {
	conversationID := chi.URLParam(r, "conversationID")

	var req models.SendMessageRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		respondError(w, http.StatusBadRequest, "content is required")
		return
	}

	start := time.Now()
	reply, conv, err := h.Conversations.Send(r.Context(), conversationID, req.Content)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, models.SendMessageResponse{
		ConversationID: conv.ID,
		Reply:          reply,
		TurnCount:      len(conv.Messages),
		LatencyMs:      time.Since(start).Milliseconds(),
		Messages:       conv.Messages,
	})
}

// DeleteConversation is the explicit reset.
func (h *Handlers) DeleteConversation(w http.ResponseWriter, r *http.Request) {
	if err := h.Conversations.Delete(chi.URLParam(r, "conversationID")); err != nil {
		respondDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
